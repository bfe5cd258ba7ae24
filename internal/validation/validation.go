// Package validation binds and validates request payloads.
//
// Struct tags are enforced by go-playground/validator; rules that tags
// cannot express are reported as CustomValidationErrors. Both become a
// 400 errs.HTTPError with one FieldError per offending field.
package validation
