// Package handler adapts HTTP requests to service calls.
//
// Each endpoint declares a request type that binds path, query or body
// values and validates them; the generic Handle pipeline runs binding,
// validation, the service call, logging and tracing in one place.
package handler
