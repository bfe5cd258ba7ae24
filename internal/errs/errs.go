// Package errs defines the error shapes returned to API clients.
//
// HTTPError carries a machine code, a message, the status and optional
// field-level errors so every failure serializes to the same JSON.
package errs
