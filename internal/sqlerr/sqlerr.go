// Package sqlerr normalizes PostgreSQL driver errors.
//
// It maps SQLSTATE codes onto a small set of categories, wraps execution
// failures in a typed QueryError and converts them into client-facing
// errs.HTTPError values (a unique violation becomes a 400, not a 500).
package sqlerr
