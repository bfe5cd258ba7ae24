// Package middleware holds the echo middleware shared by every route:
// request ids, the request-scoped logger, New Relic tracing, per-IP rate
// limiting, request logging, panic recovery and the global error handler.
package middleware
