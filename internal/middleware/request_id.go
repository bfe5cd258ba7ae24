package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader carries the correlation id in and out. A proxy in
	// front of the service may already have set it.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the echo context key, and the field name the
	// context enhancer logs it under.
	RequestIDKey = "request_id"

	maxRequestIDLength = 128
)

// RequestID gives every request a correlation id.
//
// An incoming X-Request-ID is kept when it is usable (see
// acceptRequestID); otherwise a UUID is generated. The id is stored on the
// echo context and written to the response header, so a caller reporting
// a failed search can quote the id that appears in our logs.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID, ok := acceptRequestID(c.Request().Header.Get(RequestIDHeader))
			if !ok {
				requestID = uuid.NewString()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// acceptRequestID reports whether an upstream id can be reused. It must be
// non-empty, at most maxRequestIDLength bytes and printable ASCII without
// spaces, since it is echoed into headers and log lines verbatim.
func acceptRequestID(id string) (string, bool) {
	if id == "" || len(id) > maxRequestIDLength {
		return "", false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return "", false
		}
	}
	return id, true
}

func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
