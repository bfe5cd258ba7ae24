package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/stevenls811118/LightBnB/internal/server"
)

// TracingMiddleware owns the New Relic side of the request pipeline.
//
// It is split in two so the router can place them apart:
//  1. NewRelicMiddleware starts the transaction and puts it in the
//     request context.
//  2. EnhanceTracing decorates that transaction once RequestID has run.
//
// With a nil application both are passthroughs, so local runs and tests
// need no agent.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware returns nrecho's middleware, or a no-op without an
// application. Everything that calls newrelic.FromContext depends on it
// running first.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing tags the transaction with the route template, client
// and request id, then records the outcome.
//
// A handler error has not been written yet at this point, so the status
// attribute comes from the same classification GlobalErrorHandler uses.
// Only 5xx outcomes are noticed as errors; a rejected search filter or an
// unknown user is a client mistake and is kept as error.code instead.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			annotateRequest(txn, c, tm.server.Config.Primary.Env)

			err := next(c)
			recordOutcome(txn, c, err)

			return err
		}
	}
}

func annotateRequest(txn *newrelic.Transaction, c echo.Context, env string) {
	txn.AddAttribute("http.route", c.Path())
	txn.AddAttribute("http.real_ip", c.RealIP())
	txn.AddAttribute("http.user_agent", c.Request().UserAgent())
	txn.AddAttribute("service.environment", env)

	if requestID := GetRequestID(c); requestID != "" {
		txn.AddAttribute("request.id", requestID)
	}
}

func recordOutcome(txn *newrelic.Transaction, c echo.Context, err error) {
	status, code, notice := outcome(c, err)

	txn.AddAttribute("http.status_code", status)
	if code != "" {
		txn.AddAttribute("error.code", code)
	}
	if notice {
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}
}

// outcome reports the status a request will be answered with, the error
// code for failures, and whether the failure is a server error.
func outcome(c echo.Context, err error) (status int, code string, notice bool) {
	if err == nil {
		return c.Response().Status, "", false
	}

	httpErr := classify(err)
	return httpErr.Status, httpErr.Code, httpErr.Status >= http.StatusInternalServerError
}
