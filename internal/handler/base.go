package handler

import (
	"reflect"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/stevenls811118/LightBnB/internal/middleware"
	"github.com/stevenls811118/LightBnB/internal/server"
	"github.com/stevenls811118/LightBnB/internal/validation"
)

// Handler carries the shared server dependencies into concrete handlers.
// It is embedded by value; the only field is a pointer.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint.
//
// Req is a pointer to a request struct such as *SearchPropertiesRequest:
// echo binds into it and Validate runs on it before the endpoint sees it.
// Res is whatever the endpoint returns on success; it is written as JSON.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler decides how a successful result reaches the client.
type ResponseHandler interface {
	// Handle writes the response body and status.
	Handle(c echo.Context, result interface{}) error

	// GetOperation names the response kind in log lines.
	GetOperation() string

	// AddAttributes adds result-specific attributes to the transaction.
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes the result as JSON with a fixed status.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "json"
}

// AddAttributes records the page size for list responses such as
// PropertiesResponse and ReservationsResponse.
func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if lister, ok := result.(interface{ Len() int }); ok {
		txn.AddAttribute("response.items", lister.Len())
	}
}

// newRequest returns a zero value of the type prototype points to, so
// concurrent requests never share a bound struct.
func newRequest[Req validation.Validatable](prototype Req) Req {
	t := reflect.TypeOf(prototype)
	if t == nil || t.Kind() != reflect.Pointer {
		return prototype
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

// requestTrace times the phases of one request and mirrors each outcome
// onto the log and, when New Relic is on, the transaction.
type requestTrace struct {
	txn    *newrelic.Transaction
	logger zerolog.Logger
	start  time.Time
}

func startTrace(c echo.Context, operation string) *requestTrace {
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	return &requestTrace{
		txn: txn,
		logger: middleware.GetLogger(c).With().
			Str("operation", operation).
			Str("route", route).
			Logger(),
		start: time.Now(),
	}
}

// phase records "<name>.status" and "<name>.duration_ms".
func (t *requestTrace) phase(name string, began time.Time, err error) time.Duration {
	elapsed := time.Since(began)
	if t.txn == nil {
		return elapsed
	}

	status := "success"
	if err != nil {
		status = "failed"
	}
	t.txn.AddAttribute(name+".status", status)
	t.txn.AddAttribute(name+".duration_ms", elapsed.Milliseconds())
	return elapsed
}

// handleRequest runs bind+validate, then the endpoint, then the response
// writer. A failure in either of the first two phases is returned as is;
// GlobalErrorHandler turns it into the JSON error body.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	trace := startTrace(c, responseHandler.GetOperation())
	trace.logger.Debug().Msg("handling request")

	began := time.Now()
	err := validation.BindAndValidate(c, req)
	validationDuration := trace.phase("validation", began, err)
	if err != nil {
		// Rejected input is a client error; the tracing middleware decides
		// whether the transaction notices it.
		trace.logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")
		return err
	}

	began = time.Now()
	result, err := handler(c, req)
	handlerDuration := trace.phase("handler", began, err)
	if err != nil {
		trace.logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(trace.start)).
			Msg("handler execution failed")
		return err
	}

	totalDuration := time.Since(trace.start)
	if trace.txn != nil {
		trace.txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(trace.txn, result)
	}

	trace.logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle turns a typed endpoint into an echo.HandlerFunc. req is only a
// prototype; each request binds into a fresh value of its type.
//
//	g.POST("/users", handler.Handle(h.Handler, h.Create, http.StatusCreated, &CreateUserRequest{}))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
