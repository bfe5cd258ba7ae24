// Package router builds the echo instance: global middleware in order,
// system routes and the versioned API.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stevenls811118/LightBnB/internal/handler"
	"github.com/stevenls811118/LightBnB/internal/middleware"
	"github.com/stevenls811118/LightBnB/internal/server"
)

// NewRouter wires middlewares and routes onto a fresh echo instance.
//
// Order matters: the request id must exist before the logger is built,
// and the New Relic transaction before EnhanceTracing and EnhanceContext
// read it.
func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		m.Global.Recover(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.CORS(),
		m.Global.Secure(),
		m.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerV1Routes(v1, h)

	return router
}

func registerV1Routes(g *echo.Group, h *handler.Handlers) {
	users := h.Users
	g.GET("/users", handler.Handle(users.Handler, users.GetByEmail, http.StatusOK, &handler.GetUserByEmailRequest{}))
	g.GET("/users/:id", handler.Handle(users.Handler, users.GetByID, http.StatusOK, &handler.GetUserRequest{}))
	g.POST("/users", handler.Handle(users.Handler, users.Create, http.StatusCreated, &handler.CreateUserRequest{}))

	reservations := h.Reservations
	g.GET("/users/:id/reservations", handler.Handle(reservations.Handler, reservations.ListForGuest, http.StatusOK, &handler.ListReservationsRequest{}))

	properties := h.Properties
	g.GET("/properties", handler.Handle(properties.Handler, properties.Search, http.StatusOK, &handler.SearchPropertiesRequest{}))
	g.POST("/properties", handler.Handle(properties.Handler, properties.Create, http.StatusCreated, &handler.CreatePropertyRequest{}))
}
