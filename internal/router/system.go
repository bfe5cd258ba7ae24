package router

import (
	"github.com/labstack/echo/v4"

	"github.com/stevenls811118/LightBnB/internal/handler"
)

// registerSystemRoutes mounts the endpoints outside the versioned API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
