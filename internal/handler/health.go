package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stevenls811118/LightBnB/internal/config"
	"github.com/stevenls811118/LightBnB/internal/middleware"
	"github.com/stevenls811118/LightBnB/internal/server"
)

const defaultHealthCheckTimeout = 5 * time.Second

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// dependencyCheck pings one dependency.
type dependencyCheck func(ctx context.Context) error

// checks returns the configured probes keyed by name.
func (h *HealthHandler) checks() map[string]dependencyCheck {
	hc := h.server.Config.Observability.HealthChecks
	checks := make(map[string]dependencyCheck)

	if hc.Runs(config.HealthCheckDatabase) && h.server.DB != nil {
		checks[config.HealthCheckDatabase] = func(ctx context.Context) error {
			return h.server.DB.Pool.Ping(ctx)
		}
	}
	if hc.Runs(config.HealthCheckRedis) && h.server.Redis != nil {
		checks[config.HealthCheckRedis] = func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}
	}

	return checks
}

// CheckHealth runs every configured check and answers 200 when all pass,
// 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return h.respond(c, h.checks())
}

func (h *HealthHandler) respond(c echo.Context, checks map[string]dependencyCheck) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	timeout := h.server.Config.Observability.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = defaultHealthCheckTimeout
	}

	results := make(map[string]interface{}, len(checks))
	healthy := true

	for name, check := range checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		checkStart := time.Now()
		err := check(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err != nil {
			healthy = false
			results[name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")
			h.recordFailure(name, elapsed, err)
			continue
		}

		results[name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      results,
	}

	if !healthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       check,
			"operation":        "health_check",
			"error_type":       check + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}
}
