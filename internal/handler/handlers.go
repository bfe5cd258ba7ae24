package handler

import (
	"github.com/stevenls811118/LightBnB/internal/server"
	"github.com/stevenls811118/LightBnB/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health       *HealthHandler
	OpenAPI      *OpenAPIHandler
	Users        *UserHandler
	Properties   *PropertyHandler
	Reservations *ReservationHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		OpenAPI:      NewOpenAPIHandler(s),
		Users:        NewUserHandler(s, services.Users),
		Properties:   NewPropertyHandler(s, services.Properties),
		Reservations: NewReservationHandler(s, services.Reservations),
	}
}
