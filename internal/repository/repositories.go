package repository

import (
	"github.com/stevenls811118/LightBnB/internal/server"
)

// Repositories groups every repository so services take one dependency.
type Repositories struct {
	Users        *UserRepository
	Reservations *ReservationRepository
	Properties   *PropertyRepository
}

// NewRepositories builds all repositories on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	threshold := s.Config.Observability.Logging.SlowQueryThreshold

	return &Repositories{
		Users:        NewUserRepository(s.DB.Pool, s.Logger, threshold),
		Reservations: NewReservationRepository(s.DB.Pool, s.Logger, threshold),
		Properties:   NewPropertyRepository(s.DB.Pool, s.Logger, threshold),
	}
}
