package service

import (
	"github.com/stevenls811118/LightBnB/internal/lib/job"
	"github.com/stevenls811118/LightBnB/internal/repository"
	"github.com/stevenls811118/LightBnB/internal/server"
)

// Services groups every service so handlers take one dependency.
type Services struct {
	Users        *UserService
	Properties   *PropertyService
	Reservations *ReservationService
	Job          *job.JobService
}

// NewServices wires services to the repositories and the job queue.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var tasks TaskEnqueuer
	if s.Job != nil {
		tasks = s.Job.Client
	}

	return &Services{
		Users:        NewUserService(repos.Users, tasks, s.Logger),
		Properties:   NewPropertyService(repos.Properties, repos.Users, tasks, s.Logger),
		Reservations: NewReservationService(repos.Reservations, s.Logger),
		Job:          s.Job,
	}
}
