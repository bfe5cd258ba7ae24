// Package service contains the business rules between the HTTP handlers
// and the repositories.
//
// Services turn repository results into API outcomes: an absent user
// becomes a 404, invalid filters become field-level 400s, passwords are
// hashed before they reach the database and follow-up emails are queued
// as background tasks.
package service

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/stevenls811118/LightBnB/internal/model"
)

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, user model.NewUser) (*model.User, error)
}

type propertyStore interface {
	Search(ctx context.Context, filter model.PropertyFilter, limit int) ([]model.PropertyWithRating, error)
	Create(ctx context.Context, property model.NewProperty) (*model.Property, error)
}

type reservationStore interface {
	ListForGuest(ctx context.Context, guestID int64, limit int) ([]model.GuestReservation, error)
}

// enqueue queues task when a queue is configured. Failures are logged,
// not returned: the write that triggered the task has already committed.
func enqueue(ctx context.Context, tasks TaskEnqueuer, logger *zerolog.Logger, task *asynq.Task, err error) {
	if tasks == nil {
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to build background task")
		return
	}

	info, err := tasks.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error().Err(err).Str("task", task.Type()).Msg("failed to enqueue background task")
		return
	}

	logger.Debug().Str("task", task.Type()).Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued background task")
}

func nopLogger(logger *zerolog.Logger) *zerolog.Logger {
	if logger != nil {
		return logger
	}
	nop := zerolog.Nop()
	return &nop
}
