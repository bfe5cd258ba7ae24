package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stevenls811118/LightBnB/internal/errs"
	"github.com/stevenls811118/LightBnB/internal/lib/job"
	"github.com/stevenls811118/LightBnB/internal/model"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = bcrypt.DefaultCost

var userNotFoundCode = "USER_NOT_FOUND"

type UserService struct {
	users  userStore
	tasks  TaskEnqueuer
	logger *zerolog.Logger
}

// NewUserService creates a UserService. tasks may be nil, in which case
// no welcome email is queued.
func NewUserService(users userStore, tasks TaskEnqueuer, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, tasks: tasks, logger: nopLogger(logger)}
}

// GetByEmail returns the user registered with email, or a 404.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewNotFoundError("User not found", true, &userNotFoundCode)
	}
	return user, nil
}

// GetByID returns the user with id, or a 404.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewNotFoundError("User not found", true, &userNotFoundCode)
	}
	return user, nil
}

// Create hashes the plaintext password, stores the user and queues a
// welcome email. A taken email surfaces as a unique violation.
func (s *UserService) Create(ctx context.Context, user model.NewUser) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, errs.NewBadRequestError("Password is too long", true, nil,
				[]errs.FieldError{{Field: "password", Error: "must not exceed 72 bytes"}}, nil)
		}
		return nil, err
	}
	user.Password = string(hash)

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Msg("user created")

	task, err := job.NewWelcomeEmailTask(created.Email, created.Name)
	enqueue(ctx, s.tasks, s.logger, task, err)

	return created, nil
}
