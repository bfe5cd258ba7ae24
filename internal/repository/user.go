package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/stevenls811118/LightBnB/internal/database"
	"github.com/stevenls811118/LightBnB/internal/model"
	"github.com/stevenls811118/LightBnB/internal/sqlerr"
)

const (
	// Matches on lower(email) so rows loaded outside Create still match;
	// users_lower_email_idx covers it.
	getUserByEmailSQL = `SELECT id, name, email, password
FROM users
WHERE lower(email) = $1;`

	getUserByIDSQL = `SELECT id, name, email, password
FROM users
WHERE id = $1;`

	createUserSQL = `INSERT INTO users (name, email, password)
VALUES ($1, $2, $3)
RETURNING id, name, email, password;`
)

type UserRepository struct {
	base
}

func NewUserRepository(db database.Querier, logger *zerolog.Logger, slowQueryThreshold time.Duration) *UserRepository {
	return &UserRepository{base: newBase(db, logger, slowQueryThreshold)}
}

// NormalizeEmail is applied to every email written or looked up, which
// makes lookups case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetByEmail returns the user with the given email, or nil if none exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "get user by email", getUserByEmailSQL, NormalizeEmail(email))
}

// GetByID returns the user with the given id, or nil if none exists.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, "get user by id", getUserByIDSQL, id)
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (user *model.User, err error) {
	defer func(start time.Time) { r.observe(op, start, err) }(time.Now())

	var u model.User
	err = r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}
	return &u, nil
}

// Create inserts a user and returns the stored row. The password must
// already be hashed.
func (r *UserRepository) Create(ctx context.Context, user model.NewUser) (created *model.User, err error) {
	const op = "create user"
	defer func(start time.Time) { r.observe(op, start, err) }(time.Now())

	var u model.User
	err = r.db.QueryRow(ctx, createUserSQL,
		strings.TrimSpace(user.Name),
		NormalizeEmail(user.Email),
		user.Password,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}
	return &u, nil
}
