package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/stevenls811118/LightBnB/internal/model"
	"github.com/stevenls811118/LightBnB/internal/server"
	"github.com/stevenls811118/LightBnB/internal/validation"
)

type userService interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, user model.NewUser) (*model.User, error)
}

type GetUserByEmailRequest struct {
	Email string `query:"email" validate:"required,email,max=255"`
}

func (r *GetUserByEmailRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type GetUserRequest struct {
	ID int64 `param:"id" validate:"gt=0"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// CreateUserRequest registers an account. bcrypt reads at most 72 bytes
// of the password.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type UserHandler struct {
	Handler
	users userService
}

func NewUserHandler(s *server.Server, users userService) *UserHandler {
	return &UserHandler{Handler: NewHandler(s), users: users}
}

func (h *UserHandler) GetByEmail(c echo.Context, req *GetUserByEmailRequest) (*model.User, error) {
	return h.users.GetByEmail(c.Request().Context(), req.Email)
}

func (h *UserHandler) GetByID(c echo.Context, req *GetUserRequest) (*model.User, error) {
	return h.users.GetByID(c.Request().Context(), req.ID)
}

func (h *UserHandler) Create(c echo.Context, req *CreateUserRequest) (*model.User, error) {
	return h.users.Create(c.Request().Context(), model.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
}
