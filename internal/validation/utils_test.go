package validation

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevenls811118/LightBnB/internal/errs"
)

type signupPayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Limit int    `json:"limit" validate:"gte=0,lte=100"`
}

func (p *signupPayload) Validate() error {
	return Validator().Struct(p)
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var p signupPayload
		err := BindAndValidate(newContext(`{"name":"Ada","email":"ada@example.com"}`), &p)
		require.NoError(t, err)
		assert.Equal(t, "Ada", p.Name)
	})

	t.Run("field errors use json names", func(t *testing.T) {
		var p signupPayload
		err := BindAndValidate(newContext(`{"email":"nope","limit":500}`), &p)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.ElementsMatch(t, []errs.FieldError{
			{Field: "name", Error: "is required"},
			{Field: "email", Error: "must be a valid email address"},
			{Field: "limit", Error: "must not exceed 100"},
		}, httpErr.Errors)
	})

	t.Run("malformed body", func(t *testing.T) {
		var p signupPayload
		err := BindAndValidate(newContext(`{"name":`), &p)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Nil(t, httpErr.Errors)
	})
}

func TestToHTTPError(t *testing.T) {
	custom := CustomValidationErrors{{Field: "minimum_rating", Message: "must not exceed 5"}}

	var httpErr *errs.HTTPError
	require.ErrorAs(t, ToHTTPError(fmt.Errorf("search: %w", custom)), &httpErr)
	assert.Equal(t, []errs.FieldError{{Field: "minimum_rating", Error: "must not exceed 5"}}, httpErr.Errors)

	other := errors.New("db down")
	assert.Same(t, other, ToHTTPError(other))
}

func TestCustomValidationErrorsMessage(t *testing.T) {
	err := CustomValidationErrors{{Field: "limit", Message: "must be a positive number"}}
	assert.Equal(t, "Validation failed: limit must be a positive number", err.Error())
	assert.Equal(t, "Validation failed", CustomValidationErrors{}.Error())
}
