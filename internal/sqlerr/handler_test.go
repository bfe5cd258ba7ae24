package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevenls811118/LightBnB/internal/errs"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantFields  []errs.FieldError
	}{
		{
			name: "duplicate email",
			err: Wrap("create user", &pgconn.PgError{
				Code:           "23505",
				Severity:       "ERROR",
				TableName:      "users",
				ConstraintName: "users_email_key",
			}),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "USER_ALREADY_EXISTS",
			wantMessage: "A User with this email already exists",
		},
		{
			name: "unknown owner",
			err: Wrap("create property", &pgconn.PgError{
				Code:       "23503",
				TableName:  "properties",
				ColumnName: "owner_id",
			}),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "PROPERTY_NOT_FOUND",
			wantMessage: "The referenced Owner does not exist",
		},
		{
			name: "missing title",
			err: &pgconn.PgError{
				Code:       "23502",
				TableName:  "properties",
				ColumnName: "title",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "PROPERTY_REQUIRED",
			wantMessage: "The Title is required",
			wantFields:  []errs.FieldError{{Field: "title", Error: "is required"}},
		},
		{
			name: "rating check",
			err: &pgconn.PgError{
				Code:       "23514",
				TableName:  "property_reviews",
				ColumnName: "rating",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "PROPERTY_REVIEW_INVALID",
			wantMessage: "The Rating value does not meet required conditions",
		},
		{
			name:       "other server error",
			err:        &pgconn.PgError{Code: "42P01"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:        "no rows",
			err:         Wrap("get user", pgx.ErrNoRows),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Nothing found to get user",
		},
		{
			name:        "timeout",
			err:         Wrap("search properties", context.DeadlineExceeded),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Request timed out",
		},
		{
			name:       "plain error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(tt.err), &httpErr)

			assert.Equal(t, tt.wantStatus, httpErr.Status)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, httpErr.Code)
			}
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, httpErr.Message)
			}
			assert.Equal(t, tt.wantFields, httpErr.Errors)
		})
	}
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("User not found", true, nil)
	assert.Same(t, original, HandleError(original))
}

func TestQueryError(t *testing.T) {
	assert.NoError(t, Wrap("get user", nil))

	cause := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	err := fmt.Errorf("service: %w", Wrap("create user", cause))

	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "create user", queryErr.Op)
	assert.Contains(t, err.Error(), "failed to create user")
	assert.Equal(t, UniqueViolation, ErrCode(err))
}

func TestMapping(t *testing.T) {
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, Other, MapCode("XX000"))
	assert.Equal(t, SeverityFatal, MapSeverity("fatal"))
	assert.Equal(t, SeverityError, MapSeverity("weird"))
	assert.Equal(t, Other, ErrCode(errors.New("x")))

	converted := ConvertPgError(&pgconn.PgError{Code: "23502", Severity: "ERROR", Message: "null value"})
	assert.Equal(t, NotNullViolation, ErrCode(converted))
	assert.Equal(t, "ERROR 23502: null value", converted.Error())
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_users"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
