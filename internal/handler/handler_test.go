package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevenls811118/LightBnB/internal/config"
	"github.com/stevenls811118/LightBnB/internal/errs"
	"github.com/stevenls811118/LightBnB/internal/middleware"
	"github.com/stevenls811118/LightBnB/internal/model"
	"github.com/stevenls811118/LightBnB/internal/server"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func newTestEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type fakeUserService struct {
	mu      sync.Mutex
	users   map[int64]*model.User
	created []model.NewUser
	err     error
}

func (f *fakeUserService) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errs.NewNotFoundError("User not found", true, nil)
}

func (f *fakeUserService) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errs.NewNotFoundError("User not found", true, nil)
}

func (f *fakeUserService) Create(_ context.Context, user model.NewUser) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, user)
	return &model.User{ID: 10, Name: user.Name, Email: user.Email, Password: "hashed"}, nil
}

type fakePropertyService struct {
	filter model.PropertyFilter
	limit  int
	calls  int
	result []model.PropertyWithRating

	created []model.NewProperty
}

func (f *fakePropertyService) Search(_ context.Context, filter model.PropertyFilter, limit int) ([]model.PropertyWithRating, error) {
	f.calls++
	f.filter, f.limit = filter, limit
	return f.result, nil
}

func (f *fakePropertyService) Create(_ context.Context, p model.NewProperty) (*model.Property, error) {
	f.created = append(f.created, p)
	return &model.Property{ID: 5, OwnerID: p.OwnerID, Title: p.Title, CostPerNight: model.ToMinorUnits(p.CostPerNight)}, nil
}

type fakeReservationService struct {
	guestID int64
	limit   int
}

func (f *fakeReservationService) ListForGuest(_ context.Context, guestID int64, limit int) ([]model.GuestReservation, error) {
	f.guestID, f.limit = guestID, limit
	return nil, nil
}

func userRoutes(s *server.Server, users userService) *echo.Echo {
	e := newTestEcho(s)
	h := NewUserHandler(s, users)
	e.GET("/users", Handle(h.Handler, h.GetByEmail, http.StatusOK, &GetUserByEmailRequest{}))
	e.GET("/users/:id", Handle(h.Handler, h.GetByID, http.StatusOK, &GetUserRequest{}))
	e.POST("/users", Handle(h.Handler, h.Create, http.StatusCreated, &CreateUserRequest{}))
	return e
}

func TestGetUser(t *testing.T) {
	users := &fakeUserService{users: map[int64]*model.User{1: {ID: 1, Name: "Eva", Email: "eva@example.com", Password: "secret-hash"}}}
	e := userRoutes(newTestServer(), users)

	rec := do(e, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Eva","email":"eva@example.com"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/users?email=eva@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/users/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/users/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/users/0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/users?email=not-an-email", "").Code)
}

func TestCreateUser(t *testing.T) {
	users := &fakeUserService{}
	e := userRoutes(newTestServer(), users)

	rec := do(e, http.MethodPost, "/users", `{"name":"Eva","email":"eva@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":10,"name":"Eva","email":"eva@example.com"}`, rec.Body.String())
	assert.Equal(t, []model.NewUser{{Name: "Eva", Email: "eva@example.com", Password: "password123"}}, users.created)

	rec = do(e, http.MethodPost, "/users", `{"name":"","email":"eva@example.com","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "password", Error: "must be at least 8 characters"},
	}, body.Errors)
}

func TestRequestsAreNotShared(t *testing.T) {
	users := &fakeUserService{}
	e := userRoutes(newTestServer(), users)

	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/users", `{"name":"Eva","email":"eva@example.com","password":"password123"}`).Code)
	// A second body without name must not inherit the first one's value.
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/users", `{"email":"bob@example.com","password":"password123"}`).Code)
}

func TestCreateUserServiceError(t *testing.T) {
	e := userRoutes(newTestServer(), &fakeUserService{err: errors.New("boom")})
	rec := do(e, http.MethodPost, "/users", `{"name":"Eva","email":"eva@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSearchProperties(t *testing.T) {
	s := newTestServer()
	properties := &fakePropertyService{}
	h := NewPropertyHandler(s, properties)
	e := newTestEcho(s)
	e.GET("/properties", Handle(h.Handler, h.Search, http.StatusOK, &SearchPropertiesRequest{}))

	rec := do(e, http.MethodGet, "/properties?city=%23Vancouver&owner_id=3&minimum_price_per_night=50&minimum_rating=4&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"properties":[]}`, rec.Body.String())

	assert.Equal(t, "#Vancouver", properties.filter.City)
	require.NotNil(t, properties.filter.OwnerID)
	assert.Equal(t, int64(3), *properties.filter.OwnerID)
	require.NotNil(t, properties.filter.MinimumPricePerNight)
	assert.Equal(t, 50.0, *properties.filter.MinimumPricePerNight)
	assert.Nil(t, properties.filter.MaximumPricePerNight)
	require.NotNil(t, properties.filter.MinimumRating)
	assert.Equal(t, 4.0, *properties.filter.MinimumRating)
	assert.Equal(t, 5, properties.limit)

	rec = do(e, http.MethodGet, "/properties", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.PropertyFilter{}, properties.filter)
	assert.Equal(t, 0, properties.limit)
}

func TestSearchPropertiesRejectsNonNumbers(t *testing.T) {
	s := newTestServer()
	properties := &fakePropertyService{}
	h := NewPropertyHandler(s, properties)
	e := newTestEcho(s)
	e.GET("/properties", Handle(h.Handler, h.Search, http.StatusOK, &SearchPropertiesRequest{}))

	rec := do(e, http.MethodGet, "/properties?owner_id=x&maximum_price_per_night=cheap&minimum_rating=NaN&limit=ten", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "owner_id", Error: "must be a number"},
		{Field: "maximum_price_per_night", Error: "must be a number"},
		{Field: "minimum_rating", Error: "must be a number"},
		{Field: "limit", Error: "must be a number"},
	}, body.Errors)
	assert.Zero(t, properties.calls)
}

func TestCreateProperty(t *testing.T) {
	s := newTestServer()
	properties := &fakePropertyService{}
	h := NewPropertyHandler(s, properties)
	e := newTestEcho(s)
	e.POST("/properties", Handle(h.Handler, h.Create, http.StatusCreated, &CreatePropertyRequest{}))

	body := `{
		"owner_id": 3, "title": "Speed lamp", "description": "description",
		"thumbnail_photo_url": "https://example.com/t.jpg", "cover_photo_url": "https://example.com/c.jpg",
		"cost_per_night": 100, "parking_spaces": 1, "number_of_bathrooms": 2, "number_of_bedrooms": 3,
		"country": "Canada", "street": "536 Namsub Highway", "city": "Sotboske", "province": "Quebec", "post_code": "28142"
	}`
	rec := do(e, http.MethodPost, "/properties", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, properties.created, 1)
	assert.Equal(t, 100.0, properties.created[0].CostPerNight)
	assert.Contains(t, rec.Body.String(), `"cost_per_night":10000`)

	rec = do(e, http.MethodPost, "/properties", `{"owner_id": 3, "cost_per_night": -1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, properties.created, 1)

	rec = do(e, http.MethodPost, "/properties", strings.Replace(body, `"cost_per_night": 100`, `"cost_per_night": 30000000`, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cost_per_night")
	assert.Len(t, properties.created, 1)
}

func TestCreatePropertyCostCapMatchesModel(t *testing.T) {
	field, ok := reflect.TypeOf(CreatePropertyRequest{}).FieldByName("CostPerNight")
	require.True(t, ok)
	assert.Contains(t, field.Tag.Get("validate"), "lte="+strconv.Itoa(model.MaxPricePerNight))
}

func TestListReservations(t *testing.T) {
	s := newTestServer()
	reservations := &fakeReservationService{}
	h := NewReservationHandler(s, reservations)
	e := newTestEcho(s)
	e.GET("/users/:id/reservations", Handle(h.Handler, h.ListForGuest, http.StatusOK, &ListReservationsRequest{}))

	rec := do(e, http.MethodGet, "/users/7/reservations?limit=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reservations":[]}`, rec.Body.String())
	assert.Equal(t, int64(7), reservations.guestID)
	assert.Equal(t, 3, reservations.limit)

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/users/7/reservations?limit=101", "").Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer()
	h := NewHealthHandler(s)

	serve := func(checks map[string]dependencyCheck) *httptest.ResponseRecorder {
		e := echo.New()
		e.GET("/status", func(c echo.Context) error { return h.respond(c, checks) })
		return do(e, http.MethodGet, "/status", "")
	}

	ok := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errors.New("connection refused") }

	rec := serve(map[string]dependencyCheck{"database": ok, "redis": ok})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = serve(map[string]dependencyCheck{"database": ok, "redis": failing})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status string                       `json:"status"`
		Checks map[string]map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "connection refused", body.Checks["redis"]["error"])
	assert.Equal(t, "healthy", body.Checks["database"]["status"])
}

func TestHealthChecksFollowConfig(t *testing.T) {
	s := newTestServer()
	s.Config.Observability.HealthChecks.Enabled = false
	assert.Empty(t, NewHealthHandler(s).checks())
}

func TestHandleLogsEachPhase(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	s := newTestServer()
	users := &fakeUserService{users: map[int64]*model.User{1: {ID: 1, Name: "Eva", Email: "eva@example.com"}}}
	h := NewUserHandler(s, users)
	e := newTestEcho(s)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.LoggerKey, &logger)
			return next(c)
		}
	})
	e.GET("/users", Handle(h.Handler, h.GetByEmail, http.StatusOK, &GetUserByEmailRequest{}))

	rec := do(e, http.MethodGet, "/users?email=not-an-email", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, buf.String(), `"message":"request validation failed"`)
	assert.Contains(t, buf.String(), `"operation":"json"`)
	assert.Contains(t, buf.String(), `"route":"/users"`)

	buf.Reset()
	rec = do(e, http.MethodGet, "/users?email=eva@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), `"message":"request completed successfully"`)
	assert.NotContains(t, buf.String(), "request validation failed")
}
