package handler

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stevenls811118/LightBnB/internal/model"
	"github.com/stevenls811118/LightBnB/internal/server"
	"github.com/stevenls811118/LightBnB/internal/validation"
)

type propertyService interface {
	Search(ctx context.Context, filter model.PropertyFilter, limit int) ([]model.PropertyWithRating, error)
	Create(ctx context.Context, property model.NewProperty) (*model.Property, error)
}

// SearchPropertiesRequest binds the search form. Values arrive as text
// and Validate parses them; an empty value means "no constraint".
type SearchPropertiesRequest struct {
	City                 string `query:"city"`
	OwnerID              string `query:"owner_id"`
	MinimumPricePerNight string `query:"minimum_price_per_night"`
	MaximumPricePerNight string `query:"maximum_price_per_night"`
	MinimumRating        string `query:"minimum_rating"`
	Limit                string `query:"limit"`

	filter model.PropertyFilter
	limit  int
}

func (r *SearchPropertiesRequest) Validate() error {
	var problems validation.CustomValidationErrors
	notNumber := func(field string) {
		problems = append(problems, validation.CustomValidationError{Field: field, Message: "must be a number"})
	}

	r.filter = model.PropertyFilter{City: r.City}

	if v := strings.TrimSpace(r.OwnerID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			notNumber("owner_id")
		} else {
			r.filter.OwnerID = &id
		}
	}

	for _, f := range []struct {
		field string
		raw   string
		dst   **float64
	}{
		{"minimum_price_per_night", r.MinimumPricePerNight, &r.filter.MinimumPricePerNight},
		{"maximum_price_per_night", r.MaximumPricePerNight, &r.filter.MaximumPricePerNight},
		{"minimum_rating", r.MinimumRating, &r.filter.MinimumRating},
	} {
		v := strings.TrimSpace(f.raw)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			notNumber(f.field)
			continue
		}
		*f.dst = &n
	}

	r.limit = 0
	if v := strings.TrimSpace(r.Limit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			notNumber("limit")
		} else {
			r.limit = n
		}
	}

	if len(problems) > 0 {
		return problems
	}
	return nil
}

// Filter returns the parsed filter and limit; valid only after Validate.
func (r *SearchPropertiesRequest) Filter() (model.PropertyFilter, int) {
	return r.filter, r.limit
}

// CreatePropertyRequest lists a property. CostPerNight is in dollars.
type CreatePropertyRequest struct {
	OwnerID           int64   `json:"owner_id" validate:"gt=0"`
	Title             string  `json:"title" validate:"required,max=255"`
	Description       string  `json:"description"`
	ThumbnailPhotoURL string  `json:"thumbnail_photo_url" validate:"required,url,max=255"`
	CoverPhotoURL     string  `json:"cover_photo_url" validate:"required,url,max=255"`
	CostPerNight      float64 `json:"cost_per_night" validate:"gte=0,lte=20000000"`
	ParkingSpaces     int32   `json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int32   `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int32   `json:"number_of_bedrooms" validate:"gte=0"`
	Country           string  `json:"country" validate:"required,max=255"`
	Street            string  `json:"street" validate:"required,max=255"`
	City              string  `json:"city" validate:"required,max=255"`
	Province          string  `json:"province" validate:"required,max=255"`
	PostCode          string  `json:"post_code" validate:"required,max=255"`
}

func (r *CreatePropertyRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type PropertiesResponse struct {
	Properties []model.PropertyWithRating `json:"properties"`
}

func (r PropertiesResponse) Len() int { return len(r.Properties) }

type PropertyHandler struct {
	Handler
	properties propertyService
}

func NewPropertyHandler(s *server.Server, properties propertyService) *PropertyHandler {
	return &PropertyHandler{Handler: NewHandler(s), properties: properties}
}

func (h *PropertyHandler) Search(c echo.Context, req *SearchPropertiesRequest) (PropertiesResponse, error) {
	filter, limit := req.Filter()

	properties, err := h.properties.Search(c.Request().Context(), filter, limit)
	if err != nil {
		return PropertiesResponse{}, err
	}
	if properties == nil {
		properties = []model.PropertyWithRating{}
	}
	return PropertiesResponse{Properties: properties}, nil
}

func (h *PropertyHandler) Create(c echo.Context, req *CreatePropertyRequest) (*model.Property, error) {
	return h.properties.Create(c.Request().Context(), model.NewProperty{
		OwnerID:           req.OwnerID,
		Title:             req.Title,
		Description:       req.Description,
		ThumbnailPhotoURL: req.ThumbnailPhotoURL,
		CoverPhotoURL:     req.CoverPhotoURL,
		CostPerNight:      req.CostPerNight,
		ParkingSpaces:     req.ParkingSpaces,
		NumberOfBathrooms: req.NumberOfBathrooms,
		NumberOfBedrooms:  req.NumberOfBedrooms,
		Country:           req.Country,
		Street:            req.Street,
		City:              req.City,
		Province:          req.Province,
		PostCode:          req.PostCode,
	})
}
