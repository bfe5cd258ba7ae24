package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/stevenls811118/LightBnB/internal/model"
	"github.com/stevenls811118/LightBnB/internal/server"
	"github.com/stevenls811118/LightBnB/internal/validation"
)

type reservationService interface {
	ListForGuest(ctx context.Context, guestID int64, limit int) ([]model.GuestReservation, error)
}

// ListReservationsRequest lists a guest's trips. A zero limit means the
// default page size.
type ListReservationsRequest struct {
	GuestID int64 `param:"id" validate:"gt=0"`
	Limit   int   `query:"limit" validate:"gte=0,lte=100"`
}

func (r *ListReservationsRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type ReservationsResponse struct {
	Reservations []model.GuestReservation `json:"reservations"`
}

func (r ReservationsResponse) Len() int { return len(r.Reservations) }

type ReservationHandler struct {
	Handler
	reservations reservationService
}

func NewReservationHandler(s *server.Server, reservations reservationService) *ReservationHandler {
	return &ReservationHandler{Handler: NewHandler(s), reservations: reservations}
}

func (h *ReservationHandler) ListForGuest(c echo.Context, req *ListReservationsRequest) (ReservationsResponse, error) {
	reservations, err := h.reservations.ListForGuest(c.Request().Context(), req.GuestID, req.Limit)
	if err != nil {
		return ReservationsResponse{}, err
	}
	if reservations == nil {
		reservations = []model.GuestReservation{}
	}
	return ReservationsResponse{Reservations: reservations}, nil
}
