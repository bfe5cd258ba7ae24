package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stevenls811118/LightBnB/internal/model"
	"github.com/stevenls811118/LightBnB/internal/validation"
)

type ReservationService struct {
	reservations reservationStore
	logger       *zerolog.Logger
}

func NewReservationService(reservations reservationStore, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{reservations: reservations, logger: nopLogger(logger)}
}

// ListForGuest returns a guest's reservations, newest first. An unknown
// guest simply has none.
func (s *ReservationService) ListForGuest(ctx context.Context, guestID int64, limit int) ([]model.GuestReservation, error) {
	reservations, err := s.reservations.ListForGuest(ctx, guestID, limit)
	if err != nil {
		return nil, validation.ToHTTPError(err)
	}
	return reservations, nil
}
