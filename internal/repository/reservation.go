package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/stevenls811118/LightBnB/internal/database"
	"github.com/stevenls811118/LightBnB/internal/model"
	"github.com/stevenls811118/LightBnB/internal/sqlerr"
)

const listGuestReservationsSQL = `SELECT reservations.id, reservations.start_date, reservations.end_date,
  reservations.property_id, reservations.guest_id,
  ` + propertyColumns + `,
  avg(property_reviews.rating) AS average_rating
FROM reservations
JOIN properties ON reservations.property_id = properties.id
JOIN property_reviews ON properties.id = property_reviews.property_id
WHERE reservations.guest_id = $1
GROUP BY reservations.id, properties.id
ORDER BY reservations.start_date DESC
LIMIT $2;`

type ReservationRepository struct {
	base
}

func NewReservationRepository(db database.Querier, logger *zerolog.Logger, slowQueryThreshold time.Duration) *ReservationRepository {
	return &ReservationRepository{base: newBase(db, logger, slowQueryThreshold)}
}

// ListForGuest returns a guest's reservations, most recent start date
// first, each with its property and that property's average rating.
// A zero limit means DefaultLimit.
func (r *ReservationRepository) ListForGuest(ctx context.Context, guestID int64, limit int) (reservations []model.GuestReservation, err error) {
	const op = "list reservations"

	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = DefaultLimit
	}

	defer func(start time.Time) { r.observe(op, start, err) }(time.Now())

	rows, err := r.db.Query(ctx, listGuestReservationsSQL, guestID, limit)
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}

	reservations, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.GuestReservation, error) {
		var gr model.GuestReservation
		res := &gr.Reservation
		dest := append([]any{&res.ID, &res.StartDate, &res.EndDate, &res.PropertyID, &res.GuestID},
			propertyDest(&gr.Property)...)
		err := row.Scan(append(dest, &gr.AverageRating)...)
		return gr, err
	})
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}
	return reservations, nil
}
