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

const createPropertySQL = `INSERT INTO properties (
  title, description, owner_id, cover_photo_url, thumbnail_photo_url,
  cost_per_night, parking_spaces, number_of_bathrooms, number_of_bedrooms,
  province, city, country, street, post_code)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + propertyColumns + `;`

type PropertyRepository struct {
	base
}

func NewPropertyRepository(db database.Querier, logger *zerolog.Logger, slowQueryThreshold time.Duration) *PropertyRepository {
	return &PropertyRepository{base: newBase(db, logger, slowQueryThreshold)}
}

// propertyDest returns scan targets for propertyColumns, in order.
func propertyDest(p *model.Property) []any {
	return []any{
		&p.ID, &p.OwnerID, &p.Title, &p.Description,
		&p.ThumbnailPhotoURL, &p.CoverPhotoURL, &p.CostPerNight,
		&p.ParkingSpaces, &p.NumberOfBathrooms, &p.NumberOfBedrooms,
		&p.Country, &p.Street, &p.City, &p.Province,
		&p.PostCode, &p.Active,
	}
}

// Search returns properties matching filter with their average rating,
// cheapest first. See BuildPropertySearch for the statement.
func (r *PropertyRepository) Search(ctx context.Context, filter model.PropertyFilter, limit int) (properties []model.PropertyWithRating, err error) {
	const op = "search properties"

	query, err := BuildPropertySearch(filter, limit)
	if err != nil {
		return nil, err
	}

	defer func(start time.Time) { r.observe(op, start, err) }(time.Now())

	rows, err := r.db.Query(ctx, query.SQL, query.Args...)
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}

	properties, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PropertyWithRating, error) {
		var p model.PropertyWithRating
		err := row.Scan(append(propertyDest(&p.Property), &p.AverageRating)...)
		return p, err
	})
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}
	return properties, nil
}

// Create inserts a listing and returns the stored row. The nightly cost
// is given in dollars and stored in cents.
func (r *PropertyRepository) Create(ctx context.Context, property model.NewProperty) (created *model.Property, err error) {
	const op = "create property"

	if err = validateNewProperty(property); err != nil {
		return nil, err
	}

	defer func(start time.Time) { r.observe(op, start, err) }(time.Now())

	var p model.Property
	err = r.db.QueryRow(ctx, createPropertySQL, createPropertyArgs(property)...).Scan(propertyDest(&p)...)
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}
	return &p, nil
}

func createPropertyArgs(p model.NewProperty) []any {
	return []any{
		p.Title,
		p.Description,
		p.OwnerID,
		p.CoverPhotoURL,
		p.ThumbnailPhotoURL,
		model.ToMinorUnits(p.CostPerNight),
		p.ParkingSpaces,
		p.NumberOfBathrooms,
		p.NumberOfBedrooms,
		p.Province,
		p.City,
		p.Country,
		p.Street,
		p.PostCode,
	}
}
