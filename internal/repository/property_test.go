package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevenls811118/LightBnB/internal/model"
	"github.com/stevenls811118/LightBnB/internal/sqlerr"
	"github.com/stevenls811118/LightBnB/internal/validation"
)

func propertyRow(id int64, city string, cost int64) []any {
	return []any{
		id, int64(2), "Speed lamp", "description",
		"https://images.example.com/thumb.jpg", "https://images.example.com/cover.jpg", cost,
		int32(2), int32(1), int32(3),
		"Canada", "536 Namsub Highway", city, "Quebec",
		"28142", true,
	}
}

func TestPropertyRepositorySearch(t *testing.T) {
	db := &fakeQuerier{rows: [][]any{
		append(propertyRow(1, "Vancouver", 9300), 4.5),
		append(propertyRow(2, "North Vancouver", 12000), 3.25),
	}}
	repo := NewPropertyRepository(db, nil, 0)

	results, err := repo.Search(context.Background(), model.PropertyFilter{City: "#Vancouver"}, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, int64(1), results[0].ID)
	assert.Equal(t, int64(9300), results[0].CostPerNight)
	assert.Equal(t, 4.5, results[0].AverageRating)
	assert.Equal(t, "North Vancouver", results[1].City)

	call := db.last()
	assert.Contains(t, call.sql, "city LIKE $1")
	assert.Equal(t, []any{"%Vancouver%", 5}, call.args)
}

func TestPropertyRepositorySearchEmpty(t *testing.T) {
	repo := NewPropertyRepository(&fakeQuerier{}, nil, 0)

	results, err := repo.Search(context.Background(), model.PropertyFilter{}, 0)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestPropertyRepositorySearchValidationSkipsDatabase(t *testing.T) {
	db := &fakeQuerier{}
	repo := NewPropertyRepository(db, nil, 0)

	minimum := -5.0
	_, err := repo.Search(context.Background(), model.PropertyFilter{MinimumPricePerNight: &minimum}, 0)

	var problems validation.CustomValidationErrors
	require.ErrorAs(t, err, &problems)
	assert.Empty(t, db.calls)
}

func TestPropertyRepositorySearchFailures(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		repo := NewPropertyRepository(&fakeQuerier{queryEr: errors.New("boom")}, nil, 0)
		_, err := repo.Search(context.Background(), model.PropertyFilter{}, 0)

		var queryErr *sqlerr.QueryError
		require.ErrorAs(t, err, &queryErr)
		assert.Equal(t, "search properties", queryErr.Op)
	})

	t.Run("rows", func(t *testing.T) {
		repo := NewPropertyRepository(&fakeQuerier{rowErr: errors.New("conn lost")}, nil, 0)
		results, err := repo.Search(context.Background(), model.PropertyFilter{}, 0)

		assert.Nil(t, results)
		var queryErr *sqlerr.QueryError
		require.ErrorAs(t, err, &queryErr)
	})
}

func TestPropertyRepositoryCreateStoresMinorUnits(t *testing.T) {
	db := &fakeQuerier{rows: [][]any{propertyRow(31, "Montreal", 10000)}}
	repo := NewPropertyRepository(db, nil, 0)

	created, err := repo.Create(context.Background(), model.NewProperty{
		OwnerID:           2,
		Title:             "Speed lamp",
		Description:       "description",
		ThumbnailPhotoURL: "https://images.example.com/thumb.jpg",
		CoverPhotoURL:     "https://images.example.com/cover.jpg",
		CostPerNight:      100.00,
		ParkingSpaces:     2,
		NumberOfBathrooms: 1,
		NumberOfBedrooms:  3,
		Country:           "Canada",
		Street:            "536 Namsub Highway",
		City:              "Montreal",
		Province:          "Quebec",
		PostCode:          "28142",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(31), created.ID)
	assert.Equal(t, int64(10000), created.CostPerNight)

	call := db.last()
	require.Len(t, call.args, 14)
	assert.Equal(t, int64(10000), call.args[5])
	assert.Equal(t, []any{
		"Speed lamp", "description", int64(2),
		"https://images.example.com/cover.jpg", "https://images.example.com/thumb.jpg",
		int64(10000), int32(2), int32(1), int32(3),
		"Quebec", "Montreal", "Canada", "536 Namsub Highway", "28142",
	}, call.args)
	assert.Contains(t, call.sql, "$14)")
}

func TestPropertyRepositoryCreateRejectsCostAboveCap(t *testing.T) {
	db := &fakeQuerier{}
	repo := NewPropertyRepository(db, nil, 0)

	for _, cost := range []float64{3e7, 1e17, -5} {
		_, err := repo.Create(context.Background(), model.NewProperty{OwnerID: 2, Title: "Speed lamp", CostPerNight: cost})

		var problems validation.CustomValidationErrors
		require.ErrorAs(t, err, &problems, "cost=%v", cost)
		assert.Equal(t, "cost_per_night", problems[0].Field)
	}
	assert.Empty(t, db.calls)
}
