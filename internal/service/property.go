package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stevenls811118/LightBnB/internal/errs"
	"github.com/stevenls811118/LightBnB/internal/lib/job"
	"github.com/stevenls811118/LightBnB/internal/model"
	"github.com/stevenls811118/LightBnB/internal/validation"
)

var ownerNotFoundCode = "OWNER_NOT_FOUND"

type PropertyService struct {
	properties propertyStore
	users      userStore
	tasks      TaskEnqueuer
	logger     *zerolog.Logger
}

func NewPropertyService(properties propertyStore, users userStore, tasks TaskEnqueuer, logger *zerolog.Logger) *PropertyService {
	return &PropertyService{properties: properties, users: users, tasks: tasks, logger: nopLogger(logger)}
}

// Search returns matching properties, cheapest first. Rejected filter
// values come back as a 400 listing each offending field.
func (s *PropertyService) Search(ctx context.Context, filter model.PropertyFilter, limit int) ([]model.PropertyWithRating, error) {
	properties, err := s.properties.Search(ctx, filter, limit)
	if err != nil {
		return nil, validation.ToHTTPError(err)
	}
	return properties, nil
}

// Create lists a new property for an existing owner and queues a
// confirmation email to them.
func (s *PropertyService) Create(ctx context.Context, property model.NewProperty) (*model.Property, error) {
	owner, err := s.users.GetByID(ctx, property.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errs.NewBadRequestError("The referenced Owner does not exist", true, &ownerNotFoundCode,
			[]errs.FieldError{{Field: "owner_id", Error: "does not exist"}}, nil)
	}

	created, err := s.properties.Create(ctx, property)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("property_id", created.ID).
		Int64("owner_id", created.OwnerID).
		Msg("property created")

	task, err := job.NewPropertyListedEmailTask(job.PropertyListedEmailPayload{
		To:         owner.Email,
		OwnerName:  owner.Name,
		PropertyID: created.ID,
		Title:      created.Title,
		City:       created.City,
	})
	enqueue(ctx, s.tasks, s.logger, task, err)

	return created, nil
}
