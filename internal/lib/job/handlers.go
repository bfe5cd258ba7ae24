package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload will never succeed; don't retry it.
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().Str("type", TaskWelcome).Str("to", p.To).Logger()
	log.Info().Msg("processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(ctx, p.To, p.Name); err != nil {
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("sent welcome email")
	return nil
}

func (j *JobService) handlePropertyListedTask(ctx context.Context, t *asynq.Task) error {
	var p PropertyListedEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal property listed payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskPropertyListed).
		Str("to", p.To).
		Int64("property_id", p.PropertyID).
		Logger()
	log.Info().Msg("processing property listed task")

	if err := j.mailer.SendPropertyListedEmail(ctx, p.To, p.OwnerName, p.Title, p.City); err != nil {
		log.Error().Err(err).Msg("failed to send property listed email")
		return err
	}

	log.Info().Msg("sent property listed email")
	return nil
}
