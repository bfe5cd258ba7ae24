package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names stored in Redis; asynq routes on them.
const (
	TaskWelcome        = "email:welcome"
	TaskPropertyListed = "email:property_listed"
)

const emailTaskTimeout = 30 * time.Second

// WelcomeEmailPayload is sent after a user registers.
type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

// PropertyListedEmailPayload is sent to an owner after a listing is created.
type PropertyListedEmailPayload struct {
	To         string `json:"to"`
	OwnerName  string `json:"owner_name"`
	PropertyID int64  `json:"property_id"`
	Title      string `json:"title"`
	City       string `json:"city"`
}

// NewWelcomeEmailTask builds a retried task on the default queue.
func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to, Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal welcome email payload: %w", err)
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueDefault),
		asynq.Timeout(emailTaskTimeout),
	), nil
}

// NewPropertyListedEmailTask builds a low priority confirmation task.
func NewPropertyListedEmailTask(p PropertyListedEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal property listed payload: %w", err)
	}

	return asynq.NewTask(
		TaskPropertyListed,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(QueueLow),
		asynq.Timeout(emailTaskTimeout),
	), nil
}
