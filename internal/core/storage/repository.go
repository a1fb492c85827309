package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
)

var (
	// ErrDuplicate is returned when an event with the same (sensor_id, event_id) already exists,
	// or a webhook id is reused.
	ErrDuplicate = errors.New("record already exists")

	// ErrNotFound is returned when a keyed read, update or delete matches nothing.
	ErrNotFound = errors.New("record not found")
)

// MaxBatchSize is the most records one SaveBatch call accepts.
const MaxBatchSize = 25

// EventStore defines the interface for storing and retrieving Caliper events.
type EventStore interface {
	// SaveBatch writes at most MaxBatchSize events atomically. Events that
	// already exist are skipped, not reported.
	SaveBatch(ctx context.Context, events []*v1.StoredEvent) error

	// GetEvent returns ErrNotFound when the sensor owns no event with that id.
	GetEvent(ctx context.Context, sensorID, eventID string) (*v1.StoredEvent, error)

	// QueryEvents returns the sensor's events newest first, filtered by every
	// non-zero field of q.
	QueryEvents(ctx context.Context, q v1.EventQuery) ([]*v1.StoredEvent, error)

	// CountByType aggregates the events matched by q. Limit and Offset are ignored.
	CountByType(ctx context.Context, q v1.EventQuery) ([]v1.TypeCount, error)

	// ListScores returns generated.scoreGiven of every matched GradeEvent, as
	// the exact decimal text submitted.
	ListScores(ctx context.Context, q v1.EventQuery) ([]string, error)

	// DeleteExpired removes events whose ttl is before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// WebhookStore persists webhook subscriptions keyed by (sensor_id, webhook_id).
type WebhookStore interface {
	CreateWebhook(ctx context.Context, w *v1.Webhook) error
	GetWebhook(ctx context.Context, sensorID, webhookID string) (*v1.Webhook, error)
	ListWebhooks(ctx context.Context, sensorID string) ([]*v1.Webhook, error)

	// UpdateWebhook replaces the mutable fields of an existing webhook.
	UpdateWebhook(ctx context.Context, w *v1.Webhook) error
	DeleteWebhook(ctx context.Context, sensorID, webhookID string) error
}
