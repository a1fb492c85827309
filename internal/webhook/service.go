package webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/aevon-lab/caliper-gateway/internal/core/storage"
	"github.com/google/uuid"
)

// ErrInvalidWebhook wraps every request validation failure.
var ErrInvalidWebhook = errors.New("invalid webhook")

// Service implements sensor-scoped webhook CRUD.
type Service struct {
	store      storage.WebhookStore
	eventTypes map[string]bool
	now        func() time.Time
}

// NewService creates the webhook service. eventTypes is the closed set of
// tags accepted in filters.eventTypes.
func NewService(store storage.WebhookStore, eventTypes []string) *Service {
	if store == nil {
		panic("webhook: store must not be nil")
	}
	known := make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		known[t] = true
	}
	return &Service{
		store:      store,
		eventTypes: known,
		now:        time.Now,
	}
}

// Create registers a webhook for sensorID with a fresh id and signing secret.
// Active defaults to true.
func (s *Service) Create(ctx context.Context, sensorID string, req *v1.CreateWebhookRequest) (*v1.Webhook, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	if err := s.checkEventTypes(req.Filters); err != nil {
		return nil, err
	}

	secret, err := NewSecret()
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	now := s.now().UTC()
	hook := &v1.Webhook{
		WebhookID:   uuid.NewString(),
		SensorID:    sensorID,
		Name:        req.Name,
		Description: req.Description,
		TargetURL:   req.TargetURL,
		Filters:     req.Filters,
		Active:      active,
		Headers:     req.Headers,
		Secret:      secret,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateWebhook(ctx, hook); err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}
	return hook, nil
}

// Get returns storage.ErrNotFound when sensorID owns no such webhook.
func (s *Service) Get(ctx context.Context, sensorID, webhookID string) (*v1.Webhook, error) {
	return s.store.GetWebhook(ctx, sensorID, webhookID)
}

func (s *Service) List(ctx context.Context, sensorID string) ([]*v1.Webhook, error) {
	return s.store.ListWebhooks(ctx, sensorID)
}

// Update applies the supplied fields only. UpdatedAt is bumped even when the
// request changes nothing.
func (s *Service) Update(ctx context.Context, sensorID, webhookID string, req *v1.UpdateWebhookRequest) (*v1.Webhook, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	if err := s.checkEventTypes(req.Filters); err != nil {
		return nil, err
	}

	hook, err := s.store.GetWebhook(ctx, sensorID, webhookID)
	if err != nil {
		return nil, err
	}
	req.Apply(hook, s.now().UTC())
	if err := s.store.UpdateWebhook(ctx, hook); err != nil {
		return nil, err
	}
	return hook, nil
}

func (s *Service) Delete(ctx context.Context, sensorID, webhookID string) error {
	return s.store.DeleteWebhook(ctx, sensorID, webhookID)
}

func (s *Service) checkEventTypes(f *v1.Filters) error {
	if f == nil {
		return nil
	}
	for _, t := range f.EventTypes {
		if !s.eventTypes[t] {
			return fmt.Errorf("%w: unknown event type %q in filters.eventTypes", ErrInvalidWebhook, t)
		}
	}
	return nil
}
