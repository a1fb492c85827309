package v1

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// Webhook is a sensor-owned subscription that re-delivers matching events.
type Webhook struct {
	WebhookID   string            `json:"webhookId"`
	SensorID    string            `json:"sensorId"`
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	TargetURL   string            `json:"targetUrl"`
	Filters     *Filters          `json:"filters,omitempty"`
	Active      bool              `json:"active"`
	Headers     map[string]string `json:"headers,omitempty"`

	// Secret signs every delivery. It is returned once, on creation.
	Secret string `json:"secret,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Redacted returns a copy without the signing secret.
func (w Webhook) Redacted() Webhook {
	w.Secret = ""
	return w
}

// Filters narrows which events a webhook receives. Every present predicate
// must hold.
type Filters struct {
	EventTypes []string `json:"eventTypes,omitempty"`
	ActorID    string   `json:"actorId,omitempty"`
	ObjectType string   `json:"objectType,omitempty"`
}

// CreateWebhookRequest is the body of POST /webhooks.
type CreateWebhookRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	TargetURL   string            `json:"targetUrl"`
	Filters     *Filters          `json:"filters"`
	Active      *bool             `json:"active"`
	Headers     map[string]string `json:"headers"`
}

// Validate checks the structural rules of a create request.
func (r *CreateWebhookRequest) Validate() error {
	if err := validateName(r.Name); err != nil {
		return err
	}
	if err := validateTargetURL(r.TargetURL); err != nil {
		return err
	}
	return r.Filters.validate()
}

// UpdateWebhookRequest is the body of PATCH /webhooks/:id.
// Nil fields are left unchanged.
type UpdateWebhookRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	TargetURL   *string            `json:"targetUrl"`
	Filters     *Filters           `json:"filters"`
	Active      *bool              `json:"active"`
	Headers     *map[string]string `json:"headers"`
}

// Validate checks the fields that are present.
func (r *UpdateWebhookRequest) Validate() error {
	if r.Name != nil {
		if err := validateName(*r.Name); err != nil {
			return err
		}
	}
	if r.TargetURL != nil {
		if err := validateTargetURL(*r.TargetURL); err != nil {
			return err
		}
	}
	return r.Filters.validate()
}

// Apply copies every supplied field onto w and bumps UpdatedAt.
func (r *UpdateWebhookRequest) Apply(w *Webhook, now time.Time) {
	if r.Name != nil {
		w.Name = *r.Name
	}
	if r.Description != nil {
		w.Description = *r.Description
	}
	if r.TargetURL != nil {
		w.TargetURL = *r.TargetURL
	}
	if r.Filters != nil {
		w.Filters = r.Filters
	}
	if r.Active != nil {
		w.Active = *r.Active
	}
	if r.Headers != nil {
		w.Headers = *r.Headers
	}
	w.UpdatedAt = now
}

func (f *Filters) validate() error {
	if f == nil {
		return nil
	}
	if f.EventTypes != nil && len(f.EventTypes) == 0 {
		return fmt.Errorf("filters.eventTypes must contain at least one event type")
	}
	return nil
}

// MaxWebhookNameLength bounds Webhook.Name in characters.
const MaxWebhookNameLength = 100

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return fmt.Errorf("name is required")
	}
	if n > MaxWebhookNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxWebhookNameLength)
	}
	return nil
}

func validateTargetURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("targetUrl is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("targetUrl must be an absolute http(s) URL")
	}
	return nil
}
