package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Delivery headers.
const (
	HeaderSignature  = "X-Caliper-Signature"
	HeaderWebhookID  = "X-Caliper-Webhook-Id"
	HeaderDeliveryID = "X-Caliper-Delivery-Id"
	HeaderEventType  = "X-Caliper-Event-Type"

	unknownEventType = "unknown"
)

// Config bounds one delivery.
type Config struct {
	// Timeout applies to each HTTP attempt separately.
	Timeout time.Duration

	MaxAttempts int

	// BaseBackoff is scaled by 2^attempt after a retryable failure, so the
	// default waits 2s after the first attempt and 4s after the second.
	BaseBackoff time.Duration
}

// DefaultConfig returns the production delivery settings.
func DefaultConfig() Config {
	return Config{
		Timeout:     30 * time.Second,
		MaxAttempts: 3,
		BaseBackoff: time.Second,
	}
}

// Result is the outcome of one webhook delivery, across all its attempts.
type Result struct {
	WebhookID  string
	DeliveryID string
	EventType  string
	Success    bool

	// StatusCode is the last HTTP status received, or 0 if no response came back.
	StatusCode int
	Attempts   int
	Err        error
}

// Deliverer POSTs signed payloads to webhook targets.
type Deliverer struct {
	client *resty.Client
	cfg    Config

	// sleep waits between attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewDeliverer creates a deliverer. Zero config fields take their defaults.
func NewDeliverer(cfg Config) *Deliverer {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = def.BaseBackoff
	}

	return &Deliverer{
		client: resty.New().SetHeader("User-Agent", "caliper-gateway/1.0"),
		cfg:    cfg,
		sleep:  sleepContext,
	}
}

// Deliver sends payload to hook. 2xx is success and 4xx is terminal.
// Transport errors and every other status are retried until MaxAttempts.
// The delivery id is fixed across attempts so receivers can dedupe.
func (d *Deliverer) Deliver(ctx context.Context, hook *v1.Webhook, eventType string, payload []byte) Result {
	if eventType == "" {
		eventType = unknownEventType
	}
	res := Result{
		WebhookID:  hook.WebhookID,
		DeliveryID: uuid.NewString(),
		EventType:  eventType,
	}

	headers := map[string]string{
		"Content-Type":   "application/json",
		HeaderSignature:  Sign(hook.Secret, payload),
		HeaderWebhookID:  hook.WebhookID,
		HeaderDeliveryID: res.DeliveryID,
		HeaderEventType:  eventType,
	}

	inFlight.Inc()
	defer inFlight.Dec()

	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		res.Attempts = attempt
		status, err := d.post(ctx, hook, headers, payload)
		res.StatusCode = status

		switch {
		case err == nil && status >= 200 && status < 300:
			res.Success = true
			d.record(res, outcomeDelivered)
			return res
		case err == nil && status >= 400 && status < 500:
			res.Err = fmt.Errorf("client error: %d %s", status, http.StatusText(status))
			d.record(res, outcomeClientError)
			return res
		case err != nil:
			res.Err = fmt.Errorf("network error: %w", err)
		default:
			res.Err = fmt.Errorf("server error: %d %s", status, http.StatusText(status))
		}

		if attempt == d.cfg.MaxAttempts {
			break
		}
		backoff := d.cfg.BaseBackoff * time.Duration(1<<attempt)
		slog.Debug("[Webhook] Retrying delivery",
			"webhook_id", hook.WebhookID,
			"delivery_id", res.DeliveryID,
			"attempt", attempt,
			"backoff", backoff,
			"error", res.Err)
		if err := d.sleep(ctx, backoff); err != nil {
			res.Err = fmt.Errorf("delivery canceled after %d attempts: %w", attempt, err)
			d.record(res, outcomeCanceled)
			return res
		}
	}

	res.Err = fmt.Errorf("giving up after %d attempts: %w", res.Attempts, res.Err)
	d.record(res, outcomeExhausted)
	return res
}

// post performs one attempt under its own timeout. Custom headers are applied
// last and may override the defaults.
func (d *Deliverer) post(ctx context.Context, hook *v1.Webhook, headers map[string]string, payload []byte) (int, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	resp, err := d.client.R().
		SetContext(attemptCtx).
		SetHeaders(headers).
		SetHeaders(hook.Headers).
		SetBody(payload).
		Post(hook.TargetURL)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}

func (d *Deliverer) record(res Result, outcome string) {
	deliveriesTotal.WithLabelValues(outcome).Inc()
	deliveryAttempts.Observe(float64(res.Attempts))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
