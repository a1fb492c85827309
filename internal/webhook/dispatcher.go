package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/aevon-lab/caliper-gateway/internal/core/storage"
)

// sendTimeLayout matches the millisecond ISO-8601 form sensors send.
const sendTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Batch tracks the deliveries started by one Dispatch call.
type Batch struct {
	wg sync.WaitGroup

	mu      sync.Mutex
	results []Result
}

func (b *Batch) add(r Result) {
	b.mu.Lock()
	b.results = append(b.results, r)
	b.mu.Unlock()
}

// Wait blocks until every delivery of the batch has finished and returns
// their results in completion order.
func (b *Batch) Wait() []Result {
	b.wg.Wait()
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Result(nil), b.results...)
}

// Dispatcher fans stored events out to the sensor's matching webhooks.
type Dispatcher struct {
	store     storage.WebhookStore
	deliverer *Deliverer
	now       func() time.Time

	// inflight covers every batch, for Drain at shutdown.
	inflight sync.WaitGroup
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(store storage.WebhookStore, deliverer *Deliverer) *Dispatcher {
	if store == nil {
		panic("webhook: store must not be nil")
	}
	if deliverer == nil {
		panic("webhook: deliverer must not be nil")
	}
	return &Dispatcher{
		store:     store,
		deliverer: deliverer,
		now:       time.Now,
	}
}

// Dispatch delivers every event of env to every active webhook of sensorID
// whose filters it matches, one goroutine per (event, webhook) pair. It
// returns immediately; callers that need the outcome call Batch.Wait.
//
// Deliveries outlive ctx's cancellation, so a finished HTTP request does not
// abort them. Failures are logged and never reported to the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, sensorID string, env *v1.Envelope) *Batch {
	b := &Batch{}
	if env == nil || len(env.Data) == 0 {
		return b
	}

	ctx = context.WithoutCancel(ctx)
	b.wg.Add(1)
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		defer b.wg.Done()
		d.fanOut(ctx, b, sensorID, env)
	}()
	return b
}

func (d *Dispatcher) fanOut(ctx context.Context, b *Batch, sensorID string, env *v1.Envelope) {
	hooks, err := d.store.ListWebhooks(ctx, sensorID)
	if err != nil {
		slog.Error("[Webhook] Failed to load webhooks", "sensor_id", sensorID, "error", err)
		return
	}

	var active []*v1.Webhook
	for _, h := range hooks {
		if h.Active {
			active = append(active, h)
		}
	}
	if len(active) == 0 {
		return
	}

	slog.Debug("[Webhook] Dispatching events",
		"sensor_id", sensorID,
		"events", len(env.Data),
		"webhooks", len(active))

	for _, event := range env.Data {
		for _, hook := range active {
			if !Matches(event, hook.Filters) {
				continue
			}
			payload, err := json.Marshal(env.Single(event, d.now().UTC().Format(sendTimeLayout)))
			if err != nil {
				slog.Error("[Webhook] Failed to encode payload", "webhook_id", hook.WebhookID, "error", err)
				continue
			}

			b.wg.Add(1)
			d.inflight.Add(1)
			go func(hook *v1.Webhook, event json.RawMessage) {
				defer d.inflight.Done()
				defer b.wg.Done()

				res := d.deliverer.Deliver(ctx, hook, stringAt(event, "type"), payload)
				logResult(res)
				b.add(res)
			}(hook, event)
		}
	}
}

func logResult(res Result) {
	if res.Success {
		slog.Info("[Webhook] Delivered",
			"webhook_id", res.WebhookID,
			"delivery_id", res.DeliveryID,
			"event_type", res.EventType,
			"status", res.StatusCode,
			"attempts", res.Attempts)
		return
	}
	slog.Warn("[Webhook] Delivery failed",
		"webhook_id", res.WebhookID,
		"delivery_id", res.DeliveryID,
		"event_type", res.EventType,
		"status", res.StatusCode,
		"attempts", res.Attempts,
		"error", res.Err)
}

// Drain waits for all in-flight deliveries or until ctx is done.
func (d *Dispatcher) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
