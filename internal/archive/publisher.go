package archive

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/segmentio/kafka-go"
)

// Publisher hands stored events to the archival log. Callers treat failures
// as non-fatal: the events are already durable in the event store.
type Publisher interface {
	Publish(ctx context.Context, sensorID string, events []*v1.StoredEvent) error
}

// NopPublisher discards everything. Used when archival is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, []*v1.StoredEvent) error { return nil }

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one protobuf-encoded record per event, keyed by
// sensor so a sensor's events stay ordered within a partition.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
	now     func() time.Time
}

// NewKafkaPublisher creates a synchronous writer that waits for every
// in-sync replica.
func NewKafkaPublisher(brokers []string, topic string, timeout time.Duration) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: timeout,
		Async:        false,
	}
	return newKafkaPublisher(writer, timeout)
}

func newKafkaPublisher(w messageWriter, timeout time.Duration) *KafkaPublisher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &KafkaPublisher{writer: w, timeout: timeout, now: time.Now}
}

// Publish encodes and writes every event in one call.
func (p *KafkaPublisher) Publish(ctx context.Context, sensorID string, events []*v1.StoredEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		value, err := EncodeRecord(evt)
		if err != nil {
			publishedTotal.WithLabelValues("encode_error").Inc()
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(sensorID),
			Value: value,
			Time:  p.now(),
			Headers: []kafka.Header{
				{Key: "content-type", Value: []byte(ContentType)},
				{Key: "event-type", Value: []byte(evt.EventType)},
			},
		})
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msgs...); err != nil {
		publishedTotal.WithLabelValues("failed").Add(float64(len(msgs)))
		return fmt.Errorf("failed to publish %d records: %w", len(msgs), err)
	}

	publishedTotal.WithLabelValues("published").Add(float64(len(msgs)))
	slog.Debug("[Archive] Published records", "sensor_id", sensorID, "records", len(msgs))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
