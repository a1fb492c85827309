package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	defaultFlushInterval = time.Minute
	defaultFlushSize     = 500
	maxParallelPuts      = 8
	shutdownFlushTimeout = 30 * time.Second
)

// messageReader is the subset of *kafka.Reader the cold writer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ColdWriterConfig controls how often buffered records reach the blob store.
type ColdWriterConfig struct {
	FlushInterval time.Duration
	// FlushSize triggers an early flush once this many records are buffered.
	FlushSize int
}

func (c ColdWriterConfig) normalized() ColdWriterConfig {
	n := c
	if n.FlushInterval <= 0 {
		n.FlushInterval = defaultFlushInterval
	}
	if n.FlushSize <= 0 {
		n.FlushSize = defaultFlushSize
	}
	return n
}

type bufferedRecord struct {
	sensorID string
	record   *structpb.Struct
	msg      kafka.Message
}

// ColdWriter consumes the archive log and writes one NDJSON object per
// sensor per flush. Offsets are committed only after every object of a
// flush is stored, so a crash replays records instead of losing them.
type ColdWriter struct {
	reader messageReader
	store  BlobStore
	cfg    ColdWriterConfig
	now    func() time.Time

	mu          sync.Mutex
	pending     []bufferedRecord
	uncommitted []kafka.Message
	flushNow    chan struct{}
}

// NewKafkaReader creates a consumer-group reader for the archive topic.
func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
}

func NewColdWriter(reader messageReader, store BlobStore, cfg ColdWriterConfig) *ColdWriter {
	return &ColdWriter{
		reader:   reader,
		store:    store,
		cfg:      cfg.normalized(),
		now:      time.Now,
		flushNow: make(chan struct{}, 1),
	}
}

// Run consumes until ctx is cancelled, then flushes what is buffered and
// closes the reader.
func (w *ColdWriter) Run(ctx context.Context) error {
	slog.Info("[Archive] Starting cold storage writer",
		"flush_interval", w.cfg.FlushInterval,
		"flush_size", w.cfg.FlushSize)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.consume(gctx) })
	g.Go(func() error { return w.flushLoop(gctx) })

	err := g.Wait()
	if closeErr := w.reader.Close(); closeErr != nil {
		slog.Warn("[Archive] Failed to close reader", "error", closeErr)
	}
	return err
}

func (w *ColdWriter) consume(ctx context.Context) error {
	for {
		msg, err := w.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to fetch archive message: %w", err)
		}
		w.add(msg)
	}
}

// add buffers one message. Undecodable messages are logged and committed
// with the next flush so they do not block the partition.
func (w *ColdWriter) add(msg kafka.Message) {
	rec, err := DecodeRecord(msg.Value)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		slog.Error("[Archive] Dropping undecodable record",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err)
		w.uncommitted = append(w.uncommitted, msg)
		return
	}

	w.pending = append(w.pending, bufferedRecord{sensorID: recordSensor(rec), record: rec, msg: msg})
	if len(w.pending) >= w.cfg.FlushSize {
		select {
		case w.flushNow <- struct{}{}:
		default:
		}
	}
}

func (w *ColdWriter) flushLoop(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flushAndLog(ctx)
		case <-w.flushNow:
			w.flushAndLog(ctx)
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
			defer cancel()

			slog.Info("[Archive] Running final flush before shutdown...")
			w.flushAndLog(shutdownCtx)
			return nil
		}
	}
}

func (w *ColdWriter) flushAndLog(ctx context.Context) {
	if err := w.Flush(ctx); err != nil {
		flushFailures.Inc()
		slog.Error("[Archive] Flush failed, records kept for retry", "error", err)
	}
}

// Flush writes every buffered record and commits the consumed offsets.
// Sensors whose object failed to store stay buffered for the next flush.
func (w *ColdWriter) Flush(ctx context.Context) error {
	w.mu.Lock()
	batch := w.pending
	commit := w.uncommitted
	w.pending = nil
	w.uncommitted = nil
	w.mu.Unlock()

	if len(batch) == 0 && len(commit) == 0 {
		return nil
	}

	now := w.now().UTC()
	groups := groupBySensor(batch)

	var (
		failedMu sync.Mutex
		failed   []bufferedRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPuts)
	for _, sensorID := range sortedKeys(groups) {
		records := groups[sensorID]
		key := ObjectKey(now, sensorID)
		g.Go(func() error {
			body, err := renderNDJSON(records, now)
			if err == nil {
				err = w.store.Put(gctx, key, body)
			}
			if err != nil {
				failedMu.Lock()
				failed = append(failed, records...)
				failedMu.Unlock()
				return fmt.Errorf("sensor %s: %w", sensorID, err)
			}
			objectsWritten.Inc()
			slog.Debug("[Archive] Wrote object", "key", key, "records", len(records))
			return nil
		})
	}
	putErr := g.Wait()

	for _, r := range batch {
		commit = append(commit, r.msg)
	}

	if putErr != nil {
		// Nothing is committed: offsets are per partition, so committing the
		// stored records could skip the failed ones on restart.
		w.mu.Lock()
		w.pending = append(failed, w.pending...)
		w.uncommitted = append(commit, w.uncommitted...)
		w.mu.Unlock()
		return putErr
	}

	if len(commit) > 0 {
		if err := w.reader.CommitMessages(ctx, commit...); err != nil {
			w.mu.Lock()
			w.uncommitted = append(commit, w.uncommitted...)
			w.mu.Unlock()
			return fmt.Errorf("failed to commit %d messages: %w", len(commit), err)
		}
	}

	slog.Info("[Archive] Flushed records to cold storage",
		"records", len(batch),
		"objects", len(groups))
	return nil
}

// ObjectKey lays objects out for partition pruning by date, hour and sensor:
// events/year=YYYY/month=MM/day=DD/hour=HH/sensor=<id>/<unix-ms>-<minute>.json
func ObjectKey(now time.Time, sensorID string) string {
	t := now.UTC()
	return fmt.Sprintf("events/year=%04d/month=%02d/day=%02d/hour=%02d/sensor=%s/%d-%02d.json",
		t.Year(), t.Month(), t.Day(), t.Hour(), sensorID, t.UnixMilli(), t.Minute())
}

func groupBySensor(batch []bufferedRecord) map[string][]bufferedRecord {
	groups := make(map[string][]bufferedRecord)
	for _, r := range batch {
		groups[r.sensorID] = append(groups[r.sensorID], r)
	}
	return groups
}

func sortedKeys(m map[string][]bufferedRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func renderNDJSON(records []bufferedRecord, processedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	for i, r := range records {
		line, err := ndjsonLine(r.record, processedAt)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(line)
	}
	return buf.Bytes(), nil
}
