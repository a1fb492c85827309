package analytics

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/aevon-lab/caliper-gateway/internal/core/storage"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid analytics query")

// Service implements the read side over stored events. Every read is scoped
// to the calling sensor.
type Service struct {
	store  storage.EventStore
	limits Limits
}

func NewService(store storage.EventStore, limits Limits) *Service {
	if store == nil {
		panic("analytics: store must not be nil")
	}
	return &Service{store: store, limits: limits.normalized()}
}

// QueryEvents returns one page of events, newest first, with the total size
// of the filtered set.
func (s *Service) QueryEvents(ctx context.Context, q v1.EventQuery) (*EventsPage, error) {
	q, err := s.normalizeAndValidate(q)
	if err != nil {
		return nil, err
	}

	var (
		events []*v1.StoredEvent
		counts []v1.TypeCount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.store.QueryEvents(gctx, q)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		counts, err = s.store.CountByType(gctx, q)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if events == nil {
		events = []*v1.StoredEvent{}
	}
	return &EventsPage{
		Events: events,
		Total:  total(counts),
		Limit:  q.Limit,
		Offset: q.Offset,
	}, nil
}

// GetEvent returns storage.ErrNotFound when the sensor owns no such event.
func (s *Service) GetEvent(ctx context.Context, sensorID, eventID string) (*v1.StoredEvent, error) {
	if eventID == "" {
		return nil, invalidQueryf("event id is required")
	}
	return s.store.GetEvent(ctx, sensorID, eventID)
}

// Summary counts events per type and summarizes GradeEvent scores over the
// same filter. Limit and offset are ignored.
func (s *Service) Summary(ctx context.Context, q v1.EventQuery) (*Summary, error) {
	q, err := s.normalizeAndValidate(q)
	if err != nil {
		return nil, err
	}

	var (
		counts []v1.TypeCount
		scores []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.store.CountByType(gctx, q)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		scores, err = s.store.ListScores(gctx, q)
		if err != nil {
			return fmt.Errorf("list scores: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if counts == nil {
		counts = []v1.TypeCount{}
	}
	return &Summary{
		SensorID:    q.SensorID,
		TotalEvents: total(counts),
		EventTypes:  counts,
		Scores:      foldScores(scores),
	}, nil
}

func (s *Service) normalizeAndValidate(q v1.EventQuery) (v1.EventQuery, error) {
	if q.SensorID == "" {
		return q, invalidQueryf("sensor is required")
	}
	if !q.Start.IsZero() && !q.End.IsZero() && q.End.Before(q.Start) {
		return q, invalidQueryf("endTime must not be before startTime")
	}
	if q.Offset < 0 {
		return q, invalidQueryf("offset must not be negative")
	}

	switch {
	case q.Limit <= 0:
		q.Limit = s.limits.DefaultLimit
	case q.Limit > s.limits.MaxLimit:
		q.Limit = s.limits.MaxLimit
	}
	return q, nil
}

func total(counts []v1.TypeCount) int64 {
	var n int64
	for _, c := range counts {
		n += c.Count
	}
	return n
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
