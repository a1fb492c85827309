package analytics

import (
	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
)

// Limits bounds the page size of event queries.
type Limits struct {
	DefaultLimit int
	MaxLimit     int
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

func (l Limits) normalized() Limits {
	n := l
	if n.MaxLimit <= 0 {
		n.MaxLimit = maxLimit
	}
	if n.DefaultLimit <= 0 {
		n.DefaultLimit = defaultLimit
	}
	if n.DefaultLimit > n.MaxLimit {
		n.DefaultLimit = n.MaxLimit
	}
	return n
}

// EventsPage is one page of a sensor's events plus the size of the full
// filtered set.
type EventsPage struct {
	Events []*v1.StoredEvent `json:"events"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// HasMore reports whether events exist past this page.
func (p *EventsPage) HasMore() bool {
	return int64(p.Offset+p.Limit) < p.Total
}

// Summary aggregates a sensor's events matched by a query.
type Summary struct {
	SensorID    string         `json:"sensorId"`
	TotalEvents int64          `json:"totalEvents"`
	EventTypes  []v1.TypeCount `json:"eventTypes"`
	Scores      *ScoreStats    `json:"scores,omitempty"`
}
