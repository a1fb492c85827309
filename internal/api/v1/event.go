package v1

import (
	"encoding/json"
	"time"
)

// StoredEvent is one Caliper event as persisted by the event store.
type StoredEvent struct {
	// PartitionKey spreads writes: EVENT#<date>#<hour/6>#<shard>.
	PartitionKey string `json:"partitionKey"`

	// SortKey orders events of one sensor within a partition.
	SortKey string `json:"sortKey"`

	// SensorID is the authenticated sensor that submitted the envelope.
	// It is the ownership boundary for queries and webhooks.
	SensorID string `json:"sensorId"`

	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	Action     string    `json:"action"`
	ActorID    string    `json:"actorId,omitempty"`
	ObjectID   string    `json:"objectId,omitempty"`
	ObjectType string    `json:"objectType,omitempty"`
	EventTime  time.Time `json:"eventTime"`

	// SendTime is copied from the envelope.
	SendTime time.Time `json:"sendTime"`

	// Index is the position of the event inside its envelope. Used as the
	// sort fallback for events sharing an eventTime.
	Index int `json:"index"`

	StoredAt  time.Time `json:"storedAt"`
	ExpiresAt time.Time `json:"ttl"`

	// Payload is the event exactly as submitted.
	Payload json.RawMessage `json:"event"`
}

// EventQuery scopes an analytics read to one sensor.
type EventQuery struct {
	SensorID  string
	ActorID   string
	ObjectID  string
	EventType string
	Start     time.Time
	End       time.Time
	Limit     int
	Offset    int
}

// TypeCount is the number of stored events of one type.
type TypeCount struct {
	EventType string `json:"eventType"`
	Count     int64  `json:"count"`
}
