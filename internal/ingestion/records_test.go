package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func TestBuildRecords_IndexFields(t *testing.T) {
	storedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	env := &v1.Envelope{
		Sensor:      "https://example.edu/sensors/1",
		SendTime:    "2024-03-01T13:16:00+02:00",
		DataVersion: v1.DataVersion,
		Data: []json.RawMessage{
			json.RawMessage(`{"id":"urn:uuid:a","type":"GradeEvent","action":"Graded","actor":{"id":"https://example.edu/autograder","type":"SoftwareApplication"},"object":{"id":"https://example.edu/attempts/1","type":"Attempt"},"eventTime":"2024-03-01T23:59:59.123Z"}`),
			json.RawMessage(`{"id":"urn:uuid:b","type":"ViewEvent","action":"Viewed","actor":"https://example.edu/users/1","object":{"type":"Document"},"eventTime":"2024-03-01T05:00:00Z"}`),
		},
	}

	records := buildRecords("sensor-1", env, storedAt, 24*time.Hour)

	require.Len(t, records, 2)

	grade := records[0]
	require.Equal(t, "urn:uuid:a", grade.EventID)
	require.Equal(t, "GradeEvent", grade.EventType)
	require.Equal(t, "Graded", grade.Action)
	require.Equal(t, "https://example.edu/autograder", grade.ActorID)
	require.Equal(t, "https://example.edu/attempts/1", grade.ObjectID)
	require.Equal(t, "Attempt", grade.ObjectType)
	require.Equal(t, time.Date(2024, 3, 1, 23, 59, 59, 123000000, time.UTC), grade.EventTime)
	require.Equal(t, time.Date(2024, 3, 1, 11, 16, 0, 0, time.UTC), grade.SendTime)
	require.Equal(t, storedAt.Add(24*time.Hour), grade.ExpiresAt)
	require.Equal(t, 0, grade.Index)
	require.Contains(t, grade.PartitionKey, "EVENT#2024-03-01#3#")

	// A bare IRI actor and an object without id leave the index fields empty.
	view := records[1]
	require.Empty(t, view.ActorID)
	require.Empty(t, view.ObjectID)
	require.Equal(t, "Document", view.ObjectType)
	require.Equal(t, 1, view.Index)
	require.Contains(t, view.PartitionKey, "EVENT#2024-03-01#0#")
	require.Equal(t, "SENSOR#sensor-1#2024-03-01T05:00:00Z#1", view.SortKey)
}

func TestBuildRecords_SameEventSameShard(t *testing.T) {
	storedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	env := &v1.Envelope{Data: []json.RawMessage{
		json.RawMessage(`{"id":"urn:uuid:same","eventTime":"2024-03-01T10:00:00Z"}`),
	}}

	first := buildRecords("s", env, storedAt, time.Hour)
	second := buildRecords("s", env, storedAt.Add(time.Minute), time.Hour)

	require.Equal(t, first[0].PartitionKey, second[0].PartitionKey)
}

func TestParseTime_FallsBack(t *testing.T) {
	fallback := time.Date(2024, 1, 1, 0, 0, 0, 0, time.FixedZone("x", 3600))

	require.Equal(t, fallback.UTC(), parseTime("", fallback))
	require.Equal(t, fallback.UTC(), parseTime("yesterday", fallback))
	require.Equal(t, time.Date(2024, 2, 29, 22, 0, 0, 0, time.UTC), parseTime("2024-03-01T00:00:00+02:00", fallback))
}

func TestChunk(t *testing.T) {
	makeRecords := func(n int) []*v1.StoredEvent {
		out := make([]*v1.StoredEvent, n)
		for i := range out {
			out[i] = &v1.StoredEvent{Index: i}
		}
		return out
	}

	tests := []struct {
		name  string
		n     int
		size  int
		sizes []int
	}{
		{name: "empty", n: 0, size: 25, sizes: nil},
		{name: "under one chunk", n: 3, size: 25, sizes: []int{3}},
		{name: "exact", n: 50, size: 25, sizes: []int{25, 25}},
		{name: "remainder", n: 61, size: 25, sizes: []int{25, 25, 11}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chunks := chunk(makeRecords(tc.n), tc.size)

			var sizes []int
			next := 0
			for _, c := range chunks {
				sizes = append(sizes, len(c))
				for _, r := range c {
					require.Equal(t, next, r.Index, "order is preserved")
					next++
				}
			}
			require.Equal(t, tc.sizes, sizes)
		})
	}
}
