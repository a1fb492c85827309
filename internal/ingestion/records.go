package ingestion

import (
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/aevon-lab/caliper-gateway/internal/core/partition"
	"github.com/tidwall/gjson"
)

// buildRecords turns a validated envelope into storage records. Index
// fields are read straight from the raw JSON; the payload itself is kept
// byte for byte.
func buildRecords(sensorID string, env *v1.Envelope, storedAt time.Time, retention time.Duration) []*v1.StoredEvent {
	sendTime := parseTime(env.SendTime, storedAt)
	expiresAt := storedAt.Add(retention)

	records := make([]*v1.StoredEvent, len(env.Data))
	for i, raw := range env.Data {
		fields := gjson.GetManyBytes(raw, "id", "type", "action", "actor.id", "object.id", "object.type", "eventTime")
		eventID := fields[0].String()
		eventTime := parseTime(fields[6].String(), storedAt)

		records[i] = &v1.StoredEvent{
			PartitionKey: partition.EventKey(eventTime, eventID),
			SortKey:      partition.SortKey(sensorID, eventTime, i),
			SensorID:     sensorID,
			EventID:      eventID,
			EventType:    fields[1].String(),
			Action:       fields[2].String(),
			ActorID:      stringField(fields[3]),
			ObjectID:     stringField(fields[4]),
			ObjectType:   stringField(fields[5]),
			EventTime:    eventTime,
			SendTime:     sendTime,
			Index:        i,
			StoredAt:     storedAt,
			ExpiresAt:    expiresAt,
			Payload:      raw,
		}
	}
	return records
}

// stringField ignores non-string values such as an actor given only as an
// object without id.
func stringField(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// parseTime accepts any RFC 3339 timestamp the validator let through and
// falls back when the field is absent.
func parseTime(s string, fallback time.Time) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fallback.UTC()
	}
	return t.UTC()
}

// chunk splits records into consecutive slices of at most size.
func chunk(records []*v1.StoredEvent, size int) [][]*v1.StoredEvent {
	var chunks [][]*v1.StoredEvent
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}
