package archive

import (
	"fmt"
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ContentType labels archive messages on the log.
const ContentType = "application/x-protobuf; messageType=google.protobuf.Struct"

// Record field names. The cold writer reads sensorId back to group objects.
const (
	fieldSensorID     = "sensorId"
	fieldEventID      = "eventId"
	fieldEventType    = "eventType"
	fieldPartitionKey = "partitionKey"
	fieldSortKey      = "sortKey"
	fieldIndex        = "index"
	fieldEventTime    = "eventTime"
	fieldSendTime     = "sendTime"
	fieldStoredAt     = "storedAt"
	fieldEvent        = "event"
	fieldProcessedAt  = "processedAt"
)

// EncodeRecord serialises a stored event as a protobuf Struct.
// The event body travels as a structured value, not a string, so archived
// lines can be queried without a second decode.
func EncodeRecord(evt *v1.StoredEvent) ([]byte, error) {
	var body structpb.Value
	if err := protojson.Unmarshal(evt.Payload, &body); err != nil {
		return nil, fmt.Errorf("failed to decode event %s: %w", evt.EventID, err)
	}

	rec := &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldSensorID:     structpb.NewStringValue(evt.SensorID),
		fieldEventID:      structpb.NewStringValue(evt.EventID),
		fieldEventType:    structpb.NewStringValue(evt.EventType),
		fieldPartitionKey: structpb.NewStringValue(evt.PartitionKey),
		fieldSortKey:      structpb.NewStringValue(evt.SortKey),
		fieldIndex:        structpb.NewNumberValue(float64(evt.Index)),
		fieldEventTime:    structpb.NewStringValue(evt.EventTime.UTC().Format(time.RFC3339Nano)),
		fieldSendTime:     structpb.NewStringValue(evt.SendTime.UTC().Format(time.RFC3339Nano)),
		fieldStoredAt:     structpb.NewStringValue(evt.StoredAt.UTC().Format(time.RFC3339Nano)),
		fieldEvent:        &body,
	}}

	data, err := proto.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record %s: %w", evt.EventID, err)
	}
	return data, nil
}

// DecodeRecord parses a message value written by EncodeRecord.
func DecodeRecord(data []byte) (*structpb.Struct, error) {
	var rec structpb.Struct
	if err := proto.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	if recordSensor(&rec) == "" {
		return nil, fmt.Errorf("record has no %s", fieldSensorID)
	}
	return &rec, nil
}

func recordSensor(rec *structpb.Struct) string {
	return rec.GetFields()[fieldSensorID].GetStringValue()
}

// ndjsonLine renders one archived record as a single JSON line stamped with
// processedAt.
func ndjsonLine(rec *structpb.Struct, processedAt time.Time) ([]byte, error) {
	out := proto.Clone(rec).(*structpb.Struct)
	out.Fields[fieldProcessedAt] = structpb.NewStringValue(processedAt.UTC().Format(time.RFC3339Nano))
	line, err := protojson.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to render record: %w", err)
	}
	return line, nil
}
