package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE postgres reports for a duplicate key.
const uniqueViolation = "23505"

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanStoredEventRow scans a row selected with eventColumns.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanStoredEventRow(row scanner) (*v1.StoredEvent, error) {
	var evt v1.StoredEvent
	var payload []byte

	err := row.Scan(
		&evt.PartitionKey,
		&evt.SortKey,
		&evt.SensorID,
		&evt.EventID,
		&evt.EventType,
		&evt.Action,
		&evt.ActorID,
		&evt.ObjectID,
		&evt.ObjectType,
		&evt.EventTime,
		&evt.SendTime,
		&evt.Index,
		&evt.StoredAt,
		&evt.ExpiresAt,
		&payload,
	)
	if err != nil {
		return nil, err
	}

	evt.Payload = json.RawMessage(payload)
	evt.EventTime = evt.EventTime.UTC()
	evt.SendTime = evt.SendTime.UTC()
	evt.StoredAt = evt.StoredAt.UTC()
	evt.ExpiresAt = evt.ExpiresAt.UTC()
	return &evt, nil
}

// marshalWebhookJSON encodes the JSONB columns of a webhook.
// Absent filters and headers are stored as SQL NULL rather than JSON "null".
func marshalWebhookJSON(w *v1.Webhook) (filtersJSON, headersJSON []byte, err error) {
	if w.Filters != nil {
		filtersJSON, err = json.Marshal(w.Filters)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal filters: %w", err)
		}
	}
	if len(w.Headers) > 0 {
		headersJSON, err = json.Marshal(w.Headers)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal headers: %w", err)
		}
	}
	return filtersJSON, headersJSON, nil
}

func scanWebhookRow(row scanner) (*v1.Webhook, error) {
	var w v1.Webhook
	var filtersJSON, headersJSON []byte

	err := row.Scan(
		&w.WebhookID,
		&w.SensorID,
		&w.Name,
		&w.Description,
		&w.TargetURL,
		&filtersJSON,
		&w.Active,
		&headersJSON,
		&w.Secret,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(filtersJSON) > 0 {
		if err := json.Unmarshal(filtersJSON, &w.Filters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal filters: %w", err)
		}
	}
	if len(headersJSON) > 0 {
		if err := json.Unmarshal(headersJSON, &w.Headers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal headers: %w", err)
		}
	}

	w.CreatedAt = w.CreatedAt.UTC()
	w.UpdatedAt = w.UpdatedAt.UTC()
	return &w, nil
}

// nullTime maps the zero time to SQL NULL so optional bounds can be
// passed to a prepared statement unconditionally.
func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

// jsonArg passes empty JSON as SQL NULL.
func jsonArg(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
