package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/aevon-lab/caliper-gateway/internal/core/storage"
)

// WebhooksAdapter implements storage.WebhookStore on the shared connection.
type WebhooksAdapter struct {
	db *sql.DB
}

// NewWebhooksAdapter creates a webhook store over db. It does not own db.
func NewWebhooksAdapter(db *sql.DB) *WebhooksAdapter {
	return &WebhooksAdapter{db: db}
}

// CreateWebhook returns storage.ErrDuplicate when the id is already taken.
func (a *WebhooksAdapter) CreateWebhook(ctx context.Context, w *v1.Webhook) error {
	filtersJSON, headersJSON, err := marshalWebhookJSON(w)
	if err != nil {
		return err
	}

	_, err = a.db.ExecContext(ctx, queryInsertWebhook,
		w.WebhookID,
		w.SensorID,
		w.Name,
		w.Description,
		w.TargetURL,
		jsonArg(filtersJSON),
		w.Active,
		jsonArg(headersJSON),
		w.Secret,
		w.CreatedAt.UTC(),
		w.UpdatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create webhook: %w", err)
	}

	slog.Debug("[Postgres] Created webhook",
		"sensor_id", w.SensorID,
		"webhook_id", w.WebhookID)
	return nil
}

// GetWebhook returns storage.ErrNotFound when the sensor owns no such webhook.
func (a *WebhooksAdapter) GetWebhook(ctx context.Context, sensorID, webhookID string) (*v1.Webhook, error) {
	w, err := scanWebhookRow(a.db.QueryRowContext(ctx, queryGetWebhook, sensorID, webhookID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook: %w", err)
	}
	return w, nil
}

// ListWebhooks returns every webhook of the sensor, oldest first.
func (a *WebhooksAdapter) ListWebhooks(ctx context.Context, sensorID string) ([]*v1.Webhook, error) {
	rows, err := a.db.QueryContext(ctx, queryListWebhooks, sensorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	defer rows.Close()

	hooks := make([]*v1.Webhook, 0)
	for rows.Next() {
		w, err := scanWebhookRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan webhook row: %w", err)
		}
		hooks = append(hooks, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating webhooks: %w", err)
	}

	return hooks, nil
}

// UpdateWebhook writes the mutable fields. The secret and creation time
// never change.
func (a *WebhooksAdapter) UpdateWebhook(ctx context.Context, w *v1.Webhook) error {
	filtersJSON, headersJSON, err := marshalWebhookJSON(w)
	if err != nil {
		return err
	}

	res, err := a.db.ExecContext(ctx, queryUpdateWebhook,
		w.SensorID,
		w.WebhookID,
		w.Name,
		w.Description,
		w.TargetURL,
		jsonArg(filtersJSON),
		w.Active,
		jsonArg(headersJSON),
		w.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to update webhook: %w", err)
	}
	return requireOneRow(res, "update webhook")
}

// DeleteWebhook returns storage.ErrNotFound when nothing was deleted.
func (a *WebhooksAdapter) DeleteWebhook(ctx context.Context, sensorID, webhookID string) error {
	res, err := a.db.ExecContext(ctx, queryDeleteWebhook, sensorID, webhookID)
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return requireOneRow(res, "delete webhook")
}

func requireOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: check rows affected: %w", op, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
