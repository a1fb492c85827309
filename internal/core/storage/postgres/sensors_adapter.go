package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aevon-lab/caliper-gateway/internal/auth"
)

// SensorsAdapter resolves API keys against the sensors table.
type SensorsAdapter struct {
	db *sql.DB
}

// NewSensorsAdapter creates a sensor lookup over db. It does not own db.
func NewSensorsAdapter(db *sql.DB) *SensorsAdapter {
	return &SensorsAdapter{db: db}
}

// LookupSensor implements auth.SensorLookup. Unknown keys and inactive
// sensors both answer auth.ErrSensorNotFound.
func (a *SensorsAdapter) LookupSensor(ctx context.Context, apiKey string) (*auth.SensorIdentity, error) {
	var s auth.SensorIdentity
	err := a.db.QueryRowContext(ctx, queryLookupSensor, apiKey).Scan(
		&s.APIKey,
		&s.SensorID,
		&s.Name,
		&s.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrSensorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up sensor: %w", err)
	}
	if !s.Active {
		return nil, auth.ErrSensorNotFound
	}
	return &s, nil
}
