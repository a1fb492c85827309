package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aevon-lab/caliper-gateway/internal/auth"
	"github.com/stretchr/testify/require"
)

func TestSensorsAdapter_LookupSensor(t *testing.T) {
	columns := []string{"api_key", "sensor_id", "name", "active"}

	tests := []struct {
		name       string
		rows       *sqlmock.Rows
		queryErr   error
		wantSensor string
		wantErr    error
		errText    string
	}{
		{
			name:       "active sensor",
			rows:       sqlmock.NewRows(columns).AddRow("key-1", "sensor-1", "LMS", true),
			wantSensor: "sensor-1",
		},
		{
			name:    "inactive sensor is not found",
			rows:    sqlmock.NewRows(columns).AddRow("key-1", "sensor-1", "LMS", false),
			wantErr: auth.ErrSensorNotFound,
		},
		{
			name:    "unknown key",
			rows:    sqlmock.NewRows(columns),
			wantErr: auth.ErrSensorNotFound,
		},
		{
			name:     "database failure is not a miss",
			queryErr: errors.New("connection refused"),
			errText:  "failed to look up sensor",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			exp := mock.ExpectQuery(regexp.QuoteMeta(queryLookupSensor)).WithArgs("key-1")
			if tc.queryErr != nil {
				exp.WillReturnError(tc.queryErr)
			} else {
				exp.WillReturnRows(tc.rows)
			}

			sensor, err := NewSensorsAdapter(db).LookupSensor(context.Background(), "key-1")
			switch {
			case tc.wantErr != nil:
				require.ErrorIs(t, err, tc.wantErr)
			case tc.errText != "":
				require.ErrorContains(t, err, tc.errText)
				require.NotErrorIs(t, err, auth.ErrSensorNotFound)
			default:
				require.NoError(t, err)
				require.Equal(t, tc.wantSensor, sensor.SensorID)
				require.True(t, sensor.Active)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
