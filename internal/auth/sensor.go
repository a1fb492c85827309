package auth

import (
	"context"
	"errors"
)

// ErrSensorNotFound is returned by a SensorLookup when the key is unknown or
// the sensor it belongs to is inactive.
var ErrSensorNotFound = errors.New("sensor not found or inactive")

// SensorIdentity is the authenticated sensor behind an API key.
type SensorIdentity struct {
	APIKey   string `yaml:"api_key" json:"-"`
	SensorID string `yaml:"sensor_id" json:"sensorId"`
	Name     string `yaml:"name" json:"name"`
	Active   bool   `yaml:"active" json:"active"`
}

// SensorLookup resolves an API key to its sensor.
type SensorLookup interface {
	LookupSensor(ctx context.Context, apiKey string) (*SensorIdentity, error)
}

// ChainLookup tries each lookup in order and returns the first sensor found.
// A lookup answering ErrSensorNotFound passes the key on; any other error
// stops the chain.
type ChainLookup []SensorLookup

func (c ChainLookup) LookupSensor(ctx context.Context, apiKey string) (*SensorIdentity, error) {
	for _, l := range c {
		sensor, err := l.LookupSensor(ctx, apiKey)
		if err == nil {
			return sensor, nil
		}
		if !errors.Is(err, ErrSensorNotFound) {
			return nil, err
		}
	}
	return nil, ErrSensorNotFound
}
