package auth

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StaticLookup serves sensors from a fixed set, typically loaded from the
// sensors file named by auth.sensors_file.
type StaticLookup struct {
	sensors map[string]*SensorIdentity
}

type sensorsFile struct {
	Sensors []*SensorIdentity `yaml:"sensors"`
}

// NewStaticLookup indexes sensors by API key. Duplicate keys are rejected.
func NewStaticLookup(sensors []*SensorIdentity) (*StaticLookup, error) {
	byKey := make(map[string]*SensorIdentity, len(sensors))
	for i, s := range sensors {
		if s.APIKey == "" || s.SensorID == "" {
			return nil, fmt.Errorf("sensor %d: api_key and sensor_id are required", i)
		}
		if _, dup := byKey[s.APIKey]; dup {
			return nil, fmt.Errorf("sensor %q: duplicate api_key", s.SensorID)
		}
		byKey[s.APIKey] = s
	}
	return &StaticLookup{sensors: byKey}, nil
}

// LoadSensorsFile reads a YAML file of the form
//
//	sensors:
//	  - api_key: ...
//	    sensor_id: ...
//	    name: ...
//	    active: true
func LoadSensorsFile(path string) (*StaticLookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sensors file: %w", err)
	}
	var f sensorsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse sensors file: %w", err)
	}
	return NewStaticLookup(f.Sensors)
}

func (l *StaticLookup) LookupSensor(_ context.Context, apiKey string) (*SensorIdentity, error) {
	s, ok := l.sensors[apiKey]
	if !ok || !s.Active {
		return nil, ErrSensorNotFound
	}
	copied := *s
	return &copied, nil
}
