package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	httperr "github.com/aevon-lab/caliper-gateway/internal/core/errors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
)

const (
	// TestSensorID is the sensor every test key maps to outside production.
	TestSensorID = "test-sensor-001"

	bearerPrefix = "Bearer "
	sensorKey    = "caliper.sensor"

	msgMissingCredentials = "Missing or invalid Authorization header"
	msgInvalidKey         = "Invalid or inactive API key"
	msgAuthFailed         = "Authentication failed"
)

// ErrMissingCredentials is returned when the Authorization header is absent
// or not a Bearer token.
var ErrMissingCredentials = errors.New("missing bearer token")

// Authenticator resolves Bearer API keys to sensors.
type Authenticator struct {
	lookup        SensorLookup
	cache         *Cache
	allowTestKeys bool

	// Dedupe concurrent lookups of the same key on a cold cache.
	group singleflight.Group
}

// NewAuthenticator creates an authenticator. allowTestKeys maps keys starting
// with "test-" or "sk_" to TestSensorID without a lookup; it must be false in
// production.
func NewAuthenticator(lookup SensorLookup, cache *Cache, allowTestKeys bool) *Authenticator {
	if lookup == nil {
		panic("auth: lookup must not be nil")
	}
	if cache == nil {
		panic("auth: cache must not be nil")
	}
	return &Authenticator{
		lookup:        lookup,
		cache:         cache,
		allowTestKeys: allowTestKeys,
	}
}

// Authenticate validates an Authorization header value.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (*SensorIdentity, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, ErrMissingCredentials
	}
	apiKey := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if apiKey == "" {
		return nil, ErrMissingCredentials
	}

	if a.allowTestKeys && isTestKey(apiKey) {
		return &SensorIdentity{APIKey: apiKey, SensorID: TestSensorID, Name: "Test Sensor", Active: true}, nil
	}

	if sensor, ok := a.cache.Get(apiKey); ok {
		return sensor, nil
	}

	v, err, _ := a.group.Do(apiKey, func() (interface{}, error) {
		sensor, err := a.lookup.LookupSensor(ctx, apiKey)
		if err != nil {
			return nil, err
		}
		if !sensor.Active {
			return nil, ErrSensorNotFound
		}
		a.cache.Set(apiKey, sensor)
		return sensor, nil
	})
	if err != nil {
		if errors.Is(err, ErrSensorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("sensor lookup failed: %w", err)
	}
	return v.(*SensorIdentity), nil
}

// Invalidate drops a cached key so the next request goes to the lookup.
func (a *Authenticator) Invalidate(apiKey string) {
	a.cache.Invalidate(apiKey)
}

func isTestKey(apiKey string) bool {
	return strings.HasPrefix(apiKey, "test-") || strings.HasPrefix(apiKey, "sk_")
}

// Middleware rejects unauthenticated requests with 401 before any handler
// runs and stores the sensor on the gin context.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sensor, err := a.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			msg := msgAuthFailed
			switch {
			case errors.Is(err, ErrMissingCredentials):
				msg = msgMissingCredentials
			case errors.Is(err, ErrSensorNotFound):
				msg = msgInvalidKey
			default:
				slog.Error("[Auth] Sensor lookup failed", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{
				ErrorType: httperr.HttpUnauthorizedError,
				Message:   msg,
			})
			return
		}
		c.Set(sensorKey, sensor)
		c.Next()
	}
}

// SensorFrom returns the sensor stored by Middleware.
func SensorFrom(c *gin.Context) (*SensorIdentity, bool) {
	v, ok := c.Get(sensorKey)
	if !ok {
		return nil, false
	}
	sensor, ok := v.(*SensorIdentity)
	return sensor, ok
}

// SensorID returns the authenticated sensor id, or "" outside Middleware.
func SensorID(c *gin.Context) string {
	if sensor, ok := SensorFrom(c); ok {
		return sensor.SensorID
	}
	return ""
}
