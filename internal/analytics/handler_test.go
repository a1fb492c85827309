package analytics

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/aevon-lab/caliper-gateway/internal/auth"
	httperr "github.com/aevon-lab/caliper-gateway/internal/core/errors"
	"github.com/aevon-lab/caliper-gateway/internal/core/storage"
	authmocks "github.com/aevon-lab/caliper-gateway/internal/mocks/auth"
	storagemocks "github.com/aevon-lab/caliper-gateway/internal/mocks/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, store *storagemocks.EventStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authn := auth.NewAuthenticator(authmocks.NewSensorLookup(t), auth.NewCache(time.Minute), true)
	r := gin.New()
	NewService(store, Limits{}).RegisterRoutes(r.Group("/caliper/v1p2", authn.Middleware()))
	return r
}

func get(r http.Handler, target string, authorized bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authorized {
		req.Header.Set("Authorization", "Bearer test-key")
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHandleQueryEvents_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		authorized     bool
		expectedStatus int
		expectedType   string
		configure      func(store *storagemocks.EventStore)
	}{
		{
			name:           "missing credentials returns 401",
			expectedStatus: http.StatusUnauthorized,
			expectedType:   httperr.HttpUnauthorizedError,
			configure:      func(_ *storagemocks.EventStore) {},
		},
		{
			name:           "malformed startTime returns 400",
			query:          "startTime=yesterday",
			authorized:     true,
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidQueryError,
			configure:      func(_ *storagemocks.EventStore) {},
		},
		{
			name:           "non-numeric limit returns 400",
			query:          "limit=ten",
			authorized:     true,
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidQueryError,
			configure:      func(_ *storagemocks.EventStore) {},
		},
		{
			name:           "inverted range returns 400",
			query:          "startTime=2024-03-02T00:00:00Z&endTime=2024-03-01T00:00:00Z",
			authorized:     true,
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidQueryError,
			configure:      func(_ *storagemocks.EventStore) {},
		},
		{
			name:           "store error returns 500",
			authorized:     true,
			expectedStatus: http.StatusInternalServerError,
			expectedType:   httperr.HttpInternalError,
			configure: func(store *storagemocks.EventStore) {
				store.EXPECT().QueryEvents(mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
				store.EXPECT().CountByType(mock.Anything, mock.Anything).Return(nil, nil).Maybe()
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := storagemocks.NewEventStore(t)
			tc.configure(store)

			resp := get(newRouter(t, store), "/caliper/v1p2/events?"+tc.query, tc.authorized)

			require.Equal(t, tc.expectedStatus, resp.Code)
			var errResp httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
			require.Equal(t, tc.expectedType, errResp.ErrorType)
		})
	}
}

func TestHandleQueryEvents_FiltersAndPaging(t *testing.T) {
	store := storagemocks.NewEventStore(t)

	want := v1.EventQuery{
		SensorID:  auth.TestSensorID,
		ActorID:   "https://example.edu/users/1",
		EventType: "ViewEvent",
		Start:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC),
		Limit:     10,
		Offset:    10,
	}
	stored := &v1.StoredEvent{
		SensorID:  auth.TestSensorID,
		EventID:   "urn:uuid:1",
		EventType: "ViewEvent",
		Payload:   json.RawMessage(`{"id":"urn:uuid:1","extensions":{"k":1}}`),
	}
	store.EXPECT().QueryEvents(mock.Anything, want).Return([]*v1.StoredEvent{stored}, nil).Once()
	store.EXPECT().CountByType(mock.Anything, want).Return([]v1.TypeCount{{EventType: "ViewEvent", Count: 35}}, nil).Once()

	resp := get(newRouter(t, store),
		"/caliper/v1p2/events?actorId=https://example.edu/users/1&eventType=ViewEvent"+
			"&startTime=2024-03-01T00:00:00Z&endTime=2024-03-02T00:00:00%2B02:00&limit=10&offset=10",
		true)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "35", resp.Header().Get("X-Total-Count"))
	require.Equal(t, "10", resp.Header().Get("X-Limit"))
	require.Equal(t, "10", resp.Header().Get("X-Offset"))

	link := resp.Header().Get("Link")
	require.Contains(t, link, `offset=0>; rel="first"`)
	require.Contains(t, link, `offset=0>; rel="prev"`)
	require.Contains(t, link, `offset=20>; rel="next"`)
	require.Contains(t, link, `offset=30>; rel="last"`)

	var body struct {
		Events []struct {
			EventID string          `json:"eventId"`
			Event   json.RawMessage `json:"event"`
		} `json:"events"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.EqualValues(t, 35, body.Total)
	require.Len(t, body.Events, 1)
	require.Equal(t, "urn:uuid:1", body.Events[0].EventID)
	require.JSONEq(t, `{"id":"urn:uuid:1","extensions":{"k":1}}`, string(body.Events[0].Event))
}

func TestHandleGetEvent(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store := storagemocks.NewEventStore(t)
		store.EXPECT().
			GetEvent(mock.Anything, auth.TestSensorID, "urn:uuid:1").
			Return(&v1.StoredEvent{EventID: "urn:uuid:1", SensorID: auth.TestSensorID}, nil).
			Once()

		resp := get(newRouter(t, store), "/caliper/v1p2/events/urn:uuid:1", true)

		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"eventId":"urn:uuid:1"`)
	})

	t.Run("owned by another sensor is not found", func(t *testing.T) {
		store := storagemocks.NewEventStore(t)
		store.EXPECT().
			GetEvent(mock.Anything, auth.TestSensorID, "urn:uuid:2").
			Return(nil, storage.ErrNotFound).
			Once()

		resp := get(newRouter(t, store), "/caliper/v1p2/events/urn:uuid:2", true)

		require.Equal(t, http.StatusNotFound, resp.Code)
		var errResp httperr.ErrorResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
		require.Equal(t, httperr.HttpNotFoundError, errResp.ErrorType)
		require.Equal(t, msgEventNotFound, errResp.Message)
	})
}

func TestHandleSummary(t *testing.T) {
	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		CountByType(mock.Anything, mock.MatchedBy(func(q v1.EventQuery) bool {
			return q.SensorID == auth.TestSensorID && q.ObjectID == "https://example.edu/attempts/1"
		})).
		Return([]v1.TypeCount{{EventType: "GradeEvent", Count: 2}}, nil).
		Once()
	store.EXPECT().ListScores(mock.Anything, mock.Anything).Return([]string{"7", "8"}, nil).Once()

	resp := get(newRouter(t, store), "/caliper/v1p2/analytics/summary?objectId=https://example.edu/attempts/1", true)

	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{
		"sensorId": "test-sensor-001",
		"totalEvents": 2,
		"eventTypes": [{"eventType": "GradeEvent", "count": 2}],
		"scores": {"count": 2, "sum": "15", "mean": "7.5", "min": "7", "max": "8"}
	}`, resp.Body.String())
}
