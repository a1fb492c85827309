package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httperr "github.com/aevon-lab/caliper-gateway/internal/core/errors"
	"github.com/aevon-lab/caliper-gateway/internal/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg, err := schema.DefaultRegistry()
	require.NoError(t, err)

	r := gin.New()
	NewService(reg).RegisterRoutes(r.Group("/caliper/v1p2"))
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHandleListEvents(t *testing.T) {
	r := newRouter(t)

	resp := serve(r, http.MethodGet, "/caliper/v1p2/schemas/events", "")

	require.Equal(t, http.StatusOK, resp.Code)
	var body EventsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, "http://purl.imsglobal.org/ctx/caliper/v1p2", body.Context)
	require.Len(t, body.Events, 21)
	require.Equal(t, "AnnotationEvent", body.Events[0].Name)
}

func TestHandleGetEvent(t *testing.T) {
	r := newRouter(t)

	resp := serve(r, http.MethodGet, "/caliper/v1p2/schemas/events/ViewEvent", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var info schema.ShapeInfo
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &info))
	require.Equal(t, "ViewEvent", info.Name)
	require.Equal(t, []string{"Viewed"}, info.Actions)

	resp = serve(r, http.MethodGet, "/caliper/v1p2/schemas/events/PokeEvent", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpNotFoundError, errResp.ErrorType)
}

func TestHandleListEntities(t *testing.T) {
	r := newRouter(t)

	resp := serve(r, http.MethodGet, "/caliper/v1p2/schemas/entities", "")

	require.Equal(t, http.StatusOK, resp.Code)
	var body EntitiesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Unions)

	names := make(map[string]bool, len(body.Kinds))
	for _, k := range body.Kinds {
		names[k.Name] = true
	}
	require.True(t, names["Person"])
	require.True(t, names["Attempt"])
	for _, u := range body.Unions {
		require.NotEmpty(t, u.Members, "union %s has no members", u.Name)
	}
}

func TestHandleGetEntity_YAML(t *testing.T) {
	r := newRouter(t)

	resp := serve(r, http.MethodGet, "/caliper/v1p2/schemas/entities/Person?format=yaml", "")

	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, strings.HasPrefix(resp.Header().Get("Content-Type"), "application/yaml") ||
		strings.HasPrefix(resp.Header().Get("Content-Type"), "application/x-yaml"))
	require.Contains(t, resp.Body.String(), "name: Person")
}

func TestHandleValidateEntity(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid person",
			kind:       "Person",
			body:       `{"id":"https://example.edu/users/1","type":"Person"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong tag",
			kind:       "Person",
			body:       `{"id":"https://example.edu/users/1","type":"Robot"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			kind:       "Person",
			body:       `{"id":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown kind",
			kind:       "Spaceship",
			body:       `{}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(t)

			resp := serve(r, http.MethodPost, "/caliper/v1p2/schemas/entities/"+tc.kind+"/validate", tc.body)

			require.Equal(t, tc.wantStatus, resp.Code, resp.Body.String())
		})
	}
}
