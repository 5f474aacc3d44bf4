package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fpgroups/internal/metrics"
	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/observability"
	"github.com/matzehuels/fpgroups/pkg/store"
)

const s3Body = `{"generators": ["a", "b"], "relators": ["a^2", "b^3", "(a*b)^2"]`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{Store: store.NewMemoryStore()})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "response should carry a generated request ID")
}

func TestRequestIDIsReused(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestCosetsCreatesReport(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/v1/cosets", s3Body+`, "subgroup": ["a"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report store.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	require.NotNil(t, report.Result)
	require.NotNil(t, report.Result.Cosets)
	assert.Equal(t, 3, report.Result.Cosets.Size())
	assert.Equal(t, "cosets", report.Options.Kind)

	rec = do(t, srv, http.MethodGet, "/v1/reports/"+report.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched store.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, report.ID, fetched.ID)
	assert.Equal(t, report.Result.Cosets.Table, fetched.Result.Cosets.Table)

	rec = do(t, srv, http.MethodGet, "/v1/reports", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list listBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list.Reports, 1)
	assert.Equal(t, report.ID, list.Reports[0].ID)
}

func TestAnalysisKinds(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/v1/subgroups", s3Body+`, "max_size": 6}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report store.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Len(t, report.Result.Subgroups, 4)
	assert.Equal(t, 6, report.Options.MaxSize)

	rec = do(t, srv, http.MethodPost, "/v1/invariants", s3Body+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, "Z/2", report.Result.Invariants.Text)

	rec = do(t, srv, http.MethodPost, "/v1/stabilizer", s3Body+`, "subgroup": ["a"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, 3, report.Result.Stabilizer.Index)
}

func TestAnalysisErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed json", "/v1/cosets", `{"generators": [`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", "/v1/cosets", s3Body + `, "colour": "red"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"duplicate generator", "/v1/invariants", `{"generators": ["a", "a"], "relators": []}`, http.StatusBadRequest, errors.ErrCodeInvalidAlphabet},
		{"bad relator", "/v1/invariants", `{"generators": ["a"], "relators": ["a^"]}`, http.StatusBadRequest, errors.ErrCodeInvalidPresentation},
		{"choice limit", "/v1/subgroups", s3Body + `, "max_choices": 1}`, http.StatusUnprocessableEntity, errors.ErrCodeChoiceLimit},
		{"size limit", "/v1/cosets", `{"generators": ["a", "b"], "relators": [], "size_limit": 10}`, http.StatusUnprocessableEntity, errors.ErrCodeSizeLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(t), http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
			assert.Equal(t, rec.Header().Get(RequestIDHeader), body.RequestID)
		})
	}
}

func TestReportLookupErrors(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/v1/reports/not-a-uuid", "/v1/reports/" + uuid.NewString()} {
		rec := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, errors.ErrCodeNotFound, decodeError(t, rec).Error.Code)
	}

	rec := do(t, srv, http.MethodGet, "/v1/reports?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/v2/everything", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.ErrCodeNotFound, decodeError(t, rec).Error.Code)
}

func TestListLimit(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < 3; i++ {
		rec := do(t, srv, http.MethodPost, "/v1/invariants", s3Body+`}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, srv, http.MethodGet, "/v1/reports?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list listBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list.Reports, 2)
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodOptions, "/v1/cosets", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	t.Cleanup(observability.Reset)
	m := metrics.New()
	m.Install()
	srv := New(Config{Metrics: m.Handler()})

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/v1/invariants", s3Body+`}`).Code)

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fpgroups_http_requests_total{method="POST",route="/v1/invariants",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), `fpgroups_enumerations_total{kind="invariants",outcome="ok"} 1`)
}

func TestHTTPHooksSeeRoutePattern(t *testing.T) {
	t.Cleanup(observability.Reset)
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)

	srv := newTestServer(t)
	do(t, srv, http.MethodGet, "/v1/reports/"+uuid.NewString(), "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	require.Len(t, hooks.routes, 1)
	assert.Equal(t, "/v1/reports/{id}", hooks.routes[0])
	assert.Equal(t, http.StatusNotFound, hooks.statuses[0])
}

type recordingHTTPHooks struct {
	mu       sync.Mutex
	routes   []string
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _ string, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.statuses = append(h.statuses, status)
}
