package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fpgroups/pkg/observability"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestEnumerationMetrics(t *testing.T) {
	c := New()
	ctx := context.Background()

	c.OnEnumerationStart(ctx, "cosets")
	c.OnEnumerationComplete(ctx, "cosets", 60, 5*time.Millisecond, nil)
	c.OnEnumerationStart(ctx, "subgroups")
	c.OnEnumerationComplete(ctx, "subgroups", 0, time.Millisecond, errors.New("boom"))
	c.OnActionFound(ctx, 3)
	c.OnActionFound(ctx, 3)

	body := scrape(t, c)
	assert.Contains(t, body, `fpgroups_enumerations_total{kind="cosets",outcome="ok"} 1`)
	assert.Contains(t, body, `fpgroups_enumerations_total{kind="subgroups",outcome="error"} 1`)
	assert.Contains(t, body, `fpgroups_enumerations_in_flight{kind="cosets"} 0`)
	assert.Contains(t, body, `fpgroups_actions_found_total{degree="3"} 2`)
	assert.Contains(t, body, `fpgroups_enumeration_size_sum{kind="cosets"} 60`)
}

func TestCacheAndHTTPMetrics(t *testing.T) {
	c := New()
	ctx := context.Background()

	c.OnCacheHit(ctx, "analysis")
	c.OnCacheMiss(ctx, "analysis")
	c.OnCacheMiss(ctx, "analysis")
	c.OnCacheSet(ctx, "analysis", 128)
	c.OnRequest(ctx, http.MethodPost, "/v1/cosets")
	c.OnResponse(ctx, http.MethodPost, "/v1/cosets", http.StatusOK, 10*time.Millisecond)

	body := scrape(t, c)
	assert.Contains(t, body, `fpgroups_cache_lookups_total{key_type="analysis",result="hit"} 1`)
	assert.Contains(t, body, `fpgroups_cache_lookups_total{key_type="analysis",result="miss"} 2`)
	assert.Contains(t, body, `fpgroups_cache_written_bytes_total 128`)
	assert.Contains(t, body, `fpgroups_http_requests_total{method="POST",route="/v1/cosets",status="200"} 1`)
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.OnActionFound(context.Background(), 2)
	assert.NotContains(t, scrape(t, b), `fpgroups_actions_found_total{degree="2"}`)
}

func TestInstall(t *testing.T) {
	t.Cleanup(observability.Reset)
	c := New()
	c.Install()
	assert.Same(t, c, observability.Enumeration())
	assert.Same(t, c, observability.Cache())
	assert.Same(t, c, observability.HTTP())
}
