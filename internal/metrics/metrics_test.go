package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveRequest("http", "/anagram", "200")
	m.ObserveRequest("http", "/anagram", "200")
	m.ObserveRequest("ipc", "anagram", "400")
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.ObserveRejected("too_long")
	m.SetDictionaryWords(42)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("http", "/anagram", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("ipc", "anagram", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("too_long")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.dictWords))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveSearch(3*time.Millisecond, 12)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "anagramserve_search_duration_seconds_count 1")
	assert.Contains(t, body, "anagramserve_phrases_per_query_sum 12")
	assert.Contains(t, body, "go_goroutines")
}

func TestIndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
