package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("GET", "GET /api/v1/trips", "200", 0.01)
	m.ObserveRequest("GET", "GET /api/v1/trips", "200", 0.02)
	m.ObserveRequest("POST", "POST /api/v1/trips", "201", 0.03)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "GET /api/v1/trips", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "POST /api/v1/trips", "201")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestObserveSettlement(t *testing.T) {
	m := New()

	m.ObserveSettlement(3)
	m.ObserveSettlement(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.settlements))
	assert.Equal(t, 1, testutil.CollectAndCount(m.suggestedPerTrip))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveSettlement(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "travelmate_settlements_computed_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
