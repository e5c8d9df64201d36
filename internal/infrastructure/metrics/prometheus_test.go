package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Videoclub-api/internal/application/rental"
	"github.com/jhoicas/Videoclub-api/internal/application/usecase"
	"github.com/jhoicas/Videoclub-api/internal/infrastructure/metrics"
)

var (
	_ rental.Observer         = (*metrics.PrometheusObserver)(nil)
	_ usecase.SearchObserver = (*metrics.PrometheusObserver)(nil)
)

func TestPrometheusObserver(t *testing.T) {
	o := metrics.NewPrometheusObserver()

	o.ObserveAllocation(rental.OutcomeOK, 1, 3*time.Millisecond)
	o.ObserveAllocation(rental.OutcomeConflict, 2, 5*time.Millisecond)
	o.ObserveAllocation(rental.OutcomeConflict, 1, time.Millisecond)
	o.ObserveSearch("film", 4, time.Millisecond)
	o.ObserveHTTP("POST", "/api/rentals", 201, 2*time.Millisecond)

	expected := `
# HELP videoclub_rental_allocations_total Intentos de alquiler por resultado (ok, not_found, conflict, internal).
# TYPE videoclub_rental_allocations_total counter
videoclub_rental_allocations_total{outcome="conflict"} 2
videoclub_rental_allocations_total{outcome="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(o.Registry(), strings.NewReader(expected), "videoclub_rental_allocations_total"))

	n, err := testutil.GatherAndCount(o.Registry(), "videoclub_searches_total", "videoclub_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPrometheusObserver_Handler(t *testing.T) {
	o := metrics.NewPrometheusObserver()
	o.ObserveSearch("customer", 0, time.Millisecond)

	rec := httptest.NewRecorder()
	o.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `videoclub_searches_total{kind="customer"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
