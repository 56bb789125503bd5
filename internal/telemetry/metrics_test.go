package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInit_Idempotent(t *testing.T) {
	Init()
	Init()
}

func TestMiddleware_ObservesRoutePattern(t *testing.T) {
	Init()
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.CollectAndCount(RequestDuration)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/things/42", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(RequestDuration), before)

	rec = httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.True(t, strings.Contains(rec.Body.String(), `route="/api/things/{id}"`), "metrics output missing route label")
}

func TestCounters(t *testing.T) {
	GeneratorRecords.WithLabelValues("test_kind").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(GeneratorRecords.WithLabelValues("test_kind")))
}
