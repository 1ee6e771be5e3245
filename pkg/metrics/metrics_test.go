package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegistryIsSingleton(t *testing.T) {
	assert.Same(t, Registry(), Registry())
}

func TestCountersAreExposed(t *testing.T) {
	before := testutil.ToFloat64(ResultsCalculationsTotal.WithLabelValues("calculated"))
	ResultsCalculationsTotal.WithLabelValues("calculated").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ResultsCalculationsTotal.WithLabelValues("calculated")))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "familykarting_results_calculations_total")
}
