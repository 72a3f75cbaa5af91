package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/placebi/internal/metrics"
)

func TestHandler_ExposesCounters(t *testing.T) {
	metrics.ObservePersist("add_revenue", nil)
	metrics.ObservePersist("add_revenue", errors.New("disk full"))
	metrics.ObserveDashboard("this_week")

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `placebi_state_writes_total{op="add_revenue",result="ok"}`))
	assert.True(t, strings.Contains(body, `placebi_state_writes_total{op="add_revenue",result="error"}`))
	assert.True(t, strings.Contains(body, `placebi_dashboard_builds_total{period="this_week"}`))
}
