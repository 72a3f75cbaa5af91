// Package metrics holds the Prometheus counters of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	stateWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "placebi",
		Name:      "state_writes_total",
		Help:      "Snapshot writes by operation and result.",
	}, []string{"op", "result"})

	dashboardBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "placebi",
		Name:      "dashboard_builds_total",
		Help:      "Dashboard computations by period.",
	}, []string{"period"})
)

// ObservePersist counts one snapshot write for op.
func ObservePersist(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	stateWrites.WithLabelValues(op, result).Inc()
}

func ObserveDashboard(period string) {
	dashboardBuilds.WithLabelValues(period).Inc()
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
