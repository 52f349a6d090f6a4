package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/LeonardoCto/myeconomyback/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "myeconomy",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "myeconomy",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Ledger metrics

	GuardRejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "myeconomy",
		Name:      "guard_rejections_total",
		Help:      "Mutations rejected because the reference month was closed.",
	}, []string{"record", "operation"})

	// Alert checker metrics

	AlertRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "myeconomy",
		Name:      "alert_runs_total",
		Help:      "Completed limit-overrun checker cycles.",
	})

	AlertsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "myeconomy",
		Name:      "alerts_sent_total",
		Help:      "Limit-overrun notification emails sent.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		GuardRejectionsTotal,
		AlertRunsTotal,
		AlertsSentTotal,
	)
}

// NewServer serves /metrics plus the liveness and readiness probes on the
// internal port.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}
