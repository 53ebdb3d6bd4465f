package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath and HealthPath are the routes served by NewServeMux.
const (
	MetricsPath = "/metrics"
	HealthPath  = "/healthz"
)

// HTTPHandler serves the metrics in reg, or the default registry when reg is nil.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true, Registry: reg})
}

// NewServeMux routes the metrics endpoint and a liveness probe for watch mode.
func NewServeMux(reg *prom.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, HTTPHandler(reg))
	mux.HandleFunc(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}
