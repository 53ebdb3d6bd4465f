package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitenav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	validationDuration prom.Histogram
	outcomes           *prom.CounterVec
	violations         *prom.CounterVec
	discoveredPaths    *prom.GaugeVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		validationDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Duration of validating one site configuration, content discovery included",
			Buckets:   prom.DefBuckets,
		}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "validation_outcomes_total",
			Help:      "Validated site configurations by outcome",
		}, []string{"outcome"}),
		violations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "violations_total",
			Help:      "Navigation violations found, by kind",
		}, []string{"kind"}),
		discoveredPaths: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "discovered_paths",
			Help:      "Site paths discovered in a content directory by the last check",
		}, []string{"content_dir"}),
	}
	reg.MustRegister(pr.validationDuration, pr.outcomes, pr.violations, pr.discoveredPaths)
	return pr
}

func (p *PrometheusRecorder) ObserveValidationDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.validationDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncValidationOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncViolation(kind string) {
	if p == nil {
		return
	}
	p.violations.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) SetDiscoveredPaths(contentDir string, n int) {
	if p == nil {
		return
	}
	p.discoveredPaths.WithLabelValues(contentDir).Set(float64(n))
}
