package metrics

import "time"

// OutcomeLabel enumerates the final state of one validated site file.
type OutcomeLabel string

const (
	OutcomeValid    OutcomeLabel = "valid"
	OutcomeWarning  OutcomeLabel = "warning"
	OutcomeInvalid  OutcomeLabel = "invalid"
	OutcomeFailed   OutcomeLabel = "failed" // the file could not be loaded
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for navigation checks. Implementations
// may forward to Prometheus or be swapped for NoopRecorder when metrics are
// not configured.
type Recorder interface {
	ObserveValidationDuration(d time.Duration)
	IncValidationOutcome(outcome OutcomeLabel)
	IncViolation(kind string)
	SetDiscoveredPaths(contentDir string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveValidationDuration(time.Duration) {}
func (NoopRecorder) IncValidationOutcome(OutcomeLabel)       {}
func (NoopRecorder) IncViolation(string)                     {}
func (NoopRecorder) SetDiscoveredPaths(string, int)          {}
