// Package metrics provides observability hooks for navigation checks.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	linter := lint.New(lint.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// Watch mode serves the registry over HTTP with HTTPHandler.
package metrics
