// Package notify publishes check reports to a message bus.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/lint"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/retry"
)

// Report is the message published after every check run.
type Report struct {
	RunID     string          `json:"run_id"`
	Trigger   string          `json:"trigger"`
	Timestamp time.Time       `json:"timestamp"`
	Result    lint.JSONOutput `json:"result"`
}

// NewReport wraps a lint result for publishing.
func NewReport(runID, trigger string, result *lint.Result, now time.Time) Report {
	return Report{
		RunID:     runID,
		Trigger:   trigger,
		Timestamp: now.UTC(),
		Result:    lint.NewJSONOutput(result),
	}
}

// Publisher delivers reports.
type Publisher interface {
	Publish(ctx context.Context, r Report) error
	Close() error
}

// NoopPublisher drops every report.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Report) error { return nil }
func (NoopPublisher) Close() error                          { return nil }

// flushTimeout bounds the server round trip of a publish when the caller's
// context has no deadline.
const flushTimeout = 5 * time.Second

// NATSPublisher publishes reports as JSON on a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	policy  retry.Policy
}

// NATSOption configures a NATSPublisher.
type NATSOption func(*NATSPublisher)

// WithRetryPolicy sets the backoff used when a publish fails transiently.
func WithRetryPolicy(p retry.Policy) NATSOption {
	return func(n *NATSPublisher) { n.policy = p }
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url, subject string, opts ...NATSOption) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("sitenav"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotify, "failed to connect to NATS").
			WithContext("url", url).
			Retryable().
			Build()
	}
	slog.Info("NATS publisher connected", slog.String("url", url), logfields.Subject(subject))
	p := &NATSPublisher{conn: conn, subject: subject, policy: retry.DefaultPolicy()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Publish sends r and waits until the server has received it. Transient
// failures are retried with the publisher's backoff policy.
func (p *NATSPublisher) Publish(ctx context.Context, r Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal report").Build()
	}
	return p.policy.Do(ctx, func(ctx context.Context) error {
		return p.publish(ctx, r.RunID, data)
	})
}

func (p *NATSPublisher) publish(ctx context.Context, runID string, data []byte) error {
	if err := p.conn.Publish(p.subject, data); err != nil {
		return errors.WrapError(err, errors.CategoryNotify, "failed to publish report").
			WithContext("subject", p.subject).
			Retryable().
			Build()
	}
	flushCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		flushCtx, cancel = context.WithTimeout(ctx, flushTimeout)
		defer cancel()
	}
	if err := p.conn.FlushWithContext(flushCtx); err != nil {
		return errors.WrapError(err, errors.CategoryNotify, "failed to flush report").
			WithContext("subject", p.subject).
			Retryable().
			Build()
	}
	slog.Debug("Published report", logfields.Subject(p.subject), logfields.RunID(runID))
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
