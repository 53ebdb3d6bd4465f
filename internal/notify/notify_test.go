package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/lint"
	"git.home.luguber.info/inful/sitenav/internal/retry"
)

func TestNewReport_JSON(t *testing.T) {
	result := &lint.Result{
		FilesTotal: 1,
		Issues: []lint.Issue{{
			File: "site.yaml", Variant: "site", Severity: lint.SeverityWarning,
			Rule: "DanglingLinkWarning", Path: "nav[0].link", Message: "missing",
		}},
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	data, err := json.Marshal(NewReport("run-1", "change", result, now))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "run-1", got["run_id"])
	assert.Equal(t, "change", got["trigger"])
	assert.Equal(t, "2026-03-01T11:00:00Z", got["timestamp"])

	res := got["result"].(map[string]any)
	assert.EqualValues(t, 1, res["warning_count"])
	issues := res["issues"].([]any)
	require.Len(t, issues, 1)
	assert.Equal(t, "nav[0].link", issues[0].(map[string]any)["path"])
}

func TestNewNATSPublisher_Unreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "sitenav.reports")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotify))
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Report{}))
	assert.NoError(t, p.Close())
}

func TestWithRetryPolicy(t *testing.T) {
	p := &NATSPublisher{policy: retry.DefaultPolicy()}
	want := retry.NewPolicy(retry.BackoffExponential, 10*time.Millisecond, 80*time.Millisecond, 4)
	WithRetryPolicy(want)(p)
	assert.Equal(t, want, p.policy)
}

func TestNATSPublisher_PublishWithoutDeadline(t *testing.T) {
	srv := startFakeNATS(t)
	pub, err := NewNATSPublisher(srv.URL(), "sitenav.reports")
	require.NoError(t, err)
	t.Cleanup(pub.conn.Close)

	// watch mode hands over a signal context, which carries no deadline
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, pub.Publish(ctx, Report{RunID: "r1", Trigger: "change"}))

	msgs := srv.published()
	require.Len(t, msgs, 1)
	assert.Equal(t, "sitenav.reports", msgs[0].subject)
	var got Report
	require.NoError(t, json.Unmarshal(msgs[0].payload, &got))
	assert.Equal(t, "r1", got.RunID)
	assert.Equal(t, "change", got.Trigger)
}
