package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu   sync.Mutex
	runs []Run
	ch   chan Run
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan Run, 16)}
}

func (r *recorder) run(_ context.Context, run Run) error {
	r.mu.Lock()
	r.runs = append(r.runs, run)
	r.mu.Unlock()
	r.ch <- run
	return nil
}

func (r *recorder) next(t *testing.T) Run {
	t.Helper()
	select {
	case run := <-r.ch:
		return run
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a run")
		return Run{}
	}
}

func startWatcher(t *testing.T, w *Watcher) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	return func() {
		stop()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func TestWatch_RunsOnStartupAndAfterChanges(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(file, []byte("title: a\n"), 0o644))

	rec := newRecorder()
	w, err := New([]string{file}, rec.run, WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	stop := startWatcher(t, w)
	defer stop()

	first := rec.next(t)
	assert.Equal(t, TriggerStartup, first.Trigger)
	assert.NotEmpty(t, first.ID)

	// A burst of writes settles into a single run.
	for i := range 5 {
		require.NoError(t, os.WriteFile(file, []byte("title: b"+string(rune('0'+i))+"\n"), 0o644))
	}
	second := rec.next(t)
	assert.Equal(t, TriggerChange, second.Trigger)
	assert.NotEqual(t, first.ID, second.ID)

	select {
	case extra := <-rec.ch:
		t.Fatalf("unexpected extra run %+v", extra)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatch_Rescan(t *testing.T) {
	file := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	rec := newRecorder()
	w, err := New([]string{file}, rec.run, WithRescanInterval(100*time.Millisecond))
	require.NoError(t, err)
	stop := startWatcher(t, w)
	defer stop()

	assert.Equal(t, TriggerStartup, rec.next(t).Trigger)
	assert.Equal(t, TriggerRescan, rec.next(t).Trigger)
}

func TestWatch_RunErrorsDoNotStopTheWatcher(t *testing.T) {
	file := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	calls := make(chan struct{}, 4)
	w, err := New([]string{file}, func(context.Context, Run) error {
		calls <- struct{}{}
		return errors.New("boom")
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	stop := startWatcher(t, w)
	defer stop()

	<-calls
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher stopped after a failed run")
	}
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	listed := filepath.Join(dir, "config.mts")
	w, err := New([]string{listed}, nil)
	require.NoError(t, err)

	assert.True(t, w.relevant(fsnotify.Event{Name: listed, Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "base.yml"), Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, ".site.yaml.swp"), Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: listed, Op: fsnotify.Chmod}))
}
