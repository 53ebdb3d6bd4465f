package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("nav broken").Build(), 2},
		{"config", ConfigError("missing file").Build(), 7},
		{"filesystem", FileSystemError("read failed").Build(), 11},
		{"git", GitError("no HEAD").Build(), 11},
		{"notify", NotifyError("nats down").Build(), 8},
		{"internal", InternalError("bug").Build(), 10},
		{"unclassified", errors.New("unknown error"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())
	err := WrapError(errors.New("no such file"), CategoryConfig, "cannot read site file").Build()

	if got := quiet.FormatError(err); got != "Error: cannot read site file: no such file" {
		t.Errorf("unexpected quiet format %q", got)
	}
	if got := verbose.FormatError(err); got != err.Error() {
		t.Errorf("unexpected verbose format %q", got)
	}
	if got := quiet.FormatError(InternalError("boom").Build()); got != "Internal error occurred (use -v for details)" {
		t.Errorf("unexpected internal format %q", got)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	var code int
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	adapter.out = &out
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("missing sites").Build())

	if code != 7 {
		t.Errorf("expected exit code 7, got %d", code)
	}
	if out.String() != "Error: missing sites\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}
