package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "sitenav.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "sitenav.yaml" {
			t.Errorf("expected context file=sitenav.yaml, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", ConfigError("test error").Build())

		if !IsClassified(err) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to default to internal")
		}
	})

	t.Run("Config errors need the author", func(t *testing.T) {
		err := ConfigError("bad").Build()
		if err.CanRetry() {
			t.Error("expected config error to not be retryable")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("connection refused")
	err := WrapError(originalErr, CategoryNotify, "publish failed").
		Warning().
		Retryable().
		WithContext("subject", "sitenav.reports").
		Build()

	if err.Severity() != SeverityWarning {
		t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
	}
	if !err.CanRetry() {
		t.Error("expected retryable error")
	}
	if !errors.Is(err, originalErr) {
		t.Error("expected error to wrap original error")
	}
	if got := err.Error(); got != "[notify:warning] publish failed: connection refused" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestClassifiedError_WithContextCopies(t *testing.T) {
	base := ValidationError("bad nav").Build()
	derived := base.WithContext("file", "a.yaml")

	if _, ok := base.Context().Get("file"); ok {
		t.Error("expected original context to be untouched")
	}
	if v, _ := derived.Context().GetString("file"); v != "a.yaml" {
		t.Errorf("expected derived context, got %q", v)
	}
	if !errors.Is(derived, base) {
		t.Error("expected errors with same category and message to match")
	}
}
