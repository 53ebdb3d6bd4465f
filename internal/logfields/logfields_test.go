package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"File", KeyFile, "site.yaml", File("site.yaml")},
		{"Variant", KeyVariant, "edgeforge", Variant("edgeforge")},
		{"Path", KeyPath, "nav[0].link", Path("nav[0].link")},
		{"ContentDir", KeyContentDir, "docs", ContentDir("docs")},
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Trigger", KeyTrigger, "fsnotify", Trigger("fsnotify")},
		{"Subject", KeySubject, "sitenav.reports", Subject("sitenav.reports")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Fatalf("%s key mismatch: got %s want %s", c.name, c.attr.Key, c.attrKey)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Fatalf("%s value mismatch: got %s want %s", c.name, c.attr.Value.String(), c.attrVal)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if got := Errors(3).Value.Int64(); got != 3 {
		t.Fatalf("Errors value = %d", got)
	}
	if got := Duration(1500 * time.Microsecond).Value.Float64(); got != 1.5 {
		t.Fatalf("Duration value = %v", got)
	}
}
