package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFile       = "file"
	KeyVariant    = "variant"
	KeyPath       = "path"
	KeyContentDir = "content_dir"
	KeyRunID      = "run_id"
	KeyTrigger    = "trigger"
	KeyErrors     = "errors"
	KeyWarnings   = "warnings"
	KeyPages      = "pages"
	KeyDurationMS = "duration_ms"
	KeySubject    = "subject"
	KeyError      = "error"
)

func File(p string) slog.Attr        { return slog.String(KeyFile, p) }
func Variant(name string) slog.Attr  { return slog.String(KeyVariant, name) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func ContentDir(p string) slog.Attr  { return slog.String(KeyContentDir, p) }
func RunID(id string) slog.Attr      { return slog.String(KeyRunID, id) }
func Trigger(t string) slog.Attr     { return slog.String(KeyTrigger, t) }
func Errors(n int) slog.Attr         { return slog.Int(KeyErrors, n) }
func Warnings(n int) slog.Attr       { return slog.Int(KeyWarnings, n) }
func Pages(n int) slog.Attr          { return slog.Int(KeyPages, n) }
func Subject(s string) slog.Attr     { return slog.String(KeySubject, s) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
