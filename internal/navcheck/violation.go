package navcheck

import (
	"fmt"
	"strings"
)

// Kind classifies a violation.
type Kind string

const (
	KindShape         Kind = "ShapeError"
	KindLinkFormat    Kind = "LinkFormatError"
	KindDuplicateLink Kind = "DuplicateLinkError"
	KindUnknownIcon   Kind = "UnknownIconError"

	KindDanglingLink       Kind = "DanglingLinkWarning"
	KindInconsistentCasing Kind = "InconsistentCasing"
	KindInconsistentTarget Kind = "InconsistentTarget"
	KindSharedTarget       Kind = "SharedTarget"
)

// IsWarning reports whether the kind is advisory and never fails validation.
func (k Kind) IsWarning() bool {
	switch k {
	case KindDanglingLink, KindInconsistentCasing, KindInconsistentTarget, KindSharedTarget:
		return true
	default:
		return false
	}
}

// Violation is one problem found in a navigation model.
type Violation struct {
	Kind    Kind
	Path    string   // e.g. nav[0].text
	Message string
	Related []string // other paths involved, e.g. the first of two duplicates
	Variant string   // set by cross-variant checks
}

func (v Violation) String() string {
	var b strings.Builder
	if v.Variant != "" {
		b.WriteString(v.Variant)
		b.WriteString(": ")
	}
	if v.Path != "" {
		b.WriteString(v.Path)
		b.WriteString(": ")
	}
	b.WriteString(v.Message)
	return b.String()
}

// ValidationError carries every violation found by Validate.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s (%s)", v, v.Kind))
	}
	return fmt.Sprintf("navigation has %d problem(s): %s", len(e.Violations), strings.Join(parts, "; "))
}

// ByKind returns the violations of the given kind, in report order.
func (e *ValidationError) ByKind(kind Kind) []Violation {
	var out []Violation
	for _, v := range e.Violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}
