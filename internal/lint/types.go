package lint

import "git.home.luguber.info/inful/sitenav/internal/navcheck"

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityInfo indicates informational messages (e.g. a skipped pass).
	SeverityInfo Severity = iota
	// SeverityWarning indicates advisory findings that never fail a check.
	SeverityWarning
	// SeverityError indicates a site file the generator would reject or mis-render.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Rule identifiers for issues that do not come from a navcheck violation.
const (
	RuleLoad    = "load"
	RuleContent = "content"
	RuleSkipped = "skipped"
)

// Issue represents a single problem found in a site file.
type Issue struct {
	File     string   // site file the issue belongs to
	Variant  string   // target name
	Severity Severity // issue severity level
	Rule     string   // violation kind or one of the Rule constants
	Path     string   // location inside the document, e.g. nav[0].link
	Message  string
	Related  []string
}

func issueFromViolation(t Target, v navcheck.Violation) Issue {
	sev := SeverityError
	if v.Kind.IsWarning() {
		sev = SeverityWarning
	}
	return Issue{
		File:     t.File,
		Variant:  t.Name,
		Severity: sev,
		Rule:     string(v.Kind),
		Path:     v.Path,
		Message:  v.Message,
		Related:  v.Related,
	}
}

// Result contains all issues found during a run, in target order.
type Result struct {
	Issues     []Issue
	FilesTotal int // site files checked
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.WarningCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

// InfoCount returns the number of informational issues.
func (r *Result) InfoCount() int {
	return r.count(SeverityInfo)
}

func (r *Result) count(sev Severity) int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			count++
		}
	}
	return count
}

// WithoutWarnings returns a copy of r holding only error-level issues.
func (r *Result) WithoutWarnings() *Result {
	out := &Result{FilesTotal: r.FilesTotal, Issues: []Issue{}}
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out.Issues = append(out.Issues, issue)
		}
	}
	return out
}

// Target is one site file to check.
type Target struct {
	Name       string // variant name, reported with every issue
	File       string
	ContentDir string // docs source directory; empty skips dead-link checks
}
