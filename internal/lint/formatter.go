package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs results in human-readable text format, grouped by file in
// the order the files were checked.
func (f *TextFormatter) Format(w io.Writer, result *Result) error {
	var files []string
	byFile := make(map[string][]Issue)
	for _, issue := range result.Issues {
		if _, seen := byFile[issue.File]; !seen {
			files = append(files, issue.File)
		}
		byFile[issue.File] = append(byFile[issue.File], issue)
	}

	for _, file := range files {
		issues := byFile[file]
		if _, err := fmt.Fprintf(w, "%s %s\n", fileIcon(issues), file); err != nil {
			return err
		}
		for _, issue := range issues {
			if err := f.formatIssue(w, issue); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Results:\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %d site file%s checked\n", result.FilesTotal, pluralize(result.FilesTotal)); err != nil {
		return err
	}
	if n := result.ErrorCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d error%s\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if n := result.WarningCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d warning%s\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if n := result.InfoCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d info\n", n); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, finalMessage(result))
	return err
}

func finalMessage(result *Result) string {
	switch {
	case result.HasErrors():
		return "❌ Navigation has errors the site generator would reject or mis-render."
	case result.HasWarnings():
		return "⚠️  Navigation has warnings. Consider fixing before publishing."
	case len(result.Issues) > 0:
		return "ℹ️  All issues are informational."
	default:
		return "✨ All navigation checks passed!"
	}
}

func fileIcon(issues []Issue) string {
	icon := "ℹ"
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			return "✗"
		case SeverityWarning:
			icon = "⚠"
		}
	}
	return icon
}

// formatIssue formats a single issue.
func (f *TextFormatter) formatIssue(w io.Writer, issue Issue) error {
	location := ""
	if issue.Path != "" {
		location = issue.Path + ": "
	}
	if _, err := fmt.Fprintf(w, "  %s %s%s (%s)\n", issue.Severity, location, issue.Message, issue.Rule); err != nil {
		return err
	}
	if len(issue.Related) > 0 {
		if _, err := fmt.Fprintf(w, "    see: %s\n", strings.Join(issue.Related, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	FilesTotal   int         `json:"files_total"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	InfoCount    int         `json:"info_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	File     string   `json:"file"`
	Variant  string   `json:"variant,omitempty"`
	Severity string   `json:"severity"`
	Rule     string   `json:"rule"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
	Related  []string `json:"related,omitempty"`
}

// NewJSONOutput converts a result into its JSON representation.
func NewJSONOutput(result *Result) JSONOutput {
	output := JSONOutput{
		FilesTotal:   result.FilesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		InfoCount:    result.InfoCount(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			File:     issue.File,
			Variant:  issue.Variant,
			Severity: issue.Severity.String(),
			Rule:     issue.Rule,
			Path:     issue.Path,
			Message:  issue.Message,
			Related:  issue.Related,
		})
	}
	return output
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewJSONOutput(result))
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
