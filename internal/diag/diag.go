package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Severity classifies a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "note"
	}
}

// Diagnostic is a single reported message, optionally tied to a file.
type Diagnostic struct {
	Severity Severity
	File     string
	Line     int
	Message  string
}

// Reporter collects diagnostics and writes them to w as they arrive. The
// format is either "text" or "json" (one object per line). A Reporter is safe
// for concurrent use.
type Reporter struct {
	mu       sync.Mutex
	w        io.Writer
	format   string
	errors   int
	warnings int
}

// NewReporter returns a reporter writing to w. Unknown formats fall back to
// text. A nil writer discards output but still counts diagnostics.
func NewReporter(w io.Writer, format string) *Reporter {
	if w == nil {
		w = io.Discard
	}
	if format != "json" {
		format = "text"
	}
	return &Reporter{w: w, format: format}
}

// Report records d and writes it out.
func (r *Reporter) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch d.Severity {
	case Error:
		r.errors++
	case Warning:
		r.warnings++
	}
	if r.format == "json" {
		r.writeJSON(d)
		return
	}
	r.writeText(d)
}

// Errorf reports an error that is not tied to a file.
func (r *Reporter) Errorf(format string, args ...any) {
	r.Report(Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...)})
}

// Warnf reports a warning that is not tied to a file.
func (r *Reporter) Warnf(format string, args ...any) {
	r.Report(Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...)})
}

// FileErrorf reports an error at file:line. A line of 0 omits the line.
func (r *Reporter) FileErrorf(file string, line int, format string, args ...any) {
	r.Report(Diagnostic{Severity: Error, File: file, Line: line, Message: fmt.Sprintf(format, args...)})
}

// FileWarnf reports a warning at file:line.
func (r *Reporter) FileWarnf(file string, line int, format string, args ...any) {
	r.Report(Diagnostic{Severity: Warning, File: file, Line: line, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any error has been recorded.
func (r *Reporter) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of errors recorded so far.
func (r *Reporter) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors
}

// WarningCount returns the number of warnings recorded so far.
func (r *Reporter) WarningCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warnings
}

func (r *Reporter) writeText(d Diagnostic) {
	switch {
	case d.File != "" && d.Line > 0:
		fmt.Fprintf(r.w, "%s:%d: %s: %s\n", d.File, d.Line, d.Severity, d.Message)
	case d.File != "":
		fmt.Fprintf(r.w, "%s: %s: %s\n", d.File, d.Severity, d.Message)
	default:
		fmt.Fprintf(r.w, "%s: %s\n", d.Severity, d.Message)
	}
}

type jsonDiagnostic struct {
	Severity string `json:"severity"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

func (r *Reporter) writeJSON(d Diagnostic) {
	data, err := json.Marshal(jsonDiagnostic{
		Severity: d.Severity.String(),
		File:     d.File,
		Line:     d.Line,
		Message:  d.Message,
	})
	if err != nil {
		fmt.Fprintf(r.w, "{\"severity\":\"error\",\"message\":%q}\n", err.Error())
		return
	}
	fmt.Fprintf(r.w, "%s\n", data)
}
