// Package check holds the building blocks shared by the file validators:
// the finding/report model, the leaf validators and the cross-reference
// tracker that lives for one validation run.
package check

import (
	"fmt"
	"strings"
)

// Severity separates contract violations from values that are merely outside
// a recommended envelope.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one error or warning attached to a named section
// (e.g. "Blade2", "Swing", "Default/Lockup").
type Finding struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Section  string   `json:"section" yaml:"section"`
	Message  string   `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Section, f.Message)
}

// Report collects the findings of one file in the order they were made.
type Report struct {
	findings []Finding
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

func (r *Report) add(sev Severity, section, msg string) {
	r.findings = append(r.findings, Finding{Severity: sev, Section: section, Message: msg})
}

// Errorf records an error for section.
func (r *Report) Errorf(section, format string, args ...any) {
	r.add(SeverityError, section, fmt.Sprintf(format, args...))
}

// Warnf records a warning for section.
func (r *Report) Warnf(section, format string, args ...any) {
	r.add(SeverityWarning, section, fmt.Sprintf(format, args...))
}

// Findings returns a copy of all findings in order.
func (r *Report) Findings() []Finding {
	out := make([]Finding, len(r.findings))
	copy(out, r.findings)
	return out
}

// Count returns the number of findings with the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, f := range r.findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error was recorded.
func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// SectionHasErrors reports whether section has at least one error.
func (r *Report) SectionHasErrors(section string) bool {
	for _, f := range r.findings {
		if f.Section == section && f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Section returns the findings of one section.
func (r *Report) Section(section string) []Finding {
	var out []Finding
	for _, f := range r.findings {
		if f.Section == section {
			out = append(out, f)
		}
	}
	return out
}

// Sections lists the sections that have findings, in first-seen order.
func (r *Report) Sections() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.findings {
		if !seen[f.Section] {
			seen[f.Section] = true
			out = append(out, f.Section)
		}
	}
	return out
}

// Errors returns the error messages per section, one message per line.
func (r *Report) Errors() map[string]string {
	return r.bySection(SeverityError)
}

// Warnings returns the warning messages per section, one message per line.
func (r *Report) Warnings() map[string]string {
	return r.bySection(SeverityWarning)
}

func (r *Report) bySection(sev Severity) map[string]string {
	lines := make(map[string][]string)
	for _, f := range r.findings {
		if f.Severity == sev {
			lines[f.Section] = append(lines[f.Section], f.Message)
		}
	}
	out := make(map[string]string, len(lines))
	for section, msgs := range lines {
		out[section] = strings.Join(msgs, "\n")
	}
	return out
}

// Scope returns a writer bound to one section of the report.
func (r *Report) Scope(section string) Scope {
	return Scope{report: r, section: section}
}

// Scope writes findings to a fixed section, prefixing every message with the
// location inside it ("sequencer 2, step 3 (Up): ...").
type Scope struct {
	report  *Report
	section string
	prefix  string
}

// Section returns the section findings are filed under.
func (s Scope) Section() string {
	return s.section
}

// Sub returns a scope whose messages carry an additional location prefix.
func (s Scope) Sub(format string, args ...any) Scope {
	p := fmt.Sprintf(format, args...)
	if s.prefix != "" {
		p = s.prefix + ", " + p
	}
	return Scope{report: s.report, section: s.section, prefix: p}
}

func (s Scope) message(format string, args []any) string {
	msg := fmt.Sprintf(format, args...)
	if s.prefix == "" {
		return msg
	}
	return s.prefix + ": " + msg
}

// Errorf records an error in the scope's section.
func (s Scope) Errorf(format string, args ...any) {
	s.report.add(SeverityError, s.section, s.message(format, args))
}

// Warnf records a warning in the scope's section.
func (s Scope) Warnf(format string, args ...any) {
	s.report.add(SeverityWarning, s.section, s.message(format, args))
}

// HasErrors reports whether the scope's section has any error so far.
func (s Scope) HasErrors() bool {
	return s.report.SectionHasErrors(s.section)
}
