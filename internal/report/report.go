// Package report renders validation results as coloured text, YAML or JSON.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/re-cinq/saberlint/internal/check"
	"github.com/re-cinq/saberlint/internal/config"
	"github.com/re-cinq/saberlint/internal/dialect"
	"github.com/re-cinq/saberlint/internal/engine"
)

// Options selects the output format and colouring.
type Options struct {
	Format string
	Color  string
}

// Status of one file in machine-readable output.
const (
	StatusOK       = "ok"
	StatusFindings = "findings"
	StatusMissing  = "missing"
	StatusFailed   = "failed"
)

// File is the machine-readable form of an engine.FileResult.
type File struct {
	Role     string          `json:"role" yaml:"role"`
	Path     string          `json:"path" yaml:"path"`
	Status   string          `json:"status" yaml:"status"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
	Line     int             `json:"line,omitempty" yaml:"line,omitempty"`
	Findings []check.Finding `json:"findings" yaml:"findings"`
}

// Document is the top-level machine-readable report.
type Document struct {
	Files    []File `json:"files" yaml:"files"`
	Errors   int    `json:"errors" yaml:"errors"`
	Warnings int    `json:"warnings" yaml:"warnings"`
}

// Write renders files to w in the format chosen by opts.
func Write(w io.Writer, files []*engine.FileResult, opts Options) error {
	switch opts.Format {
	case "", config.FormatText:
		return writeText(w, files, opts.Color)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(files))
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(files)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// NewDocument converts results to their machine-readable form.
func NewDocument(files []*engine.FileResult) Document {
	doc := Document{Files: make([]File, 0, len(files))}
	doc.Errors, doc.Warnings = engine.Count(files)
	for _, f := range files {
		out := File{Role: string(f.Role), Path: f.Path, Findings: []check.Finding{}}
		switch {
		case f.Missing:
			out.Status = StatusMissing
		case f.Failed():
			out.Status = StatusFailed
			out.Error = f.Err.Error()
			var perr *dialect.ParseError
			if errors.As(f.Err, &perr) {
				out.Line = perr.Line
			}
		case f.Report != nil && len(f.Report.Findings()) > 0:
			out.Status = StatusFindings
			out.Findings = f.Report.Findings()
		default:
			out.Status = StatusOK
		}
		doc.Files = append(doc.Files, out)
	}
	return doc
}
