package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/re-cinq/saberlint/internal/check"
	"github.com/re-cinq/saberlint/internal/config"
	"github.com/re-cinq/saberlint/internal/engine"
)

// Glyphs carry the severity without relying on colour alone.
const (
	GlyphOK      = "✓"
	GlyphError   = "✗"
	GlyphWarning = "!"
	GlyphMissing = "○"
)

var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("214")
	colorCyan   = lipgloss.Color("51")
	colorDim    = lipgloss.Color("240")
)

type styles struct {
	header  lipgloss.Style
	role    lipgloss.Style
	section lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	dim     lipgloss.Style
}

// newStyles binds the palette to a renderer for w. mode is one of the
// config.Color* values; auto leaves detection to termenv.
func newStyles(w io.Writer, mode string) styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	}
	return styles{
		header:  r.NewStyle().Bold(true),
		role:    r.NewStyle().Foreground(colorDim),
		section: r.NewStyle().Bold(true).Foreground(colorCyan),
		ok:      r.NewStyle().Foreground(colorGreen),
		err:     r.NewStyle().Foreground(colorRed),
		warn:    r.NewStyle().Foreground(colorYellow),
		dim:     r.NewStyle().Faint(true),
	}
}

func writeText(w io.Writer, files []*engine.FileResult, color string) error {
	st := newStyles(w, color)
	var b strings.Builder

	for _, f := range files {
		fmt.Fprintf(&b, "%s %s\n", st.header.Render(f.Path), st.role.Render("("+string(f.Role)+")"))
		switch {
		case f.Missing:
			fmt.Fprintf(&b, "  %s\n", st.dim.Render(GlyphMissing+" absent"))
		case f.Failed():
			fmt.Fprintf(&b, "  %s\n", st.err.Render(GlyphError+" "+f.Err.Error()))
		case f.Report == nil || len(f.Report.Findings()) == 0:
			fmt.Fprintf(&b, "  %s\n", st.ok.Render(GlyphOK+" no problems found"))
		default:
			for _, section := range f.Report.Sections() {
				fmt.Fprintf(&b, "  %s\n", st.section.Render(section))
				for _, finding := range f.Report.Section(section) {
					b.WriteString("    " + st.finding(finding) + "\n")
				}
			}
		}
	}

	errs, warnings := engine.Count(files)
	summary := fmt.Sprintf("%s, %s", plural(errs, "error"), plural(warnings, "warning"))
	switch {
	case errs > 0:
		summary = st.err.Render(summary)
	case warnings > 0:
		summary = st.warn.Render(summary)
	default:
		summary = st.ok.Render(summary)
	}
	b.WriteString(summary + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (st styles) finding(f check.Finding) string {
	if f.Severity == check.SeverityWarning {
		return st.warn.Render(GlyphWarning + " warning: " + f.Message)
	}
	return st.err.Render(GlyphError + " error: " + f.Message)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
