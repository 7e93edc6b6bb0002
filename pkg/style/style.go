// Package style renders terminal output with lipgloss. Text is marked up
// with [tag]...[/tag] pairs that map to named styles; without colour the
// tags are simply removed.
package style

import (
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Renderer styles markup for one output stream
type Renderer struct {
	lg      *lipgloss.Renderer
	styles  map[string]lipgloss.Style
	tags    []string
	pattern map[string]*regexp.Regexp
	noColor bool
}

// NoColor reports whether output to w should be plain: NO_COLOR is set or
// w is not a terminal.
func NoColor(w io.Writer, env map[string]string) bool {
	if _, ok := env["NO_COLOR"]; ok {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// New creates a Renderer for w. With noColor every style renders as plain
// text.
func New(w io.Writer, noColor bool) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if noColor {
		lg.SetColorProfile(termenv.Ascii)
	}

	r := &Renderer{lg: lg, pattern: make(map[string]*regexp.Regexp), noColor: noColor}
	r.styles = map[string]lipgloss.Style{
		"title":   lg.NewStyle().Foreground(HeadingColor).Bold(true),
		"success": lg.NewStyle().Foreground(SuccessColor).Bold(true),
		"error":   lg.NewStyle().Foreground(ErrorColor).Bold(true),
		"warning": lg.NewStyle().Foreground(WarningColor).Bold(true),
		"key":     lg.NewStyle().Foreground(PrimaryColor),
		"path":    lg.NewStyle().Foreground(PathColor).Italic(true),
		"muted":   lg.NewStyle().Foreground(MutedColor),
		"bold":    lg.NewStyle().Bold(true),
	}
	for tag := range r.styles {
		r.tags = append(r.tags, tag)
		r.pattern[tag] = regexp.MustCompile(`(?s)\[` + tag + `\](.*?)\[/` + tag + `\]`)
	}
	sort.Strings(r.tags)
	return r
}

// Style returns the named style
func (r *Renderer) Style(name string) lipgloss.Style {
	if s, ok := r.styles[name]; ok {
		return s
	}
	return r.lg.NewStyle()
}

// Render expands every [tag]text[/tag] pair. Unknown tags are left as they
// are.
func (r *Renderer) Render(text string) string {
	for _, tag := range r.tags {
		style := r.styles[tag]
		text = r.pattern[tag].ReplaceAllStringFunc(text, func(match string) string {
			sub := r.pattern[tag].FindStringSubmatch(match)
			return style.Render(sub[1])
		})
	}
	return text
}

// Error renders err the way the CLI reports failures
func (r *Renderer) Error(err error) string {
	return r.Style("error").Render("Error: " + err.Error())
}
