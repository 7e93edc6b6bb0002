package output

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/arthur-debert/dynmacros/pkg/logging"
	"github.com/arthur-debert/dynmacros/pkg/style"
	"github.com/arthur-debert/dynmacros/pkg/templates"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer writes command results to one stream
type Renderer struct {
	templates *template.Template
	writer    io.Writer
	style     *style.Renderer
}

// NewRenderer creates a Renderer writing to w. With noColor all style markup
// is rendered as plain text.
func NewRenderer(w io.Writer, noColor bool) (*Renderer, error) {
	logger := logging.GetLogger("output")
	logger.Debug().Bool("noColor", noColor).Msg("Creating renderer")

	styles := style.New(w, noColor)
	funcs := template.FuncMap{
		"outcome": func(o templates.Outcome) string {
			return styles.Outcome(string(o))
		},
	}

	tmpl, err := template.New("output").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		templates: tmpl,
		writer:    w,
		style:     styles,
	}, nil
}

// Render writes data in format. For the text format, name selects the
// template and text is the data it is executed with.
func (r *Renderer) Render(format Format, name string, text, data interface{}) error {
	if format != FormatText {
		return Encode(r.writer, format, data)
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name+".tmpl", text); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	out := bytes.Trim(buf.Bytes(), "\n")
	_, err := fmt.Fprintln(r.writer, r.style.Render(string(out)))
	return err
}

// Generate renders a generate run
func (r *Renderer) Generate(format Format, view GenerateView) error {
	return r.Render(format, "generate", view, view)
}

// Macros renders resolved macros
func (r *Renderer) Macros(format Format, views []MacroView) error {
	return r.Render(format, "macros", views, MacrosView{Macros: views})
}

// Substitutions renders a substitution table
func (r *Renderer) Substitutions(format Format, views []SubstitutionView) error {
	table := make(map[string]string, len(views))
	for _, v := range views {
		table[v.Key] = v.Value
	}
	return r.Render(format, "substitutions", views, table)
}

// Message renders a line of style markup
func (r *Renderer) Message(markup string) error {
	_, err := fmt.Fprintln(r.writer, r.style.Render(markup))
	return err
}
