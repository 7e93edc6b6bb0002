package output

import (
	"github.com/arthur-debert/dynmacros/pkg/core"
	"github.com/arthur-debert/dynmacros/pkg/macros"
	"github.com/arthur-debert/dynmacros/pkg/templates"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

// MacroView is one resolved macro
type MacroView struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Kind  string `json:"kind" yaml:"kind" toml:"kind"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

// Display is the value as logged: JSON-quoted, or null
func (m MacroView) Display() string {
	switch m.Kind {
	case macros.KindNull.String():
		return "null"
	case macros.KindString.String():
		return macros.String(m.Value).String()
	}
	return m.Value
}

// MacrosView lists macros in resolution order
type MacrosView struct {
	Macros []MacroView `json:"macros" yaml:"macros" toml:"macros"`
}

// NewMacrosView builds the view of a resolution result
func NewMacrosView(result *macros.Result) []MacroView {
	if result == nil {
		return nil
	}
	views := make([]MacroView, len(result.Entries))
	for i, e := range result.Entries {
		views[i] = MacroView{Name: e.Name, Kind: e.Value.Kind().String(), Value: e.Value.Text()}
	}
	return views
}

// SubstitutionView is one substitution table entry
type SubstitutionView struct {
	Key   string
	Value string
}

// NewSubstitutionsView lists a table in key order
func NewSubstitutionsView(table types.Substitutions) []SubstitutionView {
	views := make([]SubstitutionView, 0, len(table))
	for _, k := range table.Keys() {
		views = append(views, SubstitutionView{Key: k, Value: table[k]})
	}
	return views
}

// BuildConstantsView describes the generated build constants file
type BuildConstantsView struct {
	Path     string `json:"path" yaml:"path" toml:"path"`
	Written  bool   `json:"written" yaml:"written" toml:"written"`
	OptedOut bool   `json:"opted_out" yaml:"opted_out" toml:"opted_out"`
}

// GenerateView summarizes a generate run
type GenerateView struct {
	Platform       string                 `json:"platform" yaml:"platform" toml:"platform"`
	Configuration  string                 `json:"configuration" yaml:"configuration" toml:"configuration"`
	SecretsSource  string                 `json:"secrets_source" yaml:"secrets_source" toml:"secrets_source"`
	Macros         []MacroView            `json:"macros" yaml:"macros" toml:"macros"`
	BuildConstants BuildConstantsView     `json:"build_constants" yaml:"build_constants" toml:"build_constants"`
	Templates      []templates.FileReport `json:"templates" yaml:"templates" toml:"templates"`
	Written        int                    `json:"written" yaml:"written" toml:"written"`
	Unchanged      int                    `json:"unchanged" yaml:"unchanged" toml:"unchanged"`
	Skipped        int                    `json:"skipped" yaml:"skipped" toml:"skipped"`
}

// NewGenerateView builds the view of a generate run
func NewGenerateView(result *core.GenerateResult) GenerateView {
	view := GenerateView{
		Platform:      result.Platform.String(),
		Configuration: result.Configuration.String(),
		SecretsSource: string(result.SecretsSource),
		Macros:        NewMacrosView(result.Macros),
	}
	if g := result.Generated; g != nil {
		view.BuildConstants = BuildConstantsView{Path: g.Path, Written: g.Written, OptedOut: g.OptedOut}
	}
	if r := result.Templates; r != nil {
		view.Templates = r.Files
		view.Written = r.Count(templates.OutcomeWritten)
		view.Unchanged = r.Count(templates.OutcomeUnchanged)
		view.Skipped = r.Count(templates.OutcomeSkipped)
	}
	return view
}
