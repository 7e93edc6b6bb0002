package macros

import "github.com/arthur-debert/dynmacros/pkg/types"

// Entry is one resolved macro
type Entry struct {
	Name  string
	Value Value
}

// Result holds resolved macros in registry order
type Result struct {
	Entries []Entry
}

// Lookup returns the value of the named macro
func (r *Result) Lookup(name string) (Value, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Names returns macro names in registry order
func (r *Result) Names() []string {
	names := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		names[i] = e.Name
	}
	return names
}

// Substitutions converts the result into substitution table entries
func (r *Result) Substitutions() types.Substitutions {
	table := make(types.Substitutions, len(r.Entries))
	for _, e := range r.Entries {
		table[e.Name] = e.Value.Text()
	}
	return table
}
