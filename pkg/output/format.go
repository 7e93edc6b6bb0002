package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists every supported format
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat parses a --format value
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown output format %q (want text, json, yaml or toml)", name)
}

// Encode writes v to w in a structured format
func Encode(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(v)
	}
	return errors.Newf(errors.ErrInvalidInput, "format %q cannot encode data", format)
}
