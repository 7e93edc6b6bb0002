// Package jsonfile reads the JSON inputs of the pipeline: key files,
// template manifests, dev-home and packager info files. Comments and
// trailing commas are accepted.
package jsonfile

import (
	"encoding/json"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/types"
	"github.com/tidwall/jsonc"
)

// Read decodes the JSON file at path into v
func Read(fsys types.FS, path string, v interface{}) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "reading %s", path)
	}
	return Decode(data, path, v)
}

// Decode strips comments and trailing commas before decoding data into v.
// name is only used in error messages.
func Decode(data []byte, name string, v interface{}) error {
	if err := json.Unmarshal(jsonc.ToJSON(data), v); err != nil {
		return errors.Wrapf(err, errors.ErrJSONParse, "parsing %s", name)
	}
	return nil
}
