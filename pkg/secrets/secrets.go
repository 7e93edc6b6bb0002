// Package secrets loads the base substitution table from the key files.
//
// The decrypted private keys file is preferred; people without access to
// it fall back to the public keys file of the same shape. An optional
// override file is then merged on top, key by key. Loading never fails:
// missing files are expected and only change which table is returned.
package secrets

import (
	"github.com/arthur-debert/dynmacros/pkg/config"
	"github.com/arthur-debert/dynmacros/pkg/jsonfile"
	"github.com/arthur-debert/dynmacros/pkg/logging"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

// Source names the file the base table came from
type Source string

const (
	SourcePrivate Source = "private"
	SourcePublic  Source = "public"
	SourceNone    Source = "none"
)

// Result is the loaded table and where it came from
type Result struct {
	Table           types.Substitutions
	Source          Source
	OverrideApplied bool
}

// Loader reads key files relative to Root
type Loader struct {
	FS    types.FS
	Root  string
	Paths config.PathsConfig
}

// NewLoader creates a Loader for the repository at root
func NewLoader(fsys types.FS, root string, cfg *config.Config) *Loader {
	return &Loader{FS: fsys, Root: root, Paths: cfg.Paths}
}

// Load returns the base table overlaid with the override file, if any
func (l *Loader) Load() *Result {
	logger := logging.GetLogger("secrets")

	result := &Result{Source: SourceNone, Table: types.Substitutions{}}

	privatePath := config.Resolve(l.Root, l.Paths.SecretsKeys)
	publicPath := config.Resolve(l.Root, l.Paths.PublicKeys)

	if table, err := l.read(privatePath); err == nil {
		result.Table, result.Source = table, SourcePrivate
	} else {
		logger.Info().
			Str("path", publicPath).
			Msg("You don't have access to decrypted secrets. Falling back to public keys")
		logger.Debug().Err(err).Str("path", privatePath).Msg("private keys unreadable")

		if table, err := l.read(publicPath); err == nil {
			result.Table, result.Source = table, SourcePublic
		} else {
			logger.Warn().Err(err).Str("path", publicPath).Msg("public keys unreadable, continuing without keys")
		}
	}

	overridePath := config.Resolve(l.Root, l.Paths.PrivateKeys)
	if override, err := l.read(overridePath); err == nil {
		result.Table = result.Table.Merge(override)
		result.OverrideApplied = true
		logger.Debug().Str("path", overridePath).Int("keys", len(override)).Msg("applied key overrides")
	}

	logger.Debug().
		Str("source", string(result.Source)).
		Bool("override", result.OverrideApplied).
		Int("keys", len(result.Table)).
		Msg("loaded template substitutions")

	return result
}

func (l *Loader) read(path string) (types.Substitutions, error) {
	var values map[string]interface{}
	if err := jsonfile.Read(l.FS, path, &values); err != nil {
		return nil, err
	}
	return types.SubstitutionsFromJSON(values), nil
}
