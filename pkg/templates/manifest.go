package templates

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/jsonfile"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

// Manifest maps a template source path to its destination directory
type Manifest map[string]string

// Pair is one template file to copy
type Pair struct {
	Name        string
	Source      string
	Destination string
}

// ManifestPath returns the location of the manifest for platform
func ManifestPath(templatesDir string, platform types.Platform) string {
	return filepath.Join(templatesDir, fmt.Sprintf("%s-paths.json", platform))
}

// LoadManifest reads the template manifest of platform
func LoadManifest(fs types.FS, templatesDir string, platform types.Platform) (Manifest, error) {
	path := ManifestPath(templatesDir, platform)

	var m Manifest
	if err := jsonfile.Read(fs, path, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateManifest, "loading template manifest %s", path).
			WithDetail("path", path)
	}
	return m, nil
}

// Pairs resolves the manifest into absolute source and destination paths,
// sorted by source name.
func (m Manifest) Pairs(templatesDir, root string, platform types.Platform) []Pair {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]Pair, len(names))
	for i, name := range names {
		pairs[i] = Pair{
			Name:        name,
			Source:      filepath.Join(templatesDir, string(platform), name),
			Destination: filepath.Join(root, m[name], name),
		}
	}
	return pairs
}
