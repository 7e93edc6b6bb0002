package templates

import (
	"context"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/filesystem"
	"github.com/arthur-debert/dynmacros/pkg/internal/hashutil"
	"github.com/arthur-debert/dynmacros/pkg/logging"
	"github.com/arthur-debert/dynmacros/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Outcome of copying one template
type Outcome string

const (
	OutcomeWritten   Outcome = "written"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeSkipped   Outcome = "skipped"
)

// FileReport describes one copied template
type FileReport struct {
	Name        string  `json:"name" yaml:"name" toml:"name"`
	Source      string  `json:"source" yaml:"source" toml:"source"`
	Destination string  `json:"destination" yaml:"destination" toml:"destination"`
	Outcome     Outcome `json:"outcome" yaml:"outcome" toml:"outcome"`
	Checksum    string  `json:"checksum,omitempty" yaml:"checksum,omitempty" toml:"checksum,omitempty"`
}

// Report lists every template of a run in manifest order
type Report struct {
	Files []FileReport `json:"files" yaml:"files" toml:"files"`
}

// Count returns how many files ended with outcome
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, f := range r.Files {
		if f.Outcome == outcome {
			n++
		}
	}
	return n
}

// Copier renders template files into the repository
type Copier struct {
	fs           types.FS
	root         string
	templatesDir string
	logger       zerolog.Logger
}

func NewCopier(fs types.FS, root, templatesDir string) *Copier {
	return &Copier{
		fs:           fs,
		root:         root,
		templatesDir: templatesDir,
		logger:       logging.GetLogger("templates"),
	}
}

// Copy renders every template listed for platform. Files are processed
// concurrently and Copy returns once all of them are done; the first error
// is returned.
func (c *Copier) Copy(ctx context.Context, platform types.Platform, configuration types.Configuration, table types.Substitutions) (*Report, error) {
	manifest, err := LoadManifest(c.fs, c.templatesDir, platform)
	if err != nil {
		return nil, err
	}

	pairs := manifest.Pairs(c.templatesDir, c.root, platform)
	report := &Report{Files: make([]FileReport, len(pairs))}

	g, gctx := errgroup.WithContext(ctx)
	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file, err := c.copyOne(pair, table, configuration)
			if err != nil {
				return err
			}
			report.Files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("platform", platform.String()).
		Int("written", report.Count(OutcomeWritten)).
		Int("unchanged", report.Count(OutcomeUnchanged)).
		Int("skipped", report.Count(OutcomeSkipped)).
		Msg("Copied template files")
	return report, nil
}

func (c *Copier) copyOne(pair Pair, table types.Substitutions, configuration types.Configuration) (FileReport, error) {
	file := FileReport{Name: pair.Name, Source: pair.Source, Destination: pair.Destination}

	source, exists, err := filesystem.ReadIfExists(c.fs, pair.Source)
	if err != nil {
		return file, errors.Wrapf(err, errors.ErrFileRead, "reading template %s", pair.Source).
			WithDetail("path", pair.Source)
	}
	if !exists {
		c.logger.Warn().Str("source", pair.Source).Msg("Template file is missing, skipping it")
		file.Outcome = OutcomeSkipped
		return file, nil
	}

	rendered := []byte(Render(string(source), table, configuration))
	file.Checksum = hashutil.Checksum(rendered)

	written, err := filesystem.WriteIfChanged(c.fs, pair.Destination, rendered)
	if err != nil {
		return file, errors.Wrapf(err, errors.ErrFileWrite, "writing %s", pair.Destination).
			WithDetail("path", pair.Destination)
	}

	file.Outcome = OutcomeUnchanged
	if written {
		file.Outcome = OutcomeWritten
	}
	c.logger.Debug().
		Str("destination", pair.Destination).
		Str("outcome", string(file.Outcome)).
		Str("checksum", hashutil.Short(file.Checksum)).
		Msg("Rendered template")
	return file, nil
}
