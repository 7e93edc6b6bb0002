package core

import (
	"context"
	"io"
	"os"

	"github.com/arthur-debert/dynmacros/pkg/config"
	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/logging"
	"github.com/arthur-debert/dynmacros/pkg/process"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

// Substitution keys passed to the Fabric run script
const (
	KeyFabricAPIKey    = "FABRIC_API_KEY"
	KeyFabricAPISecret = "FABRIC_API_SECRET"
)

// FabricOptions configures RunFabric
type FabricOptions struct {
	Root   string
	Config *config.Config
	// FabricPath overrides paths.fabric_script
	FabricPath string

	Runner     process.Runner
	FileSystem types.FS
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// RunFabric runs the Fabric upload script with the Fabric API key and secret
// from the substitution table. It runs in the iOS directory with the
// caller's streams.
func RunFabric(ctx context.Context, opts FabricOptions) error {
	logger := logging.GetLogger("core.fabric")
	cfg := configOrDefault(opts.Config)

	iosDir := config.Resolve(opts.Root, cfg.Paths.IOSDir)
	script := config.Resolve(opts.Root, cfg.Paths.FabricScript)
	if opts.FabricPath != "" {
		script = config.Resolve(opts.Root, opts.FabricPath)
	}

	table := GetTemplateSubstitutions(opts.FileSystem, cfg, opts.Root)
	for _, key := range []string{KeyFabricAPIKey, KeyFabricAPISecret} {
		if table[key] == "" {
			logger.Warn().Str("key", key).Msg("Fabric key is not set")
		}
	}

	runner := opts.Runner
	if runner == nil {
		runner = process.NewRunner()
	}

	cmd := process.Command{
		Name:   "/bin/sh",
		Args:   []string{script, table[KeyFabricAPIKey], table[KeyFabricAPISecret]},
		Dir:    iosDir,
		Stdin:  orDefault(opts.Stdin, os.Stdin),
		Stdout: orDefaultWriter(opts.Stdout, os.Stdout),
		Stderr: orDefaultWriter(opts.Stderr, os.Stderr),
	}

	logger.Info().Str("script", script).Str("dir", iosDir).Msg("Running Fabric")
	if err := runner.Run(ctx, cmd); err != nil {
		return errors.Wrapf(err, errors.ErrCommand, "running Fabric script %s", script)
	}
	return nil
}

func orDefault(r io.Reader, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orDefaultWriter(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
