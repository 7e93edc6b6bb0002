package core

import (
	"context"

	"github.com/arthur-debert/dynmacros/pkg/config"
	"github.com/arthur-debert/dynmacros/pkg/generators"
	"github.com/arthur-debert/dynmacros/pkg/logging"
	"github.com/arthur-debert/dynmacros/pkg/macros"
	"github.com/arthur-debert/dynmacros/pkg/secrets"
	"github.com/arthur-debert/dynmacros/pkg/templates"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

// GenerateResult reports what a generate run produced
type GenerateResult struct {
	Platform      types.Platform
	Configuration types.Configuration
	Macros        *macros.Result
	SecretsSource secrets.Source
	Substitutions types.Substitutions
	Generated     *generators.Output
	Templates     *templates.Report
}

// GenerateDynamicMacros resolves the macros for a platform, writes the
// platform build constants and copies the template files.
func GenerateDynamicMacros(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	logger := logging.GetLogger("core.generate")

	platform, err := types.ParsePlatform(opts.Platform)
	if err != nil {
		return nil, err
	}

	cfg := configOrDefault(opts.Config)
	fs := fileSystemOrOS(opts.FileSystem)

	generator, err := generators.ForPlatform(platform.String(), fs, cfg)
	if err != nil {
		return nil, err
	}

	defer logging.LogOperationStart(logger, "generate")()

	logger.Info().
		Str("platform", platform.String()).
		Str("configuration", opts.Configuration.String()).
		Str("root", opts.Root).
		Msg("Generating dynamic macros")

	loaded := secrets.NewLoader(fs, opts.Root, cfg).Load()

	mc := macros.NewContext(platform, opts.Configuration, opts.Root, opts.Env, cfg)
	mc.FS = fs
	if opts.PrepareMacros != nil {
		opts.PrepareMacros(mc)
	}

	registry := opts.Registry
	if registry == nil {
		registry = macros.DefaultRegistry()
	}
	resolved, err := macros.Resolve(ctx, registry, mc)
	if err != nil {
		return nil, err
	}

	table := loaded.Table.Merge(resolved.Substitutions())

	generated, err := generator.Generate(ctx, &generators.Context{
		Root:               opts.Root,
		Configuration:      opts.Configuration,
		Macros:             resolved,
		Substitutions:      table,
		BuildConstantsPath: opts.BuildConstantsPath,
		InfoPlistPath:      opts.InfoPlistPath,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Generating build constants failed")
		return nil, err
	}

	templatesDir := opts.TemplateFilesPath
	if templatesDir == "" {
		templatesDir = cfg.Paths.TemplateFiles
	}
	copier := templates.NewCopier(fs, opts.Root, config.Resolve(opts.Root, templatesDir))
	report, err := copier.Copy(ctx, platform, opts.Configuration, table)
	if err != nil {
		logger.Error().Err(err).Msg("There was an error while generating template files, which could lead to unexpected behavior at runtime")
		return nil, err
	}

	return &GenerateResult{
		Platform:      platform,
		Configuration: opts.Configuration,
		Macros:        resolved,
		SecretsSource: loaded.Source,
		Substitutions: table,
		Generated:     generated,
		Templates:     report,
	}, nil
}

// CleanupDynamicMacros reverts the changes the platform generator made
func CleanupDynamicMacros(ctx context.Context, opts CleanupOptions) error {
	logger := logging.GetLogger("core.cleanup")

	cfg := configOrDefault(opts.Config)
	generator, err := generators.ForPlatform(opts.Platform, fileSystemOrOS(opts.FileSystem), cfg)
	if err != nil {
		return err
	}

	defer logging.LogOperationStart(logger, "cleanup")()

	logger.Info().Str("platform", opts.Platform).Msg("Cleaning up dynamic macros")
	if err := generator.Cleanup(ctx, &generators.Context{
		Root:               opts.Root,
		BuildConstantsPath: opts.BuildConstantsPath,
		InfoPlistPath:      opts.InfoPlistPath,
	}); err != nil {
		logger.Error().Err(err).Msg("There was an error cleaning up template files")
		return err
	}
	return nil
}

// GetTemplateSubstitutions returns the secrets substitution table
func GetTemplateSubstitutions(fs types.FS, cfg *config.Config, root string) types.Substitutions {
	return secrets.NewLoader(fileSystemOrOS(fs), root, configOrDefault(cfg)).Load().Table
}
