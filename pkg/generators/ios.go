package generators

import (
	"context"

	"github.com/arthur-debert/dynmacros/pkg/config"
	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/filesystem"
	"github.com/arthur-debert/dynmacros/pkg/logging"
	"github.com/arthur-debert/dynmacros/pkg/macros"
	"github.com/arthur-debert/dynmacros/pkg/plist"
	"github.com/arthur-debert/dynmacros/pkg/types"
	"github.com/rs/zerolog"
)

// Build constants keys written besides the macros
const (
	KeyUseGeneratedDefaults = "USE_GENERATED_DEFAULTS"
	KeyRuntimeVersion       = "EXPO_RUNTIME_VERSION"
	KeyAPIServerEndpoint    = "API_SERVER_ENDPOINT"
	KeyDefaultAPIKeys       = "DEFAULT_API_KEYS"
	KeyIsDevKernel          = "IS_DEV_KERNEL"
	KeyDevKernelSource      = "DEV_KERNEL_SOURCE"
)

// Dev kernel sources
const (
	DevKernelLocal     = "LOCAL"
	DevKernelPublished = "PUBLISHED"
)

// IOS writes the macros into EXBuildConstants.plist and substitutes
// placeholders in Info.plist
type IOS struct {
	fs     types.FS
	cfg    *config.Config
	logger zerolog.Logger
}

func NewIOS(fs types.FS, cfg *config.Config) *IOS {
	return &IOS{fs: fs, cfg: cfg, logger: logging.GetLogger("generators.ios")}
}

func (g *IOS) Platform() types.Platform {
	return types.PlatformIOS
}

func (g *IOS) Generate(_ context.Context, gc *Context) (*Output, error) {
	var update *infoPlistUpdate
	if gc.InfoPlistPath != "" {
		var err error
		if update, err = g.substituteInfoPlist(config.Resolve(gc.Root, gc.InfoPlistPath), gc.Substitutions); err != nil {
			return nil, err
		}
	}

	path := buildConstantsPath(gc, g.cfg.Paths.IOSBuildConstants)
	constants, err := g.readPlist(path)
	if err != nil {
		return nil, err
	}
	if constants == nil {
		constants = plist.NewDict()
	}

	if use, ok := constants.Bool(KeyUseGeneratedDefaults); ok && !use {
		if err := g.writeInfoPlist(update); err != nil {
			return nil, err
		}
		g.logger.Info().Str("path", path).Msg("USE_GENERATED_DEFAULTS is false, leaving build constants untouched")
		return &Output{Path: path, OptedOut: true}, nil
	}

	if gc.Macros != nil {
		for _, e := range gc.Macros.Entries {
			constants.Set(e.Name, e.Value.Text())
		}
	}

	if update != nil {
		version := update.info.String("CFBundleVersion")
		if version == "" {
			version = update.info.String("CFBundleShortVersionString")
		}
		if version != "" {
			constants.Set(KeyRuntimeVersion, version)
		}
	}

	if constants.String(KeyAPIServerEndpoint) == "" {
		constants.Set(KeyAPIServerEndpoint, g.cfg.IOS.APIServerEndpoint)
	}

	apiKeys := plist.NewDict()
	for _, name := range g.cfg.IOS.DefaultAPIKeys {
		apiKeys.Set(name, gc.Substitutions[name])
	}
	constants.Set(KeyDefaultAPIKeys, apiKeys)

	if err := validateDevKernel(constants, gc.Configuration); err != nil {
		return nil, err
	}
	constants.Set(KeyUseGeneratedDefaults, true)

	data, err := plist.Encode(constants)
	if err != nil {
		return nil, err
	}

	// Nothing is written until every file has been computed
	if err := g.writeInfoPlist(update); err != nil {
		return nil, err
	}
	written, err := filesystem.WriteIfChanged(g.fs, path, data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "writing %s", path).WithDetail("path", path)
	}

	g.logger.Info().Str("path", path).Bool("written", written).Msg("Generated iOS build constants")
	return &Output{Path: path, Written: written}, nil
}

// Cleanup restores Info.plist from the backup taken by Generate
func (g *IOS) Cleanup(_ context.Context, gc *Context) error {
	if gc.InfoPlistPath == "" {
		return nil
	}
	path := config.Resolve(gc.Root, gc.InfoPlistPath)
	backup := path + g.cfg.IOS.BackupSuffix

	if _, err := g.fs.Stat(backup); err != nil {
		g.logger.Debug().Str("path", backup).Msg("No Info.plist backup to restore")
		return nil
	}
	if err := g.fs.Rename(backup, path); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "restoring %s", path)
	}
	g.logger.Info().Str("path", path).Msg("Restored Info.plist")
	return nil
}

// validateDevKernel fills IS_DEV_KERNEL and DEV_KERNEL_SOURCE. Debug builds
// run a dev kernel whose manifest must have been resolved.
func validateDevKernel(constants *plist.Dict, configuration types.Configuration) error {
	isDevKernel := configuration.IsDebug()
	source := ""

	if isDevKernel {
		source = constants.String(KeyDevKernelSource)
		if source == "" {
			source = DevKernelLocal
		}

		switch source {
		case DevKernelLocal:
			if constants.String(macros.NameBuildMachineKernelManifest) == "" {
				return errors.New(errors.ErrGenerate,
					"Error generating local kernel manifest. Make sure a local kernel is being served, or switch DEV_KERNEL_SOURCE to use PUBLISHED instead.")
			}
		case DevKernelPublished:
			if constants.String(macros.NameDevPublishedKernelManifest) == "" {
				return errors.New(errors.ErrGenerate,
					"Error downloading DEV published kernel manifest. Make sure you have the latest dev-home-config.json, or switch DEV_KERNEL_SOURCE to use LOCAL instead.")
			}
		default:
			return errors.Newf(errors.ErrGenerate, "unknown DEV_KERNEL_SOURCE %q", source)
		}
	}

	constants.Set(KeyIsDevKernel, isDevKernel)
	constants.Set(KeyDevKernelSource, source)
	return nil
}

// infoPlistUpdate is a substituted Info.plist waiting to be written
type infoPlistUpdate struct {
	path      string
	backup    string
	original  []byte
	data      []byte
	hasBackup bool
	info      *plist.Dict
}

// substituteInfoPlist replaces ${KEY} placeholders in the string values of
// Info.plist without writing anything. The pristine file is kept beside it
// so repeated runs always start from the original placeholders.
func (g *IOS) substituteInfoPlist(path string, table types.Substitutions) (*infoPlistUpdate, error) {
	u := &infoPlistUpdate{path: path, backup: path + g.cfg.IOS.BackupSuffix}

	var err error
	u.original, u.hasBackup, err = filesystem.ReadIfExists(g.fs, u.backup)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "reading %s", u.backup)
	}
	if !u.hasBackup {
		var exists bool
		u.original, exists, err = filesystem.ReadIfExists(g.fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "reading %s", path)
		}
		if !exists {
			return nil, errors.Newf(errors.ErrNotFound, "Info.plist not found at %s", path).WithDetail("path", path)
		}
	}

	if u.info, err = plist.Decode(u.original); err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlistParse, "parsing %s", path)
	}
	u.info.MapStrings(table.Apply)

	if u.data, err = plist.Encode(u.info); err != nil {
		return nil, err
	}
	return u, nil
}

func (g *IOS) writeInfoPlist(u *infoPlistUpdate) error {
	if u == nil {
		return nil
	}
	if !u.hasBackup {
		if err := filesystem.WriteFileAll(g.fs, u.backup, u.original); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "backing up %s", u.path)
		}
	}
	if _, err := filesystem.WriteIfChanged(g.fs, u.path, u.data); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "writing %s", u.path)
	}
	return nil
}

func (g *IOS) readPlist(path string) (*plist.Dict, error) {
	data, exists, err := filesystem.ReadIfExists(g.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "reading %s", path)
	}
	if !exists {
		return nil, nil
	}
	d, err := plist.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlistParse, "parsing %s", path)
	}
	return d, nil
}
