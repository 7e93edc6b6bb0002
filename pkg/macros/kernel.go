package macros

import (
	"context"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/jsonfile"
	"github.com/arthur-debert/dynmacros/pkg/manifest"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

type devHomeConfig struct {
	URL string `json:"url"`
}

// DevPublishedKernelManifest is the kernel form of the published dev home
// manifest whose URL is saved in dev-home-config.json.
//
// Recovers: missing or invalid dev-home-config.json, SDK version lookup,
// fetch and parse failures. These are logged at debug on turtle builders and
// at error elsewhere. Fallback: "".
type DevPublishedKernelManifest struct{}

func (DevPublishedKernelManifest) Name() string { return NameDevPublishedKernelManifest }

func (DevPublishedKernelManifest) Resolve(ctx context.Context, mc *Context) (Value, error) {
	value, err := publishedKernel(ctx, mc)
	if err != nil {
		event := mc.Logger.Error()
		if mc.Env.IsSet(types.EnvTurtleWorkingDir) {
			event = mc.Logger.Debug()
		}
		event.Err(err).Msg("Unable to fetch the published dev home manifest")
		return String(""), nil
	}
	return value, nil
}

func publishedKernel(ctx context.Context, mc *Context) (Value, error) {
	path := mc.path(mc.Config.Paths.DevHomeConfig)

	var saved devHomeConfig
	if err := jsonfile.Read(mc.FS, path, &saved); err != nil {
		return Value{}, err
	}
	if saved.URL == "" {
		return Value{}, errors.Newf(errors.ErrNotFound, "%s has no url", path)
	}

	version, err := sdkVersion(mc)
	if err != nil {
		return Value{}, err
	}

	m, err := fetchManifest(ctx, mc, saved.URL, version)
	if err != nil {
		return Value{}, err
	}
	return JSON(m.Kernel(mc.Config.Manifest.DefaultID))
}

// BuildMachineKernelManifest is the kernel form of the home project served
// from this machine. Shell app builders get "".
//
// Recovers: home not served, fetch failures (logged), a served project that
// is not the home app (logged). Fallback: "".
type BuildMachineKernelManifest struct{}

func (BuildMachineKernelManifest) Name() string { return NameBuildMachineKernelManifest }

func (BuildMachineKernelManifest) Resolve(ctx context.Context, mc *Context) (Value, error) {
	if mc.Env.IsSet(types.EnvShellAppBuilder) {
		return String(""), nil
	}

	url, err := servedManifestURL(ctx, mc, mc.path(mc.Config.Paths.HomeProject))
	if err != nil {
		mc.Logger.Debug().Err(err).Msg("Home is not being served locally")
		return String(""), nil
	}

	m, err := fetchManifest(ctx, mc, url, "")
	if err != nil {
		mc.Logger.Error().Err(err).Str("url", url).Msg("Unable to generate manifest from home")
		return String(""), nil
	}

	if m.Name() != mc.Config.Manifest.HomeName {
		mc.Logger.Info().
			Str("url", url).
			Str("name", m.Name()).
			Msg("Served manifest is not the home app, using the published kernel manifest instead")
		return String(""), nil
	}

	value, err := JSON(m.Kernel(mc.Config.Manifest.DefaultID))
	if err != nil {
		mc.Logger.Error().Err(err).Msg("Unable to encode home manifest")
		return String(""), nil
	}
	return value, nil
}

func fetchManifest(ctx context.Context, mc *Context, url, sdk string) (manifest.Manifest, error) {
	cfg := mc.Config.Manifest
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	return manifest.Fetch(ctx, mc.HTTP, url, manifest.Request{
		Platform:   mc.Platform,
		SDKVersion: sdk,
		Accept:     cfg.Accept,
	})
}
