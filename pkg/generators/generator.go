package generators

import (
	"context"

	"github.com/arthur-debert/dynmacros/pkg/config"
	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/macros"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

// Context is the input of a generator run
type Context struct {
	Root          string
	Configuration types.Configuration
	Macros        *macros.Result
	Substitutions types.Substitutions

	// BuildConstantsPath overrides the configured build constants location
	BuildConstantsPath string
	// InfoPlistPath enables Info.plist substitution (iOS only)
	InfoPlistPath string
}

// Output describes what a generator did
type Output struct {
	Path    string
	Written bool
	// OptedOut is set when the existing file asked not to be regenerated
	OptedOut bool
}

// Generator emits platform build constants
type Generator interface {
	Platform() types.Platform
	Generate(ctx context.Context, gc *Context) (*Output, error)
	Cleanup(ctx context.Context, gc *Context) error
}

// ForPlatform returns the generator for the named platform. Unsupported
// names fail before anything is read or written.
func ForPlatform(name string, fs types.FS, cfg *config.Config) (Generator, error) {
	platform, err := types.ParsePlatform(name)
	if err != nil {
		return nil, err
	}

	switch platform {
	case types.PlatformIOS:
		return NewIOS(fs, cfg), nil
	case types.PlatformAndroid:
		return NewAndroid(fs, cfg), nil
	}
	return nil, errors.Newf(errors.ErrUnsupportedPlatform, "Platform '%s' is not supported.", name)
}

func buildConstantsPath(gc *Context, configured string) string {
	if gc.BuildConstantsPath != "" {
		return config.Resolve(gc.Root, gc.BuildConstantsPath)
	}
	return config.Resolve(gc.Root, configured)
}
