package macros

import (
	"context"
	"strings"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/process"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

// BuildMachineLocalHostname is the Bonjour name of the build machine, empty on
// shell app builders.
//
// Recovers: scutil missing (silently), other scutil failures (logged).
// Fallback: the OS hostname.
type BuildMachineLocalHostname struct{}

func (BuildMachineLocalHostname) Name() string { return NameBuildMachineLocalHostname }

func (BuildMachineLocalHostname) Resolve(ctx context.Context, mc *Context) (Value, error) {
	if mc.Env.IsSet(types.EnvShellAppBuilder) {
		return String(""), nil
	}

	out, err := mc.Runner.Output(ctx, "scutil", "--get", "LocalHostName")
	switch {
	case err == nil:
		// an empty LocalHostName would give a bare ".local"
		if name := strings.TrimSpace(string(out)); name != "" {
			return String(name + ".local"), nil
		}
	case process.IsNotFound(err):
		// not macOS
	default:
		mc.Logger.Error().Err(err).Msg("Could not read LocalHostName")
	}

	host, err := mc.Hostname()
	if err != nil {
		return Value{}, errors.Wrap(err, errors.ErrNotFound, "reading hostname")
	}
	return String(host), nil
}
