package dynmacros

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/dynmacros/pkg/config"
	"github.com/arthur-debert/dynmacros/pkg/logging"
	"github.com/arthur-debert/dynmacros/pkg/paths"
	"github.com/arthur-debert/dynmacros/pkg/process"
	"github.com/arthur-debert/dynmacros/pkg/types"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// DotEnvFile is read from the repository root; its values never override
// variables already set in the process environment.
const DotEnvFile = ".env"

// globalOptions holds the persistent flags shared by all commands
type globalOptions struct {
	verbosity  int
	root       string
	configFile string
}

// session is what every command needs before doing real work
type session struct {
	Root   string
	Env    types.Env
	Config *config.Config
}

func loadSession(cmd *cobra.Command, g *globalOptions) (*session, error) {
	logger := logging.GetLogger("cli")

	env := types.EnvFromOS()
	root, err := paths.FindRoot(cmd.Context(), g.root, env, process.NewRunner())
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadRoot, err)
	}
	if root.UsedFallback {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, root.Dir)
	}

	env = withDotEnv(env, root.Dir)

	cfg, err := config.Load(config.LoadOptions{Root: root.Dir, File: absPath(g.configFile)})
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("root", root.Dir).Msg("Session loaded")
	return &session{Root: root.Dir, Env: env, Config: cfg}, nil
}

func withDotEnv(env types.Env, root string) types.Env {
	logger := logging.GetLogger("cli")
	path := filepath.Join(root, DotEnvFile)
	values, err := godotenv.Read(path)
	if err != nil {
		// A missing .env is the common case
		logger.Trace().Err(err).Str("path", path).Msg("No .env loaded")
		return env
	}
	logger.Debug().Str("path", path).Int("count", len(values)).Msg("Loaded .env")
	return env.WithDefaults(values)
}

// absPath resolves a flag value against the working directory, leaving
// empty values empty so config defaults apply.
func absPath(p string) string {
	if p == "" {
		return ""
	}
	p = paths.ExpandHome(p)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func resolveConfiguration(platform types.Platform, value string, env types.Env) (types.Configuration, error) {
	if value == "" && platform == types.PlatformAndroid {
		return types.ConfigurationFromGradleTasks(env.Get(types.EnvAndroidGradleTasks)), nil
	}
	return types.ParseConfiguration(value)
}
