package paths

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/process"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

// Environment variable names
const (
	// EnvRootDir overrides repository root discovery
	EnvRootDir = "EXPO_ROOT_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Root is a resolved repository root
type Root struct {
	// Dir is the absolute repository root
	Dir string
	// UsedFallback is true when the current directory was used because
	// neither an explicit root nor a git repository was found
	UsedFallback bool
}

// FindRoot determines the repository root using the following priority:
// 1. explicit (the --root flag)
// 2. EXPO_ROOT_DIR from env
// 3. Git repository root (git rev-parse --show-toplevel)
// 4. Current working directory (fallback)
func FindRoot(ctx context.Context, explicit string, env types.Env, runner process.Runner) (Root, error) {
	if explicit != "" {
		return absRoot(ExpandHome(explicit), false)
	}

	if dir := env.Get(EnvRootDir); dir != "" {
		return absRoot(ExpandHome(dir), false)
	}

	if gitRoot, err := findGitRoot(ctx, runner); err == nil {
		return absRoot(gitRoot, false)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return Root{}, errors.Wrap(err, errors.ErrFileRead, "failed to get current directory")
	}
	return absRoot(cwd, true)
}

func absRoot(dir string, fallback bool) (Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Root{}, errors.Wrapf(err, errors.ErrFileRead, "failed to get absolute path for %s", dir)
	}
	return Root{Dir: abs, UsedFallback: fallback}, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot(ctx context.Context, runner process.Runner) (string, error) {
	output, err := runner.Output(ctx, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
