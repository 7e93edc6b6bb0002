package types

import (
	"os"
	"strings"
)

// Env is an immutable snapshot of environment variables taken once by the
// caller. Producers read environment signals through it instead of os.Getenv.
type Env map[string]string

// Environment variables the pipeline reacts to
const (
	EnvTestSuiteURI       = "TEST_SUITE_URI"
	EnvTestConfig         = "TEST_CONFIG"
	EnvUniverseBuildID    = "UNIVERSE_BUILD_ID"
	EnvShellAppBuilder    = "SHELL_APP_BUILDER"
	EnvTurtleWorkingDir   = "TURTLE_WORKING_DIR_PATH"
	EnvAndroidGradleTasks = "EXPO_ANDROID_GRADLE_TASK_NAMES"
)

// EnvFromOS snapshots the current process environment
func EnvFromOS() Env {
	return EnvFromList(os.Environ())
}

// EnvFromList builds an Env from KEY=VALUE pairs
func EnvFromList(pairs []string) Env {
	env := make(Env, len(pairs))
	for _, pair := range pairs {
		if k, v, ok := strings.Cut(pair, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Get returns the value of key, or the empty string
func (e Env) Get(key string) string {
	return e[key]
}

// IsSet reports whether key holds a non-empty value
func (e Env) IsSet(key string) bool {
	return e[key] != ""
}

// WithDefaults returns a copy of e where keys missing from e are taken from
// defaults. Existing values always win.
func (e Env) WithDefaults(defaults map[string]string) Env {
	merged := make(Env, len(e)+len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range e {
		merged[k] = v
	}
	return merged
}
