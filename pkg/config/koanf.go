package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides: DYNMACROS_TEST_SERVER__PORT=4000
// sets test_server.port.
const EnvPrefix = "DYNMACROS_"

// RootConfigFiles are looked up, in order, in the repository root
var RootConfigFiles = []string{"dynmacros.toml", ".dynmacros.toml"}

// LoadOptions selects the configuration sources
type LoadOptions struct {
	// Root is the repository root searched for RootConfigFiles
	Root string
	// File is an explicit config file; when set, RootConfigFiles are ignored
	File string
}

// Load builds the configuration: embedded defaults, then a root or explicit
// TOML file, then environment variables.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	path, err := configFilePath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	cfg := &Config{k: k}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	return cfg, nil
}

// Default returns the embedded defaults only
func Default() *Config {
	cfg, err := Load(LoadOptions{})
	if err != nil {
		// the embedded defaults are part of the binary
		panic(err)
	}
	return cfg
}

func configFilePath(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.File)
		}
		return opts.File, nil
	}
	if opts.Root == "" {
		return "", nil
	}
	for _, name := range RootConfigFiles {
		path := filepath.Join(opts.Root, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// envKey maps DYNMACROS_TEST_SERVER__PORT to test_server.port
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
