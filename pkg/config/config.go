package config

import (
	"path/filepath"
	"time"

	"github.com/knadh/koanf/v2"
)

// Config is the effective dynmacros configuration
type Config struct {
	Paths      PathsConfig    `koanf:"paths"`
	TestServer ProbeConfig    `koanf:"test_server"`
	Packager   PackagerConfig `koanf:"packager"`
	Manifest   ManifestConfig `koanf:"manifest"`
	Macros     MacrosConfig   `koanf:"macros"`
	IOS        IOSConfig      `koanf:"ios"`
	Android    AndroidConfig  `koanf:"android"`

	k *koanf.Koanf
}

// PathsConfig holds locations relative to the repository root
type PathsConfig struct {
	SecretsKeys           string `koanf:"secrets_keys"`
	PublicKeys            string `koanf:"public_keys"`
	PrivateKeys           string `koanf:"private_keys"`
	TemplateFiles         string `koanf:"template_files"`
	DevHomeConfig         string `koanf:"dev_home_config"`
	HomeProject           string `koanf:"home_project"`
	TestSuiteProject      string `koanf:"test_suite_project"`
	SDKVersionFile        string `koanf:"sdk_version_file"`
	IOSDir                string `koanf:"ios_dir"`
	IOSBuildConstants     string `koanf:"ios_build_constants"`
	AndroidBuildConstants string `koanf:"android_build_constants"`
	FabricScript          string `koanf:"fabric_script"`
}

// ProbeConfig describes the local test server status probe
type ProbeConfig struct {
	Port         int           `koanf:"port"`
	StatusPath   string        `koanf:"status_path"`
	ExpectedBody string        `koanf:"expected_body"`
	Timeout      time.Duration `koanf:"timeout"`
	Placeholder  string        `koanf:"placeholder"`
}

// PackagerConfig describes how a locally served project is detected
type PackagerConfig struct {
	InfoFile     string        `koanf:"info_file"`
	StatusPath   string        `koanf:"status_path"`
	ExpectedBody string        `koanf:"expected_body"`
	Timeout      time.Duration `koanf:"timeout"`
}

// ManifestConfig configures kernel manifest fetching
type ManifestConfig struct {
	Accept    string        `koanf:"accept"`
	Timeout   time.Duration `koanf:"timeout"`
	HomeName  string        `koanf:"home_name"`
	DefaultID string        `koanf:"default_id"`
}

// MacrosConfig controls macro resolution
type MacrosConfig struct {
	// FailFast aborts the run when a producer returns an error. When false the
	// error is logged and the macro resolves to null.
	FailFast bool `koanf:"fail_fast"`
}

type IOSConfig struct {
	APIServerEndpoint string   `koanf:"api_server_endpoint"`
	DefaultAPIKeys    []string `koanf:"default_api_keys"`
	BackupSuffix      string   `koanf:"backup_suffix"`
}

type AndroidConfig struct {
	Package string `koanf:"package"`
	Class   string `koanf:"class"`
}

// Resolve joins rel onto root unless rel is already absolute
func Resolve(root, rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, rel)
}

// Raw returns the merged configuration tree as loaded, before unmarshalling
func (c *Config) Raw() map[string]interface{} {
	if c.k == nil {
		return map[string]interface{}{}
	}
	return c.k.Raw()
}
