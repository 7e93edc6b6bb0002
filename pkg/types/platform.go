package types

import (
	"strings"

	"github.com/arthur-debert/dynmacros/pkg/errors"
)

// Platform identifies a native project flavour
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Platforms lists every supported platform
var Platforms = []Platform{PlatformIOS, PlatformAndroid}

// ParsePlatform maps a platform name onto a supported Platform.
// Anything other than ios or android is a fatal configuration error.
func ParsePlatform(name string) (Platform, error) {
	switch Platform(name) {
	case PlatformIOS:
		return PlatformIOS, nil
	case PlatformAndroid:
		return PlatformAndroid, nil
	}
	return "", errors.Newf(errors.ErrUnsupportedPlatform, "Platform '%s' is not supported.", name).
		WithDetail("platform", name)
}

func (p Platform) String() string {
	return string(p)
}

// Configuration is the build configuration a run targets
type Configuration string

const (
	ConfigurationDebug   Configuration = "debug"
	ConfigurationRelease Configuration = "release"
)

// ParseConfiguration accepts debug or release in any case (Xcode passes "Debug").
// An empty name means release.
func ParseConfiguration(name string) (Configuration, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return ConfigurationDebug, nil
	case "release", "":
		return ConfigurationRelease, nil
	}
	return "", errors.Newf(errors.ErrInvalidConfiguration, "unknown build configuration %q", name)
}

// ConfigurationFromGradleTasks infers the configuration from the task names
// Gradle exports in EXPO_ANDROID_GRADLE_TASK_NAMES.
func ConfigurationFromGradleTasks(taskNames string) Configuration {
	if strings.Contains(taskNames, "Debug") {
		return ConfigurationDebug
	}
	return ConfigurationRelease
}

func (c Configuration) IsDebug() bool {
	return c == ConfigurationDebug
}

func (c Configuration) String() string {
	return string(c)
}
