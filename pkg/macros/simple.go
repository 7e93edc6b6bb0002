package macros

import (
	"context"

	"github.com/arthur-debert/dynmacros/pkg/types"
)

// TestAppURI is the URI of the test-suite app: TEST_SUITE_URI when set,
// otherwise the URL of the locally served test-suite project.
//
// Recovers: missing packager info, probe failures, packager not running.
// Fallback: "".
type TestAppURI struct{}

func (TestAppURI) Name() string { return NameTestAppURI }

func (TestAppURI) Resolve(ctx context.Context, mc *Context) (Value, error) {
	if uri := mc.Env.Get(types.EnvTestSuiteURI); uri != "" {
		return String(uri), nil
	}

	url, err := servedManifestURL(ctx, mc, mc.path(mc.Config.Paths.TestSuiteProject))
	if err != nil {
		mc.Logger.Debug().Err(err).Msg("Test suite is not being served locally")
		return String(""), nil
	}
	return String(url), nil
}

// TestConfig passes TEST_CONFIG through
type TestConfig struct{}

func (TestConfig) Name() string { return NameTestConfig }

func (TestConfig) Resolve(_ context.Context, mc *Context) (Value, error) {
	return String(mc.Env.Get(types.EnvTestConfig)), nil
}

// TestRunID is UNIVERSE_BUILD_ID when set, otherwise a fresh UUID
type TestRunID struct{}

func (TestRunID) Name() string { return NameTestRunID }

func (TestRunID) Resolve(_ context.Context, mc *Context) (Value, error) {
	if id := mc.Env.Get(types.EnvUniverseBuildID); id != "" {
		return String(id), nil
	}
	return String(mc.NewID()), nil
}

// InitialURL is always null
type InitialURL struct{}

func (InitialURL) Name() string { return NameInitialURL }

func (InitialURL) Resolve(context.Context, *Context) (Value, error) {
	return Null(), nil
}

// TemporarySDKVersion is exp.sdkVersion of the SDK version file. Nothing is
// recovered: a missing or malformed file fails the macro.
type TemporarySDKVersion struct{}

func (TemporarySDKVersion) Name() string { return NameTemporarySDKVersion }

func (TemporarySDKVersion) Resolve(_ context.Context, mc *Context) (Value, error) {
	version, err := sdkVersion(mc)
	if err != nil {
		return Value{}, err
	}
	return String(version), nil
}
