package macros

import (
	"context"
	"net/http"
	"os"

	"github.com/arthur-debert/dynmacros/pkg/config"
	"github.com/arthur-debert/dynmacros/pkg/filesystem"
	"github.com/arthur-debert/dynmacros/pkg/logging"
	"github.com/arthur-debert/dynmacros/pkg/netutil"
	"github.com/arthur-debert/dynmacros/pkg/process"
	"github.com/arthur-debert/dynmacros/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Macro produces the value of one named macro
type Macro interface {
	Name() string
	Resolve(ctx context.Context, mc *Context) (Value, error)
}

// Context is the shared input of every producer. NewContext fills in the
// real implementations; tests replace individual fields.
type Context struct {
	Platform      types.Platform
	Configuration types.Configuration
	Root          string
	Env           types.Env
	Config        *config.Config

	FS         types.FS
	HTTP       types.HTTPDoer
	Runner     process.Runner
	Hostname   func() (string, error)
	LANAddress func() (string, error)
	NewID      func() string
	Logger     zerolog.Logger
}

// NewContext creates a Context backed by the OS, the network and uuid
func NewContext(platform types.Platform, configuration types.Configuration, root string, env types.Env, cfg *config.Config) *Context {
	return &Context{
		Platform:      platform,
		Configuration: configuration,
		Root:          root,
		Env:           env,
		Config:        cfg,
		FS:            filesystem.NewOS(),
		HTTP:          &http.Client{},
		Runner:        process.NewRunner(),
		Hostname:      os.Hostname,
		LANAddress:    netutil.LANAddress,
		NewID:         uuid.NewString,
		Logger:        logging.GetLogger("macros"),
	}
}

// path resolves a configured path against the repository root
func (mc *Context) path(rel string) string {
	return config.Resolve(mc.Root, rel)
}

// Func adapts a function into a Macro
type Func struct {
	MacroName string
	Fn        func(ctx context.Context, mc *Context) (Value, error)
}

func (f Func) Name() string {
	return f.MacroName
}

func (f Func) Resolve(ctx context.Context, mc *Context) (Value, error) {
	return f.Fn(ctx, mc)
}

// Macro names
const (
	NameTestAppURI                 = "TEST_APP_URI"
	NameTestConfig                 = "TEST_CONFIG"
	NameTestServerURL              = "TEST_SERVER_URL"
	NameTestRunID                  = "TEST_RUN_ID"
	NameBuildMachineLocalHostname  = "BUILD_MACHINE_LOCAL_HOSTNAME"
	NameDevPublishedKernelManifest = "DEV_PUBLISHED_KERNEL_MANIFEST"
	NameBuildMachineKernelManifest = "BUILD_MACHINE_KERNEL_MANIFEST"
	NameTemporarySDKVersion        = "TEMPORARY_SDK_VERSION"
	NameInitialURL                 = "INITIAL_URL"
)

// DefaultRegistry returns the built-in macros in resolution order
func DefaultRegistry() []Macro {
	return []Macro{
		TestAppURI{},
		TestConfig{},
		TestServerURL{},
		TestRunID{},
		BuildMachineLocalHostname{},
		DevPublishedKernelManifest{},
		BuildMachineKernelManifest{},
		TemporarySDKVersion{},
		InitialURL{},
	}
}
