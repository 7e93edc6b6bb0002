package macros

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dynmacros/pkg/netutil"
)

// TestServerURL is the address of the local test server when it answers its
// status endpoint.
//
// Recovers: LAN lookup failure, network errors, timeout, body mismatch.
// Fallback: the configured placeholder ("TODO").
type TestServerURL struct{}

func (TestServerURL) Name() string { return NameTestServerURL }

func (TestServerURL) Resolve(ctx context.Context, mc *Context) (Value, error) {
	cfg := mc.Config.TestServer

	lan, err := mc.LANAddress()
	if err != nil {
		mc.Logger.Debug().Err(err).Msg("No LAN address for test server")
		return String(cfg.Placeholder), nil
	}

	base := fmt.Sprintf("http://%s:%d", lan, cfg.Port)
	running, err := netutil.Probe(ctx, mc.HTTP, base+cfg.StatusPath, cfg.ExpectedBody, cfg.Timeout)
	if err != nil {
		mc.Logger.Debug().Err(err).Str("url", base).Msg("Test server probe failed")
		return String(cfg.Placeholder), nil
	}
	if !running {
		return String(cfg.Placeholder), nil
	}
	return String(base), nil
}
