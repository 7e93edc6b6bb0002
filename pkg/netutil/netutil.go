// Package netutil holds the small network helpers used by macro producers:
// discovering the machine's LAN address and probing local status endpoints.
package netutil

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

// maxProbeBody caps how much of a status response is read
const maxProbeBody = 4096

// LANAddress returns the first non-loopback IPv4 address of an interface
// that is up, falling back to 127.0.0.1 when there is none.
func LANAddress() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrNotFound, "listing network interfaces")
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() {
				return ip4.String(), nil
			}
		}
	}
	return "127.0.0.1", nil
}

// Probe issues a GET against url and reports whether the body is exactly
// expected. The request is bounded by timeout. Transport failures and
// timeouts are returned as errors; a non-matching body is (false, nil).
func Probe(ctx context.Context, client types.HTTPDoer, url, expected string, timeout time.Duration) (bool, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBody))
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body) == expected, nil
}
