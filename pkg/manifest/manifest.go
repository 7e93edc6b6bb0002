// Package manifest fetches app manifests from a development server or the
// publishing service and converts them into the kernel form embedded in
// native builds.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

// Headers sent with every manifest request
const (
	HeaderPlatform   = "Exponent-Platform"
	HeaderSDKVersion = "Exponent-SDK-Version"

	// UnversionedSDK is the sdkVersion stamped on kernel manifests
	UnversionedSDK = "UNVERSIONED"
)

// DefaultAccept is the Accept header used when Request.Accept is empty
const DefaultAccept = "application/expo+json,application/json"

// Request describes one manifest fetch
type Request struct {
	Platform   types.Platform
	SDKVersion string
	Accept     string
}

// Manifest is a decoded manifest object
type Manifest map[string]interface{}

// ID returns the manifest id, or the empty string
func (m Manifest) ID() string {
	id, _ := m["id"].(string)
	return id
}

// Name returns the manifest name, or the empty string
func (m Manifest) Name() string {
	name, _ := m["name"].(string)
	return name
}

// Kernel returns a copy of m in kernel form: id defaults to defaultID when
// missing (unsigned manifests carry none) and sdkVersion is UNVERSIONED.
func (m Manifest) Kernel(defaultID string) Manifest {
	kernel := make(Manifest, len(m)+2)
	for k, v := range m {
		kernel[k] = v
	}
	if kernel.ID() == "" {
		kernel["id"] = defaultID
	}
	kernel["sdkVersion"] = UnversionedSDK
	return kernel
}

// HTTPURL rewrites exp:// and exps:// URLs to http:// and https://
func HTTPURL(raw string) string {
	switch {
	case strings.HasPrefix(raw, "exps://"):
		return "https://" + strings.TrimPrefix(raw, "exps://")
	case strings.HasPrefix(raw, "exp://"):
		return "http://" + strings.TrimPrefix(raw, "exp://")
	}
	return raw
}

// Fetch downloads and decodes the manifest served at rawURL
func Fetch(ctx context.Context, client types.HTTPDoer, rawURL string, r Request) (Manifest, error) {
	url := HTTPURL(rawURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestFetch, "invalid manifest url %q", rawURL)
	}

	accept := r.Accept
	if accept == "" {
		accept = DefaultAccept
	}
	req.Header.Set("Accept", accept)
	if r.Platform != "" {
		req.Header.Set(HeaderPlatform, r.Platform.String())
	}
	if r.SDKVersion != "" {
		req.Header.Set(HeaderSDKVersion, r.SDKVersion)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestFetch, "requesting %s", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestFetch, "reading %s", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf(errors.ErrManifestFetch, "%s responded with status %d", url, resp.StatusCode).
			WithDetail("status", resp.StatusCode)
	}

	return Parse(body)
}

// Parse decodes a manifest body, unwrapping signed envelopes that carry the
// manifest as a JSON string in manifestString.
func Parse(body []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestFetch, "manifest is not a JSON object")
	}
	if m == nil {
		return nil, errors.New(errors.ErrManifestFetch, "manifest is empty")
	}

	if envelope, ok := m["manifestString"].(string); ok {
		var inner Manifest
		if err := json.Unmarshal([]byte(envelope), &inner); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestFetch, "signed manifest has an invalid manifestString")
		}
		if inner == nil {
			return nil, errors.New(errors.ErrManifestFetch, "signed manifest is empty")
		}
		return inner, nil
	}
	return m, nil
}

// String renders the manifest as compact JSON
func (m Manifest) String() string {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Sprintf("%v", map[string]interface{}(m))
	}
	return string(data)
}
