package macros

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/arthur-debert/dynmacros/pkg/jsonfile"
	"github.com/arthur-debert/dynmacros/pkg/netutil"
)

// packagerInfo is the subset of .expo/packager-info.json we use
type packagerInfo struct {
	PackagerPort int `json:"packagerPort"`
}

// servedManifestURL returns the exp:// URL of the project in projectDir when
// its packager is running. It errors when the packager info is missing or the
// packager does not answer its status probe.
func servedManifestURL(ctx context.Context, mc *Context, projectDir string) (string, error) {
	cfg := mc.Config.Packager

	var info packagerInfo
	if err := jsonfile.Read(mc.FS, filepath.Join(projectDir, cfg.InfoFile), &info); err != nil {
		return "", err
	}
	if info.PackagerPort == 0 {
		return "", errors.Newf(errors.ErrNotFound, "no packager port recorded for %s", projectDir)
	}

	statusURL := fmt.Sprintf("http://127.0.0.1:%d%s", info.PackagerPort, cfg.StatusPath)
	running, err := netutil.Probe(ctx, mc.HTTP, statusURL, cfg.ExpectedBody, cfg.Timeout)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNotFound, "probing packager for %s", projectDir)
	}
	if !running {
		return "", errors.Newf(errors.ErrNotFound, "packager for %s is not running", projectDir)
	}

	lan, err := mc.LANAddress()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("exp://%s:%d", lan, info.PackagerPort), nil
}

type sdkVersionFile struct {
	Exp struct {
		SDKVersion string `json:"sdkVersion"`
	} `json:"exp"`
}

// sdkVersion reads exp.sdkVersion from the configured SDK version file
func sdkVersion(mc *Context) (string, error) {
	path := mc.path(mc.Config.Paths.SDKVersionFile)

	var file sdkVersionFile
	if err := jsonfile.Read(mc.FS, path, &file); err != nil {
		return "", err
	}
	if file.Exp.SDKVersion == "" {
		return "", errors.Newf(errors.ErrNotFound, "%s has no exp.sdkVersion", path).
			WithDetail("path", path)
	}
	return file.Exp.SDKVersion, nil
}
