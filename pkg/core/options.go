package core

import (
	"github.com/arthur-debert/dynmacros/pkg/config"
	"github.com/arthur-debert/dynmacros/pkg/filesystem"
	"github.com/arthur-debert/dynmacros/pkg/macros"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

// GenerateOptions configures GenerateDynamicMacros
type GenerateOptions struct {
	Platform      string
	Configuration types.Configuration
	Root          string
	Env           types.Env
	Config        *config.Config

	BuildConstantsPath string
	InfoPlistPath      string
	// TemplateFilesPath overrides paths.template_files
	TemplateFilesPath string

	// Registry replaces the default macro registry when set
	Registry []macros.Macro
	// PrepareMacros adjusts the macro context before resolution
	PrepareMacros func(*macros.Context)
	FileSystem    types.FS
}

// CleanupOptions configures CleanupDynamicMacros
type CleanupOptions struct {
	Platform           string
	Root               string
	Config             *config.Config
	BuildConstantsPath string
	InfoPlistPath      string
	FileSystem         types.FS
}

func fileSystemOrOS(fs types.FS) types.FS {
	if fs == nil {
		return filesystem.NewOS()
	}
	return fs
}

func configOrDefault(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}
