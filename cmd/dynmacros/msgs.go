package dynmacros

import (
	_ "embed"
	"strings"
)

// Short messages
const (
	MsgRootShort          = "Generate build-time macros for native projects"
	MsgGenerateShort      = "Resolve macros and write build constants and template files"
	MsgCleanupShort       = "Revert the changes made by generate"
	MsgResolveShort       = "Print the resolved macros"
	MsgSubstitutionsShort = "Print the secrets substitution table"
	MsgFabricShort        = "Run the Fabric upload script with the Fabric keys"
	MsgGenConfigShort     = "Print the effective configuration as TOML"
	MsgVersionShort       = "Print version information"
	MsgCompletionShort    = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose            = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot               = "Repository root (default: $EXPO_ROOT_DIR, then the git toplevel, then the current directory)"
	MsgFlagConfig             = "Configuration file (default: dynmacros.toml in the repository root)"
	MsgFlagPlatform           = "Target platform: ios or android"
	MsgFlagConfiguration      = "Build configuration: debug or release"
	MsgFlagBuildConstantsPath = "Build constants file (default from paths.ios_build_constants or paths.android_build_constants)"
	MsgFlagInfoPlistPath      = "Info.plist to substitute placeholders in (iOS)"
	MsgFlagTemplateFilesPath  = "Template files directory (default from paths.template_files)"
	MsgFlagFormat             = "Output format: text, json, yaml or toml"
	MsgFlagFabricPath         = "Path to Fabric's run script (default from paths.fabric_script)"
	MsgFlagDefaults           = "Print the built-in defaults, with comments, instead of the effective configuration"

	MsgCleanupDone = "[success]Cleaned up[/success] %s build files"

	// Error messages
	MsgErrNoCommand = "no command specified"
	MsgErrLoadRoot  = "failed to find the repository root: %w"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/cleanup-long.txt
	msgCleanupLongRaw string
	MsgCleanupLong    = strings.TrimSpace(msgCleanupLongRaw)

	//go:embed msgs/resolve-long.txt
	msgResolveLongRaw string
	MsgResolveLong    = strings.TrimSpace(msgResolveLongRaw)

	//go:embed msgs/fabric-long.txt
	msgFabricLongRaw string
	MsgFabricLong    = strings.TrimSpace(msgFabricLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
