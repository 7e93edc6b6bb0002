package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/dynmacros/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dynmacros/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dynmacros/internal/version.Date={{.Date}}
)

// String formats the build information for `dynmacros version`
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
