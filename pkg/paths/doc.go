// Package paths locates the repository root that every configured path is
// relative to, and expands ~ in user-supplied paths.
package paths
