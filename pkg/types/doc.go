// Package types defines the core types and interfaces shared by the
// dynmacros pipeline: target platforms, build configurations, the
// substitution table, the environment snapshot, and the filesystem and
// HTTP abstractions that producers and generators depend on.
package types
