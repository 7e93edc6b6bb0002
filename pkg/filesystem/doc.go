// Package filesystem provides filesystem implementations for dynmacros.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero-backed filesystem
// used by tests, plus small helpers for optional reads.
package filesystem
