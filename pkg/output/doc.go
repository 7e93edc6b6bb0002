// Package output prints command results.
//
// The text format runs the result through an embedded Go template and then
// expands style markup. The json, yaml and toml formats encode the same view
// structs directly.
package output
