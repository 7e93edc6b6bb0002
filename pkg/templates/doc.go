// Package templates copies platform template files into the repository,
// substituting ${KEY} placeholders on the way.
//
// Which files are copied is listed in <templates>/<platform>-paths.json, a
// JSON object mapping a source path under <templates>/<platform>/ to the
// destination directory (relative to the repository root) that receives it.
package templates
