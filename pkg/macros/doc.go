// Package macros resolves the build-time values substituted into native
// projects.
//
// A macro is a named producer implementing Macro. The registry is an
// explicit ordered list (DefaultRegistry) and Resolve runs the producers one
// at a time in that order, collecting their values into a Result.
//
// Producers own their failure handling. Each documents the errors it
// recovers from and the fallback it returns; anything else is returned as an
// error and, with macros.fail_fast enabled (the default), aborts the run.
package macros
