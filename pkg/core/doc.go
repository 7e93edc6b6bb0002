// Package core implements the dynmacros pipelines.
//
// GenerateDynamicMacros is the build-time entry point:
//
//  1. Parse the platform. An unsupported platform fails before any file is
//     read or written.
//  2. Load the template substitutions from the secrets key files.
//  3. Resolve the macros.
//  4. Merge secrets and macros into one substitution table. Macros win.
//  5. Run the platform generator (build constants).
//  6. Copy the platform template files.
//
// CleanupDynamicMacros undoes what the generator changed, and RunFabric
// uploads iOS symbols with the Fabric keys from the same substitution table.
package core
