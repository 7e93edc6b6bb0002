// Package generators writes resolved macros into a native project: a build
// constants plist for iOS and a Java constants class for Android.
//
// ForPlatform selects the generator. Both generators only touch files whose
// content would change.
package generators
