// Package testutil provides fixtures shared by dynmacros tests: declarative
// file trees and a sample repository with key files, template files and an
// SDK version.
package testutil
