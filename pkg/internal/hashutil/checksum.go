package hashutil

import (
	"crypto/sha256"
	"fmt"
)

// Checksum returns the SHA256 checksum of data in "sha256:<hex>" form
func Checksum(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// Short returns the first 12 hex digits of a checksum, for log lines
func Short(checksum string) string {
	const prefix = "sha256:"
	if len(checksum) > len(prefix)+12 {
		return checksum[len(prefix) : len(prefix)+12]
	}
	return checksum
}
