package utils

import (
	"crypto/sha256"
	"fmt"
)

// HashString returns a short stable identifier for content addressing.
func HashString(input string) string {
	sum := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", sum[:12])
}
