package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the hex encoded SHA-256 digest of secret, so that
// secrets such as api keys never end up verbatim in caches or logs.
func Fingerprint(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
