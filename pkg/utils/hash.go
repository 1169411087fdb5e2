package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword hashes a password for storage.
// TODO: move to bcrypt once the seeded dev accounts are migrated.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
