// Package authutil holds credential helpers shared by the login stores.
package authutil

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 12

// prehash folds a password of any length into 44 bytes, under bcrypt's
// 72-byte input limit.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// HashPassword hashes the SHA-256 digest of a password with bcrypt, so
// passwords of any length are accepted.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// IsHash reports whether stored looks like a bcrypt hash rather than a
// legacy plaintext password.
func IsHash(stored string) bool {
	if len(stored) != 60 {
		return false
	}
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// CheckPassword compares password with the stored value. legacy is true
// when the stored value was plaintext and matched, so the caller can
// replace it with a hash.
func CheckPassword(password, stored string) (ok, legacy bool) {
	if stored == "" {
		return false, false
	}
	if IsHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), prehash(password)) == nil, false
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1 {
		return true, true
	}
	return false, false
}
