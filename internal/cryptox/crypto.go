// Package cryptox derives and verifies password hashes for stored user
// credentials.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing them invalidates every stored hash.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	// SaltSize is the length of a freshly generated salt.
	SaltSize = 16
)

// NewSalt returns SaltSize random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashPassword derives an argon2id key from password and salt.
func HashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPassword recomputes the hash for candidate and compares it with hash
// in constant time.
func VerifyPassword(hash []byte, salt []byte, candidate []byte) bool {
	computed := HashPassword(candidate, salt)
	defer common.WipeByteArray(computed)
	return subtle.ConstantTimeCompare(hash, computed) == 1
}
