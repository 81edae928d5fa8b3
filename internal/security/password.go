package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes = 16
	keyBytes  = 32
)

// PasswordHasher derives and verifies salted password digests using
// PBKDF2-SHA256. The salt is stored separately from the digest, so the same
// plaintext always yields the same digest for a given salt. Callers must not
// log or persist plaintext passwords.
type PasswordHasher struct {
	Iterations int
}

// NewPasswordHasher returns a PasswordHasher with the given PBKDF2 iteration
// count. Counts below 1 fall back to 120000.
func NewPasswordHasher(iterations int) *PasswordHasher {
	if iterations < 1 {
		iterations = 120000
	}
	return &PasswordHasher{Iterations: iterations}
}

// Hash derives a digest for password under a freshly generated random salt.
// Returns the hex-encoded digest and salt suitable for storage.
func (h *PasswordHasher) Hash(password string) (digest, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	salt = hex.EncodeToString(raw)
	return h.derive(password, raw), salt, nil
}

// Verify re-derives the digest for password under the stored salt and compares
// it to storedDigest in constant time. Returns false on any decoding failure.
func (h *PasswordHasher) Verify(password, salt, storedDigest string) bool {
	raw, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	derived := h.derive(password, raw)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(storedDigest)) == 1
}

func (h *PasswordHasher) derive(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, h.Iterations, keyBytes, sha256.New)
	return hex.EncodeToString(key)
}
