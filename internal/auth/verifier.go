package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Verifier decides whether a secret grants the admin role.
type Verifier interface {
	Verify(secret string) bool
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(secret string) bool

func (f VerifierFunc) Verify(secret string) bool {
	return f(secret)
}

// SHA256Verifier compares the unsalted hex SHA-256 of the secret with a
// stored digest.
type SHA256Verifier struct {
	digest []byte
}

func NewSHA256Verifier(hexDigest string) (*SHA256Verifier, error) {
	digest, err := hex.DecodeString(strings.TrimSpace(hexDigest))
	if err != nil {
		return nil, err
	}
	if len(digest) != sha256.Size {
		return nil, fmt.Errorf("sha256 digest must be %d hex characters, got %d", 2*sha256.Size, len(strings.TrimSpace(hexDigest)))
	}
	return &SHA256Verifier{digest: digest}, nil
}

func (v *SHA256Verifier) Verify(secret string) bool {
	sum := sha256.Sum256([]byte(secret))
	return subtle.ConstantTimeCompare(sum[:], v.digest) == 1
}

// BcryptVerifier checks the secret against a bcrypt hash.
type BcryptVerifier struct {
	hash []byte
}

func NewBcryptVerifier(hash string) *BcryptVerifier {
	return &BcryptVerifier{hash: []byte(strings.TrimSpace(hash))}
}

func (v *BcryptVerifier) Verify(secret string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(secret)) == nil
}

// DenyAll rejects every secret. It stands in when no admin hash is configured.
var DenyAll Verifier = VerifierFunc(func(string) bool { return false })

// FromHash picks the verifier matching the stored hash format: bcrypt for
// "$2a$"/"$2b$"/"$2y$" hashes, SHA-256 hex otherwise. An empty hash yields
// DenyAll.
func FromHash(stored string) (Verifier, error) {
	stored = strings.TrimSpace(stored)
	switch {
	case stored == "":
		return DenyAll, nil
	case strings.HasPrefix(stored, "$2"):
		if _, err := bcrypt.Cost([]byte(stored)); err != nil {
			return nil, err
		}
		return NewBcryptVerifier(stored), nil
	default:
		return NewSHA256Verifier(stored)
	}
}

// HashSHA256 returns the hex SHA-256 digest stored for secret.
func HashSHA256(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// HashBcrypt returns a bcrypt hash of secret at the default cost.
func HashBcrypt(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
