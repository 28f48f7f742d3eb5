package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"docvault/internal/domain"
)

const (
	// KeySize is the size of a derived key: AES-256.
	KeySize = 32
	// SaltSize is the size of a generated salt before hex encoding.
	SaltSize = 16
	// DefaultIterations is the PBKDF2 iteration count used when none is configured.
	DefaultIterations = 50000
	// MaxIterations bounds the iteration count DeriveKey accepts.
	MaxIterations = 10_000_000
)

// Key is a derived symmetric key. It is used both for encryption and for
// signing.
type Key [KeySize]byte

// Wipe zeroes the key.
func (k *Key) Wipe() { Wipe(k[:]) }

// GenerateSalt returns SaltSize random bytes, hex encoded.
func GenerateSalt() (string, error) {
	var salt [SaltSize]byte
	if _, err := rand.Read(salt[:] /* #nosec G404 */); err != nil {
		return "", err
	}
	return hex.EncodeToString(salt[:]), nil
}

// DeriveKey derives a Key from secret with PBKDF2-HMAC-SHA256. salt is the
// hex encoding returned by GenerateSalt.
func DeriveKey(secret, salt string, iterations int) (*Key, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty secret", domain.ErrConfig)
	}
	if iterations <= 0 || iterations > MaxIterations {
		return nil, fmt.Errorf("%w: iterations must be in 1..%d, got %d", domain.ErrConfig, MaxIterations, iterations)
	}
	rawSalt, err := hex.DecodeString(salt)
	if err != nil || len(rawSalt) == 0 {
		return nil, fmt.Errorf("%w: salt %q is not hex", domain.ErrMalformedStore, salt)
	}
	dk := pbkdf2.Key([]byte(secret), rawSalt, iterations, KeySize, sha256.New)
	defer Wipe(dk)

	var k Key
	copy(k[:], dk)
	return &k, nil
}
