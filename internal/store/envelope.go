package store

import (
	"encoding/json"
	"fmt"
	"math"

	"docvault/internal/crypto"
	"docvault/internal/domain"
)

const (
	// metaKey holds {salt, iterations}; its presence marks an envelope.
	metaKey = "_encryption"
	// stateKey holds {content, signature}.
	stateKey = "_state"
)

// Encryption configures encryption at rest. A nil *Encryption means plaintext.
type Encryption struct {
	Secret     string
	// Iterations is the PBKDF2 iteration count for new envelopes. Existing
	// envelopes keep the count they were written with.
	Iterations int
}

func (e *Encryption) iterations() int {
	if e.Iterations <= 0 {
		return crypto.DefaultIterations
	}
	return e.Iterations
}

// isEnvelope reports whether m is an encrypted envelope.
func isEnvelope(m map[string]any) bool {
	_, ok := m[metaKey]
	return ok
}

// seal encrypts doc under a key derived with a fresh salt.
func seal(doc domain.Document, enc *Encryption) (map[string]any, error) {
	plain, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTypeMismatch, err)
	}
	defer crypto.Wipe(plain)

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, err
	}
	iterations := enc.iterations()
	key, err := crypto.DeriveKey(enc.Secret, salt, iterations)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	sealed, err := crypto.EncryptAndSign(plain, key)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		metaKey: map[string]any{
			"salt":       salt,
			"iterations": iterations,
		},
		stateKey: map[string]any{
			"content":   sealed.CipherText,
			"signature": sealed.Signature,
		},
	}, nil
}

// unseal verifies and decrypts the envelope m. Nothing is decrypted unless
// the signature checks out.
func unseal(m map[string]any, enc *Encryption) (domain.Document, error) {
	meta, ok := m[metaKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a mapping", domain.ErrMalformedStore, metaKey)
	}
	state, ok := m[stateKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a mapping", domain.ErrMalformedStore, stateKey)
	}

	salt, _ := meta["salt"].(string)
	if salt == "" {
		var err error
		if salt, err = crypto.GenerateSalt(); err != nil {
			return nil, err
		}
	}
	iterations := enc.iterations()
	if n, ok := domain.AsNumber(meta["iterations"]); ok && n >= 1 && n == math.Trunc(n) {
		if n > crypto.MaxIterations {
			return nil, fmt.Errorf("%w: %s.iterations %v exceeds %d", domain.ErrMalformedStore, metaKey, n, crypto.MaxIterations)
		}
		iterations = int(n)
	}
	key, err := crypto.DeriveKey(enc.Secret, salt, iterations)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	content, _ := state["content"].(string)
	signature, _ := state["signature"].(string)
	plain, err := crypto.Open(crypto.Sealed{CipherText: content, Signature: signature}, key)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(plain)

	doc, err := JSONCodec{}.Unmarshal(plain)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
