package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"docvault/internal/domain"
)

// Sealed is an encrypted payload and its signature.
type Sealed struct {
	// CipherText is base64(IV || AES-256-CBC(plaintext)).
	CipherText string
	// Signature is hex(HMAC-SHA256(key, CipherText)).
	Signature  string
}

// EncryptAndSign encrypts plain under key with a fresh IV and signs the
// resulting cipher text.
func EncryptAndSign(plain []byte, key *Key) (Sealed, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return Sealed{}, err
	}
	padded := pad(plain, aes.BlockSize)
	defer Wipe(padded)

	out := make([]byte, aes.BlockSize+len(padded))
	iv := out[:aes.BlockSize]
	if _, err := rand.Read(iv /* #nosec G404 */); err != nil {
		return Sealed{}, err
	}
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)

	ct := base64.StdEncoding.EncodeToString(out)
	return Sealed{CipherText: ct, Signature: sign(ct, key)}, nil
}

// Verify reports whether signature is the signature of cipherText under key.
// The encoded form is compared as written, so a signature differing only in
// hex letter case does not verify. The comparison is constant time.
func Verify(cipherText, signature string, key *Key) bool {
	return hmac.Equal([]byte(signature), []byte(sign(cipherText, key)))
}

// Decrypt recovers the plaintext of cipherText. It must only be called on
// cipher text that passed Verify; Open does both in the right order.
func Decrypt(cipherText string, key *Key) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(cipherText)
	if err != nil {
		return nil, fmt.Errorf("%w: cipher text is not base64", domain.ErrIntegrity)
	}
	if len(raw) < 2*aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: cipher text has invalid length %d", domain.ErrIntegrity, len(raw))
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	iv, body := raw[:aes.BlockSize], raw[aes.BlockSize:]
	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)
	out, err := unpad(plain, aes.BlockSize)
	if err != nil {
		Wipe(plain)
		return nil, err
	}
	return out, nil
}

// Open verifies s and only then decrypts it.
func Open(s Sealed, key *Key) ([]byte, error) {
	if !Verify(s.CipherText, s.Signature, key) {
		return nil, domain.ErrIntegrity
	}
	return Decrypt(s.CipherText, key)
}

func mac(cipherText string, key *Key) []byte {
	h := hmac.New(sha256.New, key[:])
	h.Write([]byte(cipherText))
	return h.Sum(nil)
}

func sign(cipherText string, key *Key) string {
	return hex.EncodeToString(mac(cipherText, key))
}

// pad applies PKCS#7 padding.
func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	out := make([]byte, len(b)+n)
	copy(out, b)
	copy(out[len(b):], bytes.Repeat([]byte{byte(n)}, n))
	return out
}

func unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", domain.ErrIntegrity)
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, fmt.Errorf("%w: bad padding", domain.ErrIntegrity)
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, fmt.Errorf("%w: bad padding", domain.ErrIntegrity)
		}
	}
	return b[:len(b)-n], nil
}
