// Package crypto turns a serialised document into an authenticated, encrypted
// payload and back.
//
// Contents
//
//   - Salt generation and PBKDF2-HMAC-SHA256 key derivation (GenerateSalt,
//     DeriveKey)
//   - AES-256-CBC encryption with a random IV, signed with HMAC-SHA256 over
//     the cipher text (EncryptAndSign)
//   - Constant-time signature verification and decryption (Verify, Decrypt,
//     Open)
//   - Best-effort memory wiping for keys (Wipe, Key.Wipe)
//
// # Notes
//
// Open always verifies before it decrypts; unverified cipher text is never
// passed to the block cipher. Callers should Wipe derived keys once the load
// or save that needed them is over.
package crypto
