// Package docvault is an embedded document store: one hierarchical JSON-like
// document, kept in memory, addressed by dot-separated paths and persisted to
// a single JSON or YAML file, optionally encrypted at rest.
//
// Open a store, mutate it, then Save:
//
//	s, err := docvault.Open(docvault.Options{Source: "db.json"})
//	if err != nil {
//		return err
//	}
//	if err := s.Set("user.name", "John"); err != nil {
//		return err
//	}
//	if err := s.Push("posts", map[string]any{"id": 0, "author": "John"}); err != nil {
//		return err
//	}
//	return s.Save()
//
// # Encryption
//
// With Options.Encryption set, the file holds an envelope: the document
// encrypted with AES-256-CBC under a PBKDF2 key derived from Options.Secret,
// signed with HMAC-SHA256 over the cipher text. The signature is checked
// before anything is decrypted; a mismatch fails Open with ErrIntegrity. An
// existing plaintext file is encrypted in place the first time it is opened
// with encryption enabled.
//
// # Concurrency
//
// A Store assumes a single writer. Mutations are not locked; Save is
// serialised per Store. Two Stores on the same file overwrite each other.
package docvault
