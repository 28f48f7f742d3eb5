// Package store persists a single Document to a single file.
//
// The file is JSON or YAML, chosen by its extension. A plaintext file holds
// the Document itself. An encrypted file holds an envelope: a mapping with an
// "_encryption" key carrying the key-derivation parameters and a "_state" key
// carrying the signed cipher text. The presence of "_encryption" is the only
// thing that tells the two formats apart.
//
// Writes go through a temp file and a rename, so a reader never observes a
// partially written file. Loads and saves on one File are serialised by an
// internal mutex.
package store
