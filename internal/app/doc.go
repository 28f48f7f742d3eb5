// Package app is the glue between the docvault CLI and the store.
//
// It loads and validates Config (YAML file, then flags, then environment),
// builds the slog logger, opens stores and logs what opening them did, and
// watches the backing file for changes. The store itself never logs; App does
// it on the store's behalf.
package app
