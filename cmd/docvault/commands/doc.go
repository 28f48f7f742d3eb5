// Package commands defines the docvault CLI.
//
// Commands
//
//   - get, has, keys, state   Read from the document
//   - find                    Filter a sequence by field criteria
//   - set, delete, push       Write to the document
//   - incr, decr              Adjust a number
//   - clear, destroy          Empty the document or delete its file
//   - watch                   Print the document every time its file changes
//
// # Implementation
//
// The root command merges the YAML config file, the flags and the
// environment into an app.Config and builds the logger before any subcommand
// runs. Each subcommand opens the store, and the writing ones save it before
// returning. Values on the command line are parsed as JSON and fall back to a
// plain string.
package commands
