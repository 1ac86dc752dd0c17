// Package cli provides the interactive edupilot command-line client.
//
// It wires configuration, the local draft database, the HTTP API client and
// the optimistic task and study log stores behind a small REPL. Mutations
// show up in the local lists immediately and are rolled back with a message
// when the server rejects them.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
