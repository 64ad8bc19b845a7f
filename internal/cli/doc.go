// Package cli provides the interactive blogkeeper command-line client.
//
// It wires configuration, local storage, the remote post client, and an
// interactive REPL over the two application stores. Typical flow: restore
// the session from the cookie jar, fetch the post collection once, and
// execute user commands against the cached collection.
//
// Key features:
//   - Register / Login / Logout against the simulated local account table
//   - List, search, sort, and page through the post collection
//   - Create / Edit / Delete posts (requires an authenticated session)
//   - Show a single post (interactive ID prompt)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
