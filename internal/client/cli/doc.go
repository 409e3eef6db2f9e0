// Package cli provides the interactive SnipURL command-line client.
//
// It wires configuration, the encrypted local credential store, the HTTP
// gateway, the session manager, and an interactive REPL. Typical flow:
// restore a previously saved session, revalidate it against the server, and
// execute user commands.
//
// Key features:
//   - Login / Register / Logout with a persisted, encrypted session
//   - Create / List / Show / Delete shortened links
//   - Debounced search, column sorting, and pagination of the link list
//   - Dashboard that aggregates stats, top links, and recent activity
//   - Per-link analytics and export to file
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
