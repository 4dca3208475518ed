// Package cli provides the interactive prediction-market command-line client.
//
// It wires configuration, the local session database, the API services, and
// an interactive REPL. The session survives restarts: a stored token is
// picked up on startup and validated against the server by the first
// request it makes.
//
// Key features:
//   - Register / Login / Logout with a persisted session
//   - Browse markets and buy YES/NO shares
//   - Profile editing and password change
//   - Admin console: users, markets, transactions, positions, stats
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
