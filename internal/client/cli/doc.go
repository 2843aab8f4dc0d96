// Package cli provides the interactive tradeboard command-line client.
//
// It wires configuration, the session database, the retrying HTTP transport
// and the application services, then runs a REPL. A background watcher
// probes the backend and shows online/offline in the prompt.
//
// Commands:
//   - categories, list, show: browse the marketplace
//   - post, edit, delete: manage your own listings
//   - moderate, admin: staff only
//   - login, signup, logout, whoami
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
