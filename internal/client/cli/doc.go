// Package cli provides the interactive WatchKeeper command-line client.
//
// It wires configuration, local session storage, the HTTP gateway, and the
// domain stores behind an interactive REPL. The command set depends on the
// login state: before login only register/login are offered; after login the
// catalog, watchlist, and review commands become available.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
