// Package cli implements the interactive LifeVault shell. It wires the
// SQLite-backed stores, the data-mode resolver and the remote client into
// application services and drives them from a small REPL.
package cli
