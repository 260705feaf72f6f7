// Package cli provides shared helpers for the autogit commands: signal
// handling for the daemon and exit-code mapping for the gateway.
package cli
