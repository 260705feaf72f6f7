// Package gateway implements the SSH command dispatch pipeline.
//
// The gateway runs as an SSH forced command: the server invokes it instead
// of a shell and passes the client's original request via the
// SSH_ORIGINAL_COMMAND environment variable. The Dispatcher tokenizes that
// command, checks the verb against the git pack-command allow-list,
// validates the repository name against the configured tag table, creates
// or refreshes the local bare mirror, and finally replaces the process
// image with the requested pack command so the git protocol exchange
// proceeds as if the client had reached the repository directly.
//
// Validation happens strictly before any filesystem or network side
// effect. Every failure is an *Error tagged with one of the closed set of
// Kinds; the command layer switches over the Kind to render it, and on any
// failure the process exits without handing off, so the remote client only
// ever sees a clean connection closure plus whatever diagnostic text the
// clone or fetch already streamed to stderr.
package gateway
