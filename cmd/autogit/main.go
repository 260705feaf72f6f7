// Autogit is a transparent SSH git-command gateway with an on-demand
// mirror cache.
//
// Installed as an SSH forced command, it intercepts git-upload-pack and
// git-receive-pack requests, resolves the requested repository name to an
// upstream URL through a configured tag table, lazily clones a bare mirror
// on first access (or refreshes it on later ones), and then execs the
// requested pack command so the client's git protocol exchange continues
// against the local mirror.
//
// Usage:
//
//	# As a forced command in authorized_keys
//	command="autogit" ssh-ed25519 AAAA... user@host
//
//	# Validate the configuration
//	autogit validate
//
//	# List materialized mirrors
//	autogit mirrors
//
//	# Refresh every mirror once
//	autogit sweep
//
//	# Run scheduled refresh sweeps
//	autogit daemon
package main

func main() {
	Execute()
}
