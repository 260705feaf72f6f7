// Package logging configures structured logging for autogit.
//
// All log output goes to stderr in text or JSON format at the configured
// level. The default level is warn so that gateway log lines do not
// compete with git's forwarded progress output on the SSH error channel.
package logging
