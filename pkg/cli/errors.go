package cli

import (
	"autogit-hq/autogit/pkg/gateway"
)

// Exit codes for the autogit binary. The SSH client never sees these (a
// failed dispatch just closes the connection), but wrapper scripts and
// tests do.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
	ExitInvalidInput  = 3
	ExitNoCommand     = 4
)

// ExitCodeFor maps an error to the process exit code. Gateway errors map
// by kind; anything else is a generic failure.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}

	kind, ok := gateway.KindOf(err)
	if !ok {
		return ExitFailure
	}

	switch kind {
	case gateway.KindConfiguration:
		return ExitConfiguration
	case gateway.KindNoCommand:
		return ExitNoCommand
	case gateway.KindInvalidCommand, gateway.KindInvalidRepositoryTag, gateway.KindInvalidRepository:
		return ExitInvalidInput
	case gateway.KindRepositoryCreateFailed, gateway.KindRepositoryUpdateFailed:
		return ExitFailure
	default:
		return ExitFailure
	}
}
