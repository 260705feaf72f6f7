package gateway

import (
	"errors"
	"fmt"
)

// Kind identifies one of the closed set of gateway failure modes. Every
// error the gateway raises before handoff carries exactly one Kind, so the
// dispatch boundary can switch over it exhaustively.
type Kind int

const (
	// KindConfiguration indicates an invalid or missing repository root
	// directory, or an otherwise unusable configuration.
	KindConfiguration Kind = iota

	// KindNoCommand indicates no original SSH command was present in the
	// environment. This is an interactive shell access attempt, not a
	// protocol error.
	KindNoCommand

	// KindInvalidCommand indicates the command did not tokenize or its
	// first token is not an allow-listed git pack verb.
	KindInvalidCommand

	// KindInvalidRepositoryTag indicates the repository name has no tag
	// segment or its tag is not present in the tag table.
	KindInvalidRepositoryTag

	// KindInvalidRepository indicates the repository name is malformed:
	// missing the required ".git" suffix or attempting to escape the
	// repository root.
	KindInvalidRepository

	// KindRepositoryCreateFailed indicates the mirror clone subprocess
	// exited with failure.
	KindRepositoryCreateFailed

	// KindRepositoryUpdateFailed indicates the mirror remote-update
	// subprocess exited with failure.
	KindRepositoryUpdateFailed
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "ConfigurationError"
	case KindNoCommand:
		return "NoCommand"
	case KindInvalidCommand:
		return "InvalidCommand"
	case KindInvalidRepositoryTag:
		return "InvalidRepositoryTag"
	case KindInvalidRepository:
		return "InvalidRepository"
	case KindRepositoryCreateFailed:
		return "RepositoryCreateFailed"
	case KindRepositoryUpdateFailed:
		return "RepositoryUpdateFailed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the gateway error type. Every failure surfaced by the dispatcher
// is an *Error tagged with its Kind and carrying the structured detail for
// that kind.
type Error struct {
	// Kind tags the failure mode.
	Kind Kind

	// Repository is the logical repository name, when one was parsed.
	Repository string

	// Command is the offending command verb, for KindInvalidCommand.
	Command string

	// Err is the underlying cause, if any (e.g. the subprocess failure
	// for create/update errors).
	Err error
}

// Error returns the human-readable rendering of the failure.
func (e *Error) Error() string {
	switch e.Kind {
	case KindConfiguration:
		if e.Err != nil {
			return fmt.Sprintf("invalid configuration: %v", e.Err)
		}
		return "invalid configuration"
	case KindNoCommand:
		return "no command given, interactive shell access is not allowed"
	case KindInvalidCommand:
		return fmt.Sprintf("invalid command %q", e.Command)
	case KindInvalidRepositoryTag:
		return fmt.Sprintf("invalid repository tag in %q", e.Repository)
	case KindInvalidRepository:
		return fmt.Sprintf("invalid repository %q", e.Repository)
	case KindRepositoryCreateFailed:
		return fmt.Sprintf("failed to create mirror for %q: %v", e.Repository, e.Err)
	case KindRepositoryUpdateFailed:
		return fmt.Sprintf("failed to update mirror for %q: %v", e.Repository, e.Err)
	default:
		return fmt.Sprintf("gateway error (%s)", e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigurationError returns a KindConfiguration error wrapping err.
func NewConfigurationError(err error) *Error {
	return &Error{Kind: KindConfiguration, Err: err}
}

// NewNoCommandError returns a KindNoCommand error.
func NewNoCommandError() *Error {
	return &Error{Kind: KindNoCommand}
}

// NewInvalidCommandError returns a KindInvalidCommand error for verb.
func NewInvalidCommandError(verb string) *Error {
	return &Error{Kind: KindInvalidCommand, Command: verb}
}

// NewInvalidRepositoryTagError returns a KindInvalidRepositoryTag error for name.
func NewInvalidRepositoryTagError(name string) *Error {
	return &Error{Kind: KindInvalidRepositoryTag, Repository: name}
}

// NewInvalidRepositoryError returns a KindInvalidRepository error for name.
func NewInvalidRepositoryError(name string) *Error {
	return &Error{Kind: KindInvalidRepository, Repository: name}
}

// NewCreateFailedError returns a KindRepositoryCreateFailed error for name
// wrapping the subprocess failure.
func NewCreateFailedError(name string, err error) *Error {
	return &Error{Kind: KindRepositoryCreateFailed, Repository: name, Err: err}
}

// NewUpdateFailedError returns a KindRepositoryUpdateFailed error for name
// wrapping the subprocess failure.
func NewUpdateFailedError(name string, err error) *Error {
	return &Error{Kind: KindRepositoryUpdateFailed, Repository: name, Err: err}
}

// KindOf extracts the gateway Kind from err. The second return is false when
// err is not a gateway error.
func KindOf(err error) (Kind, bool) {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind, true
	}
	return 0, false
}
