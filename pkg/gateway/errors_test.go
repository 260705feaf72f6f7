package gateway

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorRendering(t *testing.T) {
	cause := errors.New("exit status 128")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "no command",
			err:  NewNoCommandError(),
			want: "interactive shell",
		},
		{
			name: "invalid command",
			err:  NewInvalidCommandError("shell"),
			want: `invalid command "shell"`,
		},
		{
			name: "invalid tag",
			err:  NewInvalidRepositoryTagError("bad/proj.git"),
			want: `invalid repository tag in "bad/proj.git"`,
		},
		{
			name: "invalid repository",
			err:  NewInvalidRepositoryError("work/proj"),
			want: `invalid repository "work/proj"`,
		},
		{
			name: "create failed",
			err:  NewCreateFailedError("work/proj.git", cause),
			want: "failed to create mirror",
		},
		{
			name: "update failed",
			err:  NewUpdateFailedError("work/proj.git", cause),
			want: "failed to update mirror",
		},
		{
			name: "configuration",
			err:  NewConfigurationError(errors.New("no repodir")),
			want: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := NewCreateFailedError("work/proj.git", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped subprocess failure")
	}
}

func TestKindOf(t *testing.T) {
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf(plain error) should report not-a-gateway-error")
	}

	kind, ok := KindOf(fmt.Errorf("wrapped: %w", NewInvalidCommandError("rm")))
	if !ok || kind != KindInvalidCommand {
		t.Errorf("KindOf(wrapped) = %v, %v; want InvalidCommand, true", kind, ok)
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindConfiguration:          "ConfigurationError",
		KindNoCommand:              "NoCommand",
		KindInvalidCommand:         "InvalidCommand",
		KindInvalidRepositoryTag:   "InvalidRepositoryTag",
		KindInvalidRepository:      "InvalidRepository",
		KindRepositoryCreateFailed: "RepositoryCreateFailed",
		KindRepositoryUpdateFailed: "RepositoryUpdateFailed",
	}
	for kind, want := range kinds {
		if kind.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), kind.String(), want)
		}
	}
}
