package cli

import (
	"errors"
	"testing"

	"autogit-hq/autogit/pkg/gateway"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain error", errors.New("boom"), ExitFailure},
		{"configuration", gateway.NewConfigurationError(errors.New("no root")), ExitConfiguration},
		{"no command", gateway.NewNoCommandError(), ExitNoCommand},
		{"invalid command", gateway.NewInvalidCommandError("shell"), ExitInvalidInput},
		{"invalid tag", gateway.NewInvalidRepositoryTagError("bad/x.git"), ExitInvalidInput},
		{"invalid repository", gateway.NewInvalidRepositoryError("work/x"), ExitInvalidInput},
		{"create failed", gateway.NewCreateFailedError("work/x.git", errors.New("exit 128")), ExitFailure},
		{"update failed", gateway.NewUpdateFailedError("work/x.git", errors.New("exit 1")), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor = %d, want %d", got, tt.want)
			}
		})
	}
}
