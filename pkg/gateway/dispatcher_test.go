package gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"autogit-hq/autogit/pkg/config"
)

type fakeUnlocker struct {
	unlocked *bool
}

func (f fakeUnlocker) Unlock() error {
	*f.unlocked = true
	return nil
}

type fakeStore struct {
	exists    bool
	existsErr error
	locked    bool
	unlocked  bool
}

func (f *fakeStore) Exists(ref Reference) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeStore) Lock(ref Reference) (Unlocker, error) {
	f.locked = true
	return fakeUnlocker{unlocked: &f.unlocked}, nil
}

type fakeLifecycle struct {
	created    []Reference
	prefixes   []string
	refreshed  []Reference
	createErr  error
	refreshErr error
}

func (f *fakeLifecycle) Create(ctx context.Context, ref Reference, urlPrefix string) error {
	f.created = append(f.created, ref)
	f.prefixes = append(f.prefixes, urlPrefix)
	return f.createErr
}

func (f *fakeLifecycle) Refresh(ctx context.Context, ref Reference) error {
	f.refreshed = append(f.refreshed, ref)
	return f.refreshErr
}

type execCall struct {
	argv0 string
	argv  []string
}

type harness struct {
	dispatcher *Dispatcher
	store      *fakeStore
	lifecycle  *fakeLifecycle
	execs      []execCall
}

func newHarness(t *testing.T, command string, opts ...func(*fakeStore)) *harness {
	t.Helper()

	cfg := &config.Config{
		Autogit: config.AutogitConfig{
			RepoDir: t.TempDir(),
			Tags: map[string]config.TagConfig{
				"work": {Prefix: "https://git.example.com/"},
			},
		},
	}

	h := &harness{
		store:     &fakeStore{},
		lifecycle: &fakeLifecycle{},
	}
	for _, opt := range opts {
		opt(h.store)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h.dispatcher = NewDispatcher(cfg, h.store, h.lifecycle, logger,
		WithGetenv(func(key string) (string, bool) {
			if key == EnvOriginalCommand && command != "" {
				return command, true
			}
			return "", false
		}),
		WithLookPath(func(verb string) (string, error) {
			return "/usr/bin/" + verb, nil
		}),
		WithExec(func(argv0 string, argv []string, env []string) error {
			h.execs = append(h.execs, execCall{argv0: argv0, argv: argv})
			return nil
		}),
	)
	return h
}

func (h *harness) assertNoSideEffects(t *testing.T) {
	t.Helper()
	if h.store.locked {
		t.Error("store was locked")
	}
	if len(h.lifecycle.created) != 0 || len(h.lifecycle.refreshed) != 0 {
		t.Error("lifecycle was invoked")
	}
	if len(h.execs) != 0 {
		t.Error("handoff happened")
	}
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", want)
	}
	kind, ok := KindOf(err)
	if !ok {
		t.Fatalf("expected gateway error, got %v", err)
	}
	if kind != want {
		t.Fatalf("kind = %s, want %s (error: %v)", kind, want, err)
	}
}

func TestDispatch_NoCommand(t *testing.T) {
	h := newHarness(t, "")

	err := h.dispatcher.Run(context.Background())
	assertKind(t, err, KindNoCommand)
	h.assertNoSideEffects(t)
}

func TestDispatch_MissingRepositoryRoot(t *testing.T) {
	h := newHarness(t, "git-upload-pack 'work/proj.git'")
	h.dispatcher.cfg.Autogit.RepoDir = "/nonexistent/autogit-root"

	err := h.dispatcher.Run(context.Background())
	assertKind(t, err, KindConfiguration)
	h.assertNoSideEffects(t)
}

func TestDispatch_InvalidCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{"shell", "shell"},
		{"plain git", "git upload-pack 'work/proj.git'"},
		{"arbitrary binary", "rm -rf /"},
		{"empty token", "''"},
		{"unterminated quote", "git-upload-pack 'work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.command)

			err := h.dispatcher.Run(context.Background())
			assertKind(t, err, KindInvalidCommand)
			h.assertNoSideEffects(t)
		})
	}
}

func TestDispatch_InvalidRepository(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    Kind
	}{
		{"unknown tag", "git-upload-pack 'bad/proj.git'", KindInvalidRepositoryTag},
		{"no repository argument", "git-upload-pack", KindInvalidRepositoryTag},
		{"missing suffix", "git-upload-pack 'work/proj'", KindInvalidRepository},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.command)

			err := h.dispatcher.Run(context.Background())
			assertKind(t, err, tt.want)
			h.assertNoSideEffects(t)
		})
	}
}

func TestDispatch_CreateThenHandoff(t *testing.T) {
	h := newHarness(t, "git-upload-pack 'work/proj.git'")

	if err := h.dispatcher.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(h.lifecycle.created) != 1 {
		t.Fatalf("created %d mirrors, want 1", len(h.lifecycle.created))
	}
	if got := h.lifecycle.created[0].FullName; got != "work/proj.git" {
		t.Errorf("created %q, want work/proj.git", got)
	}
	if got := h.lifecycle.prefixes[0]; got != "https://git.example.com/" {
		t.Errorf("prefix = %q, want https://git.example.com/", got)
	}
	if len(h.lifecycle.refreshed) != 0 {
		t.Error("refresh ran on first access")
	}

	if len(h.execs) != 1 {
		t.Fatalf("exec called %d times, want 1", len(h.execs))
	}
	call := h.execs[0]
	if call.argv0 != "/usr/bin/git-upload-pack" {
		t.Errorf("argv0 = %q", call.argv0)
	}
	if len(call.argv) != 2 || call.argv[0] != "git-upload-pack" || call.argv[1] != "work/proj.git" {
		t.Errorf("argv = %v, want original vector", call.argv)
	}

	if !h.store.locked || !h.store.unlocked {
		t.Error("mirror lock was not taken and released")
	}
}

func TestDispatch_RefreshThenHandoff(t *testing.T) {
	h := newHarness(t, "git-receive-pack 'work/proj.git'", func(s *fakeStore) {
		s.exists = true
	})

	if err := h.dispatcher.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(h.lifecycle.created) != 0 {
		t.Error("create ran for an existing mirror")
	}
	if len(h.lifecycle.refreshed) != 1 {
		t.Fatalf("refreshed %d mirrors, want 1", len(h.lifecycle.refreshed))
	}
	if len(h.execs) != 1 || h.execs[0].argv[0] != "git-receive-pack" {
		t.Errorf("handoff = %+v, want git-receive-pack", h.execs)
	}
}

func TestDispatch_CreateFailureStopsHandoff(t *testing.T) {
	h := newHarness(t, "git-upload-pack 'work/proj.git'")
	h.lifecycle.createErr = NewCreateFailedError("work/proj.git", errors.New("exit status 128"))

	err := h.dispatcher.Run(context.Background())
	assertKind(t, err, KindRepositoryCreateFailed)

	if len(h.execs) != 0 {
		t.Error("handoff happened after failed clone")
	}
	if !h.store.unlocked {
		t.Error("lock leaked on failure path")
	}
}

func TestDispatch_RefreshFailureStopsHandoff(t *testing.T) {
	h := newHarness(t, "git-upload-pack 'work/proj.git'", func(s *fakeStore) {
		s.exists = true
	})
	h.lifecycle.refreshErr = NewUpdateFailedError("work/proj.git", errors.New("exit status 1"))

	err := h.dispatcher.Run(context.Background())
	assertKind(t, err, KindRepositoryUpdateFailed)

	if len(h.execs) != 0 {
		t.Error("handoff happened after failed update")
	}
}
