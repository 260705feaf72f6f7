package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"github.com/google/shlex"
	"github.com/google/uuid"

	"autogit-hq/autogit/pkg/config"
)

// EnvOriginalCommand is the environment variable the SSH server sets to the
// client's original command string when a forced command wraps the gateway.
const EnvOriginalCommand = "SSH_ORIGINAL_COMMAND"

// packVerbs is the allow-list of git pack commands the gateway will hand
// off to. Anything else is rejected before any side effect.
var packVerbs = map[string]bool{
	"git-upload-pack":  true,
	"git-receive-pack": true,
}

// MirrorStore answers whether a mirror for a validated reference exists and
// serializes materialization per mirror path.
type MirrorStore interface {
	// Exists reports whether the mirror directory is present on disk.
	Exists(ref Reference) (bool, error)

	// Lock acquires the advisory per-mirror lock, blocking until it is
	// held. The caller must call Unlock.
	Lock(ref Reference) (Unlocker, error)
}

// Unlocker releases a held mirror lock.
type Unlocker interface {
	Unlock() error
}

// MirrorLifecycle performs the two side-effecting mirror operations.
type MirrorLifecycle interface {
	// Create materializes a new bare mirror by cloning
	// urlPrefix + ref.Rest into the store.
	Create(ctx context.Context, ref Reference, urlPrefix string) error

	// Refresh updates an existing mirror from its upstream.
	Refresh(ctx context.Context, ref Reference) error
}

// Dispatcher reads the inbound SSH command, validates it, materializes the
// target mirror, and replaces the process image with the requested git pack
// command. One Dispatcher handles exactly one command, synchronously.
type Dispatcher struct {
	cfg       *config.Config
	store     MirrorStore
	lifecycle MirrorLifecycle
	logger    *slog.Logger

	// seams for tests
	getenv   func(string) (string, bool)
	lookPath func(string) (string, error)
	exec     func(argv0 string, argv []string, env []string) error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithGetenv overrides environment lookup.
func WithGetenv(fn func(string) (string, bool)) Option {
	return func(d *Dispatcher) { d.getenv = fn }
}

// WithLookPath overrides binary resolution.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(d *Dispatcher) { d.lookPath = fn }
}

// WithExec overrides the process-image replacement used for handoff.
func WithExec(fn func(argv0 string, argv []string, env []string) error) Option {
	return func(d *Dispatcher) { d.exec = fn }
}

// NewDispatcher creates a Dispatcher over the given configuration, store,
// and lifecycle. If logger is nil, slog.Default is used. Every invocation
// is tagged with a fresh session id so concurrent gateway instances can be
// told apart in shared logs.
func NewDispatcher(cfg *config.Config, store MirrorStore, lifecycle MirrorLifecycle, logger *slog.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		cfg:       cfg,
		store:     store,
		lifecycle: lifecycle,
		logger:    logger.With("component", "gateway", "session_id", uuid.NewString()),
		getenv:    os.LookupEnv,
		lookPath:  exec.LookPath,
		exec:      syscall.Exec,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes the dispatch pipeline. On success it does not return: the
// process image has been replaced by the requested pack command, which now
// owns the SSH session end to end. Every returned error is an *Error whose
// Kind the caller renders and logs; no handoff happens on any error path.
func (d *Dispatcher) Run(ctx context.Context) error {
	// The repository root must exist before any environment-sourced
	// input is read.
	root := d.cfg.Autogit.RepoDir
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return NewConfigurationError(fmt.Errorf("repository root %q is not a directory", root))
	}

	raw, ok := d.getenv(EnvOriginalCommand)
	if !ok || raw == "" {
		return NewNoCommandError()
	}

	tokens, err := shlex.Split(raw)
	if err != nil || len(tokens) == 0 {
		return NewInvalidCommandError(raw)
	}

	verb := tokens[0]
	if !packVerbs[verb] {
		return NewInvalidCommandError(verb)
	}

	var name string
	if len(tokens) > 1 {
		name = tokens[1]
	}
	ref, err := Resolve(name, d.cfg.Autogit.Tags)
	if err != nil {
		return err
	}

	d.logger.Debug("command accepted", "verb", verb, "repository", ref.FullName)

	if err := d.materialize(ctx, ref); err != nil {
		return err
	}

	return d.handoff(verb, tokens)
}

// materialize creates or refreshes the mirror for ref under the per-mirror
// lock, so concurrent sessions never race a clone against a fetch on the
// same target directory.
func (d *Dispatcher) materialize(ctx context.Context, ref Reference) error {
	lock, err := d.store.Lock(ref)
	if err != nil {
		return NewConfigurationError(fmt.Errorf("cannot lock mirror %q: %w", ref.FullName, err))
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			d.logger.Warn("failed to release mirror lock", "repository", ref.FullName, "error", err)
		}
	}()

	exists, err := d.store.Exists(ref)
	if err != nil {
		return NewConfigurationError(fmt.Errorf("cannot stat mirror %q: %w", ref.FullName, err))
	}

	if exists {
		d.logger.Info("refreshing mirror", "repository", ref.FullName)
		return d.lifecycle.Refresh(ctx, ref)
	}

	d.logger.Info("creating mirror", "repository", ref.FullName)
	return d.lifecycle.Create(ctx, ref, d.cfg.Autogit.Tags[ref.Tag].Prefix)
}

// handoff replaces the process image with the requested pack command,
// passing through the original argument vector and inherited standard
// streams. This is a terminal action: on success no gateway code runs
// again for this connection.
func (d *Dispatcher) handoff(verb string, argv []string) error {
	bin, err := d.lookPath(verb)
	if err != nil {
		return NewConfigurationError(fmt.Errorf("%s not found in PATH: %w", verb, err))
	}

	d.logger.Debug("handing off", "binary", bin, "argv", argv)

	if err := d.exec(bin, argv, os.Environ()); err != nil {
		return NewConfigurationError(fmt.Errorf("exec %s: %w", bin, err))
	}
	return nil
}
