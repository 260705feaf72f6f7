package mirror

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"autogit-hq/autogit/pkg/gateway"
)

// Lifecycle performs the two mutating mirror operations by invoking the
// native git binary. Clone and fetch transport is git's job; this system
// only decides which of the two to run and where.
type Lifecycle struct {
	store   *Store
	gitPath string
	stderr  io.Writer
	logger  *slog.Logger
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithStderr redirects subprocess stderr, which by default is forwarded to
// the gateway's own stderr so the SSH client sees clone and fetch progress.
func WithStderr(w io.Writer) LifecycleOption {
	return func(l *Lifecycle) { l.stderr = w }
}

// WithGitPath overrides git binary resolution.
func WithGitPath(path string) LifecycleOption {
	return func(l *Lifecycle) { l.gitPath = path }
}

// NewLifecycle creates a Lifecycle over the store. It resolves the git
// binary once up front; a missing binary is reported here rather than in
// the middle of a session.
func NewLifecycle(store *Store, logger *slog.Logger, opts ...LifecycleOption) (*Lifecycle, error) {
	if logger == nil {
		logger = slog.Default()
	}

	l := &Lifecycle{
		store:  store,
		stderr: os.Stderr,
		logger: logger.With("component", "mirror"),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.gitPath == "" {
		git, err := exec.LookPath("git")
		if err != nil {
			return nil, fmt.Errorf("git binary not found in PATH: %w", err)
		}
		l.gitPath = git
	}

	return l, nil
}

// Create materializes a new bare mirror: git clone --mirror of
// urlPrefix + ref.Rest into the store path. Creation is not atomic; a
// failed clone may leave a partial directory behind, but git refuses a
// non-empty target so the next attempt under the lock fails loudly rather
// than operating on a wrong target.
func (l *Lifecycle) Create(ctx context.Context, ref gateway.Reference, urlPrefix string) error {
	url := urlPrefix + ref.Rest
	target := l.store.Path(ref)

	l.logger.Debug("cloning mirror", "url", url, "target", target)

	cmd := exec.CommandContext(ctx, l.gitPath, "clone", "--mirror", url, target)
	l.wire(cmd)
	if err := cmd.Run(); err != nil {
		return gateway.NewCreateFailedError(ref.FullName, fmt.Errorf("git clone --mirror %s: %w", url, err))
	}
	return nil
}

// Refresh updates an existing mirror: git remote update run with the mirror
// directory as the subprocess working directory. The gateway's own working
// directory is never changed.
func (l *Lifecycle) Refresh(ctx context.Context, ref gateway.Reference) error {
	dir := l.store.Path(ref)

	l.logger.Debug("updating mirror", "dir", dir)

	cmd := exec.CommandContext(ctx, l.gitPath, "remote", "update")
	cmd.Dir = dir
	l.wire(cmd)
	if err := cmd.Run(); err != nil {
		return gateway.NewUpdateFailedError(ref.FullName, fmt.Errorf("git remote update: %w", err))
	}
	return nil
}

// wire connects the subprocess streams. Stderr is streamed through to the
// configured writer, not buffered. Stdout is routed there as well: file
// descriptor 1 belongs to the git pack protocol once the session is handed
// off, and nothing may write to it before then.
func (l *Lifecycle) wire(cmd *exec.Cmd) {
	cmd.Stdout = l.stderr
	cmd.Stderr = l.stderr
}
