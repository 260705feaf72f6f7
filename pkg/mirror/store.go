package mirror

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"autogit-hq/autogit/pkg/gateway"
)

// Store locates mirrors under the repository root. The only mirror state
// this system tracks is directory existence; there is no index or metadata
// record to keep consistent.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the repository root directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the repository root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the filesystem path of the mirror for ref.
func (s *Store) Path(ref gateway.Reference) string {
	return filepath.Join(s.root, filepath.FromSlash(ref.FullName))
}

// Exists reports whether the mirror directory for ref is present on disk.
func (s *Store) Exists(ref gateway.Reference) (bool, error) {
	info, err := os.Stat(s.Path(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("mirror path %q exists but is not a directory", s.Path(ref))
	}
	return true, nil
}

// Lock acquires the advisory per-mirror file lock, blocking until held.
// The lock file lives next to the mirror directory so create and refresh
// on the same target serialize across gateway instances.
func (s *Store) Lock(ref gateway.Reference) (gateway.Unlocker, error) {
	fl, err := s.newLock(ref)
	if err != nil {
		return nil, err
	}
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock %q: %w", fl.Path(), err)
	}
	return fl, nil
}

// TryLock attempts to acquire the per-mirror lock without blocking. The
// boolean reports whether the lock was obtained; the sweep uses this to
// skip mirrors busy in a live session.
func (s *Store) TryLock(ref gateway.Reference) (gateway.Unlocker, bool, error) {
	fl, err := s.newLock(ref)
	if err != nil {
		return nil, false, err
	}
	ok, err := fl.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("failed to lock %q: %w", fl.Path(), err)
	}
	if !ok {
		return nil, false, nil
	}
	return fl, true, nil
}

func (s *Store) newLock(ref gateway.Reference) (*flock.Flock, error) {
	path := s.Path(ref) + ".lock"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create mirror parent directory: %w", err)
	}
	return flock.New(path), nil
}
