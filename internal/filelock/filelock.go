// Package filelock guards the restobid data directory against concurrent
// application instances and provides atomic file writes for exported
// artifacts. The tool is single-user by design; the lock makes that
// assumption explicit instead of trusting it.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Guard is an advisory file lock on the data directory.
type Guard struct {
	flock *flock.Flock
	path  string
}

// NewGuard creates a lock guard at the given lock file path.
func NewGuard(path string) *Guard {
	return &Guard{flock: flock.New(path), path: path}
}

// Acquire attempts to take the lock without blocking. A held lock means
// another restobid instance has the data directory open.
func (g *Guard) Acquire() error {
	acquired, err := g.flock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", g.path, err)
	}
	if !acquired {
		return fmt.Errorf("data directory is in use by another restobid instance (lock: %s)", g.path)
	}
	return nil
}

// Release releases the lock.
func (g *Guard) Release() error {
	if err := g.flock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", g.path, err)
	}
	return nil
}

// AtomicWrite writes data to path via a same-directory temp file and
// rename, so readers never observe a partial artifact. The original file,
// if any, is untouched when the write fails.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}

	// Rename is atomic within one filesystem; the temp file lives next to
	// the target to guarantee that.
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	tmp = nil
	return nil
}
