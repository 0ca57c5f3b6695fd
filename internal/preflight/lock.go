package preflight

import (
	"fmt"

	"github.com/gofrs/flock"

	"sceneforge/internal/fileutil"
)

// Lock guards a project directory against concurrent pipeline runs.
type Lock struct {
	flock *flock.Flock
	path  string
}

// AcquireProjectLock takes a non-blocking exclusive lock on path. It fails
// when another process already holds the lock.
func AcquireProjectLock(path string) (*Lock, error) {
	if err := fileutil.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("prepare lock file: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire project lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("project %s is in use by another process", path)
	}
	return &Lock{flock: fl, path: path}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}
