// Package runlock serializes engine invocations per data directory. The
// cron schedule and a hunt sleeping out its retry budget can overlap; two
// concurrent browser sessions against the same sources is exactly what the
// sequential processing model forbids, so the late invocation exits instead.
package runlock

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Acquire takes a non-blocking file lock under dataDir. ok is false when
// another invocation already holds it; release is safe to call either way.
func Acquire(dataDir string) (release func(), ok bool, err error) {
	fl := flock.New(filepath.Join(dataDir, "engine.lock"))

	locked, err := fl.TryLock()
	if err != nil {
		return func() {}, false, fmt.Errorf("runlock: %w", err)
	}
	if !locked {
		return func() {}, false, nil
	}
	return func() { _ = fl.Unlock() }, true, nil
}
