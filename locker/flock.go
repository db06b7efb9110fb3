package locker

import (
	"github.com/infinivision/dbdb/errmsg"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func NewFlock(fd uintptr) *flock {
	return &flock{int(fd)}
}

// Exclusive blocks until no other open file description holds a lock
// on the file.
func (f *flock) Exclusive() error {
	return f.flock(unix.LOCK_EX)
}

func (f *flock) Release() error {
	return f.flock(unix.LOCK_UN)
}

func (f *flock) flock(how int) error {
	for {
		err := unix.Flock(f.fd, how)
		switch {
		case err == nil:
			return nil
		case err == unix.EINTR:
			continue
		default:
			return errors.Wrapf(errmsg.LockFailed, "flock(%d, %d): %v", f.fd, how, err)
		}
	}
}
