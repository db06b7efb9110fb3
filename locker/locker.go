package locker

import (
	"github.com/pkg/errors"
)

func New(f Flock, flush func() error) *locker {
	return &locker{f: f, flush: flush}
}

func (l *locker) Locked() bool {
	return l.held
}

func (l *locker) Lock() (bool, error) {
	if l.held {
		return false, nil
	}
	if err := l.f.Exclusive(); err != nil {
		return false, err
	}
	l.held = true
	return true, nil
}

// Unlock flushes and then releases the lock. The lock is kept when the
// flush fails, so a caller can retry or close.
func (l *locker) Unlock() error {
	if !l.held {
		return nil
	}
	if l.flush != nil {
		if err := l.flush(); err != nil {
			return errors.Wrap(err, "flush before unlock")
		}
	}
	if err := l.f.Release(); err != nil {
		return err
	}
	l.held = false
	return nil
}

// Do runs fn with the lock held. The lock is released afterwards only if
// Do acquired it; a lock that was already held stays held.
func (l *locker) Do(fn func() error) error {
	acquired, err := l.Lock()
	if err != nil {
		return err
	}
	err = fn()
	if !acquired {
		return err
	}
	if uerr := l.Unlock(); uerr != nil && err == nil {
		err = uerr
	}
	return err
}
