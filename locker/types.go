package locker

// Flock is an exclusive advisory lock over a whole file, shared with
// other processes.
type Flock interface {
	Exclusive() error
	Release() error
}

// Locker is an idempotent Flock holder. Lock reports whether this call
// acquired the lock; a single Unlock releases it however many Lock
// calls came before.
type Locker interface {
	Locked() bool
	Unlock() error
	Lock() (bool, error)
	Do(func() error) error
}

type flock struct {
	fd int
}

type locker struct {
	held  bool
	f     Flock
	flush func() error // run before the lock is released
}
