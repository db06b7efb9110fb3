package storage

import (
	"github.com/infinivision/dbdb/disk"
	"github.com/infinivision/dbdb/locker"
	"github.com/nnsgmsone/damrey/logger"
)

/*
Storage is an append-only object store over a single file. Every Write
returns the address of a new record; CommitRootAddress publishes one of
those addresses as the root. Storage is not safe for concurrent use by
multiple goroutines; the lock only excludes other processes.

Closed reports whether Close was called on the store. A handle closed
directly by the caller is not detected up front; operations on it fail
with errmsg.Closed.
*/
type Storage interface {
	Close() error
	Closed() bool
	SuperblockSize() int64

	Lock() (bool, error)
	Unlock() error
	WithLock(func() error) error

	Read(uint64) ([]byte, error)
	Write([]byte) (uint64, error)

	GetRootAddress() (uint64, error)
	CommitRootAddress(uint64) error

	NewForwardIterator(uint64) (Iterator, error)
}

type Iterator interface {
	Close() error
	Next() error
	Valid() bool
	Address() uint64
	Length() uint64
	Value() ([]byte, error)
}

type Config struct {
	SuperblockSize int64 // bytes reserved ahead of the first record
	Log            logger.Log
}

type forwardIterator struct {
	n    uint64 // payload length of the current record
	addr uint64
	end  uint64 // end of file when the iterator was created
	err  error
	s    *storage
}

type storage struct {
	closed bool
	sbs    int64 // superblock size
	d      disk.Disk
	l      locker.Locker
	log    logger.Log
}
