package disk

import "io"

// File is the handle a store is built over. *os.File satisfies it.
type File interface {
	io.Seeker
	io.ReaderAt
	io.WriterAt
	Fd() uintptr
	Sync() error
	Close() error
}

type Disk interface {
	Fd() uintptr
	Close() error
	Flush() error
	Size() (int64, error)
	ReadAt([]byte, int64) error
	WriteAt([]byte, int64) error
}

type disk struct {
	fp File
}
