package disk

import (
	"io"
	"os"

	"github.com/infinivision/dbdb/errmsg"
	"github.com/pkg/errors"
)

func New(fp File) *disk {
	return &disk{fp}
}

func (d *disk) Fd() uintptr {
	return d.fp.Fd()
}

func (d *disk) Close() error {
	return d.fp.Close()
}

func (d *disk) Flush() error {
	if err := d.fp.Sync(); err != nil {
		return wrap(err, "sync")
	}
	return nil
}

func (d *disk) Size() (int64, error) {
	n, err := d.fp.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, wrap(err, "seek end")
	}
	return n, nil
}

// ReadAt fills buf from offset o. A read that stops at end of file
// returns errmsg.ShortRead.
func (d *disk) ReadAt(buf []byte, o int64) error {
	n, err := d.fp.ReadAt(buf, o)
	switch {
	case n == len(buf):
		return nil
	case err == io.EOF || err == nil:
		return errors.Wrapf(errmsg.ShortRead, "%d of %d bytes at %d", n, len(buf), o)
	default:
		return wrap(err, "read %d bytes at %d", len(buf), o)
	}
}

func (d *disk) WriteAt(buf []byte, o int64) error {
	n, err := d.fp.WriteAt(buf, o)
	switch {
	case err != nil:
		return wrap(err, "write %d bytes at %d", len(buf), o)
	case n != len(buf):
		return errors.Wrapf(errmsg.WriteFailed, "%d of %d bytes at %d", n, len(buf), o)
	}
	return nil
}

// wrap reports a handle closed behind the store's back as errmsg.Closed.
func wrap(err error, format string, args ...interface{}) error {
	if errors.Is(err, os.ErrClosed) {
		return errors.Wrapf(errmsg.Closed, format+": %v", append(args, err)...)
	}
	return errors.Wrapf(err, format, args...)
}
