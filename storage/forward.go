package storage

import (
	"github.com/infinivision/dbdb/errmsg"
	"github.com/infinivision/dbdb/record"
	"github.com/pkg/errors"
)

func (itr *forwardIterator) Close() error {
	itr.err = errmsg.ScanEnd
	return nil
}

func (itr *forwardIterator) Next() error {
	if !itr.Valid() {
		if itr.err != nil && itr.err != errmsg.ScanEnd {
			return itr.err
		}
		return errmsg.ScanEnd
	}
	itr.addr += record.Size(itr.n)
	itr.load()
	if itr.err != nil {
		return itr.err
	}
	return nil
}

func (itr *forwardIterator) Valid() bool {
	return itr.err == nil
}

func (itr *forwardIterator) Address() uint64 {
	return itr.addr
}

func (itr *forwardIterator) Length() uint64 {
	return itr.n
}

func (itr *forwardIterator) Value() ([]byte, error) {
	if !itr.Valid() {
		return nil, errmsg.ScanEnd
	}
	return itr.s.Read(itr.addr)
}

// load reads the header at itr.addr, stopping at the end of file seen
// when the iterator was created.
func (itr *forwardIterator) load() {
	switch {
	case itr.s.closed:
		itr.err = errmsg.Closed
		return
	case itr.addr >= itr.end:
		itr.err = errmsg.ScanEnd
		return
	case itr.end-itr.addr < record.HeaderSize:
		itr.err = errors.Wrapf(errmsg.CorruptRecord, "truncated header at %d", itr.addr)
		return
	}
	h := make([]byte, record.HeaderSize)
	if err := itr.s.d.ReadAt(h, int64(itr.addr)); err != nil {
		itr.err = err
		return
	}
	if n := record.Length(h); n > itr.end-itr.addr-record.HeaderSize {
		itr.err = errors.Wrapf(errmsg.CorruptRecord, "record at %d declares %d bytes past end %d", itr.addr, n, itr.end)
	} else {
		itr.n = n
	}
}
