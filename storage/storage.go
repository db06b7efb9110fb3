package storage

import (
	"math"
	"os"

	"github.com/infinivision/dbdb/constant"
	"github.com/infinivision/dbdb/disk"
	"github.com/infinivision/dbdb/errmsg"
	"github.com/infinivision/dbdb/locker"
	"github.com/infinivision/dbdb/record"
	"github.com/nnsgmsone/damrey/logger"
	"github.com/pkg/errors"
)

const maxInt = int(^uint(0) >> 1)

func DefaultConfig() Config {
	return Config{
		SuperblockSize: constant.SuperblockSize,
		Log:            logger.New(os.Stderr, "dbdb"),
	}
}

// New lays out the superblock of fp if it is missing. fp is closed by
// Close and by nothing else, including a failing New.
func New(fp disk.File, cfg Config) (*storage, error) {
	if cfg.SuperblockSize == 0 {
		cfg.SuperblockSize = constant.SuperblockSize
	}
	if cfg.SuperblockSize < constant.IntegerSize {
		return nil, errors.Errorf("superblock size %d cannot hold the root address", cfg.SuperblockSize)
	}
	if cfg.Log == nil {
		cfg.Log = logger.New(os.Stderr, "dbdb")
	}
	d := disk.New(fp)
	s := &storage{
		d:   d,
		log: cfg.Log,
		sbs: cfg.SuperblockSize,
		l:   locker.New(locker.NewFlock(fp.Fd()), d.Flush),
	}
	if err := s.ensureSuperblock(); err != nil {
		if uerr := s.l.Unlock(); uerr != nil {
			s.log.Errorf("storage - failed to unlock after init error: %v\n", uerr)
		}
		return nil, err
	}
	return s, nil
}

func (s *storage) Close() error {
	if s.closed {
		return errmsg.Closed
	}
	s.closed = true
	err := s.l.Unlock()
	if err != nil {
		s.log.Errorf("storage - failed to unlock on close: %v\n", err)
	}
	if cerr := s.d.Close(); cerr != nil {
		s.log.Errorf("storage - failed to close file: %v\n", cerr)
		if err == nil {
			err = cerr
		}
	}
	return err
}

func (s *storage) Closed() bool {
	return s.closed
}

func (s *storage) SuperblockSize() int64 {
	return s.sbs
}

func (s *storage) Lock() (bool, error) {
	if s.closed {
		return false, errmsg.Closed
	}
	return s.l.Lock()
}

func (s *storage) Unlock() error {
	if s.closed {
		return errmsg.Closed
	}
	return s.l.Unlock()
}

// WithLock runs fn holding the lock and releases it afterwards, unless
// the lock was already held when WithLock was called.
func (s *storage) WithLock(fn func() error) error {
	if s.closed {
		return errmsg.Closed
	}
	return s.l.Do(fn)
}

// Write appends data as a new record and returns its address. The lock is
// left held; nothing is flushed.
func (s *storage) Write(data []byte) (uint64, error) {
	if s.closed {
		return 0, errmsg.Closed
	}
	if _, err := s.l.Lock(); err != nil {
		return 0, err
	}
	end, err := s.d.Size()
	if err != nil {
		return 0, err
	}
	if uint64(end) > math.MaxInt64-record.HeaderSize ||
		uint64(len(data)) > math.MaxInt64-record.HeaderSize-uint64(end) {
		return 0, errors.Wrapf(errmsg.RecordTooLarge, "%d bytes at %d", len(data), end)
	}
	if err := s.d.WriteAt(record.Encode(data), end); err != nil {
		return 0, err
	}
	return uint64(end), nil
}

// Read returns the payload of the record at addr. Reads take no lock.
func (s *storage) Read(addr uint64) ([]byte, error) {
	if s.closed {
		return nil, errmsg.Closed
	}
	if addr < uint64(s.sbs) || addr > math.MaxInt64 {
		return nil, errors.Wrapf(errmsg.InvalidAddress, "%d", addr)
	}
	size, err := s.d.Size()
	if err != nil {
		return nil, err
	}
	if uint64(size) < addr+record.HeaderSize {
		return nil, errors.Wrapf(errmsg.ShortRead, "no record header at %d, file size %d", addr, size)
	}
	h := make([]byte, record.HeaderSize)
	if err := s.d.ReadAt(h, int64(addr)); err != nil {
		return nil, err
	}
	n := record.Length(h)
	if n > uint64(size)-addr-record.HeaderSize {
		return nil, errors.Wrapf(errmsg.CorruptRecord, "record at %d declares %d bytes, file size %d", addr, n, size)
	}
	// only reachable where int is 32 bits
	if n > uint64(maxInt) {
		return nil, errors.Wrapf(errmsg.RecordTooLarge, "record at %d declares %d bytes", addr, n)
	}
	buf := make([]byte, n)
	if err := s.d.ReadAt(buf, int64(addr+record.HeaderSize)); err != nil {
		return nil, err
	}
	return buf, nil
}

// CommitRootAddress makes addr the root. Pending writes reach the disk
// before the root changes, and the lock is released on success.
func (s *storage) CommitRootAddress(addr uint64) error {
	if s.closed {
		return errmsg.Closed
	}
	if _, err := s.l.Lock(); err != nil {
		return err
	}
	if err := s.d.Flush(); err != nil {
		return errors.Wrap(err, "flush before commit")
	}
	if err := s.writeInteger(constant.RootAddress, addr); err != nil {
		return err
	}
	if err := s.d.Flush(); err != nil {
		return errors.Wrap(err, "flush after commit")
	}
	return s.l.Unlock()
}

// GetRootAddress returns the committed root, constant.NoRoot on a fresh
// file. Takes no lock.
func (s *storage) GetRootAddress() (uint64, error) {
	if s.closed {
		return 0, errmsg.Closed
	}
	buf := make([]byte, constant.IntegerSize)
	if err := s.d.ReadAt(buf, constant.RootAddress); err != nil {
		return 0, err
	}
	return record.Integer(buf), nil
}

func (s *storage) NewForwardIterator(start uint64) (Iterator, error) {
	if s.closed {
		return nil, errmsg.Closed
	}
	if start == 0 {
		start = uint64(s.sbs)
	}
	if start < uint64(s.sbs) {
		return nil, errors.Wrapf(errmsg.InvalidAddress, "%d", start)
	}
	end, err := s.d.Size()
	if err != nil {
		return nil, err
	}
	itr := &forwardIterator{s: s, addr: start, end: uint64(end)}
	itr.load()
	return itr, nil
}

func (s *storage) writeInteger(o int64, v uint64) error {
	if _, err := s.l.Lock(); err != nil {
		return err
	}
	return s.d.WriteAt(record.Header(v), o)
}

func (s *storage) ensureSuperblock() error {
	if _, err := s.l.Lock(); err != nil {
		return err
	}
	end, err := s.d.Size()
	if err != nil {
		return err
	}
	if end < s.sbs {
		if err := s.d.WriteAt(make([]byte, s.sbs-end), end); err != nil {
			return err
		}
	}
	return s.l.Unlock()
}
