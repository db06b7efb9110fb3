package errmsg

import "github.com/pkg/errors"

var (
	ScanEnd        = errors.New("scan end")
	Closed         = errors.New("store is closed")
	ShortRead      = errors.New("short read")
	ReadFailed     = errors.New("read failed")
	WriteFailed    = errors.New("write failed")
	LockFailed     = errors.New("lock failed")
	NotLocked      = errors.New("not locked")
	CorruptRecord  = errors.New("corrupt record")
	InvalidAddress = errors.New("invalid address")
	RecordTooLarge = errors.New("record too large")
)
