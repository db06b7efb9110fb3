package constant

const (
	RootAddress = int64(0) // offset of the root pointer
	NoRoot      = uint64(0)
)

const (
	IntegerSize    = 8    // u64, big-endian
	SuperblockSize = 4096 // 4k
)
