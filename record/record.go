package record

import "encoding/binary"

// Encode returns the on-disk form of data: its length as a big-endian u64
// followed by the bytes themselves.
func Encode(data []byte) []byte {
	buf := make([]byte, HeaderSize+len(data))
	PutInteger(buf, uint64(len(data)))
	copy(buf[HeaderSize:], data)
	return buf
}

func Header(n uint64) []byte {
	buf := make([]byte, HeaderSize)
	PutInteger(buf, n)
	return buf
}

func Length(h []byte) uint64 {
	return Integer(h)
}

// Size is the number of bytes a record holding n payload bytes occupies.
func Size(n uint64) uint64 {
	return HeaderSize + n
}

func PutInteger(buf []byte, v uint64) {
	binary.BigEndian.PutUint64(buf, v)
}

func Integer(buf []byte) uint64 {
	return binary.BigEndian.Uint64(buf)
}
