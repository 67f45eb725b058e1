package page

import "encoding/binary"

// WordSize is the width of every on-disk integer.
const WordSize = 8

// NullPage marks the absence of a page wherever a page pointer is stored.
const NullPage uint64 = ^uint64(0)

// EncodeWord returns v as 8 big-endian bytes.
func EncodeWord(v uint64) [WordSize]byte {
	var b [WordSize]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b
}

// DecodeWord is the inverse of EncodeWord.
func DecodeWord(b [WordSize]byte) uint64 {
	return binary.BigEndian.Uint64(b[:])
}

func readWord(buf []byte, off int) uint64 {
	return DecodeWord([WordSize]byte(buf[off : off+WordSize]))
}

func writeWord(buf []byte, off int, v uint64) {
	w := EncodeWord(v)
	copy(buf[off:off+WordSize], w[:])
}
