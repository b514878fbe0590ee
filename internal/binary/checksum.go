package binary

import (
	"hash"
	"hash/crc32"
)

// CRC32 computes the CRC-32 (IEEE polynomial) used for chunk trailers and
// compressed buffer headers.
func CRC32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// NewCRC32 returns a running CRC-32 accumulator for use with
// Writer.WithChecksum.
func NewCRC32() hash.Hash32 {
	return crc32.NewIEEE()
}

// VerifyCRC32 verifies data against an expected CRC-32.
func VerifyCRC32(data []byte, expected uint32) bool {
	return CRC32(data) == expected
}
