// Package adler32 computes the big-endian-appended Adler-32 checksum
// NTCP data frames carry. The algorithm is RFC 1950's unmodified, so
// this wraps the standard library's hash/adler32 rather than
// reimplementing the rolling-sum arithmetic.
package adler32

import (
	"encoding/binary"
	"hash/adler32"
)

// Checksum returns the big-endian 4-byte Adler-32 of data.
func Checksum(data []byte) [4]byte {
	var out [4]byte
	binary.BigEndian.PutUint32(out[:], adler32.Checksum(data))
	return out
}
