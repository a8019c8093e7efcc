package ntcp

import (
	"encoding/binary"
	"time"
)

// nowTimestamp returns the current time as a big-endian 4-byte
// seconds-since-epoch timestamp, as carried in Phase2/Phase3 and
// time-sync frames.
func nowTimestamp() [4]byte {
	return encodeTimestamp(time.Now())
}

func encodeTimestamp(t time.Time) [4]byte {
	var out [4]byte
	binary.BigEndian.PutUint32(out[:], uint32(t.Unix()))
	return out
}

func decodeTimestamp(b []byte) time.Time {
	return time.Unix(int64(binary.BigEndian.Uint32(b)), 0)
}
