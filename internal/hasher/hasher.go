// Package hasher computes short content digests for diagnostics. They identify
// bytes exactly and are unrelated to the perceptual hash.
package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// DigestLen is the hex length used in log lines (64 bits).
const DigestLen = 16

// Sum returns the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ContentHash returns the big-endian hex xxHash64 of data truncated to hexLen
// characters. hexLen <= 0 keeps all 16.
func ContentHash(data []byte, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
