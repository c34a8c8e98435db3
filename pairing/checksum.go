package pairing

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// checksumDigits is the length of the hex fingerprint returned by Checksum.
const checksumDigits = 8

// Checksum fingerprints a seed together with the exact match structure:
// group order, member order and membership all change the result. It detects
// accidental change only; it is not collision resistant.
//
// Members are encoded with %v, each prefixed by its length, so any entity type
// with a stable textual form works.
func Checksum[T any](seed uint64, matches []Match[T]) string {
	d := xxhash.New()
	var word [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(word[:], v)
		_, _ = d.Write(word[:])
	}

	writeUint(seed)
	writeUint(uint64(len(matches)))
	var buf []byte
	for _, m := range matches {
		writeUint(uint64(len(m)))
		for _, e := range m {
			buf = fmt.Appendf(buf[:0], "%v", e)
			writeUint(uint64(len(buf)))
			_, _ = d.Write(buf)
		}
	}

	return fmt.Sprintf("%016x", d.Sum64())[:checksumDigits]
}

// HashSeed turns a free-form seed string (for example a date) into a 64-bit seed.
func HashSeed(s string) uint64 {
	return xxhash.Sum64String(s)
}
