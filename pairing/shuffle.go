// Package pairing - seeded shuffling.
//
// Goals:
//   - Determinism: same seed ⇒ identical order across processes and platforms.
//   - Encapsulation: one RNG factory keyed solely by the seed; no ambient sources.
package pairing

import (
	"encoding/binary"
	"math/rand/v2"
)

// rngFromSeed returns a ChaCha8-backed generator keyed by seed.
// The seed occupies the first 8 key bytes (little-endian); the rest are zero.
//
// Complexity: O(1).
func rngFromSeed(seed uint64) *rand.Rand {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return rand.New(rand.NewChaCha8(key))
}

// shuffled returns a permuted copy of items; items itself is not modified.
// Fisher–Yates from the tail, one IntN draw per position.
//
// Complexity: O(n) time, O(n) space.
func shuffled[T any](items []T, seed uint64) []T {
	out := make([]T, len(items))
	copy(out, items)
	if len(out) <= 1 {
		return out
	}

	r := rngFromSeed(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
