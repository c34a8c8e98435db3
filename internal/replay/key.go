// Package replay builds and checks the key that ties a previewed pairing to
// its later commit. The key is "<seed>_<checksum>"; the seed itself may
// contain underscores, so parsing splits on the last one.
package replay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/icssc/matchy-meetups-bot/pairing"
)

var (
	// ErrInvalidKey is returned for keys that do not have the seed_checksum shape.
	ErrInvalidKey = errors.New("replay: invalid key")

	// ErrKeyMismatch is returned when the recomputed checksum differs from the key's.
	ErrKeyMismatch = errors.New("replay: key mismatch")
)

const separator = "_"

// Key pairs the seed string a preview was generated from with its checksum.
type Key struct {
	Seed     string
	Checksum string
}

// New fingerprints matches generated from seed.
func New[T any](seed string, matches []pairing.Match[T]) Key {
	return Key{Seed: seed, Checksum: pairing.Checksum(pairing.HashSeed(seed), matches)}
}

func (k Key) String() string {
	return k.Seed + separator + k.Checksum
}

// SeedValue is the 64-bit engine seed for k.Seed.
func (k Key) SeedValue() uint64 {
	return pairing.HashSeed(k.Seed)
}

// Parse splits s on its last underscore.
func Parse(s string) (Key, error) {
	i := strings.LastIndex(s, separator)
	if i < 0 || i == len(s)-1 {
		return Key{}, fmt.Errorf("%w: please make sure you only use keys returned by a pairing preview", ErrInvalidKey)
	}
	return Key{Seed: s[:i], Checksum: s[i+1:]}, nil
}

// Verify recomputes the checksum of matches and compares it with k.
func Verify[T any](k Key, matches []pairing.Match[T]) error {
	got := pairing.Checksum(k.SeedValue(), matches)
	if got != k.Checksum {
		return fmt.Errorf("%w: this can happen if the key was typed incorrectly, or the members "+
			"with the role have changed since this key was generated; please generate a new preview", ErrKeyMismatch)
	}
	return nil
}
