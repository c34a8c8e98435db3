// SPDX-License-Identifier: MIT
// Package: matchy-meetups-bot/pairing
//
// types.go — public types, options and sentinel errors.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with errors.Is.
//   • Implementations attach counts and context with %w wrapping.
//   • No partial results are returned alongside an error.

package pairing

import (
	"errors"
	"fmt"
)

// Sentinel errors for pairing.
var (
	// ErrInsufficientParticipants is returned when fewer than two entities are supplied.
	ErrInsufficientParticipants = errors.New("pairing: need at least two participants")

	// ErrTooManyParticipants is returned when the entity count exceeds the configured cap.
	ErrTooManyParticipants = errors.New("pairing: too many participants")

	// ErrSolverInvariant signals an internal defect: an empty matching on a
	// graph that has candidate edges, a broken partition, or a fully
	// constrained input under WithStrictNovelty.
	ErrSolverInvariant = errors.New("pairing: solver invariant violated")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("pairing: invalid option supplied")
)

const (
	// DefaultMaxParticipants is the participant cap the engine is validated for.
	DefaultMaxParticipants = 200

	// maxNodeID bounds node ids so a constraint edge packs into 32 bits.
	maxNodeID = 1<<16 - 1

	minParticipants = 2
)

// Match is an unordered group of two or three entities.
type Match[T any] []T

// Pairing is the partition of all participants for one round.
type Pairing[T any] struct {
	// Matches holds every group. At most one has three members.
	Matches []Match[T]

	// Imperfect lists entities whose Match contains someone they were
	// previously matched with.
	Imperfect []T
}

// Result is a Pairing with solver diagnostics attached.
type Result[T comparable] struct {
	Pairing[T]

	// RemainderScore is the number of constraint edges between the leftover
	// node and the Match it joined. Zero when there was no leftover.
	RemainderScore int

	// NovelPairs is the size of the maximum matching.
	NovelPairs int

	// Constraints is the number of distinct constraint edges among current participants.
	Constraints int

	// Checksum is Checksum(seed, Matches).
	Checksum string
}

// Option configures a single engine invocation.
type Option func(*Options)

// Options holds the tunables for GraphPair and Solve.
type Options struct {
	// MaxParticipants caps the entity count (inclusive).
	MaxParticipants int

	// StrictNovelty turns a fully constrained input into ErrSolverInvariant
	// instead of falling back to repeat pairings.
	StrictNovelty bool

	err error
}

// DefaultOptions returns the engine defaults:
//   - MaxParticipants = DefaultMaxParticipants
//   - StrictNovelty   = false (graceful fallback)
func DefaultOptions() Options {
	return Options{
		MaxParticipants: DefaultMaxParticipants,
		StrictNovelty:   false,
	}
}

// WithMaxParticipants overrides the participant cap.
//
//	2 ≤ n ≤ 65535: accepted
//	otherwise:     ErrOptionViolation
func WithMaxParticipants(n int) Option {
	return func(o *Options) {
		if n < minParticipants || n > maxNodeID {
			o.err = fmt.Errorf("%w: MaxParticipants must be in [%d, %d] (got %d)",
				ErrOptionViolation, minParticipants, maxNodeID, n)
			return
		}
		o.MaxParticipants = n
	}
}

// WithStrictNovelty makes a fully constrained participant set fatal.
func WithStrictNovelty() Option {
	return func(o *Options) { o.StrictNovelty = true }
}

func resolveOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o, o.err
}

func validateCount(n, limit int) error {
	if n < minParticipants {
		return fmt.Errorf("%w: got %d", ErrInsufficientParticipants, n)
	}
	if n > limit {
		return fmt.Errorf("%w: got %d, limit is %d", ErrTooManyParticipants, n, limit)
	}
	return nil
}
