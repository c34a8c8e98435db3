// SPDX-License-Identifier: MIT
// Package: matchy-meetups-bot/pairing
//
// pair.go — public entry points and the pairing assembler.
//
// Contract:
//   • 2 ≤ len(entities) ≤ MaxParticipants (else ErrInsufficientParticipants /
//     ErrTooManyParticipants).
//   • Every entity appears in exactly one Match of size 2 or 3; at most one
//     Match has size 3, and only for an odd count.
//   • Imperfect lists exactly the entities whose Match holds a historical partner.
//   • Pure: inputs are not modified and nothing is retained between calls.

package pairing

import (
	"fmt"
)

// GraphPair partitions entities into pairs (plus at most one triple) while
// maximizing the number of pairs that do not repeat any historical Match.
//
// Example:
//
//	p, err := pairing.GraphPair([]string{"a", "b", "c", "d"},
//		[]pairing.Match[string]{{"a", "b"}}, 42)
func GraphPair[T comparable](entities []T, history []Match[T], seed uint64, opts ...Option) (Pairing[T], error) {
	res, err := Solve(entities, history, seed, opts...)
	if err != nil {
		return Pairing[T]{}, err
	}
	return res.Pairing, nil
}

// Solve is GraphPair with diagnostics.
func Solve[T comparable](entities []T, history []Match[T], seed uint64, opts ...Option) (Result[T], error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return Result[T]{}, err
	}
	if err = validateCount(len(entities), o.MaxParticipants); err != nil {
		return Result[T]{}, err
	}

	nodes := shuffled(entities, seed)
	g, constraints := buildConstraintGraph(nodes, history)

	mate := maximumMatching(g)
	solver := matchedPairs(mate)
	if len(solver) == 0 {
		if g.edges > 0 {
			return Result[T]{}, fmt.Errorf("%w: empty matching on %d nodes with %d candidate edges",
				ErrSolverInvariant, g.order(), g.edges)
		}
		if o.StrictNovelty {
			return Result[T]{}, fmt.Errorf("%w: every pair among %d participants is constrained",
				ErrSolverInvariant, g.order())
		}
	}

	rs := resolveRemainder(solver, unmatchedNodes(mate), constraints)

	matches := make([]Match[T], len(rs.groups))
	for i, group := range rs.groups {
		m := make(Match[T], len(group))
		for j, id := range group {
			m[j] = nodes[id]
		}
		matches[i] = m
	}
	imperfect := make([]T, len(rs.imperfect))
	for i, id := range rs.imperfect {
		imperfect[i] = nodes[id]
	}

	if err = checkPartition(entities, matches); err != nil {
		return Result[T]{}, err
	}

	return Result[T]{
		Pairing: Pairing[T]{
			Matches:   matches,
			Imperfect: imperfect,
		},
		RemainderScore: rs.score,
		NovelPairs:     len(solver),
		Constraints:    constraints.Len(),
		Checksum:       Checksum(seed, matches),
	}, nil
}

// RandomPair shuffles entities and chunks them into pairs, ignoring history.
// An odd entity joins the last pair. Imperfect is always empty.
//
// Complexity: O(n).
func RandomPair[T any](entities []T, seed uint64) (Pairing[T], error) {
	if len(entities) < minParticipants {
		return Pairing[T]{}, fmt.Errorf("%w: got %d", ErrInsufficientParticipants, len(entities))
	}

	nodes := shuffled(entities, seed)
	matches := make([]Match[T], 0, len(nodes)/2)
	for i := 0; i+1 < len(nodes); i += 2 {
		matches = append(matches, Match[T]{nodes[i], nodes[i+1]})
	}
	if len(nodes)%2 == 1 {
		last := len(matches) - 1
		matches[last] = append(matches[last], nodes[len(nodes)-1])
	}

	return Pairing[T]{Matches: matches}, nil
}

// checkPartition asserts that matches hold every entity exactly as often as
// the input does, in groups of two or three with at most one triple.
func checkPartition[T comparable](entities []T, matches []Match[T]) error {
	counts := make(map[T]int, len(entities))
	for _, e := range entities {
		counts[e]++
	}

	var triples int
	for _, m := range matches {
		switch len(m) {
		case 2:
		case 3:
			triples++
		default:
			return fmt.Errorf("%w: match of size %d", ErrSolverInvariant, len(m))
		}
		for _, e := range m {
			counts[e]--
		}
	}
	if triples > 1 {
		return fmt.Errorf("%w: %d triples", ErrSolverInvariant, triples)
	}
	for e, c := range counts {
		if c != 0 {
			return fmt.Errorf("%w: entity %v placed %d times too few", ErrSolverInvariant, e, c)
		}
	}

	return nil
}
