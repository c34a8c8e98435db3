// SPDX-License-Identifier: MIT
// Package: matchy-meetups-bot/pairing
//
// constraints.go — constraint edges and the candidate graph.
//
// Contract:
//   • Node id = position in the shuffled participant order (0..n-1).
//   • A constraint edge {u,v} exists iff some historical Match holds both
//     participants; it is stored normalized (lower id first).
//   • Historical participants outside the current set impose nothing.
//   • The candidate graph is K_n minus the constraint edges.
//
// Determinism:
//   • Adjacency lists are emitted in ascending id order.

package pairing

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// constraintEdge is an unordered pair of node ids with lower < upper.
type constraintEdge struct {
	lower, upper int
}

func newConstraintEdge(a, b int) constraintEdge {
	if a > b {
		a, b = b, a
	}
	return constraintEdge{lower: a, upper: b}
}

// key packs the edge into 32 bits; both ids are ≤ maxNodeID.
func (e constraintEdge) key() uint32 {
	return uint32(e.lower)<<16 | uint32(e.upper)
}

// ConstraintSet holds the may-not-pair edges of one invocation.
type ConstraintSet struct {
	rb *roaring.Bitmap
}

func newConstraintSet() *ConstraintSet {
	return &ConstraintSet{rb: roaring.New()}
}

// add records {a,b}. Self pairs are ignored.
func (s *ConstraintSet) add(a, b int) {
	if a == b {
		return
	}
	s.rb.Add(newConstraintEdge(a, b).key())
}

// Contains reports whether nodes a and b were matched before.
func (s *ConstraintSet) Contains(a, b int) bool {
	if a == b {
		return false
	}
	return s.rb.Contains(newConstraintEdge(a, b).key())
}

// Len returns the number of distinct constraint edges.
func (s *ConstraintSet) Len() int {
	return int(s.rb.GetCardinality())
}

// countAgainst returns how many members of group are constrained with node.
func (s *ConstraintSet) countAgainst(node int, group []int) int {
	var c int
	for _, m := range group {
		if s.Contains(node, m) {
			c++
		}
	}
	return c
}

// candidateGraph is an undirected simple graph over dense node ids.
type candidateGraph struct {
	adj   [][]int
	edges int
}

func (g *candidateGraph) order() int { return len(g.adj) }

// buildConstraintGraph maps history onto node ids and derives the candidate graph.
//
// Complexity: O(h²) for history (h = members per historical Match, summed),
// O(n²) for the candidate graph.
func buildConstraintGraph[T comparable](nodes []T, history []Match[T]) (*candidateGraph, *ConstraintSet) {
	index := make(map[T]int, len(nodes))
	for i, v := range nodes {
		index[v] = i
	}

	constraints := newConstraintSet()
	ids := make([]int, 0, 3)
	for _, m := range history {
		ids = ids[:0]
		for _, member := range m {
			if id, ok := index[member]; ok {
				ids = append(ids, id)
			}
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				constraints.add(ids[i], ids[j])
			}
		}
	}

	n := len(nodes)
	g := &candidateGraph{adj: make([][]int, n)}
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if constraints.Contains(u, v) {
				continue
			}
			g.adj[u] = append(g.adj[u], v)
			g.adj[v] = append(g.adj[v], u)
			g.edges++
		}
	}

	return g, constraints
}
