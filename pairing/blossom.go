// SPDX-License-Identifier: MIT
// Package: matchy-meetups-bot/pairing
//
// blossom.go — Edmonds' blossom algorithm for maximum-cardinality matching
// on a general (non-bipartite) graph.
//
// Contract:
//   • Returns mate[v] = partner of v, or unmatched (-1).
//   • Only candidate-graph edges are ever used, so every matched pair is novel.
//   • The matching is maximum: no augmenting path remains.
//
// Determinism:
//   • Roots are tried in ascending id order; neighbors in adjacency order
//     (ascending). The same graph always yields the same matching.
//
// Complexity:
//   • Time:  O(V³) (V augmentations, each an O(V²) search with contractions).
//   • Space: O(V).

package pairing

const unmatched = -1

// blossomSolver holds the per-search scratch state. base[v] is the base of the
// blossom containing v; parent links the alternating tree on outer→inner edges.
type blossomSolver struct {
	g        *candidateGraph
	mate     []int
	parent   []int
	base     []int
	inTree   []bool
	inPath   []bool
	inBlooms []bool
	queue    []int
}

// maximumMatching runs the blossom search from every exposed vertex.
func maximumMatching(g *candidateGraph) []int {
	n := g.order()
	s := &blossomSolver{
		g:        g,
		mate:     make([]int, n),
		parent:   make([]int, n),
		base:     make([]int, n),
		inTree:   make([]bool, n),
		inPath:   make([]bool, n),
		inBlooms: make([]bool, n),
		queue:    make([]int, 0, n),
	}
	for i := range s.mate {
		s.mate[i] = unmatched
	}

	for root := 0; root < n; root++ {
		if s.mate[root] != unmatched {
			continue
		}
		// augment along the path ending at v
		for v := s.findAugmentingPath(root); v != unmatched; {
			pv := s.parent[v]
			next := s.mate[pv]
			s.mate[v] = pv
			s.mate[pv] = v
			v = next
		}
	}

	return s.mate
}

// findAugmentingPath grows an alternating tree from root and returns an exposed
// vertex reachable by an augmenting path, or unmatched if none exists.
func (s *blossomSolver) findAugmentingPath(root int) int {
	for i := range s.base {
		s.parent[i] = unmatched
		s.base[i] = i
		s.inTree[i] = false
	}
	s.inTree[root] = true
	s.queue = append(s.queue[:0], root)

	for head := 0; head < len(s.queue); head++ {
		v := s.queue[head]
		for _, to := range s.g.adj[v] {
			if s.base[v] == s.base[to] || s.mate[v] == to {
				continue
			}
			if to == root || (s.mate[to] != unmatched && s.parent[s.mate[to]] != unmatched) {
				// to is an outer vertex: odd cycle, contract it.
				s.contract(v, to)
				continue
			}
			if s.parent[to] != unmatched {
				continue
			}
			s.parent[to] = v
			if s.mate[to] == unmatched {
				return to
			}
			outer := s.mate[to]
			s.inTree[outer] = true
			s.queue = append(s.queue, outer)
		}
	}

	return unmatched
}

// contract shrinks the blossom closed by edge v–to into its base and enqueues
// any of its vertices that were inner.
func (s *blossomSolver) contract(v, to int) {
	b := s.lowestCommonAncestor(v, to)
	for i := range s.inBlooms {
		s.inBlooms[i] = false
	}
	s.markPath(v, b, to)
	s.markPath(to, b, v)

	for i := range s.base {
		if !s.inBlooms[s.base[i]] {
			continue
		}
		s.base[i] = b
		if !s.inTree[i] {
			s.inTree[i] = true
			s.queue = append(s.queue, i)
		}
	}
}

// lowestCommonAncestor returns the base of the deepest blossom shared by the
// tree paths from a and b to the root.
func (s *blossomSolver) lowestCommonAncestor(a, b int) int {
	for i := range s.inPath {
		s.inPath[i] = false
	}
	for {
		a = s.base[a]
		s.inPath[a] = true
		if s.mate[a] == unmatched {
			break
		}
		a = s.parent[s.mate[a]]
	}
	for {
		b = s.base[b]
		if s.inPath[b] {
			return b
		}
		b = s.parent[s.mate[b]]
	}
}

// markPath flags blossom bases on the path v→b and re-links parents so the
// cycle can be traversed in either direction when augmenting.
func (s *blossomSolver) markPath(v, b, child int) {
	for s.base[v] != b {
		s.inBlooms[s.base[v]] = true
		s.inBlooms[s.base[s.mate[v]]] = true
		s.parent[v] = child
		child = s.mate[v]
		v = s.parent[s.mate[v]]
	}
}

// matchedPairs lists matched edges as (lower, upper) in ascending lower id.
func matchedPairs(mate []int) [][]int {
	var out [][]int
	for v, u := range mate {
		if u != unmatched && v < u {
			out = append(out, []int{v, u})
		}
	}
	return out
}

// unmatchedNodes lists exposed vertices in ascending id.
func unmatchedNodes(mate []int) []int {
	var out []int
	for v, u := range mate {
		if u == unmatched {
			out = append(out, v)
		}
	}
	return out
}
