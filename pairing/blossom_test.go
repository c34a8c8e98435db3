package pairing

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// graphFromEdges builds a candidateGraph with ascending adjacency lists.
func graphFromEdges(n int, edges [][2]int) *candidateGraph {
	has := make([][]bool, n)
	for i := range has {
		has[i] = make([]bool, n)
	}
	for _, e := range edges {
		has[e[0]][e[1]] = true
		has[e[1]][e[0]] = true
	}
	g := &candidateGraph{adj: make([][]int, n)}
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if has[u][v] {
				g.adj[u] = append(g.adj[u], v)
				if u < v {
					g.edges++
				}
			}
		}
	}
	return g
}

// requireValidMatching checks symmetry and that every matched pair is an edge.
func requireValidMatching(t *testing.T, g *candidateGraph, mate []int) {
	t.Helper()
	require.Len(t, mate, g.order())
	for v, u := range mate {
		if u == unmatched {
			continue
		}
		require.Equal(t, v, mate[u], "mate not symmetric at %d", v)
		require.Contains(t, g.adj[v], u, "matched %d–%d is not an edge", v, u)
	}
}

func bruteForceMatching(g *candidateGraph) int {
	used := make([]bool, g.order())
	var rec func(i int) int
	rec = func(i int) int {
		for i < g.order() && used[i] {
			i++
		}
		if i >= g.order() {
			return 0
		}
		used[i] = true
		best := rec(i + 1)
		for _, j := range g.adj[i] {
			if used[j] {
				continue
			}
			used[j] = true
			if v := 1 + rec(i+1); v > best {
				best = v
			}
			used[j] = false
		}
		used[i] = false
		return best
	}
	return rec(0)
}

// TestBlossom_OddCycleWithStem needs a contraction: the 5-cycle 0..4 with a
// pendant 5 on vertex 4 and 6 on vertex 2 has a perfect-minus-one matching of 3.
func TestBlossom_OddCycleWithStem(t *testing.T) {
	g := graphFromEdges(7, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}, {4, 5}, {2, 6}})
	mate := maximumMatching(g)
	requireValidMatching(t, g, mate)
	require.Len(t, matchedPairs(mate), 3)
}

// TestBlossom_Petersen: the Petersen graph has a perfect matching.
func TestBlossom_Petersen(t *testing.T) {
	edges := [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}, // outer cycle
		{0, 5}, {1, 6}, {2, 7}, {3, 8}, {4, 9}, // spokes
		{5, 7}, {7, 9}, {9, 6}, {6, 8}, {8, 5}, // inner pentagram
	}
	g := graphFromEdges(10, edges)
	mate := maximumMatching(g)
	requireValidMatching(t, g, mate)
	require.Len(t, matchedPairs(mate), 5)
	require.Empty(t, unmatchedNodes(mate))
}

// TestBlossom_NestedBlossoms: two triangles joined through a path force
// nested contractions before the augmenting path is found.
func TestBlossom_NestedBlossoms(t *testing.T) {
	edges := [][2]int{
		{0, 1}, {1, 2}, {2, 0},
		{2, 3}, {3, 4},
		{4, 5}, {5, 6}, {6, 4},
		{6, 7}, {1, 8},
	}
	g := graphFromEdges(9, edges)
	mate := maximumMatching(g)
	requireValidMatching(t, g, mate)
	require.Equal(t, bruteForceMatching(g), len(matchedPairs(mate)))
}

// TestBlossom_Empty: no edges, nobody matched.
func TestBlossom_Empty(t *testing.T) {
	g := graphFromEdges(4, nil)
	mate := maximumMatching(g)
	require.Empty(t, matchedPairs(mate))
	require.Equal(t, []int{0, 1, 2, 3}, unmatchedNodes(mate))
}

// TestBlossom_RandomAgainstBruteForce compares sizes on random sparse graphs.
func TestBlossom_RandomAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for iter := 0; iter < 400; iter++ {
		n := 1 + rng.IntN(11)
		p := rng.Float64()
		var edges [][2]int
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if rng.Float64() < p {
					edges = append(edges, [2]int{u, v})
				}
			}
		}
		g := graphFromEdges(n, edges)
		mate := maximumMatching(g)
		requireValidMatching(t, g, mate)
		require.Equal(t, bruteForceMatching(g), len(matchedPairs(mate)), "iter %d edges %v", iter, edges)

		// No two exposed vertices may share an edge in a maximum matching.
		exposed := unmatchedNodes(mate)
		for i := range exposed {
			for j := i + 1; j < len(exposed); j++ {
				require.NotContains(t, g.adj[exposed[i]], exposed[j])
			}
		}
	}
}

func TestConstraintGraph_NormalizesAndDrops(t *testing.T) {
	nodes := []string{"a", "b", "c", "d"}
	history := []Match[string]{{"b", "a"}, {"a", "b"}, {"c", "zed", "d"}, {"zed", "yan"}}
	g, cs := buildConstraintGraph(nodes, history)

	require.Equal(t, 2, cs.Len())
	require.True(t, cs.Contains(0, 1))
	require.True(t, cs.Contains(1, 0))
	require.True(t, cs.Contains(2, 3))
	require.False(t, cs.Contains(0, 2))
	require.False(t, cs.Contains(1, 1))

	require.Equal(t, 4, g.edges) // K4 has 6, minus 2 constraints
	require.Equal(t, []int{2, 3}, g.adj[0])
	require.Equal(t, []int{0, 1}, g.adj[2])
}

func TestResolveRemainder(t *testing.T) {
	cs := newConstraintSet()
	cs.add(4, 0)
	cs.add(4, 2)
	cs.add(3, 4)

	// Solver pairs {0,1} and {2,5}; exposed 3 and 4 repeat history, 6 is odd.
	// Node 6 has no constraints, so it joins the first solver pair.
	rs := resolveRemainder([][]int{{0, 1}, {2, 5}}, []int{3, 4, 6}, cs)
	require.Equal(t, [][]int{{0, 1, 6}, {2, 5}, {3, 4}}, rs.groups)
	require.Equal(t, []int{3, 4}, rs.imperfect)
	require.Equal(t, 6, rs.remainder)
	require.Zero(t, rs.score)

	// Odd node 4 is constrained with 0 and 2; only the leftover pair {6,7}
	// holds none of its past partners.
	rs = resolveRemainder([][]int{{0, 1}, {2, 5}}, []int{6, 7, 4}, cs)
	require.Equal(t, [][]int{{0, 1}, {2, 5}, {6, 7, 4}}, rs.groups)
	require.Equal(t, []int{6, 7}, rs.imperfect)
	require.Zero(t, rs.score)

	// Every group is constrained: first minimum wins and partners are flagged.
	cs.add(4, 1)
	cs.add(4, 5)
	rs = resolveRemainder([][]int{{0, 1}, {2, 5}}, []int{4}, cs)
	require.Equal(t, [][]int{{0, 1, 4}, {2, 5}}, rs.groups)
	require.Equal(t, 2, rs.score)
	require.Equal(t, []int{4, 0, 1}, rs.imperfect)
}

func TestShuffled_DeterministicPermutation(t *testing.T) {
	in := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	a := shuffled(in, 77)
	b := shuffled(in, 77)
	require.Equal(t, a, b)
	require.ElementsMatch(t, in, a)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, in)

	require.Equal(t, []int{5}, shuffled([]int{5}, 1))
	require.Empty(t, shuffled([]int{}, 1))
}
