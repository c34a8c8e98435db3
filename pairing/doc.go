// Package pairing partitions a group of participants into pairs (and at most
// one triple) while avoiding repeat matches from recent rounds.
//
// What
//
//   - GraphPair: history-aware pairing. Builds a candidate graph (complete graph
//     minus every pair seen together in history), runs a maximum-cardinality
//     matching on it, then resolves the leftovers.
//   - Solve: same as GraphPair, plus diagnostics (remainder score, novel pairs,
//     constraint count, checksum).
//   - RandomPair: history-free shuffle-and-chunk pairing.
//   - Checksum: short fingerprint over (seed, matches) used to detect change
//     between a previewed pairing and its later commit.
//   - HashSeed: turns a free-form seed string into a 64-bit seed.
//
// Algorithm
//
//  1. Shuffle participants with a ChaCha8 stream keyed from the seed; node id
//     is the position in the shuffled order.
//  2. Record a constraint edge for every pair of current participants that
//     appears together in any historical Match. Historical participants who
//     are not in the current set are ignored.
//  3. Edmonds' blossom algorithm finds a maximum matching on the candidate
//     graph. Every matched pair is novel by construction.
//  4. Unmatched nodes are paired in shuffled order. Such pairs always repeat
//     a historical match (otherwise the matching was not maximum), so their
//     members are flagged imperfect.
//  5. A single leftover node joins the formed Match with which it shares the
//     fewest constraint edges. A non-zero score flags it imperfect.
//
// Determinism
//
//	For fixed (entities, history, seed) the output is byte-identical across
//	runs and processes. A different (still correct) matching implementation may
//	pick a different maximum matching of the same size; only the size is part
//	of the contract.
//
// Fully constrained input
//
//	When every possible pair is constrained the matching is empty. By default
//	the engine degrades gracefully: everyone is paired anyway and flagged
//	imperfect. WithStrictNovelty turns this case into ErrSolverInvariant.
//
// Complexity (n = participants, h = total historical memberships)
//
//   - Time:   O(n³) worst case for the blossom search, O(n² + h²) elsewhere.
//   - Memory: O(n²) for the candidate graph.
//
// The engine holds no state between calls and is safe for concurrent use.
package pairing
