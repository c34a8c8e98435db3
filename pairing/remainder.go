// SPDX-License-Identifier: MIT
// Package: matchy-meetups-bot/pairing
//
// remainder.go — pairing of nodes the matching left exposed.
//
// Contract:
//   • Exposed nodes are paired two at a time in ascending id (= shuffled order).
//     In a maximum matching no two exposed nodes share a candidate edge, so
//     every such pair repeats history and all its members are imperfect.
//   • An odd exposed node joins the formed group with the fewest constraint
//     edges against it; the first group achieving the minimum wins. Solver
//     groups are considered before leftover pairs.

package pairing

// resolution is the outcome of resolving exposed nodes.
type resolution struct {
	// groups: solver groups (one possibly grown to a triple) then leftover pairs.
	groups [][]int

	// imperfect node ids in discovery order.
	imperfect []int

	// remainder is the odd node, or unmatched.
	remainder int

	// score is the constraint count of the remainder against its group.
	score int
}

// resolveRemainder merges solver pairs with leftover pairs and places the odd node.
func resolveRemainder(solver [][]int, exposed []int, constraints *ConstraintSet) resolution {
	res := resolution{remainder: unmatched}

	leftover := make([][]int, 0, len(exposed)/2)
	for i := 0; i+1 < len(exposed); i += 2 {
		pair := []int{exposed[i], exposed[i+1]}
		leftover = append(leftover, pair)
		res.imperfect = append(res.imperfect, pair...)
	}

	res.groups = make([][]int, 0, len(solver)+len(leftover))
	res.groups = append(res.groups, solver...)
	res.groups = append(res.groups, leftover...)

	if len(exposed)%2 == 0 || len(res.groups) == 0 {
		return res
	}

	res.remainder = exposed[len(exposed)-1]
	best, bestScore := -1, 0
	for i, g := range res.groups {
		score := constraints.countAgainst(res.remainder, g)
		if best == -1 || score < bestScore {
			best, bestScore = i, score
		}
	}

	target := res.groups[best]
	if bestScore > 0 {
		res.imperfect = append(res.imperfect, res.remainder)
		// Partners the remainder repeats with are imperfect too; leftover pair
		// members are already listed.
		if best < len(solver) {
			for _, m := range target {
				if constraints.Contains(res.remainder, m) {
					res.imperfect = append(res.imperfect, m)
				}
			}
		}
	}
	res.groups[best] = append(target, res.remainder)
	res.score = bestScore

	return res
}
