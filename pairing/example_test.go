package pairing_test

import (
	"fmt"
	"slices"

	"github.com/icssc/matchy-meetups-bot/pairing"
)

// ExampleGraphPair pairs four people so that last round's pairs never repeat.
func ExampleGraphPair() {
	people := []string{"ada", "bob", "cy", "dee"}
	lastRound := []pairing.Match[string]{{"ada", "bob"}, {"cy", "dee"}}

	p, err := pairing.GraphPair(people, lastRound, pairing.HashSeed("2024-10-01"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	repeated := false
	for _, m := range p.Matches {
		if slices.Contains(m, "ada") && slices.Contains(m, "bob") {
			repeated = true
		}
	}
	fmt.Println("matches:", len(p.Matches))
	fmt.Println("repeated:", repeated)
	fmt.Println("imperfect:", len(p.Imperfect))
	// Output:
	// matches: 2
	// repeated: false
	// imperfect: 0
}

// ExampleSolve shows the fallback when everyone has already met everyone.
func ExampleSolve() {
	people := []int{1, 2, 3}
	history := []pairing.Match[int]{{1, 2, 3}}

	res, err := pairing.Solve(people, history, 7)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("groups:", len(res.Matches), "size:", len(res.Matches[0]))
	fmt.Println("novel pairs:", res.NovelPairs)
	fmt.Println("imperfect:", len(res.Imperfect))
	fmt.Println("remainder score:", res.RemainderScore)
	// Output:
	// groups: 1 size: 3
	// novel pairs: 0
	// imperfect: 3
	// remainder score: 2
}
