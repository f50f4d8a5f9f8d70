// Package dice provides the randomness abstraction used by the battle kernel:
// map placement and attack-target tie-breaking draw from a Source and nothing else.
package dice

// Source is the randomness provider for the battle kernel.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Shuffle pseudo-randomizes the order of n elements using src (Fisher-Yates).
// swap swaps the elements with indexes i and j.
//
// Precondition: src must be non-nil; n >= 0.
// Postcondition: every permutation is equally likely given a uniform src.
func Shuffle(src Source, n int, swap func(i, j int)) {
	if n < 0 {
		panic("dice: Shuffle called with n < 0")
	}
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		swap(i, j)
	}
}
