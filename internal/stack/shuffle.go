package stack

// Rand is the random source used to shuffle options. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// Shuffle permutes s in place with a Fisher–Yates pass so every ordering is
// equally likely.
func Shuffle[T any](s []T, r Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
