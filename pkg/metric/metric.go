/*
Package metric defines the distance contract the BK-tree index is built on,
plus the concrete Levenshtein implementation used for spelling suggestion.

Any Distance given to the index must be symmetric, non-negative, and satisfy
the triangle inequality. The index relies on the triangle inequality for its
pruning step; handing it a non-metric function makes searches silently miss
true matches. That contract is the caller's to uphold, it is not checked at
runtime.
*/
package metric

// Distance computes an integer distance between two words.
type Distance interface {
	Distance(a, b string) int
}

// Func adapts a plain function to the Distance interface.
type Func func(a, b string) int

// Distance calls f.
func (f Func) Distance(a, b string) int {
	return f(a, b)
}

// Levenshtein is the minimum number of single-rune insertions, deletions,
// or substitutions needed to turn one word into the other.
type Levenshtein struct{}

// Distance implements the two-row dynamic programming form of the
// Wagner-Fischer algorithm, operating on runes so multi-byte input
// is measured per character rather than per byte.
func (Levenshtein) Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Keep the shorter word on the row axis so the rows stay small
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := 0; i <= len(ra); i++ {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[i] = minOf(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

func minOf(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
