package analyzer

// Ratcliff/Obershelp similarity over two character sequences: find the
// longest contiguous block common to both sequences, recurse on the
// pieces to its left and right, and sum the matched block lengths M.
// The ratio is 2*M / (len(a)+len(b)).
//
// The ratio is symmetric and bounded in [0,1]; identical non-empty
// strings score 1.0 and fully disjoint strings score 0.0. Two empty
// strings score 1.0.

// Ratio computes the Ratcliff/Obershelp similarity ratio between a and b.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	matched := matchedLength(ra, rb)
	return 2.0 * float64(matched) / float64(total)
}

// span is a pending sub-sequence pair awaiting block matching.
type span struct {
	alo, ahi int
	blo, bhi int
}

// matchedLength sums the lengths of all matching blocks found by the
// recursive longest-block decomposition. An explicit stack replaces the
// recursion so degenerate inputs cannot exhaust the call stack.
func matchedLength(a, b []rune) int {
	matched := 0
	stack := []span{{0, len(a), 0, len(b)}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ai, bi, size := longestMatch(a, b, s.alo, s.ahi, s.blo, s.bhi)
		if size == 0 {
			continue
		}
		matched += size

		if s.alo < ai && s.blo < bi {
			stack = append(stack, span{s.alo, ai, s.blo, bi})
		}
		if ai+size < s.ahi && bi+size < s.bhi {
			stack = append(stack, span{ai + size, s.ahi, bi + size, s.bhi})
		}
	}

	return matched
}

// longestMatch finds the longest contiguous block common to a[alo:ahi]
// and b[blo:bhi]. Ties prefer the earliest block in a, then in b, which
// keeps the decomposition deterministic.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (bestA, bestB, bestSize int) {
	bestA, bestB = alo, blo

	// j2len[j] holds the length of the longest common suffix ending at
	// a[i-1] / b[j-1]; rebuilt row by row.
	j2len := make(map[int]int)

	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestA = i - k + 1
				bestB = j - k + 1
				bestSize = k
			}
		}
		j2len = next
	}

	return bestA, bestB, bestSize
}
