package jptext

// SubstringDistance computes the minimum edit distance between pattern
// and any contiguous substring of text (Sellers' algorithm: the match may
// start anywhere in text for free). The second return is the rune offset
// in text just past the best-matching span; on ties the leftmost span
// wins so results are deterministic.
func SubstringDistance(pattern, text string) (dist, end int) {
	rp := []rune(pattern)
	rt := []rune(text)
	if len(rp) == 0 {
		return 0, 0
	}
	if len(rt) == 0 {
		return len(rp), 0
	}

	prev := make([]int, len(rt)+1) // zero: a match may start at any offset
	curr := make([]int, len(rt)+1)

	for i := 1; i <= len(rp); i++ {
		curr[0] = i
		for j := 1; j <= len(rt); j++ {
			cost := 1
			if rp[i-1] == rt[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	dist = prev[0]
	end = 0
	for j := 1; j <= len(rt); j++ {
		if prev[j] < dist {
			dist = prev[j]
			end = j
		}
	}
	return dist, end
}
