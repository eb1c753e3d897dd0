package jptext

// Distance computes the Levenshtein edit distance between a and b in
// runes, using the two-row dynamic programming formulation.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// DistanceWithin computes the edit distance between a and b if it does
// not exceed maxDist. The second return is false when the distance is
// larger than maxDist; rows whose minimum already exceeds the bound
// terminate the computation early.
func DistanceWithin(a, b string, maxDist int) (int, bool) {
	ra := []rune(a)
	rb := []rune(b)
	if abs(len(ra)-len(rb)) > maxDist {
		return 0, false
	}
	if len(ra) == 0 {
		return len(rb), len(rb) <= maxDist
	}
	if len(rb) == 0 {
		return len(ra), len(ra) <= maxDist
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > maxDist {
			return 0, false
		}
		prev, curr = curr, prev
	}
	d := prev[len(rb)]
	if d > maxDist {
		return 0, false
	}
	return d, true
}

// Similarity is the normalized Levenshtein similarity
// 1 - distance/max(len(a), len(b)), in [0, 1]. Two empty strings are
// identical by convention.
func Similarity(a, b string) float64 {
	la := RuneLen(a)
	lb := RuneLen(b)
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(longest)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
