package jptext

// Gram is one character n-gram with its rune offset in the source text.
type Gram struct {
	Text string
	Pos  int
}

// NGrams returns the overlapping character n-grams of s, with rune
// positions. Texts shorter than n runes yield no grams; such texts are
// reachable only through whole-field tokens.
func NGrams(s string, n int) []Gram {
	if n < 1 {
		return nil
	}
	runes := []rune(s)
	if len(runes) < n {
		return nil
	}
	grams := make([]Gram, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		grams = append(grams, Gram{Text: string(runes[i : i+n]), Pos: i})
	}
	return grams
}

// RuneLen returns the length of s in runes. Query length thresholds and
// edit distances count runes, not bytes, so that a Kana character and an
// ASCII character weigh the same.
func RuneLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
