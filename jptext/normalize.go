package jptext

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalize canonicalizes raw text (OCR output or user query) into the
// comparable form used by the index and the query engine.
//
// Rules, applied in order:
//  1. width folding: full-width alphanumerics and punctuation become
//     half-width, half-width Katakana becomes full-width
//  2. Katakana folds to Hiragana
//  3. whitespace runs collapse to a single space, leading and trailing
//     whitespace is dropped
//  4. Latin characters are lowercased
//
// Kanji is never altered. Normalize is deterministic and idempotent;
// empty input yields empty output.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = width.Fold.String(s)
	s = KatakanaToHiragana(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// KatakanaToHiragana folds Katakana letters (ァ..ヶ) to their Hiragana
// equivalents. The prolonged sound mark ー and Katakana-only letters
// (ヷ..ヺ) have no Hiragana counterpart and pass through unchanged.
func KatakanaToHiragana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'ァ' && r <= 'ヶ' {
			r -= 0x60
		}
		b.WriteRune(r)
	}
	return b.String()
}
