package jptext

import "testing"

func TestSubstringDistance(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		text     string
		wantDist int
		wantEnd  int
	}{
		{
			name:     "exact substring in the middle",
			pattern:  "そにん",
			text:     "ろきそにん錠",
			wantDist: 0,
			wantEnd:  5,
		},
		{
			name:     "whole text match",
			pattern:  "ろきそにん",
			text:     "ろきそにん",
			wantDist: 0,
			wantEnd:  5,
		},
		{
			name:     "one substitution against a prefix span",
			pattern:  "口きそにん",
			text:     "ろきそにん錠60mg",
			wantDist: 1,
			wantEnd:  5,
		},
		{
			name:     "no similarity",
			pattern:  "xy",
			text:     "ろき",
			wantDist: 2,
			wantEnd:  0,
		},
		{
			name:     "leftmost span wins on ties",
			pattern:  "ab",
			text:     "abab",
			wantDist: 0,
			wantEnd:  2,
		},
		{
			name:     "empty pattern",
			pattern:  "",
			text:     "abc",
			wantDist: 0,
			wantEnd:  0,
		},
		{
			name:     "empty text",
			pattern:  "あいう",
			text:     "",
			wantDist: 3,
			wantEnd:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, end := SubstringDistance(tt.pattern, tt.text)
			if dist != tt.wantDist || end != tt.wantEnd {
				t.Errorf("SubstringDistance(%q, %q) = (%d, %d), want (%d, %d)",
					tt.pattern, tt.text, dist, end, tt.wantDist, tt.wantEnd)
			}
		})
	}
}

// The substring distance never exceeds the full Levenshtein distance:
// the whole text is itself a candidate span.
func TestSubstringDistanceBoundedByLevenshtein(t *testing.T) {
	pairs := [][2]string{
		{"ろきそにん", "ろきそにん錠60mg"},
		{"かろなーる", "カロナール錠300"},
		{"abc", "xyz"},
	}
	for _, p := range pairs {
		d, _ := SubstringDistance(p[0], p[1])
		if full := Distance(p[0], p[1]); d > full {
			t.Errorf("SubstringDistance(%q, %q) = %d exceeds Distance %d", p[0], p[1], d, full)
		}
	}
}
