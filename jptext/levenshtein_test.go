package jptext

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"ろきそにん", "ろきそにん", 0},
		{"ろきそにん", "ろきぞにん", 1},
		{"ろきそにん", "ろきそにん錠60mg", 5},
	}

	for _, tt := range tests {
		got := Distance(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		// Distance is symmetric.
		if rev := Distance(tt.b, tt.a); rev != got {
			t.Errorf("Distance(%q, %q) = %d, asymmetric with %d", tt.b, tt.a, rev, got)
		}
	}
}

func TestDistanceWithin(t *testing.T) {
	tests := []struct {
		a, b    string
		maxDist int
		want    int
		ok      bool
	}{
		{"kitten", "sitting", 3, 3, true},
		{"kitten", "sitting", 2, 0, false},
		{"abc", "abc", 0, 0, true},
		{"ab", "abcdef", 2, 0, false}, // length difference alone exceeds the bound
		{"", "ab", 2, 2, true},
	}

	for _, tt := range tests {
		got, ok := DistanceWithin(tt.a, tt.b, tt.maxDist)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("DistanceWithin(%q, %q, %d) = (%d, %v), want (%d, %v)",
				tt.a, tt.b, tt.maxDist, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abcd", "abcd", 1},
		{"", "", 1},
		{"ab", "ax", 0.5},
		{"ろきそにん", "ろきぞにん", 0.8},
		{"ab", "", 0},
	}

	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
