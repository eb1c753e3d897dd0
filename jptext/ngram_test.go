package jptext

import (
	"reflect"
	"testing"
)

func TestNGrams(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want []Gram
	}{
		{
			name: "bigrams of kana",
			s:    "あいうえ",
			n:    2,
			want: []Gram{{"あい", 0}, {"いう", 1}, {"うえ", 2}},
		},
		{
			name: "mixed scripts count runes not bytes",
			s:    "ろ6m",
			n:    2,
			want: []Gram{{"ろ6", 0}, {"6m", 1}},
		},
		{
			name: "text shorter than n",
			s:    "あ",
			n:    2,
			want: nil,
		},
		{
			name: "empty text",
			s:    "",
			n:    2,
			want: nil,
		},
		{
			name: "non-positive n",
			s:    "abc",
			n:    0,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NGrams(tt.s, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NGrams(%q, %d) = %v, want %v", tt.s, tt.n, got, tt.want)
			}
		})
	}
}

func TestRuneLen(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"ろきそにん錠60mg", 10},
	}

	for _, tt := range tests {
		if got := RuneLen(tt.s); got != tt.want {
			t.Errorf("RuneLen(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}
