package textmatch

import (
	"math"
	"testing"
)

func TestWordLevelSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 1},
		{"one empty", "hello", "", 0},
		{"identical", "the cat sat", "the cat sat", 1},
		{"article swap", "the cat sat", "a cat sat", 1},
		{"inflection", "he walked home", "he walks home", 1},
		{"nothing shared", "apples and oranges", "the quick brown fox", 0},
		{"used to short circuit", "they used to have a dog", "they have a dog", 1},
		{"phrase equivalence", "he made fun of me", "he used to make fun of me", 5.0 / 6},
		{"phrase equivalence reversed", "he used to make fun of me", "he made fun of me", 5.0 / 6},
		{"would phrasing", "she gave up", "she would give up", 3.0 / 3.5},
		{"short stems do not match", "is", "ed", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WordLevelSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("WordLevelSimilarity(%q, %q) = %f, want %f", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestWordLevelSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"a a a a", "a"},
		{"the the", "a a a"},
		{"made made", "used to make"},
		{"used to make used to make", "made"},
	}
	for _, p := range pairs {
		s := WordLevelSimilarity(p[0], p[1])
		if s < 0 || s > 1 {
			t.Errorf("WordLevelSimilarity(%q, %q) = %f, out of [0,1]", p[0], p[1], s)
		}
	}
}

func TestCrudeStem(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"walked", "walk"},
		{"walks", "walk"},
		{"walking", "walk"},
		{"boxes", "box"},
		{"used", "us"},
		{"make", "make"},
	}
	for _, tc := range tests {
		if got := crudeStem(tc.input); got != tc.want {
			t.Errorf("crudeStem(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
