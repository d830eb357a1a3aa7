package spell

import "testing"

func TestNearest(t *testing.T) {
	candidates := []string{"print", "range", "super_value", "x"}

	for _, test := range []struct {
		x    string
		want string
	}{
		{"pint", "print"},
		{"rnage", "range"},
		{"supervalue", "super_value"}, // underscores ignored
		{"SuperValue", "super_value"}, // case ignored
		{"zzzzzz", ""},                // nothing plausible
		{"print", ""},                 // exact match is not a suggestion
	} {
		if got := Nearest(test.x, candidates); got != test.want {
			t.Errorf("Nearest(%q) = %q, want %q", test.x, got, test.want)
		}
	}
}

func TestNearestTieBreaksOnPrefix(t *testing.T) {
	// "int" and "print" are both one edit from "pint"; the shared
	// leading "p" decides it.
	if got := Nearest("pint", []string{"int", "print"}); got != "print" {
		t.Errorf("Nearest(pint) = %q, want print", got)
	}
	if got := Nearest("pint", []string{"print", "int"}); got != "print" {
		t.Errorf("Nearest(pint) = %q, want print (order independent)", got)
	}
}

func TestLevenshtein(t *testing.T) {
	for _, test := range []struct {
		x, y string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "acb", 2},
		{"kitten", "sitting", 3},
	} {
		if got := levenshtein(test.x, test.y, 10); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.x, test.y, got, test.want)
		}
	}
}
