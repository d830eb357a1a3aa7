// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "testing"

func TestLocatorPosition(t *testing.T) {
	loc := NewLocator("import os\nx = 1\n")

	for _, test := range []struct {
		offset int
		want   Position
	}{
		{0, Position{1, 1}},
		{7, Position{1, 8}},
		{10, Position{2, 1}},
		{14, Position{2, 5}},
		{16, Position{3, 1}},  // just past the final newline
		{99, Position{3, 1}},  // clamped
		{-5, Position{1, 1}},  // clamped
	} {
		if got := loc.Position(test.offset); got != test.want {
			t.Errorf("Position(%d) = %v, want %v", test.offset, got, test.want)
		}
	}
}

func TestLocatorText(t *testing.T) {
	loc := NewLocator("import os\n")
	if got := loc.Text(Range{7, 9}); got != "os" {
		t.Errorf("Text = %q, want %q", got, "os")
	}
	if got := loc.Text(Range{7, 99}); got != "os\n" {
		t.Errorf("clamped Text = %q, want %q", got, "os\n")
	}
	if got := loc.Text(Range{5, 2}); got != "" {
		t.Errorf("inverted range Text = %q, want empty", got)
	}
}
