// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"sort"
)

// A Position is a 1-based line and column (in bytes) in a source file.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// A Locator translates byte offsets into line/column positions.
// It is built once per source file and shared read-only.
type Locator struct {
	src        string
	lineStarts []int // byte offset of the start of each line
}

// NewLocator builds a locator for src.
func NewLocator(src string) *Locator {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Locator{src: src, lineStarts: starts}
}

// Position converts a byte offset to a line/column position.
// Offsets past the end of the source are clamped to the last line.
func (l *Locator) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.src) {
		offset = len(l.src)
	}
	i := sort.Search(len(l.lineStarts), func(i int) bool {
		return l.lineStarts[i] > offset
	}) - 1
	return Position{Line: i + 1, Col: offset - l.lineStarts[i] + 1}
}

// Text returns the source text covered by the range.
func (l *Locator) Text(r Range) string {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > len(l.src) {
		end = len(l.src)
	}
	if start >= end {
		return ""
	}
	return l.src[start:end]
}
