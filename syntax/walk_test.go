// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestWalkEvents checks the visit contract: f(n) before children, then
// f(nil) after them, and no descent when f returns false.
func TestWalkEvents(t *testing.T) {
	// def f(): return x + 1
	tree := &FunctionDef{
		Name: Ident{Name: "f"},
		Body: []Stmt{
			&Return{Value: &BinOp{
				X:  &Name{ID: "x"},
				Op: "+",
				Y:  &NumberLiteral{Value: "1"},
			}},
		},
	}

	var events []string
	Walk(tree, func(n Node) bool {
		if n == nil {
			events = append(events, "pop")
			return true
		}
		events = append(events, strings.TrimPrefix(fmt.Sprintf("%T", n), "*syntax."))
		return true
	})

	want := []string{
		"FunctionDef",
		"Return",
		"BinOp",
		"Name", "pop",
		"NumberLiteral", "pop",
		"pop", // BinOp
		"pop", // Return
		"pop", // FunctionDef
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkPrune(t *testing.T) {
	tree := &If{
		Cond: &Name{ID: "cond"},
		Body: []Stmt{&ExprStmt{X: &Name{ID: "inside"}}},
	}

	var names []string
	Walk(tree, func(n Node) bool {
		if n == nil {
			return true
		}
		if name, ok := n.(*Name); ok {
			names = append(names, name.ID)
		}
		// Do not descend into the body.
		_, isStmt := n.(*ExprStmt)
		return !isStmt
	})

	want := []string{"cond"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("pruned walk saw wrong names (-want +got):\n%s", diff)
	}
}

func TestRebaseShiftsAllRanges(t *testing.T) {
	// List["X"] parsed at offset zero, as a front end would emit it.
	e := &Subscript{
		Range: Range{0, 9},
		X:     &Name{Range: Range{0, 4}, ID: "List"},
		Index: &StringLiteral{Range: Range{5, 8}, Value: "X"},
	}
	Rebase(e, 21)

	if e.Range != (Range{21, 30}) {
		t.Errorf("subscript range = %v, want {21 30}", e.Range)
	}
	if got := e.X.(*Name).Range; got != (Range{21, 25}) {
		t.Errorf("head range = %v, want {21 25}", got)
	}
	if got := e.Index.(*StringLiteral).Range; got != (Range{26, 29}) {
		t.Errorf("index range = %v, want {26 29}", got)
	}
}

func TestRebaseAttributeIdent(t *testing.T) {
	e := &Attribute{
		Range: Range{0, 9},
		X:     &Name{Range: Range{0, 6}, ID: "typing"},
		Attr:  Ident{Range: Range{7, 9}, Name: "IO"},
	}
	Rebase(e, 100)
	if e.Attr.Range != (Range{107, 109}) {
		t.Errorf("attr ident range = %v, want {107 109}", e.Attr.Range)
	}
}
