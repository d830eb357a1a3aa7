// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

import (
	"testing"

	"go.pycheck.net/pycheck/semantic"
	"go.pycheck.net/pycheck/syntax"
)

func docString(v string) *syntax.ExprStmt {
	return &syntax.ExprStmt{X: &syntax.StringLiteral{Value: v}}
}

func TestDocstringExpected(t *testing.T) {
	d := docstringState{expect: expectModule}
	if got := d.observe(docString("doc")); got != semantic.InModuleDocstring {
		t.Errorf("observe = %v, want module docstring flag", got)
	}
	// The expectation is consumed: a second string is ordinary code.
	if got := d.observe(docString("not a doc")); got != 0 {
		t.Errorf("second string flagged %v, want 0", got)
	}
}

func TestDocstringNotAString(t *testing.T) {
	d := docstringState{expect: expectFunction}
	if got := d.observe(&syntax.Pass{}); got != 0 {
		t.Errorf("pass statement flagged %v, want 0", got)
	}
	// A later string never retroactively becomes a docstring.
	if got := d.observe(docString("late")); got != 0 {
		t.Errorf("late string flagged %v, want 0", got)
	}
}

func TestAttributeDocstring(t *testing.T) {
	d := docstringState{}
	assignStmt := &syntax.Assign{
		Targets: []syntax.Expr{&syntax.Name{ID: "x"}},
		Value:   &syntax.NumberLiteral{Value: "1"},
	}
	d.after(assignStmt, semantic.ClassScope)
	if got := d.observe(docString("attribute doc")); got != semantic.InAttributeDocstring {
		t.Errorf("observe = %v, want attribute docstring flag", got)
	}
}

func TestAttributeDocstringNotInFunction(t *testing.T) {
	d := docstringState{}
	assignStmt := &syntax.Assign{
		Targets: []syntax.Expr{&syntax.Name{ID: "x"}},
		Value:   &syntax.NumberLiteral{Value: "1"},
	}
	d.after(assignStmt, semantic.FunctionScope)
	if got := d.observe(docString("not a doc")); got != 0 {
		t.Errorf("function-level assign armed the machine: %v", got)
	}
}

func TestAttributeDocstringNonLiteralValue(t *testing.T) {
	d := docstringState{}
	assignStmt := &syntax.Assign{
		Targets: []syntax.Expr{&syntax.Name{ID: "x"}},
		Value:   &syntax.Call{Func: &syntax.Name{ID: "f"}},
	}
	d.after(assignStmt, semantic.ModuleScope)
	if got := d.observe(docString("not a doc")); got != 0 {
		t.Errorf("call-valued assign armed the machine: %v", got)
	}
}

func TestAnnotatedAttributeDocstring(t *testing.T) {
	d := docstringState{}
	ann := &syntax.AnnAssign{
		Target:     &syntax.Name{ID: "x"},
		Annotation: &syntax.Name{ID: "int"},
		Simple:     true,
	}
	d.after(ann, semantic.ModuleScope)
	if got := d.observe(docString("attribute doc")); got != semantic.InAttributeDocstring {
		t.Errorf("observe = %v, want attribute docstring flag", got)
	}
}
