// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

import (
	"go.pycheck.net/pycheck/semantic"
	"go.pycheck.net/pycheck/syntax"
)

// The docstring-expectation state machine tracks whether the next
// statement in a scope would be a docstring, and of what kind. The flag
// it produces is advisory context for rule hooks; it is not a binding
// concern.
type docExpectation uint8

const (
	expectNone docExpectation = iota
	expectModule
	expectClass
	expectFunction
	expectAttribute
)

var docFlags = [...]semantic.Flags{
	expectModule:    semantic.InModuleDocstring,
	expectClass:     semantic.InClassDocstring,
	expectFunction:  semantic.InFunctionDocstring,
	expectAttribute: semantic.InAttributeDocstring,
}

type docstringState struct {
	expect docExpectation
}

// observe is called before binding each statement. If the statement is
// the expected docstring it returns the flag to set for that statement
// only; in every case the expectation then becomes "other". A later
// statement never retroactively becomes a docstring.
func (d *docstringState) observe(stmt syntax.Stmt) semantic.Flags {
	expect := d.expect
	d.expect = expectNone
	if expect == expectNone {
		return 0
	}
	es, ok := stmt.(*syntax.ExprStmt)
	if !ok {
		return 0
	}
	if _, ok := es.X.(*syntax.StringLiteral); !ok {
		return 0
	}
	return docFlags[expect]
}

// after is called once the statement has been bound and traversed. A
// simple literal assignment at module or class level arms the machine
// so a string immediately following it reads as an attribute docstring.
func (d *docstringState) after(stmt syntax.Stmt, scope semantic.ScopeKind) {
	if scope != semantic.ModuleScope && scope != semantic.ClassScope {
		return
	}
	switch s := stmt.(type) {
	case *syntax.Assign:
		if len(s.Targets) == 1 && isPlainName(s.Targets[0]) && isLiteral(s.Value) {
			d.expect = expectAttribute
		}
	case *syntax.AnnAssign:
		if s.Simple && (s.Value == nil || isLiteral(s.Value)) {
			d.expect = expectAttribute
		}
	}
}

func isPlainName(e syntax.Expr) bool {
	_, ok := e.(*syntax.Name)
	return ok
}

func isLiteral(e syntax.Expr) bool {
	switch e.(type) {
	case *syntax.StringLiteral, *syntax.NumberLiteral, *syntax.BoolLiteral,
		*syntax.NoneLiteral, *syntax.EllipsisLiteral:
		return true
	}
	return false
}
