// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.pycheck.net/pycheck/checker"
	"go.pycheck.net/pycheck/semantic"
	"go.pycheck.net/pycheck/syntax"
)

// Tree-building helpers. The checker works on trees supplied by an
// external front end, so the tests build them directly.

func mod(stmts ...syntax.Stmt) *syntax.Module {
	return &syntax.Module{Body: stmts}
}

func nm(id string) *syntax.Name { return &syntax.Name{ID: id} }

func nmAt(id string, start, end int) *syntax.Name {
	return &syntax.Name{Range: syntax.Range{Start: start, End: end}, ID: id}
}

func str(v string) *syntax.StringLiteral { return &syntax.StringLiteral{Value: v} }

func strAt(v string, start, end int) *syntax.StringLiteral {
	return &syntax.StringLiteral{Range: syntax.Range{Start: start, End: end}, Value: v}
}

func num(v string) *syntax.NumberLiteral { return &syntax.NumberLiteral{Value: v} }

func ident(name string) syntax.Ident { return syntax.Ident{Name: name} }

func identPtr(name string) *syntax.Ident {
	id := ident(name)
	return &id
}

func exprStmt(e syntax.Expr) *syntax.ExprStmt { return &syntax.ExprStmt{X: e} }

func assign(name string, value syntax.Expr) *syntax.Assign {
	return &syntax.Assign{Targets: []syntax.Expr{nm(name)}, Value: value}
}

func imp(names ...string) *syntax.Import {
	s := &syntax.Import{}
	for _, name := range names {
		s.Names = append(s.Names, &syntax.Alias{Name: ident(name)})
	}
	return s
}

func impFrom(module string, names ...string) *syntax.ImportFrom {
	s := &syntax.ImportFrom{Module: identPtr(module)}
	for _, name := range names {
		s.Names = append(s.Names, &syntax.Alias{Name: ident(name)})
	}
	return s
}

func fn(name string, body ...syntax.Stmt) *syntax.FunctionDef {
	return &syntax.FunctionDef{Name: ident(name), Body: body}
}

func class(name string, body ...syntax.Stmt) *syntax.ClassDef {
	return &syntax.ClassDef{Name: ident(name), Body: body}
}

func ret(e syntax.Expr) *syntax.Return { return &syntax.Return{Value: e} }

func listOf(elts ...syntax.Expr) *syntax.List { return &syntax.List{Elts: elts} }

func analyze(t *testing.T, m *syntax.Module, opts *checker.Options) []checker.Diagnostic {
	t.Helper()
	return checker.Analyze(m, opts)
}

func codesOf(diags []checker.Diagnostic) []string {
	var codes []string
	for _, d := range diags {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestUnusedImport(t *testing.T) {
	diags := analyze(t, mod(imp("os")), nil)
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeUnusedImport, diags[0].Code)
	assert.Equal(t, "'os' imported but unused", diags[0].Message)
}

func TestUsedImport(t *testing.T) {
	m := mod(
		imp("os"),
		exprStmt(nm("os")),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestRedundantAliasIsReexport(t *testing.T) {
	// "import os as os" is the conventional explicit re-export.
	m := mod(&syntax.Import{Names: []*syntax.Alias{
		{Name: ident("os"), AsName: identPtr("os")},
	}})
	assert.Empty(t, analyze(t, m, nil))
}

func TestExportedImportIsUsed(t *testing.T) {
	m := mod(
		imp("os"),
		assign("__all__", listOf(str("os"))),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestSubmoduleImportBindsTopLevelName(t *testing.T) {
	m := mod(
		imp("os.path"),
		exprStmt(nm("os")),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestUndefinedName(t *testing.T) {
	diags := analyze(t, mod(exprStmt(nm("missing_thing"))), nil)
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeUndefinedName, diags[0].Code)
}

func TestUndefinedNameSuggestion(t *testing.T) {
	diags := analyze(t, mod(exprStmt(nm("pint"))), nil)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "did you mean 'print'?")
}

func TestUnusedVariable(t *testing.T) {
	m := mod(fn("f", assign("x", num("1"))))
	diags := analyze(t, m, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeUnusedVariable, diags[0].Code)
	assert.Equal(t, "local variable 'x' is assigned to but never used", diags[0].Message)
}

func TestUnderscoreVariableNotReported(t *testing.T) {
	m := mod(fn("f", assign("_ignored", num("1"))))
	assert.Empty(t, analyze(t, m, nil))
}

func TestUnpackedAssignmentNotReported(t *testing.T) {
	m := mod(fn("f",
		&syntax.Assign{
			Targets: []syntax.Expr{&syntax.Tuple{Elts: []syntax.Expr{nm("a"), nm("b")}}},
			Value:   nm("pair"),
		},
		ret(nm("a")),
	))
	// b is unused but came from an unpacking; pair is undefined though.
	diags := analyze(t, m, nil)
	assert.Equal(t, []string{checker.CodeUndefinedName}, codesOf(diags))
}

func TestModuleAssignmentsNotReportedUnused(t *testing.T) {
	m := mod(assign("x", num("1")))
	assert.Empty(t, analyze(t, m, nil))
}

func TestForwardReferenceFromFunctionBody(t *testing.T) {
	// The body resolves against the final module scope, not the scope
	// at the point of definition.
	m := mod(
		fn("f", ret(nm("X"))),
		assign("X", num("1")),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestRedefinitionOfUnusedFunction(t *testing.T) {
	m := mod(
		fn("f", &syntax.Pass{}),
		fn("f", &syntax.Pass{}),
	)
	diags := analyze(t, m, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeRedefinition, diags[0].Code)
	assert.Contains(t, diags[0].Message, "redefinition of unused 'f'")
}

func TestUsedDefinitionNotRedefinition(t *testing.T) {
	m := mod(
		fn("f", &syntax.Pass{}),
		exprStmt(&syntax.Call{Func: nm("f")}),
		fn("f", &syntax.Pass{}),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestConditionalRebindingNotRedefinition(t *testing.T) {
	// try: import json / except ImportError: json = None
	m := mod(
		&syntax.Try{
			Body: []syntax.Stmt{imp("json")},
			Handlers: []*syntax.ExceptHandler{{
				Type: nm("ImportError"),
				Body: []syntax.Stmt{assign("json", &syntax.NoneLiteral{})},
			}},
		},
		exprStmt(nm("json")),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestNestedBranchRebindingNotRedefinition(t *testing.T) {
	// import json
	// if flag: json = None
	// The rebinding sits on a nested branch and may never run.
	m := mod(
		imp("json"),
		&syntax.If{
			Cond: &syntax.BoolLiteral{Value: true},
			Body: []syntax.Stmt{assign("json", &syntax.NoneLiteral{})},
		},
		exprStmt(nm("json")),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestIfElseRebindingNotRedefinition(t *testing.T) {
	m := mod(
		&syntax.If{
			Cond:   &syntax.BoolLiteral{Value: true},
			Body:   []syntax.Stmt{fn("f", &syntax.Pass{})},
			Orelse: []syntax.Stmt{fn("f", &syntax.Pass{})},
		},
		exprStmt(&syntax.Call{Func: nm("f")}),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestLateImport(t *testing.T) {
	m := mod(
		assign("x", num("1")),
		imp("os"),
		exprStmt(nm("os")),
		exprStmt(nm("x")),
	)
	diags := analyze(t, m, nil)
	assert.Equal(t, []string{checker.CodeLateImport}, codesOf(diags))
}

func TestModuleDocstringIsNotCode(t *testing.T) {
	m := mod(
		exprStmt(str("module docstring")),
		imp("os"),
		exprStmt(nm("os")),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestAttributeDocstringDoesNotEscapeClassBody(t *testing.T) {
	// class C: x = 1
	// "stray"
	// The trailing attribute assignment must not make the next
	// module-level string read as an attribute docstring.
	var flagged bool
	hook := func(c *checker.Checker, n syntax.Node) {
		if es, ok := n.(*syntax.ExprStmt); ok {
			if s, ok := es.X.(*syntax.StringLiteral); ok && s.Value == "stray" {
				flagged = c.Model().Flags.Has(semantic.InAttributeDocstring)
			}
		}
	}
	m := mod(
		class("C", assign("x", num("1"))),
		exprStmt(str("stray")),
	)
	analyze(t, m, &checker.Options{Hooks: []checker.RuleHook{hook}})
	assert.False(t, flagged, "attribute-docstring flag leaked past the class body")
}

func TestCellBoundaryResetsImportLatch(t *testing.T) {
	stmt := assign("x", num("1"))
	stmt.Range = syntax.Range{Start: 0, End: 5}
	late := imp("os")
	late.Range = syntax.Range{Start: 12, End: 21}
	m := mod(
		stmt,
		late,
		exprStmt(nm("os")),
		exprStmt(nm("x")),
	)
	opts := &checker.Options{Settings: &checker.Settings{CellOffsets: []int{10}}}
	assert.Empty(t, analyze(t, m, opts))
}

func TestStarImportDowngradesUndefined(t *testing.T) {
	star := &syntax.ImportFrom{
		Module: identPtr("os"),
		Names:  []*syntax.Alias{{Name: ident("*")}},
	}
	m := mod(star, exprStmt(nm("walk")))
	diags := analyze(t, m, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeStarImportUsage, diags[0].Code)
	assert.Equal(t, "'walk' may be undefined, or defined from star imports", diags[0].Message)
}

func TestStarImportDowngradeBeforeImport(t *testing.T) {
	// The load precedes the star import; the downgrade must not
	// depend on program order.
	star := &syntax.ImportFrom{
		Module: identPtr("os"),
		Names:  []*syntax.Alias{{Name: ident("*")}},
	}
	m := mod(exprStmt(nm("walk")), star)
	opts := &checker.Options{Settings: &checker.Settings{
		Select: []string{checker.CodeUndefinedName, checker.CodeStarImportUsage},
	}}
	diags := analyze(t, m, opts)
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeStarImportUsage, diags[0].Code)
}

func TestStarImportSuppressesExportValidation(t *testing.T) {
	star := &syntax.ImportFrom{
		Module: identPtr("os"),
		Names:  []*syntax.Alias{{Name: ident("*")}},
	}
	m := mod(star, assign("__all__", listOf(str("walk"))))
	assert.Empty(t, analyze(t, m, nil))
}

func TestUndefinedExport(t *testing.T) {
	m := mod(assign("__all__", listOf(str("missing"))))
	diags := analyze(t, m, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeUndefinedExport, diags[0].Code)
	assert.Equal(t, "undefined name 'missing' in __all__", diags[0].Message)
}

func TestBuiltinDoesNotSatisfyExport(t *testing.T) {
	m := mod(assign("__all__", listOf(str("print"))))
	diags := analyze(t, m, nil)
	assert.Equal(t, []string{checker.CodeUndefinedExport}, codesOf(diags))
}

func TestInvalidAllObject(t *testing.T) {
	m := mod(
		assign("a", num("1")),
		assign("__all__", listOf(str("a"), num("2"))),
	)
	diags := analyze(t, m, nil)
	assert.Equal(t, []string{checker.CodeInvalidAllObject}, codesOf(diags))
}

func TestInvalidAllFormat(t *testing.T) {
	m := mod(assign("__all__", num("7")))
	diags := analyze(t, m, nil)
	assert.Equal(t, []string{checker.CodeInvalidAllFormat}, codesOf(diags))
}

func TestAllAugmentation(t *testing.T) {
	m := mod(
		assign("a", num("1")),
		assign("b", num("2")),
		assign("c", num("3")),
		assign("__all__", listOf(str("a"))),
		&syntax.AugAssign{Target: nm("__all__"), Op: "+", Value: listOf(str("b"))},
		exprStmt(&syntax.Call{
			Func: &syntax.Attribute{X: nm("__all__"), Attr: ident("append")},
			Args: []syntax.Expr{str("c")},
		}),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestReferenceAfterDeletion(t *testing.T) {
	m := mod(
		assign("x", num("1")),
		&syntax.Delete{Targets: []syntax.Expr{nm("x")}},
		exprStmt(nm("x")),
	)
	diags := analyze(t, m, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeUndefinedName, diags[0].Code)
	assert.Contains(t, diags[0].Message, "deleted before this reference")
}

func TestDeletedBuiltinStaysDeleted(t *testing.T) {
	// A module-level assignment shadows the builtin; deleting it does
	// not restore the builtin binding.
	m := mod(
		assign("list", num("1")),
		exprStmt(nm("list")),
		&syntax.Delete{Targets: []syntax.Expr{nm("list")}},
		exprStmt(nm("list")),
	)
	diags := analyze(t, m, nil)
	assert.Equal(t, []string{checker.CodeUndefinedName}, codesOf(diags))
}

func TestExceptionNameUnboundAfterHandler(t *testing.T) {
	m := mod(
		&syntax.Try{
			Body: []syntax.Stmt{&syntax.Pass{}},
			Handlers: []*syntax.ExceptHandler{{
				Type: nm("ValueError"),
				Name: identPtr("e"),
				Body: []syntax.Stmt{exprStmt(nm("e"))}, // fine in the handler
			}},
		},
		exprStmt(nm("e")),
	)
	diags := analyze(t, m, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeUndefinedName, diags[0].Code)
	assert.Contains(t, diags[0].Message, "unbound outside its handler")
}

func TestClassScopeSkippedByComprehension(t *testing.T) {
	m := mod(
		assign("xs", listOf(num("1"))),
		class("C",
			assign("a", num("1")),
			assign("b", &syntax.ListComp{
				Elt: nm("a"), // not visible from the comprehension scope
				Clauses: []*syntax.Comprehension{{
					Target: nm("x"),
					Iter:   nm("xs"), // first iterable sees the class scope chain
				}},
			}),
		),
	)
	diags := analyze(t, m, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeUndefinedName, diags[0].Code)
	assert.Contains(t, diags[0].Message, "'a'")
}

func TestWalrusEscapesComprehension(t *testing.T) {
	m := mod(fn("f",
		exprStmt(&syntax.ListComp{
			Elt: &syntax.NamedExpr{Target: nm("y"), Value: nm("x")},
			Clauses: []*syntax.Comprehension{{
				Target: nm("x"),
				Iter:   nm("xs"),
			}},
		}),
		ret(nm("y")),
	))
	// xs is undefined, but y must bind in the function scope.
	diags := analyze(t, m, nil)
	assert.Equal(t, []string{checker.CodeUndefinedName}, codesOf(diags))
	assert.Contains(t, diags[0].Message, "'xs'")
}

func TestGlobalWritesThroughToModuleScope(t *testing.T) {
	m := mod(
		fn("setup",
			&syntax.Global{Names: []syntax.Ident{ident("g")}},
			assign("g", num("1")),
		),
		exprStmt(&syntax.Call{Func: nm("setup")}),
		exprStmt(nm("g")),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestNonlocalWritesThroughToEnclosingScope(t *testing.T) {
	m := mod(fn("outer",
		assign("x", num("1")),
		fn("inner",
			&syntax.Nonlocal{Names: []syntax.Ident{ident("x")}},
			assign("x", num("2")),
		),
		exprStmt(&syntax.Call{Func: nm("inner")}),
		ret(nm("x")),
	))
	assert.Empty(t, analyze(t, m, nil))
}

func TestLambdaBodyIsDeferred(t *testing.T) {
	m := mod(
		assign("f", &syntax.Lambda{Body: nm("later")}),
		assign("later", num("1")),
		exprStmt(&syntax.Call{Func: nm("f")}),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestStringAnnotationForwardReference(t *testing.T) {
	parse := func(src string) (syntax.Expr, error) {
		require.Equal(t, "Foo", src)
		return nmAt("Foo", 0, 3), nil
	}
	m := mod(
		&syntax.AnnAssign{Target: nm("x"), Annotation: strAt("Foo", 10, 15), Simple: true},
		class("Foo", &syntax.Pass{}),
	)
	assert.Empty(t, analyze(t, m, &checker.Options{ParseAnnotation: parse}))
}

func TestStringAnnotationUndefinedIsRebased(t *testing.T) {
	parse := func(string) (syntax.Expr, error) {
		return nmAt("Bar", 0, 3), nil
	}
	m := mod(
		&syntax.AnnAssign{Target: nm("x"), Annotation: strAt("Bar", 10, 15), Simple: true},
	)
	diags := analyze(t, m, &checker.Options{ParseAnnotation: parse})
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeUndefinedName, diags[0].Code)
	// +1 past the opening quote of the literal at offset 10.
	assert.Equal(t, syntax.Range{Start: 11, End: 14}, diags[0].Range)
}

func TestForwardAnnotationSyntaxError(t *testing.T) {
	parse := func(string) (syntax.Expr, error) {
		return nil, errors.New("invalid syntax")
	}
	m := mod(
		&syntax.AnnAssign{Target: nm("x"), Annotation: strAt("not!valid", 10, 21), Simple: true},
	)
	diags := analyze(t, m, &checker.Options{ParseAnnotation: parse})
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeForwardSyntax, diags[0].Code)
	assert.Contains(t, diags[0].Message, "syntax error in forward annotation")
}

func TestNestedStringAnnotationTwoRounds(t *testing.T) {
	parse := func(src string) (syntax.Expr, error) {
		switch src {
		case "List['X']":
			return &syntax.Subscript{
				Range: syntax.Range{Start: 0, End: 9},
				X:     nmAt("List", 0, 4),
				Index: strAt("X", 5, 8),
			}, nil
		case "X":
			return nmAt("X", 0, 1), nil
		}
		return nil, fmt.Errorf("unexpected source %q", src)
	}
	m := mod(
		assign("List", num("1")),
		assign("X", num("2")),
		&syntax.AnnAssign{Target: nm("y"), Annotation: strAt("List['X']", 20, 31), Simple: true},
	)
	assert.Empty(t, analyze(t, m, &checker.Options{ParseAnnotation: parse}))
}

func TestFutureAnnotationsDeferEvaluation(t *testing.T) {
	m := mod(
		&syntax.ImportFrom{
			Module: identPtr("__future__"),
			Names:  []*syntax.Alias{{Name: ident("annotations")}},
		},
		&syntax.AnnAssign{Target: nm("x"), Annotation: nm("Later"), Simple: true},
		class("Later", &syntax.Pass{}),
	)
	assert.Empty(t, analyze(t, m, nil))
}

func TestAnnotationWithoutFutureIsEager(t *testing.T) {
	m := mod(
		&syntax.AnnAssign{Target: nm("x"), Annotation: nm("Later"), Simple: true},
		class("Later", &syntax.Pass{}),
	)
	// Without postponed evaluation the annotation is a plain load, but
	// the verdict is delayed to the final phase, where Later is bound.
	assert.Empty(t, analyze(t, m, nil))
}

func TestStubClassBasesAreDeferred(t *testing.T) {
	m := mod(
		class("Derived", &syntax.Pass{}),
		assign("_", nm("Derived")),
	)
	m.Body[0].(*syntax.ClassDef).Bases = []syntax.Expr{nm("Base")}
	base := class("Base", &syntax.Pass{})
	m.Body = append(m.Body, base)

	opts := &checker.Options{Settings: &checker.Settings{Stub: true}}
	assert.Empty(t, analyze(t, m, opts))
}

func TestDynamicLocalsSuppressesUnused(t *testing.T) {
	m := mod(fn("f",
		assign("x", num("1")),
		ret(&syntax.Call{Func: nm("locals")}),
	))
	assert.Empty(t, analyze(t, m, nil))
}

func TestSelectFiltersRules(t *testing.T) {
	m := mod(
		imp("os"),
		exprStmt(nm("missing_thing")),
	)
	opts := &checker.Options{Settings: &checker.Settings{Select: []string{checker.CodeUndefinedName}}}
	diags := analyze(t, m, opts)
	assert.Equal(t, []string{checker.CodeUndefinedName}, codesOf(diags))
}

func TestRuleHookSeesBindings(t *testing.T) {
	var sawImport bool
	hook := func(c *checker.Checker, n syntax.Node) {
		if _, ok := n.(*syntax.Import); ok {
			sawImport = true
			assert.True(t, c.SeenModule("os"))
		}
	}
	m := mod(imp("os"), exprStmt(nm("os")))
	analyze(t, m, &checker.Options{Hooks: []checker.RuleHook{hook}})
	assert.True(t, sawImport)
}

func TestDiagnosticString(t *testing.T) {
	d := checker.Diagnostic{
		Code:    checker.CodeUndefinedName,
		Message: "undefined name 'x'",
		Range:   syntax.Range{Start: 3, End: 4},
	}
	assert.True(t, strings.HasPrefix(d.String(), "F821"))
}
