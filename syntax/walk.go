// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Walk traverses a syntax tree in depth-first order.
// It starts by calling f(n); n must not be nil.
// If f returns true, Walk calls itself recursively for each
// non-nil child of n, then calls f(nil).
func Walk(n Node, f func(Node) bool) {
	if n == nil {
		panic("nil node")
	}
	if !f(n) {
		return
	}

	// walk calls Walk(n, f) for each non-nil node n.
	walkStmts := func(stmts []Stmt) {
		for _, s := range stmts {
			Walk(s, f)
		}
	}
	walkExprs := func(exprs []Expr) {
		for _, e := range exprs {
			if e != nil {
				Walk(e, f)
			}
		}
	}
	walkExpr := func(e Expr) {
		if e != nil {
			Walk(e, f)
		}
	}
	walkParams := func(p *Parameters) {
		for _, param := range p.All() {
			walkExpr(param.Annotation)
			walkExpr(param.Default)
		}
	}
	walkTypeParams := func(tps []TypeParam) {
		for _, tp := range tps {
			Walk(tp, f)
		}
	}
	walkPatterns := func(pats []Pattern) {
		for _, p := range pats {
			Walk(p, f)
		}
	}

	switch n := n.(type) {
	case *Module:
		walkStmts(n.Body)

	case *ExprStmt:
		Walk(n.X, f)

	case *Assign:
		walkExprs(n.Targets)
		Walk(n.Value, f)

	case *AugAssign:
		Walk(n.Target, f)
		Walk(n.Value, f)

	case *AnnAssign:
		Walk(n.Target, f)
		Walk(n.Annotation, f)
		walkExpr(n.Value)

	case *FunctionDef:
		walkExprs(n.Decorators)
		walkTypeParams(n.TypeParams)
		walkParams(&n.Params)
		walkExpr(n.Returns)
		walkStmts(n.Body)

	case *ClassDef:
		walkExprs(n.Decorators)
		walkTypeParams(n.TypeParams)
		walkExprs(n.Bases)
		for _, kw := range n.Keywords {
			Walk(kw.Value, f)
		}
		walkStmts(n.Body)

	case *Return:
		walkExpr(n.Value)

	case *Delete:
		walkExprs(n.Targets)

	case *For:
		Walk(n.Target, f)
		Walk(n.Iter, f)
		walkStmts(n.Body)
		walkStmts(n.Orelse)

	case *While:
		Walk(n.Cond, f)
		walkStmts(n.Body)
		walkStmts(n.Orelse)

	case *If:
		Walk(n.Cond, f)
		walkStmts(n.Body)
		walkStmts(n.Orelse)

	case *With:
		for _, item := range n.Items {
			Walk(item.Ctx, f)
			walkExpr(item.Vars)
		}
		walkStmts(n.Body)

	case *Try:
		walkStmts(n.Body)
		for _, h := range n.Handlers {
			Walk(h, f)
		}
		walkStmts(n.Orelse)
		walkStmts(n.Final)

	case *ExceptHandler:
		walkExpr(n.Type)
		walkStmts(n.Body)

	case *Raise:
		walkExpr(n.Exc)
		walkExpr(n.Cause)

	case *Assert:
		Walk(n.Test, f)
		walkExpr(n.Msg)

	case *Import, *ImportFrom, *Global, *Nonlocal, *Pass, *Break, *Continue:
		// no child nodes

	case *Match:
		Walk(n.Subject, f)
		for _, c := range n.Cases {
			Walk(c.Pattern, f)
			walkExpr(c.Guard)
			walkStmts(c.Body)
		}

	case *Name, *StringLiteral, *NumberLiteral, *BoolLiteral,
		*NoneLiteral, *EllipsisLiteral:
		// leaves

	case *Attribute:
		Walk(n.X, f)

	case *Subscript:
		Walk(n.X, f)
		Walk(n.Index, f)

	case *Call:
		Walk(n.Func, f)
		walkExprs(n.Args)
		for _, kw := range n.Keywords {
			Walk(kw.Value, f)
		}

	case *Lambda:
		walkParams(&n.Params)
		Walk(n.Body, f)

	case *NamedExpr:
		Walk(n.Target, f)
		Walk(n.Value, f)

	case *BoolOp:
		walkExprs(n.Values)

	case *BinOp:
		Walk(n.X, f)
		Walk(n.Y, f)

	case *UnaryOp:
		Walk(n.X, f)

	case *Compare:
		Walk(n.X, f)
		walkExprs(n.Comparators)

	case *IfExp:
		Walk(n.Cond, f)
		Walk(n.True, f)
		Walk(n.False, f)

	case *Dict:
		for i, k := range n.Keys {
			walkExpr(k)
			Walk(n.Values[i], f)
		}

	case *Set:
		walkExprs(n.Elts)

	case *List:
		walkExprs(n.Elts)

	case *Tuple:
		walkExprs(n.Elts)

	case *Starred:
		Walk(n.X, f)

	case *Slice:
		walkExpr(n.Lo)
		walkExpr(n.Hi)
		walkExpr(n.Step)

	case *ListComp:
		Walk(n.Elt, f)
		walkComprehensions(n.Clauses, f)

	case *SetComp:
		Walk(n.Elt, f)
		walkComprehensions(n.Clauses, f)

	case *GeneratorExp:
		Walk(n.Elt, f)
		walkComprehensions(n.Clauses, f)

	case *DictComp:
		Walk(n.Key, f)
		Walk(n.Value, f)
		walkComprehensions(n.Clauses, f)

	case *FString:
		walkExprs(n.Parts)

	case *FormattedValue:
		Walk(n.Value, f)
		walkExpr(n.Spec)

	case *Await:
		Walk(n.X, f)

	case *Yield:
		walkExpr(n.Value)

	case *YieldFrom:
		Walk(n.Value, f)

	case *MatchValue:
		Walk(n.Value, f)

	case *MatchSingleton:
		Walk(n.Value, f)

	case *MatchSequence:
		walkPatterns(n.Patterns)

	case *MatchMapping:
		walkExprs(n.Keys)
		walkPatterns(n.Patterns)

	case *MatchClass:
		Walk(n.Cls, f)
		walkPatterns(n.Patterns)
		walkPatterns(n.KwdPatterns)

	case *MatchStar:
		// leaf

	case *MatchAs:
		if n.Pattern != nil {
			Walk(n.Pattern, f)
		}

	case *MatchOr:
		walkPatterns(n.Patterns)

	case *TypeVar:
		walkExpr(n.Bound)
		walkExpr(n.Default)

	case *TypeVarTuple:
		walkExpr(n.Default)

	case *ParamSpec:
		walkExpr(n.Default)

	case *Ident, *Comprehension, *Param, *Parameters, *WithItem,
		*Alias, *KeywordArg, *MatchCase:
		// reached only when passed as the root

	default:
		panic(n) // unreachable
	}

	f(nil)
}

func walkComprehensions(clauses []*Comprehension, f func(Node) bool) {
	for _, c := range clauses {
		Walk(c.Target, f)
		Walk(c.Iter, f)
		for _, cond := range c.Ifs {
			Walk(cond, f)
		}
	}
}
