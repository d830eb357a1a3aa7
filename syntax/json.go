// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"encoding/json"
	"fmt"
)

// This file decodes the JSON tree interchange format produced by
// external front ends. Each node is an object carrying a "kind"
// discriminator, "start"/"end" byte offsets, and kind-specific fields
// whose names follow the Go field names in lower case. Identifier
// positions ("name", "asname", "module") are nodes of kind "ident".

// DecodeJSON decodes a module tree.
func DecodeJSON(data []byte) (*Module, error) {
	var root jsonNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("syntax: decoding tree: %w", err)
	}
	if root.Kind != "module" {
		return nil, fmt.Errorf("syntax: root node has kind %q, want \"module\"", root.Kind)
	}
	body, err := decodeStmts(root.Body)
	if err != nil {
		return nil, err
	}
	return &Module{Range: root.rng(), Body: body}, nil
}

// DecodeJSONExpr decodes a single expression tree, the form a front
// end emits for a re-parsed string annotation.
func DecodeJSONExpr(data []byte) (Expr, error) {
	var root jsonNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("syntax: decoding expression: %w", err)
	}
	return decodeExpr(&root)
}

type jsonNode struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`

	// identifiers, operators, literal payloads
	ID   string   `json:"id,omitempty"`
	Op   string   `json:"op,omitempty"`
	Ops  []string `json:"ops,omitempty"`
	Str  string   `json:"str,omitempty"`
	Num  string   `json:"num,omitempty"`
	Bool bool     `json:"bool,omitempty"`

	Name   *jsonNode `json:"name,omitempty"`
	AsName *jsonNode `json:"asname,omitempty"`
	Module *jsonNode `json:"module,omitempty"`
	Level  int       `json:"level,omitempty"`
	Simple bool      `json:"simple,omitempty"`
	Async  bool      `json:"async,omitempty"`
	Star   bool      `json:"star,omitempty"`

	X           *jsonNode   `json:"x,omitempty"`
	Y           *jsonNode   `json:"y,omitempty"`
	Value       *jsonNode   `json:"value,omitempty"`
	Target      *jsonNode   `json:"target,omitempty"`
	Targets     []*jsonNode `json:"targets,omitempty"`
	Annotation  *jsonNode   `json:"annotation,omitempty"`
	Index       *jsonNode   `json:"index,omitempty"`
	Func        *jsonNode   `json:"func,omitempty"`
	Args        []*jsonNode `json:"args,omitempty"`
	Keywords    []*jsonNode `json:"keywords,omitempty"`
	Cond        *jsonNode   `json:"cond,omitempty"`
	True        *jsonNode   `json:"true,omitempty"`
	False       *jsonNode   `json:"false,omitempty"`
	Test        *jsonNode   `json:"test,omitempty"`
	Msg         *jsonNode   `json:"msg,omitempty"`
	Exc         *jsonNode   `json:"exc,omitempty"`
	Cause       *jsonNode   `json:"cause,omitempty"`
	Iter        *jsonNode   `json:"iter,omitempty"`
	Body        []*jsonNode `json:"body,omitempty"`
	Orelse      []*jsonNode `json:"orelse,omitempty"`
	Final       []*jsonNode `json:"final,omitempty"`
	Handlers    []*jsonNode `json:"handlers,omitempty"`
	Items       []*jsonNode `json:"items,omitempty"`
	Ctx         *jsonNode   `json:"ctx,omitempty"`
	Vars        *jsonNode   `json:"vars,omitempty"`
	Type        *jsonNode   `json:"type,omitempty"`
	Names       []*jsonNode `json:"names,omitempty"`
	Decorators  []*jsonNode `json:"decorators,omitempty"`
	TypeParams  []*jsonNode `json:"typeparams,omitempty"`
	Params      *jsonNode   `json:"params,omitempty"`
	PosOnly     []*jsonNode `json:"posonly,omitempty"`
	VarArg      *jsonNode   `json:"vararg,omitempty"`
	KwOnly      []*jsonNode `json:"kwonly,omitempty"`
	KwArg       *jsonNode   `json:"kwarg,omitempty"`
	Returns     *jsonNode   `json:"returns,omitempty"`
	Bases       []*jsonNode `json:"bases,omitempty"`
	Default     *jsonNode   `json:"default,omitempty"`
	Bound       *jsonNode   `json:"bound,omitempty"`
	Elts        []*jsonNode `json:"elts,omitempty"`
	Keys        []*jsonNode `json:"keys,omitempty"`
	Values      []*jsonNode `json:"values,omitempty"`
	Comparators []*jsonNode `json:"comparators,omitempty"`
	Lo          *jsonNode   `json:"lo,omitempty"`
	Hi          *jsonNode   `json:"hi,omitempty"`
	Step        *jsonNode   `json:"step,omitempty"`
	Elt         *jsonNode   `json:"elt,omitempty"`
	Key         *jsonNode   `json:"key,omitempty"`
	Clauses     []*jsonNode `json:"clauses,omitempty"`
	Ifs         []*jsonNode `json:"ifs,omitempty"`
	Parts       []*jsonNode `json:"parts,omitempty"`
	Spec        *jsonNode   `json:"spec,omitempty"`
	Subject     *jsonNode   `json:"subject,omitempty"`
	Cases       []*jsonNode `json:"cases,omitempty"`
	Pattern     *jsonNode   `json:"pattern,omitempty"`
	Patterns    []*jsonNode `json:"patterns,omitempty"`
	KwdNames    []*jsonNode `json:"kwdnames,omitempty"`
	KwdPatterns []*jsonNode `json:"kwdpatterns,omitempty"`
	Cls         *jsonNode   `json:"cls,omitempty"`
	Rest        *jsonNode   `json:"rest,omitempty"`
	Guard       *jsonNode   `json:"guard,omitempty"`
}

func (n *jsonNode) rng() Range { return Range{Start: n.Start, End: n.End} }

func decodeStmts(nodes []*jsonNode) ([]Stmt, error) {
	var stmts []Stmt
	for _, n := range nodes {
		s, err := decodeStmt(n)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func decodeStmt(n *jsonNode) (Stmt, error) {
	switch n.Kind {
	case "exprstmt":
		x, err := decodeExpr(n.X)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Range: n.rng(), X: x}, nil

	case "assign":
		targets, err := decodeExprs(n.Targets)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &Assign{Range: n.rng(), Targets: targets, Value: value}, nil

	case "augassign":
		target, err := decodeExpr(n.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &AugAssign{Range: n.rng(), Target: target, Op: n.Op, Value: value}, nil

	case "annassign":
		target, err := decodeExpr(n.Target)
		if err != nil {
			return nil, err
		}
		ann, err := decodeExpr(n.Annotation)
		if err != nil {
			return nil, err
		}
		value, err := decodeOptExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &AnnAssign{Range: n.rng(), Target: target, Annotation: ann, Value: value, Simple: n.Simple}, nil

	case "functiondef":
		name, err := decodeIdent(n.Name)
		if err != nil {
			return nil, err
		}
		tps, err := decodeTypeParams(n.TypeParams)
		if err != nil {
			return nil, err
		}
		params, err := decodeParams(n.Params)
		if err != nil {
			return nil, err
		}
		returns, err := decodeOptExpr(n.Returns)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(n.Body)
		if err != nil {
			return nil, err
		}
		decorators, err := decodeExprs(n.Decorators)
		if err != nil {
			return nil, err
		}
		return &FunctionDef{
			Range:      n.rng(),
			Name:       name,
			TypeParams: tps,
			Params:     params,
			Returns:    returns,
			Body:       body,
			Decorators: decorators,
			Async:      n.Async,
		}, nil

	case "classdef":
		name, err := decodeIdent(n.Name)
		if err != nil {
			return nil, err
		}
		tps, err := decodeTypeParams(n.TypeParams)
		if err != nil {
			return nil, err
		}
		bases, err := decodeExprs(n.Bases)
		if err != nil {
			return nil, err
		}
		keywords, err := decodeKeywords(n.Keywords)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(n.Body)
		if err != nil {
			return nil, err
		}
		decorators, err := decodeExprs(n.Decorators)
		if err != nil {
			return nil, err
		}
		return &ClassDef{
			Range:      n.rng(),
			Name:       name,
			TypeParams: tps,
			Bases:      bases,
			Keywords:   keywords,
			Body:       body,
			Decorators: decorators,
		}, nil

	case "return":
		value, err := decodeOptExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &Return{Range: n.rng(), Value: value}, nil

	case "delete":
		targets, err := decodeExprs(n.Targets)
		if err != nil {
			return nil, err
		}
		return &Delete{Range: n.rng(), Targets: targets}, nil

	case "for":
		target, err := decodeExpr(n.Target)
		if err != nil {
			return nil, err
		}
		iter, err := decodeExpr(n.Iter)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(n.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := decodeStmts(n.Orelse)
		if err != nil {
			return nil, err
		}
		return &For{Range: n.rng(), Target: target, Iter: iter, Body: body, Orelse: orelse, Async: n.Async}, nil

	case "while":
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(n.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := decodeStmts(n.Orelse)
		if err != nil {
			return nil, err
		}
		return &While{Range: n.rng(), Cond: cond, Body: body, Orelse: orelse}, nil

	case "if":
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(n.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := decodeStmts(n.Orelse)
		if err != nil {
			return nil, err
		}
		return &If{Range: n.rng(), Cond: cond, Body: body, Orelse: orelse}, nil

	case "with":
		var items []*WithItem
		for _, itemNode := range n.Items {
			ctx, err := decodeExpr(itemNode.Ctx)
			if err != nil {
				return nil, err
			}
			vars, err := decodeOptExpr(itemNode.Vars)
			if err != nil {
				return nil, err
			}
			items = append(items, &WithItem{Range: itemNode.rng(), Ctx: ctx, Vars: vars})
		}
		body, err := decodeStmts(n.Body)
		if err != nil {
			return nil, err
		}
		return &With{Range: n.rng(), Items: items, Body: body, Async: n.Async}, nil

	case "try":
		body, err := decodeStmts(n.Body)
		if err != nil {
			return nil, err
		}
		var handlers []*ExceptHandler
		for _, hn := range n.Handlers {
			typ, err := decodeOptExpr(hn.Type)
			if err != nil {
				return nil, err
			}
			name, err := decodeOptIdent(hn.Name)
			if err != nil {
				return nil, err
			}
			hbody, err := decodeStmts(hn.Body)
			if err != nil {
				return nil, err
			}
			handlers = append(handlers, &ExceptHandler{Range: hn.rng(), Type: typ, Name: name, Body: hbody})
		}
		orelse, err := decodeStmts(n.Orelse)
		if err != nil {
			return nil, err
		}
		final, err := decodeStmts(n.Final)
		if err != nil {
			return nil, err
		}
		return &Try{Range: n.rng(), Body: body, Handlers: handlers, Orelse: orelse, Final: final, Star: n.Star}, nil

	case "raise":
		exc, err := decodeOptExpr(n.Exc)
		if err != nil {
			return nil, err
		}
		cause, err := decodeOptExpr(n.Cause)
		if err != nil {
			return nil, err
		}
		return &Raise{Range: n.rng(), Exc: exc, Cause: cause}, nil

	case "assert":
		test, err := decodeExpr(n.Test)
		if err != nil {
			return nil, err
		}
		msg, err := decodeOptExpr(n.Msg)
		if err != nil {
			return nil, err
		}
		return &Assert{Range: n.rng(), Test: test, Msg: msg}, nil

	case "import":
		aliases, err := decodeAliases(n.Names)
		if err != nil {
			return nil, err
		}
		return &Import{Range: n.rng(), Names: aliases}, nil

	case "importfrom":
		module, err := decodeOptIdent(n.Module)
		if err != nil {
			return nil, err
		}
		aliases, err := decodeAliases(n.Names)
		if err != nil {
			return nil, err
		}
		return &ImportFrom{Range: n.rng(), Module: module, Names: aliases, Level: n.Level}, nil

	case "global":
		names, err := decodeIdents(n.Names)
		if err != nil {
			return nil, err
		}
		return &Global{Range: n.rng(), Names: names}, nil

	case "nonlocal":
		names, err := decodeIdents(n.Names)
		if err != nil {
			return nil, err
		}
		return &Nonlocal{Range: n.rng(), Names: names}, nil

	case "match":
		subject, err := decodeExpr(n.Subject)
		if err != nil {
			return nil, err
		}
		var cases []*MatchCase
		for _, cn := range n.Cases {
			pattern, err := decodePattern(cn.Pattern)
			if err != nil {
				return nil, err
			}
			guard, err := decodeOptExpr(cn.Guard)
			if err != nil {
				return nil, err
			}
			body, err := decodeStmts(cn.Body)
			if err != nil {
				return nil, err
			}
			cases = append(cases, &MatchCase{Range: cn.rng(), Pattern: pattern, Guard: guard, Body: body})
		}
		return &Match{Range: n.rng(), Subject: subject, Cases: cases}, nil

	case "pass":
		return &Pass{Range: n.rng()}, nil
	case "break":
		return &Break{Range: n.rng()}, nil
	case "continue":
		return &Continue{Range: n.rng()}, nil
	}
	return nil, fmt.Errorf("syntax: unknown statement kind %q", n.Kind)
}

func decodeExprs(nodes []*jsonNode) ([]Expr, error) {
	var exprs []Expr
	for _, n := range nodes {
		e, err := decodeExpr(n)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

func decodeOptExpr(n *jsonNode) (Expr, error) {
	if n == nil {
		return nil, nil
	}
	return decodeExpr(n)
}

func decodeExpr(n *jsonNode) (Expr, error) {
	if n == nil {
		return nil, fmt.Errorf("syntax: missing expression node")
	}
	switch n.Kind {
	case "name":
		return &Name{Range: n.rng(), ID: n.ID}, nil

	case "attribute":
		x, err := decodeExpr(n.X)
		if err != nil {
			return nil, err
		}
		attr, err := decodeIdent(n.Name)
		if err != nil {
			return nil, err
		}
		return &Attribute{Range: n.rng(), X: x, Attr: attr}, nil

	case "subscript":
		x, err := decodeExpr(n.X)
		if err != nil {
			return nil, err
		}
		index, err := decodeExpr(n.Index)
		if err != nil {
			return nil, err
		}
		return &Subscript{Range: n.rng(), X: x, Index: index}, nil

	case "call":
		fn, err := decodeExpr(n.Func)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		keywords, err := decodeKeywords(n.Keywords)
		if err != nil {
			return nil, err
		}
		return &Call{Range: n.rng(), Func: fn, Args: args, Keywords: keywords}, nil

	case "lambda":
		params, err := decodeParams(n.Params)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(n.Body1())
		if err != nil {
			return nil, err
		}
		return &Lambda{Range: n.rng(), Params: params, Body: body}, nil

	case "namedexpr":
		target, err := decodeExpr(n.Target)
		if err != nil {
			return nil, err
		}
		name, ok := target.(*Name)
		if !ok {
			return nil, fmt.Errorf("syntax: namedexpr target is %q, want name", n.Target.Kind)
		}
		value, err := decodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &NamedExpr{Range: n.rng(), Target: name, Value: value}, nil

	case "boolop":
		values, err := decodeExprs(n.Values)
		if err != nil {
			return nil, err
		}
		return &BoolOp{Range: n.rng(), Op: n.Op, Values: values}, nil

	case "binop":
		x, err := decodeExpr(n.X)
		if err != nil {
			return nil, err
		}
		y, err := decodeExpr(n.Y)
		if err != nil {
			return nil, err
		}
		return &BinOp{Range: n.rng(), X: x, Op: n.Op, Y: y}, nil

	case "unaryop":
		x, err := decodeExpr(n.X)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Range: n.rng(), Op: n.Op, X: x}, nil

	case "compare":
		x, err := decodeExpr(n.X)
		if err != nil {
			return nil, err
		}
		comparators, err := decodeExprs(n.Comparators)
		if err != nil {
			return nil, err
		}
		return &Compare{Range: n.rng(), X: x, Ops: n.Ops, Comparators: comparators}, nil

	case "ifexp":
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		t, err := decodeExpr(n.True)
		if err != nil {
			return nil, err
		}
		f, err := decodeExpr(n.False)
		if err != nil {
			return nil, err
		}
		return &IfExp{Range: n.rng(), Cond: cond, True: t, False: f}, nil

	case "dict":
		var keys []Expr
		for _, kn := range n.Keys {
			k, err := decodeOptExpr(kn) // nil key is **unpacking
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
		}
		values, err := decodeExprs(n.Values)
		if err != nil {
			return nil, err
		}
		return &Dict{Range: n.rng(), Keys: keys, Values: values}, nil

	case "set":
		elts, err := decodeExprs(n.Elts)
		if err != nil {
			return nil, err
		}
		return &Set{Range: n.rng(), Elts: elts}, nil

	case "list":
		elts, err := decodeExprs(n.Elts)
		if err != nil {
			return nil, err
		}
		return &List{Range: n.rng(), Elts: elts}, nil

	case "tuple":
		elts, err := decodeExprs(n.Elts)
		if err != nil {
			return nil, err
		}
		return &Tuple{Range: n.rng(), Elts: elts}, nil

	case "starred":
		x, err := decodeExpr(n.X)
		if err != nil {
			return nil, err
		}
		return &Starred{Range: n.rng(), X: x}, nil

	case "slice":
		lo, err := decodeOptExpr(n.Lo)
		if err != nil {
			return nil, err
		}
		hi, err := decodeOptExpr(n.Hi)
		if err != nil {
			return nil, err
		}
		step, err := decodeOptExpr(n.Step)
		if err != nil {
			return nil, err
		}
		return &Slice{Range: n.rng(), Lo: lo, Hi: hi, Step: step}, nil

	case "listcomp":
		elt, err := decodeExpr(n.Elt)
		if err != nil {
			return nil, err
		}
		clauses, err := decodeClauses(n.Clauses)
		if err != nil {
			return nil, err
		}
		return &ListComp{Range: n.rng(), Elt: elt, Clauses: clauses}, nil

	case "setcomp":
		elt, err := decodeExpr(n.Elt)
		if err != nil {
			return nil, err
		}
		clauses, err := decodeClauses(n.Clauses)
		if err != nil {
			return nil, err
		}
		return &SetComp{Range: n.rng(), Elt: elt, Clauses: clauses}, nil

	case "generatorexp":
		elt, err := decodeExpr(n.Elt)
		if err != nil {
			return nil, err
		}
		clauses, err := decodeClauses(n.Clauses)
		if err != nil {
			return nil, err
		}
		return &GeneratorExp{Range: n.rng(), Elt: elt, Clauses: clauses}, nil

	case "dictcomp":
		key, err := decodeExpr(n.Key)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		clauses, err := decodeClauses(n.Clauses)
		if err != nil {
			return nil, err
		}
		return &DictComp{Range: n.rng(), Key: key, Value: value, Clauses: clauses}, nil

	case "str":
		return &StringLiteral{Range: n.rng(), Value: n.Str}, nil

	case "fstring":
		parts, err := decodeExprs(n.Parts)
		if err != nil {
			return nil, err
		}
		return &FString{Range: n.rng(), Parts: parts}, nil

	case "formattedvalue":
		value, err := decodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		spec, err := decodeOptExpr(n.Spec)
		if err != nil {
			return nil, err
		}
		return &FormattedValue{Range: n.rng(), Value: value, Spec: spec}, nil

	case "num":
		return &NumberLiteral{Range: n.rng(), Value: n.Num}, nil
	case "bool":
		return &BoolLiteral{Range: n.rng(), Value: n.Bool}, nil
	case "none":
		return &NoneLiteral{Range: n.rng()}, nil
	case "ellipsis":
		return &EllipsisLiteral{Range: n.rng()}, nil

	case "await":
		x, err := decodeExpr(n.X)
		if err != nil {
			return nil, err
		}
		return &Await{Range: n.rng(), X: x}, nil

	case "yield":
		value, err := decodeOptExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &Yield{Range: n.rng(), Value: value}, nil

	case "yieldfrom":
		value, err := decodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &YieldFrom{Range: n.rng(), Value: value}, nil
	}
	return nil, fmt.Errorf("syntax: unknown expression kind %q", n.Kind)
}

// Body1 returns the single-node body of a lambda. Lambdas reuse the
// "body" key but hold one expression, not a statement list.
func (n *jsonNode) Body1() *jsonNode {
	if len(n.Body) != 1 {
		return nil
	}
	return n.Body[0]
}

func decodePatterns(nodes []*jsonNode) ([]Pattern, error) {
	var patterns []Pattern
	for _, n := range nodes {
		p, err := decodePattern(n)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func decodePattern(n *jsonNode) (Pattern, error) {
	if n == nil {
		return nil, fmt.Errorf("syntax: missing pattern node")
	}
	switch n.Kind {
	case "matchvalue":
		value, err := decodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &MatchValue{Range: n.rng(), Value: value}, nil

	case "matchsingleton":
		value, err := decodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &MatchSingleton{Range: n.rng(), Value: value}, nil

	case "matchsequence":
		patterns, err := decodePatterns(n.Patterns)
		if err != nil {
			return nil, err
		}
		return &MatchSequence{Range: n.rng(), Patterns: patterns}, nil

	case "matchmapping":
		keys, err := decodeExprs(n.Keys)
		if err != nil {
			return nil, err
		}
		patterns, err := decodePatterns(n.Patterns)
		if err != nil {
			return nil, err
		}
		rest, err := decodeOptIdent(n.Rest)
		if err != nil {
			return nil, err
		}
		return &MatchMapping{Range: n.rng(), Keys: keys, Patterns: patterns, Rest: rest}, nil

	case "matchclass":
		cls, err := decodeExpr(n.Cls)
		if err != nil {
			return nil, err
		}
		patterns, err := decodePatterns(n.Patterns)
		if err != nil {
			return nil, err
		}
		kwdNames, err := decodeIdents(n.KwdNames)
		if err != nil {
			return nil, err
		}
		kwdPatterns, err := decodePatterns(n.KwdPatterns)
		if err != nil {
			return nil, err
		}
		return &MatchClass{Range: n.rng(), Cls: cls, Patterns: patterns, KwdNames: kwdNames, KwdPatterns: kwdPatterns}, nil

	case "matchstar":
		name, err := decodeOptIdent(n.Name)
		if err != nil {
			return nil, err
		}
		return &MatchStar{Range: n.rng(), Name: name}, nil

	case "matchas":
		var pattern Pattern
		if n.Pattern != nil {
			var err error
			pattern, err = decodePattern(n.Pattern)
			if err != nil {
				return nil, err
			}
		}
		name, err := decodeOptIdent(n.Name)
		if err != nil {
			return nil, err
		}
		return &MatchAs{Range: n.rng(), Pattern: pattern, Name: name}, nil

	case "matchor":
		patterns, err := decodePatterns(n.Patterns)
		if err != nil {
			return nil, err
		}
		return &MatchOr{Range: n.rng(), Patterns: patterns}, nil
	}
	return nil, fmt.Errorf("syntax: unknown pattern kind %q", n.Kind)
}

func decodeTypeParams(nodes []*jsonNode) ([]TypeParam, error) {
	var tps []TypeParam
	for _, n := range nodes {
		name, err := decodeIdent(n.Name)
		if err != nil {
			return nil, err
		}
		dflt, err := decodeOptExpr(n.Default)
		if err != nil {
			return nil, err
		}
		switch n.Kind {
		case "typevar":
			bound, err := decodeOptExpr(n.Bound)
			if err != nil {
				return nil, err
			}
			tps = append(tps, &TypeVar{Range: n.rng(), Name: name, Bound: bound, Default: dflt})
		case "typevartuple":
			tps = append(tps, &TypeVarTuple{Range: n.rng(), Name: name, Default: dflt})
		case "paramspec":
			tps = append(tps, &ParamSpec{Range: n.rng(), Name: name, Default: dflt})
		default:
			return nil, fmt.Errorf("syntax: unknown type-parameter kind %q", n.Kind)
		}
	}
	return tps, nil
}

func decodeParams(n *jsonNode) (Parameters, error) {
	if n == nil {
		return Parameters{}, nil
	}
	params := Parameters{Range: n.rng()}
	var err error
	if params.PosOnly, err = decodeParamList(n.PosOnly); err != nil {
		return params, err
	}
	if params.Args, err = decodeParamList(n.Args); err != nil {
		return params, err
	}
	if n.VarArg != nil {
		if params.VarArg, err = decodeParam(n.VarArg); err != nil {
			return params, err
		}
	}
	if params.KwOnly, err = decodeParamList(n.KwOnly); err != nil {
		return params, err
	}
	if n.KwArg != nil {
		if params.KwArg, err = decodeParam(n.KwArg); err != nil {
			return params, err
		}
	}
	return params, nil
}

func decodeParamList(nodes []*jsonNode) ([]*Param, error) {
	var params []*Param
	for _, n := range nodes {
		p, err := decodeParam(n)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func decodeParam(n *jsonNode) (*Param, error) {
	name, err := decodeIdent(n.Name)
	if err != nil {
		return nil, err
	}
	ann, err := decodeOptExpr(n.Annotation)
	if err != nil {
		return nil, err
	}
	dflt, err := decodeOptExpr(n.Default)
	if err != nil {
		return nil, err
	}
	return &Param{Range: n.rng(), Name: name, Annotation: ann, Default: dflt}, nil
}

func decodeKeywords(nodes []*jsonNode) ([]*KeywordArg, error) {
	var keywords []*KeywordArg
	for _, n := range nodes {
		name, err := decodeOptIdent(n.Name)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		keywords = append(keywords, &KeywordArg{Range: n.rng(), Name: name, Value: value})
	}
	return keywords, nil
}

func decodeClauses(nodes []*jsonNode) ([]*Comprehension, error) {
	var clauses []*Comprehension
	for _, n := range nodes {
		target, err := decodeExpr(n.Target)
		if err != nil {
			return nil, err
		}
		iter, err := decodeExpr(n.Iter)
		if err != nil {
			return nil, err
		}
		ifs, err := decodeExprs(n.Ifs)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, &Comprehension{Range: n.rng(), Target: target, Iter: iter, Ifs: ifs, Async: n.Async})
	}
	return clauses, nil
}

func decodeAliases(nodes []*jsonNode) ([]*Alias, error) {
	var aliases []*Alias
	for _, n := range nodes {
		name, err := decodeIdent(n.Name)
		if err != nil {
			return nil, err
		}
		asName, err := decodeOptIdent(n.AsName)
		if err != nil {
			return nil, err
		}
		aliases = append(aliases, &Alias{Range: n.rng(), Name: name, AsName: asName})
	}
	return aliases, nil
}

func decodeIdents(nodes []*jsonNode) ([]Ident, error) {
	var idents []Ident
	for _, n := range nodes {
		id, err := decodeIdent(n)
		if err != nil {
			return nil, err
		}
		idents = append(idents, id)
	}
	return idents, nil
}

func decodeIdent(n *jsonNode) (Ident, error) {
	if n == nil {
		return Ident{}, fmt.Errorf("syntax: missing identifier node")
	}
	return Ident{Range: n.rng(), Name: n.ID}, nil
}

func decodeOptIdent(n *jsonNode) (*Ident, error) {
	if n == nil {
		return nil, nil
	}
	id, err := decodeIdent(n)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
