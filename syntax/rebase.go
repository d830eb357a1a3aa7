// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Rebase shifts every source range in an expression tree by delta.
// Front ends parse string annotations with offsets relative to the
// string's contents; the checker re-bases the sub-tree so that any
// diagnostic inside it points into the original file.
func Rebase(e Expr, delta int) {
	Walk(e, func(n Node) bool {
		if n == nil {
			return true
		}
		switch n := n.(type) {
		case *Name:
			n.Range = n.Range.Add(delta)
		case *Attribute:
			n.Range = n.Range.Add(delta)
			n.Attr.Range = n.Attr.Range.Add(delta)
		case *Subscript:
			n.Range = n.Range.Add(delta)
		case *Call:
			n.Range = n.Range.Add(delta)
			for _, kw := range n.Keywords {
				kw.Range = kw.Range.Add(delta)
				if kw.Name != nil {
					kw.Name.Range = kw.Name.Range.Add(delta)
				}
			}
		case *Lambda:
			n.Range = n.Range.Add(delta)
			rebaseParams(&n.Params, delta)
		case *NamedExpr:
			n.Range = n.Range.Add(delta)
		case *BoolOp:
			n.Range = n.Range.Add(delta)
		case *BinOp:
			n.Range = n.Range.Add(delta)
		case *UnaryOp:
			n.Range = n.Range.Add(delta)
		case *Compare:
			n.Range = n.Range.Add(delta)
		case *IfExp:
			n.Range = n.Range.Add(delta)
		case *Dict:
			n.Range = n.Range.Add(delta)
		case *Set:
			n.Range = n.Range.Add(delta)
		case *List:
			n.Range = n.Range.Add(delta)
		case *Tuple:
			n.Range = n.Range.Add(delta)
		case *Starred:
			n.Range = n.Range.Add(delta)
		case *Slice:
			n.Range = n.Range.Add(delta)
		case *ListComp:
			n.Range = n.Range.Add(delta)
			rebaseClauses(n.Clauses, delta)
		case *SetComp:
			n.Range = n.Range.Add(delta)
			rebaseClauses(n.Clauses, delta)
		case *GeneratorExp:
			n.Range = n.Range.Add(delta)
			rebaseClauses(n.Clauses, delta)
		case *DictComp:
			n.Range = n.Range.Add(delta)
			rebaseClauses(n.Clauses, delta)
		case *StringLiteral:
			n.Range = n.Range.Add(delta)
		case *FString:
			n.Range = n.Range.Add(delta)
		case *FormattedValue:
			n.Range = n.Range.Add(delta)
		case *NumberLiteral:
			n.Range = n.Range.Add(delta)
		case *BoolLiteral:
			n.Range = n.Range.Add(delta)
		case *NoneLiteral:
			n.Range = n.Range.Add(delta)
		case *EllipsisLiteral:
			n.Range = n.Range.Add(delta)
		case *Await:
			n.Range = n.Range.Add(delta)
		case *Yield:
			n.Range = n.Range.Add(delta)
		case *YieldFrom:
			n.Range = n.Range.Add(delta)
		default:
			panic(n) // not an expression tree
		}
		return true
	})
}

func rebaseParams(params *Parameters, delta int) {
	params.Range = params.Range.Add(delta)
	for _, p := range params.All() {
		p.Range = p.Range.Add(delta)
		p.Name.Range = p.Name.Range.Add(delta)
	}
}

func rebaseClauses(clauses []*Comprehension, delta int) {
	for _, c := range clauses {
		c.Range = c.Range.Add(delta)
	}
}
