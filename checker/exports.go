// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

import (
	"go.pycheck.net/pycheck/semantic"
	"go.pycheck.net/pycheck/syntax"
)

// __all__ tracking. Every assignment or augmentation of __all__ at
// module level produces an Export binding; its entries are collected as
// they appear and validated in a dedicated phase once the whole module
// has been traversed.

func isDunderAllTarget(targets []syntax.Expr) bool {
	for _, t := range targets {
		if name, ok := t.(*syntax.Name); ok && name.ID == "__all__" {
			return true
		}
	}
	return false
}

// bindExportTarget handles "__all__ = value" and "__all__ += value" at
// module level. It reports false when the target is not __all__, in
// which case the caller binds normally.
func (c *Checker) bindExportTarget(target syntax.Expr, value syntax.Expr) bool {
	name, ok := target.(*syntax.Name)
	if !ok || name.ID != "__all__" || c.model.Current() != semantic.ModuleScopeID {
		return false
	}
	id := c.model.AddBinding(name.ID, name.Range, semantic.Export, 0)
	c.collectExports(value, id, true)
	return true
}

// collectExports walks an __all__ value. strict marks positions where a
// non-sequence is a format error; concatenation operands such as
// "mod.__all__" in a + chain are passed through without complaint.
func (c *Checker) collectExports(value syntax.Expr, id semantic.BindingID, strict bool) {
	switch v := value.(type) {
	case *syntax.List:
		for _, elt := range v.Elts {
			c.addExportEntry(elt, id)
		}
	case *syntax.Tuple:
		for _, elt := range v.Elts {
			c.addExportEntry(elt, id)
		}
	case *syntax.BinOp:
		if v.Op == "+" {
			c.collectExports(v.X, id, false)
			c.collectExports(v.Y, id, false)
			return
		}
		c.flagExportFormat(value, id, strict)
	default:
		c.flagExportFormat(value, id, strict)
	}
}

func (c *Checker) flagExportFormat(value syntax.Expr, id semantic.BindingID, strict bool) {
	if !strict {
		return
	}
	c.model.BindingByID(id).Flags |= semantic.InvalidAllFormat
	c.invalidFormat = append(c.invalidFormat, value.Span())
}

// addExportEntry records one element of an __all__ sequence. A
// non-string element is flagged and contributes no export name.
func (c *Checker) addExportEntry(elt syntax.Expr, id semantic.BindingID) {
	if lit, ok := elt.(*syntax.StringLiteral); ok {
		c.model.AddExport(semantic.ExportEntry{Name: lit.Value, Range: lit.Range, Binding: id})
		return
	}
	c.model.BindingByID(id).Flags |= semantic.InvalidAllObject
	c.invalidObject = append(c.invalidObject, elt.Span())
}

// checkDunderAllCall recognizes "__all__.append(...)" and
// "__all__.extend(...)" at module level and folds their arguments into
// the export list.
func (c *Checker) checkDunderAllCall(n *syntax.Call) {
	if c.model.Current() != semantic.ModuleScopeID {
		return
	}
	att, ok := n.Func.(*syntax.Attribute)
	if !ok {
		return
	}
	base, ok := att.X.(*syntax.Name)
	if !ok || base.ID != "__all__" {
		return
	}
	id, ok := c.model.GlobalScope().Get("__all__")
	if !ok || c.model.BindingByID(id).Kind != semantic.Export {
		return
	}
	switch att.Attr.Name {
	case "append":
		for _, arg := range n.Args {
			c.addExportEntry(arg, id)
		}
	case "extend":
		for _, arg := range n.Args {
			c.collectExports(arg, id, false)
		}
	}
}
