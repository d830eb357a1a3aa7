// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

import (
	"go.pycheck.net/pycheck/semantic"
	"go.pycheck.net/pycheck/syntax"
)

// annotationKind is the evaluation class of one annotation expression.
type annotationKind uint8

const (
	// annRuntimeRequired annotations evaluate at runtime even under
	// postponed evaluation (dataclass ClassVar/InitVar fields).
	annRuntimeRequired annotationKind = iota
	// annRuntimeEvaluated annotations evaluate at runtime unless
	// "from __future__ import annotations" postpones them.
	annRuntimeEvaluated
	// annTypingOnly annotations are never evaluated (stub files);
	// forward references are legal everywhere in them.
	annTypingOnly
)

// classifyAnnotation decides the evaluation class of an annotation at
// the current position.
func (c *Checker) classifyAnnotation(e syntax.Expr) annotationKind {
	if c.stub() {
		return annTypingOnly
	}
	if c.inDataclass && c.model.CurrentScope().Kind == semantic.ClassScope &&
		(c.isTypingName(annotationHead(e), "ClassVar") || c.isTypingName(annotationHead(e), "InitVar")) {
		return annRuntimeRequired
	}
	return annRuntimeEvaluated
}

// visitAnnotation traverses an annotation according to its class:
// inline for runtime evaluation, deferred when resolution must wait for
// names bound later in the file.
func (c *Checker) visitAnnotation(e syntax.Expr, kind annotationKind) {
	if e == nil {
		return
	}
	switch kind {
	case annRuntimeRequired:
		c.visitAnnotationInline(e, semantic.InRuntimeAnnotation)
	case annRuntimeEvaluated:
		if c.futures {
			c.deferAnnotation(e, semantic.InRuntimeAnnotation)
		} else {
			c.visitAnnotationInline(e, semantic.InRuntimeAnnotation)
		}
	case annTypingOnly:
		c.deferAnnotation(e, semantic.InTypingOnlyAnnotation)
	}
}

func (c *Checker) visitAnnotationInline(e syntax.Expr, flag semantic.Flags) {
	saved := c.model.Flags
	c.model.Flags |= flag | semantic.InTypeDefinition
	c.visitExpr(e)
	c.model.Flags = saved
}

// deferAnnotation enqueues a whole annotation for a later round. The
// snapshot carries the annotation flag so the resumed visit still knows
// its context. String annotations go on their own queue: they need
// re-parsing first.
func (c *Checker) deferAnnotation(e syntax.Expr, flag semantic.Flags) {
	saved := c.model.Flags
	c.model.Flags |= flag | semantic.InTypeDefinition
	snap := c.model.Snapshot()
	c.model.Flags = saved

	if lit, ok := e.(*syntax.StringLiteral); ok {
		c.deferred.strings = append(c.deferred.strings, deferredString{
			lit:      lit,
			snapshot: snap,
			stack:    c.stackCopy(),
		})
		return
	}
	c.deferred.annotations = append(c.deferred.annotations, deferredNode{
		node:     e,
		snapshot: snap,
		stack:    c.stackCopy(),
	})
}

// deferStringAnnotation enqueues a string found in annotation position
// during an inline visit. The current flags already carry the
// annotation context.
func (c *Checker) deferStringAnnotation(lit *syntax.StringLiteral) {
	c.deferred.strings = append(c.deferred.strings, deferredString{
		lit:      lit,
		snapshot: c.model.Snapshot(),
		stack:    c.stackCopy(),
	})
}

// annotationHead returns the expression a subscripted annotation
// applies: the head of ClassVar[int] is ClassVar.
func annotationHead(e syntax.Expr) syntax.Expr {
	for {
		sub, ok := e.(*syntax.Subscript)
		if !ok {
			return e
		}
		e = sub.X
	}
}

// isTypingName reports whether e is the given typing construct, either
// bare or qualified by a typing-compatible module.
func (c *Checker) isTypingName(e syntax.Expr, name string) bool {
	switch x := e.(type) {
	case *syntax.Name:
		return x.ID == name
	case *syntax.Attribute:
		if base, ok := x.X.(*syntax.Name); ok {
			return x.Attr.Name == name && c.settings.IsTypingModule(base.ID)
		}
	}
	return false
}
