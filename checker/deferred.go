// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

import (
	"fmt"
	"log"

	"go.pycheck.net/pycheck/semantic"
	"go.pycheck.net/pycheck/syntax"
)

// A deferredNode is one postponed subtree together with the context
// needed to resume it: the model snapshot and a copy of the checker's
// node stack at the moment of deferral.
type deferredNode struct {
	node     syntax.Node
	snapshot semantic.Snapshot
	stack    []syntax.Node
}

// A deferredString is a postponed string annotation; its contents are
// re-parsed before resumption.
type deferredString struct {
	lit      *syntax.StringLiteral
	snapshot semantic.Snapshot
	stack    []syntax.Node
}

// The scheduler holds the queues of deferred work. Queue membership is
// by kind, and each drain round processes the queues in a fixed order
// so that, for example, a string annotation referring to a name bound
// inside a deferred function body resolves within the same round.
type scheduler struct {
	classBases  []deferredNode
	functions   []deferredNode
	typeParams  []deferredNode
	lambdas     []deferredNode
	annotations []deferredNode
	strings     []deferredString
}

func (s *scheduler) empty() bool {
	return len(s.classBases) == 0 &&
		len(s.functions) == 0 &&
		len(s.typeParams) == 0 &&
		len(s.lambdas) == 0 &&
		len(s.annotations) == 0 &&
		len(s.strings) == 0
}

// drainDeferred runs rounds of deferred work until no queue refills.
// Processing one unit may enqueue more (a nested def inside a deferred
// body, a string inside a re-parsed annotation); the loop reaches a
// fixed point because every unit is strictly smaller than the one that
// spawned it.
func (c *Checker) drainDeferred() {
	for !c.deferred.empty() {
		c.processClassBases()
		c.processFunctions()
		c.processTypeParams()
		c.processLambdas()
		c.processAnnotations()
		c.processStringAnnotations()
	}
	// Reposition at top level for the validation phases.
	c.nodes = c.nodes[:0]
	c.model.Restore(semantic.Snapshot{Scope: semantic.ModuleScopeID})
}

func take(q *[]deferredNode) []deferredNode {
	items := *q
	*q = nil
	return items
}

// resume repositions both the model and the checker's node stack at a
// deferral point.
func (c *Checker) resume(item deferredNode) {
	c.nodes = append(c.nodes[:0], item.stack...)
	c.model.Restore(item.snapshot)
}

func (c *Checker) processClassBases() {
	for _, item := range take(&c.deferred.classBases) {
		cd, ok := item.node.(*syntax.ClassDef)
		if !ok {
			log.Panicf("deferred class-base queue holds %T", item.node)
		}
		c.resume(item)
		c.model.Flags |= semantic.InDeferredClassBase | semantic.InTypeDefinition
		for _, base := range cd.Bases {
			c.visitExpr(base)
		}
	}
}

func (c *Checker) processFunctions() {
	for _, item := range take(&c.deferred.functions) {
		fn, ok := item.node.(*syntax.FunctionDef)
		if !ok {
			log.Panicf("deferred function queue holds %T", item.node)
		}
		c.resume(item)
		c.docstring.expect = expectFunction
		c.visitBody(fn.Body)
		c.closeScope(item.snapshot.Scope)
	}
}

func (c *Checker) processTypeParams() {
	for _, item := range take(&c.deferred.typeParams) {
		c.resume(item)
		c.model.Flags |= semantic.InTypeDefinition
		switch tp := item.node.(type) {
		case *syntax.TypeVar:
			c.visitExpr(tp.Bound)
			c.visitExpr(tp.Default)
		case *syntax.TypeVarTuple:
			c.visitExpr(tp.Default)
		case *syntax.ParamSpec:
			c.visitExpr(tp.Default)
		default:
			log.Panicf("deferred type-param queue holds %T", item.node)
		}
	}
}

func (c *Checker) processLambdas() {
	for _, item := range take(&c.deferred.lambdas) {
		lam, ok := item.node.(*syntax.Lambda)
		if !ok {
			log.Panicf("deferred lambda queue holds %T", item.node)
		}
		c.resume(item)
		c.visitExpr(lam.Body)
		c.closeScope(item.snapshot.Scope)
	}
}

func (c *Checker) processAnnotations() {
	for _, item := range take(&c.deferred.annotations) {
		e, ok := item.node.(syntax.Expr)
		if !ok {
			log.Panicf("deferred annotation queue holds %T", item.node)
		}
		// The snapshot flags carry the annotation context.
		c.resume(item)
		c.visitExpr(e)
	}
}

// annotationKey caches re-parsed string annotations by contents and
// file position: two annotations with equal text at different offsets
// must not share ranges.
type annotationKey struct {
	src  string
	base int
}

func (c *Checker) processStringAnnotations() {
	items := c.deferred.strings
	if len(items) == 0 {
		return
	}
	c.deferred.strings = nil

	c.stringRound++
	if c.stringRound > 1 {
		// A nested string annotation ("List['X']") re-bases relative to
		// the inner literal; entries cached in an earlier round carry
		// offsets that no longer apply.
		c.annotationCache = nil
	}
	for _, item := range items {
		c.resume(deferredNode{snapshot: item.snapshot, stack: item.stack})
		c.model.Flags |= semantic.InDeferredStringAnnotation
		if e := c.expandAnnotation(item.lit); e != nil {
			c.visitExpr(e)
		}
	}
}

// expandAnnotation re-parses a string annotation and re-bases the
// resulting tree to file-relative offsets (the +1 skips the opening
// quote). A parse failure is itself a finding.
func (c *Checker) expandAnnotation(lit *syntax.StringLiteral) syntax.Expr {
	if c.opts.ParseAnnotation == nil {
		return nil
	}
	base := lit.Range.Start + 1
	key := annotationKey{src: lit.Value, base: base}
	if e, ok := c.annotationCache[key]; ok {
		return e
	}
	e, err := c.opts.ParseAnnotation(lit.Value)
	if err != nil {
		c.Report(CodeForwardSyntax, lit.Range,
			fmt.Sprintf("syntax error in forward annotation %q", lit.Value))
		return nil
	}
	syntax.Rebase(e, base)
	if c.annotationCache == nil {
		c.annotationCache = make(map[annotationKey]syntax.Expr)
	}
	c.annotationCache[key] = e
	return e
}
