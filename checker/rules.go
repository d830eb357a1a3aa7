// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

import (
	"fmt"
	"sort"

	"go.pycheck.net/pycheck/internal/spell"
	"go.pycheck.net/pycheck/semantic"
)

// validateExports is the third phase: __all__ is judged only after
// every deferred unit has completed, because an entry may name a
// binding that appears anywhere in the module.
func (c *Checker) validateExports() {
	for _, rng := range c.invalidFormat {
		c.Report(CodeInvalidAllFormat, rng, "invalid format for __all__, must be a list or tuple of strings")
	}
	for _, rng := range c.invalidObject {
		c.Report(CodeInvalidAllObject, rng, "invalid object in __all__, must be a string")
	}

	if c.stub() || c.model.GlobalScope().HasStarImports() {
		// A star import may supply any export name.
		return
	}
	for _, e := range c.model.Exports() {
		if e.Name == "" {
			continue
		}
		id, ok := c.model.GlobalScope().Get(e.Name)
		if ok {
			switch c.model.BindingByID(id).Kind {
			case semantic.Builtin, semantic.Deletion, semantic.UnboundException:
				// not part of the module namespace
			default:
				continue
			}
		}
		c.Report(CodeUndefinedExport, e.Range,
			fmt.Sprintf("undefined name '%s' in __all__", e.Name))
	}
}

// analyzeScopes is the final phase: the per-scope binding analyses and
// the judgement of every unresolved-reference fact, now that the full
// scope chain is known.
func (c *Checker) analyzeScopes() {
	c.closeScope(semantic.ModuleScopeID)
	for _, sid := range c.closedScopes {
		c.analyzeScope(sid)
	}
	c.analyzeRedefinitions()
	c.analyzeUnresolved()
}

func (c *Checker) analyzeScope(sid semantic.ScopeID) {
	scope := c.model.ScopeByID(sid)
	start := len(c.diags)

	for name, id := range scope.Bindings() {
		b := c.model.BindingByID(id)
		if b.Scope != sid {
			continue // global/nonlocal write-through
		}

		switch {
		case b.IsImport() && b.Kind != semantic.FutureImport:
			if b.IsUsed() || b.Flags.Has(semantic.ExplicitExport) || c.stub() {
				continue
			}
			if sid == semantic.ModuleScopeID && c.model.IsExported(name) {
				continue
			}
			if scope.UsesDynamicLocals {
				continue
			}
			c.Report(CodeUnusedImport, b.Range,
				fmt.Sprintf("'%s' imported but unused", name))

		case b.Kind == semantic.Assignment ||
			b.Kind == semantic.NamedExprAssignment ||
			b.Kind == semantic.WithItemVar:
			if scope.Kind != semantic.FunctionScope && scope.Kind != semantic.LambdaScope {
				continue
			}
			if b.IsUsed() || scope.UsesDynamicLocals {
				continue
			}
			if b.Flags.Has(semantic.PrivateDeclaration) || b.Flags.Has(semantic.UnpackedAssignment) {
				continue
			}
			c.Report(CodeUnusedVariable, b.Range,
				fmt.Sprintf("local variable '%s' is assigned to but never used", name))
		}
	}

	// Map iteration order is not deterministic; fix the report order.
	sortByRange(c.diags[start:])
}

// analyzeRedefinitions walks the binding arena (which is in creation
// order) looking for a definition or import rebound in the same scope,
// on the same control-flow branch, before anything used it.
func (c *Checker) analyzeRedefinitions() {
	for id := 0; id < c.model.NumBindings(); id++ {
		b := c.model.BindingByID(semantic.BindingID(id))

		switch b.Kind {
		case semantic.Annotation, semantic.Deletion, semantic.UnboundException,
			semantic.Export, semantic.GlobalRedirect, semantic.NonlocalRedirect,
			semantic.Builtin:
			continue
		}

		shadowed, ok := c.model.ShadowedBy(semantic.BindingID(id))
		if !ok {
			continue
		}
		sb := c.model.BindingByID(shadowed)
		if sb.Scope != b.Scope {
			continue
		}
		if !sb.IsDefinition() && !(sb.IsImport() && sb.Kind != semantic.FutureImport) {
			continue
		}
		if sb.IsUsed() {
			continue
		}
		// Only an unconditional rebinding is a redefinition: a rebinding
		// on a sibling branch (the other arm of an if) or on a nested
		// branch (an except arm rebinding a name from the try body) may
		// never execute.
		if sb.Branch != b.Branch {
			continue
		}
		if c.model.ScopeByID(b.Scope).UsesDynamicLocals {
			continue
		}

		msg := fmt.Sprintf("redefinition of unused '%s'", b.Name)
		if loc := c.opts.Locator; loc != nil {
			msg += fmt.Sprintf(" from line %d", loc.Position(sb.Range.Start).Line)
		}
		c.Report(CodeRedefinition, b.Range, msg)
	}
}

// analyzeUnresolved judges the unresolved-reference facts recorded
// during the walk. A fact whose name was bound later anywhere on its
// retained scope chain is dropped; the rest become findings.
func (c *Checker) analyzeUnresolved() {
	for _, ref := range c.model.Unresolved() {
		if !c.model.StillUnresolved(ref) {
			continue
		}
		kind := ref.Kind
		if kind == semantic.NotFound && c.model.StarImportsVisible(ref.Scope) {
			// The load may precede the star import in program order;
			// only now is the whole chain known.
			kind = semantic.MaybeStarImport
		}
		switch kind {
		case semantic.MaybeStarImport:
			c.Report(CodeStarImportUsage, ref.Range,
				fmt.Sprintf("'%s' may be undefined, or defined from star imports", ref.Name))
		case semantic.AfterDeletion:
			c.Report(CodeUndefinedName, ref.Range,
				fmt.Sprintf("undefined name '%s': deleted before this reference", ref.Name))
		case semantic.AfterHandler:
			c.Report(CodeUndefinedName, ref.Range,
				fmt.Sprintf("undefined name '%s': exception variable is unbound outside its handler", ref.Name))
		default:
			msg := fmt.Sprintf("undefined name '%s'", ref.Name)
			if near := spell.Nearest(ref.Name, c.visibleNames(ref.Scope)); near != "" {
				msg += fmt.Sprintf(" (did you mean '%s'?)", near)
			}
			c.Report(CodeUndefinedName, ref.Range, msg)
		}
	}
}

// visibleNames returns every name visible from a scope, for spelling
// suggestions. The class-scope skip rule applies here too.
func (c *Checker) visibleNames(sid semantic.ScopeID) []string {
	var names []string
	innermost := true
	for ; sid != semantic.NoScope; sid = c.model.ScopeByID(sid).Parent {
		scope := c.model.ScopeByID(sid)
		if scope.Kind == semantic.ClassScope && !innermost {
			continue
		}
		innermost = false
		for name, id := range scope.Bindings() {
			switch c.model.BindingByID(id).Kind {
			case semantic.Deletion, semantic.UnboundException:
			default:
				names = append(names, name)
			}
		}
	}
	sort.Strings(names) // stable suggestions
	return names
}

func sortByRange(diags []Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		if diags[i].Range.Start != diags[j].Range.Start {
			return diags[i].Range.Start < diags[j].Range.Start
		}
		return diags[i].Code < diags[j].Code
	})
}
