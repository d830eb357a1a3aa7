// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package semantic

import "go.pycheck.net/pycheck/syntax"

// Flags is the bitset of context facts about the position the checker is
// currently visiting. The checker saves the field, sets or clears bits,
// visits children, and restores the saved value.
type Flags uint32

const (
	InFString Flags = 1 << iota
	InTypingOnlyAnnotation
	InRuntimeAnnotation
	InBooleanTest
	InExceptionHandler
	InDunderAll
	InNamedExprAssignment
	InTypeDefinition
	InDeferredClassBase        // resuming a deferred class-base expression
	InDeferredStringAnnotation // resuming a re-parsed string annotation
	FutureAnnotations          // "from __future__ import annotations" seen
	InModuleDocstring
	InClassDocstring
	InFunctionDocstring
	InAttributeDocstring
)

// Has reports whether all bits of other are set.
func (f Flags) Has(other Flags) bool { return f&other == other }

// AnyDocstring is the union of the four docstring flags.
const AnyDocstring = InModuleDocstring | InClassDocstring | InFunctionDocstring | InAttributeDocstring

// A Snapshot captures the traversal context at the moment a subtree is
// deferred: restoring it repositions the model so the deferred work
// resumes exactly as if it had been visited inline. Snapshots are plain
// values; many may reference the same scope, as they are consumed
// sequentially.
type Snapshot struct {
	Depth  int // checker node-stack depth
	Scope  ScopeID
	Flags  Flags
	Branch BranchID
}

// UnresolvedKind classifies why a load failed to resolve.
type UnresolvedKind uint8

const (
	NotFound        UnresolvedKind = iota
	MaybeStarImport                // a star import may supply the name
	AfterDeletion                  // the nearest binding is a del
	AfterHandler                   // exception name read after its handler
)

// An UnresolvedReference is a "possibly undefined" fact, recorded during
// the walk and judged only in the final scope-analysis phase, once the
// whole scope chain and every star import are known.
type UnresolvedReference struct {
	Name  string
	Range syntax.Range
	Scope ScopeID // scope the load occurred in
	Kind  UnresolvedKind
	Flags Flags // context flags at the load site
}

// A Model is the symbol table for one source file. It is exclusively
// owned and mutated by one checker for the duration of the file's
// analysis; rule hooks read it only.
type Model struct {
	scopes   []*Scope
	bindings []Binding

	current ScopeID

	// Flags is the active context bitset; see the Flags type.
	Flags Flags

	// NodeDepth mirrors the checker's node-stack depth; it is captured
	// in snapshots so deferred units resume at the right depth.
	NodeDepth int

	branchParents []BranchID
	branch        BranchID

	// shadows maps a binding to the binding it hides, both for
	// rebindings within one scope and for bindings that hide one in an
	// enclosing function or module scope. Weak: ids only, no ownership.
	shadows map[BindingID]BindingID

	unresolved []UnresolvedReference

	// exports accumulates the names assigned to __all__.
	exports []ExportEntry
}

// An ExportEntry is one entry of __all__, by name.
type ExportEntry struct {
	Name    string
	Range   syntax.Range
	Binding BindingID // the Export binding, for flag inspection
}

// NewModel returns a model whose module scope is already pushed.
func NewModel() *Model {
	m := &Model{
		shadows:       make(map[BindingID]BindingID),
		branchParents: []BranchID{-1},
	}
	m.scopes = append(m.scopes, &Scope{Kind: ModuleScope, Parent: NoScope})
	m.current = ModuleScopeID
	return m
}

// BindBuiltins binds the given names into the module scope, once,
// before traversal begins.
func (m *Model) BindBuiltins(names []string) {
	for _, name := range names {
		id := m.PushBinding(name, syntax.Range{}, Builtin, 0)
		m.scopes[ModuleScopeID].set(name, id)
	}
}

// Current returns the id of the innermost active scope.
func (m *Model) Current() ScopeID { return m.current }

// CurrentScope returns the innermost active scope.
func (m *Model) CurrentScope() *Scope { return m.scopes[m.current] }

// ScopeByID returns the scope with the given id.
func (m *Model) ScopeByID(id ScopeID) *Scope { return m.scopes[id] }

// BindingByID returns the binding with the given id.
func (m *Model) BindingByID(id BindingID) *Binding { return &m.bindings[id] }

// NumScopes returns the number of scopes created so far.
func (m *Model) NumScopes() int { return len(m.scopes) }

// NumBindings returns the number of bindings created so far.
func (m *Model) NumBindings() int { return len(m.bindings) }

// GlobalScope returns the module scope.
func (m *Model) GlobalScope() *Scope { return m.scopes[ModuleScopeID] }

// PushScope creates a scope of the given kind as a child of the current
// scope and makes it current.
func (m *Model) PushScope(kind ScopeKind) ScopeID {
	id := ScopeID(len(m.scopes))
	m.scopes = append(m.scopes, &Scope{Kind: kind, Parent: m.current})
	m.current = id
	return id
}

// PopScope leaves the current scope. The scope is retained: later
// analyses still address it by id.
func (m *Model) PopScope() ScopeID {
	popped := m.current
	m.current = m.scopes[popped].Parent
	return popped
}

// PushBranch enters a new exclusive branch (an except clause or an arm
// of an if/match) and returns the previous branch for restoration.
func (m *Model) PushBranch() BranchID {
	prev := m.branch
	m.branchParents = append(m.branchParents, prev)
	m.branch = BranchID(len(m.branchParents) - 1)
	return prev
}

// RestoreBranch returns to a branch saved by PushBranch.
func (m *Model) RestoreBranch(b BranchID) { m.branch = b }

// Branch returns the active branch.
func (m *Model) Branch() BranchID { return m.branch }

// OnSameBranch reports whether branch a is b or one of b's ancestors,
// i.e. whether a binding made on a is certainly live on b.
func (m *Model) OnSameBranch(a, b BranchID) bool {
	for ; b >= 0; b = m.branchParents[b] {
		if a == b {
			return true
		}
	}
	return false
}

// Snapshot captures the current traversal context.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		Depth:  m.NodeDepth,
		Scope:  m.current,
		Flags:  m.Flags,
		Branch: m.branch,
	}
}

// Restore repositions the model at a previously captured context.
// Used exclusively by the deferred-work scheduler.
func (m *Model) Restore(s Snapshot) {
	m.NodeDepth = s.Depth
	m.current = s.Scope
	m.Flags = s.Flags
	m.branch = s.Branch
}

// PushBinding appends a new binding to the arena without registering it
// in any scope's name map. Binding creation and scope registration are
// decoupled so that callers can special-case global/nonlocal
// redirection; most callers want AddBinding.
func (m *Model) PushBinding(name string, rng syntax.Range, kind BindingKind, flags BindingFlags) BindingID {
	id := BindingID(len(m.bindings))
	m.bindings = append(m.bindings, Binding{
		Name:     name,
		Kind:     kind,
		Range:    rng,
		Flags:    flags,
		Scope:    m.current,
		Branch:   m.branch,
		Redirect: NoBinding,
	})
	return id
}

// Register enters a binding into a scope's name map without the
// AddBinding protocol. The global/nonlocal redirect bindings use this:
// the redirect itself lives in the declaring scope's map while its
// target belongs elsewhere.
func (m *Model) Register(name string, sid ScopeID, id BindingID) {
	m.scopes[sid].set(name, id)
}

// AddBinding runs the full binding-creation protocol: it creates the
// binding, decides which scope owns it, carries the "was used" state
// over from anything it shadows in the same scope, records shadow
// relations against enclosing function/module scopes, and registers the
// binding in the owning scope's name map.
func (m *Model) AddBinding(name string, rng syntax.Range, kind BindingKind, flags BindingFlags) BindingID {
	owner := m.current

	// A walrus target belongs to the nearest enclosing scope that is
	// not itself a comprehension scope: the synthetic generator
	// function is transparent to named-expression assignment.
	if kind == NamedExprAssignment {
		for m.scopes[owner].Kind == GeneratorScope {
			owner = m.scopes[owner].Parent
		}
	}

	// A store to a name declared global or nonlocal in this scope
	// writes through to the redirected binding's scope.
	if kind != GlobalRedirect && kind != NonlocalRedirect && kind != Deletion {
		if prev, ok := m.scopes[owner].Get(name); ok {
			switch m.bindings[prev].Kind {
			case GlobalRedirect:
				owner = ModuleScopeID
			case NonlocalRedirect:
				if target := m.bindings[prev].Redirect; target != NoBinding {
					owner = m.bindings[target].Scope
				}
			}
		}
	}

	if name != "" && name[0] == '_' {
		flags |= PrivateDeclaration
	}
	if m.Flags.Has(InExceptionHandler) {
		flags |= InExceptHandler
	}

	id := m.PushBinding(name, rng, kind, flags)
	m.bindings[id].Scope = owner

	if shadowed, ok := m.scopes[owner].Get(name); ok {
		// Rebinding within one scope: carry the shadowed binding's
		// reference list over wholesale so a genuinely-used prior
		// value does not look unused after the redefinition. An
		// annotation-only binding keeps its references separate so
		// delayed-annotation tracking stays precise.
		if kind != Annotation {
			m.bindings[id].References = append(m.bindings[id].References, m.bindings[shadowed].References...)
		}
		m.shadows[id] = shadowed
	} else {
		// Does the new binding hide one in an enclosing function or
		// module scope? Record a weak pointer for the shadowing rules.
		for sid := m.scopes[owner].Parent; sid != NoScope; sid = m.scopes[sid].Parent {
			scope := m.scopes[sid]
			if scope.Kind != FunctionScope && scope.Kind != ModuleScope {
				continue
			}
			if outer, ok := scope.Get(name); ok {
				m.shadows[id] = outer
				break
			}
		}
	}

	m.scopes[owner].set(name, id)
	return id
}

// ShadowedBy returns the binding hidden by id, if any.
func (m *Model) ShadowedBy(id BindingID) (BindingID, bool) {
	shadowed, ok := m.shadows[id]
	return shadowed, ok
}

// ResolveLoad resolves a read of name at rng against the active scope
// chain. On success it records a load reference on the binding found.
// On failure it records an unresolved-reference fact; whether that fact
// becomes a diagnostic is decided only in the final analysis phase.
func (m *Model) ResolveLoad(name string, rng syntax.Range) (BindingID, bool) {
	seenStar := false
	innermost := true
	for sid := m.current; sid != NoScope; sid = m.scopes[sid].Parent {
		scope := m.scopes[sid]

		// Class scopes are skipped by lookups from nested scopes:
		// a method or comprehension does not see its class's names.
		if scope.Kind == ClassScope && !innermost {
			continue
		}
		innermost = false

		if scope.HasStarImports() {
			seenStar = true
		}

		id, ok := scope.Get(name)
		if !ok {
			continue
		}
		switch b := &m.bindings[id]; b.Kind {
		case GlobalRedirect:
			return m.loadFromScope(ModuleScopeID, name, rng, seenStar)
		case NonlocalRedirect:
			if b.Redirect == NoBinding {
				continue // malformed nonlocal: keep walking
			}
			m.recordLoad(b.Redirect, rng)
			return b.Redirect, true
		case Deletion:
			m.recordUnresolved(name, rng, AfterDeletion)
			return NoBinding, false
		case UnboundException:
			m.recordUnresolved(name, rng, AfterHandler)
			return NoBinding, false
		default:
			m.recordLoad(id, rng)
			return id, true
		}
	}

	if seenStar {
		m.recordUnresolved(name, rng, MaybeStarImport)
	} else {
		m.recordUnresolved(name, rng, NotFound)
	}
	return NoBinding, false
}

// loadFromScope is ResolveLoad restricted to one scope, used for
// global-redirected reads.
func (m *Model) loadFromScope(sid ScopeID, name string, rng syntax.Range, seenStar bool) (BindingID, bool) {
	if id, ok := m.scopes[sid].Get(name); ok {
		switch m.bindings[id].Kind {
		case Deletion:
			m.recordUnresolved(name, rng, AfterDeletion)
			return NoBinding, false
		case GlobalRedirect, NonlocalRedirect:
			// cannot occur in the module scope
		default:
			m.recordLoad(id, rng)
			return id, true
		}
	}
	if seenStar || m.scopes[sid].HasStarImports() {
		m.recordUnresolved(name, rng, MaybeStarImport)
	} else {
		m.recordUnresolved(name, rng, NotFound)
	}
	return NoBinding, false
}

// ResolveDelete resolves "del name": it records a delete reference on
// the binding if one is found, then adds a synthetic Deletion binding so
// later reads report "referenced after deletion". A del of an unknown
// name records an unresolved fact like a failed load.
func (m *Model) ResolveDelete(name string, rng syntax.Range) {
	if id, ok := m.CurrentScope().Get(name); ok && m.bindings[id].Kind != Deletion {
		m.bindings[id].References = append(m.bindings[id].References, Reference{
			Range:  rng,
			Access: Del,
			Scope:  m.current,
			Flags:  m.Flags,
		})
	} else {
		m.recordUnresolved(name, rng, NotFound)
	}
	m.AddBinding(name, rng, Deletion, 0)
}

func (m *Model) recordLoad(id BindingID, rng syntax.Range) {
	m.bindings[id].References = append(m.bindings[id].References, Reference{
		Range:  rng,
		Access: Load,
		Scope:  m.current,
		Flags:  m.Flags,
	})
}

func (m *Model) recordUnresolved(name string, rng syntax.Range, kind UnresolvedKind) {
	m.unresolved = append(m.unresolved, UnresolvedReference{
		Name:  name,
		Range: rng,
		Scope: m.current,
		Kind:  kind,
		Flags: m.Flags,
	})
}

// Unresolved returns the accumulated unresolved-reference facts.
func (m *Model) Unresolved() []UnresolvedReference { return m.unresolved }

// StillUnresolved re-walks the retained scope chain of a fact after the
// whole tree has been processed. A name that was bound later (a class
// body read by a deferred method, a module-level forward use) no longer
// counts as unresolved.
func (m *Model) StillUnresolved(ref UnresolvedReference) bool {
	if ref.Kind == AfterDeletion || ref.Kind == AfterHandler {
		return true
	}
	innermost := true
	for sid := ref.Scope; sid != NoScope; sid = m.scopes[sid].Parent {
		scope := m.scopes[sid]
		if scope.Kind == ClassScope && !innermost {
			continue
		}
		innermost = false
		if scope.UsesDynamicLocals {
			return false
		}
		if id, ok := scope.Get(ref.Name); ok {
			switch m.bindings[id].Kind {
			case Deletion, UnboundException, GlobalRedirect, NonlocalRedirect:
			default:
				return false
			}
		}
	}
	return true
}

// StarImportsVisible reports whether any scope on the retained chain of
// sid carries star imports, applying the class-scope skip rule. The
// final phase uses it to downgrade "not found" facts recorded before a
// star import was seen: the downgrade does not depend on program order.
func (m *Model) StarImportsVisible(sid ScopeID) bool {
	innermost := true
	for ; sid != NoScope; sid = m.scopes[sid].Parent {
		scope := m.scopes[sid]
		if scope.Kind == ClassScope && !innermost {
			continue
		}
		innermost = false
		if scope.HasStarImports() {
			return true
		}
	}
	return false
}

// AddExport records one validated (or flagged) __all__ entry.
func (m *Model) AddExport(e ExportEntry) { m.exports = append(m.exports, e) }

// Exports returns the accumulated __all__ entries.
func (m *Model) Exports() []ExportEntry { return m.exports }

// IsExported reports whether name appears in __all__.
func (m *Model) IsExported(n string) bool {
	for _, e := range m.exports {
		if e.Name == n {
			return true
		}
	}
	return false
}
