// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package semantic

import (
	"testing"

	"go.pycheck.net/pycheck/syntax"
)

func rng(start, end int) syntax.Range { return syntax.Range{Start: start, End: end} }

func TestScopePushPop(t *testing.T) {
	m := NewModel()
	if m.Current() != ModuleScopeID {
		t.Fatalf("fresh model current scope = %d, want module", m.Current())
	}

	fid := m.PushScope(FunctionScope)
	gid := m.PushScope(GeneratorScope)
	if got := m.CurrentScope().Kind; got != GeneratorScope {
		t.Errorf("current kind = %v, want generator", got)
	}

	if popped := m.PopScope(); popped != gid {
		t.Errorf("PopScope = %d, want %d", popped, gid)
	}
	if m.Current() != fid {
		t.Errorf("after pop current = %d, want %d", m.Current(), fid)
	}

	// Popped scopes stay addressable.
	if m.ScopeByID(gid).Kind != GeneratorScope {
		t.Error("popped scope no longer addressable by id")
	}
}

func TestRebindingCarriesReferences(t *testing.T) {
	m := NewModel()
	first := m.AddBinding("x", rng(0, 1), Assignment, 0)
	if got, _ := m.ResolveLoad("x", rng(10, 11)); got != first {
		t.Fatalf("load resolved to %d, want %d", got, first)
	}

	second := m.AddBinding("x", rng(20, 21), Assignment, 0)
	if !m.BindingByID(second).IsUsed() {
		t.Error("rebinding did not carry the earlier load over")
	}
	if shadowed, ok := m.ShadowedBy(second); !ok || shadowed != first {
		t.Errorf("ShadowedBy(second) = %d, %v; want %d, true", shadowed, ok, first)
	}
}

func TestAnnotationKeepsReferencesSeparate(t *testing.T) {
	m := NewModel()
	m.AddBinding("x", rng(0, 1), Assignment, 0)
	m.ResolveLoad("x", rng(10, 11))

	ann := m.AddBinding("x", rng(20, 21), Annotation, 0)
	if m.BindingByID(ann).IsUsed() {
		t.Error("annotation binding inherited references from the assignment")
	}
}

func TestWalrusHoistsPastGeneratorScopes(t *testing.T) {
	m := NewModel()
	fid := m.PushScope(FunctionScope)
	m.PushScope(GeneratorScope)
	m.PushScope(GeneratorScope)

	id := m.AddBinding("y", rng(0, 1), NamedExprAssignment, 0)
	if got := m.BindingByID(id).Scope; got != fid {
		t.Errorf("walrus binding owned by scope %d, want function scope %d", got, fid)
	}
	if _, ok := m.ScopeByID(fid).Get("y"); !ok {
		t.Error("walrus target not registered in the function scope")
	}
}

func TestGlobalRedirectWritesThrough(t *testing.T) {
	m := NewModel()
	fid := m.PushScope(FunctionScope)

	redirect := m.PushBinding("g", rng(0, 1), GlobalRedirect, 0)
	m.Register("g", fid, redirect)

	id := m.AddBinding("g", rng(5, 6), Assignment, 0)
	if got := m.BindingByID(id).Scope; got != ModuleScopeID {
		t.Errorf("assignment through global owned by %d, want module scope", got)
	}
	if found, ok := m.GlobalScope().Get("g"); !ok || found != id {
		t.Error("assignment not visible in the module scope")
	}
}

func TestClassScopeSkippedUnlessInnermost(t *testing.T) {
	m := NewModel()
	cid := m.PushScope(ClassScope)
	inClass := m.AddBinding("field", rng(5, 6), Assignment, 0)

	// Innermost lookup sees the class scope.
	if got, ok := m.ResolveLoad("field", rng(10, 11)); !ok || got != inClass {
		t.Fatalf("class-level load = %d, %v; want %d, true", got, ok, inClass)
	}

	// A nested function skips it.
	m.PushScope(FunctionScope)
	if _, ok := m.ResolveLoad("field", rng(20, 21)); ok {
		t.Error("function inside class resolved a class-scope name")
	}
	m.PopScope()
	m.PopScope()
	_ = cid
}

func TestDeletionMakesLaterReadsFail(t *testing.T) {
	m := NewModel()
	m.AddBinding("x", rng(0, 1), Assignment, 0)
	m.ResolveDelete("x", rng(5, 6))

	if _, ok := m.ResolveLoad("x", rng(10, 11)); ok {
		t.Fatal("load after del resolved")
	}
	refs := m.Unresolved()
	if len(refs) != 1 || refs[0].Kind != AfterDeletion {
		t.Fatalf("unresolved facts = %+v, want one AfterDeletion", refs)
	}
	if !m.StillUnresolved(refs[0]) {
		t.Error("AfterDeletion fact was suppressed by the final re-check")
	}
}

func TestStarImportDowngradesLookup(t *testing.T) {
	m := NewModel()
	m.CurrentScope().AddStarImport(StarImport{Module: "os"})

	m.ResolveLoad("walk", rng(0, 4))
	refs := m.Unresolved()
	if len(refs) != 1 || refs[0].Kind != MaybeStarImport {
		t.Fatalf("unresolved facts = %+v, want one MaybeStarImport", refs)
	}
}

func TestStarImportsVisibleOnRetainedChain(t *testing.T) {
	m := NewModel()
	fid := m.PushScope(FunctionScope)
	m.PopScope()

	// The star import lands after the load's fact was recorded; the
	// final phase consults the chain, not program order.
	m.GlobalScope().AddStarImport(StarImport{Module: "os"})
	if !m.StarImportsVisible(fid) {
		t.Error("module-scope star import not visible from retained function scope")
	}
	if !m.StarImportsVisible(ModuleScopeID) {
		t.Error("star import not visible from its own scope")
	}
}

func TestStillUnresolvedSeesLateBindings(t *testing.T) {
	m := NewModel()
	fid := m.PushScope(FunctionScope)
	m.ResolveLoad("late", rng(0, 4))
	m.PopScope()

	refs := m.Unresolved()
	if len(refs) != 1 {
		t.Fatalf("got %d unresolved facts, want 1", len(refs))
	}
	if !m.StillUnresolved(refs[0]) {
		t.Fatal("fact resolved before the name was bound")
	}

	// Bind the name at module level, as a later statement would.
	m.AddBinding("late", rng(50, 54), Assignment, 0)
	if m.StillUnresolved(refs[0]) {
		t.Error("fact still unresolved after the name was bound on its chain")
	}
	_ = fid
}

func TestSnapshotRestore(t *testing.T) {
	m := NewModel()
	m.Flags |= InRuntimeAnnotation
	fid := m.PushScope(FunctionScope)
	snap := m.Snapshot()

	m.PopScope()
	m.Flags = 0
	m.PushBranch()

	m.Restore(snap)
	if m.Current() != fid {
		t.Errorf("restored scope = %d, want %d", m.Current(), fid)
	}
	if !m.Flags.Has(InRuntimeAnnotation) {
		t.Error("restored flags lost the annotation bit")
	}
	if m.Branch() != snap.Branch {
		t.Errorf("restored branch = %d, want %d", m.Branch(), snap.Branch)
	}
}

func TestBranchTree(t *testing.T) {
	m := NewModel()
	root := m.Branch()

	prev := m.PushBranch()
	left := m.Branch()
	m.RestoreBranch(prev)

	m.PushBranch()
	right := m.Branch()

	if !m.OnSameBranch(root, left) {
		t.Error("root should be an ancestor of the left branch")
	}
	if m.OnSameBranch(left, right) {
		t.Error("sibling branches must not count as the same")
	}
	if !m.OnSameBranch(left, left) {
		t.Error("a branch is on its own branch")
	}
}

func TestBuiltinsBoundInModuleScope(t *testing.T) {
	m := NewModel()
	m.BindBuiltins([]string{"print", "len"})

	id, ok := m.ResolveLoad("len", rng(0, 3))
	if !ok {
		t.Fatal("builtin did not resolve")
	}
	if m.BindingByID(id).Kind != Builtin {
		t.Errorf("resolved kind = %v, want builtin", m.BindingByID(id).Kind)
	}
}

func TestUserBindingShadowsBuiltin(t *testing.T) {
	m := NewModel()
	m.BindBuiltins([]string{"list"})

	user := m.AddBinding("list", rng(0, 4), Assignment, 0)
	if got, _ := m.ResolveLoad("list", rng(10, 14)); got != user {
		t.Errorf("load resolved to %d, want the user binding %d", got, user)
	}
	if shadowed, ok := m.ShadowedBy(user); !ok || m.BindingByID(shadowed).Kind != Builtin {
		t.Error("user binding does not record the builtin it shadows")
	}
}
