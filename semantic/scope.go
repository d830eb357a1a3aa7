// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package semantic implements the symbol table built by the checker:
// an arena of scopes and bindings addressed by stable integer ids,
// reference tracking, and the snapshot/restore mechanism used to resume
// deferred subtrees.
//
// Scopes and bindings are never freed. A scope popped from the traversal
// stack remains addressable by its ScopeID so that the scope-level
// analyses that run after the walk can still inspect it. Relationships
// between scopes and bindings are expressed through ids, never through
// direct pointers, so they survive arena growth.
package semantic

// A ScopeID identifies a scope in the model's scope arena.
type ScopeID int

// ModuleScopeID is the id of the module (global) scope, always created first.
const ModuleScopeID ScopeID = 0

// NoScope is the parent of the module scope.
const NoScope ScopeID = -1

// ScopeKind classifies a lexical scope.
type ScopeKind uint8

const (
	ModuleScope ScopeKind = iota
	ClassScope
	FunctionScope
	LambdaScope
	GeneratorScope // list/set/dict comprehensions and generator expressions
	TypeParamScope // PEP 695 type-parameter list
)

var scopeKindNames = [...]string{
	ModuleScope:    "module",
	ClassScope:     "class",
	FunctionScope:  "function",
	LambdaScope:    "lambda",
	GeneratorScope: "generator",
	TypeParamScope: "type-parameter",
}

func (k ScopeKind) String() string { return scopeKindNames[k] }

// A StarImport records an active "from module import *" in a scope.
type StarImport struct {
	Module string
	Level  int // leading dots of a relative import
}

// A Scope is one lexical scope. The name map is last-write-wins:
// it holds only the most recent binding for each name. Earlier bindings
// stay in the arena and remain reachable through the shadow map.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID

	names map[string]BindingID

	// UsesDynamicLocals is set when the scope calls locals(), vars(),
	// eval() or exec(); undefined/unused reporting is suppressed there.
	UsesDynamicLocals bool

	starImports []StarImport
}

// Get returns the current binding for name, if any.
func (s *Scope) Get(name string) (BindingID, bool) {
	id, ok := s.names[name]
	return id, ok
}

func (s *Scope) set(name string, id BindingID) {
	if s.names == nil {
		s.names = make(map[string]BindingID)
	}
	s.names[name] = id
}

// Names returns the bound names of the scope in unspecified order.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	return names
}

// Bindings returns the current name→binding map entries.
// The returned map must not be mutated.
func (s *Scope) Bindings() map[string]BindingID { return s.names }

// AddStarImport records a star import in the scope.
func (s *Scope) AddStarImport(imp StarImport) {
	s.starImports = append(s.starImports, imp)
}

// HasStarImports reports whether the scope contains a star import.
func (s *Scope) HasStarImports() bool { return len(s.starImports) > 0 }

// StarImports returns the scope's star imports.
func (s *Scope) StarImports() []StarImport { return s.starImports }
