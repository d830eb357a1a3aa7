// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package semantic

import "go.pycheck.net/pycheck/syntax"

// A BindingID identifies a binding in the model's binding arena.
type BindingID int

// NoBinding marks the absence of a binding.
const NoBinding BindingID = -1

// BindingKind records why a name is bound.
type BindingKind uint8

const (
	Assignment BindingKind = iota
	Annotation             // x: T with no value; not a real assignment
	NamedExprAssignment    // walrus target
	Argument
	Import          // import a.b binds "a"
	FromImport      // from m import x
	SubmoduleImport // import a.b binds submodule b onto package a
	FutureImport    // from __future__ import ...
	FunctionDefinition
	ClassDefinition
	TypeParamDefinition
	LoopVar     // for targets and comprehension targets
	WithItemVar // with ... as v
	BoundException
	UnboundException // exception name after its handler exits
	GlobalRedirect
	NonlocalRedirect
	Export // entry bound via __all__
	Deletion
	Builtin
)

var bindingKindNames = [...]string{
	Assignment:          "assignment",
	Annotation:          "annotation",
	NamedExprAssignment: "named-expr-assignment",
	Argument:            "argument",
	Import:              "import",
	FromImport:          "from-import",
	SubmoduleImport:     "submodule-import",
	FutureImport:        "future-import",
	FunctionDefinition:  "function-definition",
	ClassDefinition:     "class-definition",
	TypeParamDefinition: "type-parameter",
	LoopVar:             "loop-var",
	WithItemVar:         "with-item-var",
	BoundException:      "bound-exception",
	UnboundException:    "unbound-exception",
	GlobalRedirect:      "global",
	NonlocalRedirect:    "nonlocal",
	Export:              "export",
	Deletion:            "deletion",
	Builtin:             "builtin",
}

func (k BindingKind) String() string { return bindingKindNames[k] }

// BindingFlags is a set of facts about a binding beyond its kind.
type BindingFlags uint16

const (
	External         BindingFlags = 1 << iota // bound by an import
	Aliased                                   // import ... as other
	ExplicitExport                            // "import x as x" re-export convention
	PrivateDeclaration                        // leading-underscore name
	InExceptHandler                           // bound inside an except clause
	UnpackedAssignment                        // part of a tuple/list unpacking target
	InvalidAllFormat                          // __all__ assigned a non-list/tuple value
	InvalidAllObject                          // __all__ entry that is not a string literal
)

// Has reports whether all bits of other are set.
func (f BindingFlags) Has(other BindingFlags) bool { return f&other == other }

// Access classifies a reference site.
type Access uint8

const (
	Load Access = iota
	Store
	Del
)

var accessNames = [...]string{Load: "load", Store: "store", Del: "delete"}

func (a Access) String() string { return accessNames[a] }

// A Reference is one occurrence where a binding is read, written or
// deleted. It is stored on the binding it resolves to.
type Reference struct {
	Range  syntax.Range
	Access Access
	Scope  ScopeID // scope the reference occurred in
	Flags  Flags   // model context flags at the reference site
}

// A Binding is a single fact: this name is bound at this location,
// for this reason.
type Binding struct {
	Name   string
	Kind   BindingKind
	Range  syntax.Range
	Flags  BindingFlags
	Scope  ScopeID  // owning scope
	Branch BranchID // branch active when the binding was created

	// Redirect is the binding a GlobalRedirect or NonlocalRedirect
	// resolves to, NoBinding otherwise.
	Redirect BindingID

	References []Reference
}

// IsUsed reports whether the binding has at least one load reference.
func (b *Binding) IsUsed() bool {
	for _, ref := range b.References {
		if ref.Access == Load {
			return true
		}
	}
	return false
}

// IsImport reports whether the binding was created by any import form.
func (b *Binding) IsImport() bool {
	switch b.Kind {
	case Import, FromImport, SubmoduleImport, FutureImport:
		return true
	}
	return false
}

// IsDefinition reports whether the binding introduces a def or class name.
func (b *Binding) IsDefinition() bool {
	return b.Kind == FunctionDefinition || b.Kind == ClassDefinition
}

// A BranchID identifies an exclusive control-flow branch (an except
// clause, or an arm of an if/match). Branch 0 is the unconditional
// top-level branch. Branches form a tree through the model's branch
// parent table; bindings on sibling branches never shadow one another
// for redefinition purposes.
type BranchID int
