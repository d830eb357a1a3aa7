// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package checker analyzes one parsed Python module and produces
// diagnostics. It builds the semantic model (scopes, bindings,
// references) in a single tree walk, deferring subtrees whose correct
// resolution depends on bindings that appear later in program order:
// function and lambda bodies, class bases in stubs, type-parameter
// bounds, and postponed or stringized annotations. The deferred units
// are drained in a fixed-point loop after the walk, then the export
// validation and scope-level analyses run.
//
// The diagnostics list is not final until Analyze returns: a rule that
// runs inside a deferred unit appends after everything the initial walk
// produced.
package checker

import (
	"strings"

	"go.pycheck.net/pycheck/semantic"
	"go.pycheck.net/pycheck/syntax"
)

// A RuleHook observes each node after its bindings are in place (the
// analysis step of the visit protocol). Hooks read the model and report
// diagnostics; they must not mutate scope structure.
type RuleHook func(c *Checker, n syntax.Node)

// Options are the external collaborators of one analysis run.
type Options struct {
	// Locator translates byte offsets for rules that need line/column
	// context. Optional; the core itself works on offsets.
	Locator *syntax.Locator

	// Comments is the comment index: the source ranges of comments,
	// for rules that read surrounding prose. Read-only.
	Comments []syntax.Range

	// Settings selects rules and configures the builtin table.
	Settings *Settings

	// ParseAnnotation re-parses the contents of a string annotation as
	// an expression. The sub-tree's offsets must be relative to the
	// string's contents; the checker re-bases them. If nil, string
	// annotations are not expanded.
	ParseAnnotation func(src string) (syntax.Expr, error)

	// Hooks are additional rule hooks run at the analysis step.
	Hooks []RuleHook
}

// Analyze builds the semantic model for file and returns the
// diagnostics of every enabled rule, in phase order: initial walk,
// deferred rounds, export validation, scope-level analyses.
func Analyze(file *syntax.Module, opts *Options) []Diagnostic {
	if opts == nil {
		opts = &Options{}
	}
	c := &Checker{
		model:       semantic.NewModel(),
		opts:        opts,
		settings:    opts.Settings,
		seenModules: make(map[string]bool),
	}

	version := ""
	if c.settings != nil {
		version = c.settings.TargetVersion
	}
	builtins := builtinsForVersion(version)
	if c.settings != nil {
		builtins = append(builtins, c.settings.ExtraBuiltins...)
	}
	c.model.BindBuiltins(builtins)

	c.docstring.expect = expectModule
	c.visitBody(file.Body)
	c.drainDeferred()
	c.validateExports()
	c.analyzeScopes()
	return c.diags
}

// A Checker drives the traversal and owns the model for one file.
type Checker struct {
	model    *semantic.Model
	opts     *Options
	settings *Settings

	diags []Diagnostic
	nodes []syntax.Node // traversal stack

	deferred  scheduler
	docstring docstringState

	// import-boundary tracking (module level only)
	importBoundary bool // a non-import statement has been seen
	cellIdx        int
	seenModules    map[string]bool

	futures     bool // "from __future__ import annotations" active
	inDataclass bool // visiting the body of a dataclass-decorated class

	closedScopes []semantic.ScopeID

	annotationCache map[annotationKey]syntax.Expr
	stringRound     int

	// positions of malformed __all__ values, reported by the export
	// validation phase
	invalidFormat []syntax.Range
	invalidObject []syntax.Range
}

// Model returns the semantic model. Rule hooks treat it as read-only.
func (c *Checker) Model() *semantic.Model { return c.model }

// Settings returns the active settings; may be nil.
func (c *Checker) Settings() *Settings { return c.settings }

// Locator returns the offset translator; may be nil.
func (c *Checker) Locator() *syntax.Locator { return c.opts.Locator }

// Parents returns the traversal stack, outermost first. The last
// element is the node currently being visited.
func (c *Checker) Parents() []syntax.Node { return c.nodes }

// SeenModule reports whether the file imports the named top-level
// module anywhere. For rule hooks.
func (c *Checker) SeenModule(name string) bool { return c.seenModules[name] }

// Report appends a diagnostic if its rule code is enabled.
func (c *Checker) Report(code string, rng syntax.Range, msg string) {
	if c.settings.Enabled(code) {
		c.diags = append(c.diags, Diagnostic{Code: code, Message: msg, Range: rng})
	}
}

func (c *Checker) enterNode(n syntax.Node) {
	c.nodes = append(c.nodes, n)
	c.model.NodeDepth = len(c.nodes)
}

func (c *Checker) leaveNode() {
	c.nodes = c.nodes[:len(c.nodes)-1]
	c.model.NodeDepth = len(c.nodes)
}

func (c *Checker) stub() bool { return c.settings != nil && c.settings.Stub }

func (c *Checker) runHooks(n syntax.Node) {
	for _, hook := range c.opts.Hooks {
		hook(c, n)
	}
}

func (c *Checker) closeScope(id semantic.ScopeID) {
	c.closedScopes = append(c.closedScopes, id)
}

func (c *Checker) visitBody(stmts []syntax.Stmt) {
	for _, stmt := range stmts {
		c.visitStmt(stmt)
	}
}

// visitStmt applies the four-step visit protocol to one statement:
// binding, traversal (with deferral), clean-up, analysis.
func (c *Checker) visitStmt(stmt syntax.Stmt) {
	c.enterNode(stmt)

	saved := c.model.Flags
	docFlag := c.docstring.observe(stmt)
	c.model.Flags |= docFlag

	if c.model.Current() == semantic.ModuleScopeID {
		c.trackImportBoundary(stmt, docFlag != 0)
	}

	switch s := stmt.(type) {
	case *syntax.ExprStmt:
		c.visitExpr(s.X)

	case *syntax.Assign:
		if c.model.Current() == semantic.ModuleScopeID && isDunderAllTarget(s.Targets) {
			c.model.Flags |= semantic.InDunderAll
		}
		c.visitExpr(s.Value)
		for _, target := range s.Targets {
			if c.bindExportTarget(target, s.Value) {
				continue
			}
			c.bindTarget(target, semantic.Assignment, 0)
		}

	case *syntax.AugAssign:
		if c.model.Current() == semantic.ModuleScopeID && isDunderAllTarget([]syntax.Expr{s.Target}) {
			c.model.Flags |= semantic.InDunderAll
		}
		c.visitExpr(s.Value)
		if name, ok := s.Target.(*syntax.Name); ok {
			if !c.bindExportTarget(s.Target, s.Value) {
				// x += y reads and rebinds x.
				c.model.ResolveLoad(name.ID, name.Range)
				c.model.AddBinding(name.ID, name.Range, semantic.Assignment, 0)
			}
		} else {
			c.bindTarget(s.Target, semantic.Assignment, 0)
		}

	case *syntax.AnnAssign:
		c.visitAnnotation(s.Annotation, c.classifyAnnotation(s.Annotation))
		if s.Value != nil {
			c.visitExpr(s.Value)
		}
		if name, ok := s.Target.(*syntax.Name); ok {
			kind := semantic.Assignment
			if s.Value == nil && !c.stub() {
				// Annotation without a value declares without binding:
				// a later redeclaration is a delayed annotation, not a
				// redefinition.
				kind = semantic.Annotation
			}
			c.model.AddBinding(name.ID, name.Range, kind, 0)
		} else {
			c.bindTarget(s.Target, semantic.Assignment, 0)
		}

	case *syntax.FunctionDef:
		c.visitFunctionDef(s)

	case *syntax.ClassDef:
		c.visitClassDef(s)

	case *syntax.Return:
		c.visitExpr(s.Value)

	case *syntax.Delete:
		for _, target := range s.Targets {
			if name, ok := target.(*syntax.Name); ok {
				c.model.ResolveDelete(name.ID, name.Range)
			} else {
				c.visitExpr(target)
			}
		}

	case *syntax.For:
		c.visitExpr(s.Iter)
		c.bindTarget(s.Target, semantic.LoopVar, 0)
		c.visitBody(s.Body)
		c.visitBody(s.Orelse)

	case *syntax.While:
		c.visitBooleanTest(s.Cond)
		c.visitBody(s.Body)
		c.visitBody(s.Orelse)

	case *syntax.If:
		c.visitBooleanTest(s.Cond)
		prev := c.model.PushBranch()
		c.visitBody(s.Body)
		c.model.RestoreBranch(prev)
		if len(s.Orelse) > 0 {
			prev = c.model.PushBranch()
			c.visitBody(s.Orelse)
			c.model.RestoreBranch(prev)
		}

	case *syntax.With:
		for _, item := range s.Items {
			c.visitExpr(item.Ctx)
			if item.Vars != nil {
				c.bindTarget(item.Vars, semantic.WithItemVar, 0)
			}
		}
		c.visitBody(s.Body)

	case *syntax.Try:
		// The try body and the else clause are one logical branch;
		// each handler is its own.
		c.visitBody(s.Body)
		for _, h := range s.Handlers {
			c.visitExceptHandler(h)
		}
		c.visitBody(s.Orelse)
		c.visitBody(s.Final)

	case *syntax.Raise:
		c.visitExpr(s.Exc)
		c.visitExpr(s.Cause)

	case *syntax.Assert:
		c.visitBooleanTest(s.Test)
		c.visitExpr(s.Msg)

	case *syntax.Import:
		c.visitImport(s)

	case *syntax.ImportFrom:
		c.visitImportFrom(s)

	case *syntax.Global:
		c.visitGlobal(s)

	case *syntax.Nonlocal:
		c.visitNonlocal(s)

	case *syntax.Match:
		c.visitExpr(s.Subject)
		for _, mc := range s.Cases {
			prev := c.model.PushBranch()
			c.bindPattern(mc.Pattern)
			if mc.Guard != nil {
				c.visitBooleanTest(mc.Guard)
			}
			c.visitBody(mc.Body)
			c.model.RestoreBranch(prev)
		}

	case *syntax.Pass, *syntax.Break, *syntax.Continue:
		// nothing to bind

	default:
		panic(stmt) // unreachable: checker out of sync with syntax
	}

	c.docstring.after(stmt, c.model.CurrentScope().Kind)
	c.runHooks(stmt)

	// Restore the context flags, keeping bits a statement sets for the
	// rest of the file.
	c.model.Flags = saved | (c.model.Flags & semantic.FutureAnnotations)
	c.leaveNode()
}

func (c *Checker) visitFunctionDef(s *syntax.FunctionDef) {
	// Decorators and parameter defaults execute at definition time, in
	// the enclosing scope.
	for _, dec := range s.Decorators {
		c.visitExpr(dec)
	}
	c.model.AddBinding(s.Name.Name, s.Name.Range, semantic.FunctionDefinition, 0)

	typeParams := len(s.TypeParams) > 0
	if typeParams {
		c.model.PushScope(semantic.TypeParamScope)
		c.bindTypeParams(s.TypeParams)
	}

	for _, p := range s.Params.All() {
		if p.Default != nil {
			c.visitExpr(p.Default)
		}
		if p.Annotation != nil {
			c.visitAnnotation(p.Annotation, c.classifyAnnotation(p.Annotation))
		}
	}
	if s.Returns != nil {
		c.visitAnnotation(s.Returns, c.classifyAnnotation(s.Returns))
	}

	c.model.PushScope(semantic.FunctionScope)
	for _, p := range s.Params.All() {
		c.model.AddBinding(p.Name.Name, p.Name.Range, semantic.Argument, 0)
	}
	// The body is never traversed inline: names defined later in the
	// enclosing scope must be visible to it.
	c.deferred.functions = append(c.deferred.functions, deferredNode{
		node:     s,
		snapshot: c.model.Snapshot(),
		stack:    c.stackCopy(),
	})
	c.model.PopScope() // analyzed when the deferred body completes

	if typeParams {
		c.closeScope(c.model.PopScope())
	}
}

func (c *Checker) visitClassDef(s *syntax.ClassDef) {
	for _, dec := range s.Decorators {
		c.visitExpr(dec)
	}

	typeParams := len(s.TypeParams) > 0
	if typeParams {
		c.model.PushScope(semantic.TypeParamScope)
		c.bindTypeParams(s.TypeParams)
	}

	if c.stub() {
		// Forward references are legal in stub class bases.
		c.deferred.classBases = append(c.deferred.classBases, deferredNode{
			node:     s,
			snapshot: c.model.Snapshot(),
			stack:    c.stackCopy(),
		})
	} else {
		saved := c.model.Flags
		c.model.Flags |= semantic.InTypeDefinition
		for _, base := range s.Bases {
			c.visitExpr(base)
		}
		c.model.Flags = saved
	}
	for _, kw := range s.Keywords {
		c.visitExpr(kw.Value)
	}

	savedDataclass := c.inDataclass
	c.inDataclass = hasDataclassDecorator(s.Decorators)
	c.model.PushScope(semantic.ClassScope)
	c.docstring.expect = expectClass
	c.visitBody(s.Body)
	// A trailing attribute assignment must not arm the expectation for
	// the statement after the class.
	c.docstring.expect = expectNone
	c.closeScope(c.model.PopScope())
	c.inDataclass = savedDataclass

	if typeParams {
		c.closeScope(c.model.PopScope())
	}

	// The class name becomes visible only after the body has executed.
	c.model.AddBinding(s.Name.Name, s.Name.Range, semantic.ClassDefinition, 0)
}

func (c *Checker) bindTypeParams(params []syntax.TypeParam) {
	for _, tp := range params {
		var name syntax.Ident
		var deferBound bool
		switch t := tp.(type) {
		case *syntax.TypeVar:
			name, deferBound = t.Name, t.Bound != nil || t.Default != nil
		case *syntax.TypeVarTuple:
			name, deferBound = t.Name, t.Default != nil
		case *syntax.ParamSpec:
			name, deferBound = t.Name, t.Default != nil
		}
		c.model.AddBinding(name.Name, name.Range, semantic.TypeParamDefinition, 0)
		if deferBound {
			// Bounds and defaults may forward-reference later names.
			c.deferred.typeParams = append(c.deferred.typeParams, deferredNode{
				node:     tp,
				snapshot: c.model.Snapshot(),
				stack:    c.stackCopy(),
			})
		}
	}
}

func (c *Checker) visitExceptHandler(h *syntax.ExceptHandler) {
	c.enterNode(h)
	prev := c.model.PushBranch()
	saved := c.model.Flags
	c.model.Flags |= semantic.InExceptionHandler

	if h.Type != nil {
		c.visitExpr(h.Type)
	}
	if h.Name != nil {
		c.model.AddBinding(h.Name.Name, h.Name.Range, semantic.BoundException, 0)
	}
	c.visitBody(h.Body)
	if h.Name != nil {
		// The exception name is implicitly deleted when the handler
		// exits; later reads must report it unbound.
		c.model.AddBinding(h.Name.Name, h.Name.Range, semantic.UnboundException, 0)
	}

	c.model.Flags = saved
	c.model.RestoreBranch(prev)
	c.runHooks(h)
	c.leaveNode()
}

func (c *Checker) visitImport(s *syntax.Import) {
	if c.importBoundary && c.model.Current() == semantic.ModuleScopeID {
		c.Report(CodeLateImport, s.Range, "module level import not at top of file")
	}
	for _, a := range s.Names {
		top, _, dotted := strings.Cut(a.Name.Name, ".")
		c.seenModules[top] = true
		switch {
		case a.AsName != nil:
			flags := semantic.External | semantic.Aliased
			if a.AsName.Name == a.Name.Name {
				flags |= semantic.ExplicitExport
			}
			c.model.AddBinding(a.AsName.Name, a.AsName.Range, semantic.Import, flags)
		case dotted:
			// "import a.b" binds the top-level package name only.
			c.model.AddBinding(top, a.Name.Range, semantic.SubmoduleImport, semantic.External)
		default:
			c.model.AddBinding(a.Name.Name, a.Name.Range, semantic.Import, semantic.External)
		}
	}
}

func (c *Checker) visitImportFrom(s *syntax.ImportFrom) {
	if s.Module != nil && s.Module.Name == "__future__" && s.Level == 0 {
		for _, a := range s.Names {
			c.model.AddBinding(a.Name.Name, a.Name.Range, semantic.FutureImport, semantic.External)
			if a.Name.Name == "annotations" {
				c.futures = true
				c.model.Flags |= semantic.FutureAnnotations
			}
		}
		return
	}

	if c.importBoundary && c.model.Current() == semantic.ModuleScopeID {
		c.Report(CodeLateImport, s.Range, "module level import not at top of file")
	}
	module := ""
	if s.Module != nil {
		module = s.Module.Name
		top, _, _ := strings.Cut(module, ".")
		c.seenModules[top] = true
	}
	for _, a := range s.Names {
		if a.Name.Name == "*" {
			// Resolution in this scope is now optimistic: unknown
			// names downgrade to "possibly undefined".
			c.model.CurrentScope().AddStarImport(semantic.StarImport{Module: module, Level: s.Level})
			continue
		}
		flags := semantic.External
		name, rng := a.Name.Name, a.Name.Range
		if a.AsName != nil {
			flags |= semantic.Aliased
			if a.AsName.Name == a.Name.Name {
				flags |= semantic.ExplicitExport
			}
			name, rng = a.AsName.Name, a.AsName.Range
		}
		c.model.AddBinding(name, rng, semantic.FromImport, flags)
	}
}

// visitGlobal binds each name as a redirection to the module scope.
// Binding creation and scope registration are decoupled here: the
// redirect binding lands in the current scope's name map while its
// target lives at module level.
func (c *Checker) visitGlobal(s *syntax.Global) {
	if c.model.Current() == semantic.ModuleScopeID {
		return // global at module level is a no-op
	}
	for i := range s.Names {
		n := &s.Names[i]
		id := c.model.PushBinding(n.Name, n.Range, semantic.GlobalRedirect, 0)
		if target, ok := c.model.GlobalScope().Get(n.Name); ok {
			c.model.BindingByID(id).Redirect = target
		}
		c.model.Register(n.Name, c.model.Current(), id)
	}
}

// visitNonlocal binds each name as a redirection to the nearest
// enclosing function scope that defines it. A nonlocal with no matching
// outer binding silently produces no binding: one malformed scope must
// never fail the run.
func (c *Checker) visitNonlocal(s *syntax.Nonlocal) {
	for i := range s.Names {
		n := &s.Names[i]
		target := semantic.NoBinding
		for sid := c.model.CurrentScope().Parent; sid != semantic.NoScope && sid != semantic.ModuleScopeID; sid = c.model.ScopeByID(sid).Parent {
			scope := c.model.ScopeByID(sid)
			if scope.Kind != semantic.FunctionScope && scope.Kind != semantic.LambdaScope {
				continue
			}
			if id, ok := scope.Get(n.Name); ok {
				target = id
				break
			}
		}
		if target == semantic.NoBinding {
			continue
		}
		id := c.model.PushBinding(n.Name, n.Range, semantic.NonlocalRedirect, 0)
		c.model.BindingByID(id).Redirect = target
		c.model.Register(n.Name, c.model.Current(), id)
	}
}

// bindTarget binds an assignment target. kind is the binding kind
// implied by the target's syntactic position; the walrus context
// overrides it, and unpacking recursion adds the unpacked flag.
func (c *Checker) bindTarget(target syntax.Expr, kind semantic.BindingKind, flags semantic.BindingFlags) {
	switch t := target.(type) {
	case *syntax.Name:
		if c.model.Flags.Has(semantic.InNamedExprAssignment) {
			kind = semantic.NamedExprAssignment
		}
		c.model.AddBinding(t.ID, t.Range, kind, flags)
	case *syntax.Tuple:
		for _, elt := range t.Elts {
			c.bindTarget(elt, kind, flags|semantic.UnpackedAssignment)
		}
	case *syntax.List:
		for _, elt := range t.Elts {
			c.bindTarget(elt, kind, flags|semantic.UnpackedAssignment)
		}
	case *syntax.Starred:
		c.bindTarget(t.X, kind, flags|semantic.UnpackedAssignment)
	case *syntax.Attribute:
		c.visitExpr(t.X)
	case *syntax.Subscript:
		c.visitExpr(t.X)
		c.visitExpr(t.Index)
	default:
		c.visitExpr(target)
	}
}

func (c *Checker) bindPattern(p syntax.Pattern) {
	switch p := p.(type) {
	case *syntax.MatchValue:
		c.visitExpr(p.Value)
	case *syntax.MatchSingleton:
		// literal, nothing to resolve
	case *syntax.MatchSequence:
		for _, sub := range p.Patterns {
			c.bindPattern(sub)
		}
	case *syntax.MatchMapping:
		for _, key := range p.Keys {
			c.visitExpr(key)
		}
		for _, sub := range p.Patterns {
			c.bindPattern(sub)
		}
		if p.Rest != nil {
			c.model.AddBinding(p.Rest.Name, p.Rest.Range, semantic.Assignment, semantic.UnpackedAssignment)
		}
	case *syntax.MatchClass:
		c.visitExpr(p.Cls)
		for _, sub := range p.Patterns {
			c.bindPattern(sub)
		}
		for _, sub := range p.KwdPatterns {
			c.bindPattern(sub)
		}
	case *syntax.MatchStar:
		if p.Name != nil {
			c.model.AddBinding(p.Name.Name, p.Name.Range, semantic.Assignment, semantic.UnpackedAssignment)
		}
	case *syntax.MatchAs:
		if p.Pattern != nil {
			c.bindPattern(p.Pattern)
		}
		if p.Name != nil {
			c.model.AddBinding(p.Name.Name, p.Name.Range, semantic.Assignment, 0)
		}
	case *syntax.MatchOr:
		for _, sub := range p.Patterns {
			c.bindPattern(sub)
		}
	default:
		panic(p) // unreachable
	}
}

func (c *Checker) visitExpr(e syntax.Expr) {
	if e == nil {
		return
	}
	c.enterNode(e)

	switch n := e.(type) {
	case *syntax.Name:
		c.model.ResolveLoad(n.ID, n.Range)
		if isDynamicScopeCall(n.ID) {
			c.model.CurrentScope().UsesDynamicLocals = true
		}

	case *syntax.NamedExpr:
		c.visitExpr(n.Value)
		saved := c.model.Flags
		c.model.Flags |= semantic.InNamedExprAssignment
		c.bindTarget(n.Target, semantic.NamedExprAssignment, 0)
		c.model.Flags = saved

	case *syntax.Lambda:
		for _, p := range n.Params.All() {
			if p.Default != nil {
				c.visitExpr(p.Default)
			}
		}
		c.model.PushScope(semantic.LambdaScope)
		for _, p := range n.Params.All() {
			c.model.AddBinding(p.Name.Name, p.Name.Range, semantic.Argument, 0)
		}
		c.deferred.lambdas = append(c.deferred.lambdas, deferredNode{
			node:     n,
			snapshot: c.model.Snapshot(),
			stack:    c.stackCopy(),
		})
		c.model.PopScope()

	case *syntax.ListComp:
		c.visitComprehension(n.Clauses, func() { c.visitExpr(n.Elt) })
	case *syntax.SetComp:
		c.visitComprehension(n.Clauses, func() { c.visitExpr(n.Elt) })
	case *syntax.GeneratorExp:
		c.visitComprehension(n.Clauses, func() { c.visitExpr(n.Elt) })
	case *syntax.DictComp:
		c.visitComprehension(n.Clauses, func() {
			c.visitExpr(n.Key)
			c.visitExpr(n.Value)
		})

	case *syntax.Call:
		c.visitExpr(n.Func)
		for _, arg := range n.Args {
			c.visitExpr(arg)
		}
		for _, kw := range n.Keywords {
			c.visitExpr(kw.Value)
		}
		c.checkDunderAllCall(n)

	case *syntax.Attribute:
		c.visitExpr(n.X)

	case *syntax.Subscript:
		c.visitExpr(n.X)
		c.visitSubscriptIndex(n)

	case *syntax.StringLiteral:
		if c.model.Flags&(semantic.InRuntimeAnnotation|semantic.InTypingOnlyAnnotation) != 0 {
			// A string in annotation position is a forward-reference
			// candidate: re-parsed and resolved in a later round.
			c.deferStringAnnotation(n)
		}

	case *syntax.FString:
		saved := c.model.Flags
		c.model.Flags |= semantic.InFString
		for _, part := range n.Parts {
			c.visitExpr(part)
		}
		c.model.Flags = saved

	case *syntax.FormattedValue:
		c.visitExpr(n.Value)
		c.visitExpr(n.Spec)

	case *syntax.BoolOp:
		saved := c.model.Flags
		c.model.Flags |= semantic.InBooleanTest
		for _, v := range n.Values {
			c.visitExpr(v)
		}
		c.model.Flags = saved

	case *syntax.BinOp:
		c.visitExpr(n.X)
		c.visitExpr(n.Y)

	case *syntax.UnaryOp:
		if n.Op == "not" {
			c.visitBooleanTest(n.X)
		} else {
			c.visitExpr(n.X)
		}

	case *syntax.Compare:
		c.visitExpr(n.X)
		for _, cmp := range n.Comparators {
			c.visitExpr(cmp)
		}

	case *syntax.IfExp:
		c.visitBooleanTest(n.Cond)
		c.visitExpr(n.True)
		c.visitExpr(n.False)

	case *syntax.Dict:
		for i, key := range n.Keys {
			c.visitExpr(key) // nil key is a **unpacking
			c.visitExpr(n.Values[i])
		}

	case *syntax.Set:
		for _, elt := range n.Elts {
			c.visitExpr(elt)
		}
	case *syntax.List:
		for _, elt := range n.Elts {
			c.visitExpr(elt)
		}
	case *syntax.Tuple:
		for _, elt := range n.Elts {
			c.visitExpr(elt)
		}

	case *syntax.Starred:
		c.visitExpr(n.X)

	case *syntax.Slice:
		c.visitExpr(n.Lo)
		c.visitExpr(n.Hi)
		c.visitExpr(n.Step)

	case *syntax.Await:
		c.visitExpr(n.X)
	case *syntax.Yield:
		c.visitExpr(n.Value)
	case *syntax.YieldFrom:
		c.visitExpr(n.Value)

	case *syntax.NumberLiteral, *syntax.BoolLiteral, *syntax.NoneLiteral,
		*syntax.EllipsisLiteral:
		// leaves

	default:
		panic(e) // unreachable: checker out of sync with syntax
	}

	c.runHooks(e)
	c.leaveNode()
}

// visitSubscriptIndex visits the index of a subscript. Inside an
// annotation, Literal[...] arguments are values, not forward
// references, so the annotation context is cleared for them.
func (c *Checker) visitSubscriptIndex(n *syntax.Subscript) {
	if c.model.Flags&(semantic.InRuntimeAnnotation|semantic.InTypingOnlyAnnotation) != 0 &&
		c.isTypingName(n.X, "Literal") {
		saved := c.model.Flags
		c.model.Flags &^= semantic.InRuntimeAnnotation | semantic.InTypingOnlyAnnotation
		c.visitExpr(n.Index)
		c.model.Flags = saved
		return
	}
	c.visitExpr(n.Index)
}

func (c *Checker) visitBooleanTest(e syntax.Expr) {
	if e == nil {
		return
	}
	saved := c.model.Flags
	c.model.Flags |= semantic.InBooleanTest
	c.visitExpr(e)
	c.model.Flags = saved
}

// visitComprehension pushes the synthetic generator scope. The iterable
// of the first clause evaluates in the enclosing scope; everything else
// is scoped to the nested function.
func (c *Checker) visitComprehension(clauses []*syntax.Comprehension, visitElt func()) {
	first := clauses[0]
	c.visitExpr(first.Iter)

	c.model.PushScope(semantic.GeneratorScope)
	c.bindTarget(first.Target, semantic.LoopVar, 0)
	for _, cond := range first.Ifs {
		c.visitBooleanTest(cond)
	}
	for _, clause := range clauses[1:] {
		c.visitExpr(clause.Iter)
		c.bindTarget(clause.Target, semantic.LoopVar, 0)
		for _, cond := range clause.Ifs {
			c.visitBooleanTest(cond)
		}
	}
	visitElt()
	c.closeScope(c.model.PopScope())
}

func (c *Checker) stackCopy() []syntax.Node {
	return append([]syntax.Node(nil), c.nodes...)
}

func (c *Checker) trackImportBoundary(stmt syntax.Stmt, isDocstring bool) {
	// A notebook cell boundary resets the latch.
	if c.settings != nil {
		for c.cellIdx < len(c.settings.CellOffsets) &&
			stmt.Span().Start >= c.settings.CellOffsets[c.cellIdx] {
			c.importBoundary = false
			c.cellIdx++
		}
	}
	switch stmt.(type) {
	case *syntax.Import, *syntax.ImportFrom:
	case *syntax.If, *syntax.Try:
		// guarded imports are conventional before other code
	case *syntax.ExprStmt:
		if !isDocstring {
			c.importBoundary = true
		}
	default:
		c.importBoundary = true
	}
}

func isDynamicScopeCall(name string) bool {
	switch name {
	case "locals", "vars", "eval", "exec", "globals":
		return true
	}
	return false
}

func hasDataclassDecorator(decorators []syntax.Expr) bool {
	for _, dec := range decorators {
		if call, ok := dec.(*syntax.Call); ok {
			dec = call.Func
		}
		switch d := dec.(type) {
		case *syntax.Name:
			if d.ID == "dataclass" {
				return true
			}
		case *syntax.Attribute:
			if d.Attr.Name == "dataclass" {
				return true
			}
		}
	}
	return false
}
