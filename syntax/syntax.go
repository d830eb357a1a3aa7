// Copyright 2023 The Pycheck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax defines the Python abstract syntax tree consumed by the
// checker. The tree is produced by an external parser front end; this
// package defines only the node types, their source ranges, and a generic
// walker. Node positions are byte offsets into the original file, so a
// single integer pair suffices for every node.
package syntax

// A Node is a node in a Python syntax tree.
type Node interface {
	// Span returns the byte range covered by the node.
	Span() Range
}

// A Range is a half-open byte-offset interval [Start, End) in the source.
type Range struct {
	Start, End int
}

// Add returns the range displaced by base bytes.
// It is used to re-base sub-trees parsed from string annotation literals.
func (r Range) Add(base int) Range { return Range{r.Start + base, r.End + base} }

// Contains reports whether offset lies within the range.
func (r Range) Contains(offset int) bool { return r.Start <= offset && offset < r.End }

// Len returns the number of bytes covered.
func (r Range) Len() int { return r.End - r.Start }

// An Ident is an identifier occurrence that is not itself an expression:
// a definition name, import alias, parameter name, keyword-argument name,
// or exception name. Loads and stores of variables use *Name.
type Ident struct {
	Range Range
	Name  string
}

func (x *Ident) Span() Range { return x.Range }

// A Module is the root of the tree for one source file.
type Module struct {
	Range Range
	Body  []Stmt
}

func (x *Module) Span() Range { return x.Range }

// A Stmt is a Python statement.
type Stmt interface {
	Node
	stmt()
}

func (*AnnAssign) stmt()   {}
func (*Assert) stmt()      {}
func (*Assign) stmt()      {}
func (*AugAssign) stmt()   {}
func (*Break) stmt()       {}
func (*ClassDef) stmt()    {}
func (*Continue) stmt()    {}
func (*Delete) stmt()      {}
func (*ExprStmt) stmt()    {}
func (*For) stmt()         {}
func (*FunctionDef) stmt() {}
func (*Global) stmt()      {}
func (*If) stmt()          {}
func (*Import) stmt()      {}
func (*ImportFrom) stmt()  {}
func (*Match) stmt()       {}
func (*Nonlocal) stmt()    {}
func (*Pass) stmt()        {}
func (*Raise) stmt()       {}
func (*Return) stmt()      {}
func (*Try) stmt()         {}
func (*While) stmt()       {}
func (*With) stmt()        {}

// An ExprStmt is an expression evaluated for its side effects,
// including docstrings.
type ExprStmt struct {
	Range Range
	X     Expr
}

// An Assign is an assignment: x = y = value, with one or more targets.
type Assign struct {
	Range   Range
	Targets []Expr
	Value   Expr
}

// An AugAssign is an augmented assignment: x += value.
type AugAssign struct {
	Range  Range
	Target Expr
	Op     string // "+", "-", "*", ...
	Value  Expr
}

// An AnnAssign is an annotated assignment: x: T = value (value optional).
// Simple records whether the target is a plain unparenthesized name.
type AnnAssign struct {
	Range      Range
	Target     Expr
	Annotation Expr
	Value      Expr // may be nil
	Simple     bool
}

// A FunctionDef is a def statement (or async def).
type FunctionDef struct {
	Range      Range
	Name       Ident
	TypeParams []TypeParam
	Params     Parameters
	Returns    Expr // may be nil
	Body       []Stmt
	Decorators []Expr
	Async      bool
}

// A ClassDef is a class statement.
type ClassDef struct {
	Range      Range
	Name       Ident
	TypeParams []TypeParam
	Bases      []Expr
	Keywords   []*KeywordArg
	Body       []Stmt
	Decorators []Expr
}

// Parameters is the parameter list of a function or lambda.
type Parameters struct {
	Range   Range
	PosOnly []*Param // before /
	Args    []*Param
	VarArg  *Param // *args, may be nil
	KwOnly  []*Param
	KwArg   *Param // **kwargs, may be nil
}

func (x *Parameters) Span() Range { return x.Range }

// All returns every parameter in declaration order.
func (x *Parameters) All() []*Param {
	var all []*Param
	all = append(all, x.PosOnly...)
	all = append(all, x.Args...)
	if x.VarArg != nil {
		all = append(all, x.VarArg)
	}
	all = append(all, x.KwOnly...)
	if x.KwArg != nil {
		all = append(all, x.KwArg)
	}
	return all
}

// A Param is a single parameter, with optional annotation and default.
type Param struct {
	Range      Range
	Name       Ident
	Annotation Expr // may be nil
	Default    Expr // may be nil
}

func (x *Param) Span() Range { return x.Range }

// A Return statement.
type Return struct {
	Range Range
	Value Expr // may be nil
}

// A Delete statement: del x, y[0].
type Delete struct {
	Range   Range
	Targets []Expr
}

// A For statement (or async for).
type For struct {
	Range  Range
	Target Expr
	Iter   Expr
	Body   []Stmt
	Orelse []Stmt
	Async  bool
}

// A While statement.
type While struct {
	Range  Range
	Cond   Expr
	Body   []Stmt
	Orelse []Stmt
}

// An If statement. elif chains are nested If statements in Orelse.
type If struct {
	Range  Range
	Cond   Expr
	Body   []Stmt
	Orelse []Stmt
}

// A With statement (or async with).
type With struct {
	Range Range
	Items []*WithItem
	Body  []Stmt
	Async bool
}

// A WithItem is one "ctx as var" clause of a with statement.
type WithItem struct {
	Range Range
	Ctx   Expr
	Vars  Expr // may be nil
}

func (x *WithItem) Span() Range { return x.Range }

// A Try statement with handlers, else, and finally.
type Try struct {
	Range    Range
	Body     []Stmt
	Handlers []*ExceptHandler
	Orelse   []Stmt
	Final    []Stmt
	Star     bool // except* handlers
}

// An ExceptHandler is one except clause.
type ExceptHandler struct {
	Range Range
	Type  Expr   // may be nil (bare except)
	Name  *Ident // may be nil (no "as e")
	Body  []Stmt
}

func (x *ExceptHandler) Span() Range { return x.Range }

// A Raise statement.
type Raise struct {
	Range Range
	Exc   Expr // may be nil (bare raise)
	Cause Expr // may be nil ("from" clause)
}

// An Assert statement.
type Assert struct {
	Range Range
	Test  Expr
	Msg   Expr // may be nil
}

// An Import statement: import a.b, c as d.
type Import struct {
	Range Range
	Names []*Alias
}

// An ImportFrom statement: from .mod import a as b, *.
// A star import is an Alias whose Name is "*".
type ImportFrom struct {
	Range  Range
	Module *Ident // nil for "from . import x"
	Names  []*Alias
	Level  int // number of leading dots
}

// An Alias is one imported name with its optional binding name.
type Alias struct {
	Range  Range
	Name   Ident
	AsName *Ident // may be nil
}

func (x *Alias) Span() Range { return x.Range }

// A Global statement.
type Global struct {
	Range Range
	Names []Ident
}

// A Nonlocal statement.
type Nonlocal struct {
	Range Range
	Names []Ident
}

// A Match statement.
type Match struct {
	Range   Range
	Subject Expr
	Cases   []*MatchCase
}

// A MatchCase is one case clause of a match statement.
type MatchCase struct {
	Range   Range
	Pattern Pattern
	Guard   Expr // may be nil
	Body    []Stmt
}

func (x *MatchCase) Span() Range { return x.Range }

// Pass, Break and Continue statements.
type Pass struct{ Range Range }
type Break struct{ Range Range }
type Continue struct{ Range Range }

func (x *ExprStmt) Span() Range    { return x.Range }
func (x *Assign) Span() Range      { return x.Range }
func (x *AugAssign) Span() Range   { return x.Range }
func (x *AnnAssign) Span() Range   { return x.Range }
func (x *FunctionDef) Span() Range { return x.Range }
func (x *ClassDef) Span() Range    { return x.Range }
func (x *Return) Span() Range      { return x.Range }
func (x *Delete) Span() Range      { return x.Range }
func (x *For) Span() Range         { return x.Range }
func (x *While) Span() Range       { return x.Range }
func (x *If) Span() Range          { return x.Range }
func (x *With) Span() Range        { return x.Range }
func (x *Try) Span() Range         { return x.Range }
func (x *Raise) Span() Range       { return x.Range }
func (x *Assert) Span() Range      { return x.Range }
func (x *Import) Span() Range      { return x.Range }
func (x *ImportFrom) Span() Range  { return x.Range }
func (x *Global) Span() Range      { return x.Range }
func (x *Nonlocal) Span() Range    { return x.Range }
func (x *Match) Span() Range       { return x.Range }
func (x *Pass) Span() Range        { return x.Range }
func (x *Break) Span() Range       { return x.Range }
func (x *Continue) Span() Range    { return x.Range }

// An Expr is a Python expression.
type Expr interface {
	Node
	expr()
}

func (*Attribute) expr()       {}
func (*Await) expr()           {}
func (*BinOp) expr()           {}
func (*BoolLiteral) expr()     {}
func (*BoolOp) expr()          {}
func (*Call) expr()            {}
func (*Compare) expr()         {}
func (*Dict) expr()            {}
func (*DictComp) expr()        {}
func (*EllipsisLiteral) expr() {}
func (*FString) expr()         {}
func (*FormattedValue) expr()  {}
func (*GeneratorExp) expr()    {}
func (*IfExp) expr()           {}
func (*Lambda) expr()          {}
func (*List) expr()            {}
func (*ListComp) expr()        {}
func (*Name) expr()            {}
func (*NamedExpr) expr()       {}
func (*NoneLiteral) expr()     {}
func (*NumberLiteral) expr()   {}
func (*Set) expr()             {}
func (*SetComp) expr()         {}
func (*Slice) expr()           {}
func (*Starred) expr()         {}
func (*StringLiteral) expr()   {}
func (*Subscript) expr()       {}
func (*Tuple) expr()           {}
func (*UnaryOp) expr()         {}
func (*Yield) expr()           {}
func (*YieldFrom) expr()       {}

// A Name is a variable load, store, or delete site.
// Which of the three it is follows from its syntactic position.
type Name struct {
	Range Range
	ID    string
}

// An Attribute is a field selection: X.Attr.
type Attribute struct {
	Range Range
	X     Expr
	Attr  Ident
}

// A Subscript is an index expression: X[Index].
type Subscript struct {
	Range Range
	X     Expr
	Index Expr
}

// A Call expression: Func(Args, Keywords).
type Call struct {
	Range    Range
	Func     Expr
	Args     []Expr
	Keywords []*KeywordArg
}

// A KeywordArg is a keyword argument k=v, or **kwargs when Name is nil.
type KeywordArg struct {
	Range Range
	Name  *Ident
	Value Expr
}

func (x *KeywordArg) Span() Range { return x.Range }

// A Lambda expression.
type Lambda struct {
	Range  Range
	Params Parameters
	Body   Expr
}

// A NamedExpr is an assignment expression: Target := Value.
type NamedExpr struct {
	Range  Range
	Target *Name
	Value  Expr
}

// A BoolOp is a short-circuit chain: X and Y and Z.
type BoolOp struct {
	Range  Range
	Op     string // "and" | "or"
	Values []Expr
}

// A BinOp is a binary arithmetic expression.
type BinOp struct {
	Range Range
	X     Expr
	Op    string
	Y     Expr
}

// A UnaryOp is a unary expression: not X, -X, ~X.
type UnaryOp struct {
	Range Range
	Op    string
	X     Expr
}

// A Compare is a comparison chain: X < Y <= Z.
type Compare struct {
	Range       Range
	X           Expr
	Ops         []string
	Comparators []Expr
}

// An IfExp is a conditional expression: True if Cond else False.
type IfExp struct {
	Range Range
	Cond  Expr
	True  Expr
	False Expr
}

// A Dict literal. A nil key marks a **mapping unpacking entry.
type Dict struct {
	Range  Range
	Keys   []Expr
	Values []Expr
}

// A Set literal.
type Set struct {
	Range Range
	Elts  []Expr
}

// A List literal.
type List struct {
	Range Range
	Elts  []Expr
}

// A Tuple literal (possibly unparenthesized, as in assignment targets).
type Tuple struct {
	Range Range
	Elts  []Expr
}

// A Starred expression: *X, in calls and unpacking targets.
type Starred struct {
	Range Range
	X     Expr
}

// A Slice expression: Lo:Hi:Step inside a subscript.
type Slice struct {
	Range Range
	Lo    Expr // all optional
	Hi    Expr
	Step  Expr
}

// A Comprehension is one "for Target in Iter if Ifs..." clause.
type Comprehension struct {
	Range  Range
	Target Expr
	Iter   Expr
	Ifs    []Expr
	Async  bool
}

func (x *Comprehension) Span() Range { return x.Range }

// ListComp, SetComp, GeneratorExp and DictComp are comprehensions.
// All four introduce a synthetic nested scope; the iterable of the first
// clause evaluates in the enclosing scope.
type ListComp struct {
	Range   Range
	Elt     Expr
	Clauses []*Comprehension
}

type SetComp struct {
	Range   Range
	Elt     Expr
	Clauses []*Comprehension
}

type GeneratorExp struct {
	Range   Range
	Elt     Expr
	Clauses []*Comprehension
}

type DictComp struct {
	Range   Range
	Key     Expr
	Value   Expr
	Clauses []*Comprehension
}

// A StringLiteral is a string constant (after implicit concatenation).
type StringLiteral struct {
	Range Range
	Value string
}

// An FString is a formatted string literal; Parts alternate between
// *StringLiteral and *FormattedValue.
type FString struct {
	Range Range
	Parts []Expr
}

// A FormattedValue is one {expr:spec} replacement field of an f-string.
type FormattedValue struct {
	Range Range
	Value Expr
	Spec  Expr // may be nil
}

// A NumberLiteral is an int, float, or complex constant (uninterpreted).
type NumberLiteral struct {
	Range Range
	Value string
}

type BoolLiteral struct {
	Range Range
	Value bool
}

type NoneLiteral struct{ Range Range }
type EllipsisLiteral struct{ Range Range }

// An Await expression.
type Await struct {
	Range Range
	X     Expr
}

// A Yield expression.
type Yield struct {
	Range Range
	Value Expr // may be nil
}

// A YieldFrom expression.
type YieldFrom struct {
	Range Range
	Value Expr
}

func (x *Name) Span() Range            { return x.Range }
func (x *Attribute) Span() Range       { return x.Range }
func (x *Subscript) Span() Range       { return x.Range }
func (x *Call) Span() Range            { return x.Range }
func (x *Lambda) Span() Range          { return x.Range }
func (x *NamedExpr) Span() Range       { return x.Range }
func (x *BoolOp) Span() Range          { return x.Range }
func (x *BinOp) Span() Range           { return x.Range }
func (x *UnaryOp) Span() Range         { return x.Range }
func (x *Compare) Span() Range         { return x.Range }
func (x *IfExp) Span() Range           { return x.Range }
func (x *Dict) Span() Range            { return x.Range }
func (x *Set) Span() Range             { return x.Range }
func (x *List) Span() Range            { return x.Range }
func (x *Tuple) Span() Range           { return x.Range }
func (x *Starred) Span() Range         { return x.Range }
func (x *Slice) Span() Range           { return x.Range }
func (x *ListComp) Span() Range        { return x.Range }
func (x *SetComp) Span() Range         { return x.Range }
func (x *GeneratorExp) Span() Range    { return x.Range }
func (x *DictComp) Span() Range        { return x.Range }
func (x *StringLiteral) Span() Range   { return x.Range }
func (x *FString) Span() Range         { return x.Range }
func (x *FormattedValue) Span() Range  { return x.Range }
func (x *NumberLiteral) Span() Range   { return x.Range }
func (x *BoolLiteral) Span() Range     { return x.Range }
func (x *NoneLiteral) Span() Range     { return x.Range }
func (x *EllipsisLiteral) Span() Range { return x.Range }
func (x *Await) Span() Range           { return x.Range }
func (x *Yield) Span() Range           { return x.Range }
func (x *YieldFrom) Span() Range       { return x.Range }

// A Pattern is a match-statement pattern.
type Pattern interface {
	Node
	pattern()
}

func (*MatchAs) pattern()        {}
func (*MatchClass) pattern()     {}
func (*MatchMapping) pattern()   {}
func (*MatchOr) pattern()        {}
func (*MatchSequence) pattern()  {}
func (*MatchSingleton) pattern() {}
func (*MatchStar) pattern()      {}
func (*MatchValue) pattern()     {}

// A MatchValue matches by equality against a value expression.
type MatchValue struct {
	Range Range
	Value Expr
}

// A MatchSingleton matches None, True, or False by identity.
type MatchSingleton struct {
	Range Range
	Value Expr
}

// A MatchSequence matches a sequence of sub-patterns.
type MatchSequence struct {
	Range    Range
	Patterns []Pattern
}

// A MatchMapping matches mapping keys; Rest captures the remainder.
type MatchMapping struct {
	Range    Range
	Keys     []Expr
	Patterns []Pattern
	Rest     *Ident // may be nil
}

// A MatchClass matches by isinstance plus positional/keyword sub-patterns.
type MatchClass struct {
	Range       Range
	Cls         Expr
	Patterns    []Pattern
	KwdNames    []Ident
	KwdPatterns []Pattern
}

// A MatchStar captures the rest of a sequence; Name nil means "*_".
type MatchStar struct {
	Range Range
	Name  *Ident
}

// A MatchAs is a capture pattern, "P as name" or a bare "name"/"_".
type MatchAs struct {
	Range   Range
	Pattern Pattern // may be nil (bare capture)
	Name    *Ident  // nil for wildcard "_"
}

// A MatchOr is an alternation: P1 | P2.
type MatchOr struct {
	Range    Range
	Patterns []Pattern
}

func (x *MatchValue) Span() Range     { return x.Range }
func (x *MatchSingleton) Span() Range { return x.Range }
func (x *MatchSequence) Span() Range  { return x.Range }
func (x *MatchMapping) Span() Range   { return x.Range }
func (x *MatchClass) Span() Range     { return x.Range }
func (x *MatchStar) Span() Range      { return x.Range }
func (x *MatchAs) Span() Range        { return x.Range }
func (x *MatchOr) Span() Range        { return x.Range }

// A TypeParam is one entry of a PEP 695 type-parameter list.
type TypeParam interface {
	Node
	typeParam()
}

func (*TypeVar) typeParam()      {}
func (*TypeVarTuple) typeParam() {}
func (*ParamSpec) typeParam()    {}

// A TypeVar is "T", "T: bound", or "T = default".
type TypeVar struct {
	Range   Range
	Name    Ident
	Bound   Expr // may be nil
	Default Expr // may be nil
}

// A TypeVarTuple is "*Ts".
type TypeVarTuple struct {
	Range   Range
	Name    Ident
	Default Expr // may be nil
}

// A ParamSpec is "**P".
type ParamSpec struct {
	Range   Range
	Name    Ident
	Default Expr // may be nil
}

func (x *TypeVar) Span() Range      { return x.Range }
func (x *TypeVarTuple) Span() Range { return x.Range }
func (x *ParamSpec) Span() Range    { return x.Range }
