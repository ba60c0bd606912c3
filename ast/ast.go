package ast

import (
	"github.com/pontaoski/melbi/types"
)

// Expr is one Melbi expression node. Exactly one concrete variant exists
// per grammatical form; every node carries the span of the source text it
// was parsed from.
type Expr interface {
	Span() types.Span
	isExpr()
}

type Ident struct {
	Name string
	Loc  types.Span
}

func (v Ident) isExpr()          {}
func (v Ident) Span() types.Span { return v.Loc }

type IntLit struct {
	Value  int64
	Radix  int
	Suffix Expr // nil unless the literal carried a backtick suffix
	Loc    types.Span
}

func (v IntLit) isExpr()          {}
func (v IntLit) Span() types.Span { return v.Loc }

type FloatLit struct {
	Value  float64
	Suffix Expr
	Loc    types.Span
}

func (v FloatLit) isExpr()          {}
func (v FloatLit) Span() types.Span { return v.Loc }

type BoolLit struct {
	Value bool
	Loc   types.Span
}

func (v BoolLit) isExpr()          {}
func (v BoolLit) Span() types.Span { return v.Loc }

type NoneLit struct {
	Loc types.Span
}

func (v NoneLit) isExpr()          {}
func (v NoneLit) Span() types.Span { return v.Loc }

type StringLit struct {
	Value string
	Loc   types.Span
}

func (v StringLit) isExpr()          {}
func (v StringLit) Span() types.Span { return v.Loc }

type BytesLit struct {
	Value []byte
	Loc   types.Span
}

func (v BytesLit) isExpr()          {}
func (v BytesLit) Span() types.Span { return v.Loc }

// Segment is one piece of a format string: literal text or an embedded
// expression. Segments appear in source order.
type Segment interface {
	Span() types.Span
	isSegment()
}

type TextSegment struct {
	Value string
	Loc   types.Span
}

func (v TextSegment) isSegment()       {}
func (v TextSegment) Span() types.Span { return v.Loc }

type EmbedSegment struct {
	Expr Expr
	Loc  types.Span
}

func (v EmbedSegment) isSegment()       {}
func (v EmbedSegment) Span() types.Span { return v.Loc }

type FormatStringLit struct {
	Segments []Segment
	Loc      types.Span
}

func (v FormatStringLit) isExpr()          {}
func (v FormatStringLit) Span() types.Span { return v.Loc }

type FieldInit struct {
	Name  Ident
	Value Expr
}

// RecordLit is `{name: expr, ...}`. Empty is set for the explicit empty
// record `{}`, which would otherwise be indistinguishable from an empty
// map. Duplicate names are preserved in order; the parser does not
// deduplicate.
type RecordLit struct {
	Fields []FieldInit
	Empty  bool
	Loc    types.Span
}

func (v RecordLit) isExpr()          {}
func (v RecordLit) Span() types.Span { return v.Loc }

type ArrayLit struct {
	Elems []Expr
	Loc   types.Span
}

func (v ArrayLit) isExpr()          {}
func (v ArrayLit) Span() types.Span { return v.Loc }

type MapEntry struct {
	Key   Expr
	Value Expr
}

type MapLit struct {
	Entries []MapEntry
	Loc     types.Span
}

func (v MapLit) isExpr()          {}
func (v MapLit) Span() types.Span { return v.Loc }

type Unary struct {
	Op      UnaryOp
	Operand Expr
	Loc     types.Span
}

func (v Unary) isExpr()          {}
func (v Unary) Span() types.Span { return v.Loc }

type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Loc   types.Span
}

func (v Binary) isExpr()          {}
func (v Binary) Span() types.Span { return v.Loc }

type If struct {
	Cond Expr
	Then Expr
	Else Expr
	Loc  types.Span
}

func (v If) isExpr()          {}
func (v If) Span() types.Span { return v.Loc }

type Lambda struct {
	Params []Ident
	Body   Expr
	Loc    types.Span
}

func (v Lambda) isExpr()          {}
func (v Lambda) Span() types.Span { return v.Loc }

type Binding struct {
	Name  Ident
	Value Expr
}

// Where is `expr where {name: value, ...}`. Binding order is declaration
// order; shadowing semantics belong to whoever evaluates the tree.
type Where struct {
	Expr     Expr
	Bindings []Binding
	Loc      types.Span
}

func (v Where) isExpr()          {}
func (v Where) Span() types.Span { return v.Loc }

type Arm struct {
	Pattern Pattern
	Body    Expr
}

// Match is `expr match {pattern -> body, ...}`. Arms keep source order;
// first structural match wins at evaluation time.
type Match struct {
	Expr Expr
	Arms []Arm
	Loc  types.Span
}

func (v Match) isExpr()          {}
func (v Match) Span() types.Span { return v.Loc }

type Otherwise struct {
	Left  Expr
	Right Expr
	Loc   types.Span
}

func (v Otherwise) isExpr()          {}
func (v Otherwise) Span() types.Span { return v.Loc }

type Cast struct {
	Expr Expr
	Type TypeExpr
	Loc  types.Span
}

func (v Cast) isExpr()          {}
func (v Cast) Span() types.Span { return v.Loc }

type FieldAccess struct {
	Object Expr
	Name   Ident
	Loc    types.Span
}

func (v FieldAccess) isExpr()          {}
func (v FieldAccess) Span() types.Span { return v.Loc }

type Index struct {
	Object Expr
	Key    Expr
	Loc    types.Span
}

func (v Index) isExpr()          {}
func (v Index) Span() types.Span { return v.Loc }

type Call struct {
	Fn   Expr
	Args []Expr
	Loc  types.Span
}

func (v Call) isExpr()          {}
func (v Call) Span() types.Span { return v.Loc }

// Grouped wraps a parenthesized expression so the parenthesization keeps
// its own span for diagnostics.
type Grouped struct {
	Inner Expr
	Loc   types.Span
}

func (v Grouped) isExpr()          {}
func (v Grouped) Span() types.Span { return v.Loc }
