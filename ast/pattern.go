package ast

import (
	"github.com/pontaoski/melbi/types"
)

// Pattern is one match-arm pattern.
type Pattern interface {
	Span() types.Span
	isPattern()
}

// LiteralPattern matches a literal value. Value is always one of BoolLit,
// IntLit, FloatLit, StringLit or BytesLit.
type LiteralPattern struct {
	Value Expr
	Loc   types.Span
}

func (v LiteralPattern) isPattern()       {}
func (v LiteralPattern) Span() types.Span { return v.Loc }

type WildcardPattern struct {
	Loc types.Span
}

func (v WildcardPattern) isPattern()       {}
func (v WildcardPattern) Span() types.Span { return v.Loc }

type NonePattern struct {
	Loc types.Span
}

func (v NonePattern) isPattern()       {}
func (v NonePattern) Span() types.Span { return v.Loc }

type SomePattern struct {
	Elem Pattern
	Loc  types.Span
}

func (v SomePattern) isPattern()       {}
func (v SomePattern) Span() types.Span { return v.Loc }

// VarPattern binds the matched value to a name.
type VarPattern struct {
	Name string
	Loc  types.Span
}

func (v VarPattern) isPattern()       {}
func (v VarPattern) Span() types.Span { return v.Loc }

type GroupPattern struct {
	Inner Pattern
	Loc   types.Span
}

func (v GroupPattern) isPattern()       {}
func (v GroupPattern) Span() types.Span { return v.Loc }
