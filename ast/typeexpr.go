package ast

import (
	"strings"

	"github.com/pontaoski/melbi/types"
)

// TypeExpr is a type annotation: the right side of `as`, a Record field
// type, or a type-application argument.
type TypeExpr interface {
	Span() types.Span
	isType()
}

type TypeField struct {
	Name Ident
	Type TypeExpr
}

// RecordType is `Record[name: Type, ...]`; the field list may be empty.
type RecordType struct {
	Fields []TypeField
	Loc    types.Span
}

func (v RecordType) isType()          {}
func (v RecordType) Span() types.Span { return v.Loc }

// TypeRef is a type application: a dotted path name with optional bracketed
// type arguments, like `Int`, `collections.Set`, or `Map[String, Int]`.
// Args is nil when no bracket list was written.
type TypeRef struct {
	Path []string
	Args []TypeExpr
	Loc  types.Span
}

func (v TypeRef) isType()          {}
func (v TypeRef) Span() types.Span { return v.Loc }

func (v TypeRef) Name() string {
	return strings.Join(v.Path, ".")
}
