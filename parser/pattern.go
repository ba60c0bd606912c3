package parser

import (
	"github.com/pontaoski/melbi/ast"
	"github.com/pontaoski/melbi/errors"
	"github.com/pontaoski/melbi/types"
)

// parsePattern parses one match-arm pattern: a literal, the wildcard `_`,
// an option pattern (`none` or `some` with a nested pattern), a capturing
// variable, or any of those parenthesized. Records, arrays and maps are
// not patterns.
func (p *Parser) parsePattern() ast.Pattern {
	p.enter()
	defer p.leave()

	tok := p.cur()
	switch tok.Kind {
	case types.BOOL:
		p.advance()
		return ast.LiteralPattern{
			Value: ast.BoolLit{Value: tok.Lexeme == "true", Loc: tok.Location},
			Loc:   tok.Location,
		}
	case types.INT, types.FLOAT:
		lit := p.parseNumber()
		return ast.LiteralPattern{Value: lit, Loc: lit.Span()}
	case types.MINUS:
		minus := p.advance()
		if !p.at(types.INT) && !p.at(types.FLOAT) {
			panic(errors.ExpectedPattern{Got: p.cur()})
		}
		lit := negated(minus, p.parseNumber())
		return ast.LiteralPattern{Value: lit, Loc: lit.Span()}
	case types.STRING:
		p.advance()
		return ast.LiteralPattern{
			Value: ast.StringLit{Value: tok.Lexeme, Loc: tok.Location},
			Loc:   tok.Location,
		}
	case types.BYTES:
		p.advance()
		return ast.LiteralPattern{
			Value: ast.BytesLit{Value: []byte(tok.Lexeme), Loc: tok.Location},
			Loc:   tok.Location,
		}
	case types.NONE:
		p.advance()
		return ast.NonePattern{Loc: tok.Location}
	case types.SOME:
		p.advance()
		elem := p.parsePattern()
		return ast.SomePattern{Elem: elem, Loc: tok.Location.Merge(elem.Span())}
	case types.IDENT:
		p.advance()
		if tok.Lexeme == "_" {
			return ast.WildcardPattern{Loc: tok.Location}
		}
		return ast.VarPattern{Name: tok.Lexeme, Loc: tok.Location}
	case types.LPAREN:
		open := p.advance()
		inner := p.parsePattern()
		end := p.expect(types.RPAREN)
		return ast.GroupPattern{Inner: inner, Loc: open.Location.Merge(end.Location)}
	}
	panic(errors.ExpectedPattern{Got: tok})
}

// negated folds a leading minus into the numeric literal it precedes.
// Patterns have no unary operators, so a signed literal is one literal.
func negated(minus types.Token, lit ast.Expr) ast.Expr {
	switch v := lit.(type) {
	case ast.IntLit:
		v.Value = -v.Value
		v.Loc = minus.Location.Merge(v.Loc)
		return v
	case ast.FloatLit:
		v.Value = -v.Value
		v.Loc = minus.Location.Merge(v.Loc)
		return v
	}
	return lit
}
