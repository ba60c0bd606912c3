package parser

import (
	"github.com/pontaoski/melbi/ast"
	"github.com/pontaoski/melbi/errors"
	"github.com/pontaoski/melbi/types"
)

// parseTypeExpr parses a type annotation. Brackets after a name in type
// position are always type arguments, never indexing; the expression
// grammar only reaches here on the right side of `as` and inside other
// type expressions.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	p.enter()
	defer p.leave()

	if !p.at(types.IDENT) {
		panic(errors.ExpectedType{Got: p.cur()})
	}
	name := p.advance()

	if name.Lexeme == "Record" && p.at(types.LBRACKET) {
		return p.parseRecordType(name)
	}

	path := []string{name.Lexeme}
	loc := name.Location
	for p.at(types.PERIOD) {
		p.advance()
		seg := p.expect(types.IDENT)
		path = append(path, seg.Lexeme)
		loc = loc.Merge(seg.Location)
	}

	var args []ast.TypeExpr
	if p.at(types.LBRACKET) {
		p.advance()
		for {
			args = append(args, p.parseTypeExpr())
			if p.at(types.COMMA) {
				p.advance()
				continue
			}
			break
		}
		end := p.expect(types.RBRACKET)
		loc = loc.Merge(end.Location)
	}

	return ast.TypeRef{Path: path, Args: args, Loc: loc}
}

// parseRecordType parses `Record[name: Type, ...]`; the field list may be
// empty.
func (p *Parser) parseRecordType(start types.Token) ast.TypeExpr {
	p.expect(types.LBRACKET)

	var fields []ast.TypeField
	for !p.at(types.RBRACKET) {
		name := p.expect(types.IDENT)
		p.expect(types.COLON)
		typ := p.parseTypeExpr()
		fields = append(fields, ast.TypeField{
			Name: ast.Ident{Name: name.Lexeme, Loc: name.Location},
			Type: typ,
		})
		if p.at(types.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end := p.expect(types.RBRACKET)
	return ast.RecordType{Fields: fields, Loc: start.Location.Merge(end.Location)}
}
