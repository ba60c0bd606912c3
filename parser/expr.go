package parser

import (
	"strconv"
	"strings"

	"github.com/pontaoski/melbi/ast"
	"github.com/pontaoski/melbi/errors"
	"github.com/pontaoski/melbi/types"
)

// parseExpression parses one expression whose operators all have a level
// of at least min. Left-associative operators recurse with level+1,
// right-associative ones with the level itself.
func (p *Parser) parseExpression(min int) ast.Expr {
	p.enter()
	defer p.leave()

	left := p.parsePrefix()

	for {
		tok := p.cur()
		switch tok.Kind {
		case types.WHERE:
			if levelPostBlock < min {
				return left
			}
			left = p.parseWhere(left)
		case types.MATCH:
			if levelPostBlock < min {
				return left
			}
			left = p.parseMatch(left)
		case types.OTHERWISE:
			if levelOtherwise < min {
				return left
			}
			p.advance()
			right := p.parseExpression(levelOtherwise)
			left = ast.Otherwise{
				Left:  left,
				Right: right,
				Loc:   left.Span().Merge(right.Span()),
			}
		case types.NOT:
			// `not` in infix position is only valid as `not in`.
			if levelCompare < min || p.peek().Kind != types.IN {
				return left
			}
			p.advance()
			p.advance()
			right := p.parseExpression(levelCompare + 1)
			left = ast.Binary{
				Op:    ast.BinNotIn,
				Left:  left,
				Right: right,
				Loc:   left.Span().Merge(right.Span()),
			}
		case types.LPAREN:
			if levelCall < min {
				return left
			}
			left = p.parseCall(left)
		case types.LBRACKET:
			if levelIndex < min {
				return left
			}
			left = p.parseIndex(left)
		case types.PERIOD:
			if levelField < min {
				return left
			}
			left = p.parseField(left)
		case types.AS:
			if levelCast < min {
				return left
			}
			p.advance()
			typ := p.parseTypeExpr()
			left = ast.Cast{
				Expr: left,
				Type: typ,
				Loc:  left.Span().Merge(typ.Span()),
			}
		default:
			info, ok := infixOps[tok.Kind]
			if !ok || info.level < min {
				return left
			}
			p.advance()
			next := info.level + 1
			if info.right {
				next = info.level
			}
			right := p.parseExpression(next)
			left = ast.Binary{
				Op:    info.op,
				Left:  left,
				Right: right,
				Loc:   left.Span().Merge(right.Span()),
			}
		}
	}
}

func (p *Parser) parsePrefix() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case types.IDENT, types.QUOTED:
		p.advance()
		return ast.Ident{Name: tok.Lexeme, Loc: tok.Location}
	case types.INT, types.FLOAT:
		return p.parseNumber()
	case types.BOOL:
		p.advance()
		return ast.BoolLit{Value: tok.Lexeme == "true", Loc: tok.Location}
	case types.NONE:
		p.advance()
		return ast.NoneLit{Loc: tok.Location}
	case types.STRING:
		p.advance()
		return ast.StringLit{Value: tok.Lexeme, Loc: tok.Location}
	case types.BYTES:
		p.advance()
		return ast.BytesLit{Value: []byte(tok.Lexeme), Loc: tok.Location}
	case types.FSTRINGSTART:
		return p.parseFormatString()
	case types.LBRACE:
		return p.parseBraceLiteral()
	case types.LBRACKET:
		return p.parseArrayLiteral()
	case types.LPAREN:
		return p.parseParenOrLambda()
	case types.IF:
		return p.parseIf()
	case types.NOT:
		p.advance()
		operand := p.parseExpression(levelNot)
		return ast.Unary{
			Op:      ast.UnaryNot,
			Operand: operand,
			Loc:     tok.Location.Merge(operand.Span()),
		}
	case types.MINUS:
		p.advance()
		operand := p.parseExpression(levelUnary)
		return ast.Unary{
			Op:      ast.UnaryNeg,
			Operand: operand,
			Loc:     tok.Location.Merge(operand.Span()),
		}
	case types.SOME:
		p.advance()
		operand := p.parseExpression(levelUnary)
		return ast.Unary{
			Op:      ast.UnarySome,
			Operand: operand,
			Loc:     tok.Location.Merge(operand.Span()),
		}
	}
	panic(errors.ExpectedExpression{Got: tok})
}

// parseNumber converts an INT or FLOAT token and attaches a backtick
// suffix expression when the lexer flagged immediate adjacency.
func (p *Parser) parseNumber() ast.Expr {
	tok := p.advance()

	var suffix ast.Expr
	loc := tok.Location
	if p.at(types.SUFFIXSTART) {
		p.advance()
		suffix = p.parseExpression(levelLambda)
		end := p.expect(types.SUFFIXEND)
		loc = loc.Merge(end.Location)
	}

	if tok.Kind == types.FLOAT {
		value, err := strconv.ParseFloat(stripSeparators(tok.Lexeme), 64)
		if err != nil {
			panic(errors.MalformedNumber{
				Literal:  tok.Lexeme,
				Reason:   "value not representable",
				Location: tok.Location.From,
			})
		}
		return ast.FloatLit{Value: value, Suffix: suffix, Loc: loc}
	}

	digits := stripSeparators(tok.Lexeme)
	radix := 10
	if len(digits) > 1 && digits[0] == '0' {
		switch digits[1] | 0x20 {
		case 'b':
			radix, digits = 2, digits[2:]
		case 'o':
			radix, digits = 8, digits[2:]
		case 'x':
			radix, digits = 16, digits[2:]
		}
	}
	value, err := strconv.ParseInt(digits, radix, 64)
	if err != nil {
		panic(errors.MalformedNumber{
			Literal:  tok.Lexeme,
			Reason:   "value not representable",
			Location: tok.Location.From,
		})
	}
	return ast.IntLit{Value: value, Radix: radix, Suffix: suffix, Loc: loc}
}

func stripSeparators(lexeme string) string {
	return strings.ReplaceAll(lexeme, "_", "")
}

func (p *Parser) parseFormatString() ast.Expr {
	start := p.expect(types.FSTRINGSTART)

	var segments []ast.Segment
	for {
		tok := p.cur()
		switch tok.Kind {
		case types.FSTRINGTEXT:
			p.advance()
			segments = append(segments, ast.TextSegment{Value: tok.Lexeme, Loc: tok.Location})
		case types.INTERPSTART:
			open := p.advance()
			expr := p.parseExpression(levelLambda)
			close := p.expect(types.INTERPEND)
			segments = append(segments, ast.EmbedSegment{
				Expr: expr,
				Loc:  open.Location.Merge(close.Location),
			})
		case types.FSTRINGEND:
			end := p.advance()
			return ast.FormatStringLit{
				Segments: segments,
				Loc:      start.Location.Merge(end.Location),
			}
		default:
			panic(errors.UnexpectedToken{
				Expected: []types.TokenKind{types.FSTRINGTEXT, types.INTERPSTART, types.FSTRINGEND},
				Got:      tok,
			})
		}
	}
}

// parseBraceLiteral parses `{...}` as a record or a map. `{}` is the
// explicit empty record. A first entry shaped `name :` makes it a record;
// anything else parses as map entries with expression keys, so a map with
// an identifier key needs grouping: `{(key): value}`.
func (p *Parser) parseBraceLiteral() ast.Expr {
	open := p.expect(types.LBRACE)

	if p.at(types.RBRACE) {
		close := p.advance()
		return ast.RecordLit{Empty: true, Loc: open.Location.Merge(close.Location)}
	}

	if p.at(types.IDENT) && p.peek().Kind == types.COLON {
		var fields []ast.FieldInit
		for {
			name := p.expect(types.IDENT)
			p.expect(types.COLON)
			value := p.parseExpression(levelLambda)
			fields = append(fields, ast.FieldInit{
				Name:  ast.Ident{Name: name.Lexeme, Loc: name.Location},
				Value: value,
			})
			if p.at(types.COMMA) {
				p.advance()
				if p.at(types.RBRACE) {
					break
				}
				continue
			}
			break
		}
		close := p.expect(types.RBRACE)
		return ast.RecordLit{Fields: fields, Loc: open.Location.Merge(close.Location)}
	}

	var entries []ast.MapEntry
	for {
		key := p.parseExpression(levelLambda)
		p.expect(types.COLON)
		value := p.parseExpression(levelLambda)
		entries = append(entries, ast.MapEntry{Key: key, Value: value})
		if p.at(types.COMMA) {
			p.advance()
			if p.at(types.RBRACE) {
				break
			}
			continue
		}
		break
	}
	close := p.expect(types.RBRACE)
	return ast.MapLit{Entries: entries, Loc: open.Location.Merge(close.Location)}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	open := p.expect(types.LBRACKET)

	var elems []ast.Expr
	for !p.at(types.RBRACKET) {
		elems = append(elems, p.parseExpression(levelLambda))
		if p.at(types.COMMA) {
			p.advance()
			continue
		}
		break
	}
	close := p.expect(types.RBRACKET)
	return ast.ArrayLit{Elems: elems, Loc: open.Location.Merge(close.Location)}
}

// parseParenOrLambda resolves the `(` ambiguity: first try a
// comma-separated identifier list followed by `) =>`; on any failure,
// rewind and parse a grouped expression instead. A bare `()` with no `=>`
// is an error since grouping requires a contained expression.
func (p *Parser) parseParenOrLambda() ast.Expr {
	mark := p.save()
	open := p.advance() // (

	if lambda, ok := p.tryLambda(open); ok {
		return lambda
	}
	p.restore(mark)

	open = p.advance()
	if p.at(types.RPAREN) {
		close := p.advance()
		panic(errors.EmptyGroup{Location: open.Location.Merge(close.Location)})
	}
	inner := p.parseExpression(levelLambda)
	close := p.expect(types.RPAREN)
	return ast.Grouped{Inner: inner, Loc: open.Location.Merge(close.Location)}
}

func (p *Parser) tryLambda(open types.Token) (ast.Expr, bool) {
	var params []ast.Ident
	if !p.at(types.RPAREN) {
		for {
			if !p.at(types.IDENT) {
				return nil, false
			}
			name := p.advance()
			params = append(params, ast.Ident{Name: name.Lexeme, Loc: name.Location})
			if p.at(types.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if !p.at(types.RPAREN) {
		return nil, false
	}
	p.advance()
	if !p.at(types.FATARROW) {
		return nil, false
	}
	p.advance()

	body := p.parseExpression(levelLambda)
	return ast.Lambda{
		Params: params,
		Body:   body,
		Loc:    open.Location.Merge(body.Span()),
	}, true
}

func (p *Parser) parseIf() ast.Expr {
	start := p.expect(types.IF)
	cond := p.parseExpression(levelIf)
	p.expect(types.THEN)
	then := p.parseExpression(levelIf)
	p.expect(types.ELSE)
	els := p.parseExpression(levelIf)
	return ast.If{
		Cond: cond,
		Then: then,
		Else: els,
		Loc:  start.Location.Merge(els.Span()),
	}
}

func (p *Parser) parseWhere(left ast.Expr) ast.Expr {
	p.expect(types.WHERE)
	p.expect(types.LBRACE)

	var bindings []ast.Binding
	for !p.at(types.RBRACE) {
		name := p.expect(types.IDENT)
		p.expect(types.COLON)
		value := p.parseExpression(levelLambda)
		bindings = append(bindings, ast.Binding{
			Name:  ast.Ident{Name: name.Lexeme, Loc: name.Location},
			Value: value,
		})
		if p.at(types.COMMA) {
			p.advance()
			continue
		}
		break
	}
	close := p.expect(types.RBRACE)
	return ast.Where{
		Expr:     left,
		Bindings: bindings,
		Loc:      left.Span().Merge(close.Location),
	}
}

func (p *Parser) parseMatch(left ast.Expr) ast.Expr {
	p.expect(types.MATCH)
	p.expect(types.LBRACE)

	var arms []ast.Arm
	for !p.at(types.RBRACE) {
		pattern := p.parsePattern()
		p.expect(types.ARROW)
		body := p.parseExpression(levelLambda)
		arms = append(arms, ast.Arm{Pattern: pattern, Body: body})
		if p.at(types.COMMA) {
			p.advance()
			continue
		}
		break
	}
	close := p.expect(types.RBRACE)
	return ast.Match{
		Expr: left,
		Arms: arms,
		Loc:  left.Span().Merge(close.Location),
	}
}

func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	p.expect(types.LPAREN)

	var args []ast.Expr
	for !p.at(types.RPAREN) {
		args = append(args, p.parseExpression(levelLambda))
		if p.at(types.COMMA) {
			p.advance()
			continue
		}
		break
	}
	close := p.expect(types.RPAREN)
	return ast.Call{
		Fn:   left,
		Args: args,
		Loc:  left.Span().Merge(close.Location),
	}
}

func (p *Parser) parseIndex(left ast.Expr) ast.Expr {
	p.expect(types.LBRACKET)
	key := p.parseExpression(levelLambda)
	close := p.expect(types.RBRACKET)
	return ast.Index{
		Object: left,
		Key:    key,
		Loc:    left.Span().Merge(close.Location),
	}
}

func (p *Parser) parseField(left ast.Expr) ast.Expr {
	p.expect(types.PERIOD)
	name := p.expect(types.IDENT, types.QUOTED)
	return ast.FieldAccess{
		Object: left,
		Name:   ast.Ident{Name: name.Lexeme, Loc: name.Location},
		Loc:    left.Span().Merge(name.Location),
	}
}
