// Package parser turns Melbi source text into an AST.
//
// One call parses exactly one expression:
//
//	expr, err := parser.Parse("1 + 2 * 3")
//
// Parsing is precedence climbing over the token slice produced by the
// lexer. Internally the parse functions panic with typed errors from the
// errors package; the exported entry points recover and wrap them with
// tracerr so callers get a stack trace alongside the typed value.
package parser

import (
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/melbi/ast"
	"github.com/pontaoski/melbi/errors"
	"github.com/pontaoski/melbi/lexer"
	"github.com/pontaoski/melbi/types"
)

// DefaultMaxDepth bounds expression nesting so adversarial input fails
// with TooDeep instead of exhausting the goroutine stack.
const DefaultMaxDepth = 512

type config struct {
	maxDepth int
	filename string
}

// Option applies a configuration option to a parse.
type Option func(*config)

// WithMaxDepth overrides the nesting limit.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = n
	}
}

// WithFilename sets the filename recorded on positions in errors and spans.
func WithFilename(name string) Option {
	return func(c *config) {
		c.filename = name
	}
}

// Parse tokenizes src and parses it as a single expression. The whole
// input must be consumed; trailing tokens are an error.
func Parse(src string, opts ...Option) (ast.Expr, error) {
	cfg := newConfig(opts)

	var lexOpts []lexer.Option
	if cfg.filename != "" {
		lexOpts = append(lexOpts, lexer.WithFilename(cfg.filename))
	}
	tokens, err := lexer.Tokenize(src, lexOpts...)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return parseTokens(tokens, cfg)
}

// ParseTokens parses an already-lexed token slice as a single expression.
// The slice must end with an EOF token, as produced by lexer.Tokenize.
func ParseTokens(tokens []types.Token, opts ...Option) (ast.Expr, error) {
	return parseTokens(tokens, newConfig(opts))
}

func newConfig(opts []Option) *config {
	cfg := &config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func parseTokens(tokens []types.Token, cfg *config) (expr ast.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			expr = nil
			err = tracerr.Wrap(rerr)
		}
	}()

	p := &Parser{toks: tokens, maxDepth: cfg.maxDepth}
	expr = p.parseExpression(levelLambda)
	if !p.at(types.EOF) {
		panic(errors.TrailingInput{Got: p.cur()})
	}
	return expr, nil
}

// Parser walks a token slice with a movable cursor. Backtracking is a
// cursor save/restore; it is used in exactly one place, the
// grouped-expression versus lambda-parameter-list split.
type Parser struct {
	toks     []types.Token
	pos      int
	depth    int
	maxDepth int
}

func (p *Parser) cur() types.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peek() types.Token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+1]
}

func (p *Parser) at(kind types.TokenKind) bool {
	return p.cur().Kind == kind
}

// advance consumes and returns the current token. The trailing EOF is
// never consumed.
func (p *Parser) advance() types.Token {
	tok := p.cur()
	if tok.Kind != types.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kinds ...types.TokenKind) types.Token {
	tok := p.cur()
	for _, kind := range kinds {
		if tok.Kind == kind {
			return p.advance()
		}
	}
	panic(errors.UnexpectedToken{Expected: kinds, Got: tok})
}

func (p *Parser) save() int {
	return p.pos
}

func (p *Parser) restore(mark int) {
	p.pos = mark
}

func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		panic(errors.TooDeep{Limit: p.maxDepth, Location: p.cur().Location.From})
	}
}

func (p *Parser) leave() {
	p.depth--
}
