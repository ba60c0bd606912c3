package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/pontaoski/melbi/errors"
	"github.com/pontaoski/melbi/types"
)

// The lexer is context sensitive in three places: inside format strings,
// inside format-string interpolations, and inside numeric suffixes. Each of
// those is a frame on a mode stack; everything outside a frame lexes in the
// ordinary whitespace-insensitive way.
type mode int

const (
	modeFormatText mode = iota
	modeInterp
	modeSuffix
)

type frame struct {
	mode  mode
	quote byte           // closing delimiter of the surrounding format string
	depth int            // open braces inside an interpolation frame
	start types.Position // where the construct began, for unterminated errors
}

type Lexer struct {
	src      string
	pos      int // byte offset of the next unread byte
	line     int
	col      int // 1-based column of the next unread byte
	filename string
	comments bool
	stack    []frame

	// pendingSuffix is set when a numeric literal ended with a backtick
	// immediately adjacent to it. The next scan consumes that backtick as
	// SUFFIXSTART instead of a quoted identifier.
	pendingSuffix bool
}

func New(src string, opts ...Option) *Lexer {
	l := &Lexer{
		src:  src,
		line: 1,
		col:  1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize scans the whole input in one shot. The returned slice always
// ends with an EOF token on success.
func Tokenize(src string, opts ...Option) ([]types.Token, error) {
	return New(src, opts...).Tokenize()
}

func (l *Lexer) Tokenize() (tokens []types.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = rerr
			tokens = nil
		}
	}()

	for {
		tok := l.scan()
		if tok.Kind == types.COMMENT && !l.comments {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == types.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) position() types.Position {
	return types.Position{
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.col,
		Filename: l.filename,
	}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

// peek returns the next unread byte, or 0 at end of input.
func (l *Lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(i int) byte {
	if l.pos+i >= len(l.src) {
		return 0
	}
	return l.src[l.pos+i]
}

// advance consumes one byte. Columns count bytes; only Offset is exact for
// multi-byte runes, which is fine since errors point by offset.
func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *Lexer) token(kind types.TokenKind, lexeme string, from types.Position) types.Token {
	return types.Token{
		Kind:     kind,
		Lexeme:   lexeme,
		Location: types.Span{From: from, To: l.position()},
	}
}

func (l *Lexer) top() *frame {
	if len(l.stack) == 0 {
		return nil
	}
	return &l.stack[len(l.stack)-1]
}

func (l *Lexer) push(f frame) {
	l.stack = append(l.stack, f)
}

func (l *Lexer) pop() {
	l.stack = l.stack[:len(l.stack)-1]
}

func (l *Lexer) scan() types.Token {
	if l.pendingSuffix {
		l.pendingSuffix = false
		from := l.position()
		l.advance() // the backtick
		l.push(frame{mode: modeSuffix, start: from})
		return l.token(types.SUFFIXSTART, "`", from)
	}

	if top := l.top(); top != nil && top.mode == modeFormatText {
		return l.scanFormatText()
	}
	return l.scanDefault()
}

// scanDefault lexes one token in normal mode, which also covers
// interpolation and suffix frames.
func (l *Lexer) scanDefault() types.Token {
	l.skipInsignificant()

	from := l.position()

	if l.eof() {
		if top := l.top(); top != nil {
			switch top.mode {
			case modeSuffix:
				panic(errors.UnterminatedSuffix{Location: top.start})
			default:
				panic(errors.UnterminatedFormatString{Location: top.start})
			}
		}
		return l.token(types.EOF, "", from)
	}

	if l.peek() == '/' && l.peekAt(1) == '/' {
		return l.scanComment()
	}

	ch := l.peek()
	switch ch {
	case '(':
		l.advance()
		return l.token(types.LPAREN, "(", from)
	case ')':
		l.advance()
		return l.token(types.RPAREN, ")", from)
	case '[':
		l.advance()
		return l.token(types.LBRACKET, "[", from)
	case ']':
		l.advance()
		return l.token(types.RBRACKET, "]", from)
	case '{':
		l.advance()
		if top := l.top(); top != nil && top.mode == modeInterp {
			top.depth++
		}
		return l.token(types.LBRACE, "{", from)
	case '}':
		l.advance()
		if top := l.top(); top != nil && top.mode == modeInterp {
			if top.depth == 0 {
				l.pop()
				return l.token(types.INTERPEND, "}", from)
			}
			top.depth--
		}
		return l.token(types.RBRACE, "}", from)
	case ',':
		l.advance()
		return l.token(types.COMMA, ",", from)
	case ':':
		l.advance()
		return l.token(types.COLON, ":", from)
	case '+':
		l.advance()
		return l.token(types.PLUS, "+", from)
	case '*':
		l.advance()
		return l.token(types.STAR, "*", from)
	case '/':
		l.advance()
		return l.token(types.SLASH, "/", from)
	case '^':
		l.advance()
		return l.token(types.CARET, "^", from)
	case '-':
		l.advance()
		if l.peek() == '>' {
			l.advance()
			return l.token(types.ARROW, "->", from)
		}
		return l.token(types.MINUS, "-", from)
	case '=':
		l.advance()
		switch l.peek() {
		case '=':
			l.advance()
			return l.token(types.EQ, "==", from)
		case '>':
			l.advance()
			return l.token(types.FATARROW, "=>", from)
		}
		panic(errors.UnexpectedChar{Char: '=', Location: from})
	case '!':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return l.token(types.NEQ, "!=", from)
		}
		panic(errors.UnexpectedChar{Char: '!', Location: from})
	case '<':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return l.token(types.LTE, "<=", from)
		}
		return l.token(types.LT, "<", from)
	case '>':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return l.token(types.GTE, ">=", from)
		}
		return l.token(types.GT, ">", from)
	case '"', '\'':
		return l.scanString(from, ch, false)
	case '`':
		if top := l.top(); top != nil && top.mode == modeSuffix {
			l.advance()
			l.pop()
			return l.token(types.SUFFIXEND, "`", from)
		}
		return l.scanQuotedIdent()
	case '.':
		if isDigit(l.peekAt(1)) {
			return l.scanNumber()
		}
		l.advance()
		return l.token(types.PERIOD, ".", from)
	}

	switch {
	case isDigit(ch):
		return l.scanNumber()
	case ch == 'b' && (l.peekAt(1) == '"' || l.peekAt(1) == '\''):
		l.advance()
		return l.scanString(from, l.peek(), true)
	case ch == 'f' && (l.peekAt(1) == '"' || l.peekAt(1) == '\''):
		l.advance()
		quote := l.peek()
		l.advance()
		l.push(frame{mode: modeFormatText, quote: quote, start: from})
		return l.token(types.FSTRINGSTART, l.src[from.Offset:l.pos], from)
	case isWordStart(ch):
		return l.scanWord()
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	panic(errors.UnexpectedChar{Char: r, Location: from})
}

// skipInsignificant consumes whitespace between tokens. Comments are left
// in place so scanDefault can emit them when comment retention is on.
func (l *Lexer) skipInsignificant() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) scanComment() types.Token {
	from := l.position()
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(types.COMMENT, l.src[from.Offset:l.pos], from)
}

func (l *Lexer) scanWord() types.Token {
	from := l.position()
	for !l.eof() && isWordPart(l.peek()) {
		l.advance()
	}
	word := l.src[from.Offset:l.pos]
	return l.token(types.LookupWord(word), word, from)
}

// scanQuotedIdent lexes a backtick-quoted identifier: a nonempty run of
// [A-Za-z0-9\-_.:/] between backticks.
func (l *Lexer) scanQuotedIdent() types.Token {
	from := l.position()
	l.advance() // opening backtick

	start := l.pos
	for {
		if l.eof() {
			panic(errors.UnterminatedQuoted{Location: from})
		}
		ch := l.peek()
		if ch == '`' {
			break
		}
		if !isQuotedIdentChar(ch) {
			r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
			panic(errors.UnexpectedChar{Char: r, Location: l.position()})
		}
		l.advance()
	}
	name := l.src[start:l.pos]
	if name == "" {
		panic(errors.UnterminatedQuoted{Location: from})
	}
	l.advance() // closing backtick
	return l.token(types.QUOTED, name, from)
}

// scanNumber lexes an integer or float literal. Values are converted by the
// parser from the raw lexeme; the lexer only validates the shape. When the
// byte immediately after the numeral is a backtick (and we are not already
// inside a suffix), the next token is a SUFFIXSTART.
func (l *Lexer) scanNumber() types.Token {
	from := l.position()
	kind := types.INT

	if l.peek() == '0' && (lower(l.peekAt(1)) == 'b' || lower(l.peekAt(1)) == 'o' || lower(l.peekAt(1)) == 'x') {
		base := lower(l.peekAt(1))
		l.advance()
		l.advance()
		digits := 0
		for !l.eof() && (l.peek() == '_' || isBaseDigit(l.peek(), base)) {
			if l.peek() == '_' {
				// Separators are only valid after the first digit.
				if digits == 0 {
					panic(errors.MalformedNumber{
						Literal:  l.src[from.Offset : l.pos+1],
						Reason:   "separator before first digit",
						Location: from,
					})
				}
			} else {
				digits++
			}
			l.advance()
		}
		if digits == 0 {
			panic(errors.MalformedNumber{
				Literal:  l.src[from.Offset:l.pos],
				Reason:   "radix prefix needs at least one digit",
				Location: from,
			})
		}
	} else {
		sawDot := false
		sawExp := false
		for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
			l.advance()
		}
		if l.peek() == '.' && l.pos > from.Offset && floatDotAllowed(l.peekAt(1)) {
			sawDot = true
			l.advance()
			for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
				l.advance()
			}
		} else if l.peek() == '.' && isDigit(l.peekAt(1)) {
			// leading-dot float like .5
			sawDot = true
			l.advance()
			for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
				l.advance()
			}
		}
		if lower(l.peek()) == 'e' && expFollows(l.peekAt(1), l.peekAt(2)) {
			sawExp = true
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			digits := 0
			for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
				if l.peek() != '_' {
					digits++
				}
				l.advance()
			}
			if digits == 0 {
				panic(errors.MalformedNumber{
					Literal:  l.src[from.Offset:l.pos],
					Reason:   "exponent needs at least one digit",
					Location: from,
				})
			}
		}
		if sawDot || sawExp {
			kind = types.FLOAT
		}
	}

	if l.peek() == '`' {
		if top := l.top(); top == nil || top.mode != modeSuffix {
			l.pendingSuffix = true
		}
	}

	return l.token(kind, l.src[from.Offset:l.pos], from)
}

// floatDotAllowed decides whether a dot after digits belongs to the number.
// A dot followed by a word or another dot is left alone so field access on
// literals still lexes; anything else makes a trailing-dot float like `5.`.
func floatDotAllowed(next byte) bool {
	if isDigit(next) {
		return true
	}
	return !isWordStart(next) && next != '.'
}

// expFollows reports whether an e/E actually begins an exponent rather than
// a word immediately after the numeral.
func expFollows(b1, b2 byte) bool {
	if isDigit(b1) {
		return true
	}
	return (b1 == '+' || b1 == '-') && isDigit(b2)
}

// scanString lexes a plain string or (with bytes set) a bytes literal. The
// lexeme is the decoded content. Raw newlines are allowed; only the closing
// delimiter or end of input stops the scan.
func (l *Lexer) scanString(from types.Position, quote byte, bytesLit bool) types.Token {
	l.advance() // opening delimiter

	var buf strings.Builder
	for {
		if l.eof() {
			panic(errors.UnterminatedString{Location: from})
		}
		ch := l.peek()
		switch ch {
		case quote:
			l.advance()
			kind := types.STRING
			if bytesLit {
				kind = types.BYTES
			}
			return l.token(kind, buf.String(), from)
		case '\\':
			l.scanEscape(&buf, bytesLit)
		default:
			buf.WriteByte(l.advance())
		}
	}
}

// scanEscape decodes one backslash escape into buf. Strings accept
// \n \r \t \\ \" \' \uXXXX \UXXXXXXXX; bytes literals accept \xXX in place
// of the unicode forms.
func (l *Lexer) scanEscape(buf *strings.Builder, bytesLit bool) {
	at := l.position()
	l.advance() // backslash
	if l.eof() {
		panic(errors.InvalidEscape{Sequence: "\\", Location: at})
	}
	ch := l.advance()
	switch ch {
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case '\\':
		buf.WriteByte('\\')
	case '"':
		buf.WriteByte('"')
	case '\'':
		buf.WriteByte('\'')
	case 'x':
		if !bytesLit {
			panic(errors.InvalidEscape{Sequence: "\\x", Location: at})
		}
		buf.WriteByte(byte(l.hexDigits(2, at)))
	case 'u':
		if bytesLit {
			panic(errors.InvalidEscape{Sequence: "\\u", Location: at})
		}
		buf.WriteRune(rune(l.hexDigits(4, at)))
	case 'U':
		if bytesLit {
			panic(errors.InvalidEscape{Sequence: "\\U", Location: at})
		}
		buf.WriteRune(rune(l.hexDigits(8, at)))
	default:
		panic(errors.InvalidEscape{Sequence: "\\" + string(ch), Location: at})
	}
}

func (l *Lexer) hexDigits(n int, at types.Position) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		if l.eof() || !isHexDigit(l.peek()) {
			panic(errors.InvalidEscape{
				Sequence: l.src[at.Offset:l.pos],
				Location: at,
			})
		}
		v = v<<4 | uint32(hexValue(l.advance()))
	}
	return v
}

// scanFormatText lexes the literal-text portion of a format string. It
// emits at most one token per call: a text fragment, an INTERPSTART, or the
// FSTRINGEND when the closing delimiter is reached.
func (l *Lexer) scanFormatText() types.Token {
	top := l.top()
	from := l.position()

	var buf strings.Builder
	for {
		if l.eof() {
			panic(errors.UnterminatedFormatString{Location: top.start})
		}
		ch := l.peek()
		switch ch {
		case top.quote:
			if buf.Len() > 0 {
				return l.token(types.FSTRINGTEXT, buf.String(), from)
			}
			l.advance()
			l.pop()
			return l.token(types.FSTRINGEND, string(rune(ch)), from)
		case '{':
			if l.peekAt(1) == '{' {
				l.advance()
				l.advance()
				buf.WriteByte('{')
				continue
			}
			if buf.Len() > 0 {
				return l.token(types.FSTRINGTEXT, buf.String(), from)
			}
			l.advance()
			quote := top.quote
			l.push(frame{mode: modeInterp, quote: quote, start: from})
			return l.token(types.INTERPSTART, "{", from)
		case '}':
			if l.peekAt(1) == '}' {
				l.advance()
				l.advance()
				buf.WriteByte('}')
				continue
			}
			panic(errors.UnexpectedChar{Char: '}', Location: l.position()})
		case '\\':
			l.scanEscape(&buf, false)
		default:
			buf.WriteByte(l.advance())
		}
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (lower(b) >= 'a' && lower(b) <= 'f')
}

func hexValue(b byte) int {
	if isDigit(b) {
		return int(b - '0')
	}
	return int(lower(b)-'a') + 10
}

func isBaseDigit(b byte, base byte) bool {
	switch base {
	case 'b':
		return b == '0' || b == '1'
	case 'o':
		return b >= '0' && b <= '7'
	default:
		return isHexDigit(b)
	}
}

func isWordStart(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

func isWordPart(b byte) bool {
	return isWordStart(b) || isDigit(b)
}

func isQuotedIdentChar(b byte) bool {
	return isWordPart(b) || b == '-' || b == '.' || b == ':' || b == '/'
}

func lower(b byte) byte {
	return b | 0x20
}
