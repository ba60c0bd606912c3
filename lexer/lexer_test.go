package lexer

import (
	"testing"

	"github.com/pontaoski/melbi/errors"
	"github.com/pontaoski/melbi/types"
)

func mustTokenize(t *testing.T, src string, opts ...Option) []types.Token {
	t.Helper()
	tokens, err := Tokenize(src, opts...)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", src, err)
	}
	return tokens
}

func kindsOf(tokens []types.Token) []types.TokenKind {
	out := make([]types.TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func sameKinds(got, want []types.TokenKind) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestTokenKinds(t *testing.T) {
	cases := []struct {
		src  string
		want []types.TokenKind
	}{
		{"a + b", []types.TokenKind{types.IDENT, types.PLUS, types.IDENT, types.EOF}},
		{"x == y != z", []types.TokenKind{types.IDENT, types.EQ, types.IDENT, types.NEQ, types.IDENT, types.EOF}},
		{"a <= b >= c < d > e", []types.TokenKind{
			types.IDENT, types.LTE, types.IDENT, types.GTE, types.IDENT,
			types.LT, types.IDENT, types.GT, types.IDENT, types.EOF,
		}},
		{"(x) => x", []types.TokenKind{
			types.LPAREN, types.IDENT, types.RPAREN, types.FATARROW, types.IDENT, types.EOF,
		}},
		{"_ -> 1", []types.TokenKind{types.IDENT, types.ARROW, types.INT, types.EOF}},
		{"{a: [1]}", []types.TokenKind{
			types.LBRACE, types.IDENT, types.COLON, types.LBRACKET, types.INT,
			types.RBRACKET, types.RBRACE, types.EOF,
		}},
		{"a.b, c", []types.TokenKind{
			types.IDENT, types.PERIOD, types.IDENT, types.COMMA, types.IDENT, types.EOF,
		}},
		{"1 - -2 * 3 / 4 ^ 5", []types.TokenKind{
			types.INT, types.MINUS, types.MINUS, types.INT, types.STAR, types.INT,
			types.SLASH, types.INT, types.CARET, types.INT, types.EOF,
		}},
	}
	for _, c := range cases {
		got := kindsOf(mustTokenize(t, c.src))
		if !sameKinds(got, c.want) {
			t.Fatalf("Tokenize(%q) kinds = %v, want %v", c.src, got, c.want)
		}
	}
}

func TestWordClassification(t *testing.T) {
	cases := []struct {
		src  string
		want types.TokenKind
	}{
		{"if", types.IF},
		{"then", types.THEN},
		{"else", types.ELSE},
		{"and", types.AND},
		{"or", types.OR},
		{"not", types.NOT},
		{"as", types.AS},
		{"where", types.WHERE},
		{"match", types.MATCH},
		{"otherwise", types.OTHERWISE},
		{"some", types.SOME},
		{"none", types.NONE},
		{"in", types.IN},
		{"true", types.BOOL},
		{"false", types.BOOL},
		{"iffy", types.IDENT},
		{"sometimes", types.IDENT},
		{"_private", types.IDENT},
		{"x2", types.IDENT},
	}
	for _, c := range cases {
		tokens := mustTokenize(t, c.src)
		if tokens[0].Kind != c.want {
			t.Fatalf("Tokenize(%q)[0] = %s, want %s", c.src, tokens[0].Kind, c.want)
		}
		if tokens[0].Lexeme != c.src {
			t.Fatalf("Tokenize(%q)[0].Lexeme = %q", c.src, tokens[0].Lexeme)
		}
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		src    string
		kind   types.TokenKind
		lexeme string
	}{
		{"0", types.INT, "0"},
		{"123", types.INT, "123"},
		{"1_000_000", types.INT, "1_000_000"},
		{"0b1010", types.INT, "0b1010"},
		{"0o17", types.INT, "0o17"},
		{"0xFF_f", types.INT, "0xFF_f"},
		{"1.5", types.FLOAT, "1.5"},
		{".5", types.FLOAT, ".5"},
		{"5.", types.FLOAT, "5."},
		{"1e3", types.FLOAT, "1e3"},
		{"1.5e-3", types.FLOAT, "1.5e-3"},
		{"1E+10", types.FLOAT, "1E+10"},
	}
	for _, c := range cases {
		tokens := mustTokenize(t, c.src)
		if tokens[0].Kind != c.kind || tokens[0].Lexeme != c.lexeme {
			t.Fatalf("Tokenize(%q)[0] = %s %q, want %s %q",
				c.src, tokens[0].Kind, tokens[0].Lexeme, c.kind, c.lexeme)
		}
	}
}

// A dot after digits only joins the number when what follows could not be a
// field access, so methods on literals still lex.
func TestNumberDotDisambiguation(t *testing.T) {
	got := kindsOf(mustTokenize(t, "5.foo"))
	want := []types.TokenKind{types.INT, types.PERIOD, types.IDENT, types.EOF}
	if !sameKinds(got, want) {
		t.Fatalf("Tokenize(\"5.foo\") kinds = %v, want %v", got, want)
	}

	// An e that does not begin an exponent ends the number too.
	got = kindsOf(mustTokenize(t, "1egg"))
	want = []types.TokenKind{types.INT, types.IDENT, types.EOF}
	if !sameKinds(got, want) {
		t.Fatalf("Tokenize(\"1egg\") kinds = %v, want %v", got, want)
	}
}

func TestStrings(t *testing.T) {
	cases := []struct {
		src    string
		kind   types.TokenKind
		lexeme string
	}{
		{`"hello"`, types.STRING, "hello"},
		{`'hello'`, types.STRING, "hello"},
		{`"a\nb\tc"`, types.STRING, "a\nb\tc"},
		{`"say \"hi\""`, types.STRING, `say "hi"`},
		{`"A"`, types.STRING, "A"},
		{`"\U0001F600"`, types.STRING, "\U0001F600"},
		{"\"multi\nline\"", types.STRING, "multi\nline"},
		{`b"\x41\x42"`, types.BYTES, "AB"},
		{`b'raw'`, types.BYTES, "raw"},
	}
	for _, c := range cases {
		tokens := mustTokenize(t, c.src)
		if tokens[0].Kind != c.kind || tokens[0].Lexeme != c.lexeme {
			t.Fatalf("Tokenize(%q)[0] = %s %q, want %s %q",
				c.src, tokens[0].Kind, tokens[0].Lexeme, c.kind, c.lexeme)
		}
		span := tokens[0].Location
		if span.From.Offset != 0 || span.To.Offset != len(c.src) {
			t.Fatalf("Tokenize(%q)[0] span = %d..%d, want 0..%d",
				c.src, span.From.Offset, span.To.Offset, len(c.src))
		}
	}
}

func TestQuotedIdent(t *testing.T) {
	tokens := mustTokenize(t, "`a-b/c.d:e_1`")
	if tokens[0].Kind != types.QUOTED || tokens[0].Lexeme != "a-b/c.d:e_1" {
		t.Fatalf("quoted ident = %s %q", tokens[0].Kind, tokens[0].Lexeme)
	}
	if tokens[0].Location.To.Offset != 13 {
		t.Fatalf("quoted ident span ends at %d, want 13", tokens[0].Location.To.Offset)
	}
}

func TestFormatStringStructure(t *testing.T) {
	got := kindsOf(mustTokenize(t, `f"a{x}b"`))
	want := []types.TokenKind{
		types.FSTRINGSTART, types.FSTRINGTEXT, types.INTERPSTART, types.IDENT,
		types.INTERPEND, types.FSTRINGTEXT, types.FSTRINGEND, types.EOF,
	}
	if !sameKinds(got, want) {
		t.Fatalf(`Tokenize(f"a{x}b") kinds = %v, want %v`, got, want)
	}

	// Braces inside an interpolation nest rather than closing it.
	got = kindsOf(mustTokenize(t, `f"{ {a: 1} }"`))
	want = []types.TokenKind{
		types.FSTRINGSTART, types.INTERPSTART, types.LBRACE, types.IDENT,
		types.COLON, types.INT, types.RBRACE, types.INTERPEND,
		types.FSTRINGEND, types.EOF,
	}
	if !sameKinds(got, want) {
		t.Fatalf("nested braces kinds = %v, want %v", got, want)
	}

	// Doubled braces are literal text, and escapes decode in text fragments.
	tokens := mustTokenize(t, `f"a{{b}}\nc"`)
	if tokens[1].Kind != types.FSTRINGTEXT || tokens[1].Lexeme != "a{b}\nc" {
		t.Fatalf("escaped text fragment = %s %q", tokens[1].Kind, tokens[1].Lexeme)
	}

	// A nested format string with the other delimiter works inside an
	// interpolation.
	got = kindsOf(mustTokenize(t, `f"{f'{x}'}"`))
	want = []types.TokenKind{
		types.FSTRINGSTART, types.INTERPSTART,
		types.FSTRINGSTART, types.INTERPSTART, types.IDENT, types.INTERPEND, types.FSTRINGEND,
		types.INTERPEND, types.FSTRINGEND, types.EOF,
	}
	if !sameKinds(got, want) {
		t.Fatalf("nested format string kinds = %v, want %v", got, want)
	}
}

func TestSuffixAdjacency(t *testing.T) {
	// No whitespace between numeral and backtick: suffix mode.
	got := kindsOf(mustTokenize(t, "123`s`"))
	want := []types.TokenKind{
		types.INT, types.SUFFIXSTART, types.IDENT, types.SUFFIXEND, types.EOF,
	}
	if !sameKinds(got, want) {
		t.Fatalf("Tokenize(\"123`s`\") kinds = %v, want %v", got, want)
	}

	// Whitespace inside the suffix is fine once it is open.
	got = kindsOf(mustTokenize(t, "123` x + 1 `"))
	want = []types.TokenKind{
		types.INT, types.SUFFIXSTART, types.IDENT, types.PLUS, types.INT,
		types.SUFFIXEND, types.EOF,
	}
	if !sameKinds(got, want) {
		t.Fatalf("suffix with spaces kinds = %v, want %v", got, want)
	}

	// Whitespace before the backtick breaks adjacency: the backtick then
	// opens an ordinary quoted identifier.
	got = kindsOf(mustTokenize(t, "123 `s`"))
	want = []types.TokenKind{types.INT, types.QUOTED, types.EOF}
	if !sameKinds(got, want) {
		t.Fatalf("Tokenize(\"123 `s`\") kinds = %v, want %v", got, want)
	}
}

func TestComments(t *testing.T) {
	src := "1 // one\n+ 2"

	got := kindsOf(mustTokenize(t, src))
	want := []types.TokenKind{types.INT, types.PLUS, types.INT, types.EOF}
	if !sameKinds(got, want) {
		t.Fatalf("comments not skipped: %v", got)
	}

	tokens := mustTokenize(t, src, WithComments())
	if tokens[1].Kind != types.COMMENT || tokens[1].Lexeme != "// one" {
		t.Fatalf("WithComments()[1] = %s %q", tokens[1].Kind, tokens[1].Lexeme)
	}
}

func TestPositions(t *testing.T) {
	tokens := mustTokenize(t, "a +\n bb", WithFilename("test.mb"))

	b := tokens[2]
	if b.Location.From.Offset != 5 || b.Location.To.Offset != 7 {
		t.Fatalf("offset of bb = %d..%d, want 5..7", b.Location.From.Offset, b.Location.To.Offset)
	}
	if b.Location.From.Line != 2 || b.Location.From.Column != 2 {
		t.Fatalf("position of bb = line %d col %d, want line 2 col 2",
			b.Location.From.Line, b.Location.From.Column)
	}
	if b.Location.From.Filename != "test.mb" {
		t.Fatalf("filename = %q, want \"test.mb\"", b.Location.From.Filename)
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		src  string
		want func(error) bool
	}{
		{`"abc`, isType[errors.UnterminatedString]},
		{"'abc\\'", isType[errors.UnterminatedString]},
		{"`abc", isType[errors.UnterminatedQuoted]},
		{"``", isType[errors.UnterminatedQuoted]},
		{"`a b`", isType[errors.UnexpectedChar]},
		{`f"abc`, isType[errors.UnterminatedFormatString]},
		{`f"a{1`, isType[errors.UnterminatedFormatString]},
		{"123`s", isType[errors.UnterminatedSuffix]},
		{`"\q"`, isType[errors.InvalidEscape]},
		{`"\x41"`, isType[errors.InvalidEscape]},
		{`b"\u0041"`, isType[errors.InvalidEscape]},
		{`"\u00"`, isType[errors.InvalidEscape]},
		{"0x", isType[errors.MalformedNumber]},
		{"0b_", isType[errors.MalformedNumber]},
		{"0x_1", isType[errors.MalformedNumber]},
		{"@", isType[errors.UnexpectedChar]},
		{"=", isType[errors.UnexpectedChar]},
		{"!x", isType[errors.UnexpectedChar]},
		{`f"a}b"`, isType[errors.UnexpectedChar]},
	}
	for _, c := range cases {
		_, err := Tokenize(c.src)
		if err == nil {
			t.Fatalf("Tokenize(%q) succeeded, want error", c.src)
		}
		if !c.want(err) {
			t.Fatalf("Tokenize(%q) error = %T (%v)", c.src, err, err)
		}
		if !errors.IsLexError(err) {
			t.Fatalf("Tokenize(%q) error not classified as lex error: %v", c.src, err)
		}
	}
}

func isType[T error](err error) bool {
	_, ok := err.(T)
	return ok
}
