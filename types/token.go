package types

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL
	COMMENT

	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	COMMA
	COLON
	PERIOD
	FATARROW
	ARROW

	PLUS
	MINUS
	STAR
	SLASH
	CARET
	EQ
	NEQ
	LT
	GT
	LTE
	GTE

	INT
	FLOAT
	BOOL
	STRING
	BYTES

	IDENT
	QUOTED

	IF
	THEN
	ELSE
	AND
	OR
	NOT
	AS
	WHERE
	MATCH
	OTHERWISE
	SOME
	NONE
	IN

	// Format string structure. A format string lexes as FSTRINGSTART,
	// then alternating FSTRINGTEXT fragments and INTERPSTART ... INTERPEND
	// expression token runs, then FSTRINGEND.
	FSTRINGSTART
	FSTRINGTEXT
	FSTRINGEND
	INTERPSTART
	INTERPEND

	// Numeric suffix delimiters. Only produced when the opening backtick is
	// immediately adjacent to the end of a numeric literal.
	SUFFIXSTART
	SUFFIXEND
)

var kindNames = map[TokenKind]string{
	EOF:          "EOF",
	ILLEGAL:      "ILLEGAL",
	COMMENT:      "COMMENT",
	LPAREN:       "LPAREN",
	RPAREN:       "RPAREN",
	LBRACKET:     "LBRACKET",
	RBRACKET:     "RBRACKET",
	LBRACE:       "LBRACE",
	RBRACE:       "RBRACE",
	COMMA:        "COMMA",
	COLON:        "COLON",
	PERIOD:       "PERIOD",
	FATARROW:     "FATARROW",
	ARROW:        "ARROW",
	PLUS:         "PLUS",
	MINUS:        "MINUS",
	STAR:         "STAR",
	SLASH:        "SLASH",
	CARET:        "CARET",
	EQ:           "EQ",
	NEQ:          "NEQ",
	LT:           "LT",
	GT:           "GT",
	LTE:          "LTE",
	GTE:          "GTE",
	INT:          "INT",
	FLOAT:        "FLOAT",
	BOOL:         "BOOL",
	STRING:       "STRING",
	BYTES:        "BYTES",
	IDENT:        "IDENT",
	QUOTED:       "QUOTED",
	IF:           "IF",
	THEN:         "THEN",
	ELSE:         "ELSE",
	AND:          "AND",
	OR:           "OR",
	NOT:          "NOT",
	AS:           "AS",
	WHERE:        "WHERE",
	MATCH:        "MATCH",
	OTHERWISE:    "OTHERWISE",
	SOME:         "SOME",
	NONE:         "NONE",
	IN:           "IN",
	FSTRINGSTART: "FSTRINGSTART",
	FSTRINGTEXT:  "FSTRINGTEXT",
	FSTRINGEND:   "FSTRINGEND",
	INTERPSTART:  "INTERPSTART",
	INTERPEND:    "INTERPEND",
	SUFFIXSTART:  "SUFFIXSTART",
	SUFFIXEND:    "SUFFIXEND",
}

func (t TokenKind) String() string {
	return kindNames[t]
}

// Token is one lexical unit. Lexeme is the decoded text for strings, bytes
// and format fragments, and the raw source slice for everything else.
type Token struct {
	Kind     TokenKind
	Lexeme   string
	Location Span
}

var keywords = map[string]TokenKind{
	"if":        IF,
	"then":      THEN,
	"else":      ELSE,
	"and":       AND,
	"or":        OR,
	"not":       NOT,
	"as":        AS,
	"where":     WHERE,
	"match":     MATCH,
	"otherwise": OTHERWISE,
	"some":      SOME,
	"none":      NONE,
	"in":        IN,
	"true":      BOOL,
	"false":     BOOL,
}

// LookupWord classifies a scanned word as a keyword, a boolean literal, or
// a plain identifier.
func LookupWord(word string) TokenKind {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	return IDENT
}

// Keywords returns every reserved word, for diagnostics that want to
// suggest near-misses.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for word := range keywords {
		out = append(out, word)
	}
	return out
}
