package errors

import (
	"fmt"

	"github.com/pontaoski/melbi/types"
)

// Lexical errors. Each carries the position of the offending input so a
// caller can point back into the source.

type UnexpectedChar struct {
	Char     rune
	Location types.Position
}

func (e UnexpectedChar) Error() string {
	return fmt.Sprintf("unexpected character %q. %s", e.Char, e.Location)
}

type InvalidEscape struct {
	Sequence string
	Location types.Position
}

func (e InvalidEscape) Error() string {
	return fmt.Sprintf("invalid escape sequence %q. %s", e.Sequence, e.Location)
}

type MalformedNumber struct {
	Literal  string
	Reason   string
	Location types.Position
}

func (e MalformedNumber) Error() string {
	return fmt.Sprintf("malformed number %q: %s. %s", e.Literal, e.Reason, e.Location)
}

type UnterminatedString struct {
	Location types.Position
}

func (e UnterminatedString) Error() string {
	return fmt.Sprintf("unterminated string literal. %s", e.Location)
}

type UnterminatedQuoted struct {
	Location types.Position
}

func (e UnterminatedQuoted) Error() string {
	return fmt.Sprintf("unterminated quoted identifier. %s", e.Location)
}

type UnterminatedFormatString struct {
	Location types.Position
}

func (e UnterminatedFormatString) Error() string {
	return fmt.Sprintf("unterminated format string. %s", e.Location)
}

type UnterminatedSuffix struct {
	Location types.Position
}

func (e UnterminatedSuffix) Error() string {
	return fmt.Sprintf("unterminated numeric suffix. %s", e.Location)
}

// Syntax errors.

type UnexpectedToken struct {
	Expected []types.TokenKind
	Got      types.Token
}

func (e UnexpectedToken) Error() string {
	return fmt.Sprintf("got %s %q, expected one of %v. %s",
		e.Got.Kind, e.Got.Lexeme, e.Expected, e.Got.Location)
}

type ExpectedExpression struct {
	Got types.Token
}

func (e ExpectedExpression) Error() string {
	return fmt.Sprintf("got %s %q, expected an expression. %s",
		e.Got.Kind, e.Got.Lexeme, e.Got.Location)
}

type ExpectedPattern struct {
	Got types.Token
}

func (e ExpectedPattern) Error() string {
	return fmt.Sprintf("got %s %q, expected a pattern. %s",
		e.Got.Kind, e.Got.Lexeme, e.Got.Location)
}

type ExpectedType struct {
	Got types.Token
}

func (e ExpectedType) Error() string {
	return fmt.Sprintf("got %s %q, expected a type. %s",
		e.Got.Kind, e.Got.Lexeme, e.Got.Location)
}

// EmptyGroup is `()` in expression position with no `=>` after it: grouping
// requires a contained expression, and a parameter list requires a body.
type EmptyGroup struct {
	Location types.Span
}

func (e EmptyGroup) Error() string {
	return fmt.Sprintf("empty parentheses are not an expression. %s", e.Location)
}

type TrailingInput struct {
	Got types.Token
}

func (e TrailingInput) Error() string {
	return fmt.Sprintf("unexpected %s %q after expression. %s",
		e.Got.Kind, e.Got.Lexeme, e.Got.Location)
}

type TooDeep struct {
	Limit    int
	Location types.Position
}

func (e TooDeep) Error() string {
	return fmt.Sprintf("expression nests deeper than %d levels. %s", e.Limit, e.Location)
}

// Root strips wrapping (such as tracerr's) until it reaches the innermost
// error.
func Root(err error) error {
	for {
		wrapped, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		inner := wrapped.Unwrap()
		if inner == nil {
			return err
		}
		err = inner
	}
}

// IsLexError reports whether err came out of tokenization rather than
// parsing.
func IsLexError(err error) bool {
	switch Root(err).(type) {
	case UnexpectedChar, InvalidEscape, MalformedNumber,
		UnterminatedString, UnterminatedQuoted,
		UnterminatedFormatString, UnterminatedSuffix:
		return true
	}
	return false
}

// IsSyntaxError reports whether err is a structural parse error.
func IsSyntaxError(err error) bool {
	switch Root(err).(type) {
	case UnexpectedToken, ExpectedExpression, ExpectedPattern,
		ExpectedType, EmptyGroup, TrailingInput:
		return true
	}
	return false
}

// Offset extracts the byte offset an error points at, or -1 when err is not
// one of this package's types.
func Offset(err error) int {
	switch e := Root(err).(type) {
	case UnexpectedChar:
		return e.Location.Offset
	case InvalidEscape:
		return e.Location.Offset
	case MalformedNumber:
		return e.Location.Offset
	case UnterminatedString:
		return e.Location.Offset
	case UnterminatedQuoted:
		return e.Location.Offset
	case UnterminatedFormatString:
		return e.Location.Offset
	case UnterminatedSuffix:
		return e.Location.Offset
	case UnexpectedToken:
		return e.Got.Location.From.Offset
	case ExpectedExpression:
		return e.Got.Location.From.Offset
	case ExpectedPattern:
		return e.Got.Location.From.Offset
	case ExpectedType:
		return e.Got.Location.From.Offset
	case EmptyGroup:
		return e.Location.From.Offset
	case TrailingInput:
		return e.Got.Location.From.Offset
	case TooDeep:
		return e.Location.Offset
	}
	return -1
}
