// Package diag renders parse failures for humans: a pointer into the
// source, colored with lipgloss, plus a keyword suggestion when the
// offending token looks like a typo. Library callers work with the typed
// errors directly; this package exists for the CLI.
package diag

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/pontaoski/melbi/errors"
	"github.com/pontaoski/melbi/types"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	posStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	caretStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	adviceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// Render formats err against the source it came from. The result is a
// multi-line message ending without a trailing newline.
func Render(src string, err error) string {
	root := errors.Root(err)
	offset := errors.Offset(root)

	var b strings.Builder
	b.WriteString(labelStyle.Render("error: "))
	b.WriteString(root.Error())

	if offset >= 0 && offset <= len(src) {
		line, col, text := locate(src, offset)
		b.WriteByte('\n')
		b.WriteString(posStyle.Render(fmt.Sprintf("%4d | ", line)))
		b.WriteString(text)
		b.WriteByte('\n')
		b.WriteString(posStyle.Render("     | "))
		b.WriteString(strings.Repeat(" ", col-1))
		b.WriteString(caretStyle.Render("^"))
	}

	if hint := suggest(root); hint != "" {
		b.WriteByte('\n')
		b.WriteString(adviceStyle.Render(hint))
	}
	return b.String()
}

// locate maps a byte offset to its 1-based line, column within the line,
// and the text of that line.
func locate(src string, offset int) (line, col int, text string) {
	start := 0
	line = 1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			start = i + 1
		}
	}
	end := len(src)
	if i := strings.IndexByte(src[start:], '\n'); i >= 0 {
		end = start + i
	}
	col = offset - start + 1
	if max := end - start + 1; col > max {
		col = max
	}
	return line, col, src[start:end]
}

// suggest proposes a keyword when a syntax error sits on a word that
// fuzzy-matches one.
func suggest(err error) string {
	var got types.Token
	switch e := err.(type) {
	case errors.UnexpectedToken:
		got = e.Got
	case errors.ExpectedExpression:
		got = e.Got
	case errors.ExpectedPattern:
		got = e.Got
	case errors.TrailingInput:
		got = e.Got
	default:
		return ""
	}
	if got.Kind != types.IDENT || len(got.Lexeme) < 2 {
		return ""
	}
	matches := fuzzy.Find(got.Lexeme, types.Keywords())
	if len(matches) == 0 {
		return ""
	}
	best := matches[0]
	// Require most of the word to participate in the match, otherwise the
	// suggestion is noise.
	if len(best.MatchedIndexes)*2 < len(best.Str) {
		return ""
	}
	return fmt.Sprintf("did you mean %q?", best.Str)
}
