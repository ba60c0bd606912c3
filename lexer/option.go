package lexer

// Option applies a configuration option to a Lexer.
type Option func(*Lexer)

// WithComments keeps // comments in the token stream as COMMENT tokens
// instead of discarding them.
func WithComments() Option {
	return func(l *Lexer) {
		l.comments = true
	}
}

// WithFilename sets the filename recorded on every position, for error
// messages.
func WithFilename(name string) Option {
	return func(l *Lexer) {
		l.filename = name
	}
}
