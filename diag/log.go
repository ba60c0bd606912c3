package diag

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// logHandler is a compact colorized slog handler used by the CLI's
// --verbose mode.
type logHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
}

// NewLogger returns a slog.Logger writing colorized lines to w at the
// given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(&logHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
	})
}

func (h *logHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *logHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	style := infoStyle
	switch {
	case r.Level < slog.LevelInfo:
		style = debugStyle
	case r.Level >= slog.LevelError:
		style = errStyle
	case r.Level >= slog.LevelWarn:
		style = warnStyle
	}
	fmt.Fprintf(buf, "%s %s", style.Render(r.Level.String()), r.Message)

	writeAttr := func(a slog.Attr) bool {
		fmt.Fprintf(buf, " %s%v", keyStyle.Render(a.Key+"="), a.Value)
		return true
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(writeAttr)
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)
	return &out
}

func (h *logHandler) WithGroup(string) slog.Handler {
	return h
}
