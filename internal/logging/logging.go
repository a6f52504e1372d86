// Package logging configures the process-wide slog logger with a compact,
// colored handler suited to interactive terminal runs.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	levelColors = map[slog.Level]lipgloss.Color{
		slog.LevelDebug: lipgloss.Color("5"), // purple
		slog.LevelInfo:  lipgloss.Color("4"), // blue
		slog.LevelWarn:  lipgloss.Color("3"), // yellow
		slog.LevelError: lipgloss.Color("1"), // red
	}
	levelStyle = lipgloss.NewStyle().Width(8).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

// Setup installs the handler as the default slog logger. Records below
// level are dropped.
func Setup(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(newHandler(w, level)))
}

type handler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
}

func newHandler(w io.Writer, level slog.Level) *handler {
	return &handler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
	}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	// WARN:    message key=value
	sb := &strings.Builder{}
	fmt.Fprint(sb, levelStyle.Foreground(levelColors[r.Level]).Render(r.Level.String()+":"))
	fmt.Fprint(sb, r.Message)
	for _, a := range h.attrs {
		writeAttr(sb, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(sb, a)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, sb.String())
	return err
}

func writeAttr(sb *strings.Builder, a slog.Attr) {
	keyStyle := keyStyle
	if a.Key == "err" || a.Key == "error" {
		// Make the error key bright red.
		keyStyle = keyStyle.Foreground(lipgloss.Color("9"))
	}
	fmt.Fprint(sb, " "+keyStyle.Render(a.Key+"="))
	fmt.Fprint(sb, fmt.Sprintf("%v", a.Value))
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(clone.attrs[:len(clone.attrs):len(clone.attrs)], attrs...)
	return &clone
}

func (h *handler) WithGroup(_ string) slog.Handler {
	return h
}
