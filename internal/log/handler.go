package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxValueLength is the longest attribute value (in runes) emitted
// before truncation kicks in. Long enough for paths, section names and
// error chains, short enough that a document fragment cannot drown a line.
const DefaultMaxValueLength = 120

// TruncateMarker terminates every truncated attribute value.
const TruncateMarker = "...(truncated)"

// TruncateHandler is a slog.Handler that caps oversized attribute values
// before delegating to an underlying handler.
type TruncateHandler struct {
	handler slog.Handler
	maxLen  int
}

// NewTruncateHandler creates a new TruncateHandler wrapping the given handler.
// If handler is nil, the default slog handler is used.
// If maxLen is zero or negative, DefaultMaxValueLength is used.
func NewTruncateHandler(handler slog.Handler, maxLen int) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLength
	}
	return &TruncateHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle truncates the record's attributes and passes it to the underlying handler.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	truncated := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		truncated.AddAttrs(h.truncateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, truncated)
}

// WithAttrs returns a new handler with the given attributes truncated.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	truncatedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		truncatedAttrs[i] = h.truncateAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(truncatedAttrs), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr caps a single attribute, recursively handling groups.
// Non-string kinds pass through untouched unless their rendered form
// exceeds the limit, so numbers and times keep their native formatting.
func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		truncatedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			truncatedAttrs[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(truncatedAttrs...)}
	case slog.KindString:
		return slog.String(a.Key, h.truncate(a.Value.String()))
	case slog.KindAny:
		rendered := fmt.Sprint(a.Value.Any())
		if utf8.RuneCountInString(rendered) <= h.maxLen {
			return a
		}
		return slog.String(a.Key, h.truncate(rendered))
	default:
		return a
	}
}

// truncate keeps the first maxLen runes of s and appends TruncateMarker.
// Cutting on rune boundaries keeps multi-byte text valid.
func (h *TruncateHandler) truncate(s string) string {
	if utf8.RuneCountInString(s) <= h.maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:h.maxLen]) + TruncateMarker
}

// NewLogger creates a new slog.Logger that writes text records to w with
// oversized attribute values truncated.
//
// If verbose is true, debug level messages are logged.
// Otherwise, only warnings and errors are logged.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	truncateHandler := NewTruncateHandler(textHandler, DefaultMaxValueLength)

	return slog.New(truncateHandler)
}

// NewJSONLogger creates a new slog.Logger that writes JSON records to w
// with oversized attribute values truncated. Useful when the output is
// collected by another tool.
//
// If verbose is true, debug level messages are logged.
// Otherwise, only warnings and errors are logged.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	truncateHandler := NewTruncateHandler(jsonHandler, DefaultMaxValueLength)

	return slog.New(truncateHandler)
}
