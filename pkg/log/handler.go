package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// FormatterHandler adapts a LogFormatter to the slog.Handler interface, so
// a Logger can render through TextFormatter/JSONFormatter/ColorFormatter
// instead of slog's own JSON handler. This is how NewWithFormatter plugs
// the formatter family into the same Logger every other constructor in
// this package returns.
type FormatterHandler struct {
	formatter LogFormatter
	w         io.Writer
	level     slog.Leveler
	mu        *sync.Mutex
	attrs     []slog.Attr
	groups    []string
}

// NewFormatterHandler builds a slog.Handler that renders every record
// through formatter before writing one line to w.
func NewFormatterHandler(formatter LogFormatter, w io.Writer, level slog.Leveler) *FormatterHandler {
	return &FormatterHandler{formatter: formatter, w: w, level: level, mu: &sync.Mutex{}}
}

// Enabled reports whether level meets the handler's minimum. A nil level
// defaults to INFO, matching slog's own zero-value behavior.
func (h *FormatterHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.level != nil {
		minLevel = h.level.Level()
	}
	return level >= minLevel
}

// Handle converts record into a LogEntry, merging in attrs accumulated by
// prior WithAttrs/WithGroup calls, and writes the formatted line.
func (h *FormatterHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make(map[string]interface{}, record.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		fields[h.qualify(a.Key)] = a.Value.Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		fields[h.qualify(a.Key)] = a.Value.Any()
		return true
	})

	entry := LogEntry{
		Timestamp: record.Time,
		Level:     levelFromSlog(record.Level),
		Message:   record.Message,
		Fields:    fields,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, h.formatter.Format(entry))
	return err
}

// WithAttrs returns a handler that merges attrs into every future record.
func (h *FormatterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

// WithGroup returns a handler that prefixes future attr keys with name.
func (h *FormatterHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func (h *FormatterHandler) qualify(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

// levelFromSlog maps slog's level (an int scale with gaps between the
// named levels) onto DEBUG, INFO, WARN or ERROR of this package's LogLevel;
// FATAL is never produced.
func levelFromSlog(l slog.Level) LogLevel {
	switch {
	case l < slog.LevelInfo:
		return DEBUG
	case l < slog.LevelWarn:
		return INFO
	case l < slog.LevelError:
		return WARN
	default:
		return ERROR
	}
}
