package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/exp/slog"
)

const timeFormat = "[15:04:05.000]"

// PrettyHandler пишет одну цветную строку на запись, атрибуты выводятся JSON-объектом.
type PrettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	out    io.Writer
	attrs  []slog.Attr
	groups []string
}

func NewPrettyHandler(out io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{out: out, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	switch {
	case r.Level >= slog.LevelError:
		level = color.RedString(level)
	case r.Level >= slog.LevelWarn:
		level = color.YellowString(level)
	case r.Level >= slog.LevelInfo:
		level = color.BlueString(level)
	default:
		level = color.MagentaString(level)
	}

	fields := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		put(fields, nil, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		put(fields, h.groups, a)
		return true
	})

	var b strings.Builder
	b.WriteString(r.Time.Format(timeFormat))
	b.WriteByte(' ')
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(color.CyanString(r.Message))
	if len(fields) > 0 {
		data, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal attrs: %w", err)
		}
		b.WriteByte(' ')
		b.WriteString(color.WhiteString(string(data)))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func put(fields map[string]any, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	switch a.Value.Kind() {
	case slog.KindGroup:
		sub := make(map[string]any)
		for _, ga := range a.Value.Group() {
			put(sub, nil, ga)
		}
		fields[key] = sub
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			fields[key] = err.Error()
			return
		}
		fields[key] = a.Value.Any()
	default:
		fields[key] = a.Value.Any()
	}
}
