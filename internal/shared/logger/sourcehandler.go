package logger

import (
	"context"
	"log/slog"
	"runtime"
)

type sourceHandler struct {
	next   slog.Handler
	levels map[slog.Level]bool
}

// NewSourceHandler wraps next so that records at the given levels carry a source
// attribute. next should be built with AddSource disabled.
func NewSourceHandler(next slog.Handler, levels ...slog.Level) slog.Handler {
	m := make(map[slog.Level]bool, len(levels))
	for _, l := range levels {
		m[l] = true
	}
	return &sourceHandler{next: next, levels: m}
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.levels[r.Level] {
		src := sourceOf(r.PC)
		if src == nil {
			src = callerSource(4)
		}
		r.AddAttrs(slog.Any(slog.SourceKey, src))
	}
	return h.next.Handle(ctx, r)
}

func sourceOf(pc uintptr) *slog.Source {
	if pc == 0 {
		return nil
	}
	f, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return &slog.Source{Function: f.Function, File: f.File, Line: f.Line}
}

func callerSource(skip int) *slog.Source {
	var pcs [1]uintptr
	runtime.Callers(skip, pcs[:])
	return sourceOf(pcs[0])
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceHandler{next: h.next.WithAttrs(attrs), levels: h.levels}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{next: h.next.WithGroup(name), levels: h.levels}
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}
