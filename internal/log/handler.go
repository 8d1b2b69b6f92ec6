package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/vbp1/flexlog/internal/filter"
)

// ModuleKey names the attribute carrying a record's module. Records without
// it are attributed to the Go package of the calling function.
const ModuleKey = "module"

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Options control the text produced by a Handler.
type Options struct {
	Timed bool
	Color bool
}

// Handler applies a filter.Filter in front of a tint handler.
type Handler struct {
	next    slog.Handler
	filter  *filter.Filter
	module  string
	bound   bool
	grouped bool
	timed   bool
}

// NewHandler returns a Handler writing records accepted by f to w.
func NewHandler(w io.Writer, f *filter.Filter, opts Options) *Handler {
	return &Handler{
		filter: f,
		timed:  opts.Timed,
		next: tint.NewHandler(w, &tint.Options{
			Level:      f.MinLevel(),
			TimeFormat: timeFormat,
			NoColor:    !opts.Color,
		}),
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	if h.bound {
		return h.filter.Enabled(h.module, level)
	}
	// module unknown until Handle sees the record
	return level >= h.filter.MinLevel()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	module, ok := h.module, h.bound
	if !ok && !h.grouped {
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == ModuleKey {
				module, ok = a.Value.String(), true
				return false
			}
			return true
		})
	}
	if !ok {
		module = callerPackage(r.PC)
	}
	if !h.filter.Enabled(module, r.Level) || !h.filter.Matches(r.Message) {
		return nil
	}
	if !h.timed {
		// tint omits the time of a zero-time record
		r.Time = time.Time{}
	}
	return h.next.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.next = h.next.WithAttrs(attrs)
	if !h.grouped {
		for _, a := range attrs {
			if a.Key == ModuleKey {
				h2.module, h2.bound = a.Value.String(), true
			}
		}
	}
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.next = h.next.WithGroup(name)
	h2.grouped = true
	return &h2
}

func callerPackage(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	fr, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return packagePath(fr.Function)
}

// packagePath strips the function part of a qualified name:
// "example.com/app/db.(*Pool).Get" -> "example.com/app/db".
func packagePath(fn string) string {
	slash := strings.LastIndex(fn, "/")
	if i := strings.Index(fn[slash+1:], "."); i >= 0 {
		return fn[:slash+1+i]
	}
	return fn
}
