// Package filter parses filter specifications of the form
//
//	info,example.com/app/db=debug,noisy=off#regexp
//
// and answers whether a record of a given module and level is enabled.
// Module names are Go package paths, so the optional message pattern is
// introduced by '#' rather than '/'.
package filter

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	// LevelTrace is one step more verbose than slog.LevelDebug.
	LevelTrace = slog.LevelDebug - 4
	// LevelOff disables every record.
	LevelOff = slog.Level(math.MaxInt32)
)

// Directive enables records of Module at Level and above.
// An empty Module is the default directive.
type Directive struct {
	Module string
	Level  slog.Level
}

// Filter is a parsed filter specification. The zero value enables nothing.
type Filter struct {
	directives []Directive // sorted by module length, shortest first
	msg        *regexp.Regexp
	min        slog.Level
}

// ParseError reports a directive the grammar does not accept.
type ParseError struct {
	Directive string
	Reason    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid directive %q: %s", e.Directive, e.Reason)
}

// Parse parses spec. A spec without any directive enables errors only.
func Parse(spec string) (*Filter, error) {
	mods, pattern, hasPattern := strings.Cut(spec, "#")

	f := &Filter{}
	for _, raw := range strings.Split(mods, ",") {
		item := strings.TrimSpace(raw)
		if item == "" {
			continue
		}
		d, err := parseDirective(item)
		if err != nil {
			return nil, err
		}
		f.add(d)
	}
	if len(f.directives) == 0 {
		f.add(Directive{Level: slog.LevelError})
	}

	if hasPattern {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &ParseError{Directive: "#" + pattern, Reason: err.Error()}
		}
		f.msg = re
	}

	sort.SliceStable(f.directives, func(i, j int) bool {
		return len(f.directives[i].Module) < len(f.directives[j].Module)
	})
	f.min = LevelOff
	for _, d := range f.directives {
		if d.Level < f.min {
			f.min = d.Level
		}
	}
	return f, nil
}

// add replaces an earlier directive for the same module.
func (f *Filter) add(d Directive) {
	for i := range f.directives {
		if f.directives[i].Module == d.Module {
			f.directives[i] = d
			return
		}
	}
	f.directives = append(f.directives, d)
}

func parseDirective(item string) (Directive, error) {
	parts := strings.Split(item, "=")
	switch len(parts) {
	case 1:
		if lvl, ok := ParseLevel(parts[0]); ok {
			return Directive{Level: lvl}, nil
		}
		if !isModuleName(parts[0]) {
			return Directive{}, &ParseError{Directive: item, Reason: "not a level or module name"}
		}
		return Directive{Module: parts[0], Level: LevelTrace}, nil
	case 2:
		mod, lvlText := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if mod == "" || !isModuleName(mod) {
			return Directive{}, &ParseError{Directive: item, Reason: "invalid module name"}
		}
		if lvlText == "" {
			return Directive{Module: mod, Level: LevelTrace}, nil
		}
		lvl, ok := ParseLevel(lvlText)
		if !ok {
			return Directive{}, &ParseError{Directive: item, Reason: fmt.Sprintf("unknown level %q", lvlText)}
		}
		return Directive{Module: mod, Level: lvl}, nil
	default:
		return Directive{}, &ParseError{Directive: item, Reason: "more than one '='"}
	}
}

// ParseLevel maps a level name to its slog level. Names are case-insensitive.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, true
	case "error":
		return slog.LevelError, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "info":
		return slog.LevelInfo, true
	case "debug":
		return slog.LevelDebug, true
	case "trace":
		return LevelTrace, true
	}
	return 0, false
}

func isModuleName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == ':', r == '.', r == '/', r == '-':
		default:
			return false
		}
	}
	return true
}

// Enabled reports whether a record of module at level passes the directives.
func (f *Filter) Enabled(module string, level slog.Level) bool {
	if f == nil {
		return false
	}
	for i := len(f.directives) - 1; i >= 0; i-- {
		d := f.directives[i]
		if strings.HasPrefix(module, d.Module) {
			return d.Level != LevelOff && level >= d.Level
		}
	}
	return false
}

// MinLevel is the most verbose level any directive enables.
func (f *Filter) MinLevel() slog.Level {
	if f == nil || len(f.directives) == 0 {
		return LevelOff
	}
	return f.min
}

// Matches reports whether msg passes the message pattern, if any.
func (f *Filter) Matches(msg string) bool {
	if f == nil || f.msg == nil {
		return true
	}
	return f.msg.MatchString(msg)
}

// Directives returns a copy of the parsed directives, shortest module first.
func (f *Filter) Directives() []Directive {
	if f == nil {
		return nil
	}
	return append([]Directive(nil), f.directives...)
}
