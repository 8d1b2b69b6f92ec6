// Package flexlog installs a colorized log/slog default logger whose filter
// is chosen at run time.
//
// The string passed to the With variants is looked up as an environment
// variable name first. When the variable is set its value is the filter
// specification, otherwise the string itself is:
//
//	flexlog.InitWith("MYAPP_LOG")                 // filter read from $MYAPP_LOG
//	flexlog.InitWith("info,example.com/db=debug") // literal filter
//
// A string that names a set variable is always taken as a reference, never
// as a literal.
//
// Filter specifications are comma-separated directives: a bare level sets
// the default, "pkg=level" sets the level for every module whose path starts
// with pkg, and a bare "pkg" enables all of its levels. Levels are off, error,
// warn, info, debug and trace. An optional "#regexp" suffix keeps only
// records whose message matches. A record's module is its "module" attribute
// or, failing that, the Go package that logged it.
//
// The global logger can be installed once per process. Later attempts fail
// with ErrAlreadyInitialized.
package flexlog

import (
	"fmt"
	"log/slog"

	"github.com/vbp1/flexlog/internal/env"
	"github.com/vbp1/flexlog/internal/filter"
	"github.com/vbp1/flexlog/internal/log"
)

// DefaultEnv is the variable consulted by Init and TryInit.
const DefaultEnv = "GO_LOG"

// ModuleKey is the attribute that assigns a record to a module.
const ModuleKey = log.ModuleKey

const (
	// LevelTrace is more verbose than slog.LevelDebug.
	LevelTrace = filter.LevelTrace
	// LevelOff is above every level a record can have.
	LevelOff = filter.LevelOff
)

// ErrAlreadyInitialized is returned once a global logger has been installed.
var ErrAlreadyInitialized = log.ErrAlreadyInitialized

// ConfigError reports a filter specification that failed to parse.
// Err holds the parser's diagnostic.
type ConfigError = log.ConfigError

type installer interface {
	Install(spec string, timed bool) (*slog.Logger, error)
}

var backend installer = log.Default()

// Resolve returns the filter specification key stands for: the value of the
// environment variable named key if it is set, key itself otherwise.
// Values that are not valid UTF-8 count as unset.
func Resolve(key string) string {
	if v, ok := env.Lookup(key); ok {
		return v
	}
	return key
}

// TryInit is TryInitWith(DefaultEnv).
func TryInit() error { return TryInitWith(DefaultEnv) }

// TryInitTimed is TryInitTimedWith(DefaultEnv).
func TryInitTimed() error { return TryInitTimedWith(DefaultEnv) }

// TryInitWith installs the global logger with the filter key resolves to.
//
// It returns ErrAlreadyInitialized if a logger was installed before, or a
// *ConfigError if the resolved specification is invalid. A failed call
// leaves no logger installed.
func TryInitWith(key string) error { return TryInitFilters(Resolve(key)) }

// TryInitTimedWith is TryInitWith with a timestamp on every line.
func TryInitTimedWith(key string) error { return TryInitTimedFilters(Resolve(key)) }

// TryInitFilters installs the global logger with spec, skipping the
// environment lookup.
func TryInitFilters(spec string) error {
	_, err := backend.Install(spec, false)
	return err
}

// TryInitTimedFilters is TryInitFilters with a timestamp on every line.
func TryInitTimedFilters(spec string) error {
	_, err := backend.Install(spec, true)
	return err
}

// Init is like TryInit but panics on failure.
func Init() { must(TryInit()) }

// InitTimed is like TryInitTimed but panics on failure.
func InitTimed() { must(TryInitTimed()) }

// InitWith is like TryInitWith but panics on failure.
func InitWith(key string) { must(TryInitWith(key)) }

// InitTimedWith is like TryInitTimedWith but panics on failure.
func InitTimedWith(key string) { must(TryInitTimedWith(key)) }

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("flexlog: %v", err))
	}
}

// Module returns the default logger bound to module name, so directives for
// name apply to its records.
func Module(name string) *slog.Logger {
	return slog.Default().With(ModuleKey, name)
}
