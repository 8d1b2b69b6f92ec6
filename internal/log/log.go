package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/vbp1/flexlog/internal/filter"
)

// ErrAlreadyInitialized is returned by every Install after the first successful one.
var ErrAlreadyInitialized = errors.New("global logger already initialized")

// ConfigError reports a filter specification the backend rejected.
type ConfigError struct {
	Spec string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid filter spec %q: %v", e.Spec, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Installer builds a filtering logger and makes it the process default,
// at most once.
type Installer struct {
	out        io.Writer
	setDefault func(*slog.Logger)
	installed  atomic.Bool
}

// NewInstaller returns an Installer writing to out and publishing the logger
// through setDefault.
func NewInstaller(out io.Writer, setDefault func(*slog.Logger)) *Installer {
	return &Installer{out: out, setDefault: setDefault}
}

var std = NewInstaller(os.Stderr, slog.SetDefault)

// Default returns the Installer owning slog's process-wide default logger.
func Default() *Installer { return std }

// Install parses spec, builds the logger and hands it to setDefault.
// timed adds a timestamp to every line.
//
// A rejected spec leaves the Installer untouched, so a later call with a
// valid spec can still succeed. Once a logger is installed every further
// call fails with ErrAlreadyInitialized, whatever its spec.
func (i *Installer) Install(spec string, timed bool) (*slog.Logger, error) {
	if i.installed.Load() {
		return nil, ErrAlreadyInitialized
	}
	f, err := filter.Parse(spec)
	if err != nil {
		return nil, &ConfigError{Spec: spec, Err: err}
	}
	l := slog.New(NewHandler(i.out, f, Options{Timed: timed, Color: colorEnabled(i.out)}))
	if !i.installed.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInitialized
	}
	i.setDefault(l)
	return l, nil
}

// Installed reports whether Install has succeeded.
func (i *Installer) Installed() bool { return i.installed.Load() }
