package filter

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaultLevel(t *testing.T) {
	f, err := Parse("debug")
	require.NoError(t, err)
	require.Equal(t, []Directive{{Level: slog.LevelDebug}}, f.Directives())

	assert.True(t, f.Enabled("any/pkg", slog.LevelDebug))
	assert.True(t, f.Enabled("", slog.LevelError))
	assert.False(t, f.Enabled("any/pkg", LevelTrace))
	assert.Equal(t, slog.LevelDebug, f.MinLevel())
}

func TestParseEmptyEnablesErrorsOnly(t *testing.T) {
	for _, spec := range []string{"", " ", ",,", " , "} {
		f, err := Parse(spec)
		require.NoError(t, err, "spec %q", spec)
		assert.True(t, f.Enabled("x", slog.LevelError), "spec %q", spec)
		assert.False(t, f.Enabled("x", slog.LevelWarn), "spec %q", spec)
	}
}

func TestParseModules(t *testing.T) {
	f, err := Parse("warn,example.com/app=info, example.com/app/db=trace,example.com/app/db/pool=off")
	require.NoError(t, err)

	cases := []struct {
		module string
		level  slog.Level
		want   bool
	}{
		{"other", slog.LevelInfo, false},
		{"other", slog.LevelWarn, true},
		{"example.com/app", slog.LevelInfo, true},
		{"example.com/app", slog.LevelDebug, false},
		{"example.com/app/http", slog.LevelInfo, true},
		{"example.com/app/db", LevelTrace, true},
		{"example.com/app/db/pool", slog.LevelError, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, f.Enabled(c.module, c.level), "%s@%s", c.module, c.level)
	}
	assert.Equal(t, LevelTrace, f.MinLevel())
}

func TestParseBareModuleEnablesEverything(t *testing.T) {
	f, err := Parse("example.com/app")
	require.NoError(t, err)
	assert.True(t, f.Enabled("example.com/app/db", LevelTrace))
	// no default directive: other modules are off
	assert.False(t, f.Enabled("net/http", slog.LevelError))

	f, err = Parse("example.com/app=")
	require.NoError(t, err)
	assert.True(t, f.Enabled("example.com/app", LevelTrace))
}

func TestParseLaterDirectiveWins(t *testing.T) {
	f, err := Parse("info,app=debug,app=error,warn")
	require.NoError(t, err)
	assert.Len(t, f.Directives(), 2)
	assert.False(t, f.Enabled("app", slog.LevelWarn))
	assert.False(t, f.Enabled("x", slog.LevelInfo))
	assert.True(t, f.Enabled("x", slog.LevelWarn))
}

func TestParseLevelNames(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"OFF": LevelOff, "Error": slog.LevelError, "warn": slog.LevelWarn, "WARNING": slog.LevelWarn,
		"info": slog.LevelInfo, "debug": slog.LevelDebug, "TRACE": LevelTrace,
	} {
		got, ok := ParseLevel(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := ParseLevel("verbose")
	assert.False(t, ok)
}

func TestParseOff(t *testing.T) {
	f, err := Parse("off")
	require.NoError(t, err)
	assert.False(t, f.Enabled("x", slog.LevelError))
	assert.False(t, f.Enabled("x", LevelOff))
}

func TestParseMessagePattern(t *testing.T) {
	f, err := Parse("info#^conn")
	require.NoError(t, err)
	assert.True(t, f.Matches("connected"))
	assert.False(t, f.Matches("disconnected"))

	f, err = Parse("info")
	require.NoError(t, err)
	assert.True(t, f.Matches("anything"))
}

func TestParseErrors(t *testing.T) {
	for _, spec := range []string{"???", "app=loud", "a=b=c", "=debug", "info#(", "my app=info"} {
		_, err := Parse(spec)
		require.Error(t, err, "spec %q", spec)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, "spec %q", spec)
		assert.NotEmpty(t, pe.Reason)
	}
}

func TestNilFilter(t *testing.T) {
	var f *Filter
	assert.False(t, f.Enabled("x", slog.LevelError))
	assert.True(t, f.Matches("x"))
	assert.Equal(t, LevelOff, f.MinLevel())
	assert.Nil(t, f.Directives())
}
