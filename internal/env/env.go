package env

import (
	"os"
	"unicode/utf8"
)

// Lookup returns the value of the environment variable named key.
// A variable whose value is not valid UTF-8 is reported as not set,
// the same as a missing one.
func Lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || !utf8.ValidString(v) {
		return "", false
	}
	return v, true
}
