//go:build integration
// +build integration

package util

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// BuildDemo compiles cmd/flexlog-demo into dir and returns the binary path.
func BuildDemo(ctx context.Context, dir string) (string, error) {
	root, errAbs := filepath.Abs("..")
	if errAbs != nil {
		return "", fmt.Errorf("abs path: %w", errAbs)
	}
	bin := filepath.Join(dir, "flexlog-demo")
	build := exec.CommandContext(ctx, "go", "build", "-o", bin, "./cmd/flexlog-demo")
	build.Dir = root
	out, err := build.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("go build: %w\n%s", err, string(out))
	}
	return bin, nil
}

// RunDemo runs bin with args and extra environment entries ("K=V"),
// returning its stderr. NO_COLOR is always set so output is plain text.
func RunDemo(ctx context.Context, bin string, env []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(append(os.Environ(), "NO_COLOR=1"), env...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}
