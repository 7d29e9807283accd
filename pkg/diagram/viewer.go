package diagram

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Viewer opens a rendered file for the user.
type Viewer interface {
	Open(ctx context.Context, path string) error
}

// SystemViewer hands the file to the host's default application.
type SystemViewer struct {
	goos     string
	lookPath func(string) (string, error)
}

// NewSystemViewer returns a viewer for the running operating system.
func NewSystemViewer() *SystemViewer {
	return &SystemViewer{goos: runtime.GOOS, lookPath: exec.LookPath}
}

// Open starts the platform opener and returns once it is running. The opener
// is detached: it is not waited on and is not tied to ctx, so closing the
// image never depends on this process.
func (v *SystemViewer) Open(ctx context.Context, path string) error {
	name, args := openerCommand(v.goos, path)
	bin, err := v.lookPath(name)
	if err != nil {
		return fmt.Errorf("no viewer available: %w", err)
	}
	cmd := exec.Command(bin, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return cmd.Process.Release()
}

func openerCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

var _ Viewer = (*SystemViewer)(nil)
