// Package screen captures screenshots via the platform's native tool and
// hands them to an LLM for analysis. Findings land in working memory as
// insight entries.
package screen

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

const captureTimeout = 15 * time.Second

// Capturer shells out to the platform screenshot tool.
type Capturer struct {
	// Dir receives captured files. Created on first use.
	Dir string

	// command overrides tool selection, for tests.
	command func(ctx context.Context, outPath string) *exec.Cmd
}

// NewCapturer writes screenshots under dir.
func NewCapturer(dir string) *Capturer {
	return &Capturer{Dir: dir}
}

// Capture takes a screenshot and returns the path of the written file.
func (c *Capturer) Capture(ctx context.Context) (string, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", fmt.Errorf("screen: create dir: %w", err)
	}
	outPath := filepath.Join(c.Dir, fmt.Sprintf("shot-%d.png", time.Now().UnixMilli()))

	ctx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	cmd, err := c.buildCommand(ctx, outPath)
	if err != nil {
		return "", err
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("screen: capture failed: %w: %s", err, out)
	}
	if _, err := os.Stat(outPath); err != nil {
		return "", fmt.Errorf("screen: capture produced no file: %w", err)
	}
	return outPath, nil
}

func (c *Capturer) buildCommand(ctx context.Context, outPath string) (*exec.Cmd, error) {
	if c.command != nil {
		return c.command(ctx, outPath), nil
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "screencapture", "-x", outPath), nil
	case "linux":
		if _, err := exec.LookPath("gnome-screenshot"); err == nil {
			return exec.CommandContext(ctx, "gnome-screenshot", "-f", outPath), nil
		}
		if _, err := exec.LookPath("scrot"); err == nil {
			return exec.CommandContext(ctx, "scrot", outPath), nil
		}
		return nil, fmt.Errorf("screen: no screenshot tool found (tried gnome-screenshot, scrot)")
	default:
		return nil, fmt.Errorf("screen: unsupported platform %s", runtime.GOOS)
	}
}
