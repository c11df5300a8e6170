package dvc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/wonny/climata/pkg/logger"
)

// ErrNotInstalled is returned when the dvc binary cannot be found.
var ErrNotInstalled = errors.New("dvc binary not found in PATH (install: https://dvc.org/doc/install)")

// CLI shells out to the external dvc binary. Dependency tracking, stage
// sequencing, and the remote object store all stay DVC's responsibility;
// this wrapper only forwards commands and surfaces exit status.
// ⭐ SSOT: dvc 호출은 이 패키지에서만
type CLI struct {
	logger *logger.Logger
	binary string
}

// New creates a wrapper around the dvc binary.
func New(log *logger.Logger) *CLI {
	return &CLI{
		logger: log.WithField("module", "dvc"),
		binary: "dvc",
	}
}

// Repro runs `dvc repro`: rerun the stages whose declared inputs changed.
func (c *CLI) Repro(ctx context.Context) error {
	return c.run(ctx, "repro")
}

// Push runs `dvc push`: upload tracked artifacts to the configured remote.
func (c *CLI) Push(ctx context.Context) error {
	return c.run(ctx, "push")
}

// Status runs `dvc status`: report which stages are stale.
func (c *CLI) Status(ctx context.Context) error {
	return c.run(ctx, "status")
}

func (c *CLI) run(ctx context.Context, args ...string) error {
	path, err := exec.LookPath(c.binary)
	if err != nil {
		return ErrNotInstalled
	}

	c.logger.WithField("args", args).Debug("Invoking dvc")

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("dvc %v: %w", args, err)
	}
	return nil
}
