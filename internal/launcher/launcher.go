// Package launcher starts external programs on a project folder: the
// platform file browser and the configured editor. Launches are
// fire-and-forget; the child is reaped in the background.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"github.com/codetray-io/codetray/internal/platform"
)

// ErrPathNotFound is returned when the project folder no longer exists.
var ErrPathNotFound = errors.New("project path not found")

// Opener opens a path in some external program.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Command is a program and its leading arguments. The path is appended.
type Command struct {
	Name string
	Args []string
}

// FolderCommand returns the file browser command for id. A non-empty
// override (settings file_manager) replaces the platform default.
func FolderCommand(id platform.Identity, override string) Command {
	switch {
	case override != "":
		return Command{Name: override}
	case id.IsWindows():
		return Command{Name: "explorer"}
	case id.IsMac():
		return Command{Name: "open"}
	default:
		return Command{Name: "xdg-open"}
	}
}

// Process launches a Command on a path.
type Process struct {
	cmd    Command
	start  func(*exec.Cmd) error
	logger *zap.SugaredLogger
}

// New returns an Opener that runs cmd with the path as last argument.
func New(cmd Command, logger *zap.SugaredLogger) *Process {
	return &Process{
		cmd:    cmd,
		start:  startDetached,
		logger: logger.Named("launcher"),
	}
}

// NewFolder returns the file browser opener.
func NewFolder(id platform.Identity, override string, logger *zap.SugaredLogger) *Process {
	return New(FolderCommand(id, override), logger)
}

// NewEditor returns the editor opener for an editor command and arguments.
func NewEditor(command string, args []string, logger *zap.SugaredLogger) *Process {
	return New(Command{Name: command, Args: args}, logger)
}

// Open checks that path is an existing directory and starts the program.
// It does not wait for the program to exit, and the program outlives ctx.
func (p *Process) Open(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrPathNotFound, path)
	}

	bin, err := exec.LookPath(p.cmd.Name)
	if err != nil {
		return fmt.Errorf("failed to find %s: %w", p.cmd.Name, err)
	}

	args := append(append([]string{}, p.cmd.Args...), path)
	cmd := exec.Command(bin, args...)
	cmd.Dir = path

	if err := p.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", p.cmd.Name, err)
	}
	p.logger.Debugw("Launched", "command", p.cmd.Name, "path", path)
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
