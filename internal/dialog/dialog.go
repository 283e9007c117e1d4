// Package dialog collects a project folder and display name from the user.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrCancelled is returned when the user dismisses the dialog.
	ErrCancelled = errors.New("dialog cancelled")
	// ErrInvalidPath is returned for a path that is not an existing folder.
	ErrInvalidPath = errors.New("invalid project path")
	// ErrEmptyName is returned when no name can be derived.
	ErrEmptyName = errors.New("project name is empty")
	// ErrNoDialog is returned when no dialog can be shown on this host.
	ErrNoDialog = errors.New("no input dialog available")
)

// Dialog asks the user for a project. On confirmation onConfirm is called
// once with a validated absolute path and a non-empty name; on cancel it is
// not called and ErrCancelled is returned.
type Dialog interface {
	Prompt(ctx context.Context, onConfirm func(path, name string)) error
}

// Validate normalises user input. The path is trimmed, "~" is expanded, the
// result is made absolute and must be an existing directory. An empty name
// defaults to the folder's base name.
func Validate(path, name string) (string, string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
		}
		path = filepath.Join(home, path[1:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s does not exist", ErrInvalidPath, abs)
	}
	if !info.IsDir() {
		return "", "", fmt.Errorf("%w: %s is not a folder", ErrInvalidPath, abs)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = filepath.Base(abs)
	}
	if name == "" || name == string(filepath.Separator) || name == "." {
		return "", "", ErrEmptyName
	}
	return abs, name, nil
}
