package dialog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/codetray-io/codetray/internal/platform"
)

const dialogTitle = "Add Project"

// runner executes a dialog program and returns its trimmed stdout.
type runner func(ctx context.Context, name string, args ...string) (string, error)

// Native shows the platform's own folder chooser and name prompt:
// zenity on Linux, AppleScript on macOS and PowerShell on Windows.
type Native struct {
	identity platform.Identity
	run      runner
}

// NewNative returns the native dialog for id.
func NewNative(id platform.Identity) *Native {
	return &Native{identity: id, run: runCommand}
}

// Program returns the helper binary the dialog needs on this platform.
func (n *Native) Program() string {
	switch {
	case n.identity.IsWindows():
		return "powershell"
	case n.identity.IsMac():
		return "osascript"
	default:
		return "zenity"
	}
}

// Available reports whether the helper program is installed.
func (n *Native) Available() bool {
	_, err := exec.LookPath(n.Program())
	return err == nil
}

// Prompt implements Dialog.
func (n *Native) Prompt(ctx context.Context, onConfirm func(path, name string)) error {
	folder, err := n.chooseFolder(ctx)
	if err != nil {
		return err
	}

	name, err := n.askName(ctx, filepath.Base(folder))
	if err != nil {
		return err
	}

	path, name, err := Validate(folder, name)
	if err != nil {
		return err
	}
	onConfirm(path, name)
	return nil
}

func (n *Native) chooseFolder(ctx context.Context) (string, error) {
	switch {
	case n.identity.IsWindows():
		return n.run(ctx, "powershell", "-NoProfile", "-Command",
			"Add-Type -AssemblyName System.Windows.Forms; "+
				"$d = New-Object System.Windows.Forms.FolderBrowserDialog; "+
				"$d.Description = 'Select the project folder'; "+
				"if ($d.ShowDialog() -eq 'OK') { $d.SelectedPath } else { exit 1 }")
	case n.identity.IsMac():
		return n.run(ctx, "osascript", "-e",
			`POSIX path of (choose folder with prompt "Select the project folder")`)
	default:
		return n.run(ctx, "zenity", "--file-selection", "--directory", "--title", dialogTitle)
	}
}

func (n *Native) askName(ctx context.Context, suggested string) (string, error) {
	switch {
	case n.identity.IsWindows():
		return n.run(ctx, "powershell", "-NoProfile", "-Command",
			"Add-Type -AssemblyName Microsoft.VisualBasic; "+
				"$n = [Microsoft.VisualBasic.Interaction]::InputBox('Project name', '"+dialogTitle+"', '"+psQuote(suggested)+"'); "+
				"if ($n -eq '') { exit 1 } else { $n }")
	case n.identity.IsMac():
		return n.run(ctx, "osascript", "-e",
			`text returned of (display dialog "Project name" default answer "`+appleQuote(suggested)+`" with title "`+dialogTitle+`")`)
	default:
		return n.run(ctx, "zenity", "--entry", "--title", dialogTitle,
			"--text", "Project name", "--entry-text", suggested)
	}
}

// runCommand runs a dialog helper. A non-zero exit means the user cancelled.
func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("failed to run %s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func appleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func psQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// unavailable is the Dialog used when nothing can be shown.
type unavailable struct {
	program string
}

func (u unavailable) Prompt(context.Context, func(path, name string)) error {
	return fmt.Errorf("%w: install %s or start codetray from a terminal", ErrNoDialog, u.program)
}

// Select picks the dialog for the tray: the native one when its helper is
// installed, else the terminal form when stdin is a terminal.
func Select(id platform.Identity, logger *zap.SugaredLogger) Dialog {
	native := NewNative(id)
	if native.Available() {
		logger.Debugw("Using native dialog", "program", native.Program())
		return native
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		logger.Debugw("Using terminal dialog")
		return Terminal{}
	}
	logger.Warnw("No dialog available for adding projects", "missing", native.Program())
	return unavailable{program: native.Program()}
}
