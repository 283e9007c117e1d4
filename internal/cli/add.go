package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codetray-io/codetray/internal/dialog"
)

var addName string

var addCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Add a project",
	Long: `Add a project folder to the tray menu.

The path defaults to the current directory and the name to the folder's
base name. Run without arguments in a terminal to fill in a form.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "display name in the tray menu")
}

func runAdd(cmd *cobra.Command, args []string) error {
	_, logger, closeLog, err := setup(true)
	if err != nil {
		return err
	}
	defer closeLog()

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	out := cmd.OutOrStdout()
	if path == "" && addName == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path, addName, err = promptProject(cmd.Context(), cwd)
		if errors.Is(err, dialog.ErrCancelled) {
			fmt.Fprintln(out, styleHint.Render("Cancelled."))
			return nil
		}
		if err != nil {
			return err
		}
	}
	if path == "" {
		path = "."
	}

	registry, err := openRegistry(logger)
	if err != nil {
		return err
	}
	return addProject(out, registry, path, addName)
}

func promptProject(ctx context.Context, cwd string) (string, string, error) {
	return dialog.RunForm(ctx, os.Stdin, os.Stdout, cwd, "")
}

// addProject validates the input and adds it to the registry.
func addProject(out io.Writer, registry projectAdder, path, name string) error {
	path, name, err := dialog.Validate(path, name)
	if err != nil {
		return err
	}

	p, err := registry.Add(path, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s %s\n",
		styleSuccess.Render("Added"),
		styleValue.Render(p.Name),
		styleHint.Render("("+p.Path+")"),
	)
	return nil
}
