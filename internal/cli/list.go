package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/codetray-io/codetray/internal/models"
)

// maxPathWidth bounds the PATH column; longer paths keep their tail.
const maxPathWidth = 60

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects in menu order",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	_, logger, closeLog, err := setup(true)
	if err != nil {
		return err
	}
	defer closeLog()

	registry, err := openRegistry(logger)
	if err != nil {
		return err
	}
	printProjects(cmd.OutOrStdout(), registry.All())
	return nil
}

func printProjects(out io.Writer, projects []models.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects. Run 'codetray add' to add one.")
		return
	}

	nameWidth := len("NAME")
	for _, p := range projects {
		nameWidth = max(nameWidth, lipgloss.Width(p.Name))
	}

	fmt.Fprintf(out, "%s  %s  %s\n",
		styleHeader.Render(pad("ID", 8)),
		styleHeader.Render(pad("NAME", nameWidth)),
		styleHeader.Render("PATH"),
	)
	for _, p := range projects {
		fmt.Fprintf(out, "%s  %s  %s\n",
			styleLabel.Render(pad(shortID(p.ID), 8)),
			styleValue.Render(pad(p.Name, nameWidth)),
			styleHint.Render(truncatePath(p.Path, maxPathWidth)),
		)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// truncatePath shortens a path from the left so the project folder stays
// visible.
func truncatePath(path string, width int) string {
	if ansi.StringWidth(path) <= width {
		return path
	}
	return ansi.TruncateLeft(path, ansi.StringWidth(path)-width+1, "…")
}
