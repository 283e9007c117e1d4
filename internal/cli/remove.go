package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codetray-io/codetray/internal/daemon/project"
	"github.com/codetray-io/codetray/internal/models"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id|name>",
	Aliases: []string{"rm"},
	Short:   "Remove a project from the tray menu",
	Long: `Remove a project from the tray menu. The folder itself is not touched.

The project is matched by ID, ID prefix as shown by 'codetray list', or name.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

// projectAdder and projectRemover are the parts of project.Registry the
// one-shot commands use.
type projectAdder interface {
	Add(path, name string) (models.Project, error)
}

type projectRemover interface {
	Lookup(key string) (models.Project, bool)
	All() []models.Project
	Remove(id string) error
}

func runRemove(cmd *cobra.Command, args []string) error {
	_, logger, closeLog, err := setup(true)
	if err != nil {
		return err
	}
	defer closeLog()

	registry, err := openRegistry(logger)
	if err != nil {
		return err
	}
	return removeProject(cmd.OutOrStdout(), registry, args[0])
}

func removeProject(out io.Writer, registry projectRemover, key string) error {
	p, err := resolveProject(registry, key)
	if err != nil {
		return err
	}
	if err := registry.Remove(p.ID); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s %s\n",
		styleSuccess.Render("Removed"),
		styleValue.Render(p.Name),
		styleHint.Render("("+p.Path+")"),
	)
	return nil
}

// resolveProject matches key against IDs and names, then against unique
// ID prefixes.
func resolveProject(registry projectRemover, key string) (models.Project, error) {
	if p, ok := registry.Lookup(key); ok {
		return p, nil
	}

	var matches []models.Project
	for _, p := range registry.All() {
		if len(key) >= 4 && strings.HasPrefix(p.ID, key) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Project{}, fmt.Errorf("%w: %s", project.ErrNotFound, key)
	default:
		return models.Project{}, fmt.Errorf("ambiguous project %q matches %d projects", key, len(matches))
	}
}
