package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codetray-io/codetray/internal/config"
	"github.com/codetray-io/codetray/internal/models"
)

var configureCmd = &cobra.Command{
	Use:     "configure",
	Aliases: []string{"config"},
	Short:   "Configure codetray settings",
	Long: `Configure codetray settings interactively.

This allows you to modify:
  - Editor command and arguments
  - File manager
  - Tray tooltip
  - Menu update strategy (auto, patch, recreate)
  - Log level

Press Enter to keep the current value for any setting. A running tray
picks up the new settings when it is restarted.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	path, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}
	// The file is edited as stored, without environment overrides.
	settings, err := config.LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	out := cmd.OutOrStdout()
	changed, err := configure(bufio.NewReader(os.Stdin), out, settings)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(out, "\nNo changes made.")
		return nil
	}

	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(out, styleSuccess.Render("\nSettings updated."))
	return nil
}

// configure prompts for every setting and reports whether any changed.
func configure(reader *bufio.Reader, out io.Writer, settings *models.Settings) (bool, error) {
	changed := false
	set := func(field *string, value string) {
		if value != "" && value != *field {
			*field = value
			changed = true
		}
	}

	set(&settings.Editor.Command, prompt(reader, out, "Editor command", settings.Editor.Command))

	args := prompt(reader, out, "Editor arguments", strings.Join(settings.Editor.Args, " "))
	if args != "" && args != strings.Join(settings.Editor.Args, " ") {
		settings.Editor.Args = strings.Fields(args)
		changed = true
	}

	set(&settings.FileManager, prompt(reader, out, "File manager (empty for system default)", settings.FileManager))
	set(&settings.Tray.Tooltip, prompt(reader, out, "Tray tooltip", settings.Tray.Tooltip))
	set(&settings.Tray.Strategy, strings.ToLower(prompt(reader, out, "Menu update strategy (auto/patch/recreate)", settings.Tray.Strategy)))
	set(&settings.Log.Level, strings.ToLower(prompt(reader, out, "Log level (debug/info/warn/error)", settings.Log.Level)))

	if err := config.ValidateSettings(settings); err != nil {
		return false, err
	}
	return changed, nil
}

// prompt shows the current value and returns the trimmed answer, which is
// empty when the user just pressed Enter.
func prompt(reader *bufio.Reader, out io.Writer, label, current string) string {
	fmt.Fprintf(out, "%s [%s]: ", label, current)
	response, _ := reader.ReadString('\n')
	return strings.TrimSpace(response)
}
