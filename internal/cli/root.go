// Package cli implements the codetray CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codetray",
	Short: "Keep your projects one click away in the system tray",
	Long: `Codetray keeps a list of project folders in the system tray.
From the tray icon you can open a project's folder, open it in your
editor, add new projects and remove old ones.

Without a subcommand, codetray starts the tray icon.`,
	Args:          cobra.NoArgs,
	RunE:          runTray,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	addRunFlags(rootCmd)

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(versionCmd)
}
