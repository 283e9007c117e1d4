package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codetray-io/codetray/internal/config"
	"github.com/codetray-io/codetray/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the tray is running",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running tray",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	running, info, err := config.IsTrayRunning()
	if err != nil {
		return fmt.Errorf("failed to check tray status: %w", err)
	}

	s, err := store.OpenDefault()
	if err != nil {
		return err
	}
	count := "unreadable"
	if projects, err := s.FindAll(); err == nil {
		count = fmt.Sprintf("%d", len(projects))
	}

	if !running || info == nil {
		fmt.Fprintln(out, styleWarning.Render("Tray is not running."))
	} else {
		uptime := time.Since(info.StartedAt).Truncate(time.Second)
		fmt.Fprintln(out, styleSuccess.Render("Tray is running."))
		fmt.Fprintf(out, "  %s %d\n", styleLabel.Render("PID:      "), info.PID)
		fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Strategy: "), info.Strategy)
		fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Uptime:   "), uptime)
	}
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Projects: "), count)
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Store:    "), s.Path())
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	running, info, err := config.IsTrayRunning()
	if err != nil {
		return fmt.Errorf("failed to check tray status: %w", err)
	}
	if !running || info == nil {
		fmt.Fprintln(out, "Tray is not running.")
		return nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find tray process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send stop signal: %w", err)
	}

	// Poll for shutdown (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsTrayRunning()
		if err == nil && !stillRunning {
			fmt.Fprintln(out, "Tray stopped.")
			return nil
		}
	}

	return fmt.Errorf("tray did not stop within timeout")
}
