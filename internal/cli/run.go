package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codetray-io/codetray/internal/config"
	"github.com/codetray-io/codetray/internal/daemon/controller"
	"github.com/codetray-io/codetray/internal/daemon/project"
	"github.com/codetray-io/codetray/internal/daemon/tray"
	"github.com/codetray-io/codetray/internal/daemon/watcher"
	"github.com/codetray-io/codetray/internal/dialog"
	"github.com/codetray-io/codetray/internal/launcher"
	"github.com/codetray-io/codetray/internal/models"
	"github.com/codetray-io/codetray/internal/platform"
	"github.com/codetray-io/codetray/internal/store"
)

var runFlags struct {
	strategy  string
	ephemeral bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the tray icon",
	Long: `Start the tray icon and keep running until Exit is chosen from its menu
or the process receives SIGINT/SIGTERM.

Projects added with 'codetray add' while the tray is running show up in
its menu without a restart.`,
	Args: cobra.NoArgs,
	RunE: runTray,
}

func init() {
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runFlags.strategy, "strategy", "", "menu update strategy: auto, patch or recreate")
	cmd.Flags().BoolVar(&runFlags.ephemeral, "ephemeral", false, "keep projects in memory only")
}

func runTray(cmd *cobra.Command, args []string) error {
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	settings, logger, closeLog, err := setup(false)
	if err != nil {
		return err
	}
	defer closeLog()

	if runFlags.strategy != "" {
		settings.Tray.Strategy = runFlags.strategy
		if err := config.ValidateSettings(settings); err != nil {
			return err
		}
	}

	running, info, err := config.IsTrayRunning()
	if err != nil {
		return fmt.Errorf("failed to check tray status: %w", err)
	}
	if running {
		return fmt.Errorf("codetray is already running (PID %d)", info.PID)
	}

	id := platform.Runtime()

	var (
		s         store.Store
		storePath string
	)
	if runFlags.ephemeral {
		logger.Infow("Using in-memory project store")
		s = store.NewMemoryStore()
	} else {
		ys, err := store.OpenDefault()
		if err != nil {
			return err
		}
		s, storePath = ys, ys.Path()
	}

	registry := project.NewRegistry(s, logger)
	if _, err := registry.LoadAll(); err != nil {
		logger.Errorw("Starting with an empty project list", "error", err)
	}

	strategy := tray.ResolveStrategy(id, settings.Tray.Strategy)
	notifier := tray.NewDesktopNotifier(logger)

	ctrl := controller.New(controller.Config{
		Registry: registry,
		Dialog:   dialog.Select(id, logger),
		Folder:   launcher.NewFolder(id, settings.FileManager, logger),
		Editor:   launcher.NewEditor(settings.Editor.Command, settings.Editor.Args, logger),
		Notifier: notifier,
		Title:    settings.Tray.Tooltip,
		Quit:     tray.Quit,
		Logger:   logger,
	})
	host := tray.NewSystrayHost(id, ctrl.Dispatch, tray.DefaultMaxProjects, logger)
	ctrl.Attach(tray.NewSession(tray.Config{
		Host:     host,
		Strategy: strategy,
		Render:   ctrl.Render,
		Notifier: notifier,
		Image:    tray.DefaultIcon(),
		Tooltip:  settings.Tray.Tooltip,
		Logger:   logger,
	}))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var (
		w       *watcher.Watcher
		stopped chan struct{}
	)

	onReady := func() {
		info := models.NewInstanceInfo(os.Getpid(), strategy.Name())
		if err := config.SaveInstanceInfo(info); err != nil {
			logger.Warnw("Failed to write instance info", "error", err)
		}

		if storePath != "" {
			var err error
			w, err = watcher.New(storePath, watcher.DefaultDebounce, logger)
			if err == nil {
				err = w.Start()
			}
			if err != nil {
				logger.Warnw("Not watching projects file", "path", storePath, "error", err)
				w = nil
			} else {
				go ctrl.Follow(w.Changes())
			}
		}

		stopped = make(chan struct{})
		go func() {
			defer close(stopped)
			_ = ctrl.Run(ctx)
		}()

		// Quit the tray on SIGINT/SIGTERM.
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			select {
			case sig := <-sigCh:
				logger.Infow("Received signal, shutting down", "signal", sig.String())
				tray.Quit()
			case <-ctx.Done():
			}
		}()

		logger.Infow("Tray started",
			"pid", os.Getpid(),
			"os", id.String(),
			"strategy", strategy.Name(),
			"projects", registry.Len(),
		)
	}

	onExit := func() {
		cancel()
		if stopped != nil {
			<-stopped
		}
		if w != nil {
			w.Stop()
		}
		if err := config.RemoveInstanceInfo(); err != nil {
			logger.Warnw("Failed to remove instance info", "error", err)
		}
		logger.Infow("Tray stopped")
	}

	// This blocks the main goroutine until the tray exits.
	tray.Run(onReady, onExit)
	return nil
}
