package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/codetray-io/codetray/internal/config"
	"github.com/codetray-io/codetray/internal/daemon/project"
	"github.com/codetray-io/codetray/internal/models"
	"github.com/codetray-io/codetray/internal/store"
)

// setup loads settings and builds the logger. One-shot commands pass quiet
// so that info records stay in the log file's level but not on screen.
func setup(quiet bool) (*models.Settings, *zap.SugaredLogger, func(), error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, nil, nil, err
	}

	level := settings.Log.Level
	if quiet && level == "info" {
		level = "warn"
	}
	logger, closeFn, err := config.NewLogger(level)
	if err != nil {
		return nil, nil, nil, err
	}
	return settings, logger, closeFn, nil
}

// openRegistry loads the registry over the default store. An unreadable
// store is an error here; only the tray starts with an empty list.
func openRegistry(logger *zap.SugaredLogger) (*project.Registry, error) {
	s, err := store.OpenDefault()
	if err != nil {
		return nil, err
	}

	registry := project.NewRegistry(s, logger)
	if _, err := registry.LoadAll(); err != nil {
		return nil, fmt.Errorf("failed to load projects from %s: %w", s.Path(), err)
	}
	return registry, nil
}
