package tray

import (
	"errors"

	"github.com/codetray-io/codetray/internal/config"
	"github.com/codetray-io/codetray/internal/platform"
)

// Strategy applies a freshly rendered menu to the session's icon.
// It is chosen once per process by ResolveStrategy.
type Strategy interface {
	Name() string
	update(s *Session) error
}

// Patch replaces the menu of the registered icon in place.
type Patch struct{}

// Name returns "patch".
func (Patch) Name() string { return config.StrategyPatch }

func (Patch) update(s *Session) error {
	if s.icon == nil {
		return s.register()
	}

	m := s.render()
	s.icon.Tooltip = s.tooltipFor(m)
	if err := s.host.SetMenu(s.icon, m); err != nil {
		// The icon is still registered with its previous menu.
		s.logger.Errorw("Failed to replace tray menu", "error", err)
		return err
	}
	s.icon.Menu = m
	return nil
}

// Recreate unregisters the icon and registers a new one with the new menu.
type Recreate struct{}

// Name returns "recreate".
func (Recreate) Name() string { return config.StrategyRecreate }

// If the old icon cannot be removed it is still shown, so its menu is
// replaced in place instead.
func (Recreate) update(s *Session) error {
	if s.icon != nil {
		err := s.host.Remove(s.icon)
		switch {
		case err == nil, errors.Is(err, ErrNotRegistered):
			s.icon = nil
		default:
			s.logger.Warnw("Failed to remove tray icon, replacing its menu", "error", err)
			return Patch{}.update(s)
		}
	}
	return s.register()
}

// ResolveStrategy picks the update strategy for id. An override of "patch"
// or "recreate" wins over platform detection; "auto" or "" detect.
func ResolveStrategy(id platform.Identity, override string) Strategy {
	switch override {
	case config.StrategyPatch:
		return Patch{}
	case config.StrategyRecreate:
		return Recreate{}
	}

	switch {
	case id.IsWindows(), id.IsLinux():
		return Patch{}
	default:
		// macOS cannot swap the menu of a shown status item.
		return Recreate{}
	}
}
