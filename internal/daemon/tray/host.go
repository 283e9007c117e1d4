// Package tray drives the status-area icon: one Session owns the icon and
// applies menu changes through the Strategy the host OS allows.
package tray

import (
	"errors"

	"github.com/codetray-io/codetray/internal/daemon/menu"
)

var (
	// ErrUnsupported is returned when the host has no usable status area.
	ErrUnsupported = errors.New("system tray is not supported on this host")
	// ErrAlreadyRegistered is returned by Host.Add while another icon is shown.
	ErrAlreadyRegistered = errors.New("a tray icon is already registered")
	// ErrNotRegistered is returned when an operation targets an icon the
	// host is not showing.
	ErrNotRegistered = errors.New("tray icon is not registered")
	// ErrNotInitialized is returned by Session.Update before Session.Init.
	ErrNotInitialized = errors.New("tray session is not initialized")
)

// Icon is one status-area registration.
type Icon struct {
	Image   []byte
	Tooltip string
	Menu    menu.Menu
}

// Host is the OS tray binding. A Host shows at most one icon at a time.
type Host interface {
	// Available reports whether icons can be shown at all.
	Available() error

	// Add registers icon with the OS.
	Add(icon *Icon) error

	// Remove unregisters icon. An error other than ErrNotRegistered means
	// icon is still registered.
	Remove(icon *Icon) error

	// SetMenu replaces the menu and tooltip of a registered icon in place.
	SetMenu(icon *Icon, m menu.Menu) error
}

// Notifier shows a message to the user outside the tray.
type Notifier interface {
	Notify(title, message string) error
}
