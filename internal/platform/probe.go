package platform

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	// StatusNotifierWatcher is the well-known bus name of the freedesktop
	// tray host registry. Tray icons only appear when someone owns it.
	StatusNotifierWatcher = "org.kde.StatusNotifierWatcher"

	dbusNameHasOwner = "org.freedesktop.DBus.NameHasOwner"
)

// ErrNoTrayHost is returned when the desktop session has no tray host.
var ErrNoTrayHost = errors.New("no system tray host is running")

// ProbeTray reports whether a tray host can show icons on id.
// Windows and macOS always provide a status area. On Linux the session bus
// is asked for a StatusNotifierWatcher.
func ProbeTray(id Identity) error {
	switch {
	case id.IsWindows(), id.IsMac():
		return nil
	case id.IsLinux():
		return probeStatusNotifier()
	default:
		return fmt.Errorf("%w: unsupported platform", ErrNoTrayHost)
	}
}

func probeStatusNotifier() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("%w: failed to connect to session bus: %w", ErrNoTrayHost, err)
	}
	defer func() { _ = conn.Close() }()

	return hasOwner(conn.BusObject(), StatusNotifierWatcher)
}

// hasOwner asks the bus daemon whether name is owned.
func hasOwner(bus dbus.BusObject, name string) error {
	var owned bool
	if err := bus.Call(dbusNameHasOwner, 0, name).Store(&owned); err != nil {
		return fmt.Errorf("%w: failed to query %s: %w", ErrNoTrayHost, name, err)
	}
	if !owned {
		return fmt.Errorf("%w: %s is not running", ErrNoTrayHost, name)
	}
	return nil
}
