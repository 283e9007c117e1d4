// Package platform answers questions about the host OS that decide how the
// tray icon is driven.
package platform

import "runtime"

// Identity exposes the host platform predicates.
type Identity interface {
	IsWindows() bool
	IsMac() bool
	IsLinux() bool
}

// OS is an Identity for a GOOS value.
type OS string

// Runtime returns the Identity of the running process.
func Runtime() OS {
	return OS(runtime.GOOS)
}

// IsWindows reports whether the host is Windows.
func (o OS) IsWindows() bool { return o == "windows" }

// IsMac reports whether the host is macOS.
func (o OS) IsMac() bool { return o == "darwin" }

// IsLinux reports whether the host is Linux or a BSD running a freedesktop
// session.
func (o OS) IsLinux() bool {
	switch o {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return true
	}
	return false
}

func (o OS) String() string { return string(o) }
