package tray

import (
	_ "embed"
	"runtime"
)

var (
	//go:embed assets/icon.png
	iconPNG []byte

	//go:embed assets/icon.ico
	iconICO []byte
)

// DefaultIcon returns the tray image in the format the running OS expects.
func DefaultIcon() []byte {
	if runtime.GOOS == "windows" {
		return iconICO
	}
	return iconPNG
}
