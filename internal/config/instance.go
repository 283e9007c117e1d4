package config

import (
	"os"
	"syscall"

	"github.com/codetray-io/codetray/internal/models"
)

// LoadInstanceInfo loads the running tray info from ~/.codetray/instance.yaml.
// Returns nil if the file doesn't exist.
func LoadInstanceInfo() (*models.InstanceInfo, error) {
	path, err := GlobalInstanceFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.InstanceInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveInstanceInfo saves the running tray info to ~/.codetray/instance.yaml.
func SaveInstanceInfo(info *models.InstanceInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveInstanceInfo removes the instance.yaml file.
func RemoveInstanceInfo() error {
	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsTrayRunning checks if another tray process is still running.
// Returns true if instance.yaml exists and the PID is alive.
func IsTrayRunning() (bool, *models.InstanceInfo, error) {
	info, err := LoadInstanceInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}
	if info.PID == os.Getpid() {
		return false, info, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return false, info, nil
	}

	// Signal 0 only checks existence. On Windows Signal is unsupported and
	// errors, which is treated as "not running".
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = RemoveInstanceInfo()
		return false, info, nil
	}

	return true, info, nil
}
