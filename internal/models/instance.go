package models

import "time"

// InstanceInfo records the running tray process.
// This corresponds to ~/.codetray/instance.yaml.
type InstanceInfo struct {
	Version   int       `yaml:"version"`
	PID       int       `yaml:"pid"`
	Strategy  string    `yaml:"strategy"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewInstanceInfo creates instance info for the current process.
func NewInstanceInfo(pid int, strategy string) *InstanceInfo {
	return &InstanceInfo{
		Version:   1,
		PID:       pid,
		Strategy:  strategy,
		StartedAt: time.Now().UTC(),
	}
}
