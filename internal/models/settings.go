package models

// EditorConfig describes how to launch the external editor.
type EditorConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"` // Inserted before the project path
}

// TrayConfig holds tray icon settings.
type TrayConfig struct {
	Tooltip  string `yaml:"tooltip"`
	Strategy string `yaml:"strategy"` // "auto" | "patch" | "recreate"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// Settings represents global application settings.
// This corresponds to ~/.codetray/settings.yaml.
type Settings struct {
	Version     int          `yaml:"version"`
	Editor      EditorConfig `yaml:"editor"`
	FileManager string       `yaml:"file_manager"` // Empty means platform default
	Tray        TrayConfig   `yaml:"tray"`
	Log         LogConfig    `yaml:"log"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Editor: EditorConfig{
			Command: "code",
		},
		Tray: TrayConfig{
			Tooltip:  "Code Tray",
			Strategy: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
