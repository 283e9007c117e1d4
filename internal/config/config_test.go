package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetray-io/codetray/internal/models"
)

func TestGlobalDirHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	got, err := GlobalDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	projects, err := GlobalProjectsFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ProjectsFileName), projects)
}

func TestSaveYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "index.yaml")

	index := models.NewProjectsIndex()
	index.AddProject(models.ProjectEntry{ProjectID: "a", Name: "A", Path: "/tmp/a"})
	require.NoError(t, SaveYAML(path, index))

	loaded, err := LoadYAMLOrDefault(path, models.NewProjectsIndex)
	require.NoError(t, err)
	require.Len(t, loaded.Projects, 1)
	assert.Equal(t, "A", loaded.Projects[0].Name)
	assert.Equal(t, 1, loaded.Projects[0].Position)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestLoadYAMLOrDefaultMissingFile(t *testing.T) {
	settings, err := LoadYAMLOrDefault(filepath.Join(t.TempDir(), "nope.yaml"), models.NewSettings)
	require.NoError(t, err)
	assert.Equal(t, "code", settings.Editor.Command)
}

func TestLoadYAMLInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects: [\n"), 0o644))

	var index models.ProjectsIndex
	err := LoadYAML(path, &index)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name         string
		file         string
		env          map[string]string
		wantEditor   string
		wantStrategy string
		wantErr      bool
	}{
		{
			name:         "defaults without file",
			wantEditor:   "code",
			wantStrategy: StrategyAuto,
		},
		{
			name:         "partial file keeps defaults",
			file:         "editor:\n  command: subl\n",
			wantEditor:   "subl",
			wantStrategy: StrategyAuto,
		},
		{
			name:         "env beats file",
			file:         "editor:\n  command: subl\n",
			env:          map[string]string{"CODETRAY_EDITOR": "nvim", "CODETRAY_STRATEGY": "recreate"},
			wantEditor:   "nvim",
			wantStrategy: StrategyRecreate,
		},
		{
			name:    "unknown strategy",
			file:    "tray:\n  strategy: sideways\n",
			wantErr: true,
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"CODETRAY_LOG_LEVEL": "loud"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv(HomeEnv, dir)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.file != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFileName), []byte(tt.file), 0o644))
			}

			settings, err := LoadSettings()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEditor, settings.Editor.Command)
			assert.Equal(t, tt.wantStrategy, settings.Tray.Strategy)
			assert.Equal(t, "Code Tray", settings.Tray.Tooltip)
		})
	}
}

func TestInstanceInfo(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())

	running, info, err := IsTrayRunning()
	require.NoError(t, err)
	assert.False(t, running)
	assert.Nil(t, info)

	require.NoError(t, SaveInstanceInfo(models.NewInstanceInfo(os.Getpid(), StrategyPatch)))

	// Our own PID never counts as another running tray.
	running, info, err = IsTrayRunning()
	require.NoError(t, err)
	assert.False(t, running)
	require.NotNil(t, info)
	assert.Equal(t, StrategyPatch, info.Strategy)

	require.NoError(t, RemoveInstanceInfo())
	require.NoError(t, RemoveInstanceInfo())
}

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	logger, closeFn, err := NewLogger("debug")
	require.NoError(t, err)
	logger.Infow("hello", "k", "v")
	closeFn()

	data, err := os.ReadFile(filepath.Join(dir, LogsDirName, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)

	_, _, err = NewLogger("chatty")
	assert.Error(t, err)
}
