package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/codetray-io/codetray/internal/daemon/project"
	"github.com/codetray-io/codetray/internal/dialog"
	"github.com/codetray-io/codetray/internal/models"
	"github.com/codetray-io/codetray/internal/store"
)

func newRegistry(t *testing.T, projects ...models.Project) *project.Registry {
	t.Helper()
	r := project.NewRegistry(store.NewMemoryStore(projects...), zaptest.NewLogger(t).Sugar())
	_, err := r.LoadAll()
	require.NoError(t, err)
	return r
}

func TestAddProject(t *testing.T) {
	dir := t.TempDir()
	r := newRegistry(t)

	var out bytes.Buffer
	require.NoError(t, addProject(&out, r, dir, ""))

	all := r.All()
	require.Len(t, all, 1)
	assert.Equal(t, dir, all[0].Path)
	assert.Contains(t, out.String(), "Added")
}

func TestAddProjectInvalidPath(t *testing.T) {
	r := newRegistry(t)

	err := addProject(&bytes.Buffer{}, r, "/does/not/exist/anywhere", "x")
	assert.ErrorIs(t, err, dialog.ErrInvalidPath)
	assert.Zero(t, r.Len())
}

func TestResolveProject(t *testing.T) {
	r := newRegistry(t,
		models.Project{ID: "aaaa1111-0000", Name: "api", Path: "/src/api"},
		models.Project{ID: "aaaa2222-0000", Name: "web", Path: "/src/web"},
		models.Project{ID: "bbbb3333-0000", Name: "cli", Path: "/src/cli"},
	)

	tests := []struct {
		name    string
		key     string
		wantID  string
		wantErr string
	}{
		{name: "full id", key: "aaaa2222-0000", wantID: "aaaa2222-0000"},
		{name: "name", key: "cli", wantID: "bbbb3333-0000"},
		{name: "unique prefix", key: "bbbb3", wantID: "bbbb3333-0000"},
		{name: "ambiguous prefix", key: "aaaa", wantErr: "ambiguous"},
		{name: "short prefix ignored", key: "bbb", wantErr: "not found"},
		{name: "unknown", key: "nope", wantErr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := resolveProject(r, tt.key)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, p.ID)
		})
	}
}

func TestRemoveProject(t *testing.T) {
	r := newRegistry(t,
		models.Project{Name: "api", Path: "/src/api"},
		models.Project{Name: "web", Path: "/src/web"},
	)

	var out bytes.Buffer
	require.NoError(t, removeProject(&out, r, "api"))

	all := r.All()
	require.Len(t, all, 1)
	assert.Equal(t, "web", all[0].Name)
	assert.Contains(t, out.String(), "Removed")

	err := removeProject(&out, r, "api")
	assert.ErrorIs(t, err, project.ErrNotFound)
}

func TestPrintProjects(t *testing.T) {
	var out bytes.Buffer
	printProjects(&out, nil)
	assert.Contains(t, out.String(), "No projects")

	out.Reset()
	printProjects(&out, []models.Project{
		{ID: "12345678-aaaa", Name: "api", Path: "/src/api"},
		{ID: "87654321-bbbb", Name: "website", Path: "/src/website"},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "12345678")
	assert.NotContains(t, lines[1], "aaaa")
	assert.Contains(t, lines[2], "website")
	assert.Contains(t, lines[2], "/src/website")
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "/src/api", truncatePath("/src/api", 20))

	long := "/home/someone/work/clients/acme/projects/backend"
	got := truncatePath(long, 20)
	assert.Equal(t, 20, len([]rune(got)))
	assert.True(t, strings.HasPrefix(got, "…"))
	assert.True(t, strings.HasSuffix(got, "projects/backend"))
}

func TestConfigure(t *testing.T) {
	settings := models.NewSettings()
	// editor, args, file manager, tooltip, strategy, log level
	input := strings.Join([]string{
		"nvim",
		"--remote",
		"",
		"",
		"Recreate",
		"",
	}, "\n") + "\n"

	var out bytes.Buffer
	changed, err := configure(bufio.NewReader(strings.NewReader(input)), &out, settings)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, "nvim", settings.Editor.Command)
	assert.Equal(t, []string{"--remote"}, settings.Editor.Args)
	assert.Equal(t, "Code Tray", settings.Tray.Tooltip)
	assert.Equal(t, "recreate", settings.Tray.Strategy)
	assert.Equal(t, "info", settings.Log.Level)
}

func TestConfigureKeepsValues(t *testing.T) {
	settings := models.NewSettings()

	changed, err := configure(bufio.NewReader(strings.NewReader(strings.Repeat("\n", 6))), &bytes.Buffer{}, settings)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, models.NewSettings(), settings)
}

func TestConfigureRejectsUnknownStrategy(t *testing.T) {
	settings := models.NewSettings()
	input := "\n\n\n\nsometimes\n\n"

	_, err := configure(bufio.NewReader(strings.NewReader(input)), &bytes.Buffer{}, settings)
	assert.Error(t, err)
}

func TestCommandsEndToEnd(t *testing.T) {
	t.Setenv("CODETRAY_HOME", t.TempDir())
	t.Setenv("CODETRAY_LOG_LEVEL", "error")
	dir := t.TempDir()
	t.Cleanup(func() { addName = "" })

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute(), out.String())
		return out.String()
	}

	assert.Contains(t, run("list"), "No projects")
	assert.Contains(t, run("add", dir, "--name", "demo"), "demo")
	addName = ""

	listing := run("ls")
	assert.Contains(t, listing, "demo")
	assert.Contains(t, listing, dir[len(dir)-8:])

	assert.Contains(t, run("rm", "demo"), "Removed")
	assert.Contains(t, run("list"), "No projects")
}
