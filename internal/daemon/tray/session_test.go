package tray

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/codetray-io/codetray/internal/daemon/menu"
	"github.com/codetray-io/codetray/internal/models"
	"github.com/codetray-io/codetray/internal/platform"
)

// fakeHost records registrations. Unlike a real binding it accepts a second
// Add so tests can detect a session that leaks icons.
type fakeHost struct {
	availErr  error
	addErr    error
	setErr    error
	removeErr error

	registered    []*Icon
	maxRegistered int
	adds          int
	removes       int
	sets          int
}

func (h *fakeHost) Available() error { return h.availErr }

func (h *fakeHost) Add(icon *Icon) error {
	h.adds++
	if h.addErr != nil {
		return h.addErr
	}
	h.registered = append(h.registered, icon)
	if len(h.registered) > h.maxRegistered {
		h.maxRegistered = len(h.registered)
	}
	return nil
}

func (h *fakeHost) Remove(icon *Icon) error {
	h.removes++
	if h.removeErr != nil {
		return h.removeErr
	}
	for i, r := range h.registered {
		if r == icon {
			h.registered = append(h.registered[:i], h.registered[i+1:]...)
			return nil
		}
	}
	return ErrNotRegistered
}

func (h *fakeHost) SetMenu(icon *Icon, m menu.Menu) error {
	h.sets++
	if h.setErr != nil {
		return h.setErr
	}
	for _, r := range h.registered {
		if r == icon {
			r.Menu = m
			return nil
		}
	}
	return ErrNotRegistered
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Notify(_, message string) error {
	n.messages = append(n.messages, message)
	return nil
}

type fixture struct {
	host     *fakeHost
	notifier *fakeNotifier
	projects []models.Project
	session  *Session
}

func newFixture(t *testing.T, strategy Strategy) *fixture {
	t.Helper()
	f := &fixture{host: &fakeHost{}, notifier: &fakeNotifier{}}
	f.session = NewSession(Config{
		Host:     f.host,
		Strategy: strategy,
		Render:   func() menu.Menu { return menu.Build(f.projects, menu.Bindings{}) },
		Notifier: f.notifier,
		Tooltip:  "Code Tray",
		Logger:   zaptest.NewLogger(t).Sugar(),
	})
	return f
}

func (f *fixture) add(name string) {
	f.projects = append(f.projects, models.Project{ID: name, Name: name, Path: "/tmp/" + name})
}

func (f *fixture) remove(name string) {
	for i, p := range f.projects {
		if p.ID == name {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return
		}
	}
}

func (f *fixture) shownMenu(t *testing.T) menu.Menu {
	t.Helper()
	require.Len(t, f.host.registered, 1)
	return f.host.registered[0].Menu
}

func TestInitShowsIcon(t *testing.T) {
	f := newFixture(t, Patch{})
	f.add("api")

	require.NoError(t, f.session.Init())
	assert.Equal(t, StateShown, f.session.State())
	assert.Len(t, f.shownMenu(t).Submenus(), 1)
	assert.Equal(t, "Code Tray (1 project)", f.host.registered[0].Tooltip)
	assert.Empty(t, f.notifier.messages)
}

func TestInitIsIdempotent(t *testing.T) {
	f := newFixture(t, Patch{})
	require.NoError(t, f.session.Init())
	require.NoError(t, f.session.Init())
	assert.Equal(t, 1, f.host.adds)
}

func TestInitUnsupportedHost(t *testing.T) {
	f := newFixture(t, Patch{})
	f.host.availErr = platform.ErrNoTrayHost

	err := f.session.Init()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, StateHidden, f.session.State())
	assert.ErrorIs(t, f.session.Err(), ErrUnsupported)
	assert.Zero(t, f.host.adds)
	assert.Len(t, f.notifier.messages, 1)
}

func TestInitRegistrationFailure(t *testing.T) {
	f := newFixture(t, Recreate{})
	f.host.addErr = errors.New("status bar full")

	err := f.session.Init()
	require.Error(t, err)
	assert.Equal(t, StateHidden, f.session.State())
	assert.Len(t, f.notifier.messages, 1)
	assert.Empty(t, f.host.registered)
}

func TestUpdateBeforeInit(t *testing.T) {
	f := newFixture(t, Patch{})
	assert.ErrorIs(t, f.session.Update(), ErrNotInitialized)
}

func TestPatchUpdateKeepsSingleIcon(t *testing.T) {
	f := newFixture(t, Patch{})
	require.NoError(t, f.session.Init())
	icon := f.host.registered[0]

	for _, name := range []string{"a", "b", "c"} {
		f.add(name)
		require.NoError(t, f.session.Update())
	}
	f.remove("b")
	require.NoError(t, f.session.Update())

	assert.Equal(t, 1, f.host.adds)
	assert.Zero(t, f.host.removes)
	assert.Equal(t, 4, f.host.sets)
	assert.Equal(t, 1, f.host.maxRegistered)
	assert.Same(t, icon, f.host.registered[0])

	subs := f.shownMenu(t).Submenus()
	require.Len(t, subs, 2)
	assert.Equal(t, "a", subs[0].Label)
	assert.Equal(t, "c", subs[1].Label)
	assert.Equal(t, "Code Tray (2 projects)", icon.Tooltip)
}

func TestPatchSetMenuFailureKeepsIcon(t *testing.T) {
	f := newFixture(t, Patch{})
	require.NoError(t, f.session.Init())

	f.host.setErr = errors.New("menu busy")
	f.add("a")
	require.Error(t, f.session.Update())
	assert.Equal(t, StateShown, f.session.State())
	assert.Len(t, f.host.registered, 1)
	assert.Empty(t, f.shownMenu(t).Submenus())
}

func TestRecreateInterleavedOperations(t *testing.T) {
	f := newFixture(t, Recreate{})
	require.NoError(t, f.session.Init())

	ops := []struct {
		add  bool
		name string
	}{
		{true, "a"}, {true, "b"}, {false, "a"}, {true, "c"},
		{true, "d"}, {false, "c"}, {false, "b"}, {true, "e"},
	}
	for _, op := range ops {
		if op.add {
			f.add(op.name)
		} else {
			f.remove(op.name)
		}
		require.NoError(t, f.session.Update())
		assert.Len(t, f.host.registered, 1)
	}

	assert.Equal(t, 1, f.host.maxRegistered)
	assert.Equal(t, len(ops)+1, f.host.adds)
	assert.Equal(t, len(ops), f.host.removes)
	assert.Zero(t, f.host.sets)

	var labels []string
	for _, s := range f.shownMenu(t).Submenus() {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"d", "e"}, labels)
}

func TestRecreateFailureDiscardsStaleIcon(t *testing.T) {
	f := newFixture(t, Recreate{})
	require.NoError(t, f.session.Init())

	f.host.addErr = errors.New("window server gone")
	f.add("a")
	require.Error(t, f.session.Update())
	assert.Equal(t, StateHidden, f.session.State())
	assert.Empty(t, f.host.registered)
	assert.Len(t, f.notifier.messages, 1)

	// Still failing: no second notice, nothing removed twice.
	require.Error(t, f.session.Update())
	assert.Len(t, f.notifier.messages, 1)
	assert.Equal(t, 1, f.host.removes)

	// A later update can bring the icon back.
	f.host.addErr = nil
	require.NoError(t, f.session.Update())
	assert.Equal(t, StateShown, f.session.State())
	assert.Nil(t, f.session.Err())
	assert.Len(t, f.shownMenu(t).Submenus(), 1)
}

func TestPatchRecoversFromHidden(t *testing.T) {
	f := newFixture(t, Patch{})
	f.host.availErr = platform.ErrNoTrayHost
	require.Error(t, f.session.Init())

	f.host.availErr = nil
	require.NoError(t, f.session.Update())
	assert.Equal(t, StateShown, f.session.State())
	assert.Equal(t, 1, f.host.maxRegistered)
}

func TestClose(t *testing.T) {
	f := newFixture(t, Recreate{})
	require.NoError(t, f.session.Init())

	require.NoError(t, f.session.Close())
	assert.Empty(t, f.host.registered)
	assert.Equal(t, StateUninitialized, f.session.State())

	require.NoError(t, f.session.Close())
	assert.Equal(t, 1, f.host.removes)
}

func TestResolveStrategy(t *testing.T) {
	tests := []struct {
		goos     string
		override string
		want     string
	}{
		{"windows", "auto", "patch"},
		{"linux", "", "patch"},
		{"darwin", "auto", "recreate"},
		{"plan9", "auto", "recreate"},
		{"darwin", "patch", "patch"},
		{"windows", "recreate", "recreate"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.override, func(t *testing.T) {
			got := ResolveStrategy(platform.OS(tt.goos), tt.override)
			assert.Equal(t, tt.want, got.Name())
		})
	}
}

func TestRecreateRemoveFailureReplacesMenuInPlace(t *testing.T) {
	f := newFixture(t, Recreate{})
	require.NoError(t, f.session.Init())

	f.host.removeErr = errors.New("status item busy")
	f.add("api")
	require.NoError(t, f.session.Update())

	assert.Equal(t, StateShown, f.session.State())
	require.Len(t, f.host.registered, 1)
	assert.Equal(t, 1, f.host.maxRegistered)
	assert.Len(t, f.host.registered[0].Menu.Submenus(), 1)

	// Once removal works again the icon is recreated as usual.
	f.host.removeErr = nil
	f.add("web")
	require.NoError(t, f.session.Update())

	assert.Equal(t, StateShown, f.session.State())
	require.Len(t, f.host.registered, 1)
	assert.Len(t, f.host.registered[0].Menu.Submenus(), 2)
	assert.Empty(t, f.notifier.messages)
}
