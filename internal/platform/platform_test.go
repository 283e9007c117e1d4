package platform

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func TestOSPredicates(t *testing.T) {
	tests := []struct {
		goos    OS
		windows bool
		mac     bool
		linux   bool
	}{
		{"windows", true, false, false},
		{"darwin", false, true, false},
		{"linux", false, false, true},
		{"freebsd", false, false, true},
		{"plan9", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.goos.String(), func(t *testing.T) {
			assert.Equal(t, tt.windows, tt.goos.IsWindows())
			assert.Equal(t, tt.mac, tt.goos.IsMac())
			assert.Equal(t, tt.linux, tt.goos.IsLinux())
		})
	}
}

func TestProbeTray(t *testing.T) {
	assert.NoError(t, ProbeTray(OS("windows")))
	assert.NoError(t, ProbeTray(OS("darwin")))
	assert.ErrorIs(t, ProbeTray(OS("plan9")), ErrNoTrayHost)
}

// fakeBus answers NameHasOwner with a fixed reply.
type fakeBus struct {
	dbus.BusObject
	owned bool
	err   error
	asked []string
}

func (b *fakeBus) Call(method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	b.asked = append(b.asked, method+" "+args[0].(string))
	if b.err != nil {
		return &dbus.Call{Err: b.err}
	}
	return &dbus.Call{Body: []interface{}{b.owned}}
}

func TestHasOwner(t *testing.T) {
	bus := &fakeBus{owned: true}
	assert.NoError(t, hasOwner(bus, StatusNotifierWatcher))
	assert.Equal(t, []string{dbusNameHasOwner + " " + StatusNotifierWatcher}, bus.asked)

	assert.ErrorIs(t, hasOwner(&fakeBus{owned: false}, StatusNotifierWatcher), ErrNoTrayHost)
	assert.ErrorIs(t, hasOwner(&fakeBus{err: errors.New("no reply")}, StatusNotifierWatcher), ErrNoTrayHost)
}
