package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetray-io/codetray/internal/daemon/menu"
	"github.com/codetray-io/codetray/internal/models"
)

func TestSplitLayout(t *testing.T) {
	empty, err := splitLayout(menu.Build(nil, menu.Bindings{}))
	require.NoError(t, err)
	assert.Len(t, empty.head, 1)
	assert.False(t, empty.header)
	assert.Empty(t, empty.projects)
	assert.Len(t, empty.tail, 2)

	full, err := splitLayout(menu.Build([]models.Project{
		{ID: "1", Name: "api", Path: "/api"},
		{ID: "2", Name: "web", Path: "/web"},
	}, menu.Bindings{}))
	require.NoError(t, err)
	assert.Len(t, full.head, 1)
	assert.True(t, full.header)
	assert.Len(t, full.projects, 2)
	assert.Len(t, full.tail, 2)

	// Adding the first project must not change the skeleton.
	assert.Equal(t, empty.signature(), full.signature())
	assert.Equal(t, "head=1 tail=sa", full.signature())
}

func TestSplitLayoutRejects(t *testing.T) {
	tests := []struct {
		name string
		menu menu.Menu
	}{
		{
			name: "scattered submenus",
			menu: menu.Menu{Items: []menu.Item{
				menu.Submenu("a", ""),
				menu.Separator(),
				menu.Submenu("b", ""),
			}},
		},
		{
			name: "too many children",
			menu: menu.Menu{Items: []menu.Item{
				menu.Submenu("a", "",
					menu.Action("1", "", nil), menu.Action("2", "", nil),
					menu.Action("3", "", nil), menu.Action("4", "", nil)),
			}},
		},
		{
			name: "nested submenu",
			menu: menu.Menu{Items: []menu.Item{
				menu.Submenu("a", "", menu.Submenu("b", "")),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := splitLayout(tt.menu)
			assert.Error(t, err)
		})
	}
}

func TestOverflowLabel(t *testing.T) {
	tests := []struct {
		total, shown int
		want         string
	}{
		{total: 0, shown: 30, want: ""},
		{total: 30, shown: 30, want: ""},
		{total: 31, shown: 30, want: "1 more project not shown"},
		{total: 45, shown: 30, want: "15 more projects not shown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, overflowLabel(tt.total, tt.shown), "total=%d shown=%d", tt.total, tt.shown)
	}
}
