package menu

import "github.com/codetray-io/codetray/internal/models"

// Labels shown in the tray menu.
const (
	LabelAdd        = "Add Project..."
	LabelOpenFolder = "Open Folder"
	LabelOpenEditor = "Open in Editor"
	LabelRemove     = "Remove"
	LabelExit       = "Exit"
)

// Bindings are the callbacks a built menu invokes. Per-project callbacks
// receive the project's id and path as they were when the menu was built.
type Bindings struct {
	Add        func()
	Exit       func()
	OpenFolder func(id, path string)
	OpenEditor func(id, path string)
	Remove     func(id, path string)
}

// Build renders projects into the tray menu:
//
//	Add Project...
//	---              (only when there are projects)
//	<name> > Open Folder | Open in Editor | Remove   (one per project)
//	---
//	Exit
//
// Build has no side effects; nil bindings produce entries that do nothing.
func Build(projects []models.Project, b Bindings) Menu {
	items := make([]Item, 0, len(projects)+4)

	items = append(items, Action(LabelAdd, "Register a project folder", thunk(b.Add)))
	if len(projects) > 0 {
		items = append(items, Separator())
	}
	for _, p := range projects {
		items = append(items, projectSubmenu(p, b))
	}
	items = append(items, Separator())
	items = append(items, Action(LabelExit, "Quit Code Tray", thunk(b.Exit)))

	return Menu{Items: items}
}

func projectSubmenu(p models.Project, b Bindings) Item {
	// Copies, so the closures below never see a later change to p.
	id, path := p.ID, p.Path

	return Submenu(p.Name, path,
		Action(LabelOpenFolder, "Open "+path, bind(b.OpenFolder, id, path)),
		Action(LabelOpenEditor, "Open "+path+" in the editor", bind(b.OpenEditor, id, path)),
		Action(LabelRemove, "Remove from this list", bind(b.Remove, id, path)),
	)
}

func bind(fn func(id, path string), id, path string) func() {
	if fn == nil {
		return func() {}
	}
	return func() { fn(id, path) }
}

func thunk(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return fn
}
