// Package menu renders the project list into a tray menu description.
// The description is plain data: it has no tie to any OS binding and can
// be compared and inspected in tests.
package menu

// Kind distinguishes menu entries.
type Kind int

// Menu entry kinds.
const (
	KindAction Kind = iota
	KindSeparator
	KindSubmenu
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindSeparator:
		return "separator"
	case KindSubmenu:
		return "submenu"
	default:
		return "unknown"
	}
}

// Item is one menu entry. Actions carry OnClick, submenus carry Children.
type Item struct {
	Kind     Kind
	Label    string
	Tooltip  string
	OnClick  func()
	Children []Item
}

// Menu is the full two-level tray menu.
type Menu struct {
	Items []Item
}

// Separator returns a separator entry.
func Separator() Item {
	return Item{Kind: KindSeparator}
}

// Action returns a clickable entry.
func Action(label, tooltip string, onClick func()) Item {
	return Item{Kind: KindAction, Label: label, Tooltip: tooltip, OnClick: onClick}
}

// Submenu returns an entry that opens children.
func Submenu(label, tooltip string, children ...Item) Item {
	return Item{Kind: KindSubmenu, Label: label, Tooltip: tooltip, Children: children}
}

// Submenus returns the submenu entries in order.
func (m Menu) Submenus() []Item {
	var out []Item
	for _, it := range m.Items {
		if it.Kind == KindSubmenu {
			out = append(out, it)
		}
	}
	return out
}

// Shape describes the menu structure without callbacks, e.g.
// "action:Add Project|separator|submenu:api[action:Open Folder,...]".
// Two menus with equal shapes look identical to the user.
func (m Menu) Shape() string {
	return shape(m.Items)
}

func shape(items []Item) string {
	s := ""
	for i, it := range items {
		if i > 0 {
			s += "|"
		}
		s += it.Kind.String()
		if it.Kind != KindSeparator {
			s += ":" + it.Label
		}
		if len(it.Children) > 0 {
			s += "[" + shape(it.Children) + "]"
		}
	}
	return s
}
