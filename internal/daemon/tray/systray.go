package tray

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getlantern/systray"
	"go.uber.org/zap"

	"github.com/codetray-io/codetray/internal/daemon/menu"
	"github.com/codetray-io/codetray/internal/platform"
)

const (
	// DefaultMaxProjects is the number of pre-allocated project slots.
	DefaultMaxProjects = 30

	maxSubmenuItems = 3
	headerLabel     = "Projects"
)

// ErrLayoutChanged is returned when a menu no longer fits the skeleton
// allocated for the first one.
var ErrLayoutChanged = errors.New("tray menu layout changed")

// Run starts the system tray loop. This blocks the calling goroutine, which
// must be the main one on macOS.
func Run(onReady, onExit func()) {
	systray.Run(onReady, onExit)
}

// Quit stops the system tray loop.
func Quit() {
	systray.Quit()
}

// projectSlot is a pre-allocated project submenu.
type projectSlot struct {
	parent   *systray.MenuItem
	children []*systray.MenuItem
}

// SystrayHost shows the icon through getlantern/systray. That library can
// only append menu items, so the first menu fixes a skeleton of
// pre-allocated items and later menus are applied by retitling, showing
// and hiding them. Removing the icon hides every item; the status item
// itself lives as long as the tray loop.
//
// The skeleton differs from the built menu in two places. Separators
// cannot be hidden, so the separator between the head actions and the
// projects is shown as a disabled "Projects" item that appears only while
// there are projects. Only maxProjects project slots exist; when the list
// is longer a disabled "N more projects not shown" item follows the slots.
type SystrayHost struct {
	identity    platform.Identity
	dispatch    func(func())
	maxProjects int
	logger      *zap.SugaredLogger

	mu        sync.Mutex
	built     bool
	signature string
	head      []*systray.MenuItem
	header    *systray.MenuItem
	slots     []projectSlot
	more      *systray.MenuItem
	tail      []*systray.MenuItem // nil for separators
	actions   map[*systray.MenuItem]func()
	current   *Icon
}

// NewSystrayHost creates a host. Clicks are handed to dispatch, which must
// run them on the goroutine that owns the registry and session.
func NewSystrayHost(id platform.Identity, dispatch func(func()), maxProjects int, logger *zap.SugaredLogger) *SystrayHost {
	if maxProjects <= 0 {
		maxProjects = DefaultMaxProjects
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &SystrayHost{
		identity:    id,
		dispatch:    dispatch,
		maxProjects: maxProjects,
		logger:      logger.Named("systray"),
		actions:     make(map[*systray.MenuItem]func()),
	}
}

// Available probes the desktop for a tray host.
func (h *SystrayHost) Available() error {
	return platform.ProbeTray(h.identity)
}

// Add shows icon. Only one icon can be registered at a time.
func (h *SystrayHost) Add(icon *Icon) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil {
		return ErrAlreadyRegistered
	}
	if err := h.render(icon.Menu); err != nil {
		return err
	}
	if len(icon.Image) > 0 {
		systray.SetTemplateIcon(icon.Image, icon.Image)
	}
	systray.SetTooltip(icon.Tooltip)
	h.current = icon
	return nil
}

// Remove hides icon's menu and forgets its actions.
func (h *SystrayHost) Remove(icon *Icon) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil || h.current != icon {
		return ErrNotRegistered
	}
	h.hideAll()
	systray.SetTooltip("")
	h.actions = make(map[*systray.MenuItem]func())
	h.current = nil
	return nil
}

// SetMenu re-renders the registered icon's menu.
func (h *SystrayHost) SetMenu(icon *Icon, m menu.Menu) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil || h.current != icon {
		return ErrNotRegistered
	}
	if err := h.render(m); err != nil {
		return err
	}
	systray.SetTooltip(icon.Tooltip)
	return nil
}

func (h *SystrayHost) render(m menu.Menu) error {
	l, err := splitLayout(m)
	if err != nil {
		return err
	}

	if !h.built {
		h.build(l)
	} else if sig := l.signature(); sig != h.signature {
		return fmt.Errorf("%w: %s, was %s", ErrLayoutChanged, sig, h.signature)
	}

	actions := make(map[*systray.MenuItem]func())

	for i, it := range l.head {
		showAction(h.head[i], it, actions)
	}

	if l.header {
		h.header.Show()
	} else {
		h.header.Hide()
	}

	if label := overflowLabel(len(l.projects), len(h.slots)); label != "" {
		h.logger.Warnw("Too many projects for the tray menu",
			"shown", len(h.slots), "total", len(l.projects))
		h.more.SetTitle(label)
		h.more.Show()
	} else {
		h.more.Hide()
	}
	for s, slot := range h.slots {
		if s >= len(l.projects) {
			slot.parent.Hide()
			continue
		}
		p := l.projects[s]
		slot.parent.SetTitle(p.Label)
		slot.parent.SetTooltip(p.Tooltip)
		for c, child := range slot.children {
			if c < len(p.Children) {
				showAction(child, p.Children[c], actions)
			} else {
				child.Hide()
			}
		}
		slot.parent.Show()
	}

	for i, it := range l.tail {
		if it.Kind == menu.KindAction {
			showAction(h.tail[i], it, actions)
		}
	}

	h.actions = actions
	return nil
}

// build appends the skeleton for l. Called once, on the first render.
func (h *SystrayHost) build(l layout) {
	for _, it := range l.head {
		h.head = append(h.head, h.addItem(systray.AddMenuItem(it.Label, it.Tooltip)))
	}

	h.header = systray.AddMenuItem(headerLabel, "")
	h.header.Disable()
	h.header.Hide()

	for s := 0; s < h.maxProjects; s++ {
		parent := systray.AddMenuItem("", "")
		slot := projectSlot{parent: parent}
		for c := 0; c < maxSubmenuItems; c++ {
			slot.children = append(slot.children, h.addItem(parent.AddSubMenuItem("", "")))
		}
		parent.Hide()
		h.slots = append(h.slots, slot)
	}

	h.more = systray.AddMenuItem("", "Remove projects to show the rest")
	h.more.Disable()
	h.more.Hide()

	for _, it := range l.tail {
		if it.Kind == menu.KindSeparator {
			systray.AddSeparator()
			h.tail = append(h.tail, nil)
			continue
		}
		h.tail = append(h.tail, h.addItem(systray.AddMenuItem(it.Label, it.Tooltip)))
	}

	h.signature = l.signature()
	h.built = true
}

func (h *SystrayHost) hideAll() {
	for _, item := range h.head {
		item.Hide()
	}
	if h.header != nil {
		h.header.Hide()
	}
	for _, slot := range h.slots {
		slot.parent.Hide()
	}
	if h.more != nil {
		h.more.Hide()
	}
	for _, item := range h.tail {
		if item != nil {
			item.Hide()
		}
	}
}

func (h *SystrayHost) addItem(item *systray.MenuItem) *systray.MenuItem {
	go h.listen(item)
	return item
}

// listen forwards clicks on item to whatever action it currently shows.
func (h *SystrayHost) listen(item *systray.MenuItem) {
	for range item.ClickedCh {
		h.mu.Lock()
		fn := h.actions[item]
		h.mu.Unlock()

		if fn != nil {
			h.dispatch(fn)
		}
	}
}

func showAction(item *systray.MenuItem, it menu.Item, actions map[*systray.MenuItem]func()) {
	item.SetTitle(it.Label)
	item.SetTooltip(it.Tooltip)
	item.Show()
	actions[item] = it.OnClick
}

// overflowLabel returns the title of the item shown when total projects do
// not fit into shown slots, or "" when they fit.
func overflowLabel(total, shown int) string {
	hidden := total - shown
	switch {
	case hidden <= 0:
		return ""
	case hidden == 1:
		return "1 more project not shown"
	default:
		return fmt.Sprintf("%d more projects not shown", hidden)
	}
}

// layout is a menu split into the parts of the skeleton.
type layout struct {
	head     []menu.Item // actions above the projects
	header   bool        // separator between head and projects
	projects []menu.Item
	tail     []menu.Item // separators and actions below the projects
}

func splitLayout(m menu.Menu) (layout, error) {
	var l layout
	items := m.Items
	i := 0

	for i < len(items) && items[i].Kind == menu.KindAction {
		l.head = append(l.head, items[i])
		i++
	}
	if i+1 < len(items) && items[i].Kind == menu.KindSeparator && items[i+1].Kind == menu.KindSubmenu {
		l.header = true
		i++
	}
	for i < len(items) && items[i].Kind == menu.KindSubmenu {
		sub := items[i]
		if len(sub.Children) > maxSubmenuItems {
			return layout{}, fmt.Errorf("submenu %q has %d items, at most %d fit", sub.Label, len(sub.Children), maxSubmenuItems)
		}
		for _, c := range sub.Children {
			if c.Kind != menu.KindAction {
				return layout{}, fmt.Errorf("submenu %q: only actions can be nested", sub.Label)
			}
		}
		l.projects = append(l.projects, sub)
		i++
	}
	for ; i < len(items); i++ {
		if items[i].Kind == menu.KindSubmenu {
			return layout{}, fmt.Errorf("submenu %q must be grouped with the other submenus", items[i].Label)
		}
		l.tail = append(l.tail, items[i])
	}
	return l, nil
}

// signature identifies the fixed parts of the skeleton.
func (l layout) signature() string {
	var b strings.Builder
	fmt.Fprintf(&b, "head=%d tail=", len(l.head))
	for _, it := range l.tail {
		b.WriteString(it.Kind.String()[:1])
	}
	return b.String()
}
