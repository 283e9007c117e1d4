// Package controller wires the registry, the tray session and the
// launchers together and runs every mutation on one goroutine.
package controller

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/codetray-io/codetray/internal/daemon/menu"
	"github.com/codetray-io/codetray/internal/daemon/project"
	"github.com/codetray-io/codetray/internal/daemon/tray"
	"github.com/codetray-io/codetray/internal/dialog"
	"github.com/codetray-io/codetray/internal/launcher"
)

const queueSize = 16

// Config holds the collaborators of a Controller.
type Config struct {
	Registry *project.Registry
	Dialog   dialog.Dialog
	Folder   launcher.Opener
	Editor   launcher.Opener
	Notifier tray.Notifier
	Title    string
	Quit     func()
	Logger   *zap.SugaredLogger
}

// Controller owns the registry and the tray session. Menu clicks, dialog
// confirmations and reloads are queued with Dispatch and executed one at a
// time by Run, so a registry mutation and the menu update that follows it
// are never interleaved with another event.
type Controller struct {
	registry *project.Registry
	dialog   dialog.Dialog
	folder   launcher.Opener
	editor   launcher.Opener
	notifier tray.Notifier
	title    string
	quit     func()
	logger   *zap.SugaredLogger

	session   *tray.Session
	queue     chan func()
	done      chan struct{}
	ctx       context.Context
	prompting atomic.Bool
}

// New creates a controller. Attach a session before calling Run.
func New(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	quit := cfg.Quit
	if quit == nil {
		quit = func() {}
	}
	title := cfg.Title
	if title == "" {
		title = "Code Tray"
	}
	return &Controller{
		registry: cfg.Registry,
		dialog:   cfg.Dialog,
		folder:   cfg.Folder,
		editor:   cfg.Editor,
		notifier: cfg.Notifier,
		title:    title,
		quit:     quit,
		logger:   logger.Named("controller"),
		queue:    make(chan func(), queueSize),
		done:     make(chan struct{}),
		ctx:      context.Background(),
	}
}

// Attach sets the session driven by the controller. The session's Render
// func is normally c.Render.
func (c *Controller) Attach(s *tray.Session) {
	c.session = s
}

// Dispatch queues fn for execution on the loop. Calls made after Run has
// returned are dropped.
func (c *Controller) Dispatch(fn func()) {
	select {
	case c.queue <- fn:
	case <-c.done:
	}
}

// Run shows the icon and executes queued events until ctx is done, then
// removes the icon. A failure to show the icon is not fatal: the session
// retries on the next update.
func (c *Controller) Run(ctx context.Context) error {
	c.ctx = ctx
	defer close(c.done)

	if err := c.session.Init(); err != nil {
		c.logger.Warnw("Tray icon not shown", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			if err := c.session.Close(); err != nil {
				c.logger.Warnw("Failed to remove tray icon", "error", err)
			}
			return nil
		case fn := <-c.queue:
			fn()
		}
	}
}

// Follow dispatches a Reload for every value received on changes. It
// returns when changes is closed or Run has returned.
func (c *Controller) Follow(changes <-chan struct{}) {
	for {
		select {
		case <-c.done:
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			c.Dispatch(c.Reload)
		}
	}
}

// Render builds the menu for the current project list.
func (c *Controller) Render() menu.Menu {
	return menu.Build(c.registry.All(), c.Bindings())
}

// Bindings returns the menu callbacks. They must run on the loop.
func (c *Controller) Bindings() menu.Bindings {
	return menu.Bindings{
		Add:        c.add,
		Exit:       c.exit,
		OpenFolder: c.openFolder,
		OpenEditor: c.openEditor,
		Remove:     c.remove,
	}
}

// Reload picks up changes made to the store by another process.
func (c *Controller) Reload() {
	changed, err := c.registry.Reload()
	if err != nil {
		c.logger.Warnw("Failed to reload projects", "error", err)
		return
	}
	if !changed {
		return
	}
	c.logger.Infow("Projects changed on disk", "count", c.registry.Len())
	c.update()
}

// add opens the input dialog off the loop; confirmation comes back through
// Dispatch. Only one dialog is open at a time.
func (c *Controller) add() {
	if !c.prompting.CompareAndSwap(false, true) {
		c.logger.Debugw("Add dialog already open")
		return
	}

	ctx := c.ctx
	go func() {
		defer c.prompting.Store(false)

		err := c.dialog.Prompt(ctx, func(path, name string) {
			c.Dispatch(func() { c.addProject(path, name) })
		})
		switch {
		case err == nil:
		case errors.Is(err, dialog.ErrCancelled):
			c.logger.Debugw("Add cancelled")
		default:
			c.logger.Warnw("Add dialog failed", "error", err)
			c.notify(err.Error())
		}
	}()
}

func (c *Controller) addProject(path, name string) {
	p, err := c.registry.Add(path, name)
	if err != nil {
		c.logger.Errorw("Failed to add project", "path", path, "name", name, "error", err)
		c.notify("Project could not be saved: " + err.Error())
		return
	}
	c.logger.Debugw("Project added", "id", p.ID, "name", p.Name, "path", p.Path)
	c.update()
}

func (c *Controller) remove(id, path string) {
	if err := c.registry.Remove(id); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			c.logger.Debugw("Project already removed", "id", id)
			return
		}
		c.logger.Errorw("Failed to remove project", "id", id, "path", path, "error", err)
		c.notify("Project could not be removed: " + err.Error())
		return
	}
	c.logger.Debugw("Project removed", "id", id, "path", path)
	c.update()
}

func (c *Controller) openFolder(id, path string) {
	c.open(c.folder, "folder", id, path)
}

func (c *Controller) openEditor(id, path string) {
	c.open(c.editor, "editor", id, path)
}

// open launches best-effort. Failures are logged and change nothing.
func (c *Controller) open(o launcher.Opener, kind, id, path string) {
	if o == nil {
		return
	}
	if err := o.Open(c.ctx, path); err != nil {
		c.logger.Warnw("Launch failed", "kind", kind, "id", id, "path", path, "error", err)
		return
	}
	c.logger.Debugw("Launched", "kind", kind, "path", path)
}

func (c *Controller) exit() {
	c.logger.Infow("Exit requested")
	c.quit()
}

func (c *Controller) update() {
	if err := c.session.Update(); err != nil {
		c.logger.Warnw("Tray update failed", "state", c.session.State().String(), "error", err)
	}
}

func (c *Controller) notify(message string) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Notify(c.title, message); err != nil {
		c.logger.Debugw("Notice not shown", "error", err)
	}
}
