// Package project owns the in-memory project list and keeps it in step with
// the persistent store.
package project

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/codetray-io/codetray/internal/models"
	"github.com/codetray-io/codetray/internal/store"
)

var (
	// ErrStoreUnavailable is returned when the store cannot be read.
	ErrStoreUnavailable = errors.New("project store unavailable")
	// ErrPersist is returned when a write to the store fails.
	ErrPersist = errors.New("failed to persist project")
	// ErrNotFound is returned when no project has the requested ID.
	ErrNotFound = errors.New("project not found")
	// ErrInvalidProject is returned for a project without a path.
	ErrInvalidProject = errors.New("invalid project")
)

// Registry is the authoritative project list. Mutations write to the store
// first and touch the in-memory list only after the write succeeded, so the
// two never diverge after a completed call.
type Registry struct {
	store  store.Store
	logger *zap.SugaredLogger

	mu       sync.RWMutex
	projects []models.Project
}

// NewRegistry creates an empty registry over s. Call LoadAll to populate it.
func NewRegistry(s store.Store, logger *zap.SugaredLogger) *Registry {
	return &Registry{
		store:  s,
		logger: logger.Named("registry"),
	}
}

// LoadAll replaces the in-memory list with the store contents. If the store
// cannot be read, the registry is left empty and ErrStoreUnavailable is
// returned.
func (r *Registry) LoadAll() ([]models.Project, error) {
	projects, err := r.store.FindAll()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.projects = nil
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	r.projects = projects
	r.logger.Debugw("Loaded projects", "count", len(projects))
	return clone(projects), nil
}

// Reload re-reads the store and reports whether the list changed. On error
// the current list is kept.
func (r *Registry) Reload() (bool, error) {
	projects, err := r.store.FindAll()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Equal(r.projects, projects) {
		return false, nil
	}
	r.projects = projects
	r.logger.Debugw("Reloaded projects", "count", len(projects))
	return true, nil
}

// Add stores a new project and appends it to the list. The store assigns
// the ID. On failure the list is unchanged.
func (r *Registry) Add(path, name string) (models.Project, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return models.Project{}, fmt.Errorf("%w: empty path", ErrInvalidProject)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.store.Insert(models.Project{Name: name, Path: path})
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	r.projects = append(r.projects, p)
	r.logger.Infow("Added project", "id", p.ID, "name", p.Name, "path", p.Path)
	return p, nil
}

// Remove deletes the project from the store, then from the list. Unknown
// IDs return ErrNotFound without touching the store.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := r.store.Delete(id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
		// Already gone from the store; dropping it here converges the two.
		r.logger.Warnw("Project missing from store, dropping from list", "id", id)
	}

	r.projects = append(r.projects[:i:i], r.projects[i+1:]...)
	r.logger.Infow("Removed project", "id", id)
	return nil
}

// All returns a copy of the current ordered list.
func (r *Registry) All() []models.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.projects)
}

// Len returns the number of projects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}

// Lookup finds a project by ID, falling back to an exact name match.
func (r *Registry) Lookup(key string) (models.Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(key); i >= 0 {
		return r.projects[i], true
	}
	for _, p := range r.projects {
		if p.Name == key {
			return p, true
		}
	}
	return models.Project{}, false
}

func (r *Registry) indexOf(id string) int {
	for i, p := range r.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clone(projects []models.Project) []models.Project {
	out := make([]models.Project, len(projects))
	copy(out, projects)
	return out
}
