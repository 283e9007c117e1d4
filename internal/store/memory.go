package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/codetray-io/codetray/internal/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is a process-local Store, used by `codetray run --ephemeral`
// and in tests.
type MemoryStore struct {
	mu       sync.Mutex
	projects []models.Project
}

// NewMemoryStore returns a store pre-filled with projects. Projects without
// an ID get one.
func NewMemoryStore(projects ...models.Project) *MemoryStore {
	s := &MemoryStore{}
	for _, p := range projects {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		s.projects = append(s.projects, p)
	}
	return s
}

// FindAll returns a copy of the stored projects.
func (s *MemoryStore) FindAll() ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out, nil
}

// Insert appends p under a fresh UUID.
func (s *MemoryStore) Insert(p models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	s.projects = append(s.projects, p)
	return p, nil
}

// Delete removes the project with id.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
