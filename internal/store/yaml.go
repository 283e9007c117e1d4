package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codetray-io/codetray/internal/config"
	"github.com/codetray-io/codetray/internal/models"
)

var _ Store = (*YAMLStore)(nil)

// YAMLStore keeps projects in a projects.yaml index file.
// Every call re-reads the file so edits made by another process are seen.
type YAMLStore struct {
	path string
	mu   sync.Mutex
}

// NewYAMLStore returns a store backed by the index file at path.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// OpenDefault returns a store backed by ~/.codetray/projects.yaml.
func OpenDefault() (*YAMLStore, error) {
	path, err := config.GlobalProjectsFile()
	if err != nil {
		return nil, err
	}
	return NewYAMLStore(path), nil
}

// Path returns the index file location.
func (s *YAMLStore) Path() string {
	return s.path
}

// FindAll returns the projects ordered by position.
func (s *YAMLStore) FindAll() ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.load()
	if err != nil {
		return nil, err
	}
	return index.Ordered(), nil
}

// Insert appends p under a fresh UUID.
func (s *YAMLStore) Insert(p models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.load()
	if err != nil {
		return models.Project{}, err
	}

	p.ID = uuid.NewString()
	index.AddProject(models.ProjectEntry{
		ProjectID: p.ID,
		Name:      p.Name,
		Path:      p.Path,
		AddedAt:   time.Now().UTC(),
	})

	if err := config.SaveYAML(s.path, index); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// Delete removes the project with id and renumbers the rest.
func (s *YAMLStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.load()
	if err != nil {
		return err
	}

	if !index.RemoveProject(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return config.SaveYAML(s.path, index)
}

func (s *YAMLStore) load() (*models.ProjectsIndex, error) {
	index, err := config.LoadYAMLOrDefault(s.path, models.NewProjectsIndex)
	if err != nil {
		return nil, err
	}
	if index.Projects == nil {
		index.Projects = []models.ProjectEntry{}
	}
	index.Normalize()
	return index, nil
}
