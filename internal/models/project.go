// Package models contains shared data structures used across the application.
package models

import (
	"sort"
	"time"
)

// Project is a single entry of the tray menu: a named folder on disk.
// Identity is ID only; two projects with the same path are still distinct.
type Project struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// ProjectEntry represents an entry in the global projects.yaml index.
type ProjectEntry struct {
	ProjectID string    `yaml:"project_id"`
	Name      string    `yaml:"name"`
	Path      string    `yaml:"path"`
	Position  int       `yaml:"position"`
	AddedAt   time.Time `yaml:"added_at"`
}

// ProjectsIndex represents the global projects.yaml file.
type ProjectsIndex struct {
	Version  int            `yaml:"version"`
	Projects []ProjectEntry `yaml:"projects"`
}

// NewProjectsIndex creates a new empty projects index.
func NewProjectsIndex() *ProjectsIndex {
	return &ProjectsIndex{
		Version:  1,
		Projects: []ProjectEntry{},
	}
}

// Project converts an index entry to the in-memory project form.
func (e ProjectEntry) Project() Project {
	return Project{
		ID:   e.ProjectID,
		Name: e.Name,
		Path: e.Path,
	}
}

// AddProject adds a project after every existing entry.
func (idx *ProjectsIndex) AddProject(entry ProjectEntry) {
	idx.Normalize()
	entry.Position = len(idx.Projects) + 1
	idx.Projects = append(idx.Projects, entry)
}

// RemoveProject removes a project from the index by ID. The remaining
// entries keep their relative order.
func (idx *ProjectsIndex) RemoveProject(projectID string) bool {
	idx.Normalize()
	for i, p := range idx.Projects {
		if p.ProjectID == projectID {
			idx.Projects = append(idx.Projects[:i], idx.Projects[i+1:]...)
			idx.renumber()
			return true
		}
	}
	return false
}

// Normalize puts the entries in position order and renumbers them 1..n,
// so file order and positions agree. Entries with equal positions keep
// their file order.
func (idx *ProjectsIndex) Normalize() {
	sort.SliceStable(idx.Projects, func(i, j int) bool {
		return idx.Projects[i].Position < idx.Projects[j].Position
	})
	idx.renumber()
}

func (idx *ProjectsIndex) renumber() {
	for i := range idx.Projects {
		idx.Projects[i].Position = i + 1
	}
}

// FindProject finds a project by ID in the index.
func (idx *ProjectsIndex) FindProject(projectID string) *ProjectEntry {
	for i := range idx.Projects {
		if idx.Projects[i].ProjectID == projectID {
			return &idx.Projects[i]
		}
	}
	return nil
}

// Ordered returns the index entries as projects, sorted by position.
// Entries with equal positions keep their file order.
func (idx *ProjectsIndex) Ordered() []Project {
	entries := make([]ProjectEntry, len(idx.Projects))
	copy(entries, idx.Projects)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Position < entries[j].Position
	})

	projects := make([]Project, 0, len(entries))
	for _, e := range entries {
		projects = append(projects, e.Project())
	}
	return projects
}
