// Package store persists the project list. Implementations own id
// generation: callers hand over a project without an ID and get the stored
// copy back.
package store

import (
	"errors"

	"github.com/codetray-io/codetray/internal/models"
)

// ErrNotFound is returned by Delete when no project has the given ID.
var ErrNotFound = errors.New("project not found")

// Store is the persistent side of the project registry.
type Store interface {
	// FindAll returns every stored project in list order.
	FindAll() ([]models.Project, error)

	// Insert assigns an ID to p, appends it and returns the stored copy.
	Insert(p models.Project) (models.Project, error)

	// Delete removes the project with the given ID.
	Delete(id string) error
}
