// Package wiring constructs the studio workspace and its application
// services for a workspace root.
package wiring

import (
	"github.com/felixgeelhaar/studio/pkg/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Repo   *storage.FilesystemRepository
	Audit  *storage.FileAuditLogger
	Events *storage.InMemoryEventPublisher
}

func NewWorkspace(root string) *Workspace {
	return &Workspace{
		Repo:   storage.NewFilesystemRepository(root),
		Audit:  storage.NewFileAuditLogger(root),
		Events: storage.NewInMemoryEventPublisher(root),
	}
}
