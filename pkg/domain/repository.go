package domain

import (
	"github.com/felixgeelhaar/studio/pkg/domain/portfolio"
	"github.com/felixgeelhaar/studio/pkg/domain/project"
)

// WorkspaceRepository handles persistence of the studio document in the
// .studio/ directory. Implementations cache the document after the
// first load; Reload discards the cache (used by the fixture watcher).
type WorkspaceRepository interface {
	Initialize() error
	IsInitialized() bool

	// Lock serializes access to the decoded document graph. Load
	// methods hand out pointers into the cached graph and step details
	// reconcile lazily on read, so every operation that traverses or
	// mutates loaded data holds the lock for its whole span.
	Lock()
	Unlock()

	LoadPortfolio() (*portfolio.Portfolio, error)
	LoadProjects() ([]*project.Project, error)
	// LoadProject resolves a single project by id. Returns ErrNotFound
	// when the id is unmatched.
	LoadProject(id string) (*project.Project, error)

	// SaveStepDetail writes a step detail through to durable storage.
	// The detail replaces module.Details[stepID] and the whole document
	// is flushed. Unlike the original fire-and-forget bridge, failures
	// are reported to the caller.
	SaveStepDetail(projectID, moduleID, stepID string, detail interface{}) error

	Reload() error
}
