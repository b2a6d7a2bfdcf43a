// Package application implements the per-step mutation services. Each
// service follows the same discipline: resolve the detail through the
// workspace service, validate, mutate in place, persist (surfacing the
// result), audit, publish. Nothing mutates on a validation failure.
package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/events"
	"github.com/felixgeelhaar/studio/pkg/domain/project"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

// actor recorded on audit entries written by this layer.
const auditActor = "studio"

// newID mints an entity id with a readable prefix and a short unique
// suffix.
func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.Split(uuid.NewString(), "-")[0])
}

// WorkspaceService is the shared collaborator every step service is
// built on: it resolves projects and modules, reconciles step details,
// and persists them with audit and event fan-out.
type WorkspaceService struct {
	repo   domain.WorkspaceRepository
	audit  domain.AuditLogger
	events events.Publisher
}

// NewWorkspaceService wires the workspace service.
func NewWorkspaceService(repo domain.WorkspaceRepository, audit domain.AuditLogger, publisher events.Publisher) *WorkspaceService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &WorkspaceService{repo: repo, audit: audit, events: publisher}
}

// Lock takes the document graph lock. Loaded projects share the cached
// document and step details reconcile lazily on read, so every public
// operation runs under it. Resolve, EnsureDetail and PersistDetail are
// building blocks that assume the caller holds the lock.
func (s *WorkspaceService) Lock() { s.repo.Lock() }

// Unlock releases the document graph lock.
func (s *WorkspaceService) Unlock() { s.repo.Unlock() }

// Project loads a project by id.
func (s *WorkspaceService) Project(id string) (*project.Project, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	return s.repo.LoadProject(id)
}

// Resolve loads a project and one of its modules.
func (s *WorkspaceService) Resolve(projectID, moduleID string) (*project.Project, *project.Module, error) {
	p, err := s.Project(projectID)
	if err != nil {
		return nil, nil, err
	}
	m, ok := p.Module(moduleID)
	if !ok {
		return nil, nil, fmt.Errorf("module %s: %w", moduleID, domain.ErrNotFound)
	}
	return p, m, nil
}

// EnsureDetail reconciles and returns the step detail.
func (s *WorkspaceService) EnsureDetail(m *project.Module, stepID string) workspace.Detail {
	return workspace.EnsureStepDetail(m, stepID)
}

// PersistDetail writes a mutated detail through to storage, records the
// action and publishes a detail-saved event. Persistence failures are
// returned to the caller.
func (s *WorkspaceService) PersistDetail(ctx context.Context, projectID string, m *project.Module, stepID string, detail workspace.Detail) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := s.repo.SaveStepDetail(projectID, m.ID, stepID, detail); err != nil {
		return fmt.Errorf("persist step detail: %w", err)
	}
	if err := s.audit.Log("detail.save", auditActor, map[string]interface{}{
		"project": projectID,
		"module":  m.ID,
		"step":    stepID,
	}); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	s.events.Publish(events.New(events.TypeDetailSaved, projectID, m.ID, stepID, nil))
	return nil
}

// PutRawDetail installs a caller-supplied raw payload for a step,
// reconciles it against the factory shape, and persists the corrected
// result. Returns the normalized detail. This is the write half of the
// HTTP data service contract.
func (s *WorkspaceService) PutRawDetail(ctx context.Context, projectID, moduleID, stepID string, raw json.RawMessage) (workspace.Detail, error) {
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: detail payload is not valid JSON", domain.ErrValidation)
	}
	s.Lock()
	defer s.Unlock()
	_, m, err := s.Resolve(projectID, moduleID)
	if err != nil {
		return nil, err
	}
	if _, ok := m.Step(stepID); !ok {
		return nil, fmt.Errorf("step %s: %w", stepID, domain.ErrNotFound)
	}

	m.StoreRawDetail(stepID, raw)
	detail := workspace.EnsureStepDetail(m, stepID)
	if err := s.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// Publish forwards a domain event to the publisher.
func (s *WorkspaceService) Publish(e *events.Event) {
	s.events.Publish(e)
}

// Audit writes one audit record.
func (s *WorkspaceService) Audit(action string, metadata map[string]interface{}) error {
	return s.audit.Log(action, auditActor, metadata)
}
