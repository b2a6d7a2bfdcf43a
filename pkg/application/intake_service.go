package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/project"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

// IntakeService mutates the source library: raw input material and the
// summary versions distilled from it.
type IntakeService struct {
	ws *WorkspaceService
}

// NewIntakeService wires the intake service.
func NewIntakeService(ws *WorkspaceService) *IntakeService {
	return &IntakeService{ws: ws}
}

func (s *IntakeService) resolve(projectID, moduleID, stepID string) (*project.Module, *workspace.IntakeDetail, error) {
	_, m, err := s.ws.Resolve(projectID, moduleID)
	if err != nil {
		return nil, nil, err
	}
	detail, ok := s.ws.EnsureDetail(m, stepID).(*workspace.IntakeDetail)
	if !ok {
		return nil, nil, fmt.Errorf("%w: step %s is not a source intake step", domain.ErrValidation, stepID)
	}
	return m, detail, nil
}

// AddSource adds one piece of raw material to the library.
func (s *IntakeService) AddSource(ctx context.Context, projectID, moduleID, stepID, label, medium, raw string) (*workspace.Source, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: source text is required", domain.ErrValidation)
	}
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = "Untitled source"
	}
	source := &workspace.Source{
		ID:      newID("source"),
		Label:   label,
		Medium:  medium,
		Raw:     raw,
		AddedAt: time.Now(),
	}
	detail.Sources = append(detail.Sources, source)
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return source, nil
}

// ArchiveSource parks a source without deleting it.
func (s *IntakeService) ArchiveSource(ctx context.Context, projectID, moduleID, stepID, sourceID string) error {
	return s.setArchived(ctx, projectID, moduleID, stepID, sourceID, true)
}

// RestoreSource brings an archived source back.
func (s *IntakeService) RestoreSource(ctx context.Context, projectID, moduleID, stepID, sourceID string) error {
	return s.setArchived(ctx, projectID, moduleID, stepID, sourceID, false)
}

func (s *IntakeService) setArchived(ctx context.Context, projectID, moduleID, stepID, sourceID string, archived bool) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	source, ok := detail.Source(sourceID)
	if !ok {
		return fmt.Errorf("source %s: %w", sourceID, domain.ErrNotFound)
	}
	if source.Archived == archived {
		return nil
	}
	source.Archived = archived
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// SetHideArchived toggles whether archived sources appear in listings.
func (s *IntakeService) SetHideArchived(ctx context.Context, projectID, moduleID, stepID string, hide bool) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	if detail.HideArchived == hide {
		return nil
	}
	detail.HideArchived = hide
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// Analyze distills the non-archived sources into a new summary version
// and makes it active. With nothing to distill it reports insufficient
// input; no version is created.
func (s *IntakeService) Analyze(ctx context.Context, projectID, moduleID, stepID string) (*workspace.SummaryVersion, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}

	bullets, sourceIDs := workspace.ComposeSummary(detail.Sources)
	if len(bullets) == 0 {
		return nil, fmt.Errorf("%w: add at least one source before analyzing", domain.ErrInsufficientInput)
	}

	version := &workspace.SummaryVersion{
		ID:        newID("summary"),
		CreatedAt: time.Now(),
		Summary:   bullets,
		SourceIDs: sourceIDs,
	}
	detail.SummaryVersions = append(detail.SummaryVersions, version)
	detail.ActiveVersionID = version.ID
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return version, nil
}

// SetActiveVersion pins a specific summary version as the one anchors
// are read from.
func (s *IntakeService) SetActiveVersion(ctx context.Context, projectID, moduleID, stepID, versionID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	if _, ok := detail.Version(versionID); !ok {
		return fmt.Errorf("summary version %s: %w", versionID, domain.ErrNotFound)
	}
	detail.ActiveVersionID = versionID
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}
