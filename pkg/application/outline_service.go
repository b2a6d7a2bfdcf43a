package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/project"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

// OutlineService maintains the scene outline that bridges approved
// concept boards and script drafting.
type OutlineService struct {
	ws *WorkspaceService
}

func NewOutlineService(ws *WorkspaceService) *OutlineService {
	return &OutlineService{ws: ws}
}

func (s *OutlineService) resolve(projectID, moduleID, stepID string) (*project.Project, *project.Module, *workspace.OutlineDetail, error) {
	p, m, err := s.ws.Resolve(projectID, moduleID)
	if err != nil {
		return nil, nil, nil, err
	}
	detail, ok := s.ws.EnsureDetail(m, stepID).(*workspace.OutlineDetail)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: step %s is not a scene outline step", domain.ErrValidation, stepID)
	}
	return p, m, detail, nil
}

// SelectBoard points the outline at a concept board. Existing beats are
// kept; seeding is a separate, explicit action.
func (s *OutlineService) SelectBoard(ctx context.Context, projectID, moduleID, stepID, boardID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	p, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	if boardID != "" {
		_, concept, ok := workspace.FindConcept(p)
		if !ok {
			return fmt.Errorf("concept explorer: %w", domain.ErrNotFound)
		}
		if _, found := concept.Board(boardID); !found {
			return fmt.Errorf("board %s: %w", boardID, domain.ErrNotFound)
		}
	}
	detail.SelectedBoardID = boardID
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// BeatInput carries the editable beat fields.
type BeatInput struct {
	Title       string
	Purpose     string
	VisualFocus string
	Duration    string
	Notes       string
	Anchors     []string
}

// AddBeat appends a beat to the end of the sequence.
func (s *OutlineService) AddBeat(ctx context.Context, projectID, moduleID, stepID string, in BeatInput) (*workspace.SceneBeat, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: a beat needs a title", domain.ErrValidation)
	}
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}

	beat := &workspace.SceneBeat{
		ID:          newID("beat"),
		Title:       strings.TrimSpace(in.Title),
		Purpose:     in.Purpose,
		VisualFocus: in.VisualFocus,
		Duration:    in.Duration,
		Notes:       in.Notes,
		Anchors:     append([]string{}, in.Anchors...),
	}
	detail.Beats = append(detail.Beats, beat)
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return beat, nil
}

// UpdateBeat rewrites the editable fields of a beat. Its seeding source
// is preserved.
func (s *OutlineService) UpdateBeat(ctx context.Context, projectID, moduleID, stepID, beatID string, in BeatInput) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: a beat needs a title", domain.ErrValidation)
	}
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	beat, _, ok := detail.Beat(beatID)
	if !ok {
		return fmt.Errorf("beat %s: %w", beatID, domain.ErrNotFound)
	}
	beat.Title = strings.TrimSpace(in.Title)
	beat.Purpose = in.Purpose
	beat.VisualFocus = in.VisualFocus
	beat.Duration = in.Duration
	beat.Notes = in.Notes
	beat.Anchors = append([]string{}, in.Anchors...)
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// MoveBeat shifts a beat up or down the sequence, clamped to the ends.
func (s *OutlineService) MoveBeat(ctx context.Context, projectID, moduleID, stepID, beatID string, delta int) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	if !detail.MoveBeat(beatID, delta) {
		return fmt.Errorf("beat %s: %w", beatID, domain.ErrNotFound)
	}
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// RemoveBeat deletes a beat from the sequence.
func (s *OutlineService) RemoveBeat(ctx context.Context, projectID, moduleID, stepID, beatID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	if !detail.RemoveBeat(beatID) {
		return fmt.Errorf("beat %s: %w", beatID, domain.ErrNotFound)
	}
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// SeedBeatsFromBoard appends one beat per key visual of the selected
// board's active version. The current anchors travel onto each beat so
// later script drafts stay grounded even if the summary moves on.
func (s *OutlineService) SeedBeatsFromBoard(ctx context.Context, projectID, moduleID, stepID string) ([]*workspace.SceneBeat, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	p, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}
	if detail.SelectedBoardID == "" {
		return nil, fmt.Errorf("%w: select a concept board first", domain.ErrInsufficientInput)
	}
	_, concept, ok := workspace.FindConcept(p)
	if !ok {
		return nil, fmt.Errorf("concept explorer: %w", domain.ErrNotFound)
	}
	board, found := concept.Board(detail.SelectedBoardID)
	if !found {
		return nil, fmt.Errorf("board %s: %w", detail.SelectedBoardID, domain.ErrNotFound)
	}
	version := board.ActiveVersion()
	if version == nil || len(version.KeyVisuals) == 0 {
		return nil, fmt.Errorf("%w: the board version has no key visuals to seed from", domain.ErrInsufficientInput)
	}

	anchors := workspace.Anchors(p)
	added := make([]*workspace.SceneBeat, 0, len(version.KeyVisuals))
	for i, visual := range version.KeyVisuals {
		beat := &workspace.SceneBeat{
			ID:          newID("beat"),
			Title:       fmt.Sprintf("Scene %d", len(detail.Beats)+1),
			VisualFocus: visual,
			Anchors:     append([]string{}, anchors...),
			Source: &workspace.BeatSource{
				BoardID:   board.ID,
				VersionID: version.ID,
				KeyVisual: visual,
			},
		}
		if i == 0 {
			beat.Purpose = "Open on the concept's strongest image"
		}
		detail.Beats = append(detail.Beats, beat)
		added = append(added, beat)
	}
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return added, nil
}
