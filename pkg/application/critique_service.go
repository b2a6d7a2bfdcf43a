package application

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/events"
	"github.com/felixgeelhaar/studio/pkg/domain/generate"
	"github.com/felixgeelhaar/studio/pkg/domain/project"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

// CritiqueService runs structured reviews of board versions and routes
// their outcomes back onto the boards.
type CritiqueService struct {
	ws *WorkspaceService
}

func NewCritiqueService(ws *WorkspaceService) *CritiqueService {
	return &CritiqueService{ws: ws}
}

func (s *CritiqueService) resolve(projectID, moduleID, stepID string) (*project.Project, *project.Module, *workspace.CritiqueDetail, error) {
	p, m, err := s.ws.Resolve(projectID, moduleID)
	if err != nil {
		return nil, nil, nil, err
	}
	detail, ok := s.ws.EnsureDetail(m, stepID).(*workspace.CritiqueDetail)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: step %s is not a critique workspace step", domain.ErrValidation, stepID)
	}
	return p, m, detail, nil
}

// board resolves a board from the project's concept explorer. Critiques
// reference boards by id; the boards themselves live in the concept
// detail.
func (s *CritiqueService) board(p *project.Project, boardID string) (*workspace.Board, error) {
	_, concept, ok := workspace.FindConcept(p)
	if !ok {
		return nil, fmt.Errorf("concept explorer: %w", domain.ErrNotFound)
	}
	board, found := concept.Board(boardID)
	if !found {
		return nil, fmt.Errorf("board %s: %w", boardID, domain.ErrNotFound)
	}
	return board, nil
}

// RunCritique reviews one board version. Running it again for the same
// (board, version) pair replaces the earlier critique wholesale, so the
// pair stays unique within the workspace.
func (s *CritiqueService) RunCritique(ctx context.Context, projectID, moduleID, stepID, boardID, versionID, focus string) (*workspace.Critique, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	p, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}
	board, err := s.board(p, boardID)
	if err != nil {
		return nil, err
	}

	version := board.ActiveVersion()
	if versionID != "" {
		v, ok := board.Version(versionID)
		if !ok {
			return nil, fmt.Errorf("version %s: %w", versionID, domain.ErrNotFound)
		}
		version = v
	}
	if version == nil {
		return nil, fmt.Errorf("%w: the board has no saved version to critique", domain.ErrInsufficientInput)
	}

	critique := &workspace.Critique{
		ID:        newID("critique"),
		BoardID:   board.ID,
		VersionID: version.ID,
		CreatedAt: time.Now(),
		Focus:     focus,
		Status:    workspace.CritiqueOpen,
	}
	critique.Arguments = generate.CritiqueArguments(critique.ID, version, focus)
	detail.Replace(critique)

	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	s.ws.Publish(events.New(events.TypeCritiqueRun, projectID, m.ID, stepID, map[string]interface{}{
		"critique": critique.ID,
		"board":    board.ID,
		"version":  version.ID,
	}))
	return critique, nil
}

// AddressArgument accepts an argument: its text is copied onto the
// board as a critique note and the argument is marked addressed.
// Addressing the same argument twice does not duplicate the note.
func (s *CritiqueService) AddressArgument(ctx context.Context, projectID, moduleID, stepID, critiqueID, argumentID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	p, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	critique, ok := detail.Critique(critiqueID)
	if !ok {
		return fmt.Errorf("critique %s: %w", critiqueID, domain.ErrNotFound)
	}
	arg, ok := critique.Argument(argumentID)
	if !ok {
		return fmt.Errorf("argument %s: %w", argumentID, domain.ErrNotFound)
	}
	board, err := s.board(p, critique.BoardID)
	if err != nil {
		return err
	}

	arg.Status = workspace.ArgumentAddressed
	if !board.HasCritiqueNote(arg.ID) {
		board.CritiqueNotes = append(board.CritiqueNotes, &workspace.CritiqueNote{
			ArgumentID: arg.ID,
			CritiqueID: critique.ID,
			Type:       string(arg.Type),
			Text:       arg.Text,
			AddedAt:    time.Now(),
		})
	}

	// Two steps changed; the board lives on the concept detail.
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return err
	}
	if conceptModule, concept, found := workspace.FindConcept(p); found {
		return s.ws.PersistDetail(ctx, projectID, conceptModule, workspace.StepConceptExplorer, concept)
	}
	return nil
}

// IgnoreArgument dismisses an argument. There is no undo in the review
// surface.
func (s *CritiqueService) IgnoreArgument(ctx context.Context, projectID, moduleID, stepID, critiqueID, argumentID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	critique, ok := detail.Critique(critiqueID)
	if !ok {
		return fmt.Errorf("critique %s: %w", critiqueID, domain.ErrNotFound)
	}
	arg, ok := critique.Argument(argumentID)
	if !ok {
		return fmt.Errorf("argument %s: %w", argumentID, domain.ErrNotFound)
	}
	arg.Status = workspace.ArgumentIgnored
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// CloseCritique marks a critique as done.
func (s *CritiqueService) CloseCritique(ctx context.Context, projectID, moduleID, stepID, critiqueID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	critique, ok := detail.Critique(critiqueID)
	if !ok {
		return fmt.Errorf("critique %s: %w", critiqueID, domain.ErrNotFound)
	}
	critique.Status = workspace.CritiqueClosed
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}
