package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/events"
	"github.com/felixgeelhaar/studio/pkg/domain/generate"
	"github.com/felixgeelhaar/studio/pkg/domain/project"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

// ConceptService runs the concept pipeline: idea seeding and triage,
// promotion to boards, board versioning and the board review state
// machine.
type ConceptService struct {
	ws       *WorkspaceService
	provider generate.Provider
}

// NewConceptService wires the concept service. A nil provider falls
// back to the deterministic generator.
func NewConceptService(ws *WorkspaceService, provider generate.Provider) *ConceptService {
	if provider == nil {
		provider = generate.Deterministic{}
	}
	return &ConceptService{ws: ws, provider: provider}
}

func (s *ConceptService) resolve(projectID, moduleID, stepID string) (*project.Project, *project.Module, *workspace.ConceptDetail, error) {
	p, m, err := s.ws.Resolve(projectID, moduleID)
	if err != nil {
		return nil, nil, nil, err
	}
	detail, ok := s.ws.EnsureDetail(m, stepID).(*workspace.ConceptDetail)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: step %s is not a concept explorer step", domain.ErrValidation, stepID)
	}
	return p, m, detail, nil
}

// SeedIdeas asks the provider for idea seeds grounded on the project's
// anchors and personas and adds them to the explorer. Without anchors
// no seeds are produced and nothing changes.
func (s *ConceptService) SeedIdeas(ctx context.Context, projectID, moduleID, stepID, guidance string) ([]*workspace.Idea, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	p, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}

	anchors := workspace.Anchors(p)
	if len(anchors) == 0 {
		return nil, fmt.Errorf("%w: analyze your sources first so the seeds have anchors", domain.ErrInsufficientInput)
	}

	seeds, err := s.provider.IdeaSeeds(ctx, generate.SeedRequest{
		Anchors:  anchors,
		Personas: workspace.PersonaNames(p),
		Guidance: guidance,
	})
	if err != nil {
		return nil, fmt.Errorf("seed ideas: %w", err)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: the provider produced no seeds", domain.ErrInsufficientInput)
	}

	ideas := make([]*workspace.Idea, 0, len(seeds))
	for _, seed := range seeds {
		idea := &workspace.Idea{
			ID:          newID("idea"),
			Title:       seed.Title,
			Logline:     seed.Logline,
			Description: seed.Description,
			Status:      workspace.IdeaDraft,
			Tags:        append([]string{}, seed.Tags...),
		}
		ideas = append(ideas, idea)
		detail.Ideas = append(detail.Ideas, idea)
	}
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return ideas, nil
}

// AddIdea creates an idea by hand.
func (s *ConceptService) AddIdea(ctx context.Context, projectID, moduleID, stepID, title, logline, description string, tags []string) (*workspace.Idea, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	if strings.TrimSpace(title) == "" || strings.TrimSpace(logline) == "" {
		return nil, fmt.Errorf("%w: idea title and logline are required", domain.ErrValidation)
	}
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}

	idea := &workspace.Idea{
		ID:          newID("idea"),
		Title:       strings.TrimSpace(title),
		Logline:     strings.TrimSpace(logline),
		Description: description,
		Status:      workspace.IdeaDraft,
		Tags:        append([]string{}, tags...),
	}
	detail.Ideas = append(detail.Ideas, idea)
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return idea, nil
}

// ShortlistIdea marks a draft idea as a candidate for promotion.
func (s *ConceptService) ShortlistIdea(ctx context.Context, projectID, moduleID, stepID, ideaID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	idea, ok := detail.Idea(ideaID)
	if !ok {
		return fmt.Errorf("idea %s: %w", ideaID, domain.ErrNotFound)
	}
	if idea.Status == workspace.IdeaArchived {
		return fmt.Errorf("%w: restore the idea before shortlisting it", domain.ErrValidation)
	}
	idea.Status = workspace.IdeaShortlisted
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// ArchiveIdea parks an idea, remembering its status for restore.
func (s *ConceptService) ArchiveIdea(ctx context.Context, projectID, moduleID, stepID, ideaID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	idea, ok := detail.Idea(ideaID)
	if !ok {
		return fmt.Errorf("idea %s: %w", ideaID, domain.ErrNotFound)
	}
	idea.Archive()
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// RestoreIdea returns an archived idea to its pre-archive status.
func (s *ConceptService) RestoreIdea(ctx context.Context, projectID, moduleID, stepID, ideaID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	idea, ok := detail.Idea(ideaID)
	if !ok {
		return fmt.Errorf("idea %s: %w", ideaID, domain.ErrNotFound)
	}
	idea.Restore()
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// ScoreIdea records the explorer scores, clamped to 0-10.
func (s *ConceptService) ScoreIdea(ctx context.Context, projectID, moduleID, stepID, ideaID string, score workspace.IdeaScore) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	idea, ok := detail.Idea(ideaID)
	if !ok {
		return fmt.Errorf("idea %s: %w", ideaID, domain.ErrNotFound)
	}
	idea.Score = workspace.IdeaScore{
		Boldness: clampScore(score.Boldness),
		Clarity:  clampScore(score.Clarity),
		Fit:      clampScore(score.Fit),
	}
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// PromoteIdea turns a shortlisted idea into a new concept board and
// archives the idea out of the explorer pool.
func (s *ConceptService) PromoteIdea(ctx context.Context, projectID, moduleID, stepID, ideaID string) (*workspace.Board, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}
	idea, ok := detail.Idea(ideaID)
	if !ok {
		return nil, fmt.Errorf("idea %s: %w", ideaID, domain.ErrNotFound)
	}
	if idea.Status != workspace.IdeaShortlisted {
		return nil, fmt.Errorf("%w: only shortlisted ideas can become boards", domain.ErrValidation)
	}

	board := &workspace.Board{
		ID:            newID("board"),
		IdeaID:        idea.ID,
		Title:         idea.Title,
		Logline:       idea.Logline,
		Status:        workspace.BoardDraft,
		Versions:      []*workspace.BoardVersion{},
		CritiqueNotes: []*workspace.CritiqueNote{},
	}
	detail.Boards = append(detail.Boards, board)
	idea.Archive()
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return board, nil
}

// DraftBoardVersion asks the provider for a version body grounded on
// the project's anchors. The draft is a proposal: nothing is saved
// until SaveBoardVersion validates it.
func (s *ConceptService) DraftBoardVersion(ctx context.Context, projectID, moduleID, stepID, boardID, guidance string) (*workspace.VersionInput, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	p, _, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}
	board, ok := detail.Board(boardID)
	if !ok {
		return nil, fmt.Errorf("board %s: %w", boardID, domain.ErrNotFound)
	}

	draft, err := s.provider.BoardDraft(ctx, generate.DraftRequest{
		Title:    board.Title,
		Logline:  board.Logline,
		Anchors:  workspace.Anchors(p),
		Personas: workspace.PersonaNames(p),
		Guidance: guidance,
	})
	if err != nil {
		return nil, fmt.Errorf("draft board version: %w", err)
	}
	if draft == nil {
		return nil, fmt.Errorf("%w: the board needs a logline and at least one anchor", domain.ErrInsufficientInput)
	}

	return &workspace.VersionInput{
		Title:         board.Title,
		Logline:       board.Logline,
		Narrative:     draft.Narrative,
		KeyVisuals:    draft.KeyVisuals,
		Tone:          draft.Tone,
		StrategyLink:  draft.StrategyLink,
		AIGuidance:    guidance,
		AnchorSummary: draft.AnchorSummary,
	}, nil
}

// SaveBoardVersion runs the validation gate and, on success, installs a
// new immutable version.
func (s *ConceptService) SaveBoardVersion(ctx context.Context, projectID, moduleID, stepID, boardID string, in workspace.VersionInput) (*workspace.BoardVersion, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}
	board, ok := detail.Board(boardID)
	if !ok {
		return nil, fmt.Errorf("board %s: %w", boardID, domain.ErrNotFound)
	}

	version, err := board.SaveVersion(newID("version"), in, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	s.ws.Publish(events.New(events.TypeBoardVersionSaved, projectID, m.ID, stepID, map[string]interface{}{
		"board":   board.ID,
		"version": version.Version,
	}))
	return version, nil
}

// SetBoardStatus moves a board through its review lifecycle. The
// transition is validated by the board state machine.
func (s *ConceptService) SetBoardStatus(ctx context.Context, projectID, moduleID, stepID, boardID string, target workspace.BoardStatus) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	board, ok := detail.Board(boardID)
	if !ok {
		return fmt.Errorf("board %s: %w", boardID, domain.ErrNotFound)
	}
	if !target.IsValid() {
		return fmt.Errorf("%w: unknown board status %q", domain.ErrValidation, target)
	}

	event, ok := board.Status.EventTo(target)
	if !ok {
		return fmt.Errorf("%w: %s cannot move to %s", domain.ErrInvalidTransition, board.Status, target)
	}
	sm, err := workspace.NewBoardStateMachine(string(board.Status), board.ID, nil)
	if err != nil {
		return err
	}
	if err := sm.Transition(event); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidTransition, err)
	}

	switch event {
	case "archive":
		board.Archive()
	case "restore":
		board.Restore()
	default:
		board.Status = sm.CurrentStatus()
	}
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return err
	}
	s.ws.Publish(events.New(events.TypeBoardStatus, projectID, m.ID, stepID, map[string]interface{}{
		"board":  board.ID,
		"status": string(board.Status),
	}))
	return nil
}

// ArchiveBoard parks a board from any non-terminal status.
func (s *ConceptService) ArchiveBoard(ctx context.Context, projectID, moduleID, stepID, boardID string) error {
	return s.SetBoardStatus(ctx, projectID, moduleID, stepID, boardID, workspace.BoardArchived)
}

// RestoreBoard brings an archived board back to its pre-archive status.
func (s *ConceptService) RestoreBoard(ctx context.Context, projectID, moduleID, stepID, boardID string) error {
	return s.SetBoardStatus(ctx, projectID, moduleID, stepID, boardID, workspace.BoardDraft)
}

// MoveBoardToIdeas demotes a board: the board is deleted and a fresh
// idea tagged "From Concept" takes its place in the explorer.
func (s *ConceptService) MoveBoardToIdeas(ctx context.Context, projectID, moduleID, stepID, boardID string) (*workspace.Idea, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}
	board, ok := detail.Board(boardID)
	if !ok {
		return nil, fmt.Errorf("board %s: %w", boardID, domain.ErrNotFound)
	}

	description := ""
	if v := board.ActiveVersion(); v != nil {
		description = v.Narrative
	}
	idea := &workspace.Idea{
		ID:          newID("idea"),
		Title:       board.Title,
		Logline:     board.Logline,
		Description: description,
		Status:      workspace.IdeaDraft,
		Tags:        []string{"From Concept"},
	}
	detail.RemoveBoard(board.ID)
	detail.Ideas = append(detail.Ideas, idea)
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return idea, nil
}
