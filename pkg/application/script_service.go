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

// ScriptService runs the scene-outline-to-script pipeline. Drafts are
// append-only: starting a new draft never touches the ones before it.
type ScriptService struct {
	ws *WorkspaceService
}

func NewScriptService(ws *WorkspaceService) *ScriptService {
	return &ScriptService{ws: ws}
}

func (s *ScriptService) resolve(projectID, moduleID, stepID string) (*project.Project, *project.Module, *workspace.ScriptDetail, error) {
	p, m, err := s.ws.Resolve(projectID, moduleID)
	if err != nil {
		return nil, nil, nil, err
	}
	detail, ok := s.ws.EnsureDetail(m, stepID).(*workspace.ScriptDetail)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: step %s is not a script draft step", domain.ErrValidation, stepID)
	}
	return p, m, detail, nil
}

// StartDraft snapshots the current scene outline into a fresh draft:
// one scene stub per beat, fresh scene ids, guidance parsed into cues.
// The new draft becomes the active one.
func (s *ScriptService) StartDraft(ctx context.Context, projectID, moduleID, stepID, label, guidance string) (*workspace.ScriptDraft, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	p, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}
	_, outline, ok := workspace.FindOutline(p)
	if !ok || len(outline.Beats) == 0 {
		return nil, fmt.Errorf("%w: the scene outline has no beats to draft from", domain.ErrInsufficientInput)
	}

	if strings.TrimSpace(label) == "" {
		label = fmt.Sprintf("Draft %d", len(detail.Drafts)+1)
	}
	now := time.Now()
	draft := &workspace.ScriptDraft{
		ID:        newID("draft"),
		Label:     strings.TrimSpace(label),
		Status:    workspace.DraftWorking,
		CreatedAt: now,
		UpdatedAt: now,
	}

	cues := generate.Cues(guidance)
	draft.OutlineSnapshot = make([]string, 0, len(outline.Beats))
	draft.Scenes = make([]*workspace.DraftScene, 0, len(outline.Beats))
	for i, beat := range outline.Beats {
		draft.OutlineSnapshot = append(draft.OutlineSnapshot, beat.Title)
		scene := &workspace.DraftScene{
			ID:            fmt.Sprintf("draft-scene-%d", i+1),
			Heading:       beat.Title,
			Summary:       beat.Purpose,
			Cues:          append([]string{}, cues...),
			SourceSceneID: beat.ID,
		}
		if beat.VisualFocus != "" {
			scene.Cues = append(scene.Cues, fmt.Sprintf("Visual: %s", beat.VisualFocus))
		}
		draft.Scenes = append(draft.Scenes, scene)
	}

	// The draft records which board version the outline was cut from.
	if outline.SelectedBoardID != "" {
		if _, concept, found := workspace.FindConcept(p); found {
			if board, exists := concept.Board(outline.SelectedBoardID); exists {
				if v := board.ActiveVersion(); v != nil {
					draft.ConceptVersionID = v.ID
				}
			}
		}
	}

	detail.Drafts = append(detail.Drafts, draft)
	detail.ActiveDraftID = draft.ID
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	s.ws.Publish(events.New(events.TypeDraftStarted, projectID, m.ID, stepID, map[string]interface{}{
		"draft":  draft.ID,
		"scenes": len(draft.Scenes),
	}))
	return draft, nil
}

// SceneInput carries the editable scene fields.
type SceneInput struct {
	Heading string
	Summary string
	Script  string
	Cues    []string
}

// UpdateScene rewrites a scene stub inside a draft.
func (s *ScriptService) UpdateScene(ctx context.Context, projectID, moduleID, stepID, draftID, sceneID string, in SceneInput) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	draft, ok := detail.Draft(draftID)
	if !ok {
		return fmt.Errorf("draft %s: %w", draftID, domain.ErrNotFound)
	}
	scene, ok := draft.Scene(sceneID)
	if !ok {
		return fmt.Errorf("scene %s: %w", sceneID, domain.ErrNotFound)
	}
	if strings.TrimSpace(in.Heading) == "" {
		return fmt.Errorf("%w: a scene needs a heading", domain.ErrValidation)
	}
	scene.Heading = strings.TrimSpace(in.Heading)
	scene.Summary = in.Summary
	scene.Script = in.Script
	scene.Cues = append([]string{}, in.Cues...)
	draft.UpdatedAt = time.Now()
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// SetActiveDraft switches which draft the workspace shows.
func (s *ScriptService) SetActiveDraft(ctx context.Context, projectID, moduleID, stepID, draftID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	if _, ok := detail.Draft(draftID); !ok {
		return fmt.Errorf("draft %s: %w", draftID, domain.ErrNotFound)
	}
	detail.ActiveDraftID = draftID
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// SetDraftStatus moves a draft between working, review and approved.
func (s *ScriptService) SetDraftStatus(ctx context.Context, projectID, moduleID, stepID, draftID, status string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	switch status {
	case workspace.DraftWorking, workspace.DraftReview, workspace.DraftApproved:
	default:
		return fmt.Errorf("%w: unknown draft status %q", domain.ErrValidation, status)
	}
	_, m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	draft, ok := detail.Draft(draftID)
	if !ok {
		return fmt.Errorf("draft %s: %w", draftID, domain.ErrNotFound)
	}
	draft.Status = status
	draft.UpdatedAt = time.Now()
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}
