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

// PromptService mutates the research prompt library.
type PromptService struct {
	ws *WorkspaceService
}

// NewPromptService wires the prompt service.
func NewPromptService(ws *WorkspaceService) *PromptService {
	return &PromptService{ws: ws}
}

func (s *PromptService) resolve(projectID, moduleID, stepID string) (*project.Module, *workspace.PromptsDetail, error) {
	_, m, err := s.ws.Resolve(projectID, moduleID)
	if err != nil {
		return nil, nil, err
	}
	detail, ok := s.ws.EnsureDetail(m, stepID).(*workspace.PromptsDetail)
	if !ok {
		return nil, nil, fmt.Errorf("%w: step %s is not a research prompts step", domain.ErrValidation, stepID)
	}
	return m, detail, nil
}

// AddPrompt adds a reusable prompt to the library.
func (s *PromptService) AddPrompt(ctx context.Context, projectID, moduleID, stepID, label, channel, promptText string, tags []string) (*workspace.ResearchPrompt, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	if strings.TrimSpace(label) == "" || strings.TrimSpace(promptText) == "" {
		return nil, fmt.Errorf("%w: prompt label and text are required", domain.ErrValidation)
	}
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}

	p := &workspace.ResearchPrompt{
		ID:         newID("prompt"),
		Label:      strings.TrimSpace(label),
		Channel:    channel,
		PromptText: promptText,
		Tags:       append([]string{}, tags...),
		Status:     workspace.PromptReady,
	}
	detail.Prompts = append(detail.Prompts, p)
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return p, nil
}

// MarkPromptRun records that a prompt was executed.
func (s *PromptService) MarkPromptRun(ctx context.Context, projectID, moduleID, stepID, promptID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	p, ok := detail.Prompt(promptID)
	if !ok {
		return fmt.Errorf("prompt %s: %w", promptID, domain.ErrNotFound)
	}
	p.Status = workspace.PromptDone
	p.LastRun = time.Now()
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// ToggleWatch pins or unpins a prompt for follow-up. Returns whether
// the prompt is watched after the call.
func (s *PromptService) ToggleWatch(ctx context.Context, projectID, moduleID, stepID, promptID string) (bool, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return false, err
	}
	if _, ok := detail.Prompt(promptID); !ok {
		return false, fmt.Errorf("prompt %s: %w", promptID, domain.ErrNotFound)
	}

	watching := true
	for i, id := range detail.Watch {
		if id == promptID {
			detail.Watch = append(detail.Watch[:i], detail.Watch[i+1:]...)
			watching = false
			break
		}
	}
	if watching {
		detail.Watch = append(detail.Watch, promptID)
	}
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return false, err
	}
	return watching, nil
}
