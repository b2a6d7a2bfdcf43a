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

// BriefService mutates the clarifying-question list raised against the
// client brief.
type BriefService struct {
	ws *WorkspaceService
}

// NewBriefService wires the brief service.
func NewBriefService(ws *WorkspaceService) *BriefService {
	return &BriefService{ws: ws}
}

func (s *BriefService) resolve(projectID, moduleID, stepID string) (*project.Module, *workspace.BriefDetail, error) {
	_, m, err := s.ws.Resolve(projectID, moduleID)
	if err != nil {
		return nil, nil, err
	}
	detail, ok := s.ws.EnsureDetail(m, stepID).(*workspace.BriefDetail)
	if !ok {
		return nil, nil, fmt.Errorf("%w: step %s is not a brief questions step", domain.ErrValidation, stepID)
	}
	return m, detail, nil
}

// AddQuestion raises a new open question.
func (s *BriefService) AddQuestion(ctx context.Context, projectID, moduleID, stepID, prompt, owner string, impact []string) (*workspace.BriefQuestion, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: question prompt is required", domain.ErrValidation)
	}
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}

	q := &workspace.BriefQuestion{
		ID:          newID("question"),
		Prompt:      strings.TrimSpace(prompt),
		Owner:       owner,
		Impact:      append([]string{}, impact...),
		Status:      workspace.QuestionOpen,
		LastUpdated: time.Now(),
	}
	detail.Questions = append(detail.Questions, q)
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return q, nil
}

// AnswerQuestion records an answer and closes the question.
func (s *BriefService) AnswerQuestion(ctx context.Context, projectID, moduleID, stepID, questionID, answer string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	if strings.TrimSpace(answer) == "" {
		return fmt.Errorf("%w: answer is required", domain.ErrValidation)
	}
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	q, ok := detail.Question(questionID)
	if !ok {
		return fmt.Errorf("question %s: %w", questionID, domain.ErrNotFound)
	}
	q.Answer = strings.TrimSpace(answer)
	q.Status = workspace.QuestionAnswered
	q.LastUpdated = time.Now()
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// ReopenQuestion puts an answered question back on the open list; the
// previous answer is kept for reference.
func (s *BriefService) ReopenQuestion(ctx context.Context, projectID, moduleID, stepID, questionID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	q, ok := detail.Question(questionID)
	if !ok {
		return fmt.Errorf("question %s: %w", questionID, domain.ErrNotFound)
	}
	if q.Status == workspace.QuestionOpen {
		return nil
	}
	q.Status = workspace.QuestionOpen
	q.LastUpdated = time.Now()
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}
