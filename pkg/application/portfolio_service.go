package application

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/portfolio"
	"github.com/felixgeelhaar/studio/pkg/domain/project"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

// PortfolioService serves the read side of the data service contract:
// the dashboard aggregate, the project list, and the open loops
// flattened across the portfolio.
type PortfolioService struct {
	repo domain.WorkspaceRepository
}

// NewPortfolioService wires the portfolio service.
func NewPortfolioService(repo domain.WorkspaceRepository) *PortfolioService {
	return &PortfolioService{repo: repo}
}

// GetPortfolio returns the dashboard aggregate.
func (s *PortfolioService) GetPortfolio(ctx context.Context) (*portfolio.Portfolio, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.repo.Lock()
	defer s.repo.Unlock()
	return s.repo.LoadPortfolio()
}

// GetProjects returns every project.
func (s *PortfolioService) GetProjects(ctx context.Context) ([]*project.Project, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.repo.Lock()
	defer s.repo.Unlock()
	return s.repo.LoadProjects()
}

// GetProjectByID resolves one project. Fails with domain.ErrNotFound
// when the id is unmatched.
func (s *PortfolioService) GetProjectByID(ctx context.Context, id string) (*project.Project, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	s.repo.Lock()
	defer s.repo.Unlock()
	return s.repo.LoadProject(id)
}

// GetLoopsAcrossPortfolio flattens the open follow-up items of every
// project: unanswered brief questions and open critiques, annotated
// with their origin project.
func (s *PortfolioService) GetLoopsAcrossPortfolio(ctx context.Context) ([]portfolio.Loop, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	// Reconciling step details writes back into the module, so the
	// whole traversal holds the graph lock.
	s.repo.Lock()
	defer s.repo.Unlock()
	projects, err := s.repo.LoadProjects()
	if err != nil {
		return nil, err
	}

	loops := []portfolio.Loop{}
	for _, p := range projects {
		for _, m := range p.Modules {
			for _, step := range m.Steps {
				kind, ok := workspace.KindOf(step.ID)
				if !ok {
					continue
				}
				switch kind {
				case workspace.KindBrief:
					detail, ok := workspace.EnsureStepDetail(m, step.ID).(*workspace.BriefDetail)
					if !ok {
						continue
					}
					for _, q := range detail.Questions {
						if q.Status != workspace.QuestionOpen {
							continue
						}
						loops = append(loops, portfolio.Loop{
							ProjectID:   p.ID,
							ProjectName: p.Name,
							ModuleID:    m.ID,
							StepID:      step.ID,
							Kind:        portfolio.LoopQuestion,
							RefID:       q.ID,
							Label:       q.Prompt,
							Owner:       q.Owner,
							Status:      q.Status,
						})
					}
				case workspace.KindCritique:
					detail, ok := workspace.EnsureStepDetail(m, step.ID).(*workspace.CritiqueDetail)
					if !ok {
						continue
					}
					for _, c := range detail.Critiques {
						if c.Status != workspace.CritiqueOpen {
							continue
						}
						loops = append(loops, portfolio.Loop{
							ProjectID:   p.ID,
							ProjectName: p.Name,
							ModuleID:    m.ID,
							StepID:      step.ID,
							Kind:        portfolio.LoopCritique,
							RefID:       c.ID,
							Label:       critiqueLabel(c),
							Status:      c.Status,
						})
					}
				}
			}
		}
	}
	return loops, nil
}

func critiqueLabel(c *workspace.Critique) string {
	if c.Focus != "" {
		return c.Focus
	}
	return fmt.Sprintf("Critique of board %s", c.BoardID)
}
