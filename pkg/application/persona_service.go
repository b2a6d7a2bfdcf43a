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

// PersonaService mutates the audience personas generated content
// speaks to.
type PersonaService struct {
	ws *WorkspaceService
}

// NewPersonaService wires the persona service.
func NewPersonaService(ws *WorkspaceService) *PersonaService {
	return &PersonaService{ws: ws}
}

func (s *PersonaService) resolve(projectID, moduleID, stepID string) (*project.Module, *workspace.PersonaDetail, error) {
	_, m, err := s.ws.Resolve(projectID, moduleID)
	if err != nil {
		return nil, nil, err
	}
	detail, ok := s.ws.EnsureDetail(m, stepID).(*workspace.PersonaDetail)
	if !ok {
		return nil, nil, fmt.Errorf("%w: step %s is not a persona studio step", domain.ErrValidation, stepID)
	}
	return m, detail, nil
}

// AddPersona creates a persona. Name is the only required field.
func (s *PersonaService) AddPersona(ctx context.Context, projectID, moduleID, stepID string, persona workspace.Persona) (*workspace.Persona, error) {
	s.ws.Lock()
	defer s.ws.Unlock()
	if strings.TrimSpace(persona.Name) == "" {
		return nil, fmt.Errorf("%w: persona name is required", domain.ErrValidation)
	}
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return nil, err
	}

	persona.ID = newID("persona")
	persona.Name = strings.TrimSpace(persona.Name)
	if persona.Goals == nil {
		persona.Goals = []string{}
	}
	if persona.PainPoints == nil {
		persona.PainPoints = []string{}
	}
	p := &persona
	detail.Personas = append(detail.Personas, p)
	detail.Updated = time.Now()
	if err := s.ws.PersistDetail(ctx, projectID, m, stepID, detail); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePersona replaces the editable fields of an existing persona.
func (s *PersonaService) UpdatePersona(ctx context.Context, projectID, moduleID, stepID string, persona workspace.Persona) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	if strings.TrimSpace(persona.Name) == "" {
		return fmt.Errorf("%w: persona name is required", domain.ErrValidation)
	}
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	existing, ok := detail.Persona(persona.ID)
	if !ok {
		return fmt.Errorf("persona %s: %w", persona.ID, domain.ErrNotFound)
	}

	existing.Name = strings.TrimSpace(persona.Name)
	existing.Age = persona.Age
	existing.Role = persona.Role
	existing.Bio = persona.Bio
	existing.Quote = persona.Quote
	if persona.Goals != nil {
		existing.Goals = persona.Goals
	}
	if persona.PainPoints != nil {
		existing.PainPoints = persona.PainPoints
	}
	detail.Updated = time.Now()
	return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
}

// RemovePersona deletes a persona from the studio.
func (s *PersonaService) RemovePersona(ctx context.Context, projectID, moduleID, stepID, personaID string) error {
	s.ws.Lock()
	defer s.ws.Unlock()
	m, detail, err := s.resolve(projectID, moduleID, stepID)
	if err != nil {
		return err
	}
	for i, p := range detail.Personas {
		if p.ID == personaID {
			detail.Personas = append(detail.Personas[:i], detail.Personas[i+1:]...)
			detail.Updated = time.Now()
			return s.ws.PersistDetail(ctx, projectID, m, stepID, detail)
		}
	}
	return fmt.Errorf("persona %s: %w", personaID, domain.ErrNotFound)
}
