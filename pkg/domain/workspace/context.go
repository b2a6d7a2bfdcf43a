package workspace

import "github.com/felixgeelhaar/studio/pkg/domain/project"

// Read-only projections over a project tree. Downstream steps ground
// their generated content on upstream output through these accessors;
// none of them mutates anything beyond the usual ensure-on-read
// reconciliation.

// FindIntake locates the first intake detail in the project.
func FindIntake(p *project.Project) (*project.Module, *IntakeDetail, bool) {
	m, d, ok := findDetail(p, StepSourceIntake)
	if !ok {
		return nil, nil, false
	}
	return m, d.(*IntakeDetail), true
}

// FindConcept locates the first concept detail in the project. Both the
// board builder and the critique workspace resolve their boards through
// this.
func FindConcept(p *project.Project) (*project.Module, *ConceptDetail, bool) {
	m, d, ok := findDetail(p, StepConceptExplorer)
	if !ok {
		return nil, nil, false
	}
	return m, d.(*ConceptDetail), true
}

// FindPersonas locates the first persona detail in the project.
func FindPersonas(p *project.Project) (*project.Module, *PersonaDetail, bool) {
	m, d, ok := findDetail(p, StepPersonaStudio)
	if !ok {
		return nil, nil, false
	}
	return m, d.(*PersonaDetail), true
}

// FindOutline locates the first scene-outline detail in the project.
// The script pipeline seeds its scenes from this.
func FindOutline(p *project.Project) (*project.Module, *OutlineDetail, bool) {
	m, d, ok := findDetail(p, StepSceneOutline)
	if !ok {
		return nil, nil, false
	}
	return m, d.(*OutlineDetail), true
}

func findDetail(p *project.Project, stepID string) (*project.Module, Detail, bool) {
	for _, m := range p.Modules {
		if _, ok := m.Step(stepID); !ok {
			continue
		}
		return m, EnsureStepDetail(m, stepID), true
	}
	return nil, nil, false
}

// Anchors returns the bullet points of the active intake summary: the
// grounding material for every generator downstream. Empty when no
// analysis has run yet.
func Anchors(p *project.Project) []string {
	_, intake, ok := FindIntake(p)
	if !ok {
		return nil
	}
	v := intake.ActiveVersion()
	if v == nil {
		return nil
	}
	return v.Summary
}

// PersonaNames returns the persona names defined in the project, in
// studio order.
func PersonaNames(p *project.Project) []string {
	_, personas, ok := FindPersonas(p)
	if !ok {
		return nil
	}
	return personas.Names()
}

// AllBoards returns every concept board in the project.
func AllBoards(p *project.Project) []*Board {
	_, concept, ok := FindConcept(p)
	if !ok {
		return nil
	}
	return concept.Boards
}
