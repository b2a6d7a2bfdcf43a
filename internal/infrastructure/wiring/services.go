package wiring

import (
	"fmt"

	"github.com/felixgeelhaar/studio/internal/infrastructure/ai"
	"github.com/felixgeelhaar/studio/internal/infrastructure/config"
	"github.com/felixgeelhaar/studio/pkg/application"
	"github.com/felixgeelhaar/studio/pkg/domain/generate"
)

// AppServices exposes the application layer services wired together
// with a workspace.
type AppServices struct {
	Workspace *Workspace
	Portfolio *application.PortfolioService
	Steps     *application.WorkspaceService
	Intake    *application.IntakeService
	Brief     *application.BriefService
	Persona   *application.PersonaService
	Prompt    *application.PromptService
	Concept   *application.ConceptService
	Critique  *application.CritiqueService
	Outline   *application.OutlineService
	Script    *application.ScriptService
	Provider  generate.Provider
}

// BuildAppServices constructs the service workbench for a workspace
// root. The generation provider is resolved from config: a remote
// endpoint when configured, the deterministic generator otherwise.
func BuildAppServices(root string, cfg *config.Config) (*AppServices, error) {
	workspace := NewWorkspace(root)

	var provider generate.Provider = generate.Deterministic{}
	if cfg != nil && cfg.Generate.Endpoint != "" {
		remote, err := ai.NewRemoteProvider(cfg.Generate.Endpoint, cfg.Generate.Model)
		if err != nil {
			return nil, fmt.Errorf("configure generation provider: %w", err)
		}
		provider = remote
	}

	steps := application.NewWorkspaceService(workspace.Repo, workspace.Audit, workspace.Events)

	return &AppServices{
		Workspace: workspace,
		Portfolio: application.NewPortfolioService(workspace.Repo),
		Steps:     steps,
		Intake:    application.NewIntakeService(steps),
		Brief:     application.NewBriefService(steps),
		Persona:   application.NewPersonaService(steps),
		Prompt:    application.NewPromptService(steps),
		Concept:   application.NewConceptService(steps, provider),
		Critique:  application.NewCritiqueService(steps),
		Outline:   application.NewOutlineService(steps),
		Script:    application.NewScriptService(steps),
		Provider:  provider,
	}, nil
}
