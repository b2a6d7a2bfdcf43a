package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studio/pkg/domain/portfolio"
	"github.com/felixgeelhaar/studio/pkg/domain/project"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
	"github.com/felixgeelhaar/studio/pkg/storage"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write a demo studio document",
	Long: `Write a demo studio document into .studio/studio.json: one
campaign project with every step kind populated, plus portfolio
metrics. Refuses to overwrite an existing document unless --force
is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		repo := storage.NewFilesystemRepository(cwd)

		if _, err := os.Stat(repo.DocumentPath()); err == nil && !seedForce {
			return fmt.Errorf("studio document already exists; use --force to overwrite")
		}
		if err := repo.Initialize(); err != nil {
			return err
		}
		if err := repo.SaveDocument(demoDocument()); err != nil {
			return fmt.Errorf("failed to write demo document: %w", err)
		}

		fmt.Printf("Seeded demo workspace at %s\n", repo.DocumentPath())
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "overwrite an existing document")
	RootCmd.AddCommand(seedCmd)
}

func demoDocument() *storage.Document {
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	discover := &project.Module{
		ID:     "discover-brief",
		Title:  "Discover & Brief",
		Status: project.StatusActive,
		Steps: []project.Step{
			{ID: workspace.StepSourceIntake, Name: "Source Intake", Status: project.StatusActive},
			{ID: workspace.StepBriefQuestions, Name: "Brief Questions", Status: project.StatusActive},
			{ID: workspace.StepPersonaStudio, Name: "Persona Studio", Status: project.StatusDraft},
			{ID: workspace.StepResearchPrompts, Name: "Research Prompts", Status: project.StatusDraft},
		},
	}
	_ = discover.StoreDetail(workspace.StepSourceIntake, &workspace.IntakeDetail{
		Sources: []*workspace.Source{
			{
				ID: "src-brief", Label: "Client brief", Medium: "upload", AddedAt: now,
				Raw: "Aurora wants a launch film that makes night photography feel effortless. The campaign must speak to creators first.",
			},
			{
				ID: "src-call", Label: "Kickoff call notes", Medium: "note", AddedAt: now,
				Raw: "Budget favors one hero film over many cutdowns. Client loves handheld, imperfect footage.",
			},
		},
		SummaryVersions: []*workspace.SummaryVersion{
			{
				ID: "sum-1", CreatedAt: now,
				Summary: []string{
					"Aurora wants a launch film that makes night photography feel effortless",
					"The campaign must speak to creators first",
					"Budget favors one hero film over many cutdowns",
					"Client loves handheld, imperfect footage",
				},
				SourceIDs: []string{"src-brief", "src-call"},
			},
		},
		ActiveVersionID: "sum-1",
	})
	_ = discover.StoreDetail(workspace.StepBriefQuestions, &workspace.BriefDetail{
		Questions: []*workspace.BriefQuestion{
			{
				ID: "q-1", Prompt: "Is the launch date fixed to the hardware ship date?",
				Owner: "Maya", Impact: []string{"timeline"}, Status: workspace.QuestionOpen,
			},
			{
				ID: "q-2", Prompt: "Can we feature real creator footage in the hero film?",
				Impact: []string{"legal", "casting"}, Status: workspace.QuestionAnswered,
				Answer: "Yes, with signed releases.", LastUpdated: now,
			},
		},
	})
	_ = discover.StoreDetail(workspace.StepPersonaStudio, &workspace.PersonaDetail{
		Personas: []*workspace.Persona{
			{
				ID: "persona-nora", Name: "Nora", Age: 27, Role: "Freelance photographer",
				Goals:      []string{"Shoot city nights without a tripod"},
				PainPoints: []string{"Gear that needs a manual"},
				Quote:      "If I have to think about settings, the moment is gone.",
			},
		},
		Updated: now,
	})
	_ = discover.StoreDetail(workspace.StepResearchPrompts, &workspace.PromptsDetail{
		Prompts: []*workspace.ResearchPrompt{
			{
				ID: "prompt-trends", Label: "Night photography trends", Channel: "social",
				PromptText: "What night photography styles are trending with creators this quarter?",
				Tags:       []string{"trends"}, Status: workspace.PromptReady,
			},
		},
		Watch: []string{"prompt-trends"},
	})

	concept := &project.Module{
		ID:     "concept-studio",
		Title:  "Concept Studio",
		Status: project.StatusActive,
		Steps: []project.Step{
			{ID: workspace.StepConceptExplorer, Name: "Concept Explorer", Status: project.StatusActive},
			{ID: workspace.StepBoardBuilder, Name: "Concept Boards", Status: project.StatusActive},
			{ID: workspace.StepCritique, Name: "Critique Workspace", Status: project.StatusDraft},
		},
	}
	_ = concept.StoreDetail(workspace.StepConceptExplorer, &workspace.ConceptDetail{
		Ideas: []*workspace.Idea{
			{
				ID: "idea-citylights", Title: "City Lights, No Fear",
				Logline:     "Creators reclaim the night, one handheld shot at a time.",
				Description: "A creator-led montage of imperfect, alive night footage.",
				Status:      workspace.IdeaShortlisted,
				Score:       workspace.IdeaScore{Boldness: 7, Clarity: 8, Fit: 9},
				Tags:        []string{"hero-film"},
			},
		},
		Boards: []*workspace.Board{
			{
				ID:      "board-afterdark",
				Title:   "After Dark",
				Logline: "The city does not sleep, and neither does your camera.",
				Status:  workspace.BoardDraft,
				Versions: []*workspace.BoardVersion{
					{
						ID: "ver-1", Version: 1, CreatedAt: now,
						Logline: "The city does not sleep, and neither does your camera.",
						Narrative: "We follow three creators from dusk to dawn, cutting between their viewfinders and the finished frames.",
						KeyVisuals: []string{
							"A handheld shot steadying on a neon-lit street",
							"A creator grinning at their camera screen",
						},
						Tone:          []string{"Cinematic", "Human"},
						StrategyLink:  "The campaign must speak to creators first",
						AnchorSummary: []string{"Creators first", "Effortless night shooting"},
					},
				},
				ActiveVersionID: "ver-1",
				CritiqueNotes:   []*workspace.CritiqueNote{},
			},
		},
	})

	production := &project.Module{
		ID:     "script-room",
		Title:  "Script Room",
		Status: project.StatusQueued,
		Steps: []project.Step{
			{ID: workspace.StepSceneOutline, Name: "Scene Outline", Status: project.StatusDraft},
			{ID: workspace.StepScriptDraft, Name: "Script Draft", Status: project.StatusDraft},
		},
	}
	_ = production.StoreDetail(workspace.StepSceneOutline, &workspace.OutlineDetail{
		SelectedBoardID: "board-afterdark",
		Beats: []*workspace.SceneBeat{
			{
				ID: "beat-1", Title: "Dusk", Purpose: "Set the stakes: the light is going.",
				VisualFocus: "A creator packing up as others head home",
				Anchors:     []string{"The campaign must speak to creators first"},
			},
		},
	})

	aurora := &project.Project{
		ID:      "aurora-launch",
		Name:    "Aurora Launch Film",
		Client:  "Aurora Cameras",
		Status:  project.StatusActive,
		Modules: []*project.Module{discover, concept, production},
	}

	return &storage.Document{
		Portfolio: &portfolio.Portfolio{
			Metrics: []portfolio.Metric{
				{ID: "m-active", Label: "Active projects", Value: "1", Trend: "flat"},
				{ID: "m-loops", Label: "Open loops", Value: "2", Delta: "+1", Trend: "up"},
			},
			Signals: []portfolio.Signal{
				{
					ID: "sig-trend", Title: "Night photography is trending",
					Detail: "Creator posts tagged #afterdark are up quarter over quarter.",
					Tone:   "positive",
				},
			},
		},
		Projects: []*project.Project{aurora},
	}
}
