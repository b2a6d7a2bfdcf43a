package application

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/portfolio"
	"github.com/felixgeelhaar/studio/pkg/domain/project"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
	"github.com/felixgeelhaar/studio/pkg/storage"
)

// testWorkspace builds a workspace service over a throwaway repository
// seeded with testDocument.
func testWorkspace(t *testing.T) (*WorkspaceService, *storage.FilesystemRepository) {
	t.Helper()
	repo := storage.NewFilesystemRepository(t.TempDir())
	if err := repo.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := repo.SaveDocument(testDocument(t)); err != nil {
		t.Fatalf("save document: %v", err)
	}
	return NewWorkspaceService(repo, domain.NopAuditLogger{}, nil), repo
}

func mustDetail(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal detail: %v", err)
	}
	return raw
}

// testDocument is one project with material at every pipeline stage: an
// analyzed source library, a shortlisted idea, a draft board with one
// version, and an outline pointed at that board.
func testDocument(t *testing.T) *storage.Document {
	t.Helper()
	added := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	intake := &workspace.IntakeDetail{
		Sources: []*workspace.Source{
			{ID: "s1", Label: "Kickoff call", Medium: "note", Raw: "Creators come first. Mobile editing is the wedge.", AddedAt: added},
		},
		SummaryVersions: []*workspace.SummaryVersion{
			{ID: "sum-1", CreatedAt: added, Summary: []string{"Creators come first", "Mobile editing is the wedge"}, SourceIDs: []string{"s1"}},
		},
		ActiveVersionID: "sum-1",
	}
	personas := &workspace.PersonaDetail{
		Personas: []*workspace.Persona{
			{ID: "p1", Name: "Nora", Role: "Travel vlogger", Goals: []string{"Publish daily"}, PainPoints: []string{"Editing time"}},
		},
	}
	concept := &workspace.ConceptDetail{
		Ideas: []*workspace.Idea{
			{ID: "idea-1", Title: "City Lights", Logline: "A creator films an entire night shoot on one battery.", Status: workspace.IdeaShortlisted, Tags: []string{"Seed"}},
			{ID: "idea-2", Title: "Slow Mornings", Logline: "Quiet routines shot at golden hour.", Status: workspace.IdeaDraft, Tags: []string{}},
		},
		Boards: []*workspace.Board{
			{
				ID:      "board-1",
				Title:   "After Dark",
				Logline: "A creator films an entire night shoot on one battery.",
				Status:  workspace.BoardDraft,
				Versions: []*workspace.BoardVersion{
					{
						ID:         "ver-1",
						Version:    1,
						CreatedAt:  added,
						Logline:    "A creator films an entire night shoot on one battery.",
						Narrative:  "We follow one creator through a single night in the city.",
						KeyVisuals: []string{"Neon rooftop wide shot", "Handheld alley chase"},
						Tone:       []string{"Cinematic", "Confident"},
					},
				},
				ActiveVersionID: "ver-1",
				CritiqueNotes:   []*workspace.CritiqueNote{},
			},
		},
	}
	outline := &workspace.OutlineDetail{
		SelectedBoardID: "board-1",
		Beats:           []*workspace.SceneBeat{},
	}

	p := &project.Project{
		ID:     "aurora",
		Name:   "Aurora Launch Film",
		Client: "Aurora Cameras",
		Status: project.StatusActive,
		Modules: []*project.Module{
			{
				ID:     "discover",
				Title:  "Discover & Brief",
				Status: project.StatusActive,
				Steps: []project.Step{
					{ID: workspace.StepSourceIntake, Name: "Source intake", Status: project.StatusActive},
					{ID: workspace.StepBriefQuestions, Name: "Brief questions", Status: project.StatusActive},
					{ID: workspace.StepPersonaStudio, Name: "Persona studio", Status: project.StatusActive},
					{ID: workspace.StepResearchPrompts, Name: "Research prompts", Status: project.StatusActive},
				},
				Details: map[string]json.RawMessage{
					workspace.StepSourceIntake:  mustDetail(t, intake),
					workspace.StepPersonaStudio: mustDetail(t, personas),
				},
			},
			{
				ID:     "concept",
				Title:  "Concept Studio",
				Status: project.StatusActive,
				Steps: []project.Step{
					{ID: workspace.StepConceptExplorer, Name: "Concept explorer", Status: project.StatusActive},
					{ID: workspace.StepBoardBuilder, Name: "Board builder", Status: project.StatusActive},
					{ID: workspace.StepCritique, Name: "Critique workspace", Status: project.StatusActive},
				},
				Details: map[string]json.RawMessage{
					workspace.StepConceptExplorer: mustDetail(t, concept),
				},
			},
			{
				ID:     "script",
				Title:  "Script Room",
				Status: project.StatusActive,
				Steps: []project.Step{
					{ID: workspace.StepSceneOutline, Name: "Scene outline", Status: project.StatusActive},
					{ID: workspace.StepScriptDraft, Name: "Script draft", Status: project.StatusActive},
				},
				Details: map[string]json.RawMessage{
					workspace.StepSceneOutline: mustDetail(t, outline),
				},
			},
		},
	}

	return &storage.Document{
		Portfolio: &portfolio.Portfolio{Metrics: []portfolio.Metric{}, Signals: []portfolio.Signal{}},
		Projects:  []*project.Project{p},
	}
}
