package application

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

func outlineDetail(t *testing.T, ws *WorkspaceService) *workspace.OutlineDetail {
	t.Helper()
	_, m, err := ws.Resolve("aurora", "script")
	if err != nil {
		t.Fatalf("resolve script module: %v", err)
	}
	return ws.EnsureDetail(m, workspace.StepSceneOutline).(*workspace.OutlineDetail)
}

func TestAddUpdateBeat(t *testing.T) {
	ws, _ := testWorkspace(t)
	svc := NewOutlineService(ws)
	ctx := context.Background()

	if _, err := svc.AddBeat(ctx, "aurora", "script", workspace.StepSceneOutline, BeatInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("titleless beat: got %v, want ErrValidation", err)
	}

	beat, err := svc.AddBeat(ctx, "aurora", "script", workspace.StepSceneOutline, BeatInput{Title: "Cold open", Purpose: "Hook", VisualFocus: "Rooftop"})
	if err != nil {
		t.Fatalf("AddBeat: %v", err)
	}
	if err := svc.UpdateBeat(ctx, "aurora", "script", workspace.StepSceneOutline, beat.ID, BeatInput{Title: "Cold open", Purpose: "Hook harder"}); err != nil {
		t.Fatalf("UpdateBeat: %v", err)
	}
	if beat.Purpose != "Hook harder" {
		t.Errorf("Purpose = %q", beat.Purpose)
	}

	if err := svc.RemoveBeat(ctx, "aurora", "script", workspace.StepSceneOutline, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("remove unknown: got %v, want ErrNotFound", err)
	}
	if err := svc.RemoveBeat(ctx, "aurora", "script", workspace.StepSceneOutline, beat.ID); err != nil {
		t.Fatalf("RemoveBeat: %v", err)
	}
	if got := outlineDetail(t, ws); len(got.Beats) != 0 {
		t.Errorf("beats = %d, want 0", len(got.Beats))
	}
}

func TestSelectBoard(t *testing.T) {
	ws, _ := testWorkspace(t)
	svc := NewOutlineService(ws)
	ctx := context.Background()

	if err := svc.SelectBoard(ctx, "aurora", "script", workspace.StepSceneOutline, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown board: got %v, want ErrNotFound", err)
	}
	// Clearing the selection is always allowed.
	if err := svc.SelectBoard(ctx, "aurora", "script", workspace.StepSceneOutline, ""); err != nil {
		t.Fatalf("clear selection: %v", err)
	}
	if got := outlineDetail(t, ws); got.SelectedBoardID != "" {
		t.Errorf("SelectedBoardID = %q, want empty", got.SelectedBoardID)
	}
}

func TestSeedBeatsFromBoard(t *testing.T) {
	ws, _ := testWorkspace(t)
	svc := NewOutlineService(ws)
	ctx := context.Background()

	beats, err := svc.SeedBeatsFromBoard(ctx, "aurora", "script", workspace.StepSceneOutline)
	if err != nil {
		t.Fatalf("SeedBeatsFromBoard: %v", err)
	}
	// One beat per key visual of the active board version.
	if len(beats) != 2 {
		t.Fatalf("beats = %d, want 2", len(beats))
	}
	if beats[0].Title != "Scene 1" || beats[1].Title != "Scene 2" {
		t.Errorf("titles = %q, %q", beats[0].Title, beats[1].Title)
	}
	if beats[0].VisualFocus != "Neon rooftop wide shot" {
		t.Errorf("VisualFocus = %q", beats[0].VisualFocus)
	}
	if beats[0].Purpose == "" {
		t.Error("first beat should carry an opening purpose")
	}
	if beats[0].Source == nil || beats[0].Source.BoardID != "board-1" || beats[0].Source.VersionID != "ver-1" {
		t.Errorf("Source = %+v", beats[0].Source)
	}
	if len(beats[0].Anchors) == 0 {
		t.Error("seeded beats should carry the intake anchors")
	}
}

func TestSeedBeats_NoSelection(t *testing.T) {
	ws, _ := testWorkspace(t)
	svc := NewOutlineService(ws)
	ctx := context.Background()

	if err := svc.SelectBoard(ctx, "aurora", "script", workspace.StepSceneOutline, ""); err != nil {
		t.Fatalf("clear selection: %v", err)
	}
	if _, err := svc.SeedBeatsFromBoard(ctx, "aurora", "script", workspace.StepSceneOutline); !errors.Is(err, domain.ErrInsufficientInput) {
		t.Fatalf("got %v, want ErrInsufficientInput", err)
	}
}

func TestMoveBeatThroughService(t *testing.T) {
	ws, _ := testWorkspace(t)
	svc := NewOutlineService(ws)
	ctx := context.Background()

	if _, err := svc.SeedBeatsFromBoard(ctx, "aurora", "script", workspace.StepSceneOutline); err != nil {
		t.Fatalf("seed: %v", err)
	}
	detail := outlineDetail(t, ws)
	first := detail.Beats[0].ID

	if err := svc.MoveBeat(ctx, "aurora", "script", workspace.StepSceneOutline, first, 1); err != nil {
		t.Fatalf("MoveBeat: %v", err)
	}
	if detail.Beats[1].ID != first {
		t.Error("beat did not move down")
	}
	if err := svc.MoveBeat(ctx, "aurora", "script", workspace.StepSceneOutline, "missing", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown beat: got %v, want ErrNotFound", err)
	}
}
