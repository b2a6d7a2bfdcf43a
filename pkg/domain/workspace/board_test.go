package workspace_test

import (
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

func validInput() workspace.VersionInput {
	return workspace.VersionInput{
		Title:      "After Dark",
		Logline:    "The city never sleeps.",
		Narrative:  "Three creators from dusk to dawn.",
		KeyVisuals: []string{"Neon street, handheld"},
	}
}

func TestBoard_SaveVersion_Gate(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		mutate func(*workspace.VersionInput)
	}{
		{"blank title", func(in *workspace.VersionInput) { in.Title = "  " }},
		{"blank logline", func(in *workspace.VersionInput) { in.Logline = "" }},
		{"blank narrative", func(in *workspace.VersionInput) { in.Narrative = "\t" }},
		{"no key visuals", func(in *workspace.VersionInput) { in.KeyVisuals = nil }},
		{"only blank visuals", func(in *workspace.VersionInput) { in.KeyVisuals = []string{" ", ""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &workspace.Board{ID: "b1", Status: workspace.BoardDraft}
			in := validInput()
			tt.mutate(&in)

			_, err := b.SaveVersion("v1", in, now)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(b.Versions) != 0 {
				t.Errorf("board mutated on validation failure")
			}
		})
	}
}

func TestBoard_SaveVersion_Monotonic(t *testing.T) {
	b := &workspace.Board{ID: "b1", Status: workspace.BoardDraft}
	now := time.Now()

	v1, err := b.SaveVersion("v1", validInput(), now)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if v1.Version != 1 {
		t.Errorf("first version = %d, want 1", v1.Version)
	}

	v2, err := b.SaveVersion("v2", validInput(), now)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if v2.Version != 2 {
		t.Errorf("second version = %d, want 2", v2.Version)
	}

	// Newest first, active id follows the newest entry.
	if b.Versions[0].ID != "v2" {
		t.Errorf("versions not prepended: %s first", b.Versions[0].ID)
	}
	if b.ActiveVersionID != "v2" {
		t.Errorf("active id = %s, want v2", b.ActiveVersionID)
	}

	// Numbering survives deleting the newest version.
	b.Versions = b.Versions[1:]
	v3, err := b.SaveVersion("v3", validInput(), now)
	if err != nil {
		t.Fatalf("third save: %v", err)
	}
	if v3.Version != 2 {
		t.Errorf("version after removal = %d, want 2", v3.Version)
	}
}

func TestBoard_SaveVersion_TrimsAndFilters(t *testing.T) {
	b := &workspace.Board{ID: "b1", Status: workspace.BoardDraft}
	in := validInput()
	in.Logline = "  The city never sleeps.  "
	in.KeyVisuals = []string{" Neon street ", "", "Rooftop dawn"}

	v, err := b.SaveVersion("v1", in, time.Now())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if v.Logline != "The city never sleeps." {
		t.Errorf("logline not trimmed: %q", v.Logline)
	}
	if len(v.KeyVisuals) != 2 || v.KeyVisuals[0] != "Neon street" {
		t.Errorf("key visuals not cleaned: %v", v.KeyVisuals)
	}
}

func TestBoard_SaveVersion_UnarchivesToDraft(t *testing.T) {
	b := &workspace.Board{ID: "b1", Status: workspace.BoardInReview}
	b.Archive()
	if b.Status != workspace.BoardArchived {
		t.Fatalf("archive failed")
	}

	if _, err := b.SaveVersion("v1", validInput(), time.Now()); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Editing an archived board re-activates it as draft, not to its
	// pre-archive status.
	if b.Status != workspace.BoardDraft {
		t.Errorf("status after edit = %s, want draft", b.Status)
	}
	if b.PreviousStatus != "" {
		t.Errorf("previous status not cleared")
	}
}

func TestBoard_ArchiveRestoreRoundTrip(t *testing.T) {
	for _, status := range []workspace.BoardStatus{
		workspace.BoardDraft, workspace.BoardInReview, workspace.BoardClientReady,
	} {
		b := &workspace.Board{ID: "b1", Status: status}
		b.Archive()
		if b.Status != workspace.BoardArchived {
			t.Fatalf("archive from %s failed", status)
		}
		b.Restore()
		if b.Status != status {
			t.Errorf("restore from archive: got %s, want %s", b.Status, status)
		}
	}

	// Restore without a recorded status falls back to draft.
	b := &workspace.Board{ID: "b1", Status: workspace.BoardArchived}
	b.Restore()
	if b.Status != workspace.BoardDraft {
		t.Errorf("restore without memory = %s, want draft", b.Status)
	}
}

func TestIdea_ArchiveRestoreRoundTrip(t *testing.T) {
	idea := &workspace.Idea{ID: "i1", Status: workspace.IdeaShortlisted}
	idea.Archive()
	if idea.Status != workspace.IdeaArchived {
		t.Fatalf("archive failed")
	}
	idea.Restore()
	if idea.Status != workspace.IdeaShortlisted {
		t.Errorf("restore = %s, want shortlisted", idea.Status)
	}
}

func TestBoard_ActiveVersion(t *testing.T) {
	b := &workspace.Board{
		Versions: []*workspace.BoardVersion{{ID: "v2"}, {ID: "v1"}},
	}
	if v := b.ActiveVersion(); v.ID != "v2" {
		t.Errorf("no active id: got %s, want newest", v.ID)
	}
	b.ActiveVersionID = "v1"
	if v := b.ActiveVersion(); v.ID != "v1" {
		t.Errorf("active id ignored")
	}
	b.ActiveVersionID = "gone"
	if v := b.ActiveVersion(); v.ID != "v2" {
		t.Errorf("dangling id should fall back to newest")
	}
}
