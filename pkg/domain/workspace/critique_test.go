package workspace_test

import (
	"testing"

	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

func TestCritiqueDetail_ReplaceKeepsPairUnique(t *testing.T) {
	d := &workspace.CritiqueDetail{}

	d.Replace(&workspace.Critique{ID: "c1", BoardID: "b1", VersionID: "v1"})
	d.Replace(&workspace.Critique{ID: "c2", BoardID: "b1", VersionID: "v2"})
	if len(d.Critiques) != 2 {
		t.Fatalf("expected 2 critiques, got %d", len(d.Critiques))
	}

	// Re-running the same pair replaces, never duplicates.
	d.Replace(&workspace.Critique{ID: "c3", BoardID: "b1", VersionID: "v1"})
	if len(d.Critiques) != 2 {
		t.Fatalf("expected 2 critiques after replace, got %d", len(d.Critiques))
	}
	c, ok := d.ForVersion("b1", "v1")
	if !ok || c.ID != "c3" {
		t.Errorf("pair (b1, v1) should resolve to the replacement critique")
	}
}

func TestBoard_HasCritiqueNote(t *testing.T) {
	b := &workspace.Board{
		CritiqueNotes: []*workspace.CritiqueNote{{ArgumentID: "a1"}},
	}
	if !b.HasCritiqueNote("a1") {
		t.Errorf("expected note for a1")
	}
	if b.HasCritiqueNote("a2") {
		t.Errorf("unexpected note for a2")
	}
}
