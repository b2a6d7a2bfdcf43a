package workspace_test

import (
	"reflect"
	"testing"

	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

func TestComposeSummary(t *testing.T) {
	sources := []*workspace.Source{
		{ID: "s1", Raw: "Hello world. Great news."},
		{ID: "s2", Raw: "Subject: kickoff\nDear team"},
	}

	bullets, sourceIDs := workspace.ComposeSummary(sources)

	wantBullets := []string{"Hello world", "Great news", "Subject: kickoff", "Dear team"}
	if !reflect.DeepEqual(bullets, wantBullets) {
		t.Errorf("bullets = %v, want %v", bullets, wantBullets)
	}
	if !reflect.DeepEqual(sourceIDs, []string{"s1", "s2"}) {
		t.Errorf("sourceIDs = %v", sourceIDs)
	}
}

func TestComposeSummary_DedupesCaseInsensitive(t *testing.T) {
	sources := []*workspace.Source{
		{ID: "s1", Raw: "Great news."},
		{ID: "s2", Raw: "great NEWS!"},
	}

	bullets, sourceIDs := workspace.ComposeSummary(sources)
	if len(bullets) != 1 {
		t.Fatalf("expected 1 bullet after dedupe, got %v", bullets)
	}
	// First occurrence's spelling wins; the duplicate source contributed
	// nothing and is not recorded.
	if bullets[0] != "Great news" {
		t.Errorf("bullet = %q", bullets[0])
	}
	if !reflect.DeepEqual(sourceIDs, []string{"s1"}) {
		t.Errorf("sourceIDs = %v", sourceIDs)
	}
}

func TestComposeSummary_SkipsArchived(t *testing.T) {
	sources := []*workspace.Source{
		{ID: "s1", Raw: "Keep this."},
		{ID: "s2", Raw: "Skip this.", Archived: true},
	}

	bullets, sourceIDs := workspace.ComposeSummary(sources)
	if !reflect.DeepEqual(bullets, []string{"Keep this"}) {
		t.Errorf("bullets = %v", bullets)
	}
	if !reflect.DeepEqual(sourceIDs, []string{"s1"}) {
		t.Errorf("sourceIDs = %v", sourceIDs)
	}
}

func TestIntakeDetail_ActiveVersion(t *testing.T) {
	d := &workspace.IntakeDetail{
		SummaryVersions: []*workspace.SummaryVersion{
			{ID: "v1"}, {ID: "v2"}, {ID: "v3"},
		},
	}

	// No active id: last version wins.
	if v := d.ActiveVersion(); v.ID != "v3" {
		t.Errorf("ActiveVersion = %s, want v3", v.ID)
	}

	d.ActiveVersionID = "v1"
	if v := d.ActiveVersion(); v.ID != "v1" {
		t.Errorf("ActiveVersion = %s, want v1", v.ID)
	}

	// Dangling id falls back to the last version.
	d.ActiveVersionID = "gone"
	if v := d.ActiveVersion(); v.ID != "v3" {
		t.Errorf("ActiveVersion = %s, want v3", v.ID)
	}

	empty := &workspace.IntakeDetail{}
	if v := empty.ActiveVersion(); v != nil {
		t.Errorf("expected nil active version for empty detail")
	}
}
