package generate_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/felixgeelhaar/studio/pkg/domain/generate"
	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

func TestDeterministic_IdeaSeeds_RequireAnchors(t *testing.T) {
	seeds, err := generate.Deterministic{}.IdeaSeeds(context.Background(), generate.SeedRequest{
		Personas: []string{"Nora"},
		Guidance: "make it loud",
	})
	if err != nil {
		t.Fatalf("IdeaSeeds: %v", err)
	}
	if len(seeds) != 0 {
		t.Errorf("expected no seeds without anchors, got %d", len(seeds))
	}
}

func TestDeterministic_IdeaSeeds(t *testing.T) {
	anchors := []string{
		"Creators come first",
		"Night shooting must feel effortless",
		"One hero film over many cutdowns",
		"A fourth anchor that is ignored",
	}
	seeds, err := generate.Deterministic{}.IdeaSeeds(context.Background(), generate.SeedRequest{
		Anchors:  anchors,
		Personas: []string{"Nora"},
	})
	if err != nil {
		t.Fatalf("IdeaSeeds: %v", err)
	}
	if len(seeds) != 3 {
		t.Fatalf("expected 3 seeds, got %d", len(seeds))
	}

	// Title: title-cased anchor tokens plus the cyclical suffix.
	if seeds[0].Title != "Creators Come First Reboot" {
		t.Errorf("first title = %q", seeds[0].Title)
	}
	if !strings.HasSuffix(seeds[1].Title, "Blueprint") {
		t.Errorf("second title = %q, want Blueprint suffix", seeds[1].Title)
	}
	if !strings.HasSuffix(seeds[2].Title, "Pulse") {
		t.Errorf("third title = %q, want Pulse suffix", seeds[2].Title)
	}

	// Modifier cycle shows up in tags and logline.
	if !reflect.DeepEqual(seeds[0].Tags, []string{"Seed", "Bold"}) {
		t.Errorf("first tags = %v", seeds[0].Tags)
	}
	if !strings.Contains(seeds[0].Logline, "Nora") {
		t.Errorf("logline does not feature the lead persona: %q", seeds[0].Logline)
	}

	// Same input, same output.
	again, _ := generate.Deterministic{}.IdeaSeeds(context.Background(), generate.SeedRequest{
		Anchors:  anchors,
		Personas: []string{"Nora"},
	})
	if !reflect.DeepEqual(seeds, again) {
		t.Errorf("seeds are not deterministic")
	}
}

func TestDeterministic_IdeaSeeds_GuidedTag(t *testing.T) {
	seeds, _ := generate.Deterministic{}.IdeaSeeds(context.Background(), generate.SeedRequest{
		Anchors:  []string{"Creators come first"},
		Guidance: "Keep it playful. Avoid gear talk.",
	})
	if len(seeds) != 1 {
		t.Fatalf("expected 1 seed, got %d", len(seeds))
	}
	found := false
	for _, tag := range seeds[0].Tags {
		if tag == "Guided" {
			found = true
		}
	}
	if !found {
		t.Errorf("guidance cues should add the Guided tag: %v", seeds[0].Tags)
	}
}

func TestDeterministic_BoardDraft_InsufficientInput(t *testing.T) {
	tests := []struct {
		name string
		req  generate.DraftRequest
	}{
		{"no logline", generate.DraftRequest{Anchors: []string{"a"}}},
		{"blank logline", generate.DraftRequest{Logline: "   ", Anchors: []string{"a"}}},
		{"no anchors", generate.DraftRequest{Logline: "A line."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := generate.Deterministic{}.BoardDraft(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("BoardDraft: %v", err)
			}
			if draft != nil {
				t.Errorf("expected nil draft")
			}
		})
	}
}

func TestDeterministic_BoardDraft(t *testing.T) {
	draft, err := generate.Deterministic{}.BoardDraft(context.Background(), generate.DraftRequest{
		Title:    "After Dark",
		Logline:  "The city never sleeps.",
		Anchors:  []string{"Creators first", "Effortless nights", "Hero film", "Extra"},
		Personas: []string{"Nora"},
	})
	if err != nil {
		t.Fatalf("BoardDraft: %v", err)
	}
	if draft == nil {
		t.Fatal("expected a draft")
	}
	if len(draft.KeyVisuals) != 4 {
		t.Errorf("key visuals = %d, want the fixed four", len(draft.KeyVisuals))
	}
	if !reflect.DeepEqual(draft.Tone, []string{"Cinematic", "Human", "Confident"}) {
		t.Errorf("tone = %v", draft.Tone)
	}
	if draft.StrategyLink != "Creators first" {
		t.Errorf("strategy link = %q, want first anchor", draft.StrategyLink)
	}
	if len(draft.AnchorSummary) != 3 {
		t.Errorf("anchor summary = %v, want first three", draft.AnchorSummary)
	}
	if !strings.Contains(draft.Narrative, "The city never sleeps.") {
		t.Errorf("narrative does not carry the logline")
	}
}

func TestDeterministic_BoardDraft_GuidedTone(t *testing.T) {
	draft, _ := generate.Deterministic{}.BoardDraft(context.Background(), generate.DraftRequest{
		Logline:  "A line.",
		Anchors:  []string{"a"},
		Guidance: "More grain; less gloss",
	})
	if draft == nil {
		t.Fatal("expected a draft")
	}
	if draft.Tone[len(draft.Tone)-1] != "Guided" {
		t.Errorf("tone = %v, want Guided appended", draft.Tone)
	}
}

func TestCues(t *testing.T) {
	got := generate.Cues("Keep it playful. Avoid gear talk!\n Short cuts; long nights? ")
	want := []string{"Keep it playful", "Avoid gear talk", "Short cuts", "long nights"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cues = %v, want %v", got, want)
	}
	if len(generate.Cues("   ")) != 0 {
		t.Errorf("blank guidance should yield no cues")
	}
}

func TestCritiqueArguments(t *testing.T) {
	version := &workspace.BoardVersion{
		ID:         "v1",
		Logline:    "The city never sleeps.",
		KeyVisuals: []string{"Neon street"},
	}

	args := generate.CritiqueArguments("c1", version, "")
	if len(args) != 8 {
		t.Fatalf("expected 8 arguments, got %d", len(args))
	}

	counts := map[workspace.ArgumentType]int{}
	for i, a := range args {
		counts[a.Type]++
		if a.Status != workspace.ArgumentOpen {
			t.Errorf("argument %d status = %q, want open", i, a.Status)
		}
	}
	for _, typ := range []workspace.ArgumentType{
		workspace.ArgumentStrength, workspace.ArgumentRisk,
		workspace.ArgumentQuestion, workspace.ArgumentRecommendation,
	} {
		if counts[typ] != 2 {
			t.Errorf("type %s count = %d, want 2", typ, counts[typ])
		}
	}
	if args[0].ID != "c1-arg-1" || args[7].ID != "c1-arg-8" {
		t.Errorf("argument ids not derived from critique id: %s .. %s", args[0].ID, args[7].ID)
	}
}

func TestCritiqueArguments_BudgetGuidance(t *testing.T) {
	version := &workspace.BoardVersion{ID: "v1", Logline: "A line."}

	plain := generate.CritiqueArguments("c1", version, "")
	budget := generate.CritiqueArguments("c1", version, "Mind the BUDGET on this one")

	if plain[3].Text == budget[3].Text {
		t.Errorf("budget guidance should swap the second risk")
	}
	if !strings.Contains(budget[3].Text, "budget") {
		t.Errorf("budget risk text = %q", budget[3].Text)
	}
}
