package generate

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Fixed vocabulary the deterministic provider cycles through. Indexed
// by seed position mod 5.
var (
	seedModifiers = [5]string{"bold", "intimate", "playful", "cinematic", "unexpected"}
	titleSuffixes = [5]string{"Reboot", "Blueprint", "Pulse", "Momentum", "Resonance"}
)

// The four key visuals every deterministic draft proposes. Not derived
// from input: the same storyboard skeleton every call.
var draftKeyVisuals = [4]string{
	"Opening hero shot that establishes the world",
	"Macro detail of the product in real use",
	"Candid reaction moment with the lead persona",
	"Closing brand lockup with the call to action",
}

var draftBaseTone = [3]string{"Cinematic", "Human", "Confident"}

// Deterministic is the built-in provider: pure template synthesis over
// the anchors and personas, no randomness.
type Deterministic struct{}

func (Deterministic) ID() string { return "deterministic" }

// IdeaSeeds produces up to three seeds, one per anchor in anchor order.
// Returns an empty list when no anchors exist; the caller surfaces that
// as an "add more input" condition.
func (Deterministic) IdeaSeeds(_ context.Context, req SeedRequest) ([]Seed, error) {
	if len(req.Anchors) == 0 {
		return []Seed{}, nil
	}

	persona := leadPersona(req.Personas)
	cues := Cues(req.Guidance)

	count := len(req.Anchors)
	if count > 3 {
		count = 3
	}

	seeds := make([]Seed, 0, count)
	for i := 0; i < count; i++ {
		anchor := req.Anchors[i]
		modifier := seedModifiers[i%len(seedModifiers)]
		seed := Seed{
			Title:   seedTitle(anchor, i),
			Logline: fmt.Sprintf("A %s angle where %s meets \"%s\" head on.", modifier, persona, anchor),
			Description: fmt.Sprintf(
				"Build the spot around the insight that %s. Keep %s at the center of every frame and let the %s energy carry the edit.",
				firstRuneLower(anchor), persona, modifier),
			Tags: []string{"Seed", titleCase(modifier)},
		}
		if len(cues) > 0 {
			seed.Tags = append(seed.Tags, "Guided")
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// seedTitle derives a title from the anchor: non-alphanumerics
// stripped, each token title-cased, plus a cyclical suffix.
func seedTitle(anchor string, i int) string {
	tokens := strings.FieldsFunc(anchor, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	cased := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		cased = append(cased, titleCase(t))
	}
	cased = append(cased, titleSuffixes[i%len(titleSuffixes)])
	return strings.Join(cased, " ")
}

func titleCase(token string) string {
	runes := []rune(strings.ToLower(token))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func firstRuneLower(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// BoardDraft produces a full board version body, or nil when the
// logline or anchors are missing (insufficient input, not a fault).
func (Deterministic) BoardDraft(_ context.Context, req DraftRequest) (*Draft, error) {
	if strings.TrimSpace(req.Logline) == "" || len(req.Anchors) == 0 {
		return nil, nil
	}

	persona := leadPersona(req.Personas)
	cues := Cues(req.Guidance)

	hero := strings.TrimSpace(req.Title)
	if hero == "" {
		hero = "the concept"
	}

	narrative := fmt.Sprintf(
		"We open inside the world of %s. %s is mid-moment, living the tension the brief named, when the idea lands: %s. "+
			"The middle act stays close to %s, letting the product resolve the tension without a hard sell. "+
			"We close on the promise, held just long enough to feel earned.",
		hero, titleCase(persona), strings.TrimSpace(req.Logline), persona)

	tone := append([]string{}, draftBaseTone[:]...)
	if len(cues) > 0 {
		tone = append(tone, "Guided")
	}

	strategy := req.Anchors[0]
	if strings.TrimSpace(strategy) == "" {
		strategy = "Align with the campaign brief"
	}

	summary := req.Anchors
	if len(summary) > 3 {
		summary = summary[:3]
	}

	return &Draft{
		Narrative:     narrative,
		KeyVisuals:    append([]string{}, draftKeyVisuals[:]...),
		Tone:          tone,
		StrategyLink:  strategy,
		AnchorSummary: append([]string{}, summary...),
	}, nil
}
