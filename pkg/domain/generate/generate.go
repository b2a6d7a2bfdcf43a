// Package generate synthesizes suggestion content for the concept
// pipeline: idea seeds, board drafts and critique arguments. The
// built-in provider is deterministic template synthesis, which keeps
// demos reproducible; the Provider interface lets a real generation
// backend replace it while preserving the same shape contract
// (structured output, nil on insufficient input).
package generate

import (
	"context"
	"strings"
)

// SeedRequest carries the grounding material for idea seeding.
type SeedRequest struct {
	Anchors  []string
	Personas []string
	Guidance string
}

// Seed is one suggested creative direction.
type Seed struct {
	Title       string   `json:"title"`
	Logline     string   `json:"logline"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// DraftRequest carries the grounding material for a board draft.
type DraftRequest struct {
	Title    string
	Logline  string
	Anchors  []string
	Personas []string
	Guidance string
}

// Draft is a suggested board version body.
type Draft struct {
	Narrative     string   `json:"narrative"`
	KeyVisuals    []string `json:"keyVisuals"`
	Tone          []string `json:"tone"`
	StrategyLink  string   `json:"strategyLink"`
	AnchorSummary []string `json:"anchorSummary"`
}

// Provider produces suggestion content. Implementations must honor the
// insufficient-input policy: an empty seed list when no anchors exist,
// a nil draft when the logline or anchors are missing. Callers surface
// that as a "add more input" condition, never as a fault.
type Provider interface {
	ID() string
	IdeaSeeds(ctx context.Context, req SeedRequest) ([]Seed, error)
	BoardDraft(ctx context.Context, req DraftRequest) (*Draft, error)
}

// Cues parses free-text guidance into individual cues by splitting on
// sentence terminators.
func Cues(guidance string) []string {
	parts := strings.FieldsFunc(guidance, func(r rune) bool {
		switch r {
		case '.', '!', '?', ';', '\n':
			return true
		}
		return false
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// leadPersona picks the persona voice generated content speaks to.
func leadPersona(personas []string) string {
	for _, p := range personas {
		if strings.TrimSpace(p) != "" {
			return strings.TrimSpace(p)
		}
	}
	return "the audience"
}
