package generate

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

// CritiqueArguments builds the fixed-cardinality argument set for a
// board version review: two of each type, every argument open. Budget
// guidance swaps one Risk for the production-cost angle. Argument ids
// are derived from the critique id so re-running a critique yields a
// fresh, self-consistent set.
func CritiqueArguments(critiqueID string, version *workspace.BoardVersion, guidance string) []*workspace.Argument {
	budget := strings.Contains(strings.ToLower(guidance), "budget")

	visual := "the storyboard"
	if len(version.KeyVisuals) > 0 {
		visual = fmt.Sprintf("%q", version.KeyVisuals[0])
	}

	secondRisk := "The narrative leans on a single reveal; if it lands flat there is no second hook."
	if budget {
		secondRisk = "The hero treatment implies a production budget the brief has not confirmed."
	}

	texts := []struct {
		typ  workspace.ArgumentType
		text string
	}{
		{workspace.ArgumentStrength, fmt.Sprintf("The logline %q gives the edit a clear spine.", version.Logline)},
		{workspace.ArgumentStrength, fmt.Sprintf("Opening on %s grounds the concept in a concrete image.", visual)},
		{workspace.ArgumentRisk, "The emotional turn arrives late; a cold audience may disengage before it."},
		{workspace.ArgumentRisk, secondRisk},
		{workspace.ArgumentQuestion, "Which anchor does the client weight highest, and does this version serve it?"},
		{workspace.ArgumentQuestion, "Does the closing frame work without voiceover in paid social placements?"},
		{workspace.ArgumentRecommendation, "Pull the product resolve one beat earlier and let the close breathe."},
		{workspace.ArgumentRecommendation, "Cut an alternate 15s structure from the same visuals before client review."},
	}

	args := make([]*workspace.Argument, 0, len(texts))
	for i, t := range texts {
		args = append(args, &workspace.Argument{
			ID:     fmt.Sprintf("%s-arg-%d", critiqueID, i+1),
			Type:   t.typ,
			Text:   t.text,
			Status: workspace.ArgumentOpen,
		})
	}
	return args
}
