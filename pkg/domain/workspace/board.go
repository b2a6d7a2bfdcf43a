package workspace

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/studio/pkg/domain"
)

// BoardVersion is an immutable snapshot of a concept board's content.
// Once created it is never edited; saving changes produces a new
// version.
type BoardVersion struct {
	ID            string    `json:"id"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	Logline       string    `json:"logline"`
	Narrative     string    `json:"narrative"`
	KeyVisuals    []string  `json:"keyVisuals"`
	Tone          []string  `json:"tone"`
	StrategyLink  string    `json:"strategyLink,omitempty"`
	AIGuidance    string    `json:"aiGuidance,omitempty"`
	AnchorSummary []string  `json:"anchorSummary"`
}

// CritiqueNote is a critique argument copied onto a board when the team
// decides to address it.
type CritiqueNote struct {
	ArgumentID string    `json:"argumentId"`
	CritiqueID string    `json:"critiqueId"`
	Type       string    `json:"type"`
	Text       string    `json:"text"`
	AddedAt    time.Time `json:"addedAt"`
}

// Board is a versioned creative artifact promoted from a shortlisted
// idea. Versions are ordered newest first. PreviousStatus remembers
// where the board stood before it was archived so restore is a true
// round trip.
type Board struct {
	ID              string          `json:"id"`
	IdeaID          string          `json:"ideaId,omitempty"`
	Title           string          `json:"title"`
	Logline         string          `json:"logline"`
	Status          BoardStatus     `json:"status"`
	PreviousStatus  BoardStatus     `json:"previousStatus,omitempty"`
	Versions        []*BoardVersion `json:"versions"`
	ActiveVersionID string          `json:"activeVersionId,omitempty"`
	CritiqueNotes   []*CritiqueNote `json:"critiqueNotes"`
}

func (b *Board) normalize() {
	versions := make([]*BoardVersion, 0, len(b.Versions))
	for _, v := range b.Versions {
		if v == nil {
			continue
		}
		if v.KeyVisuals == nil {
			v.KeyVisuals = []string{}
		}
		if v.Tone == nil {
			v.Tone = []string{}
		}
		if v.AnchorSummary == nil {
			v.AnchorSummary = []string{}
		}
		versions = append(versions, v)
	}
	b.Versions = versions
	if b.CritiqueNotes == nil {
		b.CritiqueNotes = []*CritiqueNote{}
	}
	if !b.Status.IsValid() {
		b.Status = BoardDraft
	}
	if b.ActiveVersionID != "" {
		if _, ok := b.Version(b.ActiveVersionID); !ok {
			b.ActiveVersionID = ""
		}
	}
	if b.ActiveVersionID == "" && len(b.Versions) > 0 {
		b.ActiveVersionID = b.Versions[0].ID
	}
}

// Version returns the version with the given id.
func (b *Board) Version(id string) (*BoardVersion, bool) {
	for _, v := range b.Versions {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// ActiveVersion resolves the effective version: the one the active id
// references, else the newest (first) version, else nil.
func (b *Board) ActiveVersion() *BoardVersion {
	if b.ActiveVersionID != "" {
		if v, ok := b.Version(b.ActiveVersionID); ok {
			return v
		}
	}
	if len(b.Versions) == 0 {
		return nil
	}
	return b.Versions[0]
}

// NextVersionNumber returns 1 + the highest existing version number.
func (b *Board) NextVersionNumber() int {
	max := 0
	for _, v := range b.Versions {
		if v.Version > max {
			max = v.Version
		}
	}
	return max + 1
}

// HasCritiqueNote reports whether an argument has already been copied
// onto the board.
func (b *Board) HasCritiqueNote(argumentID string) bool {
	for _, n := range b.CritiqueNotes {
		if n.ArgumentID == argumentID {
			return true
		}
	}
	return false
}

// VersionInput carries the editable fields for a new board version.
type VersionInput struct {
	Title         string
	Logline       string
	Narrative     string
	KeyVisuals    []string
	Tone          []string
	StrategyLink  string
	AIGuidance    string
	AnchorSummary []string
}

// validate is the one gate in the concept pipeline: title, logline and
// narrative must be non-blank after trim and at least one key visual
// must survive trimming.
func (in *VersionInput) validate() ([]string, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Logline) == "" {
		return nil, fmt.Errorf("%w: logline is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Narrative) == "" {
		return nil, fmt.Errorf("%w: narrative is required", domain.ErrValidation)
	}
	visuals := make([]string, 0, len(in.KeyVisuals))
	for _, kv := range in.KeyVisuals {
		kv = strings.TrimSpace(kv)
		if kv != "" {
			visuals = append(visuals, kv)
		}
	}
	if len(visuals) == 0 {
		return nil, fmt.Errorf("%w: at least one key visual is required", domain.ErrValidation)
	}
	return visuals, nil
}

// SaveVersion validates the input and, on success, prepends a new
// immutable version numbered 1 + the prior maximum, updates the board
// title/logline, points the active version at the new entry, and moves
// an archived board back to draft (editing re-activates it). On
// validation failure the board is left untouched.
func (b *Board) SaveVersion(id string, in VersionInput, now time.Time) (*BoardVersion, error) {
	visuals, err := in.validate()
	if err != nil {
		return nil, err
	}

	v := &BoardVersion{
		ID:            id,
		Version:       b.NextVersionNumber(),
		CreatedAt:     now,
		Logline:       strings.TrimSpace(in.Logline),
		Narrative:     strings.TrimSpace(in.Narrative),
		KeyVisuals:    visuals,
		Tone:          append([]string{}, in.Tone...),
		StrategyLink:  in.StrategyLink,
		AIGuidance:    in.AIGuidance,
		AnchorSummary: append([]string{}, in.AnchorSummary...),
	}

	b.Title = strings.TrimSpace(in.Title)
	b.Logline = v.Logline
	b.Versions = append([]*BoardVersion{v}, b.Versions...)
	b.ActiveVersionID = v.ID
	if b.Status == BoardArchived {
		b.Status = BoardDraft
		b.PreviousStatus = ""
	}
	return v, nil
}

// Archive parks the board, remembering its current status.
func (b *Board) Archive() {
	if b.Status == BoardArchived {
		return
	}
	b.PreviousStatus = b.Status
	b.Status = BoardArchived
}

// Restore returns an archived board to its pre-archive status, draft
// when none was recorded.
func (b *Board) Restore() {
	if b.Status != BoardArchived {
		return
	}
	if b.PreviousStatus.IsValid() && b.PreviousStatus != BoardArchived {
		b.Status = b.PreviousStatus
	} else {
		b.Status = BoardDraft
	}
	b.PreviousStatus = ""
}
