package workspace

import "time"

// ArgumentType classifies a critique argument.
type ArgumentType string

const (
	ArgumentStrength       ArgumentType = "Strength"
	ArgumentRisk           ArgumentType = "Risk"
	ArgumentQuestion       ArgumentType = "Question"
	ArgumentRecommendation ArgumentType = "Recommendation"
)

// Argument statuses. Ignoring an argument is terminal in the product
// surface; the data model keeps the field writable.
const (
	ArgumentOpen      = "open"
	ArgumentAddressed = "addressed"
	ArgumentIgnored   = "ignored"
)

// Critique statuses.
const (
	CritiqueOpen   = "open"
	CritiqueClosed = "closed"
)

// Argument is one typed point in a critique.
type Argument struct {
	ID     string       `json:"id"`
	Type   ArgumentType `json:"type"`
	Text   string       `json:"text"`
	Status string       `json:"status"`
}

// Critique is a structured review of exactly one board version. A
// detail holds at most one critique per (boardId, versionId) pair;
// re-running the critique replaces the prior entry.
type Critique struct {
	ID        string      `json:"id"`
	BoardID   string      `json:"boardId"`
	VersionID string      `json:"versionId"`
	CreatedAt time.Time   `json:"createdAt"`
	Focus     string      `json:"focus,omitempty"`
	Arguments []*Argument `json:"arguments"`
	Status    string      `json:"status"`
}

// Argument returns the argument with the given id.
func (c *Critique) Argument(id string) (*Argument, bool) {
	for _, a := range c.Arguments {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// CritiqueDetail is the critique-workspace step payload.
type CritiqueDetail struct {
	Critiques []*Critique `json:"critiques"`
}

func newCritiqueDetail() *CritiqueDetail {
	return &CritiqueDetail{Critiques: []*Critique{}}
}

func (*CritiqueDetail) Kind() Kind { return KindCritique }

func (d *CritiqueDetail) normalize() {
	out := make([]*Critique, 0, len(d.Critiques))
	for _, c := range d.Critiques {
		if c == nil {
			continue
		}
		if c.Arguments == nil {
			c.Arguments = []*Argument{}
		}
		for _, a := range c.Arguments {
			if a.Status == "" {
				a.Status = ArgumentOpen
			}
		}
		if c.Status == "" {
			c.Status = CritiqueOpen
		}
		out = append(out, c)
	}
	d.Critiques = out
}

// Critique returns the critique with the given id.
func (d *CritiqueDetail) Critique(id string) (*Critique, bool) {
	for _, c := range d.Critiques {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// ForVersion returns the critique keyed to the (boardID, versionID)
// pair, if one exists.
func (d *CritiqueDetail) ForVersion(boardID, versionID string) (*Critique, bool) {
	for _, c := range d.Critiques {
		if c.BoardID == boardID && c.VersionID == versionID {
			return c, true
		}
	}
	return nil, false
}

// Replace installs a critique, removing any prior entry for the same
// (boardId, versionId) pair. This keeps the pair unique.
func (d *CritiqueDetail) Replace(c *Critique) {
	kept := make([]*Critique, 0, len(d.Critiques))
	for _, existing := range d.Critiques {
		if existing.BoardID == c.BoardID && existing.VersionID == c.VersionID {
			continue
		}
		kept = append(kept, existing)
	}
	d.Critiques = append(kept, c)
}
