package workspace

import (
	"strings"
	"time"
)

// Source is one piece of raw input material in the source library.
type Source struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Medium   string    `json:"medium,omitempty"` // note, upload, link
	Raw      string    `json:"raw"`
	Archived bool      `json:"archived"`
	AddedAt  time.Time `json:"addedAt,omitempty"`
}

// SummaryVersion is one analysis pass over the non-archived sources.
// Versions are insertion-ordered; the last entry is the default active
// version.
type SummaryVersion struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Summary   []string  `json:"summary"`
	SourceIDs []string  `json:"sourceIds"`
}

// IntakeDetail is the source-intake step payload.
type IntakeDetail struct {
	Sources         []*Source         `json:"sources"`
	SummaryVersions []*SummaryVersion `json:"summaryVersions"`
	ActiveVersionID string            `json:"activeVersionId,omitempty"`
	HideArchived    bool              `json:"hideArchived"`
}

func newIntakeDetail() *IntakeDetail {
	return &IntakeDetail{
		Sources:         []*Source{},
		SummaryVersions: []*SummaryVersion{},
	}
}

func (*IntakeDetail) Kind() Kind { return KindIntake }

// normalize corrects a stored payload against the current shape:
// nil slices become empty, nil entries are dropped, and the active
// version id is re-derived when it no longer references a version.
func (d *IntakeDetail) normalize() {
	d.Sources = compactSources(d.Sources)
	d.SummaryVersions = compactVersions(d.SummaryVersions)
	if d.ActiveVersionID != "" {
		if _, ok := d.Version(d.ActiveVersionID); !ok {
			d.ActiveVersionID = ""
		}
	}
	if d.ActiveVersionID == "" && len(d.SummaryVersions) > 0 {
		d.ActiveVersionID = d.SummaryVersions[len(d.SummaryVersions)-1].ID
	}
}

func compactSources(in []*Source) []*Source {
	out := make([]*Source, 0, len(in))
	for _, s := range in {
		if s == nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

func compactVersions(in []*SummaryVersion) []*SummaryVersion {
	out := make([]*SummaryVersion, 0, len(in))
	for _, v := range in {
		if v == nil {
			continue
		}
		if v.Summary == nil {
			v.Summary = []string{}
		}
		if v.SourceIDs == nil {
			v.SourceIDs = []string{}
		}
		out = append(out, v)
	}
	return out
}

// Source returns the source with the given id. Sources are addressed by
// id exclusively, never by object identity.
func (d *IntakeDetail) Source(id string) (*Source, bool) {
	for _, s := range d.Sources {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Version returns the summary version with the given id.
func (d *IntakeDetail) Version(id string) (*SummaryVersion, bool) {
	for _, v := range d.SummaryVersions {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// ActiveVersion resolves the effective summary version: the one the
// active id references, else the last (most recent) version, else nil.
func (d *IntakeDetail) ActiveVersion() *SummaryVersion {
	if d.ActiveVersionID != "" {
		if v, ok := d.Version(d.ActiveVersionID); ok {
			return v
		}
	}
	if len(d.SummaryVersions) == 0 {
		return nil
	}
	return d.SummaryVersions[len(d.SummaryVersions)-1]
}

// ComposeSummary distills the non-archived sources into bullet points.
// Each source's raw text is split into sentence/line candidates;
// bullets are deduplicated by text (case-insensitive), and a source id
// is recorded the first time that source contributes a bullet, in
// source order.
func ComposeSummary(sources []*Source) (bullets []string, sourceIDs []string) {
	bullets = []string{}
	sourceIDs = []string{}
	seen := make(map[string]bool)
	for _, s := range sources {
		if s == nil || s.Archived {
			continue
		}
		contributed := false
		for _, candidate := range splitBullets(s.Raw) {
			key := strings.ToLower(candidate)
			if seen[key] {
				continue
			}
			seen[key] = true
			bullets = append(bullets, candidate)
			contributed = true
		}
		if contributed {
			sourceIDs = append(sourceIDs, s.ID)
		}
	}
	return bullets, sourceIDs
}

// splitBullets breaks raw source text on sentence terminators and line
// breaks, trimming trailing punctuation and whitespace.
func splitBullets(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case '.', '!', '?', '\n', '\r':
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
