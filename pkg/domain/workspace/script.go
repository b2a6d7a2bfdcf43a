package workspace

import "time"

// Script draft statuses.
const (
	DraftWorking  = "working"
	DraftReview   = "review"
	DraftApproved = "approved"
)

// DraftScene is one scene stub inside a script draft. SourceSceneID
// points back at the outline beat the scene was seeded from.
type DraftScene struct {
	ID            string   `json:"id"`
	Heading       string   `json:"heading"`
	Summary       string   `json:"summary,omitempty"`
	Script        string   `json:"script,omitempty"`
	Cues          []string `json:"cues"`
	SourceSceneID string   `json:"sourceSceneId,omitempty"`
}

// ScriptDraft is one append-only draft of the script. Drafts are never
// merged: re-running the pipeline creates a new draft.
type ScriptDraft struct {
	ID               string        `json:"id"`
	Label            string        `json:"label"`
	Status           string        `json:"status"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
	OutlineSnapshot  []string      `json:"outlineSnapshot"`
	Scenes           []*DraftScene `json:"scenes"`
	ConceptVersionID string        `json:"conceptVersionId,omitempty"`
}

// Scene returns the scene with the given id.
func (d *ScriptDraft) Scene(id string) (*DraftScene, bool) {
	for _, s := range d.Scenes {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// ScriptDetail is the script-draft step payload.
type ScriptDetail struct {
	Drafts        []*ScriptDraft `json:"drafts"`
	ActiveDraftID string         `json:"activeDraftId,omitempty"`
}

func newScriptDetail() *ScriptDetail {
	return &ScriptDetail{Drafts: []*ScriptDraft{}}
}

func (*ScriptDetail) Kind() Kind { return KindScript }

func (d *ScriptDetail) normalize() {
	out := make([]*ScriptDraft, 0, len(d.Drafts))
	for _, dr := range d.Drafts {
		if dr == nil {
			continue
		}
		if dr.OutlineSnapshot == nil {
			dr.OutlineSnapshot = []string{}
		}
		scenes := make([]*DraftScene, 0, len(dr.Scenes))
		for _, s := range dr.Scenes {
			if s == nil {
				continue
			}
			if s.Cues == nil {
				s.Cues = []string{}
			}
			scenes = append(scenes, s)
		}
		dr.Scenes = scenes
		if dr.Status == "" {
			dr.Status = DraftWorking
		}
		out = append(out, dr)
	}
	d.Drafts = out
	if d.ActiveDraftID != "" {
		if _, ok := d.Draft(d.ActiveDraftID); !ok {
			d.ActiveDraftID = ""
		}
	}
}

// Draft returns the draft with the given id.
func (d *ScriptDetail) Draft(id string) (*ScriptDraft, bool) {
	for _, dr := range d.Drafts {
		if dr.ID == id {
			return dr, true
		}
	}
	return nil, false
}

// ActiveDraft resolves the draft being worked on: the one the active id
// references, else the most recently added, else nil.
func (d *ScriptDetail) ActiveDraft() *ScriptDraft {
	if d.ActiveDraftID != "" {
		if dr, ok := d.Draft(d.ActiveDraftID); ok {
			return dr
		}
	}
	if len(d.Drafts) == 0 {
		return nil
	}
	return d.Drafts[len(d.Drafts)-1]
}
