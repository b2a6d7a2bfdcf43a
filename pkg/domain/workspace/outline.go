package workspace

// BeatSource records where a scene beat was seeded from: a key visual
// of a specific board version.
type BeatSource struct {
	BoardID   string `json:"boardId"`
	VersionID string `json:"versionId"`
	KeyVisual string `json:"keyVisual"`
}

// SceneBeat is one entry in the scene outline. Beat order is the scene
// sequence order.
type SceneBeat struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Purpose     string      `json:"purpose,omitempty"`
	VisualFocus string      `json:"visualFocus,omitempty"`
	Duration    string      `json:"duration,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Anchors     []string    `json:"anchors"`
	Source      *BeatSource `json:"source,omitempty"`
	AIGuidance  string      `json:"aiGuidance,omitempty"`
}

// OutlineDetail is the scene-outline step payload.
type OutlineDetail struct {
	SelectedBoardID string       `json:"selectedBoardId,omitempty"`
	Beats           []*SceneBeat `json:"beats"`
}

func newOutlineDetail() *OutlineDetail {
	return &OutlineDetail{Beats: []*SceneBeat{}}
}

func (*OutlineDetail) Kind() Kind { return KindOutline }

func (d *OutlineDetail) normalize() {
	out := make([]*SceneBeat, 0, len(d.Beats))
	for _, b := range d.Beats {
		if b == nil {
			continue
		}
		if b.Anchors == nil {
			b.Anchors = []string{}
		}
		out = append(out, b)
	}
	d.Beats = out
}

// Beat returns the beat with the given id and its position.
func (d *OutlineDetail) Beat(id string) (*SceneBeat, int, bool) {
	for i, b := range d.Beats {
		if b.ID == id {
			return b, i, true
		}
	}
	return nil, 0, false
}

// MoveBeat shifts a beat by delta positions, clamped to the sequence
// bounds. Reports whether the beat exists.
func (d *OutlineDetail) MoveBeat(id string, delta int) bool {
	_, from, ok := d.Beat(id)
	if !ok {
		return false
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(d.Beats)-1 {
		to = len(d.Beats) - 1
	}
	if to == from {
		return true
	}
	beat := d.Beats[from]
	d.Beats = append(d.Beats[:from], d.Beats[from+1:]...)
	d.Beats = append(d.Beats[:to], append([]*SceneBeat{beat}, d.Beats[to:]...)...)
	return true
}

// RemoveBeat deletes the beat with the given id and reports whether it
// was present.
func (d *OutlineDetail) RemoveBeat(id string) bool {
	_, i, ok := d.Beat(id)
	if !ok {
		return false
	}
	d.Beats = append(d.Beats[:i], d.Beats[i+1:]...)
	return true
}
