package workspace

// IdeaStatus describes where an idea sits in the explorer.
type IdeaStatus string

const (
	IdeaDraft       IdeaStatus = "draft"
	IdeaShortlisted IdeaStatus = "shortlisted"
	IdeaArchived    IdeaStatus = "archived"
)

// IsValid reports whether the status is a known idea status.
func (s IdeaStatus) IsValid() bool {
	switch s {
	case IdeaDraft, IdeaShortlisted, IdeaArchived:
		return true
	default:
		return false
	}
}

// IdeaScore rates an idea on the three explorer axes.
type IdeaScore struct {
	Boldness int `json:"boldness"`
	Clarity  int `json:"clarity"`
	Fit      int `json:"fit"`
}

// Idea is one creative direction in the concept explorer.
// PreviousStatus remembers where the idea stood before it was archived
// so restore is a true round trip.
type Idea struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Logline        string     `json:"logline"`
	Description    string     `json:"description,omitempty"`
	Status         IdeaStatus `json:"status"`
	PreviousStatus IdeaStatus `json:"previousStatus,omitempty"`
	Score          IdeaScore  `json:"score"`
	Tags           []string   `json:"tags"`
}

// Archive parks the idea, remembering its current status.
func (i *Idea) Archive() {
	if i.Status == IdeaArchived {
		return
	}
	i.PreviousStatus = i.Status
	i.Status = IdeaArchived
}

// Restore returns an archived idea to its pre-archive status.
func (i *Idea) Restore() {
	if i.Status != IdeaArchived {
		return
	}
	if i.PreviousStatus.IsValid() && i.PreviousStatus != IdeaArchived {
		i.Status = i.PreviousStatus
	} else {
		i.Status = IdeaDraft
	}
	i.PreviousStatus = ""
}

// ConceptDetail is the concept-explorer step payload. Boards live next
// to the ideas they were promoted from; the board builder step operates
// on this same detail.
type ConceptDetail struct {
	Ideas  []*Idea  `json:"ideas"`
	Boards []*Board `json:"boards"`
}

func newConceptDetail() *ConceptDetail {
	return &ConceptDetail{Ideas: []*Idea{}, Boards: []*Board{}}
}

func (*ConceptDetail) Kind() Kind { return KindConcept }

func (d *ConceptDetail) normalize() {
	ideas := make([]*Idea, 0, len(d.Ideas))
	for _, i := range d.Ideas {
		if i == nil {
			continue
		}
		if i.Tags == nil {
			i.Tags = []string{}
		}
		if !i.Status.IsValid() {
			i.Status = IdeaDraft
		}
		ideas = append(ideas, i)
	}
	d.Ideas = ideas

	boards := make([]*Board, 0, len(d.Boards))
	for _, b := range d.Boards {
		if b == nil {
			continue
		}
		b.normalize()
		boards = append(boards, b)
	}
	d.Boards = boards
}

// Idea returns the idea with the given id.
func (d *ConceptDetail) Idea(id string) (*Idea, bool) {
	for _, i := range d.Ideas {
		if i.ID == id {
			return i, true
		}
	}
	return nil, false
}

// Board returns the board with the given id.
func (d *ConceptDetail) Board(id string) (*Board, bool) {
	for _, b := range d.Boards {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// RemoveBoard deletes the board with the given id and reports whether
// it was present.
func (d *ConceptDetail) RemoveBoard(id string) bool {
	for i, b := range d.Boards {
		if b.ID == id {
			d.Boards = append(d.Boards[:i], d.Boards[i+1:]...)
			return true
		}
	}
	return false
}
