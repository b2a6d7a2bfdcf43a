package workspace

import "time"

// Brief question statuses.
const (
	QuestionOpen     = "open"
	QuestionAnswered = "answered"
)

// BriefQuestion is one clarifying question raised against the client
// brief.
type BriefQuestion struct {
	ID          string    `json:"id"`
	Prompt      string    `json:"prompt"`
	Owner       string    `json:"owner,omitempty"`
	Impact      []string  `json:"impact"`
	Status      string    `json:"status"`
	Answer      string    `json:"answer,omitempty"`
	LastUpdated time.Time `json:"lastUpdated,omitempty"`
}

// BriefDetail is the brief-questions step payload.
type BriefDetail struct {
	Questions []*BriefQuestion `json:"questions"`
}

func newBriefDetail() *BriefDetail {
	return &BriefDetail{Questions: []*BriefQuestion{}}
}

func (*BriefDetail) Kind() Kind { return KindBrief }

func (d *BriefDetail) normalize() {
	out := make([]*BriefQuestion, 0, len(d.Questions))
	for _, q := range d.Questions {
		if q == nil {
			continue
		}
		if q.Impact == nil {
			q.Impact = []string{}
		}
		if q.Status == "" {
			q.Status = QuestionOpen
		}
		out = append(out, q)
	}
	d.Questions = out
}

// Question returns the question with the given id.
func (d *BriefDetail) Question(id string) (*BriefQuestion, bool) {
	for _, q := range d.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return nil, false
}
