package workspace

import "time"

// Research prompt statuses.
const (
	PromptReady   = "ready"
	PromptRunning = "running"
	PromptDone    = "done"
)

// ResearchPrompt is one reusable prompt in the research library.
type ResearchPrompt struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Channel    string    `json:"channel,omitempty"`
	PromptText string    `json:"promptText"`
	Tags       []string  `json:"tags"`
	Status     string    `json:"status"`
	LastRun    time.Time `json:"lastRun,omitempty"`
}

// PromptsDetail is the research-prompts step payload. Watch holds the
// ids of prompts pinned for follow-up.
type PromptsDetail struct {
	Prompts []*ResearchPrompt `json:"prompts"`
	Watch   []string          `json:"watch"`
}

func newPromptsDetail() *PromptsDetail {
	return &PromptsDetail{Prompts: []*ResearchPrompt{}, Watch: []string{}}
}

func (*PromptsDetail) Kind() Kind { return KindPrompts }

func (d *PromptsDetail) normalize() {
	out := make([]*ResearchPrompt, 0, len(d.Prompts))
	for _, p := range d.Prompts {
		if p == nil {
			continue
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		if p.Status == "" {
			p.Status = PromptReady
		}
		out = append(out, p)
	}
	d.Prompts = out
	if d.Watch == nil {
		d.Watch = []string{}
	}
}

// Prompt returns the prompt with the given id.
func (d *PromptsDetail) Prompt(id string) (*ResearchPrompt, bool) {
	for _, p := range d.Prompts {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Watching reports whether a prompt id is on the watch list.
func (d *PromptsDetail) Watching(id string) bool {
	for _, w := range d.Watch {
		if w == id {
			return true
		}
	}
	return false
}
