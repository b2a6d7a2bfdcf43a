// Package portfolio holds the aggregate dashboard shapes: headline
// metrics, market signals and the open loops surfaced across projects.
package portfolio

// Metric is a single headline number on the portfolio dashboard.
type Metric struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
	Trend string `json:"trend,omitempty"` // up, down, flat
}

// Signal is a noteworthy observation shown alongside the metrics.
type Signal struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	Tone   string `json:"tone,omitempty"` // positive, warning, neutral
}

// Portfolio is the aggregate view over all projects.
type Portfolio struct {
	Metrics []Metric `json:"metrics"`
	Signals []Signal `json:"signals"`
}

// Loop kinds.
const (
	LoopQuestion = "question"
	LoopCritique = "critique"
)

// Loop is an open follow-up item: an unanswered brief question or an
// unresolved critique argument, flattened across the portfolio and
// annotated with its origin project.
type Loop struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	ModuleID    string `json:"moduleId"`
	StepID      string `json:"stepId"`
	Kind        string `json:"kind"`
	RefID       string `json:"refId"`
	Label       string `json:"label"`
	Owner       string `json:"owner,omitempty"`
	Status      string `json:"status"`
}
