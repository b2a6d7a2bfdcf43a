package project

// Status describes where a project, module or step sits in the
// workflow. The same vocabulary is used at all three levels.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusComplete  Status = "complete"
	StatusAttention Status = "attention"
	StatusQueued    Status = "queued"
)

// AllStatuses returns every valid status value.
func AllStatuses() []Status {
	return []Status{StatusDraft, StatusActive, StatusComplete, StatusAttention, StatusQueued}
}

// IsValid reports whether the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusComplete, StatusAttention, StatusQueued:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}
