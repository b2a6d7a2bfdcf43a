// Package events defines the domain events emitted by the workspace
// and the dispatcher the server uses to fan them out to its stream
// handlers (SSE, websocket).
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	TypeDetailSaved       = "detail.saved"
	TypeBoardVersionSaved = "board.version_saved"
	TypeBoardStatus       = "board.status_changed"
	TypeCritiqueRun       = "critique.run"
	TypeDraftStarted      = "script.draft_started"
	TypeFixtureReloaded   = "fixture.reloaded"
)

// Event is one domain event. Project/module/step ids locate the origin
// where they apply.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	ProjectID string                 `json:"projectId,omitempty"`
	ModuleID  string                 `json:"moduleId,omitempty"`
	StepID    string                 `json:"stepId,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// New constructs an event with a fresh id and the current time.
func New(eventType, projectID, moduleID, stepID string, payload map[string]interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		ProjectID: projectID,
		ModuleID:  moduleID,
		StepID:    stepID,
		Payload:   payload,
	}
}

// Publisher fans events out to subscribers. Implementations must not
// block the publishing goroutine on a slow subscriber.
type Publisher interface {
	Publish(e *Event)
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) Publish(*Event) {}
