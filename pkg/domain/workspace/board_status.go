package workspace

import (
	"fmt"

	"github.com/felixgeelhaar/studio/pkg/domain"
)

// BoardStatus describes where a concept board sits in its review
// lifecycle.
type BoardStatus string

const (
	BoardDraft       BoardStatus = "draft"
	BoardInReview    BoardStatus = "in-review"
	BoardClientReady BoardStatus = "client-ready"
	BoardArchived    BoardStatus = "archived"
)

// boardTransitions defines the allowed transitions and their events.
// Map: currentStatus -> event -> targetStatus. Demotion to the idea
// pool is not a transition: it deletes the board and creates an idea.
var boardTransitions = map[BoardStatus]map[string]BoardStatus{
	BoardDraft: {
		"submit":  BoardInReview,
		"archive": BoardArchived,
	},
	BoardInReview: {
		"approve": BoardClientReady,
		"return":  BoardDraft,
		"archive": BoardArchived,
	},
	BoardClientReady: {
		"archive": BoardArchived,
	},
	BoardArchived: {
		"restore": BoardDraft,
	},
}

// AllBoardStatuses returns every valid board status.
func AllBoardStatuses() []BoardStatus {
	return []BoardStatus{BoardDraft, BoardInReview, BoardClientReady, BoardArchived}
}

// IsValid reports whether the status is a known board status.
func (s BoardStatus) IsValid() bool {
	switch s {
	case BoardDraft, BoardInReview, BoardClientReady, BoardArchived:
		return true
	default:
		return false
	}
}

func (s BoardStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether some event moves this status to the
// target.
func (s BoardStatus) CanTransitionTo(target BoardStatus) bool {
	_, ok := s.EventTo(target)
	return ok
}

// EventTo returns the event that moves this status to the target.
func (s BoardStatus) EventTo(target BoardStatus) (string, bool) {
	for event, t := range boardTransitions[s] {
		if t == target {
			return event, true
		}
	}
	return "", false
}

// TransitionWith returns the target status for an event, or an error if
// the event is not allowed from this status.
func (s BoardStatus) TransitionWith(event string) (BoardStatus, error) {
	transitions, ok := boardTransitions[s]
	if !ok {
		return s, fmt.Errorf("%w: no transitions defined for status %s", domain.ErrInvalidTransition, s)
	}
	target, ok := transitions[event]
	if !ok {
		return s, fmt.Errorf("%w: %q is not allowed while the board is %s", domain.ErrInvalidTransition, event, s)
	}
	return target, nil
}

// ValidEvents returns the events accepted from this status.
func (s BoardStatus) ValidEvents() []string {
	events := make([]string, 0, len(boardTransitions[s]))
	for e := range boardTransitions[s] {
		events = append(events, e)
	}
	return events
}
