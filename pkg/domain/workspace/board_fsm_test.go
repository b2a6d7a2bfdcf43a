package workspace_test

import (
	"testing"

	"github.com/felixgeelhaar/studio/pkg/domain/workspace"
)

func TestBoardStateMachine(t *testing.T) {
	// 1. Init
	fsm, err := workspace.NewBoardStateMachine(workspace.StateDraft, "b1", nil)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if fsm.Current() != workspace.StateDraft {
		t.Errorf("Expected draft, got %s", fsm.Current())
	}

	// 2. Transition
	if err := fsm.Transition("submit"); err != nil {
		t.Errorf("Submit failed: %v", err)
	}
	if fsm.Current() != workspace.StateInReview {
		t.Errorf("Expected in-review, got %s", fsm.Current())
	}

	// 3. Invalid Transition
	if err := fsm.Transition("restore"); err == nil {
		t.Errorf("Expected error on invalid transition")
	}

	// 4. Guarded Transition
	blockedGuard := func(boardID string, event string) bool { return false }
	fsm2, _ := workspace.NewBoardStateMachine(workspace.StateDraft, "b2", blockedGuard)
	if err := fsm2.Transition("submit"); err == nil {
		t.Errorf("Expected error on guarded transition")
	}
	if fsm2.Current() != workspace.StateDraft {
		t.Errorf("State changed despite failing guard")
	}
}

func TestBoardStatus_EventTo(t *testing.T) {
	tests := []struct {
		from  workspace.BoardStatus
		to    workspace.BoardStatus
		event string
		ok    bool
	}{
		{workspace.BoardDraft, workspace.BoardInReview, "submit", true},
		{workspace.BoardDraft, workspace.BoardArchived, "archive", true},
		{workspace.BoardDraft, workspace.BoardClientReady, "", false},
		{workspace.BoardInReview, workspace.BoardClientReady, "approve", true},
		{workspace.BoardInReview, workspace.BoardDraft, "return", true},
		{workspace.BoardClientReady, workspace.BoardArchived, "archive", true},
		{workspace.BoardClientReady, workspace.BoardInReview, "", false},
		{workspace.BoardArchived, workspace.BoardDraft, "restore", true},
		{workspace.BoardArchived, workspace.BoardClientReady, "", false},
	}

	for _, tt := range tests {
		event, ok := tt.from.EventTo(tt.to)
		if ok != tt.ok || event != tt.event {
			t.Errorf("%s -> %s: got (%q, %v), want (%q, %v)", tt.from, tt.to, event, ok, tt.event, tt.ok)
		}
	}
}

func TestBoardStatus_CanTransitionWith(t *testing.T) {
	if !workspace.BoardDraft.CanTransitionWith("submit") {
		t.Errorf("draft should accept submit")
	}
	if workspace.BoardClientReady.CanTransitionWith("submit") {
		t.Errorf("client-ready should not accept submit")
	}
	if workspace.BoardStatus("bogus").CanTransitionWith("submit") {
		t.Errorf("unknown status should accept nothing")
	}
}
