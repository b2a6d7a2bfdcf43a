package workspace

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration. These must remain untyped
// string constants for statekit.StateID compatibility; values are kept
// in sync with the BoardStatus constants in board_status.go.
const (
	StateDraft       = "draft"
	StateInReview    = "in-review"
	StateClientReady = "client-ready"
	StateArchived    = "archived"
)

// init validates at startup that the FSM state constants match the
// BoardStatus values.
func init() {
	stateMap := map[string]BoardStatus{
		StateDraft:       BoardDraft,
		StateInReview:    BoardInReview,
		StateClientReady: BoardClientReady,
		StateArchived:    BoardArchived,
	}
	for fsmState, status := range stateMap {
		if fsmState != string(status) {
			panic(fmt.Sprintf("FSM state %q does not match BoardStatus %q - constants are out of sync", fsmState, status))
		}
	}
}

// BoardContext carries the board identity through the machine.
type BoardContext struct {
	BoardID string
	Guard   func(boardID string, event string) bool
}

// BoardStateMachine enforces the board review lifecycle.
type BoardStateMachine struct {
	interpreter *statekit.Interpreter[BoardContext]
}

// NewBoardStateMachine builds a machine positioned at the board's
// current status. The optional guard can veto transitions (e.g. a
// module-level freeze).
func NewBoardStateMachine(initialState string, boardID string, guard func(string, string) bool) (*BoardStateMachine, error) {
	if guard == nil {
		guard = func(string, string) bool { return true }
	}

	builder := statekit.NewMachine[BoardContext]("board-machine").
		WithInitial(statekit.StateID(initialState)).
		WithContext(BoardContext{
			BoardID: boardID,
			Guard:   guard,
		}).
		WithGuard("boardGuard", func(ctx BoardContext, e statekit.Event) bool {
			return ctx.Guard(ctx.BoardID, string(e.Type))
		})

	builder.State(StateDraft).
		On("submit").Target(StateInReview).Guard("boardGuard").
		On("archive").Target(StateArchived).
		Done()

	builder.State(StateInReview).
		On("approve").Target(StateClientReady).Guard("boardGuard").
		On("return").Target(StateDraft).
		On("archive").Target(StateArchived).
		Done()

	builder.State(StateClientReady).
		On("archive").Target(StateArchived).
		Done()

	builder.State(StateArchived).
		On("restore").Target(StateDraft).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build board state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &BoardStateMachine{interpreter: interpreter}, nil
}

// Transition attempts to move the board with the given event.
func (sm *BoardStateMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := sm.Current()

	if before != after {
		return nil
	}
	// In statekit, if no transition matches or the guard vetoes, the
	// state stays put.
	return fmt.Errorf("the action %q is not allowed while the board is in the %q state", event, before)
}

// Current returns the machine's current state value.
func (sm *BoardStateMachine) Current() string {
	return string(sm.interpreter.State().Value)
}

// CurrentStatus returns the current state as a BoardStatus value.
func (sm *BoardStateMachine) CurrentStatus() BoardStatus {
	return BoardStatus(sm.Current())
}

// CanTransition checks whether the event is valid for the current
// state. Delegates to the BoardStatus value object for consistency.
func (sm *BoardStateMachine) CanTransition(event string) bool {
	return sm.CurrentStatus().CanTransitionWith(event)
}

// CanTransitionWith reports whether the event can trigger a transition
// from this status.
func (s BoardStatus) CanTransitionWith(event string) bool {
	transitions, ok := boardTransitions[s]
	if !ok {
		return false
	}
	_, ok = transitions[event]
	return ok
}
