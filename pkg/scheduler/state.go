package scheduler

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
	"github.com/harrisonrobin/dayplan/pkg/model"
)

// Placement events.
const (
	EventPlace = "place"
	EventBreak = "break"
)

// State IDs for statekit. They must stay untyped constants so they convert to
// statekit.StateID; values match model.PlacementState.
const (
	stateUnplaced      = "unplaced"
	statePlaced        = "placed"
	stateBreakAdjusted = "break_adjusted"
)

func init() {
	states := map[string]model.PlacementState{
		stateUnplaced:      model.StateUnplaced,
		statePlaced:        model.StatePlaced,
		stateBreakAdjusted: model.StateBreakAdjusted,
	}
	for id, state := range states {
		if id != string(state) {
			panic(fmt.Sprintf("placement state %q does not match %q", id, state))
		}
	}
}

type placementContext struct{}

// placementMachine tracks one task through unplaced -> placed -> break_adjusted.
// break_adjusted is terminal.
type placementMachine struct {
	interpreter *statekit.Interpreter[placementContext]
}

func newPlacementMachine(initial model.PlacementState) (*placementMachine, error) {
	builder := statekit.NewMachine[placementContext]("placement").
		WithInitial(statekit.StateID(initial)).
		WithContext(placementContext{})

	builder.State(stateUnplaced).
		On(EventPlace).Target(statePlaced).
		Done()

	builder.State(statePlaced).
		On(EventBreak).Target(stateBreakAdjusted).
		Done()

	builder.State(stateBreakAdjusted).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build placement machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()
	return &placementMachine{interpreter: interpreter}, nil
}

// Transition sends event and fails if the machine did not move.
func (m *placementMachine) Transition(event string) error {
	before := m.Current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if m.Current() != before {
		return nil
	}
	return fmt.Errorf("event %q is not allowed in state %q", event, before)
}

// Current returns the machine's state.
func (m *placementMachine) Current() model.PlacementState {
	return model.PlacementState(m.interpreter.State().Value)
}

// advance applies event to a task in state from and returns the new state.
// On failure the original state is returned with the error.
func advance(from model.PlacementState, event string) (model.PlacementState, error) {
	m, err := newPlacementMachine(from)
	if err != nil {
		return from, err
	}
	if err := m.Transition(event); err != nil {
		return from, err
	}
	return m.Current(), nil
}
