package game

import "fmt"

// State is the authoritative discrete state of a fighter.
// The animation layer only visualizes it; transition legality lives here.
type State int

const (
	StateIdle State = iota
	StateWalk
	StateAttack
	StateStun
	StateJump
	StateCrouch
	StateCrouchExiting
	StateDead
	StateWin
)

// String returns a human-readable state name for snapshots and logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalk:
		return "walk"
	case StateAttack:
		return "attack"
	case StateStun:
		return "stun"
	case StateJump:
		return "jump"
	case StateCrouch:
		return "crouch"
	case StateCrouchExiting:
		return "crouch_exiting"
	case StateDead:
		return "dead"
	case StateWin:
		return "win"
	default:
		return "unknown"
	}
}

// isLocomotion reports whether the state is part of the interchangeable
// idle/walk pair.
func (s State) isLocomotion() bool {
	return s == StateIdle || s == StateWalk
}

// Action priorities. Shared between the state machine default rule and the
// animation action layer, so that gameplay legality and visual interruption
// stay consistent.
const (
	PriorityLocomotion  = 10
	PriorityCrouch      = 30
	PriorityJump        = 30
	PriorityLightAttack = 40
	PriorityHeavyAttack = 50
	PriorityStun        = 90
	PriorityDead        = 100
	PriorityWin         = 100
)

// statePriority returns the numeric priority used by the default
// transition rule.
func statePriority(s State) int {
	switch s {
	case StateDead:
		return PriorityDead
	case StateWin:
		return PriorityWin
	case StateStun:
		return PriorityStun
	case StateAttack:
		return PriorityLightAttack
	case StateJump:
		return PriorityJump
	case StateCrouch, StateCrouchExiting:
		return PriorityCrouch
	default:
		return PriorityLocomotion
	}
}

// TransitionHistorySize bounds the diagnostics ring buffer.
const TransitionHistorySize = 32

// Transition records one state change for diagnostics.
type Transition struct {
	From State
	To   State
	Tick uint64
}

// StateMachine holds the current state and enforces transition legality.
type StateMachine struct {
	current    State
	enteredAt  float64 // simulation time the current state was entered
	history    [TransitionHistorySize]Transition
	historyLen int
	historyPos int
}

// NewStateMachine returns a state machine starting in IDLE.
func NewStateMachine() *StateMachine {
	return &StateMachine{current: StateIdle}
}

// Current returns the active state.
func (m *StateMachine) Current() State {
	return m.current
}

// EnteredAt returns the simulation time the active state was entered.
func (m *StateMachine) EnteredAt() float64 {
	return m.enteredAt
}

// CanTransition reports whether a transition to the target state is legal.
//
// Explicit rules first: DEAD from anywhere (and terminal), STUN from anything
// but DEAD, ATTACK from locomotion/JUMP/CROUCH, JUMP and CROUCH only from
// locomotion. Anything without an explicit rule falls back to priority
// comparison: target priority must be >= source priority.
func (m *StateMachine) CanTransition(to State) bool {
	from := m.current

	if from == StateDead {
		return false // terminal
	}
	// Re-entering ATTACK is the combo chain; other self-transitions are
	// rejected so one-shot states cannot restart themselves.
	if to == from && !to.isLocomotion() && to != StateAttack {
		return false
	}

	switch to {
	case StateDead:
		return true
	case StateStun:
		return true
	case StateAttack:
		return from.isLocomotion() || from == StateJump || from == StateCrouch || from == StateAttack
	case StateJump, StateCrouch:
		return from.isLocomotion()
	case StateCrouchExiting:
		return from == StateCrouch
	case StateIdle, StateWalk:
		// Returning to locomotion is always a deliberate call from the
		// component that owns the current state (attack end, stun end,
		// landing), so it is allowed from any non-terminal state.
		return true
	}

	return statePriority(to) >= statePriority(from)
}

// TransitionTo attempts a state change. A rejected request is a no-op and
// returns false; the caller decides how to handle it (e.g. queue the attack).
func (m *StateMachine) TransitionTo(to State, now float64, tick uint64) bool {
	if !m.CanTransition(to) {
		return false
	}
	m.record(Transition{From: m.current, To: to, Tick: tick})
	m.current = to
	m.enteredAt = now
	return true
}

// Force sets the state without legality checks. Used only for match reset.
func (m *StateMachine) Force(s State, now float64) {
	m.current = s
	m.enteredAt = now
}

func (m *StateMachine) record(t Transition) {
	m.history[m.historyPos] = t
	m.historyPos = (m.historyPos + 1) % TransitionHistorySize
	if m.historyLen < TransitionHistorySize {
		m.historyLen++
	}
}

// History returns the recorded transitions, oldest first.
func (m *StateMachine) History() []Transition {
	out := make([]Transition, 0, m.historyLen)
	start := m.historyPos - m.historyLen
	if start < 0 {
		start += TransitionHistorySize
	}
	for i := 0; i < m.historyLen; i++ {
		out = append(out, m.history[(start+i)%TransitionHistorySize])
	}
	return out
}

// String implements fmt.Stringer for log lines.
func (t Transition) String() string {
	return fmt.Sprintf("%s->%s@%d", t.From, t.To, t.Tick)
}
