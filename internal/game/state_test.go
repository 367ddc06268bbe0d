package game

import "testing"

// TestStateMachineStartsIdle tests the initial state.
func TestStateMachineStartsIdle(t *testing.T) {
	m := NewStateMachine()
	if m.Current() != StateIdle {
		t.Errorf("Expected idle, got %v", m.Current())
	}
}

// TestTransitionLegality tests the explicit rule table.
func TestTransitionLegality(t *testing.T) {
	cases := []struct {
		from, to State
		want     bool
	}{
		{StateIdle, StateWalk, true},
		{StateWalk, StateIdle, true},
		{StateIdle, StateAttack, true},
		{StateJump, StateAttack, true},
		{StateCrouch, StateAttack, true},
		{StateStun, StateAttack, false},
		{StateIdle, StateJump, true},
		{StateAttack, StateJump, false},
		{StateStun, StateJump, false},
		{StateIdle, StateCrouch, true},
		{StateJump, StateCrouch, false},
		{StateCrouch, StateCrouchExiting, true},
		{StateIdle, StateCrouchExiting, false},
		{StateAttack, StateStun, true},
		{StateJump, StateStun, true},
		{StateStun, StateStun, false},
		{StateAttack, StateDead, true},
		{StateStun, StateDead, true},
		{StateDead, StateIdle, false},
		{StateDead, StateStun, false},
		{StateDead, StateDead, false},
		{StateAttack, StateIdle, true},
		{StateStun, StateIdle, true},
		{StateIdle, StateWin, true},
		{StateWin, StateAttack, false},
	}

	for _, c := range cases {
		m := NewStateMachine()
		m.Force(c.from, 0)
		if got := m.CanTransition(c.to); got != c.want {
			t.Errorf("%v -> %v: expected %v, got %v", c.from, c.to, c.want, got)
		}
	}
}

// TestTransitionToRejectsIllegal tests that a rejected request leaves the
// machine untouched.
func TestTransitionToRejectsIllegal(t *testing.T) {
	m := NewStateMachine()
	m.Force(StateStun, 1.0)

	if m.TransitionTo(StateJump, 2.0, 120) {
		t.Error("STUN -> JUMP should be rejected")
	}
	if m.Current() != StateStun {
		t.Errorf("State should be unchanged, got %v", m.Current())
	}
	if m.EnteredAt() != 1.0 {
		t.Errorf("EnteredAt should be unchanged, got %.1f", m.EnteredAt())
	}
}

// TestSelfTransitionOnlyForLocomotion tests that idle->idle is tolerated
// while attack->attack is not (chains go through the combo path instead).
func TestSelfTransitionOnlyForLocomotion(t *testing.T) {
	m := NewStateMachine()
	if !m.CanTransition(StateIdle) {
		t.Error("idle -> idle should be legal")
	}
	m.Force(StateAttack, 0)
	if !m.CanTransition(StateAttack) {
		t.Error("attack -> attack is the chain path and should be legal")
	}
	m.Force(StateJump, 0)
	if m.CanTransition(StateJump) {
		t.Error("jump -> jump should be rejected")
	}
}

// TestTransitionHistory tests the diagnostics ring buffer ordering and
// overwrite behavior.
func TestTransitionHistory(t *testing.T) {
	m := NewStateMachine()
	for i := 0; i < TransitionHistorySize+4; i++ {
		to := StateWalk
		if m.Current() == StateWalk {
			to = StateIdle
		}
		if !m.TransitionTo(to, float64(i), uint64(i)) {
			t.Fatalf("Transition %d rejected", i)
		}
	}

	h := m.History()
	if len(h) != TransitionHistorySize {
		t.Fatalf("Expected history length %d, got %d", TransitionHistorySize, len(h))
	}
	// Oldest surviving entry is number 4; newest is number 35.
	if h[0].Tick != 4 {
		t.Errorf("Expected oldest tick 4, got %d", h[0].Tick)
	}
	if h[len(h)-1].Tick != uint64(TransitionHistorySize+3) {
		t.Errorf("Expected newest tick %d, got %d", TransitionHistorySize+3, h[len(h)-1].Tick)
	}
	for i := 1; i < len(h); i++ {
		if h[i].Tick != h[i-1].Tick+1 {
			t.Fatalf("History out of order at %d: %v after %v", i, h[i], h[i-1])
		}
	}
}

// TestStateString tests the snapshot labels.
func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateIdle:          "idle",
		StateWalk:          "walk",
		StateAttack:        "attack",
		StateStun:          "stun",
		StateJump:          "jump",
		StateCrouch:        "crouch",
		StateCrouchExiting: "crouch_exiting",
		StateDead:          "dead",
		StateWin:           "win",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("Expected %q, got %q", want, s.String())
		}
	}
}
