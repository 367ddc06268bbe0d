package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// TestAIDeterminism tests that two controllers with the same seed issue
// identical command streams against identical fighters.
func TestAIDeterminism(t *testing.T) {
	run := func(seed int64) []Command {
		self, opp := newTestPair(1.5)
		// A stunned opponent in reach keeps the attack dice rolling, so
		// the stream actually exercises the rng.
		opp.Machine().Force(StateStun, 0)
		c := NewAIController(seed)
		out := make([]Command, 0, 240)
		for i := 0; i < 240; i++ {
			cmd := c.Commands(self, opp, testDt)
			out = append(out, cmd)
			self.SetMoveIntent(cmd.Move)
			runUpdates(self, 1)
		}
		return out
	}

	a := run(42)
	b := run(42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Command streams diverge at tick %d: %+v vs %+v", i, a[i], b[i])
		}
	}

	c := run(7)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds should not replay the same stream")
	}
}

// TestAIReactionJumpsHeavy tests the evasion mapping: an in-range heavy
// attack draws a jump.
func TestAIReactionJumpsHeavy(t *testing.T) {
	self, opp := newTestPair(1.5)
	c := NewAIController(1)

	// Prime edge detection with the opponent still neutral.
	c.Commands(self, opp, testDt)

	if res := opp.Attack(AttackLeftLeg); res != AttackStarted {
		t.Fatalf("Opponent attack failed: %v", res)
	}
	cmd := c.Commands(self, opp, testDt)
	if !cmd.Jump {
		t.Errorf("Expected a jump against an incoming heavy, got %+v", cmd)
	}
	if c.Mode() != ModeReaction {
		t.Errorf("Expected reaction mode, got %v", c.Mode())
	}
}

// TestAIReactionCrouchesLight tests that a light attack draws a crouch.
func TestAIReactionCrouchesLight(t *testing.T) {
	self, opp := newTestPair(1.5)
	c := NewAIController(1)

	c.Commands(self, opp, testDt)
	opp.Attack(AttackRightHand)
	cmd := c.Commands(self, opp, testDt)
	if !cmd.Crouch {
		t.Errorf("Expected a crouch against an incoming light, got %+v", cmd)
	}
	if cmd.Jump {
		t.Error("Light evasion should not jump")
	}
}

// TestAIReactionOutOfRangeRetreats tests that a far-away attack draws a
// retreat instead of an evasion.
func TestAIReactionOutOfRangeRetreats(t *testing.T) {
	self, opp := newTestPair(6.0) // beyond any reach + margin
	c := NewAIController(1)

	c.Commands(self, opp, testDt)
	opp.Attack(AttackLeftHand)
	cmd := c.Commands(self, opp, testDt)
	if cmd.Jump || cmd.Crouch {
		t.Errorf("Out of range there is nothing to evade, got %+v", cmd)
	}
	// Retreat: move away from the opponent, who sits at +Z.
	if cmd.Move.Z() >= 0 {
		t.Errorf("Expected retreat along -Z, got %v", cmd.Move)
	}
}

// TestAIEvadeCooldown tests that back-to-back attacks cannot draw two
// evasions inside the cooldown.
func TestAIEvadeCooldown(t *testing.T) {
	self, opp := newTestPair(1.5)
	c := NewAIController(1)

	c.Commands(self, opp, testDt)
	opp.Attack(AttackLeftHand)
	if cmd := c.Commands(self, opp, testDt); !cmd.Crouch {
		t.Fatal("First evasion should fire")
	}

	// Opponent leaves ATTACK and swings again immediately.
	opp.Machine().Force(StateIdle, 0)
	c.Commands(self, opp, testDt)
	opp.Attack(AttackRightHand)
	if cmd := c.Commands(self, opp, testDt); cmd.Crouch || cmd.Jump {
		t.Errorf("Second evasion inside the cooldown should not fire, got %+v", cmd)
	}
}

// TestAIDefensiveAtLowHP tests mode selection under resource pressure.
func TestAIDefensiveAtLowHP(t *testing.T) {
	self, opp := newTestPair(3.0)
	self.HP = 20 // 0.2 < 0.3 threshold
	c := NewAIController(1)

	c.Commands(self, opp, testDt) // fresh timer is zero: decides immediately
	if c.Mode() != ModeDefensive {
		t.Errorf("Expected defensive at 20%% HP, got %v", c.Mode())
	}
}

// TestAIAggressiveOnStunnedOpponent tests that a stunned opponent flips
// the AI aggressive.
func TestAIAggressiveOnStunnedOpponent(t *testing.T) {
	self, opp := newTestPair(3.0)
	opp.Machine().Force(StateStun, 0)
	c := NewAIController(1)

	c.Commands(self, opp, testDt)
	if c.Mode() != ModeAggressive {
		t.Errorf("Expected aggressive against a stunned opponent, got %v", c.Mode())
	}
}

// TestAISpacingByDefault tests the neutral mode and its band behavior.
func TestAISpacingByDefault(t *testing.T) {
	self, opp := newTestPair(3.4) // inside the spacing idle zone
	c := NewAIController(1)

	cmd := c.Commands(self, opp, testDt)
	if c.Mode() != ModeSpacing {
		t.Errorf("Expected spacing for healthy neutral fighters, got %v", c.Mode())
	}
	if cmd.Move != (mgl64.Vec3{}) {
		t.Errorf("Inside the idle zone the AI should hold position, got %v", cmd.Move)
	}

	// Far outside the band it closes at full speed.
	self2, opp2 := newTestPair(7.0)
	c2 := NewAIController(1)
	cmd = c2.Commands(self2, opp2, testDt)
	if cmd.Move.Z() <= 0.9 {
		t.Errorf("Far out of band the AI should close along +Z, got %v", cmd.Move)
	}
}

// fakeKeys is a scripted KeyState.
type fakeKeys map[string]bool

func (k fakeKeys) IsDown(code string) bool { return k[code] }

// TestKeyboardEdgeDetection tests that held attack keys fire exactly once.
func TestKeyboardEdgeDetection(t *testing.T) {
	self, opp := newTestPair(2.0)
	keys := fakeKeys{}
	src := NewKeyboardSource(keys, DefaultBindings())

	keys["KeyU"] = true
	cmd := src.Commands(self, opp, testDt)
	if cmd.Attack != AttackLeftHand {
		t.Fatalf("Expected leftHand on the press edge, got %v", cmd.Attack)
	}

	cmd = src.Commands(self, opp, testDt)
	if cmd.Attack != AttackNone {
		t.Errorf("Held key must not refire, got %v", cmd.Attack)
	}

	keys["KeyU"] = false
	src.Commands(self, opp, testDt)
	keys["KeyU"] = true
	if cmd = src.Commands(self, opp, testDt); cmd.Attack != AttackLeftHand {
		t.Errorf("Release and repress should fire again, got %v", cmd.Attack)
	}
}

// TestKeyboardMovement tests facing-relative movement and diagonal
// normalization.
func TestKeyboardMovement(t *testing.T) {
	self, opp := newTestPair(2.0) // self faces +Z
	keys := fakeKeys{"KeyW": true}
	src := NewKeyboardSource(keys, DefaultBindings())

	cmd := src.Commands(self, opp, testDt)
	if cmd.Move.Z() < 0.99 {
		t.Errorf("Forward should move along facing (+Z), got %v", cmd.Move)
	}

	keys["KeyD"] = true
	cmd = src.Commands(self, opp, testDt)
	if l := cmd.Move.Len(); l > 1+1e-9 {
		t.Errorf("Diagonal movement should normalize to <= 1, got %.3f", l)
	}

	// Crouch is held state, not an edge.
	keys["ShiftLeft"] = true
	if cmd = src.Commands(self, opp, testDt); !cmd.Crouch {
		t.Error("Crouch should report held state")
	}
	if cmd = src.Commands(self, opp, testDt); !cmd.Crouch {
		t.Error("Crouch should stay true while held")
	}
}
