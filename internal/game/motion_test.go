package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// TestTransformForward tests the yaw-to-direction convention (0 faces +Z).
func TestTransformForward(t *testing.T) {
	tf := &Transform{}
	f := tf.Forward()
	if math.Abs(f.X()) > 1e-12 || math.Abs(f.Z()-1) > 1e-12 {
		t.Errorf("Yaw 0 should face +Z, got %v", f)
	}

	tf.Yaw = math.Pi / 2
	f = tf.Forward()
	if math.Abs(f.X()-1) > 1e-9 || math.Abs(f.Z()) > 1e-9 {
		t.Errorf("Yaw pi/2 should face +X, got %v", f)
	}

	r := tf.Right()
	if math.Abs(r.X()) > 1e-9 || math.Abs(r.Z()+1) > 1e-9 {
		t.Errorf("Right of +X facing should be -Z, got %v", r)
	}
}

// TestLookAt tests the instant yaw snap and the zero-delta guard.
func TestLookAt(t *testing.T) {
	tf := &Transform{Position: mgl64.Vec3{1, 0, 1}}
	tf.LookAt(mgl64.Vec3{1, 0, 5})
	if math.Abs(tf.Yaw) > 1e-12 {
		t.Errorf("Expected yaw 0 looking down +Z, got %.3f", tf.Yaw)
	}

	tf.LookAt(mgl64.Vec3{5, 0, 1})
	if math.Abs(tf.Yaw-math.Pi/2) > 1e-9 {
		t.Errorf("Expected yaw pi/2 looking down +X, got %.3f", tf.Yaw)
	}

	tf.LookAt(tf.Position) // same point: yaw must not change
	if math.Abs(tf.Yaw-math.Pi/2) > 1e-9 {
		t.Errorf("LookAt self should be a no-op, got %.3f", tf.Yaw)
	}
}

// TestShortestAngle tests delta normalization to [-pi, pi].
func TestShortestAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{-math.Pi / 2, -math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
	}
	for _, c := range cases {
		if got := shortestAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("shortestAngle(%.3f): expected %.3f, got %.3f", c.in, c.want, got)
		}
	}
}

// TestMotionDamping tests that velocity converges on the desired value
// without overshoot and that Stop kills it instantly.
func TestMotionDamping(t *testing.T) {
	mc := NewMotionController(2.4)
	tf := &Transform{}
	desired := mgl64.Vec3{0, 0, 2.4}

	speed, _ := mc.Update(tf, desired, 1.0/60.0)
	if speed <= 0 || speed >= 1 {
		t.Errorf("First tick should be accelerating, got speed %.3f", speed)
	}
	prev := speed
	for i := 0; i < 120; i++ {
		speed, _ = mc.Update(tf, desired, 1.0/60.0)
		if speed < prev-1e-9 {
			t.Fatalf("Speed should rise monotonically toward the target, %.4f after %.4f", speed, prev)
		}
		prev = speed
	}
	if speed < 0.99 {
		t.Errorf("Expected near-full speed after 2s, got %.3f", speed)
	}
	if mc.Velocity.Z() > 2.4+1e-9 {
		t.Errorf("Velocity should never overshoot, got %.3f", mc.Velocity.Z())
	}
	if tf.Position.Z() <= 0 {
		t.Error("Position should have integrated forward")
	}

	mc.Stop()
	if mc.Velocity != (mgl64.Vec3{}) {
		t.Errorf("Stop should zero velocity, got %v", mc.Velocity)
	}
}

// TestMoveDirectionSign tests the backward-walk signal.
func TestMoveDirectionSign(t *testing.T) {
	mc := NewMotionController(2.4)
	tf := &Transform{} // facing +Z

	_, dir := mc.Update(tf, mgl64.Vec3{0, 0, 2.4}, 1.0/60.0)
	if dir != 1 {
		t.Errorf("Moving with facing should give +1, got %.0f", dir)
	}

	mc.Stop()
	_, dir = mc.Update(tf, mgl64.Vec3{0, 0, -2.4}, 1.0/60.0)
	if dir != -1 {
		t.Errorf("Moving against facing should give -1, got %.0f", dir)
	}
}

// TestFaceTowardEases tests that yaw approaches the target over several
// ticks instead of snapping.
func TestFaceTowardEases(t *testing.T) {
	mc := NewMotionController(2.4)
	tf := &Transform{} // yaw 0

	mc.FaceToward(tf.Position, mgl64.Vec3{4, 0, 0}) // target yaw pi/2
	mc.Update(tf, mgl64.Vec3{}, 1.0/60.0)
	if tf.Yaw <= 0 || tf.Yaw >= math.Pi/2 {
		t.Errorf("Yaw should move partway toward the target, got %.3f", tf.Yaw)
	}

	for i := 0; i < 120; i++ {
		mc.Update(tf, mgl64.Vec3{}, 1.0/60.0)
	}
	if math.Abs(tf.Yaw-math.Pi/2) > 0.01 {
		t.Errorf("Yaw should converge on the target, got %.3f", tf.Yaw)
	}
}

// TestSeparateFighters tests the symmetric push-apart.
func TestSeparateFighters(t *testing.T) {
	a := newTestFighter("a")
	b := newTestFighter("b")
	a.SetOpponent(b)
	b.SetOpponent(a)
	b.Transform.Position = mgl64.Vec3{0, 0, 0.6} // overlap: min distance 1.10

	SeparateFighters(a, b)

	gap := b.Transform.Position.Z() - a.Transform.Position.Z()
	if math.Abs(gap-1.10) > 1e-9 {
		t.Errorf("Expected separation to min distance 1.10, got %.4f", gap)
	}
	// Symmetric: both moved the same amount.
	if math.Abs(a.Transform.Position.Z()+0.25) > 1e-9 {
		t.Errorf("Expected a pushed to -0.25, got %.4f", a.Transform.Position.Z())
	}
	if math.Abs(b.Transform.Position.Z()-0.85) > 1e-9 {
		t.Errorf("Expected b pushed to 0.85, got %.4f", b.Transform.Position.Z())
	}
}

// TestSeparateFightersNoOverlap tests that separated fighters are left
// untouched.
func TestSeparateFightersNoOverlap(t *testing.T) {
	a := newTestFighter("a")
	b := newTestFighter("b")
	b.Transform.Position = mgl64.Vec3{0, 0, 2}

	SeparateFighters(a, b)
	if b.Transform.Position.Z() != 2 || a.Transform.Position.Z() != 0 {
		t.Error("Non-overlapping fighters should not move")
	}
}

// TestSeparateFightersSkipsDead tests that a body never shoves the
// survivor.
func TestSeparateFightersSkipsDead(t *testing.T) {
	a := newTestFighter("a")
	b := newTestFighter("b")
	b.Transform.Position = mgl64.Vec3{0, 0, 0.3}
	b.Machine().Force(StateDead, 0)

	SeparateFighters(a, b)
	if a.Transform.Position.Z() != 0 || b.Transform.Position.Z() != 0.3 {
		t.Error("Separation should be skipped when either fighter is dead")
	}
}

// TestSeparateFightersStacked tests the exactly-coincident fallback.
func TestSeparateFightersStacked(t *testing.T) {
	a := newTestFighter("a")
	b := newTestFighter("b") // both at the origin

	SeparateFighters(a, b)
	dx := b.Transform.Position.X() - a.Transform.Position.X()
	dz := b.Transform.Position.Z() - a.Transform.Position.Z()
	if math.Hypot(dx, dz) < 1.10-1e-9 {
		t.Errorf("Stacked fighters should split to min distance, got %.4f", math.Hypot(dx, dz))
	}
}
