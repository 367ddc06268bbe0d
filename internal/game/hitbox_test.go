package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// TestSphereIntersects tests overlap detection and the zero-radius
// disable convention.
func TestSphereIntersects(t *testing.T) {
	a := Sphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 0.5}
	b := Sphere{Center: mgl64.Vec3{0.9, 0, 0}, Radius: 0.5}
	if !a.Intersects(b) {
		t.Error("Overlapping spheres should intersect")
	}

	b.Center = mgl64.Vec3{1.1, 0, 0}
	if a.Intersects(b) {
		t.Error("Separated spheres should not intersect")
	}

	// Exact touch is a miss (strict inequality).
	b.Center = mgl64.Vec3{1.0, 0, 0}
	if a.Intersects(b) {
		t.Error("Tangent spheres should not intersect")
	}

	b.Center = mgl64.Vec3{0, 0, 0}
	b.Radius = 0
	if a.Intersects(b) || b.Intersects(a) {
		t.Error("Zero radius must never intersect")
	}
}

func newTestHitboxSet() *HitboxSet {
	tf := &Transform{}
	adapter := NewSkeletonAdapter(nil, tf, 1.8)
	return NewHitboxSet(adapter, DefaultHitboxSizing())
}

// TestRefreshHurtboxes tests hurtbox placement and the crouch/jump
// disable flags.
func TestRefreshHurtboxes(t *testing.T) {
	hs := newTestHitboxSet()

	hs.Refresh(refreshState{})
	if hs.Head.Radius != 0.22 {
		t.Errorf("Expected head radius 0.22, got %.2f", hs.Head.Radius)
	}
	if hs.Head.Center.Y() != 1.8*0.88 {
		t.Errorf("Expected head at y %.3f, got %.3f", 1.8*0.88, hs.Head.Center.Y())
	}
	if hs.Torso.Radius != 0.38 {
		t.Errorf("Expected torso radius 0.38, got %.2f", hs.Torso.Radius)
	}

	hs.Refresh(refreshState{Crouching: true})
	if hs.Head.Radius != 0 {
		t.Errorf("Crouching should zero the head radius, got %.2f", hs.Head.Radius)
	}
	if hs.Torso.Radius == 0 {
		t.Error("Crouching must not touch the torso")
	}

	hs.Refresh(refreshState{JumpInvuln: true})
	if hs.Torso.Radius != 0 {
		t.Errorf("Jump invulnerability should zero the torso radius, got %.2f", hs.Torso.Radius)
	}
	if hs.Head.Radius == 0 {
		t.Error("Jump invulnerability must not touch the head")
	}
}

// TestAttackSpheresParkedByDefault tests that a fresh set and a
// non-live refresh keep every attack sphere at the sentinel.
func TestAttackSpheresParkedByDefault(t *testing.T) {
	hs := newTestHitboxSet()

	if n := len(hs.ActiveAttackSpheres(GroupHands)); n != 0 {
		t.Errorf("Fresh set should have 0 live hand spheres, got %d", n)
	}
	if n := len(hs.ActiveAttackSpheres(GroupLegs)); n != 0 {
		t.Errorf("Fresh set should have 0 live leg spheres, got %d", n)
	}

	hs.Refresh(refreshState{AttackLive: false, AttackGroup: GroupHands})
	for g := range hs.Attack {
		for i, s := range hs.Attack[g] {
			if !s.Disabled() {
				t.Errorf("Sphere [%d][%d] should be parked", g, i)
			}
		}
	}
}

// TestRefreshLiveAttackSide tests that only the struck side of the
// active group goes live.
func TestRefreshLiveAttackSide(t *testing.T) {
	hs := newTestHitboxSet()

	var active [spheresPerGroup]bool
	active[SphereLeftPrimary] = true
	active[SphereLeftSecondary] = true
	hs.Refresh(refreshState{
		AttackLive:    true,
		AttackGroup:   GroupHands,
		ActiveSpheres: active,
	})

	live := hs.ActiveAttackSpheres(GroupHands)
	if len(live) != 2 {
		t.Fatalf("Expected 2 live hand spheres, got %d", len(live))
	}
	// Primary carries the fist radius, secondary the elbow radius.
	if live[0].Radius != 0.16 {
		t.Errorf("Expected fist radius 0.16, got %.2f", live[0].Radius)
	}
	if live[1].Radius != 0.14 {
		t.Errorf("Expected elbow radius 0.14, got %.2f", live[1].Radius)
	}
	for _, s := range live {
		if s.Center.Y() < 0 {
			t.Errorf("Live sphere should follow the limb, got %v", s.Center)
		}
	}

	// The other side and the whole leg group stay parked.
	if !hs.Attack[GroupHands][SphereRightPrimary].Disabled() {
		t.Error("Right hand should stay parked during a left strike")
	}
	if n := len(hs.ActiveAttackSpheres(GroupLegs)); n != 0 {
		t.Errorf("Leg group should stay parked, got %d live", n)
	}
}

// TestActiveSpheresAlternate tests the side selection for generic
// attacks across a chain.
func TestActiveSpheresAlternate(t *testing.T) {
	even := activeSpheresFor(AttackLight, 2)
	if !even[SphereRightPrimary] || even[SphereLeftPrimary] {
		t.Error("Even combo count should strike with the right side")
	}
	odd := activeSpheresFor(AttackLight, 1)
	if !odd[SphereLeftPrimary] || odd[SphereRightPrimary] {
		t.Error("Odd combo count should strike with the left side")
	}
	left := activeSpheresFor(AttackLeftLeg, 0)
	if !left[SphereLeftPrimary] || !left[SphereLeftSecondary] || left[SphereRightPrimary] {
		t.Error("Per-limb attacks should pin their own side")
	}
}
