package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// TestMapBonesMixamo tests role resolution against mixamo-style names.
func TestMapBonesMixamo(t *testing.T) {
	names := []string{
		"mixamorigHips", "mixamorigSpine", "mixamorigSpine1", "mixamorigSpine2",
		"mixamorigHead", "mixamorigLeftHand", "mixamorigRightHand",
		"mixamorigLeftForeArm", "mixamorigRightForeArm",
		"mixamorigLeftFoot", "mixamorigRightFoot",
		"mixamorigLeftLeg", "mixamorigRightLeg",
	}
	bm := MapBones(names)

	cases := map[BoneRole]string{
		BoneHead:       "mixamorigHead",
		BoneSpine:      "mixamorigSpine2",
		BoneLeftHand:   "mixamorigLeftHand",
		BoneRightHand:  "mixamorigRightHand",
		BoneLeftElbow:  "mixamorigLeftForeArm",
		BoneRightElbow: "mixamorigRightForeArm",
		BoneLeftFoot:   "mixamorigLeftFoot",
		BoneRightFoot:  "mixamorigRightFoot",
		BoneLeftKnee:   "mixamorigLeftLeg",
		BoneRightKnee:  "mixamorigRightLeg",
	}
	for role, want := range cases {
		if bm[role] != want {
			t.Errorf("Role %d: expected %q, got %q", role, want, bm[role])
		}
	}
}

// TestMapBonesMirrorFallback tests that a single-sided rig fills the
// missing side from its mirror.
func TestMapBonesMirrorFallback(t *testing.T) {
	bm := MapBones([]string{"Head", "Spine", "LeftHand", "LeftForearm"})

	if bm[BoneRightHand] != "LeftHand" {
		t.Errorf("Expected mirror fill for right hand, got %q", bm[BoneRightHand])
	}
	if bm[BoneRightElbow] != "LeftForearm" {
		t.Errorf("Expected mirror fill for right elbow, got %q", bm[BoneRightElbow])
	}
	if bm.Resolved(BoneLeftFoot) {
		t.Error("Feet were never named and have no mirror to borrow from")
	}
}

// TestAdapterSelectionBones tests that a rig with head and spine mapped
// gets the bone adapter.
func TestAdapterSelectionBones(t *testing.T) {
	rig := &fakeRig{bones: map[string]mgl64.Vec3{
		"Head":  {0, 1.62, 0},
		"Spine": {0, 1.0, 0},
	}}
	tf := &Transform{}
	a := NewSkeletonAdapter(rig, tf, 1.8)

	if _, ok := a.(*boneAdapter); !ok {
		t.Fatalf("Expected bone adapter, got %T", a)
	}
	if p := a.HeadPosition(); p != (mgl64.Vec3{0, 1.62, 0}) {
		t.Errorf("Head should come from the rig, got %v", p)
	}
	// LeftHand was never mapped: the joint degrades to the heuristic.
	hp := a.JointPosition(BoneLeftHand)
	if hp.Y() != 1.8*0.85 {
		t.Errorf("Unmapped joint should use the heuristic lift, got y=%.3f", hp.Y())
	}
}

// TestAdapterSelectionRootOffset tests the last-resort adapter for rigs
// with no skeleton and no bounds.
func TestAdapterSelectionRootOffset(t *testing.T) {
	rig := NewStaticRig(DefaultClips())
	tf := &Transform{Position: mgl64.Vec3{1, 0, 2}}
	a := NewSkeletonAdapter(rig, tf, 1.8)

	if _, ok := a.(*rootOffsetAdapter); !ok {
		t.Fatalf("Expected root-offset adapter, got %T", a)
	}
	head := a.HeadPosition()
	want := mgl64.Vec3{1, 1.8 * 0.88, 2}
	if head != want {
		t.Errorf("Expected head %v, got %v", want, head)
	}
	torso := a.TorsoPosition()
	if torso.Y() != 1.8*0.55 {
		t.Errorf("Expected torso y %.3f, got %.3f", 1.8*0.55, torso.Y())
	}

	// nil rig also lands here.
	if _, ok := NewSkeletonAdapter(nil, tf, 1.8).(*rootOffsetAdapter); !ok {
		t.Error("nil rig should select the root-offset adapter")
	}
}

// TestHeuristicJointSides tests that limb heuristics extend forward and
// split left/right across the facing direction.
func TestHeuristicJointSides(t *testing.T) {
	tf := &Transform{} // yaw 0, facing +Z
	a := rootOffsetAdapter{tf: tf, height: 1.8}

	lh := a.JointPosition(BoneLeftHand)
	rh := a.JointPosition(BoneRightHand)

	if lh.Z() <= 0 || rh.Z() <= 0 {
		t.Error("Hands should extend forward of the root")
	}
	if lh.X() >= 0 {
		t.Errorf("Left hand should sit on -X when facing +Z, got %.3f", lh.X())
	}
	if rh.X() <= 0 {
		t.Errorf("Right hand should sit on +X when facing +Z, got %.3f", rh.X())
	}
	if math.Abs(lh.X()+rh.X()) > 1e-9 || lh.Y() != rh.Y() || lh.Z() != rh.Z() {
		t.Error("Hands should mirror across the facing plane")
	}

	// Punches ride the head band, kicks the chest band.
	foot := a.JointPosition(BoneLeftFoot)
	if foot.Y() >= lh.Y() {
		t.Errorf("Foot (%.3f) should strike lower than fist (%.3f)", foot.Y(), lh.Y())
	}

	// Rotating the fighter rotates the whole layout.
	tf.Yaw = math.Pi // facing -Z
	lh2 := a.JointPosition(BoneLeftHand)
	if lh2.Z() >= 0 {
		t.Errorf("Facing -Z the hand should extend to -Z, got %.3f", lh2.Z())
	}
}
