package game

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Rig is the loaded skinned model handed to the core by the asset loader.
// The core only reads bone world positions and the clip table; it never
// touches mesh or material data.
type Rig interface {
	// BoneNames lists every bone in the hierarchy.
	BoneNames() []string
	// BonePosition returns the current world position of a bone.
	BonePosition(name string) (mgl64.Vec3, bool)
	// Bounds returns the world-space bounding box of the model, if known.
	Bounds() (min, max mgl64.Vec3, ok bool)
	// Clips returns the named animation clips baked into the model.
	Clips() []Clip
}

// BoneRole is a canonical body-part slot the mapper fills from an arbitrary
// rig's bone names.
type BoneRole int

const (
	BoneHead BoneRole = iota
	BoneSpine
	BoneLeftHand
	BoneRightHand
	BoneLeftElbow
	BoneRightElbow
	BoneLeftFoot
	BoneRightFoot
	BoneLeftKnee
	BoneRightKnee
	boneRoleCount
)

// rolePatterns maps a role to the lowercase substrings that identify it.
// Order matters: earlier patterns win. Covers the mixamo, VRM-style and
// plain-english bone dialects seen in the wild.
var rolePatterns = [boneRoleCount][]string{
	BoneHead:       {"head"},
	BoneSpine:      {"spine2", "spine1", "spine", "chest", "torso"},
	BoneLeftHand:   {"lefthand", "hand_l", "l_hand", "hand.l", "wrist_l"},
	BoneRightHand:  {"righthand", "hand_r", "r_hand", "hand.r", "wrist_r"},
	BoneLeftElbow:  {"leftforearm", "forearm_l", "l_forearm", "lowerarm_l", "elbow_l"},
	BoneRightElbow: {"rightforearm", "forearm_r", "r_forearm", "lowerarm_r", "elbow_r"},
	BoneLeftFoot:   {"leftfoot", "foot_l", "l_foot", "foot.l", "ankle_l"},
	BoneRightFoot:  {"rightfoot", "foot_r", "r_foot", "foot.r", "ankle_r"},
	BoneLeftKnee:   {"leftleg", "leftshin", "shin_l", "calf_l", "knee_l", "lowerleg_l"},
	BoneRightKnee:  {"rightleg", "rightshin", "shin_r", "calf_r", "knee_r", "lowerleg_r"},
}

// mirrorRole returns the opposite-side role, or the role itself for
// center bones.
func mirrorRole(r BoneRole) BoneRole {
	switch r {
	case BoneLeftHand:
		return BoneRightHand
	case BoneRightHand:
		return BoneLeftHand
	case BoneLeftElbow:
		return BoneRightElbow
	case BoneRightElbow:
		return BoneLeftElbow
	case BoneLeftFoot:
		return BoneRightFoot
	case BoneRightFoot:
		return BoneLeftFoot
	case BoneLeftKnee:
		return BoneRightKnee
	case BoneRightKnee:
		return BoneLeftKnee
	}
	return r
}

// BoneMap holds the resolved bone name per canonical role. An empty string
// means the role was not discovered.
type BoneMap [boneRoleCount]string

// Resolved reports whether a role was mapped to a bone.
func (bm *BoneMap) Resolved(r BoneRole) bool {
	return bm[r] != ""
}

// coverage counts resolved roles.
func (bm *BoneMap) coverage() int {
	n := 0
	for _, name := range bm {
		if name != "" {
			n++
		}
	}
	return n
}

// MapBones matches a rig's bone names against the canonical role patterns.
// When only one side of a limb pair is found the discovered bone also fills
// the missing side, so single-sided rigs still produce a full sphere set.
func MapBones(names []string) BoneMap {
	var bm BoneMap
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	for role := BoneRole(0); role < boneRoleCount; role++ {
		for _, pat := range rolePatterns[role] {
			for i, low := range lowered {
				if strings.Contains(low, pat) {
					bm[role] = names[i]
					break
				}
			}
			if bm[role] != "" {
				break
			}
		}
	}

	// Symmetric fallback: fill a missing side from its mirror.
	for role := BoneRole(0); role < boneRoleCount; role++ {
		if bm[role] == "" {
			if mirror := mirrorRole(role); mirror != role && bm[mirror] != "" {
				bm[role] = bm[mirror]
			}
		}
	}

	return bm
}

// SkeletonAdapter supplies the world positions the hitbox engine needs,
// regardless of how much of the rig was discoverable. An implementation is
// selected once per fighter at load time, not re-branched every frame.
type SkeletonAdapter interface {
	HeadPosition() mgl64.Vec3
	TorsoPosition() mgl64.Vec3
	JointPosition(r BoneRole) mgl64.Vec3
}

// NewSkeletonAdapter picks the richest adapter the rig supports: full bone
// resolution when head and spine were mapped, bounding-box heuristics when
// the rig at least reports bounds, and fixed root offsets as the last resort.
func NewSkeletonAdapter(rig Rig, tf *Transform, height float64) SkeletonAdapter {
	if rig != nil {
		bm := MapBones(rig.BoneNames())
		if bm.Resolved(BoneHead) && bm.Resolved(BoneSpine) {
			return &boneAdapter{rig: rig, bones: bm, tf: tf, height: height}
		}
		if _, _, ok := rig.Bounds(); ok {
			return &boundsAdapter{rig: rig, tf: tf}
		}
	}
	return &rootOffsetAdapter{tf: tf, height: height}
}

// boneAdapter reads bone world transforms directly. Joints that were not
// mapped degrade per-joint to the root-offset heuristic rather than failing.
type boneAdapter struct {
	rig    Rig
	bones  BoneMap
	tf     *Transform
	height float64
}

func (a *boneAdapter) HeadPosition() mgl64.Vec3 {
	if p, ok := a.rig.BonePosition(a.bones[BoneHead]); ok {
		return p
	}
	return rootOffsetAdapter{tf: a.tf, height: a.height}.HeadPosition()
}

func (a *boneAdapter) TorsoPosition() mgl64.Vec3 {
	if p, ok := a.rig.BonePosition(a.bones[BoneSpine]); ok {
		return p
	}
	return rootOffsetAdapter{tf: a.tf, height: a.height}.TorsoPosition()
}

func (a *boneAdapter) JointPosition(r BoneRole) mgl64.Vec3 {
	if a.bones.Resolved(r) {
		if p, ok := a.rig.BonePosition(a.bones[r]); ok {
			return p
		}
	}
	return rootOffsetAdapter{tf: a.tf, height: a.height}.JointPosition(r)
}

// boundsAdapter estimates body landmarks from the model's bounding box.
type boundsAdapter struct {
	rig Rig
	tf  *Transform
}

func (a *boundsAdapter) landmarks() (center mgl64.Vec3, height float64) {
	min, max, ok := a.rig.Bounds()
	if !ok {
		return a.tf.Position, defaultFighterHeight
	}
	center = min.Add(max).Mul(0.5)
	height = max.Y() - min.Y()
	return center, height
}

func (a *boundsAdapter) HeadPosition() mgl64.Vec3 {
	c, h := a.landmarks()
	return mgl64.Vec3{c.X(), c.Y() + h*0.38, c.Z()}
}

func (a *boundsAdapter) TorsoPosition() mgl64.Vec3 {
	c, h := a.landmarks()
	return mgl64.Vec3{c.X(), c.Y() + h*0.05, c.Z()}
}

func (a *boundsAdapter) JointPosition(r BoneRole) mgl64.Vec3 {
	_, h := a.landmarks()
	return heuristicJoint(a.tf, h, r)
}

// rootOffsetAdapter places every landmark at a fixed offset from the root
// transform. The floor for non-standard models with no usable rig data.
type rootOffsetAdapter struct {
	tf     *Transform
	height float64
}

func (a rootOffsetAdapter) HeadPosition() mgl64.Vec3 {
	p := a.tf.Position
	return mgl64.Vec3{p.X(), p.Y() + a.height*0.88, p.Z()}
}

func (a rootOffsetAdapter) TorsoPosition() mgl64.Vec3 {
	p := a.tf.Position
	return mgl64.Vec3{p.X(), p.Y() + a.height*0.55, p.Z()}
}

func (a rootOffsetAdapter) JointPosition(r BoneRole) mgl64.Vec3 {
	return heuristicJoint(a.tf, a.height, r)
}

// heuristicJoint derives a limb position from the fighter's forward and
// right vectors. Reach lengths are fractions of body height tuned for an
// extended strike: punches track the opponent's head band, kicks the
// chest band, matching the jump/crouch evasion split.
func heuristicJoint(tf *Transform, height float64, r BoneRole) mgl64.Vec3 {
	fwd := tf.Forward()
	right := tf.Right()
	p := tf.Position

	side := 1.0
	switch r {
	case BoneLeftHand, BoneLeftElbow, BoneLeftFoot, BoneLeftKnee:
		side = -1.0
	}

	var lift, reach, lateral float64
	switch r {
	case BoneLeftHand, BoneRightHand:
		lift, reach, lateral = 0.85, 0.48, 0.10
	case BoneLeftElbow, BoneRightElbow:
		lift, reach, lateral = 0.75, 0.24, 0.12
	case BoneLeftFoot, BoneRightFoot:
		lift, reach, lateral = 0.55, 0.45, 0.10
	case BoneLeftKnee, BoneRightKnee:
		lift, reach, lateral = 0.45, 0.28, 0.12
	default:
		lift, reach, lateral = 0.55, 0.0, 0.0
	}

	pos := p.Add(fwd.Mul(reach * height)).Add(right.Mul(side * lateral * height))
	return mgl64.Vec3{pos.X(), p.Y() + lift*height, pos.Z()}
}
