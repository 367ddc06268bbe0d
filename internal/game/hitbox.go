package game

import "github.com/go-gl/mathgl/mgl64"

// LimbGroup selects which limb pair an attack drives.
type LimbGroup int

const (
	GroupHands LimbGroup = iota
	GroupLegs
)

func (g LimbGroup) String() string {
	if g == GroupLegs {
		return "legs"
	}
	return "hands"
}

// Attack sphere indices within a limb group. Primary is the striking end
// (fist/foot), secondary the driving joint (elbow/knee).
const (
	SphereLeftPrimary = iota
	SphereLeftSecondary
	SphereRightPrimary
	SphereRightSecondary
	spheresPerGroup
)

// sentinelPosition parks a disabled attack sphere where it can never
// intersect anything. This is how the hit window gates detection without a
// per-sphere enable flag.
var sentinelPosition = mgl64.Vec3{0, -1e9, 0}

// Sphere is a world-space collision sphere.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Intersects reports sphere overlap. A zero radius never intersects, which
// doubles as the hurtbox disable mechanism.
func (s Sphere) Intersects(o Sphere) bool {
	if s.Radius <= 0 || o.Radius <= 0 {
		return false
	}
	sum := s.Radius + o.Radius
	d := s.Center.Sub(o.Center)
	return d.Dot(d) < sum*sum
}

// Disabled reports whether the sphere is parked at the sentinel.
func (s Sphere) Disabled() bool {
	return s.Center == sentinelPosition
}

// HitboxSizing holds the per-fighter static radii, loaded from character
// configuration.
type HitboxSizing struct {
	Head      float64
	Torso     float64
	Fist      float64
	Elbow     float64
	Foot      float64
	Knee      float64
}

// DefaultHitboxSizing returns radii tuned for a ~1.8 unit tall fighter.
func DefaultHitboxSizing() HitboxSizing {
	return HitboxSizing{
		Head:  0.22,
		Torso: 0.38,
		Fist:  0.16,
		Elbow: 0.14,
		Foot:  0.18,
		Knee:  0.16,
	}
}

// HitboxSet is a fighter's live collision geometry: two hurt spheres and
// four attack spheres per limb group, recomputed every tick.
type HitboxSet struct {
	sizing  HitboxSizing
	adapter SkeletonAdapter

	Head   Sphere
	Torso  Sphere
	Attack [2][spheresPerGroup]Sphere
}

// NewHitboxSet builds the set over a skeleton adapter.
func NewHitboxSet(adapter SkeletonAdapter, sizing HitboxSizing) *HitboxSet {
	hs := &HitboxSet{sizing: sizing, adapter: adapter}
	hs.disableAllAttack()
	return hs
}

// attackRoles maps [group][sphere index] to the skeleton role it follows.
var attackRoles = [2][spheresPerGroup]BoneRole{
	GroupHands: {BoneLeftHand, BoneLeftElbow, BoneRightHand, BoneRightElbow},
	GroupLegs:  {BoneLeftFoot, BoneLeftKnee, BoneRightFoot, BoneRightKnee},
}

// attackRadius returns the configured radius for a sphere slot.
func (hs *HitboxSet) attackRadius(group LimbGroup, idx int) float64 {
	switch {
	case group == GroupHands && (idx == SphereLeftPrimary || idx == SphereRightPrimary):
		return hs.sizing.Fist
	case group == GroupHands:
		return hs.sizing.Elbow
	case idx == SphereLeftPrimary || idx == SphereRightPrimary:
		return hs.sizing.Foot
	default:
		return hs.sizing.Knee
	}
}

// refreshState is what the combat engine tells the geometry engine about
// the current tick.
type refreshState struct {
	Crouching   bool // head hurtbox off
	JumpInvuln  bool // torso hurtbox off
	AttackLive  bool // inside ATTACK and within the active hit window
	AttackGroup LimbGroup
	// ActiveSpheres marks which of the group's four spheres are live this
	// swing (only the side that threw the strike).
	ActiveSpheres [spheresPerGroup]bool
}

// Refresh recomputes every sphere from the skeleton adapter. Hurtbox
// centers always follow the body; disabled hurtboxes get a zero radius.
// Attack spheres follow their limbs only while the hit window is live and
// sit at the sentinel otherwise.
func (hs *HitboxSet) Refresh(st refreshState) {
	hs.Head = Sphere{Center: hs.adapter.HeadPosition(), Radius: hs.sizing.Head}
	if st.Crouching {
		hs.Head.Radius = 0
	}
	hs.Torso = Sphere{Center: hs.adapter.TorsoPosition(), Radius: hs.sizing.Torso}
	if st.JumpInvuln {
		hs.Torso.Radius = 0
	}

	if !st.AttackLive {
		hs.disableAllAttack()
		return
	}

	for g := range hs.Attack {
		for i := range hs.Attack[g] {
			if LimbGroup(g) != st.AttackGroup || !st.ActiveSpheres[i] {
				hs.Attack[g][i] = Sphere{Center: sentinelPosition, Radius: hs.attackRadius(LimbGroup(g), i)}
				continue
			}
			hs.Attack[g][i] = Sphere{
				Center: hs.adapter.JointPosition(attackRoles[g][i]),
				Radius: hs.attackRadius(LimbGroup(g), i),
			}
		}
	}
}

func (hs *HitboxSet) disableAllAttack() {
	for g := range hs.Attack {
		for i := range hs.Attack[g] {
			hs.Attack[g][i] = Sphere{Center: sentinelPosition, Radius: hs.attackRadius(LimbGroup(g), i)}
		}
	}
}

// ActiveAttackSpheres returns the live spheres for a group, skipping any
// parked at the sentinel.
func (hs *HitboxSet) ActiveAttackSpheres(group LimbGroup) []Sphere {
	out := make([]Sphere, 0, spheresPerGroup)
	for _, s := range hs.Attack[group] {
		if !s.Disabled() {
			out = append(out, s)
		}
	}
	return out
}
