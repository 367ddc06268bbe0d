package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a fighter's world placement: position on the arena floor
// plus a facing yaw around the vertical axis.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64 // radians, 0 faces +Z
}

// Forward returns the horizontal facing direction.
func (t *Transform) Forward() mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(t.Yaw), 0, math.Cos(t.Yaw)}
}

// Right returns the horizontal right direction.
func (t *Transform) Right() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(t.Yaw), 0, -math.Sin(t.Yaw)}
}

// LookAt rotates the yaw instantly toward a world point. Vertical offset
// is ignored; fighters only turn around the up axis.
func (t *Transform) LookAt(target mgl64.Vec3) {
	dx := target.X() - t.Position.X()
	dz := target.Z() - t.Position.Z()
	if dx == 0 && dz == 0 {
		return
	}
	t.Yaw = math.Atan2(dx, dz)
}

// MotionController smooths a desired velocity into the actual velocity and
// eases facing toward a target yaw. It also derives the normalized speed
// signal that drives the locomotion animation blend.
type MotionController struct {
	Velocity mgl64.Vec3

	// Damping is the exponential smoothing rate for velocity (per second).
	Damping float64
	// TurnRate is the yaw easing rate (per second).
	TurnRate float64
	// MaxSpeed normalizes the speed signal; usually the fighter's move speed.
	MaxSpeed float64

	targetYaw    float64
	hasTargetYaw bool
}

// NewMotionController returns a controller with the tuning the fighters use.
func NewMotionController(maxSpeed float64) *MotionController {
	return &MotionController{
		Damping:  12.0,
		TurnRate: 10.0,
		MaxSpeed: maxSpeed,
	}
}

// FaceToward sets the yaw target to look at a world point from a position.
func (mc *MotionController) FaceToward(from, target mgl64.Vec3) {
	dx := target.X() - from.X()
	dz := target.Z() - from.Z()
	if dx == 0 && dz == 0 {
		return
	}
	mc.targetYaw = math.Atan2(dx, dz)
	mc.hasTargetYaw = true
}

// Update advances the smoothed velocity toward desired, integrates the
// transform, and eases yaw toward the facing target. It returns the
// normalized speed in [0,1] and the signed move direction (+1 when moving
// with facing, -1 against it) used for the walk animation playback rate.
func (mc *MotionController) Update(tf *Transform, desired mgl64.Vec3, dt float64) (speed, moveDir float64) {
	// Exponential damping: frame-rate independent smoothing.
	alpha := 1 - math.Exp(-mc.Damping*dt)
	mc.Velocity = mc.Velocity.Add(desired.Sub(mc.Velocity).Mul(alpha))

	tf.Position = tf.Position.Add(mc.Velocity.Mul(dt))

	if mc.hasTargetYaw {
		tf.Yaw += shortestAngle(mc.targetYaw-tf.Yaw) * math.Min(1, mc.TurnRate*dt)
	}

	v := mc.Velocity
	mag := math.Hypot(v.X(), v.Z())
	if mc.MaxSpeed > 0 {
		speed = mgl64.Clamp(mag/mc.MaxSpeed, 0, 1)
	}

	moveDir = 1
	if mag > 1e-6 {
		fwd := tf.Forward()
		if v.X()*fwd.X()+v.Z()*fwd.Z() < 0 {
			moveDir = -1
		}
	}
	return speed, moveDir
}

// Stop zeroes the velocity immediately (stun, death, match reset).
func (mc *MotionController) Stop() {
	mc.Velocity = mgl64.Vec3{}
}

// shortestAngle normalizes an angle delta to [-pi, pi].
func shortestAngle(a float64) float64 {
	const twoPi = 2 * math.Pi
	a = math.Mod(a, twoPi)
	if a < -math.Pi {
		a += twoPi
	} else if a > math.Pi {
		a -= twoPi
	}
	return a
}

// SeparateFighters pushes two overlapping fighters apart symmetrically.
// Collision volumes are vertical capsules approximated by horizontal
// circles, so only the XZ plane is corrected. Dead fighters are left alone
// so a body never shoves the winner around.
func SeparateFighters(a, b *Fighter) {
	if a.State() == StateDead || b.State() == StateDead {
		return
	}

	dx := b.Transform.Position.X() - a.Transform.Position.X()
	dz := b.Transform.Position.Z() - a.Transform.Position.Z()
	dist := math.Hypot(dx, dz)
	minDist := a.CollisionRadius + b.CollisionRadius
	if dist >= minDist {
		return
	}

	var nx, nz float64
	if dist > 1e-9 {
		nx, nz = dx/dist, dz/dist
	} else {
		// Exactly stacked: split along A's right vector.
		r := a.Transform.Right()
		nx, nz = r.X(), r.Z()
	}

	overlap := minDist - dist
	half := overlap * 0.5
	a.Transform.Position = a.Transform.Position.Add(mgl64.Vec3{-nx * half, 0, -nz * half})
	b.Transform.Position = b.Transform.Position.Add(mgl64.Vec3{nx * half, 0, nz * half})

	a.clampToArena()
	b.clampToArena()
}
