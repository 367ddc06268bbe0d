package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CommandLogSize bounds the per-fighter accepted-command ring buffer
// exposed to the HUD/debug overlay.
const CommandLogSize = 16

// CommandRecord is one accepted input/combo entry.
type CommandRecord struct {
	Tick  uint64
	Label string
}

// commandLog is a bounded ring of accepted commands.
type commandLog struct {
	entries [CommandLogSize]CommandRecord
	pos     int
	length  int
}

func (l *commandLog) push(tick uint64, label string) {
	l.entries[l.pos] = CommandRecord{Tick: tick, Label: label}
	l.pos = (l.pos + 1) % CommandLogSize
	if l.length < CommandLogSize {
		l.length++
	}
}

func (l *commandLog) tail() []CommandRecord {
	out := make([]CommandRecord, 0, l.length)
	start := l.pos - l.length
	if start < 0 {
		start += CommandLogSize
	}
	for i := 0; i < l.length; i++ {
		out = append(out, l.entries[(start+i)%CommandLogSize])
	}
	return out
}

// Fighter is one combatant: the authoritative per-character state mutated
// every tick by the components around it.
type Fighter struct {
	ID   string
	IsAI bool

	HP         int
	MaxHP      int
	Stamina    float64
	MaxStamina float64
	MoveSpeed  float64

	Transform       Transform
	CollisionRadius float64
	Height          float64

	cfg     CharacterConfig
	machine *StateMachine
	anim    *AnimationController
	motion  *MotionController
	boxes   *HitboxSet

	// Active attack bookkeeping.
	atkType       AttackType
	atkGroup      LimbGroup
	activeSpheres [spheresPerGroup]bool
	hitRegistered bool
	comboCount    int
	queuedAttack  AttackType
	attackElapsed float64

	// Countdown timers, decremented by delta time each tick.
	stunTimer       float64
	jumpInvulnTimer float64

	moveIntent mgl64.Vec3 // desired horizontal direction, unit-ish

	opponent    *Fighter
	arenaRadius float64

	now  float64 // simulation time, fed by the engine
	tick uint64

	log commandLog

	// Debug visualization toggles for external rendering.
	DebugHitboxes  bool
	DebugCollision bool
}

// NewFighter creates a fighter from a resolved character configuration and
// a loaded model. rig may be nil; the skeleton adapter then degrades to
// root-offset heuristics.
func NewFighter(id string, cfg CharacterConfig, rig Rig, isAI bool) *Fighter {
	f := &Fighter{
		ID:              id,
		IsAI:            isAI,
		HP:              cfg.MaxHP,
		MaxHP:           cfg.MaxHP,
		Stamina:         cfg.MaxStamina,
		MaxStamina:      cfg.MaxStamina,
		MoveSpeed:       cfg.MoveSpeed,
		CollisionRadius: cfg.CollisionRadius,
		Height:          cfg.Height,
		cfg:             cfg,
		machine:         NewStateMachine(),
		motion:          NewMotionController(cfg.MoveSpeed),
	}

	var clips []Clip
	if rig != nil {
		clips = rig.Clips()
	}
	f.anim = NewAnimationController(clips)

	adapter := NewSkeletonAdapter(rig, &f.Transform, cfg.Height)
	f.boxes = NewHitboxSet(adapter, cfg.Sizing)
	return f
}

// State returns the current discrete state.
func (f *Fighter) State() State { return f.machine.Current() }

// Machine exposes the state machine for diagnostics.
func (f *Fighter) Machine() *StateMachine { return f.machine }

// Animation exposes the animation controller (read-mostly; the renderer
// queries weights and progress).
func (f *Fighter) Animation() *AnimationController { return f.anim }

// Hitboxes exposes the live collision geometry for debug rendering.
func (f *Fighter) Hitboxes() *HitboxSet { return f.boxes }

// Config returns the resolved character configuration.
func (f *Fighter) Config() CharacterConfig { return f.cfg }

// ComboCount returns the current chain length (0 outside ATTACK).
func (f *Fighter) ComboCount() int { return f.comboCount }

// ActiveAttack returns the attack type in flight (AttackNone otherwise).
func (f *Fighter) ActiveAttack() AttackType { return f.atkType }

// CommandLog returns the accepted-command tail, oldest first.
func (f *Fighter) CommandLog() []CommandRecord { return f.log.tail() }

// JumpInvulnerable reports whether the torso hurtbox is currently off.
func (f *Fighter) JumpInvulnerable() bool { return f.jumpInvulnTimer > 0 }

// SetOpponent wires the facing target. The engine calls this once per match.
func (f *Fighter) SetOpponent(o *Fighter) { f.opponent = o }

// SetArenaRadius bounds pushback and movement.
func (f *Fighter) SetArenaRadius(r float64) { f.arenaRadius = r }

// SetMoveIntent sets the desired horizontal movement direction for this
// tick. Both the keyboard controller and the AI issue movement through
// this single entry point.
func (f *Fighter) SetMoveIntent(dir mgl64.Vec3) {
	f.moveIntent = mgl64.Vec3{dir.X(), 0, dir.Z()}
}

// Jump requests a jump. Legal only from locomotion; the airborne window
// grants torso invulnerability. Returns whether the jump started.
func (f *Fighter) Jump() bool {
	if !f.anim.HasClip(f.cfg.Clips.Jump) {
		return false
	}
	if !f.machine.TransitionTo(StateJump, f.now, f.tick) {
		return false
	}
	f.jumpInvulnTimer = f.cfg.Tuning.JumpInvuln
	ok := f.anim.PlayOneShot(f.cfg.Clips.Jump, PlayOptions{
		Priority:   PriorityJump,
		FadeIn:     0.1,
		FadeOut:    0.15,
		AutoReturn: true,
		OnComplete: func() {
			f.machine.TransitionTo(StateIdle, f.now, f.tick)
		},
	})
	if !ok {
		f.jumpInvulnTimer = 0
		f.machine.TransitionTo(StateIdle, f.now, f.tick)
		return false
	}
	f.log.push(f.tick, "jump")
	return true
}

// Crouch enters the held crouch. The head hurtbox stays off until the
// crouch is released and the exit animation finishes.
func (f *Fighter) Crouch() bool {
	if !f.anim.HasClip(f.cfg.Clips.Crouch) {
		return false
	}
	if !f.machine.TransitionTo(StateCrouch, f.now, f.tick) {
		return false
	}
	ok := f.anim.PlayOneShot(f.cfg.Clips.Crouch, PlayOptions{
		Priority: PriorityCrouch,
		FadeIn:   0.08,
		ClampEnd: true, // hold the crouched pose while the key is down
	})
	if !ok {
		f.machine.TransitionTo(StateIdle, f.now, f.tick)
		return false
	}
	f.log.push(f.tick, "crouch")
	return true
}

// CrouchRelease leaves the crouch through CROUCH_EXITING; the exit clip
// (or the crouch clip reversed) plays before locomotion resumes.
func (f *Fighter) CrouchRelease() bool {
	if !f.machine.TransitionTo(StateCrouchExiting, f.now, f.tick) {
		return false
	}
	f.anim.StopAction()
	opts := PlayOptions{
		Priority:   PriorityCrouch,
		FadeIn:     0.05,
		FadeOut:    0.12,
		AutoReturn: true,
		OnComplete: func() {
			f.machine.TransitionTo(StateIdle, f.now, f.tick)
		},
	}
	name := f.cfg.Clips.CrouchExit
	if !f.anim.HasClip(name) {
		name = f.cfg.Clips.Crouch
		opts.Reverse = true
	}
	if !f.anim.PlayOneShot(name, opts) {
		f.machine.TransitionTo(StateIdle, f.now, f.tick)
	}
	return true
}

// Crouching reports whether the head hurtbox should be disabled.
func (f *Fighter) Crouching() bool {
	s := f.machine.Current()
	return s == StateCrouch || s == StateCrouchExiting
}

// Update advances the fighter one tick: timers, combo processing, motion,
// animation, and the hitbox refresh, in that order.
func (f *Fighter) Update(dt float64, now float64, tick uint64) {
	f.now = now
	f.tick = tick

	if f.jumpInvulnTimer > 0 {
		f.jumpInvulnTimer -= dt
	}

	state := f.machine.Current()

	if state == StateDead || state == StateWin {
		f.motion.Stop()
		f.anim.SetLocomotion(0, 1)
		f.anim.Update(dt)
		f.refreshHitboxes()
		return
	}

	if f.stunTimer > 0 {
		f.stunTimer -= dt
		if f.stunTimer <= 0 && f.machine.Current() == StateStun {
			f.machine.TransitionTo(StateIdle, now, tick)
		}
	}

	if f.Stamina < f.MaxStamina {
		f.Stamina = math.Min(f.MaxStamina, f.Stamina+f.cfg.Tuning.StaminaRegen*dt)
	}

	if f.machine.Current() == StateAttack {
		f.processCombo(dt)
	}

	// Movement is only honored from locomotion; everything else holds
	// position and lets the motion controller damp to a stop.
	desired := mgl64.Vec3{}
	if f.machine.Current().isLocomotion() {
		intent := f.moveIntent
		if l := intent.Len(); l > 1 {
			intent = intent.Mul(1 / l)
		}
		desired = intent.Mul(f.MoveSpeed)
	}

	if f.opponent != nil && f.opponent.State() != StateDead {
		f.motion.FaceToward(f.Transform.Position, f.opponent.Transform.Position)
	}

	speed, dir := f.motion.Update(&f.Transform, desired, dt)
	f.clampToArena()

	// Locomotion state bookkeeping: idle/walk are interchangeable.
	if f.machine.Current().isLocomotion() {
		if speed > 0.05 {
			f.machine.TransitionTo(StateWalk, now, tick)
		} else {
			f.machine.TransitionTo(StateIdle, now, tick)
		}
	}

	f.anim.SetLocomotion(speed, dir)
	f.anim.Update(dt)
	f.refreshHitboxes()
}

// attackWindowLive reports whether the current animation progress lies
// within the active attack's hit window.
func (f *Fighter) attackWindowLive() bool {
	if f.machine.Current() != StateAttack {
		return false
	}
	_, ratio, ok := f.anim.ActionState()
	if !ok {
		return false
	}
	win := f.cfg.Stats.Lookup(f.atkType).HitWindow
	return ratio >= win[0] && ratio <= win[1]
}

func (f *Fighter) refreshHitboxes() {
	f.boxes.Refresh(refreshState{
		Crouching:     f.Crouching(),
		JumpInvuln:    f.jumpInvulnTimer > 0,
		AttackLive:    f.attackWindowLive(),
		AttackGroup:   f.atkGroup,
		ActiveSpheres: f.activeSpheres,
	})
}

// clampToArena keeps the fighter inside the radial bound.
func (f *Fighter) clampToArena() {
	if f.arenaRadius <= 0 {
		return
	}
	p := f.Transform.Position
	d := math.Hypot(p.X(), p.Z())
	if d <= f.arenaRadius {
		return
	}
	scale := f.arenaRadius / d
	f.Transform.Position = mgl64.Vec3{p.X() * scale, p.Y(), p.Z() * scale}
}

// Reset restores the fighter for a fresh round at the given spawn.
func (f *Fighter) Reset(spawn mgl64.Vec3, yaw float64) {
	f.HP = f.MaxHP
	f.Stamina = f.MaxStamina
	f.Transform.Position = spawn
	f.Transform.Yaw = yaw
	f.machine.Force(StateIdle, f.now)
	f.motion.Stop()
	f.anim.StopAction()
	f.anim.SetLocomotion(0, 1)
	f.clearAttack()
	f.stunTimer = 0
	f.jumpInvulnTimer = 0
	f.moveIntent = mgl64.Vec3{}
	f.refreshHitboxes()
}

func (f *Fighter) clearAttack() {
	f.atkType = AttackNone
	f.activeSpheres = [spheresPerGroup]bool{}
	f.hitRegistered = false
	f.comboCount = 0
	f.queuedAttack = AttackNone
	f.attackElapsed = 0
}
