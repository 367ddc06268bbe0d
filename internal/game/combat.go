package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AttackResult tells the caller what an attack request did. Failures are
// silent no-ops by design; the caller may retry next tick.
type AttackResult int

const (
	AttackStarted AttackResult = iota
	AttackQueuedCombo
	AttackNoClip
	AttackNoStamina
	AttackRejected
)

func (r AttackResult) String() string {
	switch r {
	case AttackStarted:
		return "started"
	case AttackQueuedCombo:
		return "queued"
	case AttackNoClip:
		return "no_clip"
	case AttackNoStamina:
		return "no_stamina"
	default:
		return "rejected"
	}
}

// resolveAttackClip walks the ordered candidate list for an attack type:
// limb-specific clip first, generic fallback after. Empty string when the
// model has none of them.
func (f *Fighter) resolveAttackClip(t AttackType) string {
	candidates := f.cfg.Clips.Attacks[t]
	if len(candidates) == 0 {
		candidates = f.cfg.Clips.Attacks[t.baseType()]
	}
	for _, name := range candidates {
		if f.anim.HasClip(name) {
			return name
		}
	}
	return ""
}

// activeSpheresFor selects which of the group's four spheres are live for
// this swing. Per-limb attacks light up their side; generic attacks
// alternate sides with the combo count so chains read as alternating
// strikes.
func activeSpheresFor(t AttackType, comboCount int) [spheresPerGroup]bool {
	var s [spheresPerGroup]bool
	switch t {
	case AttackLeftHand, AttackLeftLeg:
		s[SphereLeftPrimary], s[SphereLeftSecondary] = true, true
	case AttackRightHand, AttackRightLeg:
		s[SphereRightPrimary], s[SphereRightSecondary] = true, true
	default:
		if comboCount%2 == 0 {
			s[SphereRightPrimary], s[SphereRightSecondary] = true, true
		} else {
			s[SphereLeftPrimary], s[SphereLeftSecondary] = true, true
		}
	}
	return s
}

// Attack is the single combat entry point for both human input and the
// AI. A request while already attacking buffers the type as the queued
// combo follow-up; everything else either starts the swing or fails
// without touching state.
func (f *Fighter) Attack(t AttackType) AttackResult {
	return f.attack(t, false)
}

func (f *Fighter) attack(t AttackType, chain bool) AttackResult {
	if t == AttackNone {
		return AttackRejected
	}

	if f.machine.Current() == StateAttack && !chain {
		f.queuedAttack = t
		f.log.push(f.tick, "queue:"+t.String())
		return AttackQueuedCombo
	}

	clip := f.resolveAttackClip(t)
	if clip == "" {
		return AttackNoClip
	}

	stats := f.cfg.Stats.Lookup(t)
	if f.Stamina < stats.StaminaCost {
		return AttackNoStamina
	}

	// Enter ATTACK before deducting stamina so the whole operation looks
	// atomic to any other attack call in the same tick.
	prev := f.machine.Current()
	if !f.machine.TransitionTo(StateAttack, f.now, f.tick) {
		return AttackRejected
	}

	f.Stamina -= stats.StaminaCost
	f.atkType = t
	f.atkGroup = t.Group()
	f.hitRegistered = false
	f.attackElapsed = 0
	if chain {
		if f.comboCount < f.cfg.MaxCombo {
			f.comboCount++
		}
	} else {
		f.comboCount = 1
	}
	f.activeSpheres = activeSpheresFor(t, f.comboCount)

	// Playback rate: legs swing slower than hands. A chain uses the fixed
	// combo multiplier, an opener the character override; never both, so
	// combo timing stays deterministic per character.
	rate := 1.0
	if f.atkGroup == GroupLegs {
		rate = 0.9
	}
	fadeIn, fadeOut := 0.12, 0.18
	if chain {
		rate *= f.cfg.Tuning.ComboSpeedMult
		fadeIn, fadeOut = 0.04, 0.08
		// The chain legitimately restarts the action layer mid-swing.
		f.anim.StopAction()
	} else {
		rate *= f.cfg.AttackSpeed
	}

	ok := f.anim.PlayOneShot(clip, PlayOptions{
		Priority:    t.AttackPriority(),
		FadeIn:      fadeIn,
		FadeOut:     fadeOut,
		AutoReturn:  true,
		Rate:        rate,
		CancelRatio: f.cfg.ComboWindow[1],
		OnComplete:  f.finishAttack,
	})
	if !ok {
		// The action layer refused after stamina was already spent:
		// roll the whole request back.
		f.Stamina += stats.StaminaCost
		f.machine.Force(prev, f.now)
		f.clearAttack()
		return AttackRejected
	}

	label := "attack:" + t.String()
	if chain {
		label = "combo:" + t.String()
	}
	f.log.push(f.tick, label)
	return AttackStarted
}

// finishAttack returns the fighter to IDLE and clears the swing
// bookkeeping. Runs on natural animation completion and on the safety
// timeout.
func (f *Fighter) finishAttack() {
	if f.machine.Current() == StateAttack {
		f.machine.TransitionTo(StateIdle, f.now, f.tick)
	}
	f.clearAttack()
}

// processCombo runs every tick while in ATTACK: fires the queued follow-up
// once the combo window opens (or has passed) and enforces the hard
// timeout safety net.
func (f *Fighter) processCombo(dt float64) {
	f.attackElapsed += dt
	if f.attackElapsed > f.cfg.Tuning.AttackTimeout {
		f.anim.StopAction()
		f.finishAttack()
		return
	}

	_, ratio, ok := f.anim.ActionState()
	if !ok {
		return
	}

	windowOpen := ratio >= f.cfg.ComboWindow[0] && ratio <= f.cfg.ComboWindow[1]
	windowPassed := ratio > f.cfg.ComboWindow[1]

	if f.queuedAttack != AttackNone && f.comboCount < f.cfg.MaxCombo && (windowOpen || windowPassed) {
		next := f.queuedAttack
		f.queuedAttack = AttackNone
		f.attack(next, true)
	}
}

// CheckHit tests the attacker's live spheres against the target's
// hurtboxes and, on a confirmed hit, applies damage, stun or death,
// pushback with the attacker's compensating forward nudge, and the stamina
// economy. At most one hit per attack activation. Returns the hit event
// for the effects collaborator, or nil.
func CheckHit(attacker, target *Fighter) *HitEvent {
	if attacker.hitRegistered || attacker.machine.Current() != StateAttack {
		return nil
	}

	attacker.refreshHitboxes()
	target.refreshHitboxes()

	spheres := attacker.boxes.ActiveAttackSpheres(attacker.atkGroup)
	if len(spheres) == 0 {
		return nil
	}

	var impact mgl64.Vec3
	hit := false
	for _, s := range spheres {
		// Head hurtbox is off while the target crouches, torso while
		// jump-invulnerable; a zero radius never intersects.
		if s.Intersects(target.boxes.Head) || s.Intersects(target.boxes.Torso) {
			impact = s.Center
			hit = true
			break
		}
	}
	if !hit {
		return nil
	}

	// Reject hits from behind: the attacker must be facing the target.
	toTarget := target.Transform.Position.Sub(attacker.Transform.Position)
	toTarget[1] = 0
	if l := toTarget.Len(); l > 1e-9 {
		toTarget = toTarget.Mul(1 / l)
	}
	if attacker.Transform.Forward().Dot(toTarget) <= attacker.cfg.Tuning.HitAngle {
		return nil
	}

	attacker.hitRegistered = true

	stats := attacker.cfg.Stats.Lookup(attacker.atkType)
	heavy := attacker.atkType.IsHeavy()
	tuning := attacker.cfg.Tuning

	applied := target.receiveHit(attacker, stats.Damage, heavy)

	// Forward nudge proportional to the realized pushback keeps the
	// attacker in combo range.
	if applied > 0 {
		nudge := toTarget.Mul(applied * tuning.FollowRatio)
		attacker.Transform.Position = attacker.Transform.Position.Add(nudge)
		attacker.clampToArena()
	}

	gain := tuning.LandedGainLight
	if heavy {
		gain = tuning.LandedGainHeavy
	}
	attacker.Stamina = math.Min(attacker.MaxStamina, attacker.Stamina+gain)

	return &HitEvent{
		Attacker: attacker.ID,
		Target:   target.ID,
		Type:     attacker.atkType,
		Damage:   stats.Damage,
		Heavy:    heavy,
		Impact:   impact,
		TargetHP: target.HP,
		Fatal:    target.HP <= 0,
		Tick:     attacker.tick,
	}
}

// receiveHit applies damage, the stun-or-death outcome, the victim's
// stamina gain and the friction-scaled pushback. Returns the pushback
// distance actually applied (post-friction) so the attacker's follow-up
// nudge stays proportionate.
func (f *Fighter) receiveHit(attacker *Fighter, damage int, heavy bool) float64 {
	f.HP -= damage
	if f.HP < 0 {
		f.HP = 0
	}

	tuning := f.cfg.Tuning
	gain := tuning.HitGainLight
	if heavy {
		gain = tuning.HitGainHeavy
	}
	f.Stamina = math.Min(f.MaxStamina, f.Stamina+gain)

	// An interrupted swing loses its bookkeeping either way.
	f.clearAttack()

	if f.HP <= 0 {
		f.machine.TransitionTo(StateDead, f.now, f.tick)
		f.motion.Stop()
		f.anim.PlayOneShot(f.cfg.Clips.Death, PlayOptions{
			Priority: PriorityDead,
			FadeIn:   0.1,
			ClampEnd: true,
		})
		return f.applyPushback(attacker, heavy)
	}

	f.stunTimer = tuning.StunDuration
	f.machine.TransitionTo(StateStun, f.now, f.tick)
	f.anim.PlayOneShot(f.cfg.Clips.Hit, PlayOptions{
		Priority:   PriorityStun,
		FadeIn:     0.05,
		FadeOut:    0.12,
		AutoReturn: true,
	})
	return f.applyPushback(attacker, heavy)
}

// applyPushback shoves the fighter horizontally away from the attacker.
// Near collision distance the base pushback is scaled down by the friction
// factor, and the final position is clamped to the arena's radial bound.
// Returns the applied distance, never more than the base for the weight
// class.
func (f *Fighter) applyPushback(attacker *Fighter, heavy bool) float64 {
	tuning := f.cfg.Tuning

	dir := f.Transform.Position.Sub(attacker.Transform.Position)
	dir[1] = 0
	dist := dir.Len()
	if dist > 1e-9 {
		dir = dir.Mul(1 / dist)
	} else {
		dir = attacker.Transform.Forward()
	}

	base := tuning.PushbackLight
	if heavy {
		base = tuning.PushbackHeavy
	}

	applied := base
	if dist < f.CollisionRadius+attacker.CollisionRadius+tuning.CollisionBuffer {
		applied = base * tuning.PushbackFriction
	}

	f.Transform.Position = f.Transform.Position.Add(dir.Mul(applied))
	f.clampToArena()
	return applied
}
