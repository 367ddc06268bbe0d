package game

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// AIMode is a behavior state of the AI controller.
type AIMode int

const (
	ModeSpacing AIMode = iota
	ModeAggressive
	ModeDefensive
	ModeReaction
)

func (m AIMode) String() string {
	switch m {
	case ModeAggressive:
		return "aggressive"
	case ModeDefensive:
		return "defensive"
	case ModeReaction:
		return "reaction"
	default:
		return "spacing"
	}
}

// distanceBand is a mode's preferred range to the opponent, with a central
// idle sub-zone where the AI holds position to bait attacks.
type distanceBand struct {
	near, far         float64
	idleNear, idleFar float64
}

var modeBands = map[AIMode]distanceBand{
	ModeSpacing:    {near: 2.6, far: 4.2, idleNear: 3.1, idleFar: 3.7},
	ModeAggressive: {near: 1.2, far: 2.0, idleNear: 1.5, idleFar: 1.8},
	ModeDefensive:  {near: 4.5, far: 6.5, idleNear: 5.0, idleFar: 6.0},
}

// AITuning holds the thresholds the decision layer works from.
type AITuning struct {
	// DecisionMin/Max bound the randomized re-decision interval.
	DecisionMin float64
	DecisionMax float64
	// ReactionWindow is how long the Reaction mode preempts after the
	// opponent enters ATTACK.
	ReactionWindow float64
	// EvadeCooldown throttles jump/crouch evasions.
	EvadeCooldown float64
	// DefensiveHP and DefensiveStamina are the own-resource ratios below
	// which the AI turns Defensive.
	DefensiveHP      float64
	DefensiveStamina float64
	// WeaknessHP is the opponent HP/stamina ratio below which the AI
	// favors Aggressive.
	WeaknessHP float64
}

// DefaultAITuning returns the stock thresholds.
func DefaultAITuning() AITuning {
	return AITuning{
		DecisionMin:      0.15,
		DecisionMax:      0.35,
		ReactionWindow:   0.3,
		EvadeCooldown:    0.9,
		DefensiveHP:      0.3,
		DefensiveStamina: 0.2,
		WeaknessHP:       0.35,
	}
}

// AIController is the behavioral state machine driving a computer fighter.
// It implements CommandSource and goes through the same public Fighter
// interface as human input.
type AIController struct {
	rng    *rand.Rand
	tuning AITuning

	mode          AIMode
	decisionTimer float64
	reactionTimer float64
	evadeCooldown float64

	// Edge detection for the opponent entering ATTACK.
	oppWasAttacking bool
	// reactionAttack is the opponent attack the Reaction mode is evading.
	reactionAttack AttackType
}

// NewAIController builds a controller with a deterministic seed so
// simulate runs replay identically.
func NewAIController(seed int64) *AIController {
	return &AIController{
		rng:    rand.New(rand.NewSource(seed)),
		tuning: DefaultAITuning(),
		mode:   ModeSpacing,
	}
}

// Mode returns the current behavior mode, for the debug overlay.
func (c *AIController) Mode() AIMode { return c.mode }

// Commands implements CommandSource.
func (c *AIController) Commands(self, opp *Fighter, dt float64) Command {
	c.decisionTimer -= dt
	c.reactionTimer -= dt
	c.evadeCooldown -= dt

	// Reaction preempts everything for a short window whenever the
	// opponent's state transitions into ATTACK.
	oppAttacking := opp.State() == StateAttack
	if oppAttacking && !c.oppWasAttacking {
		c.mode = ModeReaction
		c.reactionTimer = c.tuning.ReactionWindow
		c.reactionAttack = opp.ActiveAttack()
	}
	c.oppWasAttacking = oppAttacking

	if c.mode == ModeReaction && c.reactionTimer <= 0 {
		c.decide(self, opp)
	} else if c.mode != ModeReaction && c.decisionTimer <= 0 {
		c.decide(self, opp)
	}

	dist := horizontalDistance(self, opp)

	if c.mode == ModeReaction {
		return c.react(self, opp, dist)
	}

	// Attack checks run before movement so an available attack always
	// takes precedence over repositioning.
	if cmd, ok := c.tryAttack(self, opp, dist); ok {
		return cmd
	}
	return c.reposition(self, opp, dist)
}

// decide picks the next non-reaction mode from resource and vulnerability
// signals, and re-arms the randomized decision timer.
func (c *AIController) decide(self, opp *Fighter) {
	t := c.tuning
	c.decisionTimer = t.DecisionMin + c.rng.Float64()*(t.DecisionMax-t.DecisionMin)

	hpRatio := float64(self.HP) / float64(self.MaxHP)
	stRatio := self.Stamina / self.MaxStamina
	oppHP := float64(opp.HP) / float64(opp.MaxHP)
	oppST := opp.Stamina / opp.MaxStamina

	switch {
	case hpRatio < t.DefensiveHP || stRatio < t.DefensiveStamina:
		c.mode = ModeDefensive
	case opp.State() == StateStun || oppHP < t.WeaknessHP || oppST < t.WeaknessHP:
		c.mode = ModeAggressive
	default:
		c.mode = ModeSpacing
	}
}

// react evades the opponent's incoming attack: high attacks (legs/heavy)
// are jumped, low attacks (hands/light) are crouched. Out of range or on
// cooldown it retreats instead.
func (c *AIController) react(self, opp *Fighter, dist float64) Command {
	var cmd Command

	stats := opp.Config().Stats.Lookup(c.reactionAttack)
	inRange := dist <= stats.Range+0.5

	if inRange && c.evadeCooldown <= 0 {
		c.evadeCooldown = c.tuning.EvadeCooldown
		if c.reactionAttack.IsHeavy() {
			cmd.Jump = true
		} else {
			cmd.Crouch = true
		}
		return cmd
	}

	cmd.Move = awayFrom(self, opp)
	return cmd
}

// tryAttack rolls a single random trial against the per-tick attack
// probability for the current mode and distance.
func (c *AIController) tryAttack(self, opp *Fighter, dist float64) (Command, bool) {
	reach := self.Config().Stats.Lookup(AttackLight).Range
	if dist > reach {
		return Command{}, false
	}

	var p float64
	switch c.mode {
	case ModeAggressive:
		p = 0.12
	case ModeSpacing:
		p = 0.03
	case ModeDefensive:
		p = 0.008
	}
	if opp.State() == StateStun {
		p += 0.3
	}

	if c.rng.Float64() >= p {
		return Command{}, false
	}
	return Command{Attack: c.chooseAttack(opp)}, true
}

// chooseAttack picks a limb. Stunned opponents eat the heavy leg attacks;
// otherwise hands dominate for chain potential.
func (c *AIController) chooseAttack(opp *Fighter) AttackType {
	heavyChance := 0.25
	if opp.State() == StateStun {
		heavyChance = 0.6
	}
	if c.rng.Float64() < heavyChance {
		if c.rng.Float64() < 0.5 {
			return AttackLeftLeg
		}
		return AttackRightLeg
	}
	if c.rng.Float64() < 0.5 {
		return AttackLeftHand
	}
	return AttackRightHand
}

// reposition moves toward or away from the opponent to stay inside the
// mode's distance band, holding still in the idle sub-zone.
func (c *AIController) reposition(self, opp *Fighter, dist float64) Command {
	band := modeBands[c.mode]

	var cmd Command
	switch {
	case dist > band.far:
		cmd.Move = toward(self, opp)
	case dist < band.near:
		cmd.Move = awayFrom(self, opp)
	case dist >= band.idleNear && dist <= band.idleFar:
		// Hold position: bait.
	case dist > band.idleFar:
		cmd.Move = toward(self, opp).Mul(0.5)
	default:
		cmd.Move = awayFrom(self, opp).Mul(0.5)
	}
	return cmd
}

func horizontalDistance(a, b *Fighter) float64 {
	dx := b.Transform.Position.X() - a.Transform.Position.X()
	dz := b.Transform.Position.Z() - a.Transform.Position.Z()
	return math.Hypot(dx, dz)
}

func toward(self, opp *Fighter) mgl64.Vec3 {
	d := opp.Transform.Position.Sub(self.Transform.Position)
	d[1] = 0
	if l := d.Len(); l > 1e-9 {
		return d.Mul(1 / l)
	}
	return mgl64.Vec3{}
}

func awayFrom(self, opp *Fighter) mgl64.Vec3 {
	return toward(self, opp).Mul(-1)
}
