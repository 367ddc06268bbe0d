package game

// AttackType identifies an attack request. Generic light/heavy plus the
// four per-limb types of the newer combat model.
type AttackType int

const (
	AttackNone AttackType = iota
	AttackLight
	AttackHeavy
	AttackLeftHand
	AttackRightHand
	AttackLeftLeg
	AttackRightLeg
)

func (t AttackType) String() string {
	switch t {
	case AttackLight:
		return "light"
	case AttackHeavy:
		return "heavy"
	case AttackLeftHand:
		return "leftHand"
	case AttackRightHand:
		return "rightHand"
	case AttackLeftLeg:
		return "leftLeg"
	case AttackRightLeg:
		return "rightLeg"
	default:
		return "none"
	}
}

// IsHeavy reports the weight class: leg attacks and generic heavy hit
// high and hard, hand attacks and generic light hit low and fast.
func (t AttackType) IsHeavy() bool {
	switch t {
	case AttackHeavy, AttackLeftLeg, AttackRightLeg:
		return true
	}
	return false
}

// Group returns the limb group driving the attack.
func (t AttackType) Group() LimbGroup {
	if t.IsHeavy() {
		return GroupLegs
	}
	return GroupHands
}

// baseType collapses a per-limb type to the generic class it inherits
// stats from.
func (t AttackType) baseType() AttackType {
	if t.IsHeavy() {
		return AttackHeavy
	}
	return AttackLight
}

// AttackPriority returns the animation/state priority of the weight class.
func (t AttackType) AttackPriority() int {
	if t.IsHeavy() {
		return PriorityHeavyAttack
	}
	return PriorityLightAttack
}

// CombatStats is the immutable per-attack-type record: damage, stamina
// cost, reach, and the hit window as animation-progress ratios.
type CombatStats struct {
	Damage      int
	StaminaCost float64
	Range       float64
	HitWindow   [2]float64
}

// StatsTable maps attack types to stats. Per-limb entries are optional;
// lookup falls back to the light/heavy base class.
type StatsTable map[AttackType]CombatStats

// Lookup resolves stats for a type, inheriting from the base class when no
// per-limb override exists.
func (st StatsTable) Lookup(t AttackType) CombatStats {
	if s, ok := st[t]; ok {
		return s
	}
	if s, ok := st[t.baseType()]; ok {
		return s
	}
	return defaultStats[t.baseType()]
}

// defaultStats are the documented global defaults; character files only
// override what they care about.
var defaultStats = StatsTable{
	AttackLight: {
		Damage:      6,
		StaminaCost: 8,
		Range:       2.2,
		HitWindow:   [2]float64{0.35, 0.70},
	},
	AttackHeavy: {
		Damage:      10,
		StaminaCost: 14,
		Range:       2.4,
		HitWindow:   [2]float64{0.40, 0.78},
	},
}

// DefaultStats returns a copy of the global default stats table.
func DefaultStats() StatsTable {
	out := make(StatsTable, len(defaultStats))
	for k, v := range defaultStats {
		out[k] = v
	}
	return out
}

// CombatTuning holds the balance parameters shared by both fighters.
// Everything here is tunable; none of it is a hard invariant.
type CombatTuning struct {
	// StunDuration is how long a connected hit locks the victim.
	StunDuration float64
	// HitAngle is the facing-dot threshold below which a hit is rejected
	// (stops hits from behind).
	HitAngle float64
	// ComboSpeedMult scales chained attack playback. Mutually exclusive
	// with the character attack-speed override so combo timing stays
	// deterministic across characters.
	ComboSpeedMult float64
	// AttackTimeout hard-caps an attack activation as a safety net.
	AttackTimeout float64

	// Pushback base distances per weight class, the friction factor
	// applied when the pushed fighter would crowd the attacker, and the
	// buffer past collision distance where friction kicks in.
	PushbackLight    float64
	PushbackHeavy    float64
	PushbackFriction float64
	CollisionBuffer  float64
	// FollowRatio scales the attacker's compensating forward nudge by the
	// realized pushback, preserving combo range.
	FollowRatio float64

	// Stamina economy: regeneration plus gains for landing and receiving
	// hits, per weight class.
	StaminaRegen      float64
	HitGainLight      float64 // victim, light hit
	HitGainHeavy      float64 // victim, heavy hit
	LandedGainLight   float64 // attacker, light hit
	LandedGainHeavy   float64 // attacker, heavy hit

	// JumpInvuln is the airborne torso-hurtbox-off window.
	JumpInvuln float64
	// HitStopHeavy freezes the simulation briefly on heavy hits.
	HitStopHeavy float64
}

// DefaultTuning returns the stock balance parameters.
func DefaultTuning() CombatTuning {
	return CombatTuning{
		StunDuration:     0.5,
		HitAngle:         0.6,
		ComboSpeedMult:   1.15,
		AttackTimeout:    2.5,
		PushbackLight:    0.55,
		PushbackHeavy:    1.05,
		PushbackFriction: 0.45,
		CollisionBuffer:  0.15,
		FollowRatio:      0.6,
		StaminaRegen:     10,
		HitGainLight:     4,
		HitGainHeavy:     7,
		LandedGainLight:  3,
		LandedGainHeavy:  6,
		JumpInvuln:       0.45,
		HitStopHeavy:     0.09,
	}
}

// ClipMapping names the animation clips the core requests from the model.
// Attack entries are ordered candidate lists: limb-specific clip first,
// generic fallback after.
type ClipMapping struct {
	Idle       string
	Walk       string
	Jump       string
	Crouch     string
	CrouchExit string
	Hit        string
	Death      string
	Win        string
	Attacks    map[AttackType][]string
}

// DefaultClips returns the clip names of the stock character rigs.
func DefaultClips() ClipMapping {
	return ClipMapping{
		Idle:       "Idle",
		Walk:       "Walking",
		Jump:       "Jump",
		Crouch:     "Crouch",
		CrouchExit: "CrouchExit",
		Hit:        "Hit",
		Death:      "Death",
		Win:        "Victory",
		Attacks: map[AttackType][]string{
			AttackLight:     {"Punch"},
			AttackHeavy:     {"Kick"},
			AttackLeftHand:  {"Punch_L", "Punch"},
			AttackRightHand: {"Punch_R", "Punch"},
			AttackLeftLeg:   {"Kick_L", "Kick"},
			AttackRightLeg:  {"Kick_R", "Kick"},
		},
	}
}

// CharacterConfig is everything the config loader resolves for one
// fighter: stats, timing windows, hitbox sizing and clip mapping. Missing
// file entries keep the defaults below.
type CharacterConfig struct {
	Name            string
	MaxHP           int
	MaxStamina      float64
	MoveSpeed       float64
	CollisionRadius float64
	Height          float64

	Stats       StatsTable
	ComboWindow [2]float64
	MaxCombo    int
	// AttackSpeed is the character-specific playback multiplier for
	// non-chained attacks.
	AttackSpeed float64

	Sizing HitboxSizing
	Clips  ClipMapping
	Tuning CombatTuning
}

const defaultFighterHeight = 1.8

// DefaultCharacter returns the baseline character every config file
// overrides.
func DefaultCharacter() CharacterConfig {
	return CharacterConfig{
		Name:            "default",
		MaxHP:           100,
		MaxStamina:      100,
		MoveSpeed:       2.4,
		CollisionRadius: 0.55,
		Height:          defaultFighterHeight,
		Stats:           DefaultStats(),
		ComboWindow:     [2]float64{0.35, 0.8},
		MaxCombo:        3,
		AttackSpeed:     1.0,
		Sizing:          DefaultHitboxSizing(),
		Clips:           DefaultClips(),
		Tuning:          DefaultTuning(),
	}
}
