package game

import "github.com/go-gl/mathgl/mgl64"

// Command is the per-tick intent a controller issues for its fighter.
// Human input and the AI both speak this and nothing else; neither has
// privileged access to fighter internals.
type Command struct {
	Move   mgl64.Vec3 // desired horizontal direction, magnitude <= 1
	Attack AttackType // AttackNone when no attack is requested
	Jump   bool
	Crouch bool // held, not edge-triggered
}

// CommandSource produces a fighter's command each tick.
type CommandSource interface {
	Commands(self, opponent *Fighter, dt float64) Command
}

// KeyState is the raw keyboard collaborator: the core only reads held
// state and derives edges itself.
type KeyState interface {
	IsDown(code string) bool
}

// KeyBindings maps actions to key codes.
type KeyBindings struct {
	Forward   string
	Backward  string
	Left      string
	Right     string
	LeftHand  string
	RightHand string
	LeftLeg   string
	RightLeg  string
	Jump      string
	Crouch    string
}

// DefaultBindings is the player-one layout.
func DefaultBindings() KeyBindings {
	return KeyBindings{
		Forward:   "KeyW",
		Backward:  "KeyS",
		Left:      "KeyA",
		Right:     "KeyD",
		LeftHand:  "KeyU",
		RightHand: "KeyI",
		LeftLeg:   "KeyJ",
		RightLeg:  "KeyK",
		Jump:      "Space",
		Crouch:    "ShiftLeft",
	}
}

// KeyboardSource maps raw key state to commands, with edge detection for
// the one-shot actions (attacks, jump) so a held key fires once.
type KeyboardSource struct {
	keys  KeyState
	binds KeyBindings
	prev  map[string]bool
}

// NewKeyboardSource wraps a key-state collaborator with a binding layout.
func NewKeyboardSource(keys KeyState, binds KeyBindings) *KeyboardSource {
	return &KeyboardSource{
		keys:  keys,
		binds: binds,
		prev:  make(map[string]bool, 12),
	}
}

// justPressed is the edge-triggered query: down now, up last tick.
func (k *KeyboardSource) justPressed(code string) bool {
	down := k.keys.IsDown(code)
	was := k.prev[code]
	k.prev[code] = down
	return down && !was
}

// Commands implements CommandSource. Movement is relative to the
// fighter's facing: forward closes on the opponent.
func (k *KeyboardSource) Commands(self, opponent *Fighter, dt float64) Command {
	var cmd Command

	fwd := self.Transform.Forward()
	right := self.Transform.Right()
	var move mgl64.Vec3
	if k.keys.IsDown(k.binds.Forward) {
		move = move.Add(fwd)
	}
	if k.keys.IsDown(k.binds.Backward) {
		move = move.Sub(fwd)
	}
	if k.keys.IsDown(k.binds.Right) {
		move = move.Add(right)
	}
	if k.keys.IsDown(k.binds.Left) {
		move = move.Sub(right)
	}
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}
	cmd.Move = move

	switch {
	case k.justPressed(k.binds.LeftHand):
		cmd.Attack = AttackLeftHand
	case k.justPressed(k.binds.RightHand):
		cmd.Attack = AttackRightHand
	case k.justPressed(k.binds.LeftLeg):
		cmd.Attack = AttackLeftLeg
	case k.justPressed(k.binds.RightLeg):
		cmd.Attack = AttackRightLeg
	}

	cmd.Jump = k.justPressed(k.binds.Jump)
	cmd.Crouch = k.keys.IsDown(k.binds.Crouch)
	return cmd
}
