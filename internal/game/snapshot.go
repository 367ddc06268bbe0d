package game

// SphereView is a sphere flattened for JSON transport.
type SphereView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Radius float64 `json:"r"`
}

func sphereView(s Sphere) SphereView {
	return SphereView{X: s.Center.X(), Y: s.Center.Y(), Z: s.Center.Z(), Radius: s.Radius}
}

// DebugGeometry is the live collision geometry a fighter exposes when its
// debug toggles are on.
type DebugGeometry struct {
	Head            SphereView   `json:"head"`
	Torso           SphereView   `json:"torso"`
	Attack          []SphereView `json:"attack"`
	CollisionRadius float64      `json:"collisionRadius"`
}

// FighterSnapshot is the read-only per-fighter view the HUD and debug
// overlay consume.
type FighterSnapshot struct {
	ID           string          `json:"id"`
	IsAI         bool            `json:"isAi"`
	HP           int             `json:"hp"`
	MaxHP        int             `json:"maxHp"`
	Stamina      float64         `json:"stamina"`
	MaxStamina   float64         `json:"maxStamina"`
	State        string          `json:"state"`
	X            float64         `json:"x"`
	Y            float64         `json:"y"`
	Z            float64         `json:"z"`
	Yaw          float64         `json:"yaw"`
	AnimName     string          `json:"animName"`
	AnimProgress float64         `json:"animProgress"`
	ComboCount   int             `json:"comboCount"`
	ActiveAttack string          `json:"activeAttack,omitempty"`
	Commands     []CommandRecord `json:"commands,omitempty"`
	Debug        *DebugGeometry  `json:"debug,omitempty"`
}

// Snapshot is the immutable per-tick match state. The engine publishes a
// fresh one at the end of every tick; readers never see a partially
// written frame.
type Snapshot struct {
	Tick      uint64             `json:"tick"`
	Time      float64            `json:"time"`
	HitStop   bool               `json:"hitStop"`
	MatchOver bool               `json:"matchOver"`
	Winner    string             `json:"winner,omitempty"`
	Arena     float64            `json:"arenaRadius"`
	Fighters  [2]FighterSnapshot `json:"fighters"`
}

// publishSnapshot builds and atomically swaps in the tick's snapshot.
// Callers hold the engine lock.
func (e *Engine) publishSnapshot() {
	snap := &Snapshot{
		Tick:      e.tickCount,
		Time:      e.simTime,
		HitStop:   e.hitStop > 0,
		MatchOver: e.matchOver,
		Winner:    e.winner,
		Arena:     e.arena,
	}
	for i, f := range e.fighters {
		if f == nil {
			continue
		}
		snap.Fighters[i] = snapshotFighter(f)
	}
	e.snapshot.Store(snap)
}

func snapshotFighter(f *Fighter) FighterSnapshot {
	fs := FighterSnapshot{
		ID:         f.ID,
		IsAI:       f.IsAI,
		HP:         f.HP,
		MaxHP:      f.MaxHP,
		Stamina:    f.Stamina,
		MaxStamina: f.MaxStamina,
		State:      f.State().String(),
		X:          f.Transform.Position.X(),
		Y:          f.Transform.Position.Y(),
		Z:          f.Transform.Position.Z(),
		Yaw:        f.Transform.Yaw,
		ComboCount: f.ComboCount(),
		Commands:   f.CommandLog(),
	}
	if name, progress, ok := f.anim.ActionState(); ok {
		fs.AnimName = name
		fs.AnimProgress = progress
	}
	if f.ActiveAttack() != AttackNone {
		fs.ActiveAttack = f.ActiveAttack().String()
	}
	if f.DebugHitboxes || f.DebugCollision {
		dbg := &DebugGeometry{
			Head:            sphereView(f.boxes.Head),
			Torso:           sphereView(f.boxes.Torso),
			CollisionRadius: f.CollisionRadius,
		}
		for _, s := range f.boxes.ActiveAttackSpheres(f.atkGroup) {
			dbg.Attack = append(dbg.Attack, sphereView(s))
		}
		fs.Debug = dbg
	}
	return fs
}

// Snapshot returns the latest published frame; safe from any goroutine
// without taking the engine lock.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}
