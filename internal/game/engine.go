package game

import (
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// EngineConfig parameterizes a match engine.
type EngineConfig struct {
	TickRate    int
	ArenaRadius float64
	// SpawnDistance is the gap between the two spawn points.
	SpawnDistance float64
	// Seed drives the engine RNG; 0 seeds from the clock.
	Seed int64
}

// DefaultEngineConfig returns the stock match settings.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TickRate:      60,
		ArenaRadius:   8.5,
		SpawnDistance: 5.0,
	}
}

// Engine drives one 1v1 match: a fixed-tick cooperative loop over exactly
// two fighters. One tick processes both fighters' commands, state, motion,
// animation, one mutual hit-check pass and one collision-separation pass.
// There is no shared mutable state beyond the two fighters, all touched
// only inside the tick, so the only lock guards the external API surface.
type Engine struct {
	mu       sync.RWMutex
	fighters [2]*Fighter
	sources  [2]CommandSource

	// Commands received during hit-stop stay queued for the next active
	// tick; edge inputs must not be eaten by the freeze.
	pending    [2]Command
	hasPending [2]bool

	tickRate  int
	arena     float64
	spawnDist float64
	running   bool
	ticker    *time.Ticker
	stopChan  chan struct{}

	tickCount uint64
	simTime   float64
	hitStop   float64

	matchOver bool
	winner    string

	eventLog *EventLog
	onHit    func(HitEvent)
	onTick   func(time.Duration)

	rng     *rand.Rand
	rngSeed int64

	snapshot atomic.Pointer[Snapshot]
}

// NewEngine creates an engine; fighters are wired with SetFighters.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.ArenaRadius <= 0 {
		cfg.ArenaRadius = 8.5
	}
	if cfg.SpawnDistance <= 0 {
		cfg.SpawnDistance = 5.0
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		tickRate:  cfg.TickRate,
		arena:     cfg.ArenaRadius,
		spawnDist: cfg.SpawnDistance,
		stopChan:  make(chan struct{}),
		eventLog:  NewEventLog(),
		rng:       rand.New(rand.NewSource(seed)),
		rngSeed:   seed,
	}
}

// SetFighters wires the two combatants and their command sources, places
// them at the spawn points facing each other, and produces the first
// snapshot.
func (e *Engine) SetFighters(a, b *Fighter, srcA, srcB CommandSource) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.fighters = [2]*Fighter{a, b}
	e.sources = [2]CommandSource{srcA, srcB}

	a.SetOpponent(b)
	b.SetOpponent(a)
	a.SetArenaRadius(e.arena)
	b.SetArenaRadius(e.arena)

	e.resetPositions()
	e.publishSnapshot()
}

func (e *Engine) resetPositions() {
	half := e.spawnDist / 2
	a, b := e.fighters[0], e.fighters[1]
	a.Reset(mgl64.Vec3{-half, 0, 0}, a.Transform.Yaw)
	b.Reset(mgl64.Vec3{half, 0, 0}, b.Transform.Yaw)
	a.Transform.LookAt(b.Transform.Position)
	b.Transform.LookAt(a.Transform.Position)
}

// StartMatch resets both fighters for a fresh round.
func (e *Engine) StartMatch() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.matchOver = false
	e.winner = ""
	e.hitStop = 0
	e.pending = [2]Command{}
	e.hasPending = [2]bool{}
	e.resetPositions()
	e.eventLog.EmitSimple(EventTypeMatchStart, e.tickCount, "", nil)
	e.publishSnapshot()
	log.Printf("🥊 Match started: %s vs %s", e.fighters[0].ID, e.fighters[1].ID)
}

// Start begins the real-time tick loop.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Second / time.Duration(e.tickRate))
	go func() {
		for {
			select {
			case <-e.ticker.C:
				start := time.Now()
				e.Step(1.0 / float64(e.tickRate))
				if obs := e.tickObserver(); obs != nil {
					obs(time.Since(start))
				}
			case <-e.stopChan:
				return
			}
		}
	}()
	log.Printf("🎮 Combat engine started at %d TPS", e.tickRate)
}

// Stop halts the tick loop.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
	log.Println("🛑 Combat engine stopped")
}

// Step advances the simulation by dt. The real-time loop calls this at
// the tick rate; headless runs drive it directly.
func (e *Engine) Step(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tickCount++
	e.simTime += dt

	e.eventLog.EmitSimple(EventTypeTick, e.tickCount, "", TickPayload{
		RNGSeed:     e.rngSeed,
		DeltaTimeNs: int64(dt * 1e9),
		HitStop:     e.hitStop > 0,
	})
	// Advance the seed deterministically for replayable logs.
	e.rngSeed = e.rng.Int63()

	// Input capture runs even during hit-stop; edge commands queue for
	// the next active tick.
	for i, src := range e.sources {
		if src == nil {
			continue
		}
		cmd := src.Commands(e.fighters[i], e.fighters[1-i], dt)
		if e.hasPending[i] {
			// Preserve queued edges, refresh continuous intent.
			if cmd.Attack == AttackNone {
				cmd.Attack = e.pending[i].Attack
			}
			cmd.Jump = cmd.Jump || e.pending[i].Jump
		}
		e.pending[i] = cmd
		e.hasPending[i] = true
	}

	// Hit-stop: freeze the simulation-advancing portion while a static
	// frame is still published.
	if e.hitStop > 0 {
		e.hitStop -= dt
		e.publishSnapshot()
		return
	}

	for i, f := range e.fighters {
		if !e.hasPending[i] {
			continue
		}
		e.applyCommand(f, e.pending[i])
		e.pending[i] = Command{}
		e.hasPending[i] = false
	}

	for _, f := range e.fighters {
		e.updateFighter(f, dt)
	}

	if !e.matchOver {
		e.resolveHit(e.fighters[0], e.fighters[1])
		e.resolveHit(e.fighters[1], e.fighters[0])
	}

	SeparateFighters(e.fighters[0], e.fighters[1])

	e.publishSnapshot()
}

// updateFighter advances one fighter with the fault contained: the rig
// behind the skeleton adapter is client-supplied, and a panic there must
// not stop the other fighter's simulation or kill the tick loop.
func (e *Engine) updateFighter(f *Fighter, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ %s update panic at tick %d: %v", f.ID, e.tickCount, r)
		}
	}()
	f.Update(dt, e.simTime, e.tickCount)
}

// resolveHit runs one directed hit check, isolated the same way as
// updateFighter since it also reads bone positions.
func (e *Engine) resolveHit(attacker, target *Fighter) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ Hit check %s vs %s panic at tick %d: %v",
				attacker.ID, target.ID, e.tickCount, r)
		}
	}()
	if ev := CheckHit(attacker, target); ev != nil {
		e.handleHit(ev)
	}
}

// applyCommand routes one tick's intent through the fighter's public
// interface.
func (e *Engine) applyCommand(f *Fighter, cmd Command) {
	f.SetMoveIntent(cmd.Move)

	if cmd.Attack != AttackNone {
		res := f.Attack(cmd.Attack)
		switch res {
		case AttackStarted:
			e.eventLog.EmitSimple(EventTypeAttack, e.tickCount, f.ID, AttackPayload{
				FighterID: f.ID,
				Type:      cmd.Attack.String(),
				Combo:     f.ComboCount(),
				Stamina:   f.Stamina,
			})
		case AttackQueuedCombo:
			e.eventLog.EmitSimple(EventTypeCombo, e.tickCount, f.ID, AttackPayload{
				FighterID: f.ID,
				Type:      cmd.Attack.String(),
				Combo:     f.ComboCount(),
			})
		}
	}

	if cmd.Jump {
		f.Jump()
	}

	switch {
	case cmd.Crouch && f.State().isLocomotion():
		f.Crouch()
	case !cmd.Crouch && f.State() == StateCrouch:
		f.CrouchRelease()
	}
}

// handleHit publishes a confirmed hit: diagnostics events, the effects
// callback, hit-stop on heavy impacts, and the win transition on a fatal
// blow.
func (e *Engine) handleHit(ev *HitEvent) {
	ev.TypeName = ev.Type.String()

	e.eventLog.EmitSimple(EventTypeHit, e.tickCount, ev.Attacker, ev)
	if ev.Fatal {
		e.eventLog.EmitSimple(EventTypeDeath, e.tickCount, ev.Target, ev)
	} else {
		e.eventLog.EmitSimple(EventTypeStun, e.tickCount, ev.Target, ev)
	}

	if e.onHit != nil {
		e.onHit(*ev)
	}

	tuning := e.fighters[0].cfg.Tuning
	if ev.Heavy && tuning.HitStopHeavy > 0 {
		e.hitStop = tuning.HitStopHeavy
	}

	log.Printf("⚔️ %s hits %s with %s for %d (HP: %d)",
		ev.Attacker, ev.Target, ev.Type, ev.Damage, ev.TargetHP)

	if ev.Fatal {
		e.endMatch(ev.Attacker, ev.Target)
	}
}

func (e *Engine) endMatch(winnerID, loserID string) {
	e.matchOver = true
	e.winner = winnerID

	for _, f := range e.fighters {
		if f.ID != winnerID || f.State() == StateDead {
			continue
		}
		if f.machine.TransitionTo(StateWin, e.simTime, e.tickCount) {
			f.anim.StopAction()
			f.anim.PlayOneShot(f.cfg.Clips.Win, PlayOptions{
				Priority: PriorityWin,
				FadeIn:   0.2,
				ClampEnd: true,
			})
		}
	}

	e.eventLog.EmitSimple(EventTypeMatchEnd, e.tickCount, winnerID, MatchEndPayload{
		Winner: winnerID,
		Loser:  loserID,
		Ticks:  e.tickCount,
	})
	log.Printf("🏆 %s wins after %d ticks", winnerID, e.tickCount)
}

// OnHit registers the effects collaborator callback. Called from the tick
// goroutine; keep it cheap.
func (e *Engine) OnHit(fn func(HitEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onHit = fn
}

// ObserveTicks registers a timing callback fired after each real-time
// tick with the wall time the step took.
func (e *Engine) ObserveTicks(fn func(time.Duration)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = fn
}

func (e *Engine) tickObserver() func(time.Duration) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.onTick
}

// MatchOver reports whether the round is decided, and by whom.
func (e *Engine) MatchOver() (bool, string) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.matchOver, e.winner
}

// SetDebug toggles a fighter slot's debug geometry under the engine lock
// so the flip never races the tick goroutine's snapshot build. Returns
// false for an empty or out-of-range slot.
func (e *Engine) SetDebug(i int, hitboxes, collision bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.fighters) || e.fighters[i] == nil {
		return false
	}
	e.fighters[i].SetDebug(hitboxes, collision)
	return true
}

// Fighter returns one of the two fighters by index.
func (e *Engine) Fighter(i int) *Fighter {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if i < 0 || i >= len(e.fighters) {
		return nil
	}
	return e.fighters[i]
}

// TickRate returns the configured ticks per second.
func (e *Engine) TickRate() int { return e.tickRate }

// ArenaRadius returns the radial bound.
func (e *Engine) ArenaRadius() float64 { return e.arena }

// EventLog exposes the diagnostics log.
func (e *Engine) EventLog() *EventLog { return e.eventLog }

// PersistEvents starts JSONL persistence of the diagnostics log.
func (e *Engine) PersistEvents(path string) error {
	return e.eventLog.Persist(path)
}
