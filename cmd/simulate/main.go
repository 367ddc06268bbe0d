package main

import (
	"flag"
	"log"
	"time"

	"github.com/NyanDesigns/deep-state-kombat/internal/api"
	"github.com/NyanDesigns/deep-state-kombat/internal/config"
	"github.com/NyanDesigns/deep-state-kombat/internal/game"
)

// simulate runs a headless AI-vs-AI match as fast as the CPU allows.
// Useful for balance tuning and regression checks: the same seed always
// produces the same fight.
func main() {
	seed := flag.Int64("seed", 1, "deterministic RNG seed")
	duration := flag.Float64("duration", 120, "maximum simulated seconds")
	char1 := flag.String("char1", "", "character file for fighter one")
	char2 := flag.String("char2", "", "character file for fighter two")
	eventPath := flag.String("events", "", "write the event log as JSONL on exit")
	flag.Parse()

	cfg1 := loadCharacter(*char1)
	cfg2 := loadCharacter(*char2)

	engine := game.NewEngine(game.EngineConfig{Seed: *seed})

	f1 := game.NewFighter("sim-a", cfg1, game.NewStaticRig(cfg1.Clips), true)
	f2 := game.NewFighter("sim-b", cfg2, game.NewStaticRig(cfg2.Clips), true)
	engine.SetFighters(f1, f2,
		game.NewAIController(*seed),
		game.NewAIController(*seed+1))

	engine.OnHit(func(ev game.HitEvent) {
		api.RecordHit(ev.Heavy, ev.Damage)
	})

	log.Printf("🥊 Simulating %s vs %s (seed %d)", cfg1.Name, cfg2.Name, *seed)

	engine.StartMatch()
	start := time.Now()

	dt := 1.0 / float64(engine.TickRate())
	maxTicks := int(*duration * float64(engine.TickRate()))

	ticks := 0
	for ; ticks < maxTicks; ticks++ {
		engine.Step(dt)
		if over, _ := engine.MatchOver(); over {
			break
		}
	}

	elapsed := time.Since(start)
	snap := engine.Snapshot()

	if over, winner := engine.MatchOver(); over {
		log.Printf("🏆 Winner: %s after %.2fs simulated (%d ticks in %v)",
			winner, snap.Time, ticks, elapsed)
	} else {
		log.Printf("⏱️ Time out after %.2fs simulated (%d ticks in %v)",
			snap.Time, ticks, elapsed)
	}
	for _, fs := range snap.Fighters {
		log.Printf("   %s: %d/%d HP, %.0f/%.0f stamina, state %s",
			fs.ID, fs.HP, fs.MaxHP, fs.Stamina, fs.MaxStamina, fs.State)
	}

	if *eventPath != "" {
		if err := engine.PersistEvents(*eventPath); err != nil {
			log.Printf("⚠️ Event log flush failed: %v", err)
		} else {
			log.Printf("📝 Event log: %s", *eventPath)
		}
	}
}

func loadCharacter(path string) game.CharacterConfig {
	if path == "" {
		return game.DefaultCharacter()
	}
	cfg, err := config.LoadCharacter(path)
	if err != nil {
		log.Printf("⚠️ %v, using defaults", err)
		return game.DefaultCharacter()
	}
	return cfg
}
