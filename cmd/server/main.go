package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/NyanDesigns/deep-state-kombat/internal/api"
	"github.com/NyanDesigns/deep-state-kombat/internal/config"
	"github.com/NyanDesigns/deep-state-kombat/internal/game"
)

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("🥋 ================================")
	log.Println("🥋  DEEP STATE KOMBAT - GO ENGINE")
	log.Println("🥋 ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	matchCfg := appConfig.Match
	serverCfg := appConfig.Server

	log.Printf("🎮 Config: %d TPS, arena radius %.1f, spawn gap %.1f",
		matchCfg.TickRate, matchCfg.ArenaRadius, matchCfg.SpawnDistance)

	// Resolve character configs; missing files fall back to defaults
	char1, char2 := loadCharacters(serverCfg.CharacterDir)

	// Create combat engine with centralized config
	engine := game.NewEngine(game.EngineConfig{
		TickRate:      matchCfg.TickRate,
		ArenaRadius:   matchCfg.ArenaRadius,
		SpawnDistance: matchCfg.SpawnDistance,
		Seed:          matchCfg.Seed,
	})

	// Build fighters on the stock rig; a real client swaps in loaded models
	p1 := game.NewFighter("player", char1, game.NewStaticRig(char1.Clips), false)
	p2 := game.NewFighter("cpu", char2, game.NewStaticRig(char2.Clips), true)

	// Create API server first so the WebSocket key sink exists for input
	server := api.NewServer(engine)

	// Player one is driven from the browser over WebSocket; player two by AI
	keyboard := game.NewKeyboardSource(server.Keys(), game.DefaultBindings())
	cpu := game.NewAIController(matchCfg.Seed + 1)
	engine.SetFighters(p1, p2, keyboard, cpu)

	log.Printf("🥊 %s vs %s", char1.Name, char2.Name)

	// Start debug server
	debugCfg := api.DefaultObservabilityConfig()
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	// Start combat engine
	engine.ObserveTicks(api.RecordTick)
	engine.StartMatch()
	api.RecordMatchStart()
	engine.Start()
	log.Println("✅ Combat Engine started")

	// Start API server in goroutine
	go func() {
		addr := ":" + strconv.Itoa(serverCfg.Port)
		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	engine.Stop()
	server.Stop()

	if serverCfg.EventLogPath != "" {
		if err := engine.PersistEvents(serverCfg.EventLogPath); err != nil {
			log.Printf("⚠️ Event log flush failed: %v", err)
		} else {
			log.Printf("📝 Event log: %s", serverCfg.EventLogPath)
		}
	}

	log.Println("👋 Goodbye!")
}

// loadCharacters resolves the two fighter configs from the character
// directory, honoring CHARACTER_P1/CHARACTER_P2 name overrides.
func loadCharacters(dir string) (game.CharacterConfig, game.CharacterConfig) {
	chars, err := config.LoadCharacterDir(dir)
	if err != nil {
		log.Printf("⚠️ Character load failed, using defaults: %v", err)
		return game.DefaultCharacter(), game.DefaultCharacter()
	}

	pick := func(envKey string) game.CharacterConfig {
		name := os.Getenv(envKey)
		if cfg, ok := chars[name]; ok {
			return cfg
		}
		if name != "" {
			log.Printf("⚠️ Character %q not found in %s, using defaults", name, dir)
		}
		return game.DefaultCharacter()
	}

	return pick("CHARACTER_P1"), pick("CHARACTER_P2")
}
