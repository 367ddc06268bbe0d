// Package config provides centralized configuration management.
// This is the single source of truth for server and match settings;
// character data lives in JSON files loaded by LoadCharacter.
package config

import (
	"os"
	"strconv"
)

// MatchConfig holds simulation settings shared by the server and the
// headless runner.
type MatchConfig struct {
	TickRate      int     // Simulation ticks per second
	ArenaRadius   float64 // Radial bound of the arena floor
	SpawnDistance float64 // Gap between the two spawn points
	Seed          int64   // RNG seed; 0 seeds from the clock
}

// DefaultMatch returns the default match configuration.
func DefaultMatch() MatchConfig {
	return MatchConfig{
		TickRate:      60,
		ArenaRadius:   8.5,
		SpawnDistance: 5.0,
	}
}

// MatchFromEnv returns match configuration with environment overrides.
func MatchFromEnv() MatchConfig {
	cfg := DefaultMatch()

	if tps := getEnvInt("TICK_RATE", 0); tps > 0 {
		cfg.TickRate = tps
	}
	if r := getEnvFloat("ARENA_RADIUS", 0); r > 0 {
		cfg.ArenaRadius = r
	}
	if d := getEnvFloat("SPAWN_DISTANCE", 0); d > 0 {
		cfg.SpawnDistance = d
	}
	if s := getEnvInt("MATCH_SEED", 0); s != 0 {
		cfg.Seed = int64(s)
	}

	return cfg
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int
	EventLogPath string // empty disables persistence
	CharacterDir string
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:         3000,
		CharacterDir: "characters",
	}
}

// ServerFromEnv returns server configuration with environment overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if path := os.Getenv("EVENT_LOG_PATH"); path != "" {
		cfg.EventLogPath = path
	}
	if dir := os.Getenv("CHARACTER_DIR"); dir != "" {
		cfg.CharacterDir = dir
	}

	return cfg
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Match  MatchConfig
	Server ServerConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Match:  MatchFromEnv(),
		Server: ServerFromEnv(),
	}
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
