package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NyanDesigns/deep-state-kombat/internal/game"
)

func writeCharacter(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// TestLoadCharacterOverrides tests that file values win and omitted
// fields keep their defaults.
func TestLoadCharacterOverrides(t *testing.T) {
	path := writeCharacter(t, "bruiser.json", `{
		"name": "bruiser",
		"maxHp": 120,
		"moveSpeed": 2.0,
		"attacks": {
			"heavy": {"damage": 14, "staminaCost": 18},
			"leftHand": {"damage": 7}
		},
		"comboWindow": [0.3, 0.75],
		"maxCombo": 4,
		"hitboxes": {"head": 0.25},
		"clips": {
			"idle": "Breathing",
			"attacks": {"leftHand": ["Jab", "Punch"], "heavy": "Roundhouse"}
		},
		"tuning": {"stunDuration": 0.65}
	}`)

	cfg, err := LoadCharacter(path)
	if err != nil {
		t.Fatalf("LoadCharacter failed: %v", err)
	}

	if cfg.Name != "bruiser" {
		t.Errorf("Expected name bruiser, got %q", cfg.Name)
	}
	if cfg.MaxHP != 120 {
		t.Errorf("Expected maxHp 120, got %d", cfg.MaxHP)
	}
	if cfg.MaxStamina != 100 {
		t.Errorf("Omitted maxStamina should keep the default, got %.0f", cfg.MaxStamina)
	}
	if cfg.MoveSpeed != 2.0 {
		t.Errorf("Expected moveSpeed 2.0, got %.1f", cfg.MoveSpeed)
	}

	heavy := cfg.Stats.Lookup(game.AttackHeavy)
	if heavy.Damage != 14 || heavy.StaminaCost != 18 {
		t.Errorf("Expected heavy override {14, 18}, got {%d, %.0f}", heavy.Damage, heavy.StaminaCost)
	}
	if heavy.Range != 2.4 {
		t.Errorf("Omitted range should keep the default, got %.1f", heavy.Range)
	}
	// The per-limb entry inherits the untouched light base before its
	// own overrides land.
	lh := cfg.Stats.Lookup(game.AttackLeftHand)
	if lh.Damage != 7 || lh.StaminaCost != 8 {
		t.Errorf("Expected leftHand {7, 8}, got {%d, %.0f}", lh.Damage, lh.StaminaCost)
	}
	// Legs inherit the overridden heavy class.
	if got := cfg.Stats.Lookup(game.AttackRightLeg).Damage; got != 14 {
		t.Errorf("Leg attacks should inherit the heavy override, got %d", got)
	}

	if cfg.ComboWindow != [2]float64{0.3, 0.75} {
		t.Errorf("Expected combo window [0.3, 0.75], got %v", cfg.ComboWindow)
	}
	if cfg.MaxCombo != 4 {
		t.Errorf("Expected maxCombo 4, got %d", cfg.MaxCombo)
	}
	if cfg.Sizing.Head != 0.25 {
		t.Errorf("Expected head radius 0.25, got %.2f", cfg.Sizing.Head)
	}
	if cfg.Sizing.Torso != 0.38 {
		t.Errorf("Omitted torso radius should keep the default, got %.2f", cfg.Sizing.Torso)
	}

	if cfg.Clips.Idle != "Breathing" {
		t.Errorf("Expected idle clip Breathing, got %q", cfg.Clips.Idle)
	}
	if cfg.Clips.Walk != "Walking" {
		t.Errorf("Omitted walk clip should keep the default, got %q", cfg.Clips.Walk)
	}
	wantLH := []string{"Jab", "Punch"}
	gotLH := cfg.Clips.Attacks[game.AttackLeftHand]
	if len(gotLH) != 2 || gotLH[0] != wantLH[0] || gotLH[1] != wantLH[1] {
		t.Errorf("Expected leftHand candidates %v, got %v", wantLH, gotLH)
	}
	// A bare string becomes a single-candidate list.
	gotHeavy := cfg.Clips.Attacks[game.AttackHeavy]
	if len(gotHeavy) != 1 || gotHeavy[0] != "Roundhouse" {
		t.Errorf("Expected heavy candidates [Roundhouse], got %v", gotHeavy)
	}

	if cfg.Tuning.StunDuration != 0.65 {
		t.Errorf("Expected stun 0.65, got %.2f", cfg.Tuning.StunDuration)
	}
	if cfg.Tuning.AttackTimeout != 2.5 {
		t.Errorf("Omitted timeout should keep the default, got %.2f", cfg.Tuning.AttackTimeout)
	}
}

// TestLoadCharacterNameFromFile tests the filename fallback for unnamed
// characters.
func TestLoadCharacterNameFromFile(t *testing.T) {
	path := writeCharacter(t, "ryoko.json", `{"maxHp": 90}`)
	cfg, err := LoadCharacter(path)
	if err != nil {
		t.Fatalf("LoadCharacter failed: %v", err)
	}
	if cfg.Name != "ryoko" {
		t.Errorf("Expected name from filename, got %q", cfg.Name)
	}
}

// TestLoadCharacterInvalidJSON tests the validation error path.
func TestLoadCharacterInvalidJSON(t *testing.T) {
	path := writeCharacter(t, "broken.json", `{"maxHp": `)
	if _, err := LoadCharacter(path); err == nil {
		t.Error("Expected an error for invalid JSON")
	}
}

// TestLoadCharacterMissingFile tests the read error path.
func TestLoadCharacterMissingFile(t *testing.T) {
	if _, err := LoadCharacter(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

// TestLoadCharacterDir tests directory loading keyed by name, skipping
// non-JSON entries.
func TestLoadCharacterDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"alpha.json": `{"name": "alpha", "maxHp": 110}`,
		"beta.json":  `{"maxHp": 95}`,
		"notes.txt":  `not a character`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	chars, err := LoadCharacterDir(dir)
	if err != nil {
		t.Fatalf("LoadCharacterDir failed: %v", err)
	}
	if len(chars) != 2 {
		t.Fatalf("Expected 2 characters, got %d", len(chars))
	}
	if chars["alpha"].MaxHP != 110 {
		t.Errorf("Expected alpha at 110 HP, got %d", chars["alpha"].MaxHP)
	}
	if chars["beta"].MaxHP != 95 {
		t.Errorf("Expected beta keyed by filename, got %+v", chars["beta"])
	}
}

// TestLoadCharacterDirMissing tests that an absent directory yields an
// empty map, not an error.
func TestLoadCharacterDirMissing(t *testing.T) {
	chars, err := LoadCharacterDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("Missing dir should not error, got %v", err)
	}
	if len(chars) != 0 {
		t.Errorf("Expected empty map, got %d entries", len(chars))
	}
}
