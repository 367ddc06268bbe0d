package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/NyanDesigns/deep-state-kombat/internal/game"
)

// attackKeys maps the JSON attack section names to their types. Per-limb
// entries are optional in character files; the light/heavy classes cover
// whatever a file leaves out.
var attackKeys = map[string]game.AttackType{
	"light":     game.AttackLight,
	"heavy":     game.AttackHeavy,
	"leftHand":  game.AttackLeftHand,
	"rightHand": game.AttackRightHand,
	"leftLeg":   game.AttackLeftLeg,
	"rightLeg":  game.AttackRightLeg,
}

// LoadCharacter reads a character JSON file and resolves it over the
// global defaults. Any field the file omits keeps its default value.
func LoadCharacter(path string) (game.CharacterConfig, error) {
	cfg := game.DefaultCharacter()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read character file %s", path)
	}
	if !gjson.ValidBytes(data) {
		return cfg, errors.Errorf("character file %s is not valid JSON", path)
	}

	doc := gjson.ParseBytes(data)
	applyCharacter(&cfg, doc)

	if cfg.Name == "default" {
		base := filepath.Base(path)
		cfg.Name = base[:len(base)-len(filepath.Ext(base))]
	}

	return cfg, nil
}

// LoadCharacterDir loads every .json file in a directory, keyed by
// character name. Missing directory is not an error; callers fall back
// to defaults.
func LoadCharacterDir(dir string) (map[string]game.CharacterConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]game.CharacterConfig{}, nil
		}
		return nil, errors.Wrapf(err, "read character dir %s", dir)
	}

	out := make(map[string]game.CharacterConfig)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		cfg, err := LoadCharacter(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out[cfg.Name] = cfg
	}
	return out, nil
}

func applyCharacter(cfg *game.CharacterConfig, doc gjson.Result) {
	if v := doc.Get("name"); v.Exists() {
		cfg.Name = v.String()
	}
	if v := doc.Get("maxHp"); v.Exists() {
		cfg.MaxHP = int(v.Int())
	}
	if v := doc.Get("maxStamina"); v.Exists() {
		cfg.MaxStamina = v.Float()
	}
	if v := doc.Get("moveSpeed"); v.Exists() {
		cfg.MoveSpeed = v.Float()
	}
	if v := doc.Get("collisionRadius"); v.Exists() {
		cfg.CollisionRadius = v.Float()
	}
	if v := doc.Get("height"); v.Exists() {
		cfg.Height = v.Float()
	}

	applyStats(cfg, doc.Get("attacks"))
	applyCombo(cfg, doc)
	applySizing(&cfg.Sizing, doc.Get("hitboxes"))
	applyClips(&cfg.Clips, doc.Get("clips"))
	applyTuning(&cfg.Tuning, doc.Get("tuning"))
}

func applyStats(cfg *game.CharacterConfig, node gjson.Result) {
	if !node.Exists() {
		return
	}
	for key, typ := range attackKeys {
		entry := node.Get(key)
		if !entry.Exists() {
			continue
		}
		stats := cfg.Stats.Lookup(typ)
		if v := entry.Get("damage"); v.Exists() {
			stats.Damage = int(v.Int())
		}
		if v := entry.Get("staminaCost"); v.Exists() {
			stats.StaminaCost = v.Float()
		}
		if v := entry.Get("range"); v.Exists() {
			stats.Range = v.Float()
		}
		if v := entry.Get("hitWindow"); v.IsArray() {
			arr := v.Array()
			if len(arr) == 2 {
				stats.HitWindow = [2]float64{arr[0].Float(), arr[1].Float()}
			}
		}
		cfg.Stats[typ] = stats
	}
}

func applyCombo(cfg *game.CharacterConfig, doc gjson.Result) {
	if v := doc.Get("comboWindow"); v.IsArray() {
		arr := v.Array()
		if len(arr) == 2 {
			cfg.ComboWindow = [2]float64{arr[0].Float(), arr[1].Float()}
		}
	}
	if v := doc.Get("maxCombo"); v.Exists() {
		cfg.MaxCombo = int(v.Int())
	}
	if v := doc.Get("attackSpeed"); v.Exists() {
		cfg.AttackSpeed = v.Float()
	}
}

func applySizing(s *game.HitboxSizing, node gjson.Result) {
	if !node.Exists() {
		return
	}
	if v := node.Get("head"); v.Exists() {
		s.Head = v.Float()
	}
	if v := node.Get("torso"); v.Exists() {
		s.Torso = v.Float()
	}
	if v := node.Get("fist"); v.Exists() {
		s.Fist = v.Float()
	}
	if v := node.Get("elbow"); v.Exists() {
		s.Elbow = v.Float()
	}
	if v := node.Get("foot"); v.Exists() {
		s.Foot = v.Float()
	}
	if v := node.Get("knee"); v.Exists() {
		s.Knee = v.Float()
	}
}

func applyClips(c *game.ClipMapping, node gjson.Result) {
	if !node.Exists() {
		return
	}
	if v := node.Get("idle"); v.Exists() {
		c.Idle = v.String()
	}
	if v := node.Get("walk"); v.Exists() {
		c.Walk = v.String()
	}
	if v := node.Get("jump"); v.Exists() {
		c.Jump = v.String()
	}
	if v := node.Get("crouch"); v.Exists() {
		c.Crouch = v.String()
	}
	if v := node.Get("crouchExit"); v.Exists() {
		c.CrouchExit = v.String()
	}
	if v := node.Get("hit"); v.Exists() {
		c.Hit = v.String()
	}
	if v := node.Get("death"); v.Exists() {
		c.Death = v.String()
	}
	if v := node.Get("win"); v.Exists() {
		c.Win = v.String()
	}

	attacks := node.Get("attacks")
	if !attacks.Exists() {
		return
	}
	for key, typ := range attackKeys {
		entry := attacks.Get(key)
		if !entry.Exists() {
			continue
		}
		var names []string
		if entry.IsArray() {
			for _, item := range entry.Array() {
				names = append(names, item.String())
			}
		} else {
			names = []string{entry.String()}
		}
		if len(names) > 0 {
			c.Attacks[typ] = names
		}
	}
}

func applyTuning(t *game.CombatTuning, node gjson.Result) {
	if !node.Exists() {
		return
	}
	if v := node.Get("stunDuration"); v.Exists() {
		t.StunDuration = v.Float()
	}
	if v := node.Get("hitAngle"); v.Exists() {
		t.HitAngle = v.Float()
	}
	if v := node.Get("comboSpeedMult"); v.Exists() {
		t.ComboSpeedMult = v.Float()
	}
	if v := node.Get("attackTimeout"); v.Exists() {
		t.AttackTimeout = v.Float()
	}
	if v := node.Get("pushbackLight"); v.Exists() {
		t.PushbackLight = v.Float()
	}
	if v := node.Get("pushbackHeavy"); v.Exists() {
		t.PushbackHeavy = v.Float()
	}
	if v := node.Get("pushbackFriction"); v.Exists() {
		t.PushbackFriction = v.Float()
	}
	if v := node.Get("staminaRegen"); v.Exists() {
		t.StaminaRegen = v.Float()
	}
	if v := node.Get("jumpInvuln"); v.Exists() {
		t.JumpInvuln = v.Float()
	}
	if v := node.Get("hitStopHeavy"); v.Exists() {
		t.HitStopHeavy = v.Float()
	}
}
