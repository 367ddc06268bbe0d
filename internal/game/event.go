package game

import (
	"encoding/json"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// HitEvent is the record CheckHit hands to the effects collaborator:
// damage numbers, screen shake and hit-stop are driven from it.
type HitEvent struct {
	Attacker string     `json:"attacker"`
	Target   string     `json:"target"`
	Type     AttackType `json:"-"`
	TypeName string     `json:"type"`
	Damage   int        `json:"damage"`
	Heavy    bool       `json:"heavy"`
	Impact   mgl64.Vec3 `json:"impact"`
	TargetHP int        `json:"targetHp"`
	Fatal    bool       `json:"fatal"`
	Tick     uint64     `json:"tick"`
}

// EventType classifies diagnostics-log entries.
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick
	EventTypeMatchStart
	EventTypeMatchEnd
	EventTypeAttack
	EventTypeHit
	EventTypeStun
	EventTypeDeath
	EventTypeCombo
)

// EventVersion guards the on-disk schema for replayed logs.
const EventVersion uint8 = 1

// Event is one diagnostics-log entry. Payloads are pre-encoded JSON so the
// ring buffer stays flat.
type Event struct {
	Version   uint8     `json:"version"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Sequence  uint64    `json:"sequence"`
	Tick      uint64    `json:"tick"`
	FighterID string    `json:"fighterId"`
	Payload   []byte    `json:"payload"`
}

func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypeMatchStart:
		return "match_start"
	case EventTypeMatchEnd:
		return "match_end"
	case EventTypeAttack:
		return "attack"
	case EventTypeHit:
		return "hit"
	case EventTypeStun:
		return "stun"
	case EventTypeDeath:
		return "death"
	case EventTypeCombo:
		return "combo"
	default:
		return "unknown"
	}
}

// AttackPayload records an accepted attack request.
type AttackPayload struct {
	FighterID string `json:"fighterId"`
	Type      string `json:"attackType"`
	Combo     int    `json:"combo"`
	Stamina   float64 `json:"stamina"`
}

// MatchEndPayload records the outcome.
type MatchEndPayload struct {
	Winner string `json:"winner"`
	Loser  string `json:"loser"`
	Ticks  uint64 `json:"ticks"`
}

// TickPayload carries per-tick replay context.
type TickPayload struct {
	RNGSeed     int64 `json:"rngSeed"`
	DeltaTimeNs int64 `json:"deltaTimeNs"`
	HitStop     bool  `json:"hitStop"`
}

// EncodePayload marshals a payload, returning nil on failure; a dropped
// payload must never take the tick down with it.
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent stamps an event with the wall clock.
func NewEvent(eventType EventType, tick uint64, fighterID string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		Tick:      tick,
		FighterID: fighterID,
		Payload:   EncodePayload(payload),
	}
}
