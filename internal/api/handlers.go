package api

import (
	"encoding/json"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/NyanDesigns/deep-state-kombat/internal/game"
)

// Handler methods for routerHandlers
// These are used by both the standalone router (for testing) and the full Server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()
	if snap == nil {
		writeError(w, "No match running", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

func (h *routerHandlers) handleGetFighters(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()
	if snap == nil {
		writeError(w, "No match running", http.StatusServiceUnavailable)
		return
	}

	over, winner := h.engine.MatchOver()
	writeJSON(w, map[string]interface{}{
		"fighters":    snap.Fighters,
		"tickRate":    h.engine.TickRate(),
		"arenaRadius": h.engine.ArenaRadius(),
		"matchOver":   over,
		"winner":      winner,
		"eventLog":    h.engine.EventLog().Stats(),
	})
}

func (h *routerHandlers) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	n := 50
	if q := r.URL.Query().Get("n"); q != "" {
		if parsed, err := strconv.Atoi(q); err == nil && parsed > 0 {
			n = parsed
		}
	}
	if n > game.EventBufferSize {
		n = game.EventBufferSize
	}
	writeJSON(w, h.engine.EventLog().Recent(n))
}

func (h *routerHandlers) handleMatchReset(w http.ResponseWriter, r *http.Request) {
	log.Println("🔄 Match reset requested via API")
	h.engine.StartMatch()
	RecordMatchStart()
	writeJSON(w, map[string]bool{"success": true})
}

func (h *routerHandlers) handleDebugToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fighter   int  `json:"fighter"`
		Hitboxes  bool `json:"hitboxes"`
		Collision bool `json:"collision"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Fighter < 0 || req.Fighter > 1 {
		writeError(w, "Fighter slot must be 0 or 1", http.StatusBadRequest)
		return
	}

	if !h.engine.SetDebug(req.Fighter, req.Hitboxes, req.Collision) {
		writeError(w, "Fighter not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

// handleDebugFrame renders the latest snapshot as a top-down PNG for
// quick geometry inspection without a client.
func (h *routerHandlers) handleDebugFrame(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()
	if snap == nil {
		writeError(w, "No match running", http.StatusServiceUnavailable)
		return
	}

	img := game.RenderDebugFrame(snap)
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		log.Printf("⚠️ Debug frame encode error: %v", err)
	}
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
