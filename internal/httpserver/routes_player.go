// internal/httpserver/routes_player.go
//
// Player-facing persistence routes:
//   - GET /settings     → saved preferences (defaults for new players)
//   - PUT /settings     → save preferences
//   - GET /progress/me  → per-game history summary
//
// All three work for guests via the anon cookie; signup/login later
// claims the rows for the account.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HelderBalbino/cocktail-quiz/internal/settings"
)

// mountPlayer registers the settings and progress routes.
func (s *Server) mountPlayer(r chi.Router) {
	r.Get("/settings", s.handleGetSettings)
	r.Put("/settings", s.handlePutSettings)
	r.Get("/progress/me", s.handleProgress)
}

// handleGetSettings returns the player's saved preferences.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.settings.Get(r.Context(), s.ownerID(w, r)))
}

// handlePutSettings saves preferences and echoes the normalized values.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var in settings.Settings
	if !decodeJSON(w, r, &in) {
		return
	}
	stored, err := s.settings.Put(r.Context(), s.ownerID(w, r), in)
	if err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(stored)
}

// handleProgress returns the per-game history summary.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	sum, err := s.progress.Summarize(r.Context(), s.ownerID(w, r))
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(sum)
}
