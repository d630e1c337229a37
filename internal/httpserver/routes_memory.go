// internal/httpserver/routes_memory.go
//
// HTTP routes for memory-match mode, under /memory:
//   - GET  /memory/difficulties → the three board configurations
//   - POST /memory/new          → deal a board for a difficulty
//   - GET  /memory/state        → snapshot of a running board
//   - POST /memory/flip         → flip one card
//   - GET  /memory/tip          → a random pre-game tip
//   - GET  /memory/result       → score summary of a finished board
//
// Cocktail card images are fetched from TheCocktailDB in the background
// after the deal; the board is fully playable on emoji alone.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/HelderBalbino/cocktail-quiz/internal/catalog"
	"github.com/HelderBalbino/cocktail-quiz/internal/memory"
	"github.com/HelderBalbino/cocktail-quiz/internal/progress"
	"github.com/HelderBalbino/cocktail-quiz/internal/shuffle"
)

// mountMemory registers all /memory routes.
func (s *Server) mountMemory(r chi.Router) {
	r.Route("/memory", func(r chi.Router) {
		r.Get("/difficulties", s.handleMemoryDifficulties)
		r.Post("/new", s.handleMemoryNew)
		r.Get("/state", s.handleMemoryState)
		r.Post("/flip", s.handleMemoryFlip)
		r.Get("/tip", s.handleMemoryTip)
		r.Get("/result", s.handleMemoryResult)
	})
}

// handleMemoryDifficulties lists the selectable board configurations.
func (s *Server) handleMemoryDifficulties(w http.ResponseWriter, r *http.Request) {
	type tier struct {
		ID          catalog.Difficulty `json:"id"`
		Name        string             `json:"name"`
		Description string             `json:"description"`
		Rows        int                `json:"rows"`
		Cols        int                `json:"cols"`
		TimeLimit   int                `json:"timeLimit"`
		Multiplier  float64            `json:"multiplier"`
	}
	var out []tier
	for _, d := range catalog.Difficulties() {
		cfg, _ := catalog.ConfigFor(d)
		out = append(out, tier{
			ID: d, Name: cfg.Name, Description: cfg.Description,
			Rows: cfg.Rows, Cols: cfg.Cols, TimeLimit: cfg.TimeLimit,
			Multiplier: cfg.Multiplier,
		})
	}
	_ = json.NewEncoder(w).Encode(out)
}

type memoryNewReq struct {
	Difficulty catalog.Difficulty `json:"difficulty,omitempty"`
}

// handleMemoryNew deals a board. The difficulty defaults to the player's
// saved setting when omitted.
func (s *Server) handleMemoryNew(w http.ResponseWriter, r *http.Request) {
	var req memoryNewReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	diff := req.Difficulty
	if diff == "" {
		diff = s.settings.Get(r.Context(), s.ownerID(w, r)).Difficulty
	}
	cfg, ok := catalog.ConfigFor(diff)
	if !ok {
		http.Error(w, `{"error":"unknown_difficulty"}`, http.StatusBadRequest)
		return
	}

	g, err := memory.New(diff, catalog.Faces(cfg.CardTypes...), shuffle.New(), memory.DefaultFlipBackDelay)
	if err != nil {
		log.Error().Err(err).Str("difficulty", string(diff)).Msg("deal memory board")
		http.Error(w, `{"error":"deal_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := s.boards.Save(r.Context(), g.ID, g); err != nil {
		g.Close()
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// Enrich cocktail cards with fetched images off the request path.
	if values := g.CocktailValues(); len(values) > 0 {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if imgs := s.images.CocktailImages(ctx, values); len(imgs) > 0 {
				g.SetCardImages(imgs)
			}
		}()
	}

	_ = json.NewEncoder(w).Encode(g.Snapshot())
}

// handleMemoryState returns a snapshot of a running board.
func (s *Server) handleMemoryState(w http.ResponseWriter, r *http.Request) {
	g, ok := s.memoryGame(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(g.Snapshot())
}

type memoryFlipReq struct {
	GameID string `json:"gameId"`
	CardID string `json:"cardId"`
}
type memoryFlipRes struct {
	Accepted bool         `json:"accepted"`
	State    memory.State `json:"state"`
}

// handleMemoryFlip flips one card. Rejected flips (matched card, locked
// board, finished game) return accepted=false with the current state.
func (s *Server) handleMemoryFlip(w http.ResponseWriter, r *http.Request) {
	var req memoryFlipReq
	if !decodeJSON(w, r, &req) {
		return
	}
	g, ok := s.memoryGame(w, r, req.GameID)
	if !ok {
		return
	}

	accepted := g.FlipCard(req.CardID)
	st := g.Snapshot()
	if st.Complete {
		s.recordMemoryResult(r, w, g)
	}
	_ = json.NewEncoder(w).Encode(memoryFlipRes{Accepted: accepted, State: st})
}

// handleMemoryTip returns one random pre-game tip.
func (s *Server) handleMemoryTip(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]string{"tip": memory.Tip(shuffle.New())})
}

// handleMemoryResult returns the score summary of a finished board.
func (s *Server) handleMemoryResult(w http.ResponseWriter, r *http.Request) {
	g, ok := s.memoryGame(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	if !g.Complete() {
		http.Error(w, `{"error":"not_finished"}`, http.StatusConflict)
		return
	}
	// Timed-out boards finish without a final flip; record here too.
	s.recordMemoryResult(r, w, g)
	_ = json.NewEncoder(w).Encode(g.Result())
}

// recordMemoryResult writes the board's history row (once per board).
func (s *Server) recordMemoryResult(r *http.Request, w http.ResponseWriter, g *memory.Game) {
	res := g.Result()
	s.recordResult(r.Context(), g.ID, progress.Entry{
		OwnerID:    s.ownerID(w, r),
		Game:       progress.GameMemory,
		Score:      res.Score,
		MaxScore:   res.TotalPairs,
		Percentage: res.Percentage,
		Detail:     "stars=" + strconv.Itoa(res.Stars) + " difficulty=" + string(res.Difficulty),
	})
}

// memoryGame loads a board or writes a 404.
func (s *Server) memoryGame(w http.ResponseWriter, r *http.Request, id string) (*memory.Game, bool) {
	g, err := s.boards.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return g, true
}
