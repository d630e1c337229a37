// internal/httpserver/routes_builder.go
//
// HTTP routes for cocktail-builder mode, under /builder:
//   - POST /builder/new     → start a session over a shuffled recipe set
//   - GET  /builder/state   → snapshot of a running session
//   - GET  /builder/options → ingredient choices for the current round
//   - POST /builder/select  → add an ingredient to the working glass
//   - POST /builder/remove  → take an ingredient back out
//   - POST /builder/check   → score the round and reveal the recipe
//   - POST /builder/next    → move to the next cocktail, or finish
//   - GET  /builder/result  → summary of a finished session
//
// The recipe's essential set stays hidden until the round is checked.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/HelderBalbino/cocktail-quiz/internal/builder"
	"github.com/HelderBalbino/cocktail-quiz/internal/catalog"
	"github.com/HelderBalbino/cocktail-quiz/internal/progress"
	"github.com/HelderBalbino/cocktail-quiz/internal/shuffle"
)

// mountBuilder registers all /builder routes.
func (s *Server) mountBuilder(r chi.Router) {
	r.Route("/builder", func(r chi.Router) {
		r.Post("/new", s.handleBuilderNew)
		r.Get("/state", s.handleBuilderState)
		r.Get("/options", s.handleBuilderOptions)
		r.Post("/select", s.handleBuilderSelect)
		r.Post("/remove", s.handleBuilderRemove)
		r.Post("/check", s.handleBuilderCheck)
		r.Post("/next", s.handleBuilderNext)
		r.Get("/result", s.handleBuilderResult)
	})
}

// recipeView is the client-facing round shape. Which ingredients are
// essential is not disclosed; only how many the player should find.
type recipeView struct {
	Index          int    `json:"recipeIndex"`
	Total          int    `json:"totalCocktails"`
	Name           string `json:"name"`
	Emoji          string `json:"emoji"`
	Description    string `json:"description"`
	Glassware      string `json:"glassware"`
	EssentialCount int    `json:"essentialCount"`
}

func recipeViewOf(rec catalog.Recipe, idx, total int) recipeView {
	return recipeView{
		Index:          idx,
		Total:          total,
		Name:           rec.Name,
		Emoji:          rec.Emoji,
		Description:    rec.Description,
		Glassware:      rec.Glassware,
		EssentialCount: len(rec.EssentialIDs()),
	}
}

type builderNewRes struct {
	GameID  string               `json:"gameId"`
	Recipe  recipeView           `json:"recipe"`
	Options []catalog.Ingredient `json:"options"`
}

// handleBuilderNew starts a builder session over a shuffled recipe set.
func (s *Server) handleBuilderNew(w http.ResponseWriter, r *http.Request) {
	g := builder.New(catalog.Recipes(), shuffle.New())
	if err := s.builders.Save(r.Context(), g.ID, g); err != nil {
		log.Error().Err(err).Msg("save builder session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	rec, idx := g.Current()
	_ = json.NewEncoder(w).Encode(builderNewRes{
		GameID:  g.ID,
		Recipe:  recipeViewOf(rec, idx, len(catalog.Recipes())),
		Options: g.Options(catalog.Ingredients()),
	})
}

// handleBuilderState returns a snapshot of a running session.
func (s *Server) handleBuilderState(w http.ResponseWriter, r *http.Request) {
	g, ok := s.builderGame(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(g.Snapshot())
}

// handleBuilderOptions returns the mixed option list for the current round
// (the recipe's ingredients plus shuffled-in distractors).
func (s *Server) handleBuilderOptions(w http.ResponseWriter, r *http.Request) {
	g, ok := s.builderGame(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"options": g.Options(catalog.Ingredients()),
	})
}

type builderPickReq struct {
	GameID       string `json:"gameId"`
	IngredientID string `json:"ingredientId"`
}
type builderPickRes struct {
	Accepted bool     `json:"accepted"`
	Selected []string `json:"selected"`
}

// handleBuilderSelect adds an ingredient to the working glass. Unknown
// ingredient ids are a 400; re-selecting or picking after check is
// accepted=false.
func (s *Server) handleBuilderSelect(w http.ResponseWriter, r *http.Request) {
	var req builderPickReq
	if !decodeJSON(w, r, &req) {
		return
	}
	g, ok := s.builderGame(w, r, req.GameID)
	if !ok {
		return
	}
	ing, found := catalog.IngredientByID(req.IngredientID)
	if !found {
		http.Error(w, `{"error":"unknown_ingredient"}`, http.StatusBadRequest)
		return
	}
	accepted := g.Select(ing)
	_ = json.NewEncoder(w).Encode(builderPickRes{Accepted: accepted, Selected: g.Snapshot().Selected})
}

// handleBuilderRemove takes an ingredient back out of the glass.
func (s *Server) handleBuilderRemove(w http.ResponseWriter, r *http.Request) {
	var req builderPickReq
	if !decodeJSON(w, r, &req) {
		return
	}
	g, ok := s.builderGame(w, r, req.GameID)
	if !ok {
		return
	}
	accepted := g.Remove(req.IngredientID)
	_ = json.NewEncoder(w).Encode(builderPickRes{Accepted: accepted, Selected: g.Snapshot().Selected})
}

type builderCheckReq struct {
	GameID string `json:"gameId"`
}
type builderCheckRes struct {
	Accepted     bool                `json:"accepted"`
	Report       builder.RoundReport `json:"report"`
	Essentials   []string            `json:"essentials"`
	Instructions string              `json:"instructions,omitempty"`
}

// handleBuilderCheck scores the round. A second check re-returns the same
// report with accepted=false. The reveal includes the essential set and the
// mixing instructions.
func (s *Server) handleBuilderCheck(w http.ResponseWriter, r *http.Request) {
	var req builderCheckReq
	if !decodeJSON(w, r, &req) {
		return
	}
	g, ok := s.builderGame(w, r, req.GameID)
	if !ok {
		return
	}

	report, accepted := g.Check()
	rec, _ := g.Current()
	_ = json.NewEncoder(w).Encode(builderCheckRes{
		Accepted:     accepted,
		Report:       report,
		Essentials:   rec.EssentialIDs(),
		Instructions: rec.Instructions,
	})
}

type builderNextRes struct {
	Done    bool                 `json:"done"`
	Recipe  *recipeView          `json:"recipe,omitempty"`
	Options []catalog.Ingredient `json:"options,omitempty"`
	Result  *builder.Result      `json:"result,omitempty"`
}

// handleBuilderNext moves past a checked round. On the last cocktail it
// finalizes the session and records the result.
func (s *Server) handleBuilderNext(w http.ResponseWriter, r *http.Request) {
	var req builderCheckReq
	if !decodeJSON(w, r, &req) {
		return
	}
	g, ok := s.builderGame(w, r, req.GameID)
	if !ok {
		return
	}

	done, accepted := g.Next()
	if !accepted {
		http.Error(w, `{"error":"round_not_checked"}`, http.StatusConflict)
		return
	}
	if !done {
		rec, idx := g.Current()
		view := recipeViewOf(rec, idx, g.Snapshot().TotalCocktails)
		_ = json.NewEncoder(w).Encode(builderNextRes{
			Done:    false,
			Recipe:  &view,
			Options: g.Options(catalog.Ingredients()),
		})
		return
	}

	res := g.Result()
	s.recordResult(r.Context(), g.ID, progress.Entry{
		OwnerID:    s.ownerID(w, r),
		Game:       progress.GameBuilder,
		Score:      res.Score,
		MaxScore:   res.MaxPossibleScore,
		Percentage: res.Percentage,
		Detail:     "streak=" + strconv.Itoa(res.Streak),
	})
	_ = json.NewEncoder(w).Encode(builderNextRes{Done: true, Result: &res})
}

// handleBuilderResult returns the summary of a finished session.
func (s *Server) handleBuilderResult(w http.ResponseWriter, r *http.Request) {
	g, ok := s.builderGame(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	if !g.Complete() {
		http.Error(w, `{"error":"not_finished"}`, http.StatusConflict)
		return
	}
	_ = json.NewEncoder(w).Encode(g.Result())
}

// builderGame loads a builder session or writes a 404.
func (s *Server) builderGame(w http.ResponseWriter, r *http.Request, id string) (*builder.Game, bool) {
	g, err := s.builders.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return g, true
}
