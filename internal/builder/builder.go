// internal/builder/builder.go
//
// Core engine for a cocktail-builder session.
// Responsibilities:
//   - Draw a fresh shuffled recipe sequence per session.
//   - Track the player's tentative ingredient selection for the current
//     recipe (set semantics, keyed by ingredient id).
//   - Score a checked recipe: +10 per selected essential, -5 per selected
//     ingredient that is not in the recipe at all, floored at zero.
//     In-recipe but non-essential picks are neither rewarded nor penalized.
//   - Track the perfect streak (selection exactly equals the essential
//     set — an extra garnish-grade pick breaks it).
//   - Build the option list shown to the player: the recipe's own
//     ingredients plus shuffled distractors, no duplicate ids.
//   - Produce the aggregate result across all recipes.
//
// State machine per round: Selecting → Checked → (Selecting[next] | Finished).
// Out-of-state calls are silent no-ops.

package builder

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	"sync"

	"github.com/HelderBalbino/cocktail-quiz/internal/catalog"
	"github.com/HelderBalbino/cocktail-quiz/internal/grade"
	"github.com/HelderBalbino/cocktail-quiz/internal/shuffle"
)

const (
	essentialPoints = 10
	wrongPenalty    = 5
	distractorCount = 12
)

// Game holds the state of one builder session.
type Game struct {
	mu sync.Mutex

	ID       string
	recipes  []catalog.Recipe // shuffled, fixed for the session
	idx      int
	selected map[string]catalog.Ingredient // by ingredient id
	scores   []int                         // one entry per checked recipe
	streak   int
	checked  bool
	complete bool

	rng shuffle.Rand
}

// RoundReport is the feedback for a single checked recipe.
type RoundReport struct {
	Score           int  `json:"score"`
	MaxScore        int  `json:"maxScore"`
	CorrectSelected int  `json:"correctSelected"`
	WrongSelected   int  `json:"wrongSelected"`
	Perfect         bool `json:"perfect"`
	Streak          int  `json:"streak"`
}

// Result is the finalized session summary.
type Result struct {
	Score            int    `json:"score"`
	TotalCocktails   int    `json:"totalCocktails"`
	MaxPossibleScore int    `json:"maxPossibleScore"`
	Percentage       int    `json:"percentage"`
	PerfectCocktails int    `json:"perfectCocktails"`
	Streak           int    `json:"streak"`
	Message          string `json:"message"`
}

// State is a read-only snapshot for the transport layer.
type State struct {
	ID             string   `json:"id"`
	RecipeIndex    int      `json:"recipeIndex"`
	TotalCocktails int      `json:"totalCocktails"`
	Selected       []string `json:"selected"`
	Checked        bool     `json:"checked"`
	Complete       bool     `json:"complete"`
	Streak         int      `json:"streak"`
}

// New starts a session over a fresh shuffle of the recipe bank.
// The random source is reused for option-list shuffles.
func New(bank []catalog.Recipe, r shuffle.Rand) *Game {
	return &Game{
		ID:       randomID(),
		recipes:  shuffle.Of(r, bank),
		selected: map[string]catalog.Ingredient{},
		scores:   []int{},
		rng:      r,
	}
}

// Current returns the active recipe and its index.
func (g *Game) Current() (catalog.Recipe, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.recipes[g.idx], g.idx
}

// Select adds an ingredient to the tentative build. Adding an
// already-selected id is a no-op; so is selecting after check.
func (g *Game) Select(ing catalog.Ingredient) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.checked || g.complete {
		return false
	}
	if _, dup := g.selected[ing.ID]; dup {
		return false
	}
	g.selected[ing.ID] = ing
	return true
}

// Remove drops an ingredient from the build by id, if present.
func (g *Game) Remove(ingredientID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.checked || g.complete {
		return false
	}
	if _, ok := g.selected[ingredientID]; !ok {
		return false
	}
	delete(g.selected, ingredientID)
	return true
}

// Check scores the current selection against the recipe and moves the
// round to the checked state. Calling again before Next is a no-op and
// returns the already-recorded report.
func (g *Game) Check() (RoundReport, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.complete {
		return RoundReport{}, false
	}
	if g.checked {
		return g.reportLocked(), false
	}
	g.checked = true

	recipe := g.recipes[g.idx]
	report := scoreRound(recipe, g.selected)
	g.scores = append(g.scores, report.Score)
	if report.Perfect {
		g.streak++
	} else {
		g.streak = 0
	}
	report.Streak = g.streak
	return report, true
}

// reportLocked recomputes the current round's report. Caller holds g.mu
// and the round must be checked.
func (g *Game) reportLocked() RoundReport {
	report := scoreRound(g.recipes[g.idx], g.selected)
	report.Streak = g.streak
	return report
}

// scoreRound applies the builder scoring rules to one selection set.
func scoreRound(recipe catalog.Recipe, selected map[string]catalog.Ingredient) RoundReport {
	essentials := map[string]bool{}
	for _, id := range recipe.EssentialIDs() {
		essentials[id] = true
	}

	correct, wrong := 0, 0
	exact := true
	for id := range selected {
		switch {
		case essentials[id]:
			correct++
		case !recipe.Contains(id):
			wrong++
			exact = false
		default:
			// in the recipe but non-essential: no score effect,
			// still breaks a perfect build
			exact = false
		}
	}
	if correct != len(essentials) {
		exact = false
	}

	score := correct*essentialPoints - wrong*wrongPenalty
	if score < 0 {
		score = 0
	}
	return RoundReport{
		Score:           score,
		MaxScore:        len(essentials) * essentialPoints,
		CorrectSelected: correct,
		WrongSelected:   wrong,
		Perfect:         exact,
	}
}

// Next advances past a checked recipe, clearing the selection, or
// finalizes the session on the last one.
func (g *Game) Next() (done, accepted bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.checked || g.complete {
		return g.complete, false
	}
	if g.idx == len(g.recipes)-1 {
		g.complete = true
		return true, true
	}
	g.idx++
	g.checked = false
	g.selected = map[string]catalog.Ingredient{}
	return false, true
}

// Options builds the selectable list for the current recipe: every
// ingredient the recipe uses plus up to distractorCount ingredients
// drawn from the catalog that appear nowhere in the recipe, shuffled
// together. Ids in the returned list are unique.
func (g *Game) Options(allIngredients []catalog.Ingredient) []catalog.Ingredient {
	g.mu.Lock()
	if g.complete {
		g.mu.Unlock()
		return nil
	}
	recipe := g.recipes[g.idx]
	rng := g.rng
	g.mu.Unlock()
	return MixedOptions(rng, recipe, allIngredients, distractorCount)
}

// MixedOptions is the option-list helper behind Options, exposed for
// deterministic use (e.g. the daily challenge shares one seeded source).
func MixedOptions(r shuffle.Rand, recipe catalog.Recipe, all []catalog.Ingredient, distractors int) []catalog.Ingredient {
	var own, rest []catalog.Ingredient
	seen := map[string]bool{}
	for _, ri := range recipe.Ingredients {
		if !seen[ri.IngredientID] {
			seen[ri.IngredientID] = true
			own = append(own, ri.Ingredient)
		}
	}
	for _, ing := range all {
		if !seen[ing.ID] {
			seen[ing.ID] = true
			rest = append(rest, ing)
		}
	}
	options := append(own, shuffle.Take(r, rest, distractors)...)
	return shuffle.Of(r, options)
}

// Result aggregates the session once complete (callable any time).
func (g *Game) Result() Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	total := 0
	for _, s := range g.scores {
		total += s
	}
	maxPossible := 0
	for _, recipe := range g.recipes {
		maxPossible += len(recipe.EssentialIDs()) * essentialPoints
	}
	pct := 0
	if maxPossible > 0 {
		pct = int(math.Round(float64(total) / float64(maxPossible) * 100))
	}

	// Perfect rounds by score: a round that banked the recipe's full
	// essential value, regardless of harmless extras.
	perfect := 0
	for i, s := range g.scores {
		if s == len(g.recipes[i].EssentialIDs())*essentialPoints {
			perfect++
		}
	}

	return Result{
		Score:            total,
		TotalCocktails:   len(g.recipes),
		MaxPossibleScore: maxPossible,
		Percentage:       pct,
		PerfectCocktails: perfect,
		Streak:           g.streak,
		Message:          grade.BuilderMessage(pct),
	}
}

// Snapshot returns the transport-facing view of the session.
func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]string, 0, len(g.selected))
	for id := range g.selected {
		ids = append(ids, id)
	}
	return State{
		ID:             g.ID,
		RecipeIndex:    g.idx,
		TotalCocktails: len(g.recipes),
		Selected:       ids,
		Checked:        g.checked,
		Complete:       g.complete,
		Streak:         g.streak,
	}
}

// Complete reports whether the session is finished.
func (g *Game) Complete() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.complete
}

// randomID returns a compact 16-hex-char session identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
