// internal/memory/memory.go
//
// Core engine for a memory-match session.
// Responsibilities:
//   - Build a shuffled deck sized by difficulty: gridSize/2 distinct
//     faces drawn from the tier's allowed card types, two cards per face
//     sharing a pair id.
//   - Track flips: at most two cards face up at a time, a third flip is
//     rejected while a pair is pending. The second flip of a pair counts
//     one move and evaluates the match.
//   - Matched cards stay face up permanently; a mismatch flips back
//     after a short delay during which no input is accepted. The pending
//     flip-back is cancelable and never fires against a reset session.
//   - Own the whole-game countdown: starts on the first flip, one tick
//     per second, and forces completion at zero (timeout path).
//   - Compute the move/time score, star rating (floors at one star),
//     and result summary.
//
// Invalid flips (matched card, already face up, board locked, game
// over) are silent no-ops.

package memory

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/HelderBalbino/cocktail-quiz/internal/catalog"
	"github.com/HelderBalbino/cocktail-quiz/internal/grade"
	"github.com/HelderBalbino/cocktail-quiz/internal/shuffle"
)

const (
	baseScore      = 1000
	timeBonusMax   = 500
	movePenaltyPer = 10

	// DefaultFlipBackDelay is how long a mismatched pair stays visible.
	DefaultFlipBackDelay = time.Second
)

// Card is one instance on the board. Two cards share a PairID.
type Card struct {
	ID      string           `json:"id"`
	PairID  string           `json:"pairId"`
	Type    catalog.CardType `json:"type"`
	Value   string           `json:"value"`
	Emoji   string           `json:"emoji"`
	Image   string           `json:"image,omitempty"`
	Flipped bool             `json:"isFlipped"`
	Matched bool             `json:"isMatched"`
}

// Game holds the state of one memory-match session.
type Game struct {
	mu sync.Mutex

	ID         string
	difficulty catalog.Difficulty
	cfg        catalog.DifficultyConfig

	cards        []Card
	flipped      []string // ids of the at-most-two face-up unmatched cards
	moves        int
	matchedPairs int
	totalPairs   int
	timeLeft     int
	playing      bool
	complete     bool
	timedOut     bool

	flipBackDelay time.Duration
	flipBack      *time.Timer
	ticker        *time.Ticker
	clockDone     chan struct{} // closed to release the countdown goroutine
	gen           int           // invalidates ticker/flip-back callbacks on close
}

// Result is the finalized session summary.
type Result struct {
	Score        int                `json:"score"`
	Moves        int                `json:"moves"`
	TimeUsed     int                `json:"timeUsed"`
	TotalPairs   int                `json:"totalPairs"`
	MatchedPairs int                `json:"matchedPairs"`
	Difficulty   catalog.Difficulty `json:"difficulty"`
	Percentage   int                `json:"percentage"`
	Stars        int                `json:"stars"`
	Message      string             `json:"message"`
}

// State is a read-only snapshot for the transport layer.
type State struct {
	ID           string             `json:"id"`
	Difficulty   catalog.Difficulty `json:"difficulty"`
	Rows         int                `json:"rows"`
	Cols         int                `json:"cols"`
	Cards        []Card             `json:"cards"`
	Moves        int                `json:"moves"`
	MatchedPairs int                `json:"matchedPairs"`
	TotalPairs   int                `json:"totalPairs"`
	TimeLeft     int                `json:"timeLeft"`
	Playing      bool               `json:"isPlaying"`
	Complete     bool               `json:"isComplete"`
}

// New builds a board for the difficulty from the given face pool.
// The countdown does not start until the first flip.
func New(d catalog.Difficulty, faces []catalog.CardFace, r shuffle.Rand, flipBackDelay time.Duration) (*Game, error) {
	cfg, ok := catalog.ConfigFor(d)
	if !ok {
		return nil, fmt.Errorf("memory: unknown difficulty %q", d)
	}
	pairs := cfg.GridSize / 2
	if len(faces) < pairs {
		return nil, fmt.Errorf("memory: difficulty %q needs %d faces, have %d", d, pairs, len(faces))
	}

	drawn := shuffle.Take(r, faces, pairs)
	cards := make([]Card, 0, cfg.GridSize)
	for i, f := range drawn {
		pairID := fmt.Sprintf("pair-%d", i)
		for n := 1; n <= 2; n++ {
			cards = append(cards, Card{
				ID:     fmt.Sprintf("%s-%d", f.ID, n),
				PairID: pairID,
				Type:   f.Type,
				Value:  f.Name,
				Emoji:  f.Emoji,
			})
		}
	}

	return &Game{
		ID:            randomID(),
		difficulty:    d,
		cfg:           cfg,
		cards:         shuffle.Of(r, cards),
		totalPairs:    pairs,
		timeLeft:      cfg.TimeLimit,
		flipBackDelay: flipBackDelay,
	}, nil
}

// FlipCard turns a card face up. The first flip of the session starts
// the countdown. Returns false whenever the flip is not accepted.
func (g *Game) FlipCard(cardID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.complete || len(g.flipped) >= 2 {
		return false
	}
	card := g.cardLocked(cardID)
	if card == nil || card.Flipped || card.Matched {
		return false
	}

	if !g.playing {
		g.playing = true
		g.startClockLocked()
	}

	card.Flipped = true
	g.flipped = append(g.flipped, cardID)
	if len(g.flipped) < 2 {
		return true
	}

	// Second card of the attempt: one move, then evaluate.
	g.moves++
	first := g.cardLocked(g.flipped[0])
	if first.PairID == card.PairID {
		first.Matched = true
		card.Matched = true
		g.matchedPairs++
		g.flipped = nil
		if g.matchedPairs == g.totalPairs {
			g.finishLocked(false)
		}
		return true
	}

	// Mismatch: both stay visible briefly, then flip back. Input is
	// locked until the flip-back runs (len(flipped) == 2).
	a, b := g.flipped[0], g.flipped[1]
	if g.flipBackDelay <= 0 {
		// Zero delay flips back synchronously (test boards).
		first.Flipped = false
		card.Flipped = false
		g.flipped = nil
		return true
	}
	gen := g.gen
	g.flipBack = time.AfterFunc(g.flipBackDelay, func() { g.unflip(gen, a, b) })
	return true
}

// unflip is the delayed flip-back for a mismatched pair. It must never
// touch a session that completed or restarted while it was pending.
func (g *Game) unflip(gen int, a, b string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.gen || g.complete {
		return
	}
	for _, id := range []string{a, b} {
		if c := g.cardLocked(id); c != nil && !c.Matched {
			c.Flipped = false
		}
	}
	g.flipped = nil
}

// Tick advances the countdown by one second. Exposed so tests can
// drive time; the internal clock calls it once per second while the
// game is live. At zero the game completes on the timeout path.
func (g *Game) Tick() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tickLocked()
}

func (g *Game) tickLocked() {
	if !g.playing || g.complete {
		return
	}
	g.timeLeft--
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.finishLocked(true)
	}
}

// startClockLocked spawns the once-per-second countdown.
// Caller holds g.mu; playing has just been set.
func (g *Game) startClockLocked() {
	gen := g.gen
	t := time.NewTicker(time.Second)
	done := make(chan struct{})
	g.ticker = t
	g.clockDone = done
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				g.mu.Lock()
				if gen != g.gen || !g.playing || g.complete {
					g.mu.Unlock()
					return
				}
				g.tickLocked()
				g.mu.Unlock()
			}
		}
	}()
}

// finishLocked transitions to Complete and kills both timers so no
// stale callback can mutate a finished board. Caller holds g.mu.
func (g *Game) finishLocked(timedOut bool) {
	g.complete = true
	g.playing = false
	g.timedOut = timedOut
	g.stopClocksLocked()
}

func (g *Game) stopClocksLocked() {
	g.gen++
	if g.ticker != nil {
		g.ticker.Stop()
		g.ticker = nil
	}
	if g.clockDone != nil {
		close(g.clockDone)
		g.clockDone = nil
	}
	if g.flipBack != nil {
		g.flipBack.Stop()
		g.flipBack = nil
	}
}

// Close cancels all pending timers. Must be called when a session is
// abandoned or replaced, so nothing fires against a stale card list.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopClocksLocked()
}

// Result computes the score summary: base 1000, time bonus up to 500,
// ten-point penalty per move over par (par = grid size), all scaled by
// the difficulty multiplier. Stars floor at one.
func (g *Game) Result() Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	timeUsed := g.cfg.TimeLimit - g.timeLeft
	timeRatio := 0.0
	if g.cfg.TimeLimit > 0 {
		timeRatio = math.Max(0, float64(g.cfg.TimeLimit-timeUsed)/float64(g.cfg.TimeLimit))
	}
	timeBonus := int(math.Floor(timeRatio * timeBonusMax))

	optimalMoves := g.cfg.GridSize
	movePenalty := (g.moves - optimalMoves) * movePenaltyPer
	if movePenalty < 0 {
		movePenalty = 0
	}

	score := int(math.Floor(float64(baseScore+timeBonus-movePenalty) * g.cfg.Multiplier))
	if score < 0 {
		score = 0
	}

	stars := 1
	switch {
	case timeRatio > 0.6 && float64(g.moves) <= float64(optimalMoves)*1.2:
		stars = 3
	case timeRatio > 0.3 && float64(g.moves) <= float64(optimalMoves)*1.5:
		stars = 2
	}

	pct := 0
	if g.totalPairs > 0 {
		pct = int(math.Round(float64(g.matchedPairs) / float64(g.totalPairs) * 100))
	}
	msg := grade.StarMessage(stars)
	if g.timedOut {
		msg = "Time's up! " + msg
	}

	return Result{
		Score:        score,
		Moves:        g.moves,
		TimeUsed:     timeUsed,
		TotalPairs:   g.totalPairs,
		MatchedPairs: g.matchedPairs,
		Difficulty:   g.difficulty,
		Percentage:   pct,
		Stars:        stars,
		Message:      msg,
	}
}

// SetCardImages attaches fetched image URLs to cards by face value.
// Best-effort enrichment: unknown names are ignored, and a finished
// board is left alone.
func (g *Game) SetCardImages(byValue map[string]string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.complete {
		return
	}
	for i := range g.cards {
		if url, ok := byValue[g.cards[i].Value]; ok && url != "" {
			g.cards[i].Image = url
		}
	}
}

// CocktailValues lists the distinct cocktail face names on the board,
// for the image-enrichment collaborator.
func (g *Game) CocktailValues() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, c := range g.cards {
		if c.Type == catalog.CardCocktail && !seen[c.Value] {
			seen[c.Value] = true
			out = append(out, c.Value)
		}
	}
	return out
}

// Snapshot returns the transport-facing view of the session.
func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	cards := make([]Card, len(g.cards))
	copy(cards, g.cards)
	return State{
		ID:           g.ID,
		Difficulty:   g.difficulty,
		Rows:         g.cfg.Rows,
		Cols:         g.cfg.Cols,
		Cards:        cards,
		Moves:        g.moves,
		MatchedPairs: g.matchedPairs,
		TotalPairs:   g.totalPairs,
		TimeLeft:     g.timeLeft,
		Playing:      g.playing,
		Complete:     g.complete,
	}
}

// Complete reports whether the session is finished.
func (g *Game) Complete() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.complete
}

// cardLocked finds a card by id. Caller holds g.mu.
func (g *Game) cardLocked(id string) *Card {
	for i := range g.cards {
		if g.cards[i].ID == id {
			return &g.cards[i]
		}
	}
	return nil
}

// randomID returns a compact 16-hex-char session identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
