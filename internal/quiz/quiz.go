// internal/quiz/quiz.go
//
// Core engine for a single quiz session.
// Responsibilities:
//   - Draw a fresh shuffled question sequence per session.
//   - Record one answer per question (player pick or timeout sentinel),
//     reveal, then advance: NotStarted → InProgress → Revealed → ... → Finished.
//   - Own the per-question countdown. The timer callback and the player's
//     answer race; whichever lands first wins exclusively, the loser is a
//     silent no-op. Stale callbacks from a previous round or session are
//     discarded via a round generation counter.
//   - Produce the final result summary (score, percentage, graded message).
//
// Invalid transitions (answering twice, advancing before reveal) are
// no-ops, never errors: the engine is defensively idempotent.

package quiz

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	"sync"
	"time"

	"github.com/HelderBalbino/cocktail-quiz/internal/catalog"
	"github.com/HelderBalbino/cocktail-quiz/internal/grade"
	"github.com/HelderBalbino/cocktail-quiz/internal/shuffle"
)

// NoAnswer is the recorded outcome for a question that timed out.
// It never matches a correct option index.
const NoAnswer = -1

// Game holds the state of one quiz session.
type Game struct {
	mu sync.Mutex

	ID        string
	questions []catalog.Question // shuffled, fixed for the session
	idx       int
	answers   []int // one entry per answered question
	score     int
	revealed  bool
	complete  bool

	perQuestion time.Duration
	timer       *time.Timer
	round       int // bumped on every advance/close; guards stale timer fires
}

// Result is the finalized session summary.
type Result struct {
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Percentage     int    `json:"percentage"`
	Message        string `json:"message"`
	Emoji          string `json:"emoji"`
	ColorTag       string `json:"colorTag"`
}

// State is a read-only snapshot for the transport layer.
type State struct {
	ID             string `json:"id"`
	QuestionIndex  int    `json:"questionIndex"`
	TotalQuestions int    `json:"totalQuestions"`
	Score          int    `json:"score"`
	Revealed       bool   `json:"revealed"`
	Complete       bool   `json:"complete"`
}

// New starts a session over a fresh shuffle of the question bank.
// perQuestion <= 0 disables the countdown (untimed play).
func New(bank []catalog.Question, r shuffle.Rand, perQuestion time.Duration) *Game {
	g := &Game{
		ID:          randomID(),
		questions:   shuffle.Of(r, bank),
		answers:     []int{},
		perQuestion: perQuestion,
	}
	g.mu.Lock()
	g.armTimer()
	g.mu.Unlock()
	return g
}

// Current returns the active question and its index.
func (g *Game) Current() (catalog.Question, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.questions[g.idx], g.idx
}

// SelectAnswer records the player's pick for the current question and
// reveals it. Returns whether the pick was correct and whether the call
// had any effect (false once revealed or finished).
func (g *Game) SelectAnswer(optionIndex int) (correct, accepted bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.revealed || g.complete {
		return false, false
	}
	g.stopTimer()
	g.revealed = true
	g.answers = append(g.answers, optionIndex)
	if optionIndex == g.questions[g.idx].CorrectAnswer {
		g.score++
		return true, true
	}
	return false, true
}

// TimeExpire reveals the current round with the NoAnswer sentinel, as
// if the countdown had just elapsed. A no-op once the round is revealed.
func (g *Game) TimeExpire() {
	g.mu.Lock()
	round := g.round
	g.mu.Unlock()
	g.expire(round)
}

// expire is the countdown callback: it reveals the round with the
// NoAnswer sentinel. A fire from a superseded round is ignored.
func (g *Game) expire(round int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if round != g.round || g.revealed || g.complete {
		return
	}
	g.revealed = true
	g.answers = append(g.answers, NoAnswer)
}

// Advance moves to the next question, or finalizes the session on the
// last one. Only valid in the revealed state; otherwise a no-op.
func (g *Game) Advance() (done, accepted bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.revealed || g.complete {
		return g.complete, false
	}
	if g.idx == len(g.questions)-1 {
		g.complete = true
		g.stopTimer()
		return true, true
	}
	g.idx++
	g.revealed = false
	g.armTimer()
	return false, true
}

// Result summarizes the session. Pure with respect to session state;
// meaningful once Complete, callable any time.
func (g *Game) Result() Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := len(g.questions)
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(g.score) / float64(total) * 100))
	}
	gr := grade.Of(pct)
	return Result{
		Score:          g.score,
		TotalQuestions: total,
		Percentage:     pct,
		Message:        gr.Message,
		Emoji:          gr.Emoji,
		ColorTag:       gr.ColorTag,
	}
}

// Snapshot returns the transport-facing view of the session.
func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{
		ID:             g.ID,
		QuestionIndex:  g.idx,
		TotalQuestions: len(g.questions),
		Score:          g.score,
		Revealed:       g.revealed,
		Complete:       g.complete,
	}
}

// Answers returns a copy of the recorded outcomes so far.
func (g *Game) Answers() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]int, len(g.answers))
	copy(out, g.answers)
	return out
}

// Complete reports whether the session is finished.
func (g *Game) Complete() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.complete
}

// Close stops the countdown and invalidates any in-flight callback.
// Must be called when a session is abandoned or replaced.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopTimer()
}

// armTimer schedules the countdown for the current round.
// Caller must hold g.mu.
func (g *Game) armTimer() {
	g.round++
	if g.perQuestion <= 0 {
		return
	}
	round := g.round
	g.timer = time.AfterFunc(g.perQuestion, func() { g.expire(round) })
}

// stopTimer cancels the pending countdown, if any. Caller must hold g.mu.
func (g *Game) stopTimer() {
	g.round++ // a stopped timer that already fired must still be ignored
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// randomID returns a compact 16-hex-char session identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
