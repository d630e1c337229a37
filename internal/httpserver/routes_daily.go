// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes four endpoints under /daily:
//   - POST /daily/new         → start today's challenge (creates or reuses session)
//   - POST /daily/answer      → answer the current question
//   - POST /daily/advance     → next question / finish and persist
//   - GET  /daily/leaderboard → top results for today (or a given date)
//
// Everyone gets the same five questions per UTC day (deterministic draw
// from date + salt) and each player can submit once per day. Sessions
// are held in memory for active play and persisted to DB on completion.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/HelderBalbino/cocktail-quiz/internal/catalog"
	"github.com/HelderBalbino/cocktail-quiz/internal/daily"
	"github.com/HelderBalbino/cocktail-quiz/internal/quiz"
	"github.com/HelderBalbino/cocktail-quiz/internal/shuffle"
)

// dailyQuestionSeconds is the fixed per-question countdown for the daily
// challenge. Saved settings do not apply here; the leaderboard needs a
// level playing field.
const dailyQuestionSeconds = 20

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by ownerID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily run.
type dailySession struct {
	Game     *quiz.Game
	OwnerID  string
	Date     string
	Start    time.Time
	Finished bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/answer", dd.handleAnswer)
		r.Post("/advance", dd.handleAdvance)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID    string        `json:"gameId,omitempty"`
	Date      string        `json:"date"`
	Played    bool          `json:"played"`
	TimeLimit int           `json:"timeLimit,omitempty"`
	Question  *questionView `json:"question,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If the player already has a DB row for today → Played=true.
// - Otherwise create/reuse an in-memory session and return the first question.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner := d.srv.ownerID(w, r)
	now := time.Now().UTC()
	date := daily.DateKey(now)

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), owner, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	// Reuse or create session in memory. Abandoned runs from earlier
	// days are swept here; they can never be resumed.
	key := owner + "|" + date
	d.mu.Lock()
	for k, old := range d.sessions {
		if old.Date != date {
			old.Game.Close()
			delete(d.sessions, k)
		}
	}
	sess, ok := d.sessions[key]
	if !ok {
		// Seeding the in-session shuffle from the same date key keeps the
		// question order identical for every player.
		bank := daily.QuestionsFor(now, d.salt, catalog.Questions())
		g := quiz.New(bank, shuffle.Seeded(daily.Seed(now, d.salt)), dailyQuestionSeconds*time.Second)
		sess = &dailySession{Game: g, OwnerID: owner, Date: date, Start: time.Now()}
		d.sessions[key] = sess
	}
	d.mu.Unlock()

	q, idx := sess.Game.Current()
	view := questionViewOf(q, idx, sess.Game.Snapshot().TotalQuestions)
	_ = json.NewEncoder(w).Encode(dailyNewRes{
		GameID:    sess.Game.ID,
		Date:      date,
		Played:    false,
		TimeLimit: dailyQuestionSeconds,
		Question:  &view,
	})
}

// session finds today's session for the requester and checks the game id.
func (d *dailyServer) session(w http.ResponseWriter, r *http.Request, gameID string) (*dailySession, bool) {
	owner := d.srv.ownerID(w, r)
	key := owner + "|" + daily.DateKey(time.Now().UTC())
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.Game.ID != gameID {
		http.Error(w, `{"error":"no_session"}`, http.StatusConflict)
		return nil, false
	}
	return sess, true
}

// -----------------------------------------------------------------------------
// /daily/answer

// handleAnswer locks in an answer for the current daily question.
func (d *dailyServer) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req quizAnswerReq
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, ok := d.session(w, r, req.GameID)
	if !ok {
		return
	}
	correct, accepted := sess.Game.SelectAnswer(req.OptionIndex)
	q, _ := sess.Game.Current()
	_ = json.NewEncoder(w).Encode(quizAnswerRes{
		Accepted:      accepted,
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Score:         sess.Game.Snapshot().Score,
	})
}

// -----------------------------------------------------------------------------
// /daily/advance

// handleAdvance moves the daily run forward; on the last question it
// persists the result (first submission of the day stands).
func (d *dailyServer) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req quizAdvanceReq
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, ok := d.session(w, r, req.GameID)
	if !ok {
		return
	}

	done, accepted := sess.Game.Advance()
	if !accepted {
		http.Error(w, `{"error":"question_not_revealed"}`, http.StatusConflict)
		return
	}
	if !done {
		q, idx := sess.Game.Current()
		view := questionViewOf(q, idx, sess.Game.Snapshot().TotalQuestions)
		_ = json.NewEncoder(w).Encode(quizAdvanceRes{Done: false, Question: &view})
		return
	}

	// The run is over: persist once and drop the session. Replays are
	// refused from the DB row, so nothing needs to stay in memory.
	res := sess.Game.Result()
	d.mu.Lock()
	finished := sess.Finished
	sess.Finished = true
	delete(d.sessions, sess.OwnerID+"|"+sess.Date)
	d.mu.Unlock()
	sess.Game.Close()
	if !finished {
		elapsed := int(time.Since(sess.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			OwnerID:    sess.OwnerID,
			Date:       sess.Date,
			Score:      res.Score,
			Total:      res.TotalQuestions,
			Percentage: res.Percentage,
			ElapsedMs:  elapsed,
		})
	}
	_ = json.NewEncoder(w).Encode(quizAdvanceRes{Done: true, Result: &res})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now().UTC())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
