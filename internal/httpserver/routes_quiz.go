// internal/httpserver/routes_quiz.go
//
// HTTP routes for quiz mode, under /quiz:
//   - POST /quiz/new     → start a session over a fresh shuffle
//   - GET  /quiz/state   → snapshot of a running session
//   - POST /quiz/answer  → lock in an answer for the current question
//   - POST /quiz/advance → move to the next question, or finish
//   - GET  /quiz/result  → graded summary of a finished session
//
// The per-question countdown lives server-side in the engine; a question
// left unanswered when it fires is revealed with no score. The countdown
// length comes from the player's saved settings.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/HelderBalbino/cocktail-quiz/internal/catalog"
	"github.com/HelderBalbino/cocktail-quiz/internal/progress"
	"github.com/HelderBalbino/cocktail-quiz/internal/quiz"
	"github.com/HelderBalbino/cocktail-quiz/internal/shuffle"
)

// mountQuiz registers all /quiz routes.
func (s *Server) mountQuiz(r chi.Router) {
	r.Route("/quiz", func(r chi.Router) {
		r.Post("/new", s.handleQuizNew)
		r.Get("/state", s.handleQuizState)
		r.Post("/answer", s.handleQuizAnswer)
		r.Post("/advance", s.handleQuizAdvance)
		r.Get("/result", s.handleQuizResult)
	})
}

// questionView is the client-facing question shape. The correct index and
// explanation stay hidden until the question is resolved.
type questionView struct {
	Index    int      `json:"questionIndex"`
	Total    int      `json:"totalQuestions"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func questionViewOf(q catalog.Question, idx, total int) questionView {
	return questionView{Index: idx, Total: total, Question: q.Question, Options: q.Options}
}

// quizNewReq allows untimed play; TimeLimit overrides the saved setting
// when positive.
type quizNewReq struct {
	Timed     *bool `json:"timed,omitempty"`
	TimeLimit int   `json:"timeLimit,omitempty"` // seconds per question
}
type quizNewRes struct {
	GameID    string       `json:"gameId"`
	TimeLimit int          `json:"timeLimit"` // 0 = untimed
	Question  questionView `json:"question"`
}

// handleQuizNew starts a quiz session over a fresh shuffle of the bank.
func (s *Server) handleQuizNew(w http.ResponseWriter, r *http.Request) {
	var req quizNewReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	secs := s.settings.Get(r.Context(), s.ownerID(w, r)).TimerDuration
	if req.TimeLimit > 0 {
		secs = req.TimeLimit
	}
	if req.Timed != nil && !*req.Timed {
		secs = 0
	}

	g := quiz.New(catalog.Questions(), shuffle.New(), time.Duration(secs)*time.Second)
	if err := s.quizzes.Save(r.Context(), g.ID, g); err != nil {
		log.Error().Err(err).Msg("save quiz session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	q, idx := g.Current()
	_ = json.NewEncoder(w).Encode(quizNewRes{
		GameID:    g.ID,
		TimeLimit: secs,
		Question:  questionViewOf(q, idx, len(catalog.Questions())),
	})
}

// handleQuizState returns a snapshot of a running session.
func (s *Server) handleQuizState(w http.ResponseWriter, r *http.Request) {
	g, ok := s.quizGame(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(g.Snapshot())
}

type quizAnswerReq struct {
	GameID      string `json:"gameId"`
	OptionIndex int    `json:"optionIndex"`
}
type quizAnswerRes struct {
	Accepted      bool   `json:"accepted"`
	Correct       bool   `json:"correct"`
	CorrectAnswer int    `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
	Score         int    `json:"score"`
}

// handleQuizAnswer locks in an answer. If the countdown already fired,
// accepted=false and the reveal from the timeout stands.
func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req quizAnswerReq
	if !decodeJSON(w, r, &req) {
		return
	}
	g, ok := s.quizGame(w, r, req.GameID)
	if !ok {
		return
	}

	correct, accepted := g.SelectAnswer(req.OptionIndex)
	q, _ := g.Current()
	_ = json.NewEncoder(w).Encode(quizAnswerRes{
		Accepted:      accepted,
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Score:         g.Snapshot().Score,
	})
}

type quizAdvanceReq struct {
	GameID string `json:"gameId"`
}
type quizAdvanceRes struct {
	Done     bool          `json:"done"`
	Question *questionView `json:"question,omitempty"`
	Result   *quiz.Result  `json:"result,omitempty"`
}

// handleQuizAdvance moves past a revealed question. On the last question it
// finalizes the session and records the result.
func (s *Server) handleQuizAdvance(w http.ResponseWriter, r *http.Request) {
	var req quizAdvanceReq
	if !decodeJSON(w, r, &req) {
		return
	}
	g, ok := s.quizGame(w, r, req.GameID)
	if !ok {
		return
	}

	done, accepted := g.Advance()
	if !accepted {
		http.Error(w, `{"error":"question_not_revealed"}`, http.StatusConflict)
		return
	}
	if !done {
		q, idx := g.Current()
		view := questionViewOf(q, idx, g.Snapshot().TotalQuestions)
		_ = json.NewEncoder(w).Encode(quizAdvanceRes{Done: false, Question: &view})
		return
	}

	res := g.Result()
	s.recordResult(r.Context(), g.ID, progress.Entry{
		OwnerID:    s.ownerID(w, r),
		Game:       progress.GameQuiz,
		Score:      res.Score,
		MaxScore:   res.TotalQuestions,
		Percentage: res.Percentage,
	})
	_ = json.NewEncoder(w).Encode(quizAdvanceRes{Done: true, Result: &res})
}

// handleQuizResult returns the graded summary of a finished session.
func (s *Server) handleQuizResult(w http.ResponseWriter, r *http.Request) {
	g, ok := s.quizGame(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	if !g.Complete() {
		http.Error(w, `{"error":"not_finished"}`, http.StatusConflict)
		return
	}
	_ = json.NewEncoder(w).Encode(g.Result())
}

// quizGame loads a quiz session or writes a 404.
func (s *Server) quizGame(w http.ResponseWriter, r *http.Request, id string) (*quiz.Game, bool) {
	g, err := s.quizzes.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return g, true
}
