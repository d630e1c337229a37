// internal/progress/progress.go
//
// Finished-session history persisted in SQLite.
// Responsibilities:
//   - Record one row per completed quiz/builder/memory session.
//   - Aggregate a per-game summary (plays, best score, best percentage).
//   - Transfer anonymous history to an account on signup/login.
//
// Recording is best-effort from the transport layer's point of view:
// handlers log a warning on failure and still return the result.

package progress

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
)

// Game identifies which engine produced a result row.
type Game string

const (
	GameQuiz    Game = "quiz"
	GameBuilder Game = "builder"
	GameMemory  Game = "memory"
)

// Entry is one finished session.
type Entry struct {
	OwnerID    string `json:"-"`
	Game       Game   `json:"game"`
	Score      int    `json:"score"`
	MaxScore   int    `json:"maxScore"`
	Percentage int    `json:"percentage"`
	Detail     string `json:"detail,omitempty"` // game-specific: stars, streak, ...
}

// GameSummary aggregates one player's history for a single game.
type GameSummary struct {
	Played         int    `json:"played"`
	BestScore      int    `json:"bestScore"`
	BestPercentage int    `json:"bestPercentage"`
	LastPlayed     string `json:"lastPlayed,omitempty"`
}

// Summary is the full per-player aggregate, keyed by game name.
type Summary struct {
	TotalPlayed int                  `json:"totalPlayed"`
	Games       map[Game]GameSummary `json:"games"`
	Recent      []Entry              `json:"recent"`
}

// Store reads and writes result rows.
type Store struct{ db *sql.DB }

// NewStore wraps a DB handle.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts one finished session.
func (s *Store) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO game_results (owner_id, game, score, max_score, percentage, detail, created_at)
        VALUES (?,?,?,?,?,?,?)`,
		e.OwnerID, string(e.Game), e.Score, e.MaxScore, e.Percentage, e.Detail,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// Summarize builds the per-game aggregate plus the ten most recent rows.
func (s *Store) Summarize(ctx context.Context, ownerID string) (Summary, error) {
	out := Summary{Games: map[Game]GameSummary{}, Recent: []Entry{}}

	rows, err := s.db.QueryContext(ctx, `
        SELECT game, COUNT(1), MAX(score), MAX(percentage), MAX(created_at)
        FROM game_results
        WHERE owner_id=?
        GROUP BY game`, ownerID)
	if err != nil {
		return out, err
	}
	defer rows.Close()
	for rows.Next() {
		var game string
		var gs GameSummary
		if err := rows.Scan(&game, &gs.Played, &gs.BestScore, &gs.BestPercentage, &gs.LastPlayed); err != nil {
			return out, err
		}
		out.Games[Game(game)] = gs
		out.TotalPlayed += gs.Played
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	recent, err := s.db.QueryContext(ctx, `
        SELECT game, score, max_score, percentage, detail
        FROM game_results
        WHERE owner_id=?
        ORDER BY created_at DESC, id DESC
        LIMIT 10`, ownerID)
	if err != nil {
		return out, err
	}
	defer recent.Close()
	for recent.Next() {
		var e Entry
		var game string
		if err := recent.Scan(&game, &e.Score, &e.MaxScore, &e.Percentage, &e.Detail); err != nil {
			return out, err
		}
		e.Game = Game(game)
		out.Recent = append(out.Recent, e)
	}
	return out, recent.Err()
}

// Claim reassigns anonymous history rows to an account.
func (s *Store) Claim(ctx context.Context, anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE game_results SET owner_id=? WHERE owner_id=?`, userID, anonID); err != nil {
		log.Warn().Err(err).Msg("claim anon results")
	}
}
