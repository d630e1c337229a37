// internal/daily/store.go
//
// SQLite persistence for daily challenge results: one row per player
// per day (UNIQUE(owner_id, date)), plus the day's leaderboard.

package daily

import (
	"context"
	"database/sql"
)

// Result is a single player's attempt at the daily challenge.
type Result struct {
	OwnerID    string `json:"-"`
	Date       string `json:"date"` // YYYY-MM-DD (UTC cutoff)
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	ElapsedMs  int    `json:"elapsedMs"`
}

// Store reads and writes daily_results rows.
type Store struct{ db *sql.DB }

// NewStore wraps a DB handle.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the owner has a result for the date.
func (s *Store) AlreadyPlayed(ctx context.Context, ownerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE owner_id=? AND date=?`,
		ownerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records an attempt. A second attempt for the same day is
// silently ignored (first result stands).
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results (owner_id, date, score, total, percentage, elapsed_ms)
        VALUES (?,?,?,?,?,?)`,
		r.OwnerID, r.Date, r.Score, r.Total, r.Percentage, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard line.
type LBRow struct {
	OwnerID   string `json:"player"`
	Score     int    `json:"score"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard returns the day's top players: best score first, ties
// broken by speed, then by submission time.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT owner_id, score, elapsed_ms
        FROM daily_results
        WHERE date=?
        ORDER BY score DESC, elapsed_ms ASC, created_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.OwnerID, &r.Score, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
