// internal/settings/settings.go
//
// Per-player preferences persisted in SQLite.
// Responsibilities:
//   - Defaults: dark theme, sound on, medium difficulty, 20s quiz timer.
//   - Load/store a settings row keyed by owner id (account or anon cookie).
//   - Reads never fail the caller: any DB problem logs a warning and
//     falls back to defaults. Settings are a convenience, not state.

package settings

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/HelderBalbino/cocktail-quiz/internal/catalog"
)

// Settings is the full preference set for one player.
type Settings struct {
	Theme         string             `json:"theme"` // "dark" | "light"
	SoundEnabled  bool               `json:"soundEnabled"`
	Difficulty    catalog.Difficulty `json:"difficulty"`    // memory-game default
	TimerDuration int                `json:"timerDuration"` // quiz seconds per question
}

// Defaults returns the out-of-the-box settings.
func Defaults() Settings {
	return Settings{
		Theme:         "dark",
		SoundEnabled:  true,
		Difficulty:    catalog.Medium,
		TimerDuration: 20,
	}
}

// normalize clamps invalid fields back to their defaults so a bad
// client payload can never persist an unusable row.
func (s Settings) normalize() Settings {
	def := Defaults()
	if s.Theme != "dark" && s.Theme != "light" {
		s.Theme = def.Theme
	}
	if _, ok := catalog.ConfigFor(s.Difficulty); !ok {
		s.Difficulty = def.Difficulty
	}
	if s.TimerDuration < 5 || s.TimerDuration > 120 {
		s.TimerDuration = def.TimerDuration
	}
	return s
}

// Store reads and writes player settings rows.
type Store struct{ db *sql.DB }

// NewStore wraps a DB handle.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Get loads settings for an owner; missing rows and DB errors both
// yield Defaults().
func (s *Store) Get(ctx context.Context, ownerID string) Settings {
	row := s.db.QueryRowContext(ctx, `
        SELECT theme, sound_enabled, difficulty, timer_duration
        FROM player_settings WHERE owner_id=?`, ownerID)

	var out Settings
	var sound int
	var diff string
	if err := row.Scan(&out.Theme, &sound, &diff, &out.TimerDuration); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warn().Err(err).Str("owner", ownerID).Msg("load settings")
		}
		return Defaults()
	}
	out.SoundEnabled = sound != 0
	out.Difficulty = catalog.Difficulty(diff)
	return out.normalize()
}

// Put upserts settings for an owner.
func (s *Store) Put(ctx context.Context, ownerID string, in Settings) (Settings, error) {
	in = in.normalize()
	sound := 0
	if in.SoundEnabled {
		sound = 1
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO player_settings (owner_id, theme, sound_enabled, difficulty, timer_duration, updated_at)
        VALUES (?,?,?,?,?,?)
        ON CONFLICT(owner_id) DO UPDATE SET
            theme=excluded.theme,
            sound_enabled=excluded.sound_enabled,
            difficulty=excluded.difficulty,
            timer_duration=excluded.timer_duration,
            updated_at=excluded.updated_at`,
		ownerID, in.Theme, sound, string(in.Difficulty), in.TimerDuration,
		time.Now().UTC().Format(time.RFC3339))
	return in, err
}

// Claim reassigns anonymous settings to a freshly authenticated account.
// If the account already has a row, the anon row is simply dropped.
func (s *Store) Claim(ctx context.Context, anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	res, err := s.db.ExecContext(ctx, `
        UPDATE player_settings SET owner_id=? WHERE owner_id=?
        AND NOT EXISTS (SELECT 1 FROM player_settings WHERE owner_id=?)`,
		userID, anonID, userID)
	if err != nil {
		log.Warn().Err(err).Msg("claim anon settings")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM player_settings WHERE owner_id=?`, anonID)
	}
}
