package settings

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/HelderBalbino/cocktail-quiz/internal/catalog"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(`
        CREATE TABLE player_settings (
            owner_id       TEXT PRIMARY KEY,
            theme          TEXT NOT NULL,
            sound_enabled  INTEGER NOT NULL,
            difficulty     TEXT NOT NULL,
            timer_duration INTEGER NOT NULL,
            updated_at     TEXT NOT NULL
        );`); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

func TestGetMissingReturnsDefaults(t *testing.T) {
	s := NewStore(testDB(t))
	got := s.Get(context.Background(), "nobody")
	want := Defaults()
	if got != want {
		t.Errorf("got %+v, want defaults %+v", got, want)
	}
}

func TestPutThenGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testDB(t))

	in := Settings{Theme: "light", SoundEnabled: false, Difficulty: catalog.Hard, TimerDuration: 30}
	if _, err := s.Put(ctx, "p1", in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got := s.Get(ctx, "p1"); got != in {
		t.Errorf("round trip: got %+v, want %+v", got, in)
	}

	// Upsert replaces.
	in.TimerDuration = 45
	if _, err := s.Put(ctx, "p1", in); err != nil {
		t.Fatalf("Put update: %v", err)
	}
	if got := s.Get(ctx, "p1"); got.TimerDuration != 45 {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestPutNormalizesBadValues(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testDB(t))

	stored, err := s.Put(ctx, "p1", Settings{
		Theme:         "neon",
		Difficulty:    catalog.Difficulty("nightmare"),
		TimerDuration: 9999,
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	def := Defaults()
	if stored.Theme != def.Theme || stored.Difficulty != def.Difficulty || stored.TimerDuration != def.TimerDuration {
		t.Errorf("bad values not normalized: %+v", stored)
	}
}

func TestClaimMovesAnonRow(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testDB(t))

	in := Settings{Theme: "light", SoundEnabled: true, Difficulty: catalog.Easy, TimerDuration: 15}
	_, _ = s.Put(ctx, "anon-1", in)

	s.Claim(ctx, "anon-1", "user-1")
	if got := s.Get(ctx, "user-1"); got != in {
		t.Errorf("claimed settings: got %+v, want %+v", got, in)
	}
	if got := s.Get(ctx, "anon-1"); got != Defaults() {
		t.Errorf("anon row should be gone, got %+v", got)
	}
}

func TestClaimKeepsExistingAccountRow(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testDB(t))

	anon := Settings{Theme: "light", SoundEnabled: false, Difficulty: catalog.Easy, TimerDuration: 15}
	user := Settings{Theme: "dark", SoundEnabled: true, Difficulty: catalog.Hard, TimerDuration: 25}
	_, _ = s.Put(ctx, "anon-1", anon)
	_, _ = s.Put(ctx, "user-1", user)

	s.Claim(ctx, "anon-1", "user-1")
	if got := s.Get(ctx, "user-1"); got != user {
		t.Errorf("account settings must win: got %+v, want %+v", got, user)
	}
}
