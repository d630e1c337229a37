package progress

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(`
        CREATE TABLE game_results (
            id         INTEGER PRIMARY KEY AUTOINCREMENT,
            owner_id   TEXT NOT NULL,
            game       TEXT NOT NULL,
            score      INTEGER NOT NULL,
            max_score  INTEGER NOT NULL,
            percentage INTEGER NOT NULL,
            detail     TEXT NOT NULL DEFAULT '',
            created_at TEXT NOT NULL
        );`); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

func TestRecordAndSummarize(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testDB(t))

	rowsIn := []Entry{
		{OwnerID: "p1", Game: GameQuiz, Score: 8, MaxScore: 10, Percentage: 80},
		{OwnerID: "p1", Game: GameQuiz, Score: 10, MaxScore: 10, Percentage: 100},
		{OwnerID: "p1", Game: GameMemory, Score: 1280, MaxScore: 1500, Percentage: 100, Detail: "stars=2"},
		{OwnerID: "other", Game: GameQuiz, Score: 3, MaxScore: 10, Percentage: 30},
	}
	for _, e := range rowsIn {
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	sum, err := s.Summarize(ctx, "p1")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.TotalPlayed != 3 {
		t.Errorf("totalPlayed = %d, want 3", sum.TotalPlayed)
	}
	quiz := sum.Games[GameQuiz]
	if quiz.Played != 2 || quiz.BestScore != 10 || quiz.BestPercentage != 100 {
		t.Errorf("quiz summary = %+v", quiz)
	}
	mem := sum.Games[GameMemory]
	if mem.Played != 1 || mem.BestScore != 1280 {
		t.Errorf("memory summary = %+v", mem)
	}
	if _, ok := sum.Games[GameBuilder]; ok {
		t.Error("builder should be absent when never played")
	}
	if len(sum.Recent) != 3 {
		t.Errorf("recent rows = %d, want 3", len(sum.Recent))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := NewStore(testDB(t))
	sum, err := s.Summarize(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.TotalPlayed != 0 || len(sum.Games) != 0 || len(sum.Recent) != 0 {
		t.Errorf("empty summary should be zeroed: %+v", sum)
	}
}

func TestClaimMovesHistory(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testDB(t))

	_ = s.Record(ctx, Entry{OwnerID: "anon-1", Game: GameBuilder, Score: 35, MaxScore: 60, Percentage: 58})
	s.Claim(ctx, "anon-1", "user-1")

	if sum, _ := s.Summarize(ctx, "user-1"); sum.TotalPlayed != 1 {
		t.Errorf("claimed history missing: %+v", sum)
	}
	if sum, _ := s.Summarize(ctx, "anon-1"); sum.TotalPlayed != 0 {
		t.Errorf("anon history should be gone: %+v", sum)
	}
}
