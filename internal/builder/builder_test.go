package builder

import (
	"testing"

	"github.com/HelderBalbino/cocktail-quiz/internal/catalog"
	"github.com/HelderBalbino/cocktail-quiz/internal/shuffle"
)

func ing(id string) catalog.Ingredient {
	return catalog.Ingredient{ID: id, Name: id, Category: "spirit"}
}

// testRecipe has essentials {a, b, c} and one non-essential d.
func testRecipe() catalog.Recipe {
	return catalog.Recipe{
		ID:   "test",
		Name: "Test",
		Ingredients: []catalog.RecipeIngredient{
			{IngredientID: "a", Essential: true, Ingredient: ing("a")},
			{IngredientID: "b", Essential: true, Ingredient: ing("b")},
			{IngredientID: "c", Essential: true, Ingredient: ing("c")},
			{IngredientID: "d", Essential: false, Ingredient: ing("d")},
		},
	}
}

func TestCheckScoringExample(t *testing.T) {
	// Selecting {a, b, e} where e is foreign: 2 essentials, 1 wrong,
	// score = max(0, 20-5) = 15.
	g := New([]catalog.Recipe{testRecipe()}, shuffle.Seeded(1))
	g.Select(ing("a"))
	g.Select(ing("b"))
	g.Select(ing("e"))

	report, accepted := g.Check()
	if !accepted {
		t.Fatal("check should be accepted")
	}
	if report.CorrectSelected != 2 || report.WrongSelected != 1 {
		t.Errorf("counts = %d correct, %d wrong; want 2, 1",
			report.CorrectSelected, report.WrongSelected)
	}
	if report.Score != 15 {
		t.Errorf("score = %d, want 15", report.Score)
	}
	if report.MaxScore != 30 {
		t.Errorf("max score = %d, want 30", report.MaxScore)
	}
}

func TestNonEssentialInRecipeIsNeutral(t *testing.T) {
	g := New([]catalog.Recipe{testRecipe()}, shuffle.Seeded(1))
	g.Select(ing("a"))
	g.Select(ing("b"))
	g.Select(ing("c"))
	g.Select(ing("d")) // in recipe, non-essential

	report, _ := g.Check()
	if report.Score != 30 {
		t.Errorf("score = %d, want full 30 (d is neither rewarded nor penalized)", report.Score)
	}
	if report.WrongSelected != 0 {
		t.Errorf("wrongSelected = %d, want 0", report.WrongSelected)
	}
}

func TestScoreFloorsAtZero(t *testing.T) {
	g := New([]catalog.Recipe{testRecipe()}, shuffle.Seeded(1))
	for _, id := range []string{"x1", "x2", "x3", "x4", "x5"} {
		g.Select(ing(id))
	}
	report, _ := g.Check()
	if report.Score != 0 {
		t.Errorf("score = %d, want 0 floor", report.Score)
	}
}

func TestSelectIsSetSemantics(t *testing.T) {
	g := New([]catalog.Recipe{testRecipe()}, shuffle.Seeded(1))
	if !g.Select(ing("a")) {
		t.Fatal("first select should be accepted")
	}
	if g.Select(ing("a")) {
		t.Error("re-selecting the same id must be a no-op")
	}
	if n := len(g.Snapshot().Selected); n != 1 {
		t.Errorf("selection size = %d, want 1", n)
	}
}

func TestRemove(t *testing.T) {
	g := New([]catalog.Recipe{testRecipe()}, shuffle.Seeded(1))
	g.Select(ing("a"))
	if !g.Remove("a") {
		t.Error("removing a selected id should be accepted")
	}
	if g.Remove("a") {
		t.Error("removing an absent id must be a no-op")
	}
}

func TestSelectAfterCheckIsNoOp(t *testing.T) {
	g := New([]catalog.Recipe{testRecipe()}, shuffle.Seeded(1))
	g.Select(ing("a"))
	g.Check()
	if g.Select(ing("b")) {
		t.Error("select after check must be a no-op")
	}
	if g.Remove("a") {
		t.Error("remove after check must be a no-op")
	}
}

func TestStreakRequiresExactEssentialSet(t *testing.T) {
	recipes := []catalog.Recipe{testRecipe(), testRecipe(), testRecipe()}
	g := New(recipes, shuffle.Seeded(1))

	// Round 1: exactly the essential set → streak 1.
	g.Select(ing("a"))
	g.Select(ing("b"))
	g.Select(ing("c"))
	report, _ := g.Check()
	if !report.Perfect || report.Streak != 1 {
		t.Fatalf("exact essential set: perfect=%v streak=%d, want true/1", report.Perfect, report.Streak)
	}
	g.Next()

	// Round 2: essentials plus the in-recipe non-essential d.
	// Full score, but not a perfect build — streak resets.
	g.Select(ing("a"))
	g.Select(ing("b"))
	g.Select(ing("c"))
	g.Select(ing("d"))
	report, _ = g.Check()
	if report.Score != 30 {
		t.Errorf("score = %d, want 30", report.Score)
	}
	if report.Perfect || report.Streak != 0 {
		t.Errorf("extra in-recipe pick: perfect=%v streak=%d, want false/0", report.Perfect, report.Streak)
	}
	g.Next()

	// Round 3: missing an essential also breaks perfection.
	g.Select(ing("a"))
	g.Select(ing("b"))
	report, _ = g.Check()
	if report.Perfect {
		t.Error("incomplete essential set must not count as perfect")
	}
}

func TestNextRequiresCheck(t *testing.T) {
	g := New([]catalog.Recipe{testRecipe(), testRecipe()}, shuffle.Seeded(1))
	if _, accepted := g.Next(); accepted {
		t.Error("next before check must be a no-op")
	}
	g.Select(ing("a"))
	g.Check()
	if done, accepted := g.Next(); done || !accepted {
		t.Errorf("next after check: done=%v accepted=%v, want false/true", done, accepted)
	}
	if n := len(g.Snapshot().Selected); n != 0 {
		t.Errorf("selection should be cleared on next, has %d", n)
	}
}

func TestDoubleCheckRecordsOneScore(t *testing.T) {
	g := New([]catalog.Recipe{testRecipe()}, shuffle.Seeded(1))
	g.Select(ing("a"))
	g.Check()
	if _, accepted := g.Check(); accepted {
		t.Error("second check must be a no-op")
	}
	done, _ := g.Next()
	if !done {
		t.Fatal("single-recipe session should finish")
	}
	res := g.Result()
	if res.Score != 10 {
		t.Errorf("total = %d, want 10 (one score entry)", res.Score)
	}
}

func TestResultAggregation(t *testing.T) {
	recipes := []catalog.Recipe{testRecipe(), testRecipe()}
	g := New(recipes, shuffle.Seeded(1))

	// Round 1 perfect: 30.
	g.Select(ing("a"))
	g.Select(ing("b"))
	g.Select(ing("c"))
	g.Check()
	g.Next()

	// Round 2: one essential, one foreign → 5.
	g.Select(ing("a"))
	g.Select(ing("zzz"))
	g.Check()
	done, _ := g.Next()
	if !done {
		t.Fatal("session should be complete")
	}

	res := g.Result()
	if res.Score != 35 {
		t.Errorf("total = %d, want 35", res.Score)
	}
	if res.MaxPossibleScore != 60 {
		t.Errorf("max possible = %d, want 60", res.MaxPossibleScore)
	}
	if res.Percentage != 58 {
		t.Errorf("percentage = %d, want 58", res.Percentage)
	}
	if res.PerfectCocktails != 1 {
		t.Errorf("perfect count = %d, want 1", res.PerfectCocktails)
	}
	if res.Message == "" {
		t.Error("result missing message")
	}
}

func TestOptionsHaveUniqueIDsAndAllRecipeIngredients(t *testing.T) {
	recipe := testRecipe()
	catalogIngredients := []catalog.Ingredient{}
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q", "r"} {
		catalogIngredients = append(catalogIngredients, ing(id))
	}

	g := New([]catalog.Recipe{recipe}, shuffle.Seeded(4))
	options := g.Options(catalogIngredients)

	seen := map[string]bool{}
	for _, o := range options {
		if seen[o.ID] {
			t.Fatalf("duplicate option id %q", o.ID)
		}
		seen[o.ID] = true
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		if !seen[id] {
			t.Errorf("recipe ingredient %q missing from options", id)
		}
	}
	// 4 recipe ingredients + 12 distractors from the 14 remaining.
	if len(options) != 16 {
		t.Errorf("option count = %d, want 16", len(options))
	}
}
