package catalog

import "testing"

func TestInitEmbeddedData(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	q, i, r, f := Stats()
	if q == 0 || i == 0 || r == 0 || f == 0 {
		t.Fatalf("empty collection after Init: questions=%d ingredients=%d recipes=%d faces=%d", q, i, r, f)
	}
}

func TestRecipesAreResolved(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for _, r := range Recipes() {
		if len(r.EssentialIDs()) == 0 {
			t.Errorf("recipe %q has no essential ingredients", r.ID)
		}
		for _, ri := range r.Ingredients {
			if ri.Ingredient.ID != ri.IngredientID {
				t.Errorf("recipe %q: ingredient %q not resolved", r.ID, ri.IngredientID)
			}
			if _, ok := IngredientByID(ri.IngredientID); !ok {
				t.Errorf("recipe %q: ingredient %q missing from catalog", r.ID, ri.IngredientID)
			}
		}
	}
}

func TestFacesCoverEveryDifficulty(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for _, d := range Difficulties() {
		cfg, ok := ConfigFor(d)
		if !ok {
			t.Fatalf("no config for difficulty %q", d)
		}
		if cfg.GridSize%2 != 0 {
			t.Errorf("difficulty %q: odd grid size %d", d, cfg.GridSize)
		}
		if got := len(Faces(cfg.CardTypes...)); got < cfg.GridSize/2 {
			t.Errorf("difficulty %q: %d faces available, need %d", d, got, cfg.GridSize/2)
		}
	}
}

func TestValidateQuestionsRejectsBadIndex(t *testing.T) {
	bad := []Question{{ID: 1, Question: "?", Options: []string{"a", "b"}, CorrectAnswer: 2}}
	if err := validateQuestions(bad); err == nil {
		t.Error("out-of-bounds correct answer should fail validation")
	}
}

func TestResolveRecipesRejectsUnknownIngredient(t *testing.T) {
	idx := map[string]Ingredient{"gin": {ID: "gin", Name: "Gin"}}
	bad := []Recipe{{
		ID: "ghost",
		Ingredients: []RecipeIngredient{
			{IngredientID: "ectoplasm", Essential: true},
		},
	}}
	if err := resolveRecipes(bad, idx); err == nil {
		t.Error("unknown ingredient id should fail validation")
	}
}

func TestResolveRecipesRejectsNoEssentials(t *testing.T) {
	idx := map[string]Ingredient{"olive": {ID: "olive", Name: "Olive"}}
	bad := []Recipe{{
		ID: "garnish-only",
		Ingredients: []RecipeIngredient{
			{IngredientID: "olive", Essential: false},
		},
	}}
	if err := resolveRecipes(bad, idx); err == nil {
		t.Error("recipe without essentials should fail validation")
	}
}
