// internal/catalog/catalog.go
//
// Loading and validation of the game suite's reference data.
//
// Responsibilities:
//   - Load the question bank, ingredient catalog, recipe bank, and memory
//     card faces from environment-provided JSON files or fall back to the
//     embedded defaults.
//   - Resolve recipe ingredient references against the ingredient catalog.
//   - Validate integrity up front: a broken reference item is a startup
//     failure with an identifying message, never a silently corrupt game.
//
// Environment variables:
//   CATALOG_QUESTIONS_FILE=/path/to/questions.json
//   CATALOG_INGREDIENTS_FILE=/path/to/ingredients.json
//   CATALOG_RECIPES_FILE=/path/to/recipes.json
//   CATALOG_CARDS_FILE=/path/to/cards.json
//
// Constraints:
//   • Every collection must be non-empty.
//   • Every question has 2+ options and an in-bounds correct index.
//   • Every recipe resolves all its ingredient ids and has at least
//     one essential ingredient.
//   • Card faces cover every difficulty's pair requirement.
//   • Initialization runs once (sync.Once).

package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

//go:embed data/questions.json
var embeddedQuestions []byte

//go:embed data/ingredients.json
var embeddedIngredients []byte

//go:embed data/recipes.json
var embeddedRecipes []byte

//go:embed data/cards.json
var embeddedCards []byte

var (
	initOnce    sync.Once
	initialErr  error
	questions   []Question
	ingredients []Ingredient
	byID        map[string]Ingredient
	recipes     []Recipe
	faces       []CardFace
)

// Init loads and validates all reference data exactly once.
func Init() error {
	initOnce.Do(func() {
		initialErr = load()
	})
	return initialErr
}

func load() error {
	q, err := loadJSON[[]Question]("CATALOG_QUESTIONS_FILE", embeddedQuestions)
	if err != nil {
		return fmt.Errorf("catalog: questions: %w", err)
	}
	ing, err := loadJSON[[]Ingredient]("CATALOG_INGREDIENTS_FILE", embeddedIngredients)
	if err != nil {
		return fmt.Errorf("catalog: ingredients: %w", err)
	}
	rec, err := loadJSON[[]Recipe]("CATALOG_RECIPES_FILE", embeddedRecipes)
	if err != nil {
		return fmt.Errorf("catalog: recipes: %w", err)
	}
	cf, err := loadJSON[[]CardFace]("CATALOG_CARDS_FILE", embeddedCards)
	if err != nil {
		return fmt.Errorf("catalog: cards: %w", err)
	}

	idx, err := validateIngredients(ing)
	if err != nil {
		return err
	}
	if err := validateQuestions(q); err != nil {
		return err
	}
	if err := resolveRecipes(rec, idx); err != nil {
		return err
	}
	if err := validateCards(cf); err != nil {
		return err
	}

	questions, ingredients, byID, recipes, faces = q, ing, idx, rec, cf
	return nil
}

// loadJSON reads a collection from the env-named file if set,
// otherwise decodes the embedded default.
func loadJSON[T any](envKey string, embedded []byte) (T, error) {
	var out T
	data := embedded
	if path := os.Getenv(envKey); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return out, err
		}
		data = b
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

func validateIngredients(ing []Ingredient) (map[string]Ingredient, error) {
	if len(ing) == 0 {
		return nil, fmt.Errorf("catalog: ingredient catalog is empty")
	}
	idx := make(map[string]Ingredient, len(ing))
	for _, i := range ing {
		if i.ID == "" || i.Name == "" {
			return nil, fmt.Errorf("catalog: ingredient %q: missing id or name", i.ID)
		}
		if _, dup := idx[i.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate ingredient id %q", i.ID)
		}
		idx[i.ID] = i
	}
	return idx, nil
}

func validateQuestions(q []Question) error {
	if len(q) == 0 {
		return fmt.Errorf("catalog: question bank is empty")
	}
	seen := map[int]bool{}
	for _, question := range q {
		if seen[question.ID] {
			return fmt.Errorf("catalog: duplicate question id %d", question.ID)
		}
		seen[question.ID] = true
		if len(question.Options) < 2 {
			return fmt.Errorf("catalog: question %d: needs at least 2 options", question.ID)
		}
		if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
			return fmt.Errorf("catalog: question %d: correct answer index %d out of bounds",
				question.ID, question.CorrectAnswer)
		}
	}
	return nil
}

// resolveRecipes links each recipe ingredient to the catalog entry and
// enforces the "at least one essential" contract.
func resolveRecipes(rec []Recipe, idx map[string]Ingredient) error {
	if len(rec) == 0 {
		return fmt.Errorf("catalog: recipe bank is empty")
	}
	seen := map[string]bool{}
	for ri, r := range rec {
		if seen[r.ID] {
			return fmt.Errorf("catalog: duplicate recipe id %q", r.ID)
		}
		seen[r.ID] = true
		inRecipe := map[string]bool{}
		essentials := 0
		for ii, item := range r.Ingredients {
			ing, ok := idx[item.IngredientID]
			if !ok {
				return fmt.Errorf("catalog: recipe %q: unknown ingredient id %q", r.ID, item.IngredientID)
			}
			if inRecipe[item.IngredientID] {
				return fmt.Errorf("catalog: recipe %q: ingredient %q listed twice", r.ID, item.IngredientID)
			}
			inRecipe[item.IngredientID] = true
			rec[ri].Ingredients[ii].Ingredient = ing
			if item.Essential {
				essentials++
			}
		}
		if essentials == 0 {
			return fmt.Errorf("catalog: recipe %q: has no essential ingredients", r.ID)
		}
	}
	return nil
}

// validateCards checks face uniqueness and that every difficulty tier
// can draw enough distinct faces for its board.
func validateCards(cf []CardFace) error {
	if len(cf) == 0 {
		return fmt.Errorf("catalog: card face list is empty")
	}
	seen := map[string]bool{}
	perType := map[CardType]int{}
	for _, f := range cf {
		if seen[f.ID] {
			return fmt.Errorf("catalog: duplicate card face id %q", f.ID)
		}
		seen[f.ID] = true
		switch f.Type {
		case CardIngredient, CardCocktail, CardGlass:
			perType[f.Type]++
		default:
			return fmt.Errorf("catalog: card face %q: unknown type %q", f.ID, f.Type)
		}
	}
	for _, d := range Difficulties() {
		cfg, _ := ConfigFor(d)
		available := 0
		for _, t := range cfg.CardTypes {
			available += perType[t]
		}
		if available < cfg.GridSize/2 {
			return fmt.Errorf("catalog: difficulty %q needs %d faces, only %d available",
				d, cfg.GridSize/2, available)
		}
	}
	return nil
}

// ------------------------------ accessors ----------------------------------

// Questions returns the full question bank.
func Questions() []Question { return questions }

// Ingredients returns the full ingredient catalog.
func Ingredients() []Ingredient { return ingredients }

// IngredientByID looks up one ingredient.
func IngredientByID(id string) (Ingredient, bool) {
	i, ok := byID[id]
	return i, ok
}

// Recipes returns the full recipe bank with resolved ingredients.
func Recipes() []Recipe { return recipes }

// Faces returns the card faces whose type is in types.
// With no arguments it returns every face.
func Faces(types ...CardType) []CardFace {
	if len(types) == 0 {
		return faces
	}
	want := map[CardType]bool{}
	for _, t := range types {
		want[t] = true
	}
	var out []CardFace
	for _, f := range faces {
		if want[f.Type] {
			out = append(out, f)
		}
	}
	return out
}

// Stats returns collection sizes: questions, ingredients, recipes, faces.
func Stats() (int, int, int, int) {
	return len(questions), len(ingredients), len(recipes), len(faces)
}
