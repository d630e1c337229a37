// internal/catalog/types.go
//
// Reference-data types for the cocktail game suite.
// Defines:
//   - Question: one multiple-choice quiz question.
//   - Ingredient / Recipe: the cocktail-builder bank.
//   - CardFace / CardType: faces the memory game builds pairs from.
//   - Difficulty / DifficultyConfig: memory-game board parameters.
//
// Everything here is immutable after Init; engines only ever read it.

package catalog

// Question is a single quiz question. CorrectAnswer indexes into Options.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Ingredient is a selectable item in the cocktail builder.
type Ingredient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Emoji    string `json:"emoji"`
}

// RecipeIngredient ties an ingredient into a recipe with its measure.
// Essential ingredients are the ones scored in builder mode; the rest
// are garnish-grade and neither rewarded nor penalized.
type RecipeIngredient struct {
	IngredientID string `json:"ingredientId"`
	Amount       string `json:"amount"`
	Essential    bool   `json:"essential"`

	// Ingredient is resolved from IngredientID during Init.
	Ingredient Ingredient `json:"-"`
}

// Recipe is one cocktail the builder asks the player to assemble.
type Recipe struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Emoji        string             `json:"emoji"`
	Description  string             `json:"description"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions string             `json:"instructions"`
	Glassware    string             `json:"glassware"`
	Difficulty   string             `json:"difficulty"`
}

// EssentialIDs returns the ids of the recipe's essential ingredients.
func (r Recipe) EssentialIDs() []string {
	var out []string
	for _, ri := range r.Ingredients {
		if ri.Essential {
			out = append(out, ri.IngredientID)
		}
	}
	return out
}

// Contains reports whether the recipe uses the ingredient at all,
// essential or not.
func (r Recipe) Contains(ingredientID string) bool {
	for _, ri := range r.Ingredients {
		if ri.IngredientID == ingredientID {
			return true
		}
	}
	return false
}

// CardType classifies a memory-card face.
type CardType string

const (
	CardIngredient CardType = "ingredient"
	CardCocktail   CardType = "cocktail"
	CardGlass      CardType = "glass"
)

// CardFace is one face the memory game can build a matched pair from.
// The emoji is the guaranteed visual; cocktail faces may later be
// enhanced with a fetched image, which is strictly optional.
type CardFace struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Emoji string   `json:"emoji"`
	Type  CardType `json:"type"`
}

// Difficulty selects a memory-game board configuration.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// DifficultyConfig holds the board parameters for one difficulty tier.
type DifficultyConfig struct {
	GridSize    int        // total cards; always even
	Rows        int
	Cols        int
	TimeLimit   int        // seconds
	CardTypes   []CardType // face pool the board draws from
	Multiplier  float64    // score multiplier for the tier
	Name        string
	Description string
}

// difficultyConfigs mirrors the three tiers of the original game.
var difficultyConfigs = map[Difficulty]DifficultyConfig{
	Easy: {
		GridSize: 12, Rows: 3, Cols: 4, TimeLimit: 120,
		CardTypes:   []CardType{CardIngredient},
		Multiplier:  1,
		Name:        "Easy",
		Description: "3×4 grid • Ingredients only • 2 minutes",
	},
	Medium: {
		GridSize: 16, Rows: 4, Cols: 4, TimeLimit: 180,
		CardTypes:   []CardType{CardIngredient, CardCocktail},
		Multiplier:  1.5,
		Name:        "Medium",
		Description: "4×4 grid • Ingredients & Cocktails • 3 minutes",
	},
	Hard: {
		GridSize: 20, Rows: 4, Cols: 5, TimeLimit: 240,
		CardTypes:   []CardType{CardIngredient, CardCocktail, CardGlass},
		Multiplier:  2,
		Name:        "Hard",
		Description: "4×5 grid • All card types • 4 minutes",
	},
}

// ConfigFor returns the board configuration for a difficulty.
func ConfigFor(d Difficulty) (DifficultyConfig, bool) {
	cfg, ok := difficultyConfigs[d]
	return cfg, ok
}

// Difficulties lists the supported tiers in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}
