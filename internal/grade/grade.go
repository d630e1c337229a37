// internal/grade/grade.go
//
// Shared result formatting for all three game modes.
// Responsibilities:
//   - Map a score percentage onto a fixed five-band grade
//     (emoji + color tag + message) used by quiz results.
//   - Builder-specific three-band message.
//   - Memory-specific star messages (floors at one star: even a poor
//     run gets the encouragement line, never zero stars).
//
// Pure functions, no state, no errors. Thresholds and copy are part of
// the product and must not drift between modes.

package grade

// Grade is a qualitative rendering of a percentage score.
type Grade struct {
	Emoji    string `json:"emoji"`
	ColorTag string `json:"colorTag"`
	Message  string `json:"message"`
}

// Of maps a percentage (0–100) onto the five-band grading scale.
// Bands: >=90, >=80, >=70, >=60, below.
func Of(percentage int) Grade {
	switch {
	case percentage >= 90:
		return Grade{Emoji: "🍸", ColorTag: "emerald", Message: "Outstanding! You're a cocktail master!"}
	case percentage >= 80:
		return Grade{Emoji: "🥇", ColorTag: "green", Message: "Excellent work! You know your cocktails!"}
	case percentage >= 70:
		return Grade{Emoji: "🥈", ColorTag: "lime", Message: "Great job! You're well on your way!"}
	case percentage >= 60:
		return Grade{Emoji: "🥉", ColorTag: "amber", Message: "Good effort! Keep learning!"}
	default:
		return Grade{Emoji: "📚", ColorTag: "rose", Message: "Don't worry, practice makes perfect!"}
	}
}

// BuilderMessage is the three-band variant used by the cocktail builder.
func BuilderMessage(percentage int) string {
	switch {
	case percentage >= 80:
		return "Amazing! You're a natural mixologist!"
	case percentage >= 60:
		return "Great work! You're learning fast!"
	default:
		return "Keep practicing - every cocktail is a learning experience!"
	}
}

// StarMessage is the memory-match variant, keyed by star count (1–3).
func StarMessage(stars int) string {
	switch {
	case stars >= 3:
		return "Incredible! You have an amazing memory!"
	case stars == 2:
		return "Great job! Your memory skills are impressive!"
	default:
		return "Good effort! Keep practicing your memory skills."
	}
}
