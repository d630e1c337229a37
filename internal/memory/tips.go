// internal/memory/tips.go
//
// Pre-game tips shown on the memory board. Purely cosmetic.

package memory

import "github.com/HelderBalbino/cocktail-quiz/internal/shuffle"

var tips = []string{
	"💡 Focus on the corners and edges first - they're easier to remember!",
	"🧠 Try to create mental patterns or stories to remember card positions.",
	"⚡ Take a moment to scan the board before making your first move.",
	"🎯 Look for distinctive emojis that stand out from the rest.",
	"🔄 If you find one card, try to remember where you saw its pair earlier.",
	"⏰ Don't rush - accuracy is more important than speed.",
	"🌟 Practice with easier difficulties to build your memory skills.",
	"🎨 Group similar card types together in your mind for better recall.",
}

// Tip picks one random tip.
func Tip(r shuffle.Rand) string {
	return tips[r.Intn(len(tips))]
}
