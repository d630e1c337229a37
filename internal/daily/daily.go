// internal/daily/daily.go
//
// Daily challenge selection: everyone gets the same quiz questions on
// the same UTC day. The draw is HMAC(salt, YYYY-MM-DD) so it cannot be
// predicted without the server salt, yet is fully deterministic per day.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/HelderBalbino/cocktail-quiz/internal/catalog"
	"github.com/HelderBalbino/cocktail-quiz/internal/shuffle"
)

// QuestionCount is how many questions a daily challenge draws.
const QuestionCount = 5

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives a deterministic RNG seed for a date from HMAC(salt, date).
func Seed(date time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]) & (1<<63 - 1))
}

// QuestionsFor draws the day's question set from the bank. Every caller
// with the same salt, date, and bank gets the same questions in the
// same order.
func QuestionsFor(date time.Time, salt string, bank []catalog.Question) []catalog.Question {
	n := QuestionCount
	if n > len(bank) {
		n = len(bank)
	}
	return shuffle.Take(shuffle.Seeded(Seed(date, salt)), bank, n)
}
