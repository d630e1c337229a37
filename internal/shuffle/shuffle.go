// internal/shuffle/shuffle.go
//
// Fisher–Yates shuffling for the game engines.
// Responsibilities:
//   - Produce a uniformly random ordering of a reference collection
//     without mutating the source slice.
//   - Keep the random source injectable so engine tests can be seeded
//     while production code uses a time-seeded source.
//
// Every engine draws its item sequence (questions, recipes, card faces)
// through this package, so the "shuffle is a permutation" property holds
// suite-wide.

package shuffle

import (
	"math/rand"
	"time"
)

// Rand is the minimal random source the shuffler needs.
// *rand.Rand satisfies it; tests may pass a seeded instance.
type Rand interface {
	// Intn returns a uniform value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// New returns a time-seeded source for production use.
func New() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Seeded returns a deterministic source, used by tests and the
// daily challenge (same seed → same draw for every player).
func Seeded(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// Of returns a new slice with the elements of items in random order.
// The input is never mutated; empty and single-element inputs come
// back as (copied) no-ops.
func Of[T any](r Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Take shuffles items and returns at most n of them.
func Take[T any](r Rand, items []T, n int) []T {
	out := Of(r, items)
	if n < len(out) {
		out = out[:n]
	}
	return out
}
