// internal/scramble/scramble.go
//
// Randomized scrambling for the game.
// Used both to scramble the letters of the active word and to shuffle the
// word queue when a game starts or restarts.
//
// Algorithm:
//   For i in [0, n) draw j uniformly from the FULL range [0, n) and swap i/j.
//   This is not the shrinking-range Fisher–Yates shuffle, so permutations are
//   not equally likely. Kept as-is; a scramble equal to the input is possible
//   for short or repetitive words and is not re-rolled.

package scramble

import "lukechampine.com/frand"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// frandRNG delegates to the process-wide frand generator.
type frandRNG struct{}

func (frandRNG) Intn(n int) int { return frand.Intn(n) }

// Default is the process-wide random source.
var Default RNG = frandRNG{}

// Shuffle returns a scrambled copy of src. src is never mutated.
// A nil rng uses Default.
func Shuffle[T any](src []T, rng RNG) []T {
	if rng == nil {
		rng = Default
	}
	out := make([]T, len(src))
	copy(out, src)

	n := len(out)
	for i := 0; i < n; i++ {
		j := rng.Intn(n)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Word scrambles the characters of w and reassembles them into a string.
func Word(w string, rng RNG) string {
	return string(Shuffle([]rune(w), rng))
}
