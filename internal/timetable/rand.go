package timetable

import "math/rand"

// Rand is the subset of *rand.Rand the generators draw from. Each generation run owns one.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint:gosec
}
