// Package random provides the injectable randomness source used by demo
// capability content, so tests can substitute a deterministic generator.
package random

import (
	"math/rand"
	"time"
)

// Source yields non-negative pseudo-random integers.
type Source interface {
	// Intn returns a value in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// New returns a time-seeded Source.
func New() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Fixed returns a Source that replays the given values in order, cycling
// when exhausted. Each value is taken modulo the requested bound.
func Fixed(values ...int) Source {
	if len(values) == 0 {
		panic("random: Fixed requires at least one value")
	}
	return &fixed{values: values}
}

type fixed struct {
	values []int
	next   int
}

func (f *fixed) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn bound must be positive")
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return v % n
}
