// Package rng provides a small seedable pseudo-random stream.
// The same seed string always yields the same sequence of draws.
package rng

import (
	"math"
	"unicode/utf16"
)

const (
	fnvOffset32 = 0x811c9dc5
	fnvPrime32  = 0x01000193

	mulberryIncrement = 0x6D2B79F5
	twoPow32          = 4294967296.0
)

// Hash32 hashes a string to 32 bits (FNV-1a over UTF-16 code units)
func Hash32(s string) uint32 {
	h := uint32(fnvOffset32)
	for _, unit := range utf16.Encode([]rune(s)) {
		h ^= uint32(unit)
		h *= fnvPrime32
	}
	return h
}

// Rand is a mulberry32 stream seeded from a string.
// It is not safe for concurrent use.
type Rand struct {
	seed  string
	state uint32
	draws int
}

// New creates a stream for the given seed string
func New(seed string) *Rand {
	return &Rand{
		seed:  seed,
		state: Hash32(seed),
	}
}

// Seed returns the seed string the stream was built from
func (r *Rand) Seed() string {
	return r.seed
}

// Draws returns how many values have been drawn so far
func (r *Rand) Draws() int {
	return r.draws
}

// Next returns a float in [0,1)
func (r *Rand) Next() float64 {
	r.draws++
	r.state += mulberryIncrement
	t := r.state
	x := (t ^ (t >> 15)) * (1 | t)
	x ^= x + (x^(x>>7))*(61|x)
	return float64(x^(x>>14)) / twoPow32
}

// NextInt returns an integer in [min, max], both inclusive.
// If max < min, min is returned (a draw is still consumed).
func (r *Rand) NextInt(min, max int) int {
	f := r.Next()
	if max < min {
		return min
	}
	return min + int(math.Floor(f*float64(max-min+1)))
}

// NextBool returns true with probability p
func (r *Rand) NextBool(p float64) bool {
	return r.Next() < p
}

// Pick returns a uniformly chosen element of items.
// Returns false if items is empty (no draw is consumed).
func Pick[T any](r *Rand, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[r.NextInt(0, len(items)-1)], true
}

// Shuffle permutes items in place (Fisher-Yates, last index first)
func Shuffle[T any](r *Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.NextInt(0, i)
		items[i], items[j] = items[j], items[i]
	}
}
