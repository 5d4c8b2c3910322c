package core

import "math/rand"

// Random is a seeded source of uniform integers.
// Every procedural choice in a session goes through one Random so a seed
// fully determines the obstacle layout.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Between returns a uniformly sampled integer in [min, max] inclusive.
// The caller guarantees min <= max.
func (r *Random) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}
