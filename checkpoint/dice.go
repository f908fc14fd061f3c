package checkpoint

import (
	"math/rand"
	"time"
)

// Dice is the engine's randomness source. Inspection rolls, policy draws and
// deck draws all flow through it so a seeded session replays identically.
type Dice interface {
	Intn(n int) int
	Float64() float64
}

// NewDice builds a seeded source. Seed 0 means time-based.
func NewDice(seed int64) Dice {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// D10 rolls a ten-sided die: uniform in [1, 10].
func D10(d Dice) int { return d.Intn(10) + 1 }

// RollRange returns a uniform int in [min, max].
func RollRange(d Dice, min, max int) int {
	if min >= max {
		return min
	}
	return min + d.Intn(max-min+1)
}
