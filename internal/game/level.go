package game

import "time"

// Level is one resolved level: ball placements in field pixels and the time
// allowed to clear them.
type Level struct {
	Name       string
	TimeBudget time.Duration
	Balls      []BallSpec
}

// LevelSource provides the levels of an episode. Level resolves index against
// a field of the given size.
type LevelSource interface {
	Count() int
	Level(index int, fieldW, fieldH float64) (Level, error)
}
