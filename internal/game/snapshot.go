package game

import (
	"math"

	"github.com/vovakirdan/ball-breaker/internal/core"
)

// BallView is a read-only copy of one ball.
type BallView struct {
	X, Y   float64
	VX, VY float64
	Side   float64
	Size   int
	Color  core.Color
}

// Rect returns the ball's bounding box.
func (b BallView) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Side, b.Side)
}

// Snapshot is a copy of the episode state for renderers and policies.
// Mutating it does not affect the game.
type Snapshot struct {
	Width, Height float64

	Player   core.Rect
	PlayerVX float64
	Platform core.Rect
	Shooting bool
	Laser    core.Rect // Zero when not shooting
	Balls    []BallView

	Level        int
	LevelName    string
	LevelCount   int
	TimerMS      float64
	TimeBudgetMS float64
	TimeLeft     float64 // Timer bar length in pixels

	Score       int
	TotalReward float64
	Steps       int
	Phase       Phase
	Outcome     Outcome
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	lvl := g.levels[g.levelIndex]
	s := Snapshot{
		Width:        g.tables.Width,
		Height:       g.tables.Height,
		Player:       g.player.Rect(),
		PlayerVX:     g.player.Velocity(),
		Platform:     g.platform.Rect,
		Shooting:     g.laser != nil,
		Balls:        make([]BallView, len(g.balls)),
		Level:        g.levelIndex,
		LevelName:    lvl.Name,
		LevelCount:   len(g.levels),
		TimerMS:      g.timer,
		TimeBudgetMS: float64(lvl.TimeBudget.Milliseconds()),
		TimeLeft:     g.timeLeft,
		Score:        g.score,
		TotalReward:  g.totalReward,
		Steps:        g.steps,
		Phase:        g.phase,
		Outcome:      g.outcome,
	}
	if g.laser != nil {
		s.Laser = g.laser.Rect()
	}
	for i, b := range g.balls {
		s.Balls[i] = BallView{
			X:     b.X(),
			Y:     b.Y(),
			VX:    b.VX(),
			VY:    b.VY(),
			Side:  b.Side(),
			Size:  b.Size(),
			Color: b.Color(),
		}
	}
	return s
}

// Terminal reports whether the episode had ended.
func (s Snapshot) Terminal() bool {
	return s.Outcome.Terminal()
}

// TimeFraction returns the share of the level time still left, in [0, 1].
func (s Snapshot) TimeFraction() float64 {
	if s.Width <= 0 {
		return 0
	}
	return core.ClampF(s.TimeLeft/s.Width, 0, 1)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s *Snapshot) Hash() uint64 {
	h := uint64(s.Steps)            //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Level)      //#nosec G115 -- hash computation
	h = h*31 + uint64(len(s.Balls)) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(s.Player.X)
	h = h*31 + math.Float64bits(s.TimerMS)
	h = h*31 + math.Float64bits(s.TotalReward)
	if s.Shooting {
		h = h*31 + 1
		h = h*31 + math.Float64bits(s.Laser.Y)
	}

	for _, b := range s.Balls {
		h = h*31 + math.Float64bits(b.X)
		h = h*31 + math.Float64bits(b.Y)
		h = h*31 + math.Float64bits(b.VX)
		h = h*31 + math.Float64bits(b.VY)
		h = h*31 + uint64(b.Size) //#nosec G115 -- hash computation
	}

	for _, c := range s.Outcome {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	return h
}
