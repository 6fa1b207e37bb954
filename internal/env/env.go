// Package env wraps a Ball Breaker game as a reinforcement-learning
// environment with a discrete action space and a fixed observation shape.
package env

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/game"
	"github.com/vovakirdan/ball-breaker/internal/grid"
)

// Info carries per-step diagnostics.
type Info struct {
	Events        []game.Event
	Outcome       game.Outcome
	Level         int
	LevelComplete bool
	Score         int
}

// Env is the agent-facing view of one game.
type Env struct {
	game *game.Game
	enc  *encoder
}

// New wraps g using the observation settings in cfg.
func New(g *game.Game, cfg config.EnvConfig) (*Env, error) {
	enc, err := ParseEncoding(cfg.Observation)
	if err != nil {
		return nil, err
	}
	if enc == EncodingFeatures && cfg.Features < 2 {
		return nil, fmt.Errorf("env: feature vector needs at least 2 values, got %d", cfg.Features)
	}
	return &Env{game: g, enc: newEncoder(enc, cfg.Features, g)}, nil
}

// NewFromConfig builds a game over levels and wraps it.
func NewFromConfig(cfg config.Config, levels game.LevelSource, opts ...Option) (*Env, error) {
	o := game.Options{Config: cfg, Levels: levels}
	for _, opt := range opts {
		opt(&o)
	}
	g, err := game.New(o)
	if err != nil {
		return nil, err
	}
	return New(g, cfg.Env)
}

// Option customizes the game built by NewFromConfig.
type Option func(*game.Options)

// WithClock sets the game clock.
func WithClock(c game.Clock) Option {
	return func(o *game.Options) { o.Clock = c }
}

// WithLogger sets the game logger.
func WithLogger(l *log.Logger) Option {
	return func(o *game.Options) { o.Logger = l }
}

// Reset starts a new episode and returns the first observation.
func (e *Env) Reset() Observation {
	e.game.Reset()
	return e.Observe()
}

// Step applies one action for one frame.
func (e *Env) Step(a core.Action) (Observation, float64, bool, Info) {
	res := e.game.Step(a)
	info := Info{
		Events:        res.Events,
		Outcome:       res.Outcome,
		Level:         res.Level,
		LevelComplete: res.LevelComplete,
		Score:         e.game.Score(),
	}
	return e.Observe(), res.Reward, res.Terminal, info
}

// Observe encodes the current state without stepping.
func (e *Env) Observe() Observation {
	return e.enc.encode(e.game)
}

// ActionSpace returns the number of discrete actions.
func (e *Env) ActionSpace() int {
	return core.ActionCount
}

// ObservationShape returns the shape every observation has.
func (e *Env) ObservationShape() []int {
	return e.enc.shape(e.game)
}

// Encoding returns the observation encoding.
func (e *Env) Encoding() Encoding {
	return e.enc.encoding
}

// Game returns the wrapped game.
func (e *Env) Game() *game.Game {
	return e.game
}

// Snapshot returns a copy of the game state.
func (e *Env) Snapshot() game.Snapshot {
	return e.game.Snapshot()
}

// Grid returns the game's occupancy grid. Callers must not modify it.
func (e *Env) Grid() *grid.Occupancy {
	return e.game.Grid()
}
