package game

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/grid"
	"github.com/vovakirdan/ball-breaker/internal/physics"
)

// Phase is the position of the episode loop within a frame.
type Phase string

const (
	PhaseAwaitingAction Phase = "awaiting_action"
	PhaseResolving      Phase = "resolving"
	PhaseTerminal       Phase = "terminal"
)

// Outcome is how a frame ended.
type Outcome string

const (
	OutcomeContinue      Outcome = "continue"
	OutcomeLevelComplete Outcome = "level_complete"
	OutcomeGameOver      Outcome = "game_over"
	OutcomeTimedOut      Outcome = "timed_out"
	OutcomeWon           Outcome = "won" // Campaign cleared
)

// Terminal reports whether the outcome ends the episode.
func (o Outcome) Terminal() bool {
	return o == OutcomeGameOver || o == OutcomeTimedOut || o == OutcomeWon
}

// Progression selects what happens after the last level is cleared.
type Progression int

const (
	ProgressionEndless  Progression = iota // Wrap to the first level
	ProgressionCampaign                    // End the episode as won
)

// ParseProgression maps a config mode to a Progression.
func ParseProgression(mode string) (Progression, error) {
	switch mode {
	case config.ModeEndless, "":
		return ProgressionEndless, nil
	case config.ModeCampaign:
		return ProgressionCampaign, nil
	default:
		return ProgressionEndless, fmt.Errorf("game: unknown mode %q", mode)
	}
}

// ErrNoLevels is returned when a level source is empty.
var ErrNoLevels = errors.New("game: level source has no levels")

// StepResult describes one frame.
type StepResult struct {
	Reward        float64
	Terminal      bool
	Outcome       Outcome
	Events        []Event
	Level         int  // Level index after the frame
	LevelComplete bool // A level was cleared this frame
}

// Options configures a Game.
type Options struct {
	Config config.Config
	Levels LevelSource
	Clock  Clock       // Defaults to a FixedClock at the configured FPS
	Logger *log.Logger // Defaults to a discarding logger
}

// Game is one episode of Ball Breaker. It is not safe for concurrent use.
type Game struct {
	cfg         config.Config
	tables      physics.Tables
	collider    Collider
	rewards     Rewards
	progression Progression
	clock       Clock
	logger      *log.Logger
	dt          float64

	levels []Level
	occ    *grid.Occupancy

	player   *Player
	platform Platform
	laser    *Laser // nil when not shooting
	balls    []*Ball

	levelIndex  int
	timer       float64 // Elapsed level time in ms
	timeLeft    float64 // Timer bar length in pixels
	score       int
	totalReward float64
	steps       int
	cleared     int // Levels cleared this episode

	phase   Phase
	outcome Outcome
}

// New creates a game and loads its first level. Every level is resolved up
// front so a broken level fails here rather than mid-episode.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Levels == nil || opts.Levels.Count() == 0 {
		return nil, ErrNoLevels
	}

	precision, err := ParsePrecision(cfg.Gameplay.Collision)
	if err != nil {
		return nil, err
	}
	progression, err := ParseProgression(cfg.Gameplay.Mode)
	if err != nil {
		return nil, err
	}

	w, h := float64(cfg.Display.Width), float64(cfg.Height())
	tables := physics.NewTables(w, h)

	levels := make([]Level, opts.Levels.Count())
	for i := range levels {
		lvl, err := opts.Levels.Level(i, w, h)
		if err != nil {
			return nil, fmt.Errorf("game: level %d: %w", i, err)
		}
		levels[i] = lvl
	}

	clock := opts.Clock
	if clock == nil {
		clock = NewFixedClock(cfg.Display.FPS)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		cfg:    cfg,
		tables: tables,
		collider: Collider{
			Precision: precision,
			Band:      cfg.Gameplay.ProximityBand * tables.Resize,
			FieldW:    w,
		},
		rewards:     RewardsFromConfig(cfg.Rewards),
		progression: progression,
		clock:       clock,
		logger:      logger,
		dt:          cfg.TimeStep(),
		levels:      levels,
		occ:         grid.New(cfg.Grid.Cols, cfg.Grid.Rows, w, h),
		platform:    NewPlatform(w, h, cfg.Gameplay.PlatformHeight*tables.Resize),
	}
	g.Reset()
	return g, nil
}

// Reset starts a new episode at the first level.
func (g *Game) Reset() {
	g.ResetAt(0)
}

// ResetAt starts a new episode at level index, wrapped into range.
func (g *Game) ResetAt(index int) {
	g.score = 0
	g.totalReward = 0
	g.steps = 0
	g.cleared = 0
	g.outcome = OutcomeContinue
	g.loadLevel(wrap(index, len(g.levels)))
}

func (g *Game) loadLevel(index int) {
	lvl := g.levels[index]
	w, h := g.tables.Width, g.tables.Height
	r := g.tables.Resize

	g.occ.Reset()
	g.levelIndex = index
	g.timer = 0
	g.timeLeft = w
	g.laser = nil
	g.player = NewPlayer(w, h, g.cfg.Player.Width*r, g.cfg.Player.Height*r, g.cfg.Player.Speed*r)

	g.balls = make([]*Ball, 0, len(lvl.Balls)*4)
	for _, spec := range lvl.Balls {
		g.balls = append(g.balls, NewBall(spec, &g.tables, g.occ))
	}

	g.clock.Reset()
	g.phase = PhaseAwaitingAction
	g.logger.Debug("level loaded", "index", index, "name", lvl.Name, "balls", len(g.balls))
}

// frame accumulates the events of one step.
type frame struct {
	events []Event
}

func (f *frame) emit(e Event) {
	f.events = append(f.events, e)
}

// Step advances the episode by one frame with the given action. Stepping a
// finished episode changes nothing and reports it as terminal again.
func (g *Game) Step(a core.Action) StepResult {
	if g.outcome.Terminal() {
		return StepResult{Terminal: true, Outcome: g.outcome, Level: g.levelIndex}
	}

	g.phase = PhaseResolving
	g.steps++
	var f frame

	g.applyAction(a, &f)
	f.emit(EventTimeElapsed)

	if g.resolveBalls(&f) {
		return g.finish(&f, OutcomeGameOver)
	}

	if g.laser != nil {
		g.laser.Advance(g.dt)
		if g.laser.ReachedCeiling() {
			g.laser = nil
			f.emit(EventHitCeiling)
		}
	}

	g.player.Update(g.dt)
	g.advanceBalls(&f)
	g.advanceTimer()

	if g.cfg.Gameplay.EnableTimeout && g.timeLeft <= 0 {
		g.laser = nil
		f.emit(EventTimeOut)
		return g.finish(&f, OutcomeTimedOut)
	}

	if len(g.balls) == 0 {
		f.emit(EventLevelComplete)
		return g.completeLevel(&f)
	}

	g.phase = PhaseAwaitingAction
	return g.result(&f, OutcomeContinue)
}

func (g *Game) applyAction(a core.Action, f *frame) {
	switch a {
	case core.ActionMoveLeft:
		if g.player.BadMove(a) {
			f.emit(EventInvalidMove)
		}
		g.player.Left()
	case core.ActionMoveRight:
		if g.player.BadMove(a) {
			f.emit(EventInvalidMove)
		}
		g.player.Right()
	case core.ActionFire:
		if g.laser != nil {
			f.emit(EventInvalidMove)
			return
		}
		g.laser = NewLaser(
			g.player.CenterX(),
			g.player.Y,
			g.tables.Height,
			g.cfg.Laser.Width*g.tables.Resize,
			g.cfg.Laser.Speed*g.tables.Resize,
		)
	default:
		g.player.Stop()
	}
}

// resolveBalls runs the collision pass over a snapshot of the balls. It
// returns true when a ball hit the player.
func (g *Game) resolveBalls(f *frame) bool {
	for _, b := range slices.Clone(g.balls) {
		if g.collider.PlayerHit(g.player, b) {
			g.laser = nil
			f.emit(EventGameOver)
			return true
		}

		if g.laser != nil && g.collider.LaserHit(g.laser, b) {
			f.emit(EventPopBall)
			g.laser = nil
			g.score++
			g.replace(b, b.Pop())
			continue
		}

		if g.collider.OnPlatform(g.platform, b) {
			b.BounceVertical()
		}
		if g.collider.OutOfBounds(b) {
			b.BounceHorizontal()
		}
	}
	return false
}

func (g *Game) advanceBalls(f *frame) {
	for _, b := range slices.Clone(g.balls) {
		if b.Advance(g.dt) {
			g.replace(b, nil)
			f.emit(EventCeilingPop)
			g.logger.Debug("ball popped on ceiling", "size", b.Size(), "x", b.X())
		}
	}
}

// replace swaps b for its children in the ball collection.
func (g *Game) replace(b *Ball, children []*Ball) {
	i := slices.Index(g.balls, b)
	if i < 0 {
		return
	}
	g.balls = slices.Replace(g.balls, i, i+1, children...)
}

func (g *Game) advanceTimer() {
	g.timer += float64(g.clock.Elapsed().Microseconds()) / 1000
	budget := float64(g.levels[g.levelIndex].TimeBudget.Milliseconds())
	w := g.tables.Width
	if budget <= 0 {
		g.timeLeft = w
		return
	}
	g.timeLeft = w - w/budget*g.timer
}

func (g *Game) completeLevel(f *frame) StepResult {
	g.cleared++
	last := g.levelIndex == len(g.levels)-1
	g.logger.Info("level complete", "index", g.levelIndex, "score", g.score, "steps", g.steps)

	if last && g.progression == ProgressionCampaign {
		res := g.finish(f, OutcomeWon)
		res.LevelComplete = true
		return res
	}

	g.loadLevel(wrap(g.levelIndex+1, len(g.levels)))
	res := g.result(f, OutcomeLevelComplete)
	res.LevelComplete = true
	return res
}

func (g *Game) finish(f *frame, o Outcome) StepResult {
	g.outcome = o
	g.phase = PhaseTerminal
	g.logger.Info("episode over", "outcome", o, "level", g.levelIndex, "score", g.score, "steps", g.steps)
	return g.result(f, o)
}

func (g *Game) result(f *frame, o Outcome) StepResult {
	reward := g.rewards.Sum(f.events)
	g.totalReward += reward
	return StepResult{
		Reward:   reward,
		Terminal: o.Terminal(),
		Outcome:  o,
		Events:   f.events,
		Level:    g.levelIndex,
	}
}

// Terminal reports whether the episode has ended.
func (g *Game) Terminal() bool { return g.outcome.Terminal() }

// Outcome returns the terminal outcome, or OutcomeContinue while playing.
func (g *Game) Outcome() Outcome { return g.outcome }

// Phase returns the loop phase.
func (g *Game) Phase() Phase { return g.phase }

// Balls returns the live balls. The slice must not be modified.
func (g *Game) Balls() []*Ball { return g.balls }

// Player returns the player.
func (g *Game) Player() *Player { return g.player }

// Laser returns the active laser, or nil.
func (g *Game) Laser() *Laser { return g.laser }

// Shooting reports whether a laser is in flight.
func (g *Game) Shooting() bool { return g.laser != nil }

// Grid returns the occupancy grid. Callers must treat it as read-only.
func (g *Game) Grid() *grid.Occupancy { return g.occ }

// Tables returns the resolved calibration tables.
func (g *Game) Tables() physics.Tables { return g.tables }

// Config returns the game configuration.
func (g *Game) Config() config.Config { return g.cfg }

// LevelIndex returns the current level index.
func (g *Game) LevelIndex() int { return g.levelIndex }

// LevelCount returns the number of levels.
func (g *Game) LevelCount() int { return len(g.levels) }

// Score returns the number of balls popped this episode.
func (g *Game) Score() int { return g.score }

// TotalReward returns the reward accumulated this episode.
func (g *Game) TotalReward() float64 { return g.totalReward }

// Steps returns the number of frames stepped this episode.
func (g *Game) Steps() int { return g.steps }

// LevelsCleared returns the number of levels cleared this episode.
func (g *Game) LevelsCleared() int { return g.cleared }

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
