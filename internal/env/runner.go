package env

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/game"
	"github.com/vovakirdan/ball-breaker/internal/grid"
)

// DefaultMaxSteps caps an episode so endless runs without a timeout finish.
const DefaultMaxSteps = 100_000

// Frame is what a policy sees before choosing an action.
type Frame struct {
	Observation Observation
	Snapshot    game.Snapshot
	Grid        *grid.Occupancy // Read-only
}

// Policy chooses actions.
type Policy interface {
	Name() string
	Act(f Frame) core.Action
}

// Resetter is implemented by policies that keep per-episode state.
type Resetter interface {
	Reset()
}

// EpisodeResult summarizes one finished episode.
type EpisodeResult struct {
	Episode       int
	Policy        string
	Outcome       game.Outcome
	Truncated     bool // Stopped at the step cap
	Steps         int
	Score         int
	Reward        float64
	FinalLevel    int
	LevelsCleared int
	Duration      time.Duration
}

// Recorder persists episode results.
type Recorder interface {
	Record(r EpisodeResult) error
}

// Pacer blocks until the next frame may be stepped.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Runner plays a policy for a number of episodes.
type Runner struct {
	Env      *Env
	Policy   Policy
	Episodes int
	MaxSteps int         // Defaults to DefaultMaxSteps
	Recorder Recorder    // Optional
	Pacer    Pacer       // Optional; steps run back to back without one
	Logger   *log.Logger // Optional
}

// Run plays the episodes in order. It stops early when ctx is cancelled and
// returns the results gathered so far with the context error.
func (r *Runner) Run(ctx context.Context) ([]EpisodeResult, error) {
	if r.Env == nil || r.Policy == nil {
		return nil, errors.New("env: runner needs an environment and a policy")
	}
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	maxSteps := r.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	results := make([]EpisodeResult, 0, r.Episodes)
	for ep := range r.Episodes {
		res, err := r.runEpisode(ctx, ep, maxSteps)
		if err != nil {
			return results, err
		}
		results = append(results, res)

		logger.Info("episode finished",
			"episode", ep+1,
			"policy", res.Policy,
			"outcome", res.Outcome,
			"steps", res.Steps,
			"score", res.Score,
			"reward", fmt.Sprintf("%.2f", res.Reward),
			"level", res.FinalLevel,
		)

		if r.Recorder != nil {
			if err := r.Recorder.Record(res); err != nil {
				logger.Warn("could not record episode", "episode", ep+1, "error", err)
			}
		}
	}
	return results, nil
}

func (r *Runner) runEpisode(ctx context.Context, ep, maxSteps int) (EpisodeResult, error) {
	start := time.Now()
	obs := r.Env.Reset()
	if rs, ok := r.Policy.(Resetter); ok {
		rs.Reset()
	}

	g := r.Env.Game()
	res := EpisodeResult{Episode: ep + 1, Policy: r.Policy.Name()}

	for !g.Terminal() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if g.Steps() >= maxSteps {
			res.Truncated = true
			break
		}
		if r.Pacer != nil {
			if err := r.Pacer.Wait(ctx); err != nil {
				return res, err
			}
		}

		a := r.Policy.Act(Frame{
			Observation: obs,
			Snapshot:    g.Snapshot(),
			Grid:        g.Grid(),
		})
		obs, _, _, _ = r.Env.Step(a)
	}

	res.Outcome = g.Outcome()
	res.Steps = g.Steps()
	res.Score = g.Score()
	res.Reward = g.TotalReward()
	res.FinalLevel = g.LevelIndex()
	res.LevelsCleared = g.LevelsCleared()
	res.Duration = time.Since(start)
	return res, nil
}
