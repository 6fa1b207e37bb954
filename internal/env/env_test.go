package env

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/game"
	"github.com/vovakirdan/ball-breaker/internal/grid"
)

type stubLevels []game.Level

func (s stubLevels) Count() int { return len(s) }

func (s stubLevels) Level(index int, _, _ float64) (game.Level, error) {
	return s[index], nil
}

func testLevel(budget time.Duration, balls ...game.BallSpec) game.Level {
	return game.Level{Name: "test", TimeBudget: budget, Balls: balls}
}

var farBall = game.BallSpec{X: 60, Y: 60, Size: 1}

func newTestEnv(t *testing.T, observation string, levels ...game.Level) *Env {
	t.Helper()
	cfg := config.Default()
	cfg.Env.Observation = observation
	e, err := NewFromConfig(cfg, stubLevels(levels))
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	return e
}

func TestParseEncoding(t *testing.T) {
	if enc, err := ParseEncoding("features"); err != nil || enc != EncodingFeatures {
		t.Errorf("ParseEncoding(features) = %v, %v", enc, err)
	}
	if _, err := ParseEncoding("pixels"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestActionSpace(t *testing.T) {
	e := newTestEnv(t, "grid", testLevel(time.Minute, farBall))
	if e.ActionSpace() != 4 {
		t.Errorf("action space = %d, want 4", e.ActionSpace())
	}
}

func TestGridObservationShape(t *testing.T) {
	e := newTestEnv(t, "grid", testLevel(time.Minute, farBall))
	want := []int{42, 84, 3}
	if !slices.Equal(e.ObservationShape(), want) {
		t.Fatalf("shape = %v, want %v", e.ObservationShape(), want)
	}

	obs := e.Reset()
	if !slices.Equal(obs.Shape, want) {
		t.Errorf("observation shape = %v, want %v", obs.Shape, want)
	}
	if len(obs.Data) != 42*84*3 {
		t.Errorf("data length = %d, want %d", len(obs.Data), 42*84*3)
	}

	for range 5 {
		obs, _, _, _ = e.Step(core.ActionFire)
		if !slices.Equal(obs.Shape, want) || len(obs.Data) != 42*84*3 {
			t.Fatalf("shape changed after step: %v", obs.Shape)
		}
	}
}

func TestGridObservationChannels(t *testing.T) {
	e := newTestEnv(t, "grid", testLevel(time.Minute, farBall))
	obs, _, _, _ := e.Step(core.ActionFire)

	count := func(ch grid.Channel) int {
		n := 0
		for y := range obs.Shape[0] {
			for x := range obs.Shape[1] {
				if obs.At(y, x, ch) == 1 {
					n++
				}
			}
		}
		return n
	}

	if got, want := count(grid.ChannelBall), e.Grid().FlaggedCount(grid.ChannelBall); got != want || got == 0 {
		t.Errorf("ball cells = %d, want %d", got, want)
	}
	if count(grid.ChannelPlayer) == 0 {
		t.Error("player channel is empty")
	}
	if count(grid.ChannelLaser) == 0 {
		t.Error("laser channel is empty while shooting")
	}

	// The player sits at the bottom centre of the field.
	if obs.At(41, 42, grid.ChannelPlayer) != 1 {
		t.Error("player not rasterised at the bottom centre")
	}
}

func TestFeatureObservation(t *testing.T) {
	e := newTestEnv(t, "features", testLevel(time.Minute, farBall))
	if !slices.Equal(e.ObservationShape(), []int{80}) {
		t.Fatalf("shape = %v, want [80]", e.ObservationShape())
	}

	obs := e.Reset()
	if len(obs.Data) != 80 {
		t.Fatalf("data length = %d, want 80", len(obs.Data))
	}
	if math.Abs(float64(obs.Data[0])-0.5) > 1e-6 {
		t.Errorf("player x = %v, want 0.5", obs.Data[0])
	}
	if obs.Data[1] != 0 {
		t.Errorf("shooting flag = %v, want 0", obs.Data[1])
	}
	if want := float32(60.0 / 890); math.Abs(float64(obs.Data[2]-want)) > 1e-6 {
		t.Errorf("ball left = %v, want %v", obs.Data[2], want)
	}
	for i := 6; i < 80; i++ {
		if obs.Data[i] != 0 {
			t.Fatalf("feature %d = %v, want zero padding", i, obs.Data[i])
		}
	}

	obs, _, _, _ = e.Step(core.ActionFire)
	if obs.Data[1] != 1 {
		t.Errorf("shooting flag = %v, want 1", obs.Data[1])
	}
}

func TestFeatureObservationTruncates(t *testing.T) {
	cfg := config.Default()
	cfg.Env.Observation = "features"
	cfg.Env.Features = 4
	balls := []game.BallSpec{farBall, {X: 700, Y: 60, Size: 1}}
	e, err := NewFromConfig(cfg, stubLevels{testLevel(time.Minute, balls...)})
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if obs := e.Reset(); len(obs.Data) != 4 {
		t.Errorf("data length = %d, want 4", len(obs.Data))
	}
}

func TestStepInfo(t *testing.T) {
	e := newTestEnv(t, "grid", testLevel(time.Minute, farBall))
	_, reward, terminal, info := e.Step(core.ActionNone)

	if terminal {
		t.Fatal("unexpected terminal")
	}
	if math.Abs(reward-(-0.01)) > 1e-9 {
		t.Errorf("reward = %v, want -0.01", reward)
	}
	if !slices.Equal(info.Events, []game.Event{game.EventTimeElapsed}) {
		t.Errorf("events = %v", info.Events)
	}
	if info.Level != 0 || info.LevelComplete {
		t.Errorf("info = %+v", info)
	}
}

func TestUnknownActionActsAsNone(t *testing.T) {
	e := newTestEnv(t, "grid", testLevel(time.Minute, farBall))
	x := e.Snapshot().Player.X

	_, _, _, info := e.Step(core.ActionFromIndex(17))
	if e.Snapshot().Player.X != x {
		t.Error("player moved on an unknown action")
	}
	if slices.Contains(info.Events, game.EventInvalidMove) {
		t.Error("unknown action should not be an invalid move")
	}
}

type fixedPolicy struct {
	action core.Action
	resets int
}

func (p *fixedPolicy) Name() string { return "fixed" }

func (p *fixedPolicy) Act(Frame) core.Action { return p.action }

func (p *fixedPolicy) Reset() { p.resets++ }

type memRecorder struct {
	results []EpisodeResult
}

func (m *memRecorder) Record(r EpisodeResult) error {
	m.results = append(m.results, r)
	return nil
}

func TestRunnerEpisodes(t *testing.T) {
	e := newTestEnv(t, "grid", testLevel(100*time.Millisecond, farBall))
	policy := &fixedPolicy{action: core.ActionNone}
	rec := &memRecorder{}

	r := &Runner{Env: e, Policy: policy, Episodes: 3, Recorder: rec}
	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 || len(rec.results) != 3 {
		t.Fatalf("results = %d, recorded = %d, want 3", len(results), len(rec.results))
	}
	if policy.resets != 3 {
		t.Errorf("policy resets = %d, want 3", policy.resets)
	}
	for i, res := range results {
		if res.Episode != i+1 || res.Policy != "fixed" {
			t.Errorf("result %d = %+v", i, res)
		}
		if res.Outcome != game.OutcomeTimedOut {
			t.Errorf("outcome = %v, want %v", res.Outcome, game.OutcomeTimedOut)
		}
		if res.Steps != 7 {
			t.Errorf("steps = %d, want 7", res.Steps)
		}
	}
}

func TestRunnerStepCap(t *testing.T) {
	cfg := config.Default()
	cfg.Gameplay.EnableTimeout = false
	e, err := NewFromConfig(cfg, stubLevels{testLevel(time.Second, farBall)})
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}

	r := &Runner{Env: e, Policy: &fixedPolicy{action: core.ActionNone}, Episodes: 1, MaxSteps: 25}
	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !results[0].Truncated || results[0].Steps != 25 {
		t.Errorf("result = %+v, want truncated at 25 steps", results[0])
	}
	if results[0].Outcome != game.OutcomeContinue {
		t.Errorf("outcome = %v, want %v", results[0].Outcome, game.OutcomeContinue)
	}
}

func TestRunnerCancelled(t *testing.T) {
	e := newTestEnv(t, "grid", testLevel(time.Minute, farBall))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Env: e, Policy: &fixedPolicy{action: core.ActionNone}, Episodes: 2}
	results, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestRunnerNeedsPolicy(t *testing.T) {
	e := newTestEnv(t, "grid", testLevel(time.Minute, farBall))
	if _, err := (&Runner{Env: e, Episodes: 1}).Run(context.Background()); err == nil {
		t.Error("expected error without a policy")
	}
}

type countingPacer struct {
	waits int
	stop  int // Fail on this wait when positive
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	if p.stop > 0 && p.waits >= p.stop {
		return context.DeadlineExceeded
	}
	return ctx.Err()
}

func TestRunnerPacesEveryStep(t *testing.T) {
	e := newTestEnv(t, "grid", testLevel(100*time.Millisecond, farBall))
	pacer := &countingPacer{}

	r := &Runner{Env: e, Policy: &fixedPolicy{action: core.ActionNone}, Episodes: 2, Pacer: pacer}
	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := results[0].Steps + results[1].Steps; pacer.waits != want {
		t.Errorf("waits = %d, want %d", pacer.waits, want)
	}
}

func TestRunnerPacerError(t *testing.T) {
	e := newTestEnv(t, "grid", testLevel(time.Minute, farBall))
	r := &Runner{Env: e, Policy: &fixedPolicy{action: core.ActionNone}, Episodes: 1, Pacer: &countingPacer{stop: 3}}
	if _, err := r.Run(context.Background()); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
	if got := e.Game().Steps(); got != 2 {
		t.Errorf("steps = %d, want 2", got)
	}
}
