package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ball-breaker/internal/env"
	"github.com/vovakirdan/ball-breaker/internal/game"
	"github.com/vovakirdan/ball-breaker/internal/registry"
	"github.com/vovakirdan/ball-breaker/internal/storage"
)

var (
	flagPolicy   string
	flagEpisodes int
	flagMaxSteps int
	flagRealtime bool
	flagRecord   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a policy headless",
	Long: `Play a registered policy against the environment without a UI.

Each episode runs until game over, time out, a campaign win, or --max-steps
frames. Frames advance by a fixed 1/fps step unless --realtime is set, in
which case the level timer follows the wall clock.

Examples:
  ballbreaker run --policy random --episodes 10
  ballbreaker run --policy dodge --mode campaign --record
  ballbreaker run --policy idle --realtime --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagPolicy, "policy", "random", "Policy ID (see 'ballbreaker policies')")
	runCmd.Flags().IntVar(&flagEpisodes, "episodes", 1, "Number of episodes")
	runCmd.Flags().IntVar(&flagMaxSteps, "max-steps", env.DefaultMaxSteps, "Frame cap per episode")
	runCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace frames and the level timer by the wall clock")
	runCmd.Flags().BoolVar(&flagRecord, "record", false, "Record episodes to --db")
	runCmd.Flags().StringVar(&flagMode, "mode", "", "Level progression: endless or campaign (default from config)")
}

func runRun(_ *cobra.Command, _ []string) error {
	if flagEpisodes <= 0 {
		return errors.New("--episodes must be positive")
	}
	if !registry.Exists(flagPolicy) {
		return fmt.Errorf("unknown policy %q, run 'ballbreaker policies' to see available policies", flagPolicy)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalog, err := loadLevels()
	if err != nil {
		return err
	}
	policy, err := registry.Create(flagPolicy, seed())
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []env.Option{env.WithLogger(logger)}
	var clock *game.WallClock
	if flagRealtime {
		clock = game.NewWallClock(cfg.Display.FPS)
		defer clock.Stop()
		opts = append(opts, env.WithClock(clock))
	}

	e, err := env.NewFromConfig(cfg, catalog, opts...)
	if err != nil {
		return err
	}

	runner := &env.Runner{
		Env:      e,
		Policy:   policy,
		Episodes: flagEpisodes,
		MaxSteps: flagMaxSteps,
		Logger:   logger,
	}
	if clock != nil {
		runner.Pacer = clock
	}

	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		runner.Recorder = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := runner.Run(ctx)
	printSummary(results)
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func printSummary(results []env.EpisodeResult) {
	if len(results) == 0 {
		fmt.Println("No episodes finished.")
		return
	}

	fmt.Printf("  %-4s  %-14s  %6s  %9s  %8s  %5s\n", "Ep", "Outcome", "Score", "Reward", "Steps", "Level")
	fmt.Printf("  %-4s  %-14s  %6s  %9s  %8s  %5s\n", "--", "-------", "-----", "------", "-----", "-----")

	var score, reward float64
	best := 0
	for _, r := range results {
		outcome := string(r.Outcome)
		if r.Truncated {
			outcome = "truncated"
		}
		fmt.Printf("  %-4d  %-14s  %6d  %9.2f  %8d  %5d\n", r.Episode, outcome, r.Score, r.Reward, r.Steps, r.FinalLevel+1)
		score += float64(r.Score)
		reward += r.Reward
		best = max(best, r.Score)
	}

	n := float64(len(results))
	fmt.Println()
	fmt.Printf("Policy %s: %d episodes, best score %d, mean score %.2f, mean reward %.2f\n",
		results[0].Policy, len(results), best, score/n, reward/n)
}
