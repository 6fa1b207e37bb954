// ballbreaker is a terminal Pang-like arcade game and learning environment.
//
// Usage:
//
//	ballbreaker play              - Play interactively in the terminal
//	ballbreaker run               - Run a policy headless for N episodes
//	ballbreaker levels            - List the level catalog
//	ballbreaker policies          - List registered policies
//	ballbreaker history [policy]  - Show recorded episodes
//
// Global flags:
//
//	--fps <rate>        - Override the frame rate from the config
//	--seed <value>      - RNG seed for stochastic policies
//	--config <path>     - Config file (YAML or TOML)
//	--levels <path>     - Level catalog (YAML or TOML)
//	--db <path>         - Episode database (default: ~/.ballbreaker/episodes.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import policies to register them
	_ "github.com/vovakirdan/ball-breaker/internal/agent"
)

var (
	// Global flags
	flagFPS      float64
	flagSeed     int64
	flagConfig   string
	flagLevels   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ballbreaker",
	Short: "Ball Breaker - pop bouncing balls in your terminal",
	Long: `Ball Breaker is a Pang-like arcade game. Balls bounce around the
field; shoot them with a vertical laser to split them into smaller balls
until they vanish. Touching a ball ends the game.

The same game is exposed as a learning environment: policies can be run
headless and their episodes recorded to a SQLite database.

Examples:
  ballbreaker play
  ballbreaker play --mode campaign --level 3
  ballbreaker run --policy dodge --episodes 20 --db ~/.ballbreaker/episodes.db
  ballbreaker history dodge`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&flagFPS, "fps", 0, "Frame rate (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to level catalog (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ballbreaker/episodes.db", "Path to episode database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(policiesCmd)
	rootCmd.AddCommand(historyCmd)
}
