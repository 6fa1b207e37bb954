package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ball-breaker/internal/platform/tui"
	"github.com/vovakirdan/ball-breaker/internal/storage"
)

var (
	flagBrowse bool
	flagTop    bool
	flagLimit  int
	flagClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [policy]",
	Short: "Show recorded episodes",
	Long: `Display the episodes recorded with 'ballbreaker run --record'.

Without a policy all policies are shown. --browse opens an interactive
table instead of printing.

Examples:
  ballbreaker history
  ballbreaker history dodge --top
  ballbreaker history --browse
  ballbreaker history random --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive browser")
	historyCmd.Flags().BoolVar(&flagTop, "top", false, "Order by score instead of recency")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of episodes to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded episodes")
}

func runHistory(_ *cobra.Command, args []string) error {
	policy := ""
	if len(args) == 1 {
		policy = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearEpisodes(policy); err != nil {
			return err
		}
		fmt.Println("Episodes cleared.")
		return nil

	case flagBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}

	var episodes []storage.Episode
	if flagTop {
		episodes, err = store.TopEpisodes(policy, flagLimit)
	} else {
		episodes, err = store.RecentEpisodes(policy, flagLimit)
	}
	if err != nil {
		return err
	}

	if len(episodes) == 0 {
		fmt.Println("No episodes recorded yet.")
		fmt.Println()
		fmt.Println("Run 'ballbreaker run --record' to record some.")
		return nil
	}

	fmt.Printf("  %-5s  %-8s  %-14s  %6s  %9s  %8s  %s\n", "ID", "Policy", "Outcome", "Score", "Reward", "Steps", "Date")
	fmt.Printf("  %-5s  %-8s  %-14s  %6s  %9s  %8s  %s\n", "--", "------", "-------", "-----", "------", "-----", "----")
	for _, e := range episodes {
		outcome := e.Outcome
		if e.Truncated {
			outcome = "truncated"
		}
		fmt.Printf("  %-5d  %-8s  %-14s  %6d  %9.2f  %8d  %s\n",
			e.ID, e.Policy, outcome, e.Score, e.Reward, e.Steps, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if policy != "" {
		if stats, err := store.GetPolicyStats(policy); err == nil && stats != nil {
			fmt.Println()
			fmt.Printf("Best: %d  Mean score: %.2f  Mean reward: %.2f  Wins: %d of %d\n",
				stats.BestScore, stats.AvgScore, stats.AvgReward, stats.Wins, stats.Episodes)
		}
	}
	return nil
}
