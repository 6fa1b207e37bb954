package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog",
	Long: `Shows the levels of the catalog in play order, with their time budget
and the balls they start with. Use --levels to inspect a custom catalog.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	catalog, err := loadLevels()
	if err != nil {
		return err
	}

	list := catalog.Levels()
	maxNameLen := 4 // "Name" header
	for _, l := range list {
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Printf("  %-3s  %-*s  %7s  %s\n", "#", maxNameLen, "Name", "Time", "Balls")
	fmt.Printf("  %-3s  %-*s  %7s  %s\n", "-", maxNameLen, "----", "----", "-----")

	for i, l := range list {
		balls := ""
		for j, b := range l.Balls {
			if j > 0 {
				balls += ", "
			}
			balls += fmt.Sprintf("%s/%d", b.Color, b.Size)
		}
		fmt.Printf("  %-3d  %-*s  %6.0fs  %s\n", i+1, maxNameLen, l.Name, l.TimeBudget.Seconds(), balls)
	}

	fmt.Println()
	fmt.Println("Run 'ballbreaker play --level <n>' to start at a level.")
	return nil
}
