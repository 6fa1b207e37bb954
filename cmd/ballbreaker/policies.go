package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ball-breaker/internal/registry"
)

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List registered policies",
	Long:  `Shows the policies that 'ballbreaker run --policy' accepts.`,
	Args:  cobra.NoArgs,
	Run:   runPolicies,
}

func runPolicies(_ *cobra.Command, _ []string) {
	policies := registry.List()

	if len(policies) == 0 {
		fmt.Println("No policies available.")
		return
	}

	fmt.Println("Available policies:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range policies {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, p := range policies {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'ballbreaker run --policy <id>' to run one.")
}
