package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "List the configured rounds",
	Long: `Shows every round of the active configuration with its answers.

Examples:
  vitamins rounds
  vitamins rounds --config ./my-rounds.yaml`,
	Args: cobra.NoArgs,
	RunE: runRounds,
}

func runRounds(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("%d rounds, %d foods, %d per board\n", len(cfg.Rounds), cfg.FoodCount(), cfg.Board.Size)
	fmt.Println()

	maxLen := len("Vitamin")
	for _, r := range cfg.Rounds {
		if len(r.Vitamin) > maxLen {
			maxLen = len(r.Vitamin)
		}
	}

	fmt.Printf("  %-4s  %-*s  %s\n", "#", maxLen, "Vitamin", "Answers")
	fmt.Printf("  %-4s  %-*s  %s\n", "-", maxLen, "-------", "-------")
	for i, round := range cfg.Catalog() {
		labels := make([]string, len(round.Answers))
		for j, item := range round.Answers {
			labels[j] = item.Label
		}
		fmt.Printf("  %-4d  %-*s  %s\n", i+1, maxLen, round.Vitamin, strings.Join(labels, ", "))
	}

	fmt.Println()
	fmt.Println("Run 'vitamins play' to start.")
	return nil
}
