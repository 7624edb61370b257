package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vitamin-drop/internal/platform/tui"
	"github.com/vovakirdan/vitamin-drop/internal/storage"
)

var flagSession string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past rounds",
	Long: `Opens a table of recently played rounds and per-vitamin totals.
Press tab to switch between the two views.

With --session, prints the summary of one session instead.

Examples:
  vitamins history
  vitamins history --db ./history.db
  vitamins history --session 0b6f3c1e`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagSession, "session", "", "Print one session by ID or ID prefix")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer store.Close()

	if flagSession != "" {
		return printSession(store, flagSession)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	return tui.RunHistory(store, width, height)
}

func printSession(store *storage.Store, id string) error {
	sess, err := store.FindSession(id)
	if err != nil {
		return fmt.Errorf("session %q: %w", id, err)
	}

	fmt.Printf("Session %s\n", sess.ID)
	fmt.Println()
	fmt.Printf("  %-9s %s\n", "Player", sess.Player)
	fmt.Printf("  %-9s %s\n", "Started", sess.StartedAt.Local().Format("2006-01-02 15:04"))
	if sess.FinishedAt.IsZero() {
		fmt.Printf("  %-9s %s\n", "Finished", "in progress")
	} else {
		fmt.Printf("  %-9s %s\n", "Finished", sess.FinishedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Printf("  %-9s %d\n", "Rounds", sess.Rounds)
	fmt.Printf("  %-9s %d\n", "Mistakes", sess.Mistakes)
	return nil
}
