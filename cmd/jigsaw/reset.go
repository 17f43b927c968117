package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all progress",
	Long: `Reset the save to a fresh first run: level, coins, cards, battle pass
stars, and every unlock. Requires --yes to actually wipe.`,
	Run: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm the wipe")
}

func runReset(_ *cobra.Command, _ []string) {
	if !flagYes {
		fmt.Fprintln(os.Stderr, "This wipes all progress. Rerun with --yes to confirm.")
		os.Exit(1)
	}

	session := newSession()
	defer session.Close()

	session.State.Reset()
	fmt.Println("Progress wiped.")
}
