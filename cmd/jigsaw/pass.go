package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkovalev/tui-jigsaw/internal/battlepass"
)

var passCmd = &cobra.Command{
	Use:   "pass",
	Short: "Show battle pass progress",
	Run:   runPass,
}

func runPass(_ *cobra.Command, _ []string) {
	session := newSession()
	defer session.Close()

	d := session.State.Doc
	if !d.BattlePassUnlocked {
		fmt.Fprintln(os.Stderr, "The battle pass is not unlocked yet. Keep playing!")
		os.Exit(1)
	}

	stars := session.Pass.Stars()
	fmt.Printf("Stars: %d (%d/%d toward the next tier)\n", stars, stars%battlepass.TierStars, battlepass.TierStars)

	if remaining := d.BattlePassEvent.RemainingAt(session.State.Now()); remaining > 0 {
		fmt.Printf("Event ends in %s\n", remaining.Round(time.Minute))
	} else {
		fmt.Println("Event ended — tier rewards pay out coins instead of cards")
	}
	fmt.Println()

	for _, tier := range session.Pass.Tiers() {
		mark := " "
		if tier.Claimed {
			mark = "*"
		}
		fmt.Printf("  [%s] tier at %d stars\n", mark, tier.Threshold)
	}
}
