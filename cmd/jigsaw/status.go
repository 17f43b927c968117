package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkovalev/tui-jigsaw/internal/save"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show progression at a glance",
	Run:   runStatus,
}

func runStatus(_ *cobra.Command, _ []string) {
	session := newSession()
	defer session.Close()

	d := session.State.Doc
	now := session.State.Now()

	fmt.Printf("Level:    %d\n", d.CurrentLevel+1)
	fmt.Printf("Coins:    %d\n", d.Coins)
	fmt.Printf("Trophies: %d\n", d.Rewards.Trophies)
	fmt.Println()

	fmt.Printf("Album:       %s\n", featureStatus(d.CollectionUnlocked, save.CollectionUnlockLevel, d.AlbumEvent.RemainingAt(now)))
	fmt.Printf("Battle pass: %s\n", featureStatus(d.BattlePassUnlocked, save.BattlePassUnlockLevel, d.BattlePassEvent.RemainingAt(now)))
	if d.WheelUnlocked {
		if remaining := session.Wheel.CooldownRemaining(); remaining > 0 {
			fmt.Printf("Wheel:       free spin in %s\n", remaining.Round(time.Minute))
		} else {
			fmt.Println("Wheel:       free spin ready")
		}
	} else {
		fmt.Printf("Wheel:       locked (unlocks after level %d)\n", save.WheelUnlockLevel+1)
	}

	if d.CollectionUnlocked {
		fmt.Println()
		fmt.Printf("Cards:    %d/%d collected\n", session.Cards.CollectedTotal(true), session.Catalog.TotalCards())
		if n := len(d.Cards.NewInbox); n > 0 {
			fmt.Printf("Inbox:    %d new card(s) — run 'jigsaw album --collect'\n", n)
		}
	}
	if d.BattlePassUnlocked {
		fmt.Printf("Stars:    %d\n", session.Pass.Stars())
	}
}

func featureStatus(unlocked bool, threshold int, remaining time.Duration) string {
	if !unlocked {
		return fmt.Sprintf("locked (unlocks after level %d)", threshold+1)
	}
	if remaining <= 0 {
		return "unlocked, event ended"
	}
	return fmt.Sprintf("unlocked, event ends in %s", remaining.Round(time.Minute))
}
