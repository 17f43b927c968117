package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagCollect bool

var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Show the card album",
	Long: `Display album progress and pending inbox cards.

With --collect, every pending card is acknowledged into the album,
reporting album completions as they happen.

Examples:
  jigsaw album
  jigsaw album --collect`,
	Run: runAlbum,
}

func init() {
	albumCmd.Flags().BoolVar(&flagCollect, "collect", false, "Collect all pending inbox cards")
}

func runAlbum(_ *cobra.Command, _ []string) {
	session := newSession()
	defer session.Close()

	d := session.State.Doc
	if !d.CollectionUnlocked {
		fmt.Fprintln(os.Stderr, "The card album is not unlocked yet. Keep playing!")
		os.Exit(1)
	}

	if flagCollect {
		for len(d.Cards.NewInbox) > 0 {
			res := session.Cards.CollectCard(d.Cards.NewInbox[0])
			if res == nil {
				break
			}
			name := res.CardID
			if card := session.Catalog.CardByID(res.CardID); card != nil {
				name = card.Name
			}
			if res.Duplicate {
				fmt.Printf("Duplicate: %s\n", name)
			} else {
				fmt.Printf("Collected: %s\n", name)
			}
			if res.AlbumComplete {
				fmt.Printf("Album complete! Reward: %s (+%d coins)\n", res.AlbumReward.Name, res.CoinsAwarded)
			}
			if res.AllCardsComplete {
				fmt.Println("Every card collected — gold cup earned!")
			}
		}
		fmt.Println()
	}

	for _, album := range session.Catalog.Albums() {
		collected, total := session.Cards.AlbumProgress(album.ID, true)
		fmt.Printf("%s  %d/%d\n", album.Name, collected, total)
		for _, card := range album.Cards {
			mark := " "
			switch {
			case d.Cards.Collected[card.ID]:
				mark = "*"
			case d.InInbox(card.ID):
				mark = "!"
			}
			fmt.Printf("  [%s] %s\n", mark, card.Name)
		}
	}

	if n := len(d.Cards.NewInbox); n > 0 && !flagCollect {
		fmt.Printf("\n%d new card(s) in the inbox — rerun with --collect\n", n)
	}
}
