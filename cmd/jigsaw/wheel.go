package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkovalev/tui-jigsaw/internal/wheel"
)

var flagPrivileged bool

var wheelCmd = &cobra.Command{
	Use:   "wheel",
	Short: "Spin the reward wheel",
	Long: `Spin the reward wheel for a card.

A free spin is available every 6 hours. The --privileged flag spins
without consuming the free spin or touching its cooldown.

Examples:
  jigsaw wheel
  jigsaw wheel --privileged
  jigsaw wheel --seed 42`,
	Run: runWheel,
}

func init() {
	wheelCmd.Flags().BoolVar(&flagPrivileged, "privileged", false, "Spin without the cooldown gate")
}

func runWheel(_ *cobra.Command, _ []string) {
	session := newSession()
	defer session.Close()

	d := session.State.Doc
	if !d.WheelUnlocked {
		fmt.Fprintln(os.Stderr, "The reward wheel is not unlocked yet. Keep playing!")
		os.Exit(1)
	}

	kind := wheel.KindFree
	if flagPrivileged {
		kind = wheel.KindPrivileged
	}

	spin := session.Wheel.Begin(kind)
	if spin == nil {
		fmt.Fprintf(os.Stderr, "Next free spin in %s\n", session.Wheel.CooldownRemaining().Round(time.Minute))
		os.Exit(1)
	}

	fmt.Println("Segments:")
	for i, cardID := range spin.Pool {
		name := cardID
		if card := session.Catalog.CardByID(cardID); card != nil {
			name = card.Name
		}
		fmt.Printf("  %d. %s\n", i+1, name)
	}

	session.Wheel.Resolve(spin)

	name := spin.CardID
	if card := session.Catalog.CardByID(spin.CardID); card != nil {
		name = card.Name
	}
	fmt.Printf("\nYou won: %s — check the album inbox\n", name)
	if kind == wheel.KindFree {
		fmt.Printf("Next free spin in %s\n", session.Wheel.CooldownRemaining().Round(time.Minute))
	}
}
