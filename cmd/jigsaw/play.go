package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkovalev/tui-jigsaw/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the full-screen game.

Controls:
  Arrows/hjkl  - Move the slot cursor
  Tab          - Cycle the piece in hand
  Enter/Space  - Place piece / confirm
  t            - Grab a star token
  g            - Spin the wheel
  Esc/b        - Back to menu
  Q/Ctrl+C     - Quit

Examples:
  jigsaw play
  jigsaw play --db ./save.db
  jigsaw play --seed 42`,
	Run: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: play requires an interactive terminal")
		os.Exit(1)
	}

	session := newSession()
	defer session.Close()

	p := tea.NewProgram(tui.NewModel(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
