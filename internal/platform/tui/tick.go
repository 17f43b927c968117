// Package tui provides the Bubble Tea presentation layer: the menu, the
// level play screen, and the album, battle-pass and wheel views. All
// countdown displays re-derive from persisted timestamps on every tick;
// the ticker itself carries no state.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives the once-per-second refresh of countdowns and the
// battle-pass token spawn timer.
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SpinTickMsg advances the wheel spin animation.
type SpinTickMsg time.Time

func spinTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return SpinTickMsg(t)
	})
}
