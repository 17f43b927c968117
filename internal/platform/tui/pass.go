package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkovalev/tui-jigsaw/internal/battlepass"
)

func (m Model) handlePassKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.goToMenu()
	}
	return m, nil
}

func (m Model) viewPass() string {
	d := m.session.State.Doc
	var b strings.Builder

	b.WriteString(titleStyle.Render("Battle Pass"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(eventNote(d.BattlePassEvent.RemainingAt(m.session.State.Now()))))
	b.WriteString("\n\n")

	stars := m.session.Pass.Stars()
	inTier := stars % battlepass.TierStars
	b.WriteString(fmt.Sprintf("Stars: %d   (%d/%d toward the next tier)\n\n", stars, inTier, battlepass.TierStars))

	for _, tier := range m.session.Pass.Tiers() {
		mark := slotEmptyStyle.Render("[ ]")
		if tier.Claimed {
			mark = slotFilledStyle.Render("[★]")
		}
		b.WriteString(fmt.Sprintf("%s  tier at %d stars\n", mark, tier.Threshold))
	}

	b.WriteString(subtleStyle.Render("\nGrab star tokens on the level screen to earn stars.") + "\n")
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
