package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleAlbumKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.session.State.Doc

	switch {
	case key.Matches(msg, m.keys.Back):
		m.goToMenu()

	case key.Matches(msg, m.keys.Confirm):
		if len(d.Cards.NewInbox) == 0 {
			return m, nil
		}
		res := m.session.Cards.CollectCard(d.Cards.NewInbox[0])
		if res == nil {
			return m, nil
		}
		switch {
		case res.AlbumComplete && res.AllCardsComplete:
			m.advisory = fmt.Sprintf("Album complete: %s! Every card collected — gold cup earned! +%d coins",
				res.AlbumReward.Name, res.CoinsAwarded)
		case res.AlbumComplete:
			m.advisory = fmt.Sprintf("Album complete! Reward: %s, +%d coins", res.AlbumReward.Name, res.CoinsAwarded)
		case res.Duplicate:
			m.advisory = fmt.Sprintf("%s again — filed as a duplicate", m.cardName(res.CardID))
		default:
			m.advisory = fmt.Sprintf("Collected %s", m.cardName(res.CardID))
		}
	}
	return m, nil
}

func (m Model) viewAlbum() string {
	d := m.session.State.Doc
	var b strings.Builder

	b.WriteString(titleStyle.Render("Card Album"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(eventNote(d.AlbumEvent.RemainingAt(m.session.State.Now()))))
	b.WriteString("\n\n")

	for _, album := range m.session.Catalog.Albums() {
		collected, total := m.session.Cards.AlbumProgress(album.ID, true)
		b.WriteString(fmt.Sprintf("%s  %d/%d", album.Name, collected, total))
		if d.HasUnlockedReward(album.ID) {
			b.WriteString(rewardStyle.Render("  ✔ " + album.Reward.Name))
		}
		b.WriteString("\n")
		for _, card := range album.Cards {
			mark := "· "
			style := slotEmptyStyle
			switch {
			case d.Cards.Collected[card.ID]:
				mark = "★ "
				style = slotFilledStyle
			case d.InInbox(card.ID):
				mark = "! "
				style = tokenStyle
			}
			line := fmt.Sprintf("  %s%s", mark, card.Name)
			if n := d.Cards.Duplicates[card.ID]; n > 0 {
				line += fmt.Sprintf(" (x%d)", n+1)
			}
			b.WriteString(style.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	if d.Rewards.TrophiesGoldCup {
		b.WriteString(rewardStyle.Render("🏆 Gold cup: full set collected") + "\n")
	}

	if n := len(d.Cards.NewInbox); n > 0 {
		b.WriteString(tokenStyle.Render(fmt.Sprintf("\n%d new card(s) waiting — press enter to collect", n)) + "\n")
	}
	if m.advisory != "" {
		b.WriteString("\n" + advisoryStyle.Render(m.advisory) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
