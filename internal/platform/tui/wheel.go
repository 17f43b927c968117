package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkovalev/tui-jigsaw/internal/wheel"
)

// wheelState animates one spin. The outcome is already fixed when the
// animation starts; the ticker only walks the highlight to it.
type wheelState struct {
	spin      *wheel.Spin
	hot       int
	stepsLeft int
	note      string
}

func (m Model) handleWheelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := &m.wheelView

	switch {
	case key.Matches(msg, m.keys.Back):
		if w.spin == nil || w.spin.Phase == wheel.PhaseResolved {
			m.goToMenu()
		}

	case key.Matches(msg, m.keys.Spin):
		if w.spin != nil && w.spin.Phase == wheel.PhaseSpinning {
			return m, nil
		}
		spin := m.session.Wheel.Begin(wheel.KindFree)
		if spin == nil {
			m.advisory = "next free spin in " + shortDuration(m.session.Wheel.CooldownRemaining())
			return m, nil
		}
		w.spin = spin
		w.note = ""
		w.hot = 0
		// Two full revolutions, then land on the picked segment.
		w.stepsLeft = 2*len(spin.Pool) + spin.Index
		return m, spinTickCmd()
	}
	return m, nil
}

func (m Model) updateSpin() (tea.Model, tea.Cmd) {
	w := &m.wheelView
	if w.spin == nil || w.spin.Phase != wheel.PhaseSpinning {
		return m, nil
	}
	if w.stepsLeft > 0 {
		w.hot = (w.hot + 1) % len(w.spin.Pool)
		w.stepsLeft--
		return m, spinTickCmd()
	}

	m.session.Wheel.Resolve(w.spin)
	w.note = "You won: " + m.cardName(w.spin.CardID)
	return m, nil
}

func (m Model) viewWheel() string {
	d := m.session.State.Doc
	w := m.wheelView
	var b strings.Builder

	b.WriteString(titleStyle.Render("Reward Wheel"))
	b.WriteString("\n")

	pool := m.session.Cards.WheelSegmentPool()
	hot := -1
	if w.spin != nil {
		pool = w.spin.Pool
		if w.spin.Phase == wheel.PhaseSpinning {
			hot = w.hot
		} else {
			hot = w.spin.Index
		}
	}

	for i, cardID := range pool {
		label := fmt.Sprintf("%d. %s", i+1, m.cardName(cardID))
		if d.Cards.Collected[cardID] {
			label += subtleStyle.Render(" (owned)")
		}
		if i == hot {
			b.WriteString(segmentHotStyle.Render(label))
		} else {
			b.WriteString(segmentStyle.Render(label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case w.spin != nil && w.spin.Phase == wheel.PhaseSpinning:
		b.WriteString(tokenStyle.Render("Spinning..."))
	case w.note != "":
		b.WriteString(rewardStyle.Render(w.note) + subtleStyle.Render("  (check the album inbox)"))
	case m.session.Wheel.Ready():
		b.WriteString(rewardStyle.Render("Free spin ready — press g!"))
	default:
		b.WriteString(subtleStyle.Render("next free spin in " + shortDuration(m.session.Wheel.CooldownRemaining())))
	}

	if m.advisory != "" {
		b.WriteString("\n" + advisoryStyle.Render(m.advisory))
	}
	b.WriteString("\n\n" + m.help.View(m.keys))
	return b.String()
}
