package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkovalev/tui-jigsaw/internal/app"
	"github.com/dkovalev/tui-jigsaw/internal/catalog"
	"github.com/dkovalev/tui-jigsaw/internal/games/jigsaw"
	"github.com/dkovalev/tui-jigsaw/internal/levels"
	"github.com/dkovalev/tui-jigsaw/internal/progression"
)

// playState is the transient state of one level attempt. It lives only
// while the play screen is active; nothing here is persisted until the
// board completes.
type playState struct {
	levelIndex int
	level      levels.Level
	board      *jigsaw.Board
	slotCursor int

	tokenVisible   bool
	tokenCountdown int
	tierNote       string

	result *progression.LevelResult
}

func (m *Model) startPlay() {
	idx := m.session.State.Doc.CurrentLevel
	level := m.session.Levels.GetWrapped(idx)
	m.play = &playState{
		levelIndex:     idx,
		level:          level,
		board:          jigsaw.New(level, m.session.State.Now().UnixNano()),
		tokenCountdown: m.session.Cfg.Tokens.SpawnSeconds,
	}
	m.screen = screenPlay
}

// tickToken runs once per second while playing. Tokens only spawn once
// the battle pass is unlocked; an unclaimed token stays on screen until
// grabbed or the level is left.
func (p *playState) tickToken(s *app.Session) {
	if !s.State.Doc.BattlePassUnlocked || p.tokenVisible || p.result != nil {
		return
	}
	p.tokenCountdown--
	if p.tokenCountdown <= 0 {
		p.tokenVisible = true
	}
}

func (m Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.play
	if p == nil {
		m.goToMenu()
		return m, nil
	}

	if p.result != nil {
		if key.Matches(msg, m.keys.Confirm) || key.Matches(msg, m.keys.Back) {
			m.goToMenu()
			m.popOnboarding()
		}
		return m, nil
	}

	cols, rows := p.board.Size()
	total := cols * rows

	switch {
	case key.Matches(msg, m.keys.Back):
		m.goToMenu()

	case key.Matches(msg, m.keys.Up):
		p.slotCursor = (p.slotCursor - cols + total) % total
	case key.Matches(msg, m.keys.Down):
		p.slotCursor = (p.slotCursor + cols) % total
	case key.Matches(msg, m.keys.Left):
		p.slotCursor = (p.slotCursor - 1 + total) % total
	case key.Matches(msg, m.keys.Right):
		p.slotCursor = (p.slotCursor + 1) % total

	case key.Matches(msg, m.keys.Cycle):
		p.board.CycleSelection(1)

	case key.Matches(msg, m.keys.Token):
		if p.tokenVisible {
			p.tokenVisible = false
			p.tokenCountdown = m.session.Cfg.Tokens.SpawnSeconds
			if reward := m.session.Pass.AcknowledgeToken(); reward != nil {
				if reward.CardID != "" {
					p.tierNote = fmt.Sprintf("Tier %d reached: new card %s!", reward.Tier, m.cardName(reward.CardID))
				} else {
					p.tierNote = fmt.Sprintf("Tier %d reached: +%d coins", reward.Tier, reward.Coins)
				}
			}
		}

	case key.Matches(msg, m.keys.Confirm):
		if p.board.Place(p.slotCursor) && p.board.Completed() {
			res := m.session.Progress.CompleteLevel(p.levelIndex)
			p.result = &res
		}
	}
	return m, nil
}

func (m Model) viewPlay() string {
	p := m.play
	if p == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Level %d", p.levelIndex+1)))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("image " + catalog.ArtRef(p.board.ImageSeed())))
	b.WriteString("\n")

	cols, rows := p.board.Size()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			slot := r*cols + c
			cell := "[ ]"
			style := slotEmptyStyle
			if p.board.PlacedAt(slot) {
				cell = "[#]"
				style = slotFilledStyle
			}
			if slot == p.slotCursor {
				style = slotCursorStyle
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}

	placed, total := p.board.Progress()
	b.WriteString(subtleStyle.Render(fmt.Sprintf("\n%d/%d placed", placed, total)))
	if piece, ok := p.board.Selected(); ok {
		row, col := piece/cols, piece%cols
		b.WriteString(fmt.Sprintf("\nIn hand: piece for row %d, column %d (%d left, tab to cycle)", row+1, col+1, p.board.TrayCount()))
	}

	if p.tokenVisible {
		b.WriteString("\n" + tokenStyle.Render("* A star token appeared! Press t to grab it."))
	}
	if p.tierNote != "" {
		b.WriteString("\n" + rewardStyle.Render(p.tierNote))
	}

	if p.result != nil {
		b.WriteString("\n\n" + modalStyle.Render(m.resultText(p.result)))
	} else {
		b.WriteString("\n\n" + m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) resultText(res *progression.LevelResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Level %d complete!\n+%d coins", res.LevelIndex+1, res.CoinsAwarded)
	if res.CardDrop != "" {
		fmt.Fprintf(&b, "\nNew card: %s", m.cardName(res.CardDrop))
	}
	b.WriteString("\n\npress enter to continue")
	return b.String()
}

func (m Model) cardName(cardID string) string {
	if card := m.session.Catalog.CardByID(cardID); card != nil {
		return card.Name
	}
	return cardID
}
