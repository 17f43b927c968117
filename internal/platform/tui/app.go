package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkovalev/tui-jigsaw/internal/app"
	"github.com/dkovalev/tui-jigsaw/internal/progression"
	"github.com/dkovalev/tui-jigsaw/internal/save"
)

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenAlbum
	screenPass
	screenWheel
)

type menuEntry struct {
	label  string
	target screen
	locked func(*save.Document) (bool, string)
}

// Model is the root Bubble Tea model. One model hosts every screen; the
// active screen is a plain enum so leaving the play screen reliably
// discards its transient state (including any live battle-pass token).
type Model struct {
	session *app.Session
	keys    KeyMap
	help    help.Model

	screen screen
	width  int
	height int

	menuCursor int
	advisory   string

	play      *playState
	wheelView wheelState

	onboarding *progression.Flow

	quitting bool
}

// NewModel creates the root model over a session.
func NewModel(session *app.Session) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		session: session,
		keys:    DefaultKeyMap(),
		help:    h,
		width:   80,
		height:  24,
	}
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and routes them to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.screen == screenPlay && m.play != nil {
			m.play.tickToken(m.session)
		}
		return m, tickCmd()

	case SpinTickMsg:
		return m.updateSpin()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	m.advisory = ""

	// An onboarding modal swallows every key until acknowledged.
	if m.onboarding != nil {
		if key.Matches(msg, m.keys.Confirm) {
			m.acknowledgeOnboarding()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.ShowHelp) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.screen {
	case screenMenu:
		return m.handleMenuKey(msg)
	case screenPlay:
		return m.handlePlayKey(msg)
	case screenAlbum:
		return m.handleAlbumKey(msg)
	case screenPass:
		return m.handlePassKey(msg)
	case screenWheel:
		return m.handleWheelKey(msg)
	}
	return m, nil
}

// goToMenu leaves the current screen. Play state is dropped wholesale:
// an uncollected battle-pass token carries no persisted state and is
// simply forgotten.
func (m *Model) goToMenu() {
	m.screen = screenMenu
	m.play = nil
	m.wheelView = wheelState{}
}

// acknowledgeOnboarding applies the active flow's side effects and pulls
// the next queued flow, if any.
func (m *Model) acknowledgeOnboarding() {
	switch *m.onboarding {
	case progression.FlowCollectionIntro:
		m.session.Cards.GrantGiftCards()
		m.session.Cards.CompleteTutorial()
	case progression.FlowWheelIntro:
		m.session.Wheel.MarkTutorialSeen()
	}
	m.onboarding = nil
	if flow, ok := m.session.Progress.NextOnboarding(); ok {
		m.onboarding = &flow
	}
}

func (m *Model) popOnboarding() {
	if m.onboarding != nil {
		return
	}
	if flow, ok := m.session.Progress.NextOnboarding(); ok {
		m.onboarding = &flow
	}
}

func (m Model) menuEntries() []menuEntry {
	return []menuEntry{
		{label: "Play", target: screenPlay},
		{
			label:  "Album",
			target: screenAlbum,
			locked: func(d *save.Document) (bool, string) {
				if !d.CollectionUnlocked {
					return true, fmt.Sprintf("unlocks after level %d", save.CollectionUnlockLevel+1)
				}
				return false, ""
			},
		},
		{
			label:  "Battle Pass",
			target: screenPass,
			locked: func(d *save.Document) (bool, string) {
				if !d.BattlePassUnlocked {
					return true, fmt.Sprintf("unlocks after level %d", save.BattlePassUnlockLevel+1)
				}
				return false, ""
			},
		},
		{
			label:  "Reward Wheel",
			target: screenWheel,
			locked: func(d *save.Document) (bool, string) {
				if !d.WheelUnlocked {
					return true, fmt.Sprintf("unlocks after level %d", save.WheelUnlockLevel+1)
				}
				return false, ""
			},
		},
	}
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.menuEntries()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.menuCursor = (m.menuCursor - 1 + len(entries)) % len(entries)
	case key.Matches(msg, m.keys.Down):
		m.menuCursor = (m.menuCursor + 1) % len(entries)
	case key.Matches(msg, m.keys.Confirm):
		entry := entries[m.menuCursor]
		if entry.locked != nil {
			if locked, note := entry.locked(m.session.State.Doc); locked {
				m.advisory = note
				return m, nil
			}
		}
		switch entry.target {
		case screenPlay:
			m.startPlay()
		case screenWheel:
			m.wheelView = wheelState{}
			m.screen = screenWheel
		default:
			m.screen = entry.target
		}
	case key.Matches(msg, m.keys.Back):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewMenu() string {
	var b strings.Builder
	d := m.session.State.Doc

	b.WriteString(titleStyle.Render("Jigsaw Club"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Level %d   Coins %d   Trophies %d",
		d.CurrentLevel+1, d.Coins, d.Rewards.Trophies)))
	b.WriteString("\n\n")

	now := m.session.State.Now()
	for i, entry := range m.menuEntries() {
		line := "  " + entry.label
		if i == m.menuCursor {
			line = cursorStyle.Render("> " + entry.label)
		}
		if entry.locked != nil {
			if locked, note := entry.locked(d); locked {
				line += lockedStyle.Render("  (" + note + ")")
			}
		}
		switch entry.target {
		case screenAlbum:
			if d.CollectionUnlocked {
				line += subtleStyle.Render("  " + eventNote(d.AlbumEvent.RemainingAt(now)))
			}
		case screenPass:
			if d.BattlePassUnlocked {
				line += subtleStyle.Render("  " + eventNote(d.BattlePassEvent.RemainingAt(now)))
			}
		case screenWheel:
			if d.WheelUnlocked {
				if remaining := m.session.Wheel.CooldownRemaining(); remaining > 0 {
					line += subtleStyle.Render("  next free spin in " + shortDuration(remaining))
				} else {
					line += rewardStyle.Render("  free spin ready!")
				}
			}
		}
		b.WriteString(line + "\n")
	}

	if m.advisory != "" {
		b.WriteString("\n" + advisoryStyle.Render(m.advisory) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

// View renders the active screen, with any onboarding modal on top.
func (m Model) View() string {
	if m.quitting {
		return "Thanks for playing!\n"
	}

	var body string
	switch m.screen {
	case screenMenu:
		body = m.viewMenu()
	case screenPlay:
		body = m.viewPlay()
	case screenAlbum:
		body = m.viewAlbum()
	case screenPass:
		body = m.viewPass()
	case screenWheel:
		body = m.viewWheel()
	}

	if m.onboarding != nil {
		return body + "\n" + modalStyle.Render(onboardingText(*m.onboarding))
	}
	return body
}

func onboardingText(flow progression.Flow) string {
	switch flow {
	case progression.FlowCollectionIntro:
		return "New: the card album!\nComplete levels to earn collectible cards.\nTwo starter cards are waiting in your inbox.\n\npress enter to continue"
	case progression.FlowBattlePassIntro:
		return "New: the battle pass!\nGrab star tokens during levels.\nEvery 10 stars unlocks a tier reward.\n\npress enter to continue"
	case progression.FlowWheelIntro:
		return "New: the reward wheel!\nSpin for a free card every 6 hours.\n\npress enter to continue"
	}
	return ""
}

func eventNote(remaining time.Duration) string {
	if remaining <= 0 {
		return "event ended"
	}
	return "ends in " + shortDuration(remaining)
}

func shortDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	if d >= 24*time.Hour {
		days := d / (24 * time.Hour)
		hours := (d % (24 * time.Hour)) / time.Hour
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if d >= time.Hour {
		return fmt.Sprintf("%dh %dm", d/time.Hour, (d%time.Hour)/time.Minute)
	}
	return fmt.Sprintf("%dm", d/time.Minute)
}
