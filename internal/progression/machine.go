// Package progression sequences what happens when a level completes:
// the fixed-priority unlock cascade (collection, then battle pass, then
// wheel), the per-level coin reward, the album card drop, and the queue
// of one-time onboarding flows shown to the player one at a time.
package progression

import (
	"github.com/dkovalev/tui-jigsaw/internal/collection"
	"github.com/dkovalev/tui-jigsaw/internal/event"
	"github.com/dkovalev/tui-jigsaw/internal/save"
)

// LevelCoins is credited for every completed level.
const LevelCoins = 5

// Flow identifies a one-time onboarding modal.
type Flow int

const (
	FlowCollectionIntro Flow = iota
	FlowBattlePassIntro
	FlowWheelIntro
)

// LevelResult reports everything one completion triggered.
type LevelResult struct {
	LevelIndex         int
	CoinsAwarded       int
	CardDrop           string
	CollectionUnlocked bool
	BattlePassUnlocked bool
	WheelUnlocked      bool
}

// Machine is the level-completion handler. Only one onboarding flow is
// surfaced at a time; the rest wait in priority order for the next
// continue action.
type Machine struct {
	state   *save.State
	cards   *collection.Engine
	pending []Flow
}

// New creates a progression machine.
func New(state *save.State, cards *collection.Engine) *Machine {
	return &Machine{state: state, cards: cards}
}

// CompleteLevel runs the unlock cascade for a finished level. The
// collection unlock is one-shot behind its persisted flag; the battle
// pass and wheel unlocks are guarded by the level match alone, so
// re-completing their levels after a full reset re-triggers them — a
// full reset clears the unlock flags too.
func (m *Machine) CompleteLevel(levelIndex int) LevelResult {
	d := m.state.Doc
	res := LevelResult{LevelIndex: levelIndex}

	res.CoinsAwarded = LevelCoins
	d.Coins += LevelCoins

	if m.cards.HandleLevelCompleted(levelIndex) {
		res.CollectionUnlocked = true
		m.pending = append(m.pending, FlowCollectionIntro)
	}

	if levelIndex == save.BattlePassUnlockLevel {
		d.BattlePassUnlocked = true
		event.Ensure(&d.BattlePassEvent, m.state.Now(), true)
		res.BattlePassUnlocked = true
		m.pending = append(m.pending, FlowBattlePassIntro)
	}

	if levelIndex == save.WheelUnlockLevel {
		d.WheelUnlocked = true
		res.WheelUnlocked = true
		m.pending = append(m.pending, FlowWheelIntro)
	}

	// Card drops are orthogonal to the unlock sequence; they fire on any
	// level once the album feature is available.
	if id, ok := m.cards.GrantLevelDrop(levelIndex); ok {
		res.CardDrop = id
	}

	if levelIndex+1 > d.CurrentLevel {
		d.CurrentLevel = levelIndex + 1
	}

	m.state.Persist()
	return res
}

// NextOnboarding pops the highest-priority queued flow, if any.
func (m *Machine) NextOnboarding() (Flow, bool) {
	if len(m.pending) == 0 {
		return 0, false
	}
	flow := m.pending[0]
	m.pending = m.pending[1:]
	return flow, true
}

// PendingOnboarding returns the number of queued flows.
func (m *Machine) PendingOnboarding() int {
	return len(m.pending)
}
