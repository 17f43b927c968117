// Package battlepass accumulates progression stars and issues tiered
// rewards. Stars only ever increase; tier claimed state is derived from
// the star total alone so it can never desync from it.
package battlepass

import (
	"github.com/dkovalev/tui-jigsaw/internal/collection"
	"github.com/dkovalev/tui-jigsaw/internal/save"
)

const (
	// TierStars is the star cost of one tier.
	TierStars = 10
	// DisplayTiers is the tier horizon shown to the player.
	DisplayTiers = 5
	// ExpiredCoins replaces the card reward once the event has ended.
	ExpiredCoins = 10
)

// Engine drives star accumulation and tier rewards.
type Engine struct {
	state *save.State
	cards *collection.Engine
}

// New creates a battle pass engine.
func New(state *save.State, cards *collection.Engine) *Engine {
	return &Engine{state: state, cards: cards}
}

// TierReward reports what crossing a tier granted.
type TierReward struct {
	Tier   int
	CardID string
	Coins  int
}

// AcknowledgeToken records one collected in-session token as a star.
// The UI decides when tokens are obtainable; the engine only applies the
// increment and the threshold rule. Crossing a multiple of TierStars
// draws a card while the battle-pass window is active, and silently
// degrades to a flat coin credit once it has expired — the star
// increment itself is never blocked.
func (e *Engine) AcknowledgeToken() *TierReward {
	d := e.state.Doc
	d.BPStarsTotal++

	if d.BPStarsTotal%TierStars != 0 {
		e.state.Persist()
		return nil
	}

	reward := &TierReward{Tier: d.BPStarsTotal / TierStars}
	if d.BattlePassEvent.ActiveAt(e.state.Now()) {
		award := e.cards.AwardFromBattlePass()
		reward.CardID = award.CardID
		reward.Coins = award.Coins
	} else {
		d.Coins += ExpiredCoins
		reward.Coins = ExpiredCoins
	}
	e.state.Persist()
	return reward
}

// Stars returns the cumulative star total.
func (e *Engine) Stars() int {
	return e.state.Doc.BPStarsTotal
}

// Tier is one display row of the reward track.
type Tier struct {
	Threshold int
	Claimed   bool
}

// Tiers derives the first DisplayTiers rows. Claimed is computed from
// the star total, never stored.
func (e *Engine) Tiers() []Tier {
	stars := e.state.Doc.BPStarsTotal
	tiers := make([]Tier, DisplayTiers)
	for i := range tiers {
		threshold := (i + 1) * TierStars
		tiers[i] = Tier{Threshold: threshold, Claimed: stars >= threshold}
	}
	return tiers
}
