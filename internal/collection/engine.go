// Package collection owns card acquisition: grants, deduplication, the
// inbox of unacknowledged cards, album-completion detection and the
// terminal all-cards reward. Every "next card" choice resolves by fixed
// catalog order, never randomly, so outcomes are deterministic given
// save state.
package collection

import (
	"github.com/dkovalev/tui-jigsaw/internal/catalog"
	"github.com/dkovalev/tui-jigsaw/internal/event"
	"github.com/dkovalev/tui-jigsaw/internal/save"
)

const (
	// AlbumCompletionCoins is credited once per completed album.
	AlbumCompletionCoins = 20
	// GoldCupCoins is credited once when every card is collected.
	GoldCupCoins = 50
	// FallbackCoins is the battle-pass reward when no card remains.
	FallbackCoins = 10
	// WheelPoolSize is the fixed segment count of the reward wheel.
	WheelPoolSize = 6
	// GoldCupRewardID marks the terminal reward in unlockedRewards.
	GoldCupRewardID = "goldCup"
)

// GiftCardIDs are the starter cards granted once at album unlock.
var GiftCardIDs = []string{"fresh_0", "fresh_1"}

// Engine mutates collection state through the save handle.
type Engine struct {
	state *save.State
	cat   *catalog.Catalog
}

// New creates a collection engine over the given save state and catalog.
func New(state *save.State, cat *catalog.Catalog) *Engine {
	return &Engine{state: state, cat: cat}
}

// Available reports whether the album feature accepts card drops: the
// collection must be unlocked and its tutorial completed.
func (e *Engine) Available() bool {
	d := e.state.Doc
	return d.CollectionUnlocked && d.CollectionTutorialCompleted
}

// CompleteTutorial marks the one-time album onboarding as done.
func (e *Engine) CompleteTutorial() {
	if e.state.Doc.CollectionTutorialCompleted {
		return
	}
	e.state.Doc.CollectionTutorialCompleted = true
	e.state.Persist()
}

// GrantGiftCards idempotently ensures the starter cards are pending.
// Cards already collected or already in the inbox are skipped, so a
// repeat call changes nothing. Returns the ids actually added.
func (e *Engine) GrantGiftCards() []string {
	d := e.state.Doc
	var added []string
	for _, id := range GiftCardIDs {
		if d.Cards.Collected[id] || d.InInbox(id) {
			continue
		}
		d.Cards.NewInbox = append(d.Cards.NewInbox, id)
		added = append(added, id)
	}
	if len(added) > 0 {
		e.state.Persist()
	}
	return added
}

// HandleLevelCompleted runs the collection's one-shot unlock transition.
// Below the threshold level nothing happens. The first completion at or
// past the threshold unlocks the album, opens a fresh event window and
// reports unlockedNow; the persisted flag guards every later call.
func (e *Engine) HandleLevelCompleted(levelIndex int) (unlockedNow bool) {
	d := e.state.Doc
	if d.CollectionUnlocked || levelIndex < save.CollectionUnlockLevel {
		return false
	}
	d.CollectionUnlocked = true
	event.Ensure(&d.AlbumEvent, e.state.Now(), true)
	e.state.Persist()
	return true
}

// GrantLevelDrop grants the level-completion card. Returns false unless
// the album feature is available. The first card in catalog order that
// is neither collected nor pending goes to the inbox; once none remain,
// the drop degrades to a duplicate of catalog[level mod total].
func (e *Engine) GrantLevelDrop(levelIndex int) (string, bool) {
	if !e.Available() {
		return "", false
	}
	d := e.state.Doc

	if card := e.nextUncollected(); card != nil {
		d.Cards.NewInbox = append(d.Cards.NewInbox, card.ID)
		e.state.Persist()
		return card.ID, true
	}

	all := e.cat.AllCards()
	idx := levelIndex % len(all)
	if idx < 0 {
		idx += len(all)
	}
	id := all[idx].ID
	d.Cards.Duplicates[id]++
	e.state.Persist()
	return id, true
}

// Award is the outcome of a battle-pass tier reward.
type Award struct {
	CardID string
	Coins  int
}

// AwardFromBattlePass grants the next uncollected, unpending card in
// catalog order, or falls back to a flat coin credit once every card is
// accounted for.
func (e *Engine) AwardFromBattlePass() Award {
	d := e.state.Doc
	if card := e.nextUncollected(); card != nil {
		d.Cards.NewInbox = append(d.Cards.NewInbox, card.ID)
		e.state.Persist()
		return Award{CardID: card.ID}
	}
	d.Coins += FallbackCoins
	e.state.Persist()
	return Award{Coins: FallbackCoins}
}

// WheelSegmentPool builds the fixed-size wheel candidate list:
// uncollected cards first in catalog order, then collected cards
// cyclically, then raw catalog cards cyclically when the player owns
// nothing yet. Deterministic given save state; randomness happens at
// spin time only.
func (e *Engine) WheelSegmentPool() []string {
	d := e.state.Doc

	pool := make([]string, 0, WheelPoolSize)
	for _, card := range e.cat.AllCards() {
		if len(pool) == WheelPoolSize {
			return pool
		}
		if !d.Cards.Collected[card.ID] && !d.InInbox(card.ID) {
			pool = append(pool, card.ID)
		}
	}

	filler := make([]string, 0, e.cat.TotalCards())
	for _, card := range e.cat.AllCards() {
		if d.Cards.Collected[card.ID] {
			filler = append(filler, card.ID)
		}
	}
	if len(filler) == 0 {
		for _, card := range e.cat.AllCards() {
			filler = append(filler, card.ID)
		}
	}

	for i := 0; len(pool) < WheelPoolSize; i++ {
		pool = append(pool, filler[i%len(filler)])
	}
	return pool
}

// AwardFromWheel pushes cardID into the inbox unconditionally. The wheel
// is the one grant path allowed to re-deliver an already-collected card;
// such a card counts as a duplicate copy.
func (e *Engine) AwardFromWheel(cardID string) {
	d := e.state.Doc
	d.Cards.NewInbox = append(d.Cards.NewInbox, cardID)
	if d.Cards.Collected[cardID] {
		d.Cards.Duplicates[cardID]++
	}
	e.state.Persist()
}

// CollectResult reports what acknowledging a card triggered.
type CollectResult struct {
	CardID           string
	Duplicate        bool
	AlbumComplete    bool
	AlbumReward      *catalog.Reward
	AllCardsComplete bool
	CoinsAwarded     int
}

// CollectCard moves a card from the inbox into the collected set.
// Returns nil when the card is not pending. On a true transition the
// owning album's tally advances; completing the album awards a trophy,
// a reward entry and coins, and completing the entire catalog latches
// the one-time gold cup reward. Both can fire from the same call.
func (e *Engine) CollectCard(cardID string) *CollectResult {
	d := e.state.Doc
	if !d.RemoveFromInbox(cardID) {
		return nil
	}

	res := &CollectResult{CardID: cardID}

	if d.Cards.Collected[cardID] {
		// Wheel re-delivery: the duplicate copy was already counted at
		// grant time, acknowledging it only clears the inbox entry.
		res.Duplicate = true
		e.state.Persist()
		return res
	}

	card := e.cat.CardByID(cardID)
	if card == nil {
		// Unknown id somehow reached the inbox; drop it silently.
		e.state.Persist()
		return nil
	}

	d.Cards.Collected[cardID] = true
	albumState := d.AlbumFor(card.AlbumID)
	albumState.CollectedCount++

	album := e.cat.AlbumByID(card.AlbumID)
	if albumState.CollectedCount == len(album.Cards) {
		d.Rewards.Trophies++
		d.AddUnlockedReward(album.ID)
		d.Coins += AlbumCompletionCoins
		res.AlbumComplete = true
		res.AlbumReward = &album.Reward
		res.CoinsAwarded += AlbumCompletionCoins
	}

	if d.CollectedCount() == e.cat.TotalCards() && !d.AllCardsRewardClaimed {
		d.AllCardsRewardClaimed = true
		d.Rewards.TrophiesGoldCup = true
		d.AddUnlockedReward(GoldCupRewardID)
		d.Coins += GoldCupCoins
		res.AllCardsComplete = true
		res.CoinsAwarded += GoldCupCoins
	}

	e.state.Persist()
	return res
}

// CollectedTotal returns the number of collected cards; with
// includeInbox, cards pending acknowledgement count toward the displayed
// total without mutating persisted state.
func (e *Engine) CollectedTotal(includeInbox bool) int {
	d := e.state.Doc
	total := d.CollectedCount()
	if includeInbox {
		total += e.pendingNew(nil)
	}
	return total
}

// AlbumProgress returns the collected and total card counts for one
// album, optionally counting pending cards.
func (e *Engine) AlbumProgress(albumID string, includeInbox bool) (collected, total int) {
	album := e.cat.AlbumByID(albumID)
	if album == nil {
		return 0, 0
	}
	d := e.state.Doc
	collected = d.AlbumFor(albumID).CollectedCount
	if includeInbox {
		collected += e.pendingNew(album)
	}
	return collected, len(album.Cards)
}

// ResetCollectionState clears collected cards, the inbox, duplicates and
// album tallies. Used by full progress reset.
func (e *Engine) ResetCollectionState() {
	e.state.Doc.ResetCollection()
	e.state.Persist()
}

// nextUncollected returns the first catalog-order card that is neither
// collected nor pending, or nil when none remain.
func (e *Engine) nextUncollected() *catalog.Card {
	d := e.state.Doc
	for _, card := range e.cat.AllCards() {
		if !d.Cards.Collected[card.ID] && !d.InInbox(card.ID) {
			c := card
			return &c
		}
	}
	return nil
}

// pendingNew counts distinct inbox cards that are not yet collected,
// optionally restricted to one album.
func (e *Engine) pendingNew(album *catalog.Album) int {
	d := e.state.Doc
	seen := make(map[string]bool)
	count := 0
	for _, id := range d.Cards.NewInbox {
		if seen[id] || d.Cards.Collected[id] {
			continue
		}
		seen[id] = true
		if album != nil {
			card := e.cat.CardByID(id)
			if card == nil || card.AlbumID != album.ID {
				continue
			}
		}
		count++
	}
	return count
}
