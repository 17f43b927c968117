// Package save defines the single persisted save document, its defaults
// and forward migration, and the SQLite-backed store it lives in. All
// engine mutation goes through a State handle that owns the in-memory
// document; the document is authoritative for the session even when a
// disk write fails.
package save

import (
	"github.com/dkovalev/tui-jigsaw/internal/catalog"
	"github.com/dkovalev/tui-jigsaw/internal/event"
)

// Level indices whose completion unlocks a meta-feature. The player's
// currentLevel points at the next level to play, so "feature unlocked"
// implies currentLevel is strictly above the feature's index.
const (
	CollectionUnlockLevel = 4 // "level 5"
	BattlePassUnlockLevel = 5 // "level 6"
	WheelUnlockLevel      = 7 // "level 8"
)

// AlbumState is the denormalized per-album tally. It is a cache over
// Cards.Collected and is recomputed at load time.
type AlbumState struct {
	CollectedCount int `json:"collectedCount"`
}

// CardsState tracks card ownership. Collected is the permanent set,
// NewInbox holds granted-but-unacknowledged card ids in grant order, and
// Duplicates counts extra copies beyond the first.
type CardsState struct {
	Collected  map[string]bool `json:"collected"`
	NewInbox   []string        `json:"newInbox"`
	Duplicates map[string]int  `json:"duplicates"`
}

// RewardsState tracks trophies and one-time reward entries.
type RewardsState struct {
	Trophies        int      `json:"trophies"`
	UnlockedRewards []string `json:"unlockedRewards"`
	TrophiesGoldCup bool     `json:"trophiesGoldCup"`
}

// Document is the single root of persisted player state.
type Document struct {
	CurrentLevel int `json:"currentLevel"`
	Coins        int `json:"coins"`

	CollectionUnlocked          bool                   `json:"collectionUnlocked"`
	CollectionTutorialCompleted bool                   `json:"collectionTutorialCompleted"`
	Albums                      map[string]*AlbumState `json:"albums"`
	Cards                       CardsState             `json:"cards"`
	Rewards                     RewardsState           `json:"rewards"`
	AllCardsRewardClaimed       bool                   `json:"allCardsRewardClaimed"`

	BattlePassUnlocked bool `json:"battlePassUnlocked"`
	BPStarsTotal       int  `json:"bpStarsTotal"`

	WheelUnlocked     bool  `json:"wheelUnlocked"`
	WheelNextFreeAt   int64 `json:"wheelNextFreeAt"`
	WheelTutorialSeen bool  `json:"wheelTutorialSeen"`

	AlbumEvent      *event.Window `json:"albumEvent"`
	BattlePassEvent *event.Window `json:"battlePassEvent"`

	// Stored as "true"/"false" strings for save-format compatibility.
	MusicOn string `json:"musicOn"`
	SfxOn   string `json:"sfxOn"`
}

// Defaults returns a fresh first-run document.
func Defaults() *Document {
	d := &Document{
		MusicOn: "true",
		SfxOn:   "true",
	}
	d.ensureMaps()
	return d
}

func (d *Document) ensureMaps() {
	if d.Albums == nil {
		d.Albums = make(map[string]*AlbumState)
	}
	if d.Cards.Collected == nil {
		d.Cards.Collected = make(map[string]bool)
	}
	if d.Cards.NewInbox == nil {
		d.Cards.NewInbox = []string{}
	}
	if d.Cards.Duplicates == nil {
		d.Cards.Duplicates = make(map[string]int)
	}
	if d.Rewards.UnlockedRewards == nil {
		d.Rewards.UnlockedRewards = []string{}
	}
}

// MusicEnabled reports the music toggle; anything but "false" is on.
func (d *Document) MusicEnabled() bool { return d.MusicOn != "false" }

// SfxEnabled reports the sound-effects toggle.
func (d *Document) SfxEnabled() bool { return d.SfxOn != "false" }

// SetMusic stores the music toggle in its string form.
func (d *Document) SetMusic(on bool) { d.MusicOn = boolString(on) }

// SetSfx stores the sound-effects toggle in its string form.
func (d *Document) SetSfx(on bool) { d.SfxOn = boolString(on) }

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// InInbox reports whether cardID is pending acknowledgement.
func (d *Document) InInbox(cardID string) bool {
	for _, id := range d.Cards.NewInbox {
		if id == cardID {
			return true
		}
	}
	return false
}

// RemoveFromInbox deletes the first inbox occurrence of cardID,
// preserving grant order. Returns false when cardID is not pending.
func (d *Document) RemoveFromInbox(cardID string) bool {
	for i, id := range d.Cards.NewInbox {
		if id == cardID {
			d.Cards.NewInbox = append(d.Cards.NewInbox[:i], d.Cards.NewInbox[i+1:]...)
			return true
		}
	}
	return false
}

// HasUnlockedReward reports membership in the unlocked-rewards set.
func (d *Document) HasUnlockedReward(id string) bool {
	for _, r := range d.Rewards.UnlockedRewards {
		if r == id {
			return true
		}
	}
	return false
}

// AddUnlockedReward records a reward entry once; repeat calls are no-ops.
func (d *Document) AddUnlockedReward(id string) {
	if !d.HasUnlockedReward(id) {
		d.Rewards.UnlockedRewards = append(d.Rewards.UnlockedRewards, id)
	}
}

// AlbumFor returns the tally for albumID, creating it on first use.
func (d *Document) AlbumFor(albumID string) *AlbumState {
	a := d.Albums[albumID]
	if a == nil {
		a = &AlbumState{}
		d.Albums[albumID] = a
	}
	return a
}

// ResetCollection clears collected cards, the inbox, duplicate counters
// and every per-album tally. Used by full progress reset and by the
// level-regression migration.
func (d *Document) ResetCollection() {
	d.Cards.Collected = make(map[string]bool)
	d.Cards.NewInbox = []string{}
	d.Cards.Duplicates = make(map[string]int)
	for _, a := range d.Albums {
		a.CollectedCount = 0
	}
}

// RecountAlbums recomputes every per-album collectedCount cache from the
// Cards.Collected source set. Run at load so stale caches cannot survive
// a migration.
func (d *Document) RecountAlbums(cat *catalog.Catalog) {
	for _, album := range cat.Albums() {
		count := 0
		for _, card := range album.Cards {
			if d.Cards.Collected[card.ID] {
				count++
			}
		}
		d.AlbumFor(album.ID).CollectedCount = count
	}
}

// CollectedCount returns the number of permanently collected cards.
func (d *Document) CollectedCount() int {
	count := 0
	for _, ok := range d.Cards.Collected {
		if ok {
			count++
		}
	}
	return count
}
