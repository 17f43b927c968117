package save

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/dkovalev/tui-jigsaw/internal/catalog"
	"github.com/dkovalev/tui-jigsaw/internal/event"
)

// rawDocument mirrors Document with pointers on the fields that newer
// schema versions added, so absence can be told apart from false.
type rawDocument struct {
	CurrentLevel int `json:"currentLevel"`
	Coins        int `json:"coins"`

	CollectionUnlocked          bool                   `json:"collectionUnlocked"`
	CollectionTutorialCompleted bool                   `json:"collectionTutorialCompleted"`
	Albums                      map[string]*AlbumState `json:"albums"`
	Cards                       CardsState             `json:"cards"`
	Rewards                     RewardsState           `json:"rewards"`
	AllCardsRewardClaimed       bool                   `json:"allCardsRewardClaimed"`

	BattlePassUnlocked *bool `json:"battlePassUnlocked"`
	BPStarsTotal       int   `json:"bpStarsTotal"`

	WheelUnlocked     *bool `json:"wheelUnlocked"`
	WheelNextFreeAt   int64 `json:"wheelNextFreeAt"`
	WheelTutorialSeen bool  `json:"wheelTutorialSeen"`

	AlbumEvent      *event.Window `json:"albumEvent"`
	BattlePassEvent *event.Window `json:"battlePassEvent"`

	MusicOn string `json:"musicOn"`
	SfxOn   string `json:"sfxOn"`
}

// Migrate parses a persisted document and forward-migrates it onto the
// current schema. Malformed input is never fatal: anything unreadable
// collapses to defaults, field by field. The returned document is always
// internally consistent.
func Migrate(data []byte, cat *catalog.Catalog, now time.Time) *Document {
	d := Defaults()

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return d
	}

	if raw.CurrentLevel > 0 {
		d.CurrentLevel = raw.CurrentLevel
	}
	if raw.Coins > 0 {
		d.Coins = raw.Coins
	}
	d.CollectionUnlocked = raw.CollectionUnlocked
	d.CollectionTutorialCompleted = raw.CollectionTutorialCompleted
	if raw.Albums != nil {
		d.Albums = raw.Albums
	}
	if raw.Cards.Collected != nil {
		d.Cards.Collected = raw.Cards.Collected
	}
	if raw.Cards.NewInbox != nil {
		d.Cards.NewInbox = raw.Cards.NewInbox
	}
	if raw.Cards.Duplicates != nil {
		d.Cards.Duplicates = raw.Cards.Duplicates
	}
	d.Rewards.Trophies = max(0, raw.Rewards.Trophies)
	if raw.Rewards.UnlockedRewards != nil {
		d.Rewards.UnlockedRewards = raw.Rewards.UnlockedRewards
	}
	d.Rewards.TrophiesGoldCup = raw.Rewards.TrophiesGoldCup
	d.AllCardsRewardClaimed = raw.AllCardsRewardClaimed
	d.BPStarsTotal = max(0, raw.BPStarsTotal)
	d.WheelNextFreeAt = raw.WheelNextFreeAt
	d.WheelTutorialSeen = raw.WheelTutorialSeen
	d.AlbumEvent = raw.AlbumEvent
	d.BattlePassEvent = raw.BattlePassEvent
	if raw.MusicOn != "" {
		d.MusicOn = raw.MusicOn
	}
	if raw.SfxOn != "" {
		d.SfxOn = raw.SfxOn
	}

	// Documents predating the battle pass or wheel derive their unlock
	// state from the level the player had reached.
	if raw.BattlePassUnlocked != nil {
		d.BattlePassUnlocked = *raw.BattlePassUnlocked
	} else {
		d.BattlePassUnlocked = d.CurrentLevel > BattlePassUnlockLevel
	}
	if raw.WheelUnlocked != nil {
		d.WheelUnlocked = *raw.WheelUnlocked
	} else {
		d.WheelUnlocked = d.CurrentLevel > WheelUnlockLevel
	}

	// Defensive downgrade: an unlock flag ahead of the player's level is
	// never honored.
	if d.CurrentLevel <= BattlePassUnlockLevel {
		d.BattlePassUnlocked = false
	}

	// Level regression: if the level dropped back under the collection
	// threshold while collection state exists, re-lock and clear it.
	if d.CurrentLevel <= CollectionUnlockLevel &&
		(d.CollectionUnlocked || len(d.Cards.Collected) > 0 || len(d.Cards.NewInbox) > 0) {
		d.CollectionUnlocked = false
		d.CollectionTutorialCompleted = false
		d.AlbumEvent = nil
		d.ResetCollection()
	}

	// Features marked unlocked always carry an event window.
	if d.CollectionUnlocked {
		event.Ensure(&d.AlbumEvent, now, true)
	}
	if d.BattlePassUnlocked {
		event.Ensure(&d.BattlePassEvent, now, true)
	}

	d.ensureMaps()
	d.RecountAlbums(cat)
	return d
}

// FromLegacy builds a document from the piecemeal keys older builds
// persisted individually, merged onto defaults. One-time upgrade path.
func FromLegacy(values map[string]string, cat *catalog.Catalog, now time.Time) *Document {
	d := Defaults()

	if v, ok := values["currentLevel"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			d.CurrentLevel = n
		}
	}
	if v, ok := values["coins"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			d.Coins = n
		}
	}
	if v, ok := values["musicOn"]; ok && v != "" {
		d.MusicOn = v
	}
	if v, ok := values["sfxOn"]; ok && v != "" {
		d.SfxOn = v
	}

	// Legacy saves predate every meta-feature; re-derive unlocks from the
	// level alone.
	d.CollectionUnlocked = d.CurrentLevel > CollectionUnlockLevel
	// A legacy player past the threshold is past the intro too; leaving
	// the tutorial flag unset would strand the album with no flow left
	// to complete it.
	d.CollectionTutorialCompleted = d.CollectionUnlocked
	d.BattlePassUnlocked = d.CurrentLevel > BattlePassUnlockLevel
	d.WheelUnlocked = d.CurrentLevel > WheelUnlockLevel
	if d.CollectionUnlocked {
		event.Ensure(&d.AlbumEvent, now, true)
	}
	if d.BattlePassUnlocked {
		event.Ensure(&d.BattlePassEvent, now, true)
	}

	d.RecountAlbums(cat)
	return d
}
