package save

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dkovalev/tui-jigsaw/internal/catalog"
	"github.com/dkovalev/tui-jigsaw/internal/event"
)

var migrateNow = time.UnixMilli(10_000_000)

func TestMigrateGarbageFallsBackToDefaults(t *testing.T) {
	cat := catalog.Default()

	for _, data := range []string{"", "not json", `[1,2,3]`} {
		d := Migrate([]byte(data), cat, migrateNow)
		if d.CurrentLevel != 0 || d.CollectionUnlocked {
			t.Errorf("Migrate(%q) did not fall back to defaults", data)
		}
	}
}

func TestMigrateRoundTrip(t *testing.T) {
	cat := catalog.Default()
	orig := Defaults()
	orig.CurrentLevel = 9
	orig.Coins = 120
	orig.CollectionUnlocked = true
	orig.CollectionTutorialCompleted = true
	orig.Cards.Collected["fresh_0"] = true
	orig.Cards.NewInbox = []string{"fresh_1"}
	orig.BattlePassUnlocked = true
	orig.BPStarsTotal = 23
	orig.WheelUnlocked = true
	orig.AlbumEvent = event.NewWindow(migrateNow)
	orig.BattlePassEvent = event.NewWindow(migrateNow)
	orig.RecountAlbums(cat)

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	d := Migrate(data, cat, migrateNow)

	if d.CurrentLevel != 9 || d.Coins != 120 || d.BPStarsTotal != 23 {
		t.Errorf("round trip lost scalars: %+v", d)
	}
	if !d.CollectionUnlocked || !d.BattlePassUnlocked || !d.WheelUnlocked {
		t.Error("round trip lost unlock flags")
	}
	if !d.Cards.Collected["fresh_0"] || !d.InInbox("fresh_1") {
		t.Error("round trip lost card state")
	}
	if d.Albums["fresh"].CollectedCount != 1 {
		t.Errorf("fresh tally = %d, want 1", d.Albums["fresh"].CollectedCount)
	}
}

func TestMigrateDerivesMissingUnlockFlags(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name      string
		doc       string
		wantBP    bool
		wantWheel bool
	}{
		{"low level", `{"currentLevel":3}`, false, false},
		{"past battle pass", `{"currentLevel":6}`, true, false},
		{"past wheel", `{"currentLevel":8}`, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Migrate([]byte(tc.doc), cat, migrateNow)
			if d.BattlePassUnlocked != tc.wantBP {
				t.Errorf("battlePassUnlocked = %v, want %v", d.BattlePassUnlocked, tc.wantBP)
			}
			if d.WheelUnlocked != tc.wantWheel {
				t.Errorf("wheelUnlocked = %v, want %v", d.WheelUnlocked, tc.wantWheel)
			}
		})
	}
}

func TestMigrateDefensiveBattlePassDowngrade(t *testing.T) {
	cat := catalog.Default()

	// Flag says unlocked but the level never reached the threshold.
	d := Migrate([]byte(`{"currentLevel":3,"battlePassUnlocked":true}`), cat, migrateNow)
	if d.BattlePassUnlocked {
		t.Error("battlePassUnlocked must be forced off below its threshold")
	}
}

func TestMigrateSynthesizesEventWindows(t *testing.T) {
	cat := catalog.Default()

	doc := `{"currentLevel":9,"collectionUnlocked":true,"collectionTutorialCompleted":true,"battlePassUnlocked":true}`
	d := Migrate([]byte(doc), cat, migrateNow)

	if d.AlbumEvent == nil {
		t.Fatal("album event window not synthesized")
	}
	if d.BattlePassEvent == nil {
		t.Fatal("battle pass event window not synthesized")
	}
	if d.AlbumEvent.StartAt != migrateNow.UnixMilli() {
		t.Errorf("synthesized window starts at %d, want %d", d.AlbumEvent.StartAt, migrateNow.UnixMilli())
	}
}

func TestMigrateLevelRegressionRelocksCollection(t *testing.T) {
	cat := catalog.Default()

	doc := `{
		"currentLevel": 2,
		"collectionUnlocked": true,
		"collectionTutorialCompleted": true,
		"cards": {"collected": {"fresh_0": true}, "newInbox": ["fresh_1"], "duplicates": {}},
		"albums": {"fresh": {"collectedCount": 1}}
	}`
	d := Migrate([]byte(doc), cat, migrateNow)

	if d.CollectionUnlocked {
		t.Error("regressed save must re-lock the collection")
	}
	if len(d.Cards.Collected) != 0 || len(d.Cards.NewInbox) != 0 {
		t.Error("regressed save must clear collection state")
	}
	if d.AlbumEvent != nil {
		t.Error("regressed save must drop the album event window")
	}
	if d.Albums["fresh"].CollectedCount != 0 {
		t.Error("regressed save must zero album tallies")
	}
}

func TestFromLegacy(t *testing.T) {
	cat := catalog.Default()

	d := FromLegacy(map[string]string{
		"currentLevel": "7",
		"coins":        "42",
		"musicOn":      "false",
		"sfxOn":        "true",
	}, cat, migrateNow)

	if d.CurrentLevel != 7 || d.Coins != 42 {
		t.Errorf("legacy scalars lost: level=%d coins=%d", d.CurrentLevel, d.Coins)
	}
	if d.MusicEnabled() {
		t.Error("legacy musicOn=false not honored")
	}
	if !d.CollectionUnlocked || !d.BattlePassUnlocked {
		t.Error("legacy level 7 should derive collection and battle pass unlocked")
	}
	if d.WheelUnlocked {
		t.Error("legacy level 7 should not derive wheel unlocked")
	}
	if d.AlbumEvent == nil || d.BattlePassEvent == nil {
		t.Error("derived unlocks must carry event windows")
	}
}

func TestFromLegacyGarbageValues(t *testing.T) {
	cat := catalog.Default()

	d := FromLegacy(map[string]string{
		"currentLevel": "banana",
		"coins":        "-5",
	}, cat, migrateNow)

	if d.CurrentLevel != 0 || d.Coins != 0 {
		t.Errorf("garbage legacy values should collapse to defaults, got level=%d coins=%d", d.CurrentLevel, d.Coins)
	}
}
