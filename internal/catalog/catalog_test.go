package catalog

import "testing"

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()

	albums := c.Albums()
	if len(albums) != 2 {
		t.Fatalf("album count = %d, want 2", len(albums))
	}
	if albums[0].ID != "fresh" || albums[1].ID != "sweet" {
		t.Errorf("album order = %q, %q; want fresh, sweet", albums[0].ID, albums[1].ID)
	}
	for _, a := range albums {
		if len(a.Cards) != 8 {
			t.Errorf("album %q has %d cards, want 8", a.ID, len(a.Cards))
		}
		if a.Reward.Name == "" {
			t.Errorf("album %q has no completion reward", a.ID)
		}
	}
	if c.TotalCards() != 16 {
		t.Errorf("TotalCards = %d, want 16", c.TotalCards())
	}
}

func TestCatalogOrderIsAlbumThenCard(t *testing.T) {
	c := Default()

	all := c.AllCards()
	if all[0].ID != "fresh_0" {
		t.Errorf("first card = %q, want fresh_0", all[0].ID)
	}
	if all[7].ID != "fresh_7" {
		t.Errorf("eighth card = %q, want fresh_7", all[7].ID)
	}
	if all[8].ID != "sweet_0" {
		t.Errorf("ninth card = %q, want sweet_0", all[8].ID)
	}
}

func TestLookups(t *testing.T) {
	c := Default()

	card := c.CardByID("fresh_3")
	if card == nil {
		t.Fatal("CardByID(fresh_3) = nil")
	}
	if card.AlbumID != "fresh" {
		t.Errorf("fresh_3 album = %q, want fresh", card.AlbumID)
	}
	if card.RarityStars < 1 || card.RarityStars > 3 {
		t.Errorf("fresh_3 rarity = %d, want 1..3", card.RarityStars)
	}

	if c.CardByID("no_such_card") != nil {
		t.Error("unknown card lookup should return nil")
	}
	if c.AlbumByID("no_such_album") != nil {
		t.Error("unknown album lookup should return nil")
	}

	album := c.AlbumByID("fresh")
	if album == nil {
		t.Fatal("AlbumByID(fresh) = nil")
	}
	if album.Reward.Name != "Truffle" {
		t.Errorf("fresh reward = %q, want Truffle", album.Reward.Name)
	}
}

func TestParseRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"no albums", "albums: []"},
		{
			"duplicate card id",
			`albums:
  - id: a
    name: A
    cards:
      - {id: c1, name: One, rarity: 1}
      - {id: c1, name: Two, rarity: 1}`,
		},
		{
			"rarity out of range",
			`albums:
  - id: a
    name: A
    cards:
      - {id: c1, name: One, rarity: 4}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); err == nil {
				t.Error("Parse accepted invalid catalog data")
			}
		})
	}
}

func TestArtRefDeterministic(t *testing.T) {
	if ArtRef(42) != ArtRef(42) {
		t.Error("ArtRef is not deterministic")
	}
	if ArtRef(1) == ArtRef(2) {
		t.Error("distinct seeds should map to distinct references")
	}
}
