// Package catalog is the static, read-only registry of albums and the
// collectible cards they contain. Album membership and order are fixed at
// build time; the enumeration order (album order, then card order within
// the album) is the deterministic tie-break used by every "next card"
// selection in the game.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// Card is a single collectible.
type Card struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	RarityStars int    `yaml:"rarity"` // 1..3
	AlbumID     string `yaml:"-"`
	Art         string `yaml:"art"`
}

// Reward describes what completing an album grants.
type Reward struct {
	Name string `yaml:"name"`
	Art  string `yaml:"art"`
}

// Album is a named, ordered set of cards plus its completion reward.
type Album struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Reward Reward `yaml:"reward"`
	Cards  []Card `yaml:"cards"`
}

// Catalog holds the parsed albums with lookup indexes.
type Catalog struct {
	albums   []Album
	allCards []Card
	byCardID map[string]*Card
	byAlbum  map[string]*Album
}

type catalogFile struct {
	Albums []Album `yaml:"albums"`
}

// Parse builds a catalog from YAML data.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: yaml unmarshal: %w", err)
	}
	if len(file.Albums) == 0 {
		return nil, fmt.Errorf("catalog: no albums defined")
	}

	c := &Catalog{
		albums:   file.Albums,
		byCardID: make(map[string]*Card),
		byAlbum:  make(map[string]*Album),
	}

	for i := range c.albums {
		album := &c.albums[i]
		if _, dup := c.byAlbum[album.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate album id %q", album.ID)
		}
		c.byAlbum[album.ID] = album

		for j := range album.Cards {
			card := &album.Cards[j]
			card.AlbumID = album.ID
			if card.RarityStars < 1 || card.RarityStars > 3 {
				return nil, fmt.Errorf("catalog: card %q rarity %d out of range", card.ID, card.RarityStars)
			}
			if _, dup := c.byCardID[card.ID]; dup {
				return nil, fmt.Errorf("catalog: duplicate card id %q", card.ID)
			}
			c.byCardID[card.ID] = card
			c.allCards = append(c.allCards, *card)
		}
	}

	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog parsed from the embedded definitions.
// The embedded data is validated at build time by tests, so a parse
// failure here is a programming error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded defaults invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Albums returns all albums in catalog order.
func (c *Catalog) Albums() []Album {
	return c.albums
}

// AlbumByID looks up an album. Returns nil if unknown.
func (c *Catalog) AlbumByID(id string) *Album {
	return c.byAlbum[id]
}

// CardByID looks up a card. Returns nil if unknown.
func (c *Catalog) CardByID(id string) *Card {
	return c.byCardID[id]
}

// AllCards returns every card across all albums in catalog order.
func (c *Catalog) AllCards() []Card {
	return c.allCards
}

// TotalCards is the grand total of cards across all albums.
func (c *Catalog) TotalCards() int {
	return len(c.allCards)
}
