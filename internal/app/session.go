// Package app wires the engines together for a player session. Both the
// CLI commands and the TUI build a Session and talk to the engines
// through it.
package app

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/dkovalev/tui-jigsaw/internal/battlepass"
	"github.com/dkovalev/tui-jigsaw/internal/catalog"
	"github.com/dkovalev/tui-jigsaw/internal/collection"
	"github.com/dkovalev/tui-jigsaw/internal/config"
	"github.com/dkovalev/tui-jigsaw/internal/event"
	"github.com/dkovalev/tui-jigsaw/internal/levels"
	"github.com/dkovalev/tui-jigsaw/internal/progression"
	"github.com/dkovalev/tui-jigsaw/internal/save"
	"github.com/dkovalev/tui-jigsaw/internal/wheel"
)

// Session bundles the engines over one loaded save document.
type Session struct {
	Cfg config.Config
	Log *log.Logger

	Catalog *catalog.Catalog
	Levels  *levels.Table

	State    *save.State
	Cards    *collection.Engine
	Pass     *battlepass.Engine
	Wheel    *wheel.Engine
	Progress *progression.Machine

	store *save.Store
}

// Options tweak session construction.
type Options struct {
	// Clock overrides wall time; nil keeps time.Now.
	Clock event.Clock
	// RNG overrides the wheel randomness; nil keeps the crypto source.
	RNG wheel.RandomSource
	// MemoryOnly skips the database entirely.
	MemoryOnly bool
}

// NewSession opens the save database, loads and migrates the document,
// and wires every engine. A database that fails to open degrades to a
// memory-only session rather than refusing to start.
func NewSession(cfg config.Config, logger *log.Logger, opts Options) *Session {
	if logger == nil {
		logger = log.Default()
	}

	cat := catalog.Default()
	table := levels.Default()

	var store *save.Store
	if !opts.MemoryOnly {
		var err error
		store, err = save.Open(cfg.DB)
		if err != nil {
			logger.Warn("could not open save database, running memory-only", "error", err)
			store = nil
		}
	}

	clock := opts.Clock
	var doc *save.Document
	if store != nil {
		now := clock
		if now == nil {
			now = defaultClock
		}
		doc = store.LoadDocument(cat, now())
	} else {
		doc = save.Defaults()
	}

	state := save.NewState(doc, store, clock, logger)
	cards := collection.New(state, cat)

	return &Session{
		Cfg:      cfg,
		Log:      logger,
		Catalog:  cat,
		Levels:   table,
		State:    state,
		Cards:    cards,
		Pass:     battlepass.New(state, cards),
		Wheel:    wheel.New(state, cards, opts.RNG),
		Progress: progression.New(state, cards),
		store:    store,
	}
}

func defaultClock() time.Time { return time.Now() }

// Close releases the database handle.
func (s *Session) Close() {
	if s.store != nil {
		s.store.Close()
	}
}
