package save

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/dkovalev/tui-jigsaw/internal/event"
)

// State is the single owner of the in-memory save document. Every engine
// receives a *State and performs all mutation through it; nothing else
// holds the document. Persistence is synchronous and best-effort: the
// in-memory document stays authoritative when a write fails.
type State struct {
	Doc *Document

	store  *Store
	clock  event.Clock
	logger *log.Logger
}

// NewState wires a document to its store. A nil store keeps the state
// memory-only (used by tests and by sessions whose database failed to
// open). A nil clock defaults to wall time.
func NewState(doc *Document, store *Store, clock event.Clock, logger *log.Logger) *State {
	if doc == nil {
		doc = Defaults()
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = log.Default()
	}
	return &State{Doc: doc, store: store, clock: clock, logger: logger}
}

// Now returns the current time from the injected clock.
func (s *State) Now() time.Time {
	return s.clock()
}

// Persist writes the document through to storage. A failed write is
// logged and swallowed; the next successful write reconciles.
func (s *State) Persist() {
	if s.store == nil {
		return
	}
	if err := s.store.SaveDocument(s.Doc); err != nil {
		s.logger.Warn("save write failed, keeping in-memory state", "error", err)
	}
}

// Reset replaces the document with defaults and persists the wipe.
func (s *State) Reset() {
	s.Doc = Defaults()
	s.Persist()
}
