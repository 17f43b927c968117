// Package wheel resolves reward-wheel spins. A spin moves through a
// small state machine: Idle while the cooldown runs, Ready once it has
// elapsed, Spinning after the outcome is fixed but before effects apply
// (the presentation layer owns the animation delay), and Resolved once
// the award lands. The outcome index is chosen before any delay and is
// never re-rolled.
package wheel

import (
	"time"

	"github.com/dkovalev/tui-jigsaw/internal/collection"
	"github.com/dkovalev/tui-jigsaw/internal/save"
)

// Cooldown is the interval between free spins.
const Cooldown = 6 * time.Hour

// Phase is the spin state machine position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseReady
	PhaseSpinning
	PhaseResolved
)

// Kind selects the spin path.
type Kind int

const (
	// KindFree is the normal path: gated by the cooldown, and resolving
	// it starts the next one.
	KindFree Kind = iota
	// KindPrivileged bypasses the cooldown gate and leaves the free-spin
	// timestamp untouched. Debug/override path; the award applies
	// normally.
	KindPrivileged
)

// Spin is one in-flight spin. The outcome is fixed at Begin.
type Spin struct {
	Pool   []string
	Index  int
	CardID string
	Kind   Kind
	Phase  Phase
}

// Engine gates and resolves spins.
type Engine struct {
	state *save.State
	cards *collection.Engine
	rng   RandomSource
}

// New creates a wheel engine. A nil rng falls back to the crypto source.
func New(state *save.State, cards *collection.Engine, rng RandomSource) *Engine {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Engine{state: state, cards: cards, rng: rng}
}

// Ready reports whether the free-spin cooldown has elapsed.
func (e *Engine) Ready() bool {
	return e.state.Now().UnixMilli() >= e.state.Doc.WheelNextFreeAt
}

// CooldownRemaining returns the time until the next free spin, zero when
// one is already available.
func (e *Engine) CooldownRemaining() time.Duration {
	ms := e.state.Doc.WheelNextFreeAt - e.state.Now().UnixMilli()
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// Begin starts a spin: it snapshots the segment pool and picks the
// outcome index uniformly, before any visual delay. A free spin during
// the cooldown returns nil; the privileged path is never gated.
func (e *Engine) Begin(kind Kind) *Spin {
	if kind == KindFree && !e.Ready() {
		return nil
	}
	pool := e.cards.WheelSegmentPool()
	idx := e.rng.IntN(len(pool))
	return &Spin{
		Pool:   pool,
		Index:  idx,
		CardID: pool[idx],
		Kind:   kind,
		Phase:  PhaseSpinning,
	}
}

// Resolve applies the spin's award and, for the free path only, arms the
// cooldown. Resolving twice is a no-op.
func (e *Engine) Resolve(s *Spin) {
	if s == nil || s.Phase != PhaseSpinning {
		return
	}
	e.cards.AwardFromWheel(s.CardID)
	if s.Kind == KindFree {
		e.state.Doc.WheelNextFreeAt = e.state.Now().Add(Cooldown).UnixMilli()
	}
	s.Phase = PhaseResolved
	e.state.Persist()
}

// MarkTutorialSeen records the one-time wheel onboarding.
func (e *Engine) MarkTutorialSeen() {
	if e.state.Doc.WheelTutorialSeen {
		return
	}
	e.state.Doc.WheelTutorialSeen = true
	e.state.Persist()
}
