package wheel

import (
	"testing"
	"time"

	"github.com/dkovalev/tui-jigsaw/internal/catalog"
	"github.com/dkovalev/tui-jigsaw/internal/collection"
	"github.com/dkovalev/tui-jigsaw/internal/save"
)

var testNow = time.UnixMilli(100_000_000)

func newTestEngine(t *testing.T, seed uint64) (*Engine, *save.Document) {
	t.Helper()
	doc := save.Defaults()
	state := save.NewState(doc, nil, func() time.Time { return testNow }, nil)
	cards := collection.New(state, catalog.Default())
	return New(state, cards, NewSeededRNG(seed)), doc
}

func TestReadyAndCooldown(t *testing.T) {
	e, d := newTestEngine(t, 1)

	if !e.Ready() {
		t.Error("fresh save should be ready to spin")
	}

	d.WheelNextFreeAt = testNow.Add(time.Hour).UnixMilli()
	if e.Ready() {
		t.Error("cooldown in the future should gate the spin")
	}
	if got := e.CooldownRemaining(); got != time.Hour {
		t.Errorf("CooldownRemaining = %v, want 1h", got)
	}

	d.WheelNextFreeAt = testNow.UnixMilli()
	if !e.Ready() {
		t.Error("spin becomes ready exactly at wheelNextFreeAt")
	}
	if got := e.CooldownRemaining(); got != 0 {
		t.Errorf("CooldownRemaining = %v, want 0", got)
	}
}

func TestBeginGatesFreePath(t *testing.T) {
	e, d := newTestEngine(t, 1)
	d.WheelNextFreeAt = testNow.Add(time.Hour).UnixMilli()

	if s := e.Begin(KindFree); s != nil {
		t.Error("free spin started during cooldown")
	}
	if s := e.Begin(KindPrivileged); s == nil {
		t.Error("privileged spin must bypass the cooldown gate")
	}
}

func TestSpinOutcomeFixedAtBegin(t *testing.T) {
	e, _ := newTestEngine(t, 42)

	s := e.Begin(KindFree)
	if s == nil {
		t.Fatal("Begin returned nil while ready")
	}
	if s.Phase != PhaseSpinning {
		t.Errorf("phase after Begin = %v, want PhaseSpinning", s.Phase)
	}
	if len(s.Pool) != collection.WheelPoolSize {
		t.Errorf("pool size = %d, want %d", len(s.Pool), collection.WheelPoolSize)
	}
	if s.Index < 0 || s.Index >= len(s.Pool) {
		t.Fatalf("index %d out of pool range", s.Index)
	}
	if s.CardID != s.Pool[s.Index] {
		t.Errorf("card %q does not match pool[%d] = %q", s.CardID, s.Index, s.Pool[s.Index])
	}
}

func TestSeededSpinDeterministic(t *testing.T) {
	e1, _ := newTestEngine(t, 7)
	e2, _ := newTestEngine(t, 7)

	s1 := e1.Begin(KindFree)
	s2 := e2.Begin(KindFree)
	if s1.Index != s2.Index || s1.CardID != s2.CardID {
		t.Errorf("same seed diverged: %d/%q vs %d/%q", s1.Index, s1.CardID, s2.Index, s2.CardID)
	}
}

func TestResolveFreeSpinArmsCooldown(t *testing.T) {
	e, d := newTestEngine(t, 3)

	s := e.Begin(KindFree)
	e.Resolve(s)

	if s.Phase != PhaseResolved {
		t.Errorf("phase after Resolve = %v, want PhaseResolved", s.Phase)
	}
	if !d.InInbox(s.CardID) {
		t.Error("resolved spin did not deliver the card")
	}
	if want := testNow.Add(Cooldown).UnixMilli(); d.WheelNextFreeAt != want {
		t.Errorf("wheelNextFreeAt = %d, want %d", d.WheelNextFreeAt, want)
	}
}

func TestResolvePrivilegedSpinKeepsCooldown(t *testing.T) {
	e, d := newTestEngine(t, 3)
	before := d.WheelNextFreeAt

	s := e.Begin(KindPrivileged)
	e.Resolve(s)

	if d.WheelNextFreeAt != before {
		t.Errorf("privileged spin advanced wheelNextFreeAt to %d", d.WheelNextFreeAt)
	}
	if !d.InInbox(s.CardID) {
		t.Error("privileged spin award must still apply")
	}
}

func TestResolveIdempotent(t *testing.T) {
	e, d := newTestEngine(t, 3)

	s := e.Begin(KindFree)
	e.Resolve(s)
	inboxAfter := len(d.Cards.NewInbox)

	e.Resolve(s)
	if len(d.Cards.NewInbox) != inboxAfter {
		t.Error("double Resolve delivered the card twice")
	}

	e.Resolve(nil) // must not panic
}

func TestWheelCanRedeliverCollectedCard(t *testing.T) {
	e, d := newTestEngine(t, 9)

	// Everything collected: the pool is all owned cards, and the spin
	// re-delivers one as a duplicate.
	for _, c := range catalog.Default().AllCards() {
		d.Cards.Collected[c.ID] = true
	}

	s := e.Begin(KindFree)
	e.Resolve(s)

	if !d.InInbox(s.CardID) {
		t.Error("duplicate re-delivery missing from inbox")
	}
	if d.Cards.Duplicates[s.CardID] != 1 {
		t.Errorf("duplicates[%s] = %d, want 1", s.CardID, d.Cards.Duplicates[s.CardID])
	}
}

func TestMarkTutorialSeen(t *testing.T) {
	e, d := newTestEngine(t, 1)

	e.MarkTutorialSeen()
	if !d.WheelTutorialSeen {
		t.Error("tutorial flag not set")
	}
	e.MarkTutorialSeen() // idempotent
}
