package event

import (
	"testing"
	"time"
)

func fixedClock(ms int64) Clock {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestEnsureCreatesWindow(t *testing.T) {
	now := fixedClock(1_000_000)()

	var slot *Window
	w := Ensure(&slot, now, true)
	if w == nil {
		t.Fatal("Ensure with create=true returned nil")
	}
	if slot != w {
		t.Fatal("Ensure did not store the created window in the slot")
	}
	if w.StartAt != now.UnixMilli() {
		t.Errorf("StartAt = %d, want %d", w.StartAt, now.UnixMilli())
	}
	if got, want := w.EndAt-w.StartAt, Duration.Milliseconds(); got != want {
		t.Errorf("window length = %d ms, want %d ms", got, want)
	}
}

func TestEnsureWithoutCreate(t *testing.T) {
	now := fixedClock(1_000_000)()

	var slot *Window
	if w := Ensure(&slot, now, false); w != nil {
		t.Errorf("Ensure with create=false returned %+v, want nil", w)
	}
	if slot != nil {
		t.Error("Ensure with create=false must not store a window")
	}
}

func TestEnsureKeepsWellFormedWindow(t *testing.T) {
	existing := &Window{StartAt: 100, EndAt: 200}
	slot := existing

	w := Ensure(&slot, time.UnixMilli(5_000_000), true)
	if w != existing {
		t.Error("Ensure replaced a well-formed window")
	}
}

func TestEnsureReplacesMalformedWindow(t *testing.T) {
	tests := []struct {
		name string
		bad  *Window
	}{
		{"zero start", &Window{StartAt: 0, EndAt: 200}},
		{"end before start", &Window{StartAt: 200, EndAt: 100}},
		{"end equals start", &Window{StartAt: 200, EndAt: 200}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slot := tc.bad
			now := time.UnixMilli(9_000)
			w := Ensure(&slot, now, true)
			if w == tc.bad {
				t.Fatal("Ensure kept a malformed window")
			}
			if w.StartAt != now.UnixMilli() {
				t.Errorf("replacement StartAt = %d, want %d", w.StartAt, now.UnixMilli())
			}
		})
	}
}

func TestActiveAtBoundary(t *testing.T) {
	w := NewWindow(time.UnixMilli(0))

	tests := []struct {
		name string
		now  int64
		want bool
	}{
		{"just opened", 0, true},
		{"one ms before end", w.EndAt - 1, true},
		{"exactly at end", w.EndAt, false},
		{"after end", w.EndAt + 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.ActiveAt(time.UnixMilli(tc.now)); got != tc.want {
				t.Errorf("ActiveAt(%d) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestActiveAtNil(t *testing.T) {
	var w *Window
	if w.ActiveAt(time.UnixMilli(0)) {
		t.Error("nil window reported active")
	}
}

func TestRemainingAt(t *testing.T) {
	w := NewWindow(time.UnixMilli(0))

	if got := w.RemainingAt(time.UnixMilli(0)); got != Duration {
		t.Errorf("remaining at open = %v, want %v", got, Duration)
	}
	if got := w.RemainingAt(time.UnixMilli(w.EndAt)); got != 0 {
		t.Errorf("remaining at end = %v, want 0", got)
	}
	if got := w.RemainingAt(time.UnixMilli(w.EndAt + 500)); got != 0 {
		t.Errorf("remaining past end = %v, want 0", got)
	}

	var nilWin *Window
	if got := nilWin.RemainingAt(time.UnixMilli(0)); got != 0 {
		t.Errorf("remaining for nil window = %v, want 0", got)
	}
}

func TestWindowsAreIndependent(t *testing.T) {
	a := NewWindow(time.UnixMilli(0))
	b := NewWindow(time.UnixMilli(5_000))

	// Expiry of one window says nothing about the other.
	at := time.UnixMilli(a.EndAt)
	if a.ActiveAt(at) {
		t.Error("first window should be expired")
	}
	if !b.ActiveAt(at) {
		t.Error("second window should still be active")
	}
}
