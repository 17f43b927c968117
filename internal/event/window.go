// Package event models the time-boxed windows that gate meta-features.
// A window is a pair of epoch-millisecond timestamps stored in the save
// document; "is it active" and "how long remains" are derived from the
// stored timestamps and the current time, never from local counters.
package event

import "time"

// Duration is the fixed length of every feature window.
const Duration = 10 * 24 * time.Hour

// Clock supplies the current time. Engines hold one so tests can pin it.
type Clock func() time.Time

// Window is a start/end timestamp pair in epoch milliseconds.
type Window struct {
	StartAt int64 `json:"startAt"`
	EndAt   int64 `json:"endAt"`
}

// NewWindow opens a fresh window starting at now.
func NewWindow(now time.Time) *Window {
	start := now.UnixMilli()
	return &Window{
		StartAt: start,
		EndAt:   start + Duration.Milliseconds(),
	}
}

// Ensure returns the window in slot if it is well-formed. Otherwise, when
// create is true, a fresh window is stored and returned; when create is
// false the slot is left untouched and nil is returned.
func Ensure(slot **Window, now time.Time, create bool) *Window {
	if w := *slot; w != nil && w.wellFormed() {
		return w
	}
	if !create {
		return nil
	}
	w := NewWindow(now)
	*slot = w
	return w
}

// ActiveAt reports whether now is strictly before the window's end.
// A nil window is never active.
func (w *Window) ActiveAt(now time.Time) bool {
	return w != nil && w.wellFormed() && now.UnixMilli() < w.EndAt
}

// RemainingAt returns the time left until the window ends, or zero for a
// nil, malformed, or expired window.
func (w *Window) RemainingAt(now time.Time) time.Duration {
	if w == nil || !w.wellFormed() {
		return 0
	}
	ms := w.EndAt - now.UnixMilli()
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func (w *Window) wellFormed() bool {
	return w.StartAt > 0 && w.EndAt > w.StartAt
}
