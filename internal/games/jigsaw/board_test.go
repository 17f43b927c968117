package jigsaw

import (
	"testing"

	"github.com/dkovalev/tui-jigsaw/internal/levels"
)

func testLevel() levels.Level {
	return levels.Level{Pieces: 6, Columns: 3, Rows: 2, ImageSeed: 99}
}

func TestNewBoard(t *testing.T) {
	b := New(testLevel(), 1)

	cols, rows := b.Size()
	if cols != 3 || rows != 2 {
		t.Errorf("size = %dx%d, want 3x2", cols, rows)
	}
	if b.TrayCount() != 6 {
		t.Errorf("tray = %d pieces, want 6", b.TrayCount())
	}
	if b.Completed() {
		t.Error("fresh board reports completed")
	}
	if b.ImageSeed() != 99 {
		t.Errorf("image seed = %d, want 99", b.ImageSeed())
	}
}

func TestTrayShuffleDeterministic(t *testing.T) {
	a := New(testLevel(), 42)
	b := New(testLevel(), 42)

	for a.TrayCount() > 0 {
		pa, _ := a.Selected()
		pb, _ := b.Selected()
		if pa != pb {
			t.Fatal("same seed produced different tray orders")
		}
		a.Place(pa)
		b.Place(pb)
	}
}

func TestPlaceRules(t *testing.T) {
	b := New(testLevel(), 7)

	piece, ok := b.Selected()
	if !ok {
		t.Fatal("no selected piece on a fresh board")
	}

	wrong := (piece + 1) % 6
	if b.Place(wrong) {
		t.Error("placement into the wrong slot succeeded")
	}
	if b.TrayCount() != 6 {
		t.Error("failed placement consumed a piece")
	}

	if !b.Place(piece) {
		t.Error("placement into the home slot failed")
	}
	if !b.PlacedAt(piece) {
		t.Error("slot not marked placed")
	}
	if b.Place(piece) {
		t.Error("placement into an occupied slot succeeded")
	}

	if b.Place(-1) || b.Place(6) {
		t.Error("out-of-range slot accepted")
	}
}

func TestCycleSelection(t *testing.T) {
	b := New(testLevel(), 7)

	first, _ := b.Selected()
	b.CycleSelection(1)
	second, _ := b.Selected()
	if first == second {
		t.Error("cursor did not move")
	}
	b.CycleSelection(-1)
	back, _ := b.Selected()
	if back != first {
		t.Error("cursor did not wrap back")
	}
	// Full cycle returns to the start.
	b.CycleSelection(6)
	again, _ := b.Selected()
	if again != first {
		t.Error("full cycle did not wrap")
	}
}

func TestCompletion(t *testing.T) {
	b := New(testLevel(), 3)

	for b.TrayCount() > 0 {
		piece, _ := b.Selected()
		if !b.Place(piece) {
			t.Fatalf("placing piece %d failed", piece)
		}
	}

	if !b.Completed() {
		t.Error("board with an empty tray is not completed")
	}
	placed, total := b.Progress()
	if placed != total || total != 6 {
		t.Errorf("progress = %d/%d, want 6/6", placed, total)
	}
	if _, ok := b.Selected(); ok {
		t.Error("Selected on an empty tray should report false")
	}
}
