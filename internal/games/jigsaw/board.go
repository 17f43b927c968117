// Package jigsaw implements the puzzle board: a slot grid sized from the
// level table and a shuffled tray of pieces the player places one at a
// time. Rendering and input mapping live in the platform layer; the
// board is pure state.
package jigsaw

import (
	"math/rand"

	"github.com/dkovalev/tui-jigsaw/internal/levels"
)

// Board is one puzzle in progress. Piece ids equal their home slot
// index, so a placement is correct iff piece == slot.
type Board struct {
	cols, rows int
	imageSeed  int64

	tray   []int // remaining pieces in shuffled order
	cursor int   // selected tray piece
	placed []bool
}

// New builds a board for the given level. The tray order is derived from
// rngSeed so a session can be replayed deterministically.
func New(level levels.Level, rngSeed int64) *Board {
	total := level.Columns * level.Rows
	tray := make([]int, total)
	for i := range tray {
		tray[i] = i
	}
	rng := rand.New(rand.NewSource(rngSeed))
	rng.Shuffle(total, func(i, j int) {
		tray[i], tray[j] = tray[j], tray[i]
	})

	return &Board{
		cols:      level.Columns,
		rows:      level.Rows,
		imageSeed: level.ImageSeed,
		tray:      tray,
		placed:    make([]bool, total),
	}
}

// Size returns the grid dimensions.
func (b *Board) Size() (cols, rows int) {
	return b.cols, b.rows
}

// ImageSeed returns the seed the art service renders this puzzle from.
func (b *Board) ImageSeed() int64 {
	return b.imageSeed
}

// Selected returns the tray piece under the cursor, or false when the
// tray is empty.
func (b *Board) Selected() (int, bool) {
	if len(b.tray) == 0 {
		return 0, false
	}
	return b.tray[b.cursor], true
}

// CycleSelection moves the tray cursor by delta, wrapping around.
func (b *Board) CycleSelection(delta int) {
	if len(b.tray) == 0 {
		return
	}
	b.cursor = ((b.cursor+delta)%len(b.tray) + len(b.tray)) % len(b.tray)
}

// Place tries to drop the selected tray piece into slot. A wrong slot
// leaves the piece in the tray and reports false.
func (b *Board) Place(slot int) bool {
	piece, ok := b.Selected()
	if !ok || slot < 0 || slot >= len(b.placed) || b.placed[slot] {
		return false
	}
	if piece != slot {
		return false
	}
	b.placed[slot] = true
	b.tray = append(b.tray[:b.cursor], b.tray[b.cursor+1:]...)
	if b.cursor >= len(b.tray) {
		b.cursor = 0
	}
	return true
}

// PlacedAt reports whether slot already holds its piece.
func (b *Board) PlacedAt(slot int) bool {
	return slot >= 0 && slot < len(b.placed) && b.placed[slot]
}

// Progress returns placed and total piece counts.
func (b *Board) Progress() (placedCount, total int) {
	for _, p := range b.placed {
		if p {
			placedCount++
		}
	}
	return placedCount, len(b.placed)
}

// Completed reports whether every slot is filled.
func (b *Board) Completed() bool {
	return len(b.tray) == 0
}

// TrayCount returns the number of pieces still in the tray.
func (b *Board) TrayCount() int {
	return len(b.tray)
}
