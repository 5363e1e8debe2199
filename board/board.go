// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: board/board.go
// Summary: Board: owns items and runs the composite draw pass onto a grid.
// Usage: The pixel-layer compositor; grid.Screen is the usual Display.

package board

import (
	"fmt"
	"image"
	"sort"

	"github.com/framegrace/texelgfx/grid"
	"github.com/framegrace/texelgfx/raster"
)

// Display is the consumer-side view of a grid surface the board draws onto.
// grid.Screen implements it.
type Display interface {
	CellWidth() int
	CellHeight() int
	Columns() int
	Rows() int
	Cell(col, row int) (grid.Cell, bool)
	SetCell(col, row int, c grid.Cell) bool
}

// Board owns an ordered collection of items and composites them onto a
// display. Membership is a set: duplicate adds are ignored. Insertion order
// carries no meaning; the draw pass sorts the full collection every call.
type Board struct {
	items []Item
	stale bool
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Add attaches an item. An item already on another board is removed from it
// first; an item already on this board is left alone.
func (b *Board) Add(it Item) {
	ib := it.base()
	if ib.board == b {
		return
	}
	if ib.board != nil {
		// Detach from the old board only; unlike Remove this keeps an
		// owned animation running across the move.
		old := ib.board
		ib.board = nil
		old.drop(it)
	}
	ib.board = b
	ib.self = it
	b.items = append(b.items, it)
	b.stale = true
}

// Remove detaches an item, equivalent to it.Remove().
func (b *Board) Remove(it Item) {
	if it.base().board != b {
		return
	}
	it.Remove()
}

// drop is the board side of Item.Remove: the item has already cleared its
// back-reference.
func (b *Board) drop(it Item) {
	for i, cur := range b.items {
		if cur == it {
			b.items = append(b.items[:i], b.items[i+1:]...)
			b.stale = true
			return
		}
	}
}

// Len returns the number of attached items.
func (b *Board) Len() int {
	return len(b.items)
}

// Items returns a snapshot copy of the attached items, unsorted.
func (b *Board) Items() []Item {
	return append([]Item(nil), b.items...)
}

// Clear removes every item, stopping item-owned animations.
func (b *Board) Clear() {
	for _, it := range b.Items() {
		it.Remove()
	}
}

// Dirty reports whether a draw pass would produce different output than the
// last one: any item is dirty, or membership changed since the last pass.
func (b *Board) Dirty() bool {
	if b.stale {
		return true
	}
	for _, it := range b.items {
		if it.Dirty() {
			return true
		}
	}
	return false
}

// Draw composites every visible item into d's cells, back to front. Cells
// already carrying an image get the new fragment alpha-blended over them
// (source-over), so the pass layers correctly within itself; running it
// twice against an un-cleared display layers alpha twice. Clearing image
// attachments between passes is the caller's job (grid.Screen.ClearImages),
// not guarded here.
func (b *Board) Draw(d Display) {
	cw, ch := d.CellWidth(), d.CellHeight()
	if cw < 1 || ch < 1 {
		panic(fmt.Sprintf("board: display reports invalid cell size %dx%d", cw, ch))
	}
	screenW := d.Columns() * cw
	screenH := d.Rows() * ch

	items := b.Items()
	sort.SliceStable(items, func(i, j int) bool { return itemLess(items[i], items[j]) })

	for _, it := range items {
		rendering := it.Render(cw, ch)
		if rendering == nil {
			continue
		}
		x, y := it.Position()

		// The aligned rendering's origin is the top-left of the cell
		// containing (x, y).
		textX, textY := x/cw, y/ch
		if !overlaps(x, y, rendering.Width(), rendering.Height(), screenW, screenH) {
			continue
		}

		cols := ceilDiv(rendering.Width(), cw)
		rows := ceilDiv(rendering.Height(), ch)
		for sy := 0; sy < rows; sy++ {
			row := textY + sy
			if row < 0 || row >= d.Rows() {
				continue
			}
			for sx := 0; sx < cols; sx++ {
				col := textX + sx
				if col < 0 || col >= d.Columns() {
					continue
				}
				// Exact sub-rectangle, even for partial edge
				// fragments; pixels beyond the rendering stay
				// transparent.
				fragment := rendering.Copy(image.Rect(sx*cw, sy*ch, (sx+1)*cw, (sy+1)*ch))

				cell, _ := d.Cell(col, row)
				if cell.Image != nil {
					merged := raster.New(cw, ch)
					merged.DrawOver(cell.Image, 0, 0)
					merged.DrawOver(fragment, 0, 0)
					cell.Image = merged
				} else {
					cell.Image = fragment
				}
				d.SetCell(col, row, cell)
			}
		}
	}
	b.stale = false
}

// overlaps reports whether the item's rectangle intersects the screen's
// pixel rectangle [0, screenW) x [0, screenH).
func overlaps(x, y, w, h, screenW, screenH int) bool {
	return x < screenW && x+w > 0 && y < screenH && y+h > 0
}
