// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: board/item.go
// Summary: Positioned, z-ordered pixel items and their composite ordering.
// Usage: Bitmap and Text implement Item; Board linearizes them at draw time.

package board

import "github.com/framegrace/texelgfx/raster"

// Item is a positioned, z-ordered pixel-producing entity on a Board.
//
// The interface is closed: the unexported attach hook pins the implementing
// set to this package (Bitmap and Text). Positions are absolute screen-pixel
// coordinates of the item's top-left corner.
type Item interface {
	Position() (x, y int)
	SetPosition(x, y int)
	Z() int
	SetZ(z int)
	Dirty() bool
	MarkDirty()

	// Render returns the item's cell-grid-aligned image, recomputing it
	// only when dirty. A nil result means nothing to draw.
	Render(cellWidth, cellHeight int) *raster.Image

	// Remove detaches the item from its board and releases item-owned
	// resources. Safe to call on a detached item.
	Remove()

	base() *itemBase
}

// itemBase carries the state shared by every Item variant. Mutators of
// position and depth all route through touch, so the dirty invariant has a
// single owner instead of being re-implemented at each call site.
type itemBase struct {
	x, y  int
	z     int
	dirty bool
	board *Board
	self  Item
}

func newItemBase(x, y, z int) itemBase {
	return itemBase{x: x, y: y, z: z, dirty: true}
}

func (b *itemBase) base() *itemBase { return b }

// Position returns the absolute pixel coordinates of the top-left corner.
func (b *itemBase) Position() (int, int) { return b.x, b.y }

// SetPosition moves the item and invalidates its cached rendering.
func (b *itemBase) SetPosition(x, y int) {
	if b.x == x && b.y == y {
		return
	}
	b.x, b.y = x, y
	b.touch()
}

// Z returns the item's depth.
func (b *itemBase) Z() int { return b.z }

// SetZ changes the item's depth and invalidates its cached rendering.
func (b *itemBase) SetZ(z int) {
	if b.z == z {
		return
	}
	b.z = z
	b.touch()
}

// Dirty reports whether the cached aligned rendering is stale.
func (b *itemBase) Dirty() bool { return b.dirty }

// MarkDirty forces a recomputation on the next Render.
func (b *itemBase) MarkDirty() { b.touch() }

// touch is the single invalidation point for every mutator.
func (b *itemBase) touch() {
	b.dirty = true
	if b.board != nil {
		b.board.stale = true
	}
}

// Remove detaches the item from its board, if any.
func (b *itemBase) Remove() {
	if b.board == nil {
		return
	}
	brd := b.board
	b.board = nil
	brd.drop(b.self)
}

// itemLess is the composite ordering: ascending z, then DESCENDING y, then
// DESCENDING x. The y/x tie-breaks are deliberately inverted relative to
// raster order; overlap tests pin this down, so a change here must be a
// decision, not an accident.
func itemLess(a, b Item) bool {
	ab, bb := a.base(), b.base()
	if ab.z != bb.z {
		return ab.z < bb.z
	}
	if ab.y != bb.y {
		return ab.y > bb.y
	}
	return ab.x > bb.x
}
