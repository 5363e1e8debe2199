// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: board/bitmap.go
// Summary: Bitmap item: wraps a raw image and aligns it to the cell grid.

package board

import (
	"github.com/framegrace/texelgfx/anim"
	"github.com/framegrace/texelgfx/raster"
)

// Bitmap is an Item backed by a raw image, or by an Animation that supplies
// the image frame by frame. Its rendering is the source padded so that,
// placed at the cell containing (x, y), it tiles whole cells: the fractional
// offset inside the first cell becomes transparent padding instead of
// sub-pixel positioning.
type Bitmap struct {
	itemBase
	source    *raster.Image
	animation *anim.Animation
	rendered  *raster.Image
	renders   int // recomputation counter, read by tests
}

// NewBitmap creates a bitmap item over a static image. img may be nil for
// an empty placeholder.
func NewBitmap(img *raster.Image, x, y, z int) *Bitmap {
	b := &Bitmap{itemBase: newItemBase(x, y, z), source: img}
	b.self = b
	return b
}

// NewAnimatedBitmap creates a bitmap item that reads its image from a. The
// animation owns the frame data; the bitmap only observes the current frame
// and tolerates its identity changing between renders.
func NewAnimatedBitmap(a *anim.Animation, x, y, z int) *Bitmap {
	b := &Bitmap{itemBase: newItemBase(x, y, z), animation: a}
	b.self = b
	return b
}

// Image returns the current source image, which for an animated bitmap is
// the frame last observed by Render.
func (b *Bitmap) Image() *raster.Image {
	return b.source
}

// SetImage replaces the source image. Any animation is detached and
// stopped; the bitmap reverts to static content.
func (b *Bitmap) SetImage(img *raster.Image) {
	if b.animation != nil {
		b.animation.Stop()
		b.animation = nil
	}
	b.source = img
	b.touch()
}

// SetAnimation installs a frame source, dropping any owned static image.
func (b *Bitmap) SetAnimation(a *anim.Animation) {
	b.animation = a
	b.source = nil
	b.touch()
}

// Remove detaches from the board and stops any owned animation.
func (b *Bitmap) Remove() {
	if b.animation != nil {
		b.animation.Stop()
	}
	b.itemBase.Remove()
}

// Render returns the grid-aligned image, lazily recomputed. This is the
// system's only caching layer: when the item is clean and the animation
// frame has not changed, the cached image is returned as-is.
func (b *Bitmap) Render(cellWidth, cellHeight int) *raster.Image {
	if cellWidth < 1 || cellHeight < 1 {
		panic("board: cell dimensions must be at least 1")
	}

	if b.animation != nil {
		if frame := b.animation.Current(); frame != b.source {
			b.source = frame
			b.dirty = true
		}
	}

	if b.source == nil {
		b.rendered = nil
		b.dirty = false
		return nil
	}

	if !b.dirty && b.rendered != nil {
		return b.rendered
	}

	b.rendered = alignToGrid(b.source, b.x, b.y, cellWidth, cellHeight)
	b.renders++
	b.dirty = false
	return b.rendered
}

// alignToGrid pads src so its placement offset inside the first cell is
// baked in as transparent margin. A source already on a cell boundary is
// returned unchanged, without allocating.
//
// The offsets use Go's truncating remainder, matching the truncating
// division the draw pass uses for the item's cell origin. For negative
// coordinates the remainder is negative: the part of the source left of or
// above the origin cell is clipped at cell granularity, mirroring how the
// right and bottom screen edges clip.
func alignToGrid(src *raster.Image, x, y, cellWidth, cellHeight int) *raster.Image {
	dx := x % cellWidth
	dy := y % cellHeight
	if dx == 0 && dy == 0 {
		return src
	}
	cols := ceilDiv(dx+src.Width(), cellWidth)
	rows := ceilDiv(dy+src.Height(), cellHeight)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	canvas := raster.New(cols*cellWidth, rows*cellHeight)
	canvas.DrawOver(src, dx, dy)
	return canvas
}

func ceilDiv(v, m int) int {
	if v <= 0 {
		return 0
	}
	return (v + m - 1) / m
}
