// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: board/board_test.go
// Summary: Exercises the composite draw pass: culling, blending, clipping.
// Usage: Executed during `go test` to guard against regressions.

package board

import (
	"image/color"
	"testing"

	"github.com/framegrace/texelgfx/grid"
	"github.com/framegrace/texelgfx/raster"
)

// countingDisplay wraps a grid.Screen and counts cell writes.
type countingDisplay struct {
	*grid.Screen
	writes int
}

func (d *countingDisplay) SetCell(col, row int, c grid.Cell) bool {
	d.writes++
	return d.Screen.SetCell(col, row, c)
}

func newDisplay(t *testing.T, cols, rows int) *countingDisplay {
	t.Helper()
	s, err := grid.NewScreen(cols, rows, 8, 16)
	if err != nil {
		t.Fatalf("NewScreen: %v", err)
	}
	return &countingDisplay{Screen: s}
}

func solid(w, h int, c color.RGBA) *raster.Image {
	img := raster.New(w, h)
	img.Fill(c)
	return img
}

func TestDrawAttachesFragments(t *testing.T) {
	d := newDisplay(t, 4, 4)
	b := NewBoard()
	// One cell exactly, on the boundary of cell (1, 1).
	b.Add(NewBitmap(solid(8, 16, color.RGBA{R: 255, A: 255}), 8, 16, 0))

	b.Draw(d)

	c, _ := d.Cell(1, 1)
	if c.Image == nil {
		t.Fatalf("expected image attached at (1,1)")
	}
	if c.Image.At(0, 0) != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("expected source pixel, got %v", c.Image.At(0, 0))
	}
	if other, _ := d.Cell(0, 0); other.Image != nil {
		t.Fatalf("expected untouched neighbor cell")
	}
}

func TestDrawCullsOffscreenItems(t *testing.T) {
	d := newDisplay(t, 4, 4) // 32x64 px
	b := NewBoard()
	b.Add(NewBitmap(solid(8, 16, color.RGBA{A: 255}), d.PixelWidth()+100, 0, 0))
	b.Add(NewBitmap(solid(8, 16, color.RGBA{A: 255}), 0, -200, 0))

	b.Draw(d)
	if d.writes != 0 {
		t.Fatalf("expected zero cell mutations, got %d", d.writes)
	}
}

func TestDrawClipsAtScreenEdge(t *testing.T) {
	d := newDisplay(t, 4, 4)
	b := NewBoard()
	// Spans cells (3,0) and off-screen (4,0).
	b.Add(NewBitmap(solid(16, 16, color.RGBA{B: 255, A: 255}), 24, 0, 0))

	b.Draw(d)
	if c, _ := d.Cell(3, 0); c.Image == nil {
		t.Fatalf("expected visible fragment at (3,0)")
	}
	if d.writes != 1 {
		t.Fatalf("expected only the on-screen cell written, got %d", d.writes)
	}
}

func TestDrawNegativeCoordinatesClip(t *testing.T) {
	d := newDisplay(t, 4, 4)
	b := NewBoard()
	// dx = -5: left 5px are off-screen, the rest lands in cell (0,0).
	b.Add(NewBitmap(solid(10, 16, color.RGBA{G: 255, A: 255}), -5, 0, 0))

	b.Draw(d)
	c, _ := d.Cell(0, 0)
	if c.Image == nil {
		t.Fatalf("expected fragment in cell (0,0)")
	}
	if c.Image.At(0, 0) != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("expected clipped source pixel at origin, got %v", c.Image.At(0, 0))
	}
	if c.Image.At(5, 0) != (color.RGBA{}) {
		t.Fatalf("expected transparency past the source, got %v", c.Image.At(5, 0))
	}
}

// TestDrawPartialInteriorFragment covers the corrected edge behavior: a
// source on a cell boundary but not a whole multiple of the cell size must
// yield exactly-clipped fragments, transparent beyond the source.
func TestDrawPartialInteriorFragment(t *testing.T) {
	d := newDisplay(t, 4, 4)
	b := NewBoard()
	// 12x16 at dx=0: cell (0,0) full, cell (1,0) only 4px wide.
	b.Add(NewBitmap(solid(12, 16, color.RGBA{R: 255, A: 255}), 0, 0, 0))

	b.Draw(d)
	c, _ := d.Cell(1, 0)
	if c.Image == nil {
		t.Fatalf("expected partial fragment at (1,0)")
	}
	if c.Image.Width() != 8 || c.Image.Height() != 16 {
		t.Fatalf("expected cell-sized fragment, got %dx%d", c.Image.Width(), c.Image.Height())
	}
	if c.Image.At(3, 0) != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("expected source pixel in partial fragment")
	}
	if c.Image.At(4, 0) != (color.RGBA{}) {
		t.Fatalf("expected transparency beyond source width")
	}
}

func TestDrawBlendsOverExistingCellImage(t *testing.T) {
	d := newDisplay(t, 2, 2)
	b := NewBoard()
	b.Add(NewBitmap(solid(8, 16, color.RGBA{B: 255, A: 255}), 0, 0, 0))
	// Higher z, 50% red, premultiplied: must blend, not overwrite.
	b.Add(NewBitmap(solid(8, 16, color.RGBA{R: 128, A: 128}), 0, 0, 1))

	b.Draw(d)
	c, _ := d.Cell(0, 0)
	got := c.Image.At(0, 0)
	want := color.RGBA{R: 128, B: 127, A: 255}
	if got != want {
		t.Fatalf("expected source-over blend %v, got %v", want, got)
	}
}

func TestDrawOrderDecidesOverlap(t *testing.T) {
	d := newDisplay(t, 2, 2)
	b := NewBoard()
	// Same z: larger y sorts first, so the y=0 item draws last and wins.
	under := NewBitmap(solid(8, 16, color.RGBA{R: 255, A: 255}), 0, 16, 0)
	over := NewBitmap(solid(16, 32, color.RGBA{B: 255, A: 255}), 0, 0, 0)
	b.Add(under)
	b.Add(over)

	b.Draw(d)
	c, _ := d.Cell(0, 1)
	if c.Image.At(0, 0) != (color.RGBA{B: 255, A: 255}) {
		t.Fatalf("expected the y=0 item on top, got %v", c.Image.At(0, 0))
	}
}

func TestDrawSkipsEmptyItems(t *testing.T) {
	d := newDisplay(t, 2, 2)
	b := NewBoard()
	b.Add(NewBitmap(nil, 0, 0, 0))

	b.Draw(d)
	if d.writes != 0 {
		t.Fatalf("expected no writes for empty bitmap, got %d", d.writes)
	}
}

func TestRemovedItemNotDrawn(t *testing.T) {
	d := newDisplay(t, 2, 2)
	b := NewBoard()
	it := NewBitmap(solid(8, 16, color.RGBA{A: 255}), 0, 0, 0)
	b.Add(it)
	it.Remove()

	if b.Len() != 0 {
		t.Fatalf("expected empty board after remove")
	}
	b.Draw(d)
	if d.writes != 0 {
		t.Fatalf("expected no writes after removal, got %d", d.writes)
	}
}

func TestDuplicateAddIgnored(t *testing.T) {
	b := NewBoard()
	it := NewBitmap(raster.New(1, 1), 0, 0, 0)
	b.Add(it)
	b.Add(it)
	if b.Len() != 1 {
		t.Fatalf("expected membership set, got %d entries", b.Len())
	}
}

func TestAddMovesItemBetweenBoards(t *testing.T) {
	first := NewBoard()
	second := NewBoard()
	it := NewBitmap(raster.New(1, 1), 0, 0, 0)
	first.Add(it)
	second.Add(it)

	if first.Len() != 0 {
		t.Fatalf("expected item removed from first board")
	}
	if second.Len() != 1 {
		t.Fatalf("expected item on second board")
	}
}

func TestBoardDirtyAfterAddAndDraw(t *testing.T) {
	d := newDisplay(t, 2, 2)
	b := NewBoard()
	it := NewBitmap(solid(8, 16, color.RGBA{A: 255}), 0, 0, 0)
	b.Add(it)
	if !b.Dirty() {
		t.Fatalf("expected dirty after add")
	}

	b.Draw(d)
	if b.Dirty() {
		t.Fatalf("expected clean after draw")
	}

	it.SetPosition(1, 0)
	if !b.Dirty() {
		t.Fatalf("expected dirty after item move")
	}
}

func TestClearStopsAndEmpties(t *testing.T) {
	b := NewBoard()
	b.Add(NewBitmap(raster.New(1, 1), 0, 0, 0))
	b.Add(NewBitmap(raster.New(1, 1), 8, 0, 0))
	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("expected empty board, got %d", b.Len())
	}
}

func TestDrawPanicsOnBadDisplay(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid cell size")
		}
	}()
	NewBoard().Draw(badDisplay{})
}

// badDisplay reports a zero cell width, which only a broken Display
// implementation can do; grid.NewScreen rejects it at construction.
type badDisplay struct{}

func (badDisplay) CellWidth() int                   { return 0 }
func (badDisplay) CellHeight() int                  { return 16 }
func (badDisplay) Columns() int                     { return 1 }
func (badDisplay) Rows() int                        { return 1 }
func (badDisplay) Cell(int, int) (grid.Cell, bool)  { return grid.Cell{}, false }
func (badDisplay) SetCell(int, int, grid.Cell) bool { return false }
