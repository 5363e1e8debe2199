// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/screen.go
// Summary: In-memory cell grid surface targeted by the board compositor.
// Usage: Boards draw into a Screen; presenters flush it to a terminal.

package grid

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelgfx/raster"
)

// Screen is a fixed-size grid of Cells with known per-cell pixel dimensions.
// It is the concrete grid display the board compositor mutates. A Screen is
// owned by a single logical thread; it does no locking of its own.
type Screen struct {
	cols, rows int
	cellW      int
	cellH      int
	buf        [][]Cell
}

// NewScreen allocates a blank grid. All four dimensions must be positive;
// invalid geometry is rejected here so the compositor never sees a zero cell
// size.
func NewScreen(cols, rows, cellWidth, cellHeight int) (*Screen, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("grid: invalid grid size %dx%d", cols, rows)
	}
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("grid: invalid cell size %dx%d", cellWidth, cellHeight)
	}
	buf := make([][]Cell, rows)
	for y := range buf {
		buf[y] = make([]Cell, cols)
	}
	return &Screen{cols: cols, rows: rows, cellW: cellWidth, cellH: cellHeight, buf: buf}, nil
}

// Columns returns the number of cell columns.
func (s *Screen) Columns() int { return s.cols }

// Rows returns the number of cell rows.
func (s *Screen) Rows() int { return s.rows }

// CellWidth returns the pixel width of one cell.
func (s *Screen) CellWidth() int { return s.cellW }

// CellHeight returns the pixel height of one cell.
func (s *Screen) CellHeight() int { return s.cellH }

// PixelWidth returns the total surface width in pixels.
func (s *Screen) PixelWidth() int { return s.cols * s.cellW }

// PixelHeight returns the total surface height in pixels.
func (s *Screen) PixelHeight() int { return s.rows * s.cellH }

// Cell returns the cell at (col, row). The second result is false when the
// coordinates are out of range.
func (s *Screen) Cell(col, row int) (Cell, bool) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return Cell{}, false
	}
	return s.buf[row][col], true
}

// SetCell replaces the cell at (col, row) and reports whether the
// coordinates were in range. Out-of-range writes are dropped, never panic.
func (s *Screen) SetCell(col, row int, c Cell) bool {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return false
	}
	s.buf[row][col] = c
	return true
}

// Fill overwrites every cell with c.
func (s *Screen) Fill(c Cell) {
	for y := range s.buf {
		for x := range s.buf[y] {
			s.buf[y][x] = c
		}
	}
}

// Clear resets every cell to the blank zero value, dropping text and image
// attachments alike.
func (s *Screen) Clear() {
	s.Fill(Cell{})
}

// ClearImages strips image attachments from every cell while leaving text
// and style untouched. Callers that run a board draw pass more than once per
// frame use this between passes so alpha does not layer twice.
func (s *Screen) ClearImages() {
	for y := range s.buf {
		for x := range s.buf[y] {
			s.buf[y][x].Image = nil
		}
	}
}

// SetText writes s starting at (col, row) with the given style and returns
// the number of columns consumed. Wide runes occupy two columns; the second
// column is left as a blank spacer cell. Text never wraps; it clips at the
// right edge.
func (s *Screen) SetText(col, row int, text string, style tcell.Style) int {
	if row < 0 || row >= s.rows {
		return 0
	}
	x := col
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= s.cols {
			break
		}
		if x >= 0 {
			s.buf[row][x] = Cell{Ch: r, Style: style, Image: s.buf[row][x].Image}
			if w == 2 && x+1 < s.cols {
				s.buf[row][x+1] = Cell{Ch: ' ', Style: style, Image: s.buf[row][x+1].Image}
			}
		}
		x += w
	}
	return x - col
}

// Snapshot returns a deep copy of the cell buffer, suitable for later
// diffing against a newer frame.
func (s *Screen) Snapshot() [][]Cell {
	out := make([][]Cell, s.rows)
	for y := range s.buf {
		out[y] = make([]Cell, s.cols)
		copy(out[y], s.buf[y])
	}
	return out
}

// ImageCell is one placed image attachment, as enumerated by ImageCells.
type ImageCell struct {
	Col, Row int
	Image    *raster.Image
}

// ImageCells lists every cell currently carrying an image attachment, in
// row-major order. Terminal graphics encoders (kitty, sixel, iTerm2) consume
// this; the grid itself never encodes protocol bytes.
func (s *Screen) ImageCells() []ImageCell {
	var out []ImageCell
	for y := range s.buf {
		for x := range s.buf[y] {
			if s.buf[y][x].Image != nil {
				out = append(out, ImageCell{Col: x, Row: y, Image: s.buf[y][x].Image})
			}
		}
	}
	return out
}
