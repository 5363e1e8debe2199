// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: board/text.go
// Summary: Text item: lazily rasterizes a string, then reuses bitmap alignment.

package board

import (
	"image/color"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelgfx/raster"
	"github.com/framegrace/texelgfx/typeface"
)

// Text is a Bitmap whose source image is rasterized from a string on
// demand. Newlines split the string into lines.
type Text struct {
	Bitmap
	text  string
	face  *typeface.Face
	color color.Color
}

// NewText creates a text item. A nil face selects the embedded default.
func NewText(s string, face *typeface.Face, c color.Color, x, y, z int) *Text {
	if face == nil {
		face = typeface.Default()
	}
	t := &Text{Bitmap: Bitmap{itemBase: newItemBase(x, y, z)}, text: s, face: face, color: c}
	t.self = t
	return t
}

// Text returns the current string.
func (t *Text) Text() string { return t.text }

// SetText replaces the string and invalidates the rendering.
func (t *Text) SetText(s string) {
	if t.text == s {
		return
	}
	t.text = s
	t.touch()
}

// SetColor changes the text color.
func (t *Text) SetColor(c color.Color) {
	t.color = c
	t.touch()
}

// SetFace changes the font face. A nil face selects the embedded default.
func (t *Text) SetFace(f *typeface.Face) {
	if f == nil {
		f = typeface.Default()
	}
	t.face = f
	t.touch()
}

// Render rasterizes the string if stale, pushes the result through the
// normal SetImage path, and delegates alignment to the bitmap step.
func (t *Text) Render(cellWidth, cellHeight int) *raster.Image {
	if t.dirty {
		t.SetImage(t.rasterize())
	}
	return t.Bitmap.Render(cellWidth, cellHeight)
}

// rasterize draws the lines onto an estimated canvas. The canvas size is a
// heuristic (cell-width scale of fontSize/2, line height of 1.5 x fontSize),
// intentionally approximate; the real face metrics only fix the vertical
// baseline placement.
func (t *Text) rasterize() *raster.Image {
	lines := strings.Split(t.text, "\n")
	size := t.face.Size()
	lineHeight := int(1.5 * size)
	charWidth := size / 2

	width := 0
	for _, line := range lines {
		if w := int(float64(runewidth.StringWidth(line)) * charWidth); w > width {
			width = w
		}
	}
	height := len(lines) * lineHeight

	canvas := raster.New(width, height)
	ascent := t.face.Metrics().Ascent
	for i, line := range lines {
		typeface.Render(line, t.face, t.color, canvas, 0, i*lineHeight+ascent)
	}
	return canvas
}
