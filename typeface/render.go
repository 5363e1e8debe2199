// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: typeface/render.go
// Summary: Draws single text lines onto raster images.

package typeface

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/framegrace/texelgfx/raster"
)

// Render draws one line of text onto dst with its baseline at (x, y),
// anti-aliased, in the given color. Multi-line layout is the caller's
// concern; newlines in line render as missing-glyph boxes.
func Render(line string, f *Face, c color.Color, dst *raster.Image, x, y int) {
	d := font.Drawer{
		Dst:  dst.RGBA(),
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(line)
}

// Measure returns the advance width of line in whole pixels.
func Measure(line string, f *Face) int {
	return font.MeasureString(f.face, line).Ceil()
}
