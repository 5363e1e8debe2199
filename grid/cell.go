// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/cell.go
// Summary: Character cell with optional pixel image attachment.

package grid

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgfx/raster"
)

// Cell is one character cell of a grid surface. The image attachment is
// independent of the text content: a cell may carry a rune, an image, both,
// or neither. The zero value is a blank cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
	Image *raster.Image
}

// HasImage reports whether the cell carries a pixel image attachment.
func (c Cell) HasImage() bool {
	return c.Image != nil
}
