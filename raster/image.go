// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: raster/image.go
// Summary: RGBA pixel buffer used by the board compositor.
// Usage: Leaf package; boards, animations and the font rasterizer all build on it.

package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"

	// Register the decoders the toolkit cares about. GIF registration also
	// serves single-frame loads; animated GIFs go through the anim package.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Image is a rectangular pixel buffer in premultiplied RGBA, the native
// format of image/draw. Bounds always start at (0,0).
//
// Pointer identity is meaningful: the compositor compares *Image values to
// detect animation frame changes without touching pixel data. Content is
// never compared.
type Image struct {
	rgba *image.RGBA
}

// New returns a fully transparent image of the given size. Negative
// dimensions are clamped to zero; zero-size images are valid and draw
// nothing.
func New(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// FromRGBA adopts an existing buffer without copying when its bounds start
// at (0,0); otherwise the pixels are copied into a rebased buffer. Callers
// that keep the original around share its storage in the adopting case.
func FromRGBA(m *image.RGBA) *Image {
	if m == nil {
		return New(0, 0)
	}
	if m.Bounds().Min == (image.Point{}) {
		return &Image{rgba: m}
	}
	out := New(m.Bounds().Dx(), m.Bounds().Dy())
	draw.Draw(out.rgba, out.rgba.Bounds(), m, m.Bounds().Min, draw.Src)
	return out
}

// FromImage copies an arbitrary image.Image into a fresh RGBA buffer.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	out := New(b.Dx(), b.Dy())
	draw.Draw(out.rgba, out.rgba.Bounds(), src, b.Min, draw.Src)
	return out
}

// Decode reads a single image (png, jpeg or gif first frame) and converts it
// to an RGBA buffer.
func Decode(r io.Reader) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("raster: decode image: %w", err)
	}
	return FromImage(src), nil
}

// Load reads and decodes the image file at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Width returns the pixel width.
func (m *Image) Width() int {
	return m.rgba.Bounds().Dx()
}

// Height returns the pixel height.
func (m *Image) Height() int {
	return m.rgba.Bounds().Dy()
}

// Bounds returns the (0,0)-based pixel rectangle.
func (m *Image) Bounds() image.Rectangle {
	return m.rgba.Bounds()
}

// RGBA exposes the underlying buffer for rasterizers and encoders. Mutating
// it mutates the Image.
func (m *Image) RGBA() *image.RGBA {
	return m.rgba
}

// Set writes one pixel. Out-of-bounds writes are ignored.
func (m *Image) Set(x, y int, c color.Color) {
	m.rgba.Set(x, y, c)
}

// At reads one pixel. Out-of-bounds reads return transparent.
func (m *Image) At(x, y int) color.Color {
	return m.rgba.At(x, y)
}

// Fill paints the whole buffer with c, replacing existing content.
func (m *Image) Fill(c color.Color) {
	draw.Draw(m.rgba, m.rgba.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect paints the intersection of r and the buffer with c.
func (m *Image) FillRect(r image.Rectangle, c color.Color) {
	draw.Draw(m.rgba, r.Intersect(m.rgba.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// Clone returns a full independent copy.
func (m *Image) Clone() *Image {
	return m.Copy(m.rgba.Bounds())
}

// Copy extracts the rectangle r as a new image of exactly r.Dx() by r.Dy()
// pixels. Pixels where r overlaps the source are copied; any part of r
// beyond the source bounds stays fully transparent. The compositor relies on
// this for partial cell fragments at image edges, so the sizing rule is a
// contract, not a convenience.
func (m *Image) Copy(r image.Rectangle) *Image {
	out := New(r.Dx(), r.Dy())
	src := r.Intersect(m.rgba.Bounds())
	if src.Empty() {
		return out
	}
	draw.Draw(out.rgba, src.Sub(r.Min), m.rgba, src.Min, draw.Src)
	return out
}

// DrawOver composites src onto the receiver at (x, y) with source-over alpha
// blending, clipped to the receiver's bounds. Negative offsets clip the
// source against the left/top edge.
func (m *Image) DrawOver(src *Image, x, y int) {
	if src == nil {
		return
	}
	r := src.rgba.Bounds().Add(image.Pt(x, y))
	draw.Draw(m.rgba, r, src.rgba, src.rgba.Bounds().Min, draw.Over)
}
