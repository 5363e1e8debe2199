// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: typeface/face.go
// Summary: Sized opentype font faces for the text rasterizer.
// Usage: board.Text rasterizes through a Face; Default() needs no font files.

package typeface

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Source is a parsed font file from which sized faces are created.
type Source struct {
	font *opentype.Font
}

// Parse parses TTF or OTF font data.
func Parse(data []byte) (*Source, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("typeface: parse font: %w", err)
	}
	return &Source{font: f}, nil
}

// Load reads and parses the font file at path.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("typeface: read %s: %w", path, err)
	}
	return Parse(data)
}

// Face creates a face of the given pixel size.
func (s *Source) Face(size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("typeface: invalid font size %v", size)
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("typeface: create face: %w", err)
	}
	return &Face{face: f, size: size}, nil
}

// Face is a font at a fixed pixel size, ready for rasterization.
type Face struct {
	face font.Face
	size float64
}

// Size returns the face's pixel size.
func (f *Face) Size() float64 {
	return f.size
}

// Metrics describes the vertical extents of a face in whole pixels.
type Metrics struct {
	Ascent  int
	Descent int
	Height  int
}

// Metrics returns the face's ascent, descent and line height rounded to
// whole pixels.
func (f *Face) Metrics() Metrics {
	m := f.face.Metrics()
	return Metrics{
		Ascent:  m.Ascent.Ceil(),
		Descent: m.Descent.Ceil(),
		Height:  m.Height.Ceil(),
	}
}

var (
	defaultOnce sync.Once
	defaultFace *Face
)

// Default returns the embedded Go Regular face at 16px. It is parsed once
// and shared; the face is safe for concurrent rasterization only from one
// goroutine at a time, which matches the single-threaded draw contract.
func Default() *Face {
	defaultOnce.Do(func() {
		src, err := Parse(goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("typeface: embedded font: %v", err))
		}
		f, err := src.Face(16)
		if err != nil {
			panic(fmt.Sprintf("typeface: embedded font face: %v", err))
		}
		defaultFace = f
	})
	return defaultFace
}
