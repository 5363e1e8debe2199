// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/gif.go
// Summary: Loads animated GIFs into Animations.

package anim

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"log"
	"os"
	"time"

	"github.com/framegrace/texelgfx/raster"
)

// Zero-delay frames are common in the wild; browsers clamp them too.
// Declared delays, however short, are respected.
const zeroFrameDelay = 100 * time.Millisecond

// LoadGIF decodes an animated GIF into an Animation. Frame rectangles and
// the None/Background disposal methods are composed onto full-size canvases;
// DisposalPrevious is rare and treated as None. GIF delays are in 10ms
// units; only zero-delay frames get the 100ms floor.
func LoadGIF(r io.Reader) (*Animation, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("anim: decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("anim: gif has no frames")
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	frames := make([]*raster.Image, 0, len(g.Image))
	delays := make([]time.Duration, 0, len(g.Image))
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	warnedPrevious := false

	for i, src := range g.Image {
		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)

		frame := raster.New(w, h)
		draw.Draw(frame.RGBA(), frame.Bounds(), canvas, image.Point{}, draw.Src)
		frames = append(frames, frame)

		delay := time.Duration(g.Delay[i]) * 10 * time.Millisecond
		if delay == 0 {
			delay = zeroFrameDelay
		}
		delays = append(delays, delay)

		switch g.Disposal[i] {
		case gif.DisposalBackground:
			draw.Draw(canvas, src.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if !warnedPrevious {
				log.Printf("Anim: gif uses DisposalPrevious, treating as DisposalNone")
				warnedPrevious = true
			}
		}
	}

	return New(frames, delays)
}

// LoadGIFFile decodes the animated GIF at path.
func LoadGIFFile(path string) (*Animation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("anim: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadGIF(f)
}
