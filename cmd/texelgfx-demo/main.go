// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgfx-demo/main.go
// Summary: End-to-end demo of the pixel-layer compositor on a tcell screen.
// Usage: Run in a terminal; arrows move the label, Ctrl+Q quits.

package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgfx/anim"
	"github.com/framegrace/texelgfx/board"
	"github.com/framegrace/texelgfx/config"
	"github.com/framegrace/texelgfx/grid"
	"github.com/framegrace/texelgfx/raster"
)

const keyQuit = tcell.KeyCtrlQ

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ts, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := ts.Init(); err != nil {
		return err
	}
	defer ts.Fini()
	ts.HideCursor()

	cols, rows := ts.Size()
	cellW, cellH := grid.QueryCellSize()
	surface, err := grid.NewScreen(cols, rows, cellW, cellH)
	if err != nil {
		return err
	}

	refresh := make(chan bool, 1)
	b := board.NewBoard()

	// A gradient tile, placed off the cell grid on purpose so the
	// alignment padding is visible in the image-cell count.
	tile := gradientTile(cellW*6, cellH*3)
	b.Add(board.NewBitmap(tile, cellW+3, cellH+5, 0))

	label := board.NewText("texelgfx", nil, color.White, cellW*2, cellH*6, 2)
	b.Add(label)

	wave, err := anim.New(waveFrames(cellW*4, cellH*2, 12), waveDelays(12))
	if err != nil {
		return err
	}
	wave.SetRefreshNotifier(refresh)
	b.Add(board.NewAnimatedBitmap(wave, cellW*10, cellH*2, 1))
	wave.Start(anim.Timer{})
	defer wave.Stop()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			events <- ts.PollEvent()
		}
	}()

	fps := config.GetInt("demo", "fps", 30)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var store grid.SnapshotStore
	for {
		// Frame advances arrive on refresh; the board cannot see them
		// until Render reads the new frame, so the nudge forces a pass.
		redraw := true
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				cols, rows = ts.Size()
				surface, err = grid.NewScreen(cols, rows, cellW, cellH)
				if err != nil {
					return err
				}
				store.Clear()
				ts.Sync()
			case *tcell.EventKey:
				if ev.Key() == keyQuit {
					return nil
				}
				moveLabel(label, ev.Key(), cellW, cellH)
			}
		case <-refresh:
		case <-ticker.C:
			redraw = b.Dirty()
		}

		if !redraw {
			continue
		}
		surface.ClearImages()
		b.Draw(surface)

		status := fmt.Sprintf(" %d image cells | arrows move, Ctrl+Q quits ", len(surface.ImageCells()))
		surface.SetText(0, rows-1, status, tcell.StyleDefault.Reverse(true))

		store.Present(surface, ts)
		ts.Show()
	}
}

func moveLabel(label *board.Text, key tcell.Key, cellW, cellH int) {
	x, y := label.Position()
	switch key {
	case tcell.KeyUp:
		label.SetPosition(x, y-cellH/2)
	case tcell.KeyDown:
		label.SetPosition(x, y+cellH/2)
	case tcell.KeyLeft:
		label.SetPosition(x-cellW/2, y)
	case tcell.KeyRight:
		label.SetPosition(x+cellW/2, y)
	}
}

// gradientTile paints a diagonal gradient with a white border.
func gradientTile(w, h int) *raster.Image {
	img := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(x+y) / float64(w+h)
			c := color.RGBA{
				R: uint8(v * 255 * 0.8),
				G: uint8(v * 255 * 0.6),
				B: uint8(v * 255),
				A: 255,
			}
			if x < 2 || x >= w-2 || y < 2 || y >= h-2 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// waveFrames generates a cycling sine-stripe animation.
func waveFrames(w, h, n int) []*raster.Image {
	frames := make([]*raster.Image, n)
	for i := range frames {
		img := raster.New(w, h)
		phase := 2 * math.Pi * float64(i) / float64(n)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := 0.5 + 0.5*math.Sin(phase+2*math.Pi*float64(x)/float64(w))
				img.Set(x, y, color.RGBA{
					R: uint8(v * 64),
					G: uint8(v * 192),
					B: uint8(v * 255),
					A: 255,
				})
			}
		}
		frames[i] = img
	}
	return frames
}

func waveDelays(n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = 100 * time.Millisecond
	}
	return out
}
