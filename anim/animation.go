// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/animation.go
// Summary: Timer-driven frame sources for animated bitmaps.
// Usage: A board.Bitmap reads Current() each render; a Ticker advances frames.

package anim

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/framegrace/texelgfx/raster"
)

// Ticker schedules a single callback after a delay and returns a cancel
// function. Timer adapts the real clock; tests drive frames by hand.
type Ticker interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Timer is the production Ticker backed by time.AfterFunc.
type Timer struct{}

// AfterFunc schedules fn on the standard runtime timer.
func (Timer) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Animation cycles through a fixed list of frames. The frame list and delays
// are immutable after construction; only the current-frame slot changes. The
// slot is an atomic pointer so a draw pass always observes a whole frame,
// never a partially built one, without taking a lock on the render path.
type Animation struct {
	frames  []*raster.Image
	delays  []time.Duration
	current atomic.Pointer[raster.Image]

	mu      sync.Mutex
	index   int
	running bool
	cancel  func()
	refresh chan<- bool
}

// New builds an animation from frames and matching per-frame delays. At
// least one frame is required; len(delays) must equal len(frames).
func New(frames []*raster.Image, delays []time.Duration) (*Animation, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("anim: no frames")
	}
	if len(delays) != len(frames) {
		return nil, fmt.Errorf("anim: %d frames but %d delays", len(frames), len(delays))
	}
	a := &Animation{
		frames: append([]*raster.Image(nil), frames...),
		delays: append([]time.Duration(nil), delays...),
	}
	a.current.Store(frames[0])
	return a, nil
}

// Current returns the frame being shown. Never nil. Pointer identity is the
// change signal: callers compare against the last frame they saw.
func (a *Animation) Current() *raster.Image {
	return a.current.Load()
}

// Frames returns the number of frames.
func (a *Animation) Frames() int {
	return len(a.frames)
}

// SetRefreshNotifier installs a channel that receives a non-blocking nudge
// on every frame advance, so a host loop can schedule a redraw.
func (a *Animation) SetRefreshNotifier(ch chan<- bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refresh = ch
}

// Start begins advancing frames on t. Starting a running animation is a
// no-op. A single-frame animation never schedules.
func (a *Animation) Start(t Ticker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running || len(a.frames) < 2 {
		return
	}
	a.running = true
	a.scheduleLocked(t)
}

// Stop cancels the pending advance. No callback fires after Stop returns:
// the cancel runs under the same mutex that a late-firing advance must take,
// and the running flag gates the advance body.
func (a *Animation) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = false
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// Running reports whether the animation is advancing.
func (a *Animation) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

func (a *Animation) scheduleLocked(t Ticker) {
	a.cancel = t.AfterFunc(a.delays[a.index], func() {
		a.advance(t)
	})
}

func (a *Animation) advance(t Ticker) {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.index = (a.index + 1) % len(a.frames)
	a.current.Store(a.frames[a.index])
	a.scheduleLocked(t)
	refresh := a.refresh
	a.mu.Unlock()

	if refresh != nil {
		select {
		case refresh <- true:
		default:
		}
	}
}
