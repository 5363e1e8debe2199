// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/query.go
// Summary: Queries the controlling terminal for its cell pixel size.
// Usage: Called once at startup to size a Screen; falls back to config.

package grid

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"golang.org/x/term"

	"github.com/framegrace/texelgfx/config"
)

var cellSizeReply = regexp.MustCompile(`\x1b\[6;(\d+);(\d+)t`)

// QueryCellSize asks the controlling terminal for its character cell size in
// pixels via XTWINOPS (CSI 16 t). On any failure it logs and returns the
// configured fallback (grid.cell_width / grid.cell_height, default 8x16), so
// callers can use the result unconditionally.
func QueryCellSize() (w, h int) {
	w = config.GetInt("grid", "cell_width", 8)
	h = config.GetInt("grid", "cell_height", 16)

	qw, qh, err := queryCellSizeTTY()
	if err != nil {
		log.Printf("Grid: cell size query failed, using %dx%d: %v", w, h, err)
		return w, h
	}
	return qw, qh
}

func queryCellSizeTTY() (int, int, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("MakeRaw: %w", err)
	}
	defer term.Restore(int(tty.Fd()), oldState)

	if _, err := tty.WriteString("\x1b[16t"); err != nil {
		return 0, 0, err
	}

	// Reply is CSI 6 ; height ; width t.
	resp := make([]byte, 0, 32)
	buf := make([]byte, 1)
	deadline := time.Now().Add(500 * time.Millisecond)
	if err := tty.SetReadDeadline(deadline); err != nil {
		return 0, 0, err
	}
	for {
		n, err := tty.Read(buf)
		if err != nil {
			return 0, 0, fmt.Errorf("read reply: %w", err)
		}
		resp = append(resp, buf[:n]...)
		if buf[0] == 't' {
			break
		}
	}

	m := cellSizeReply.FindStringSubmatch(string(resp))
	if len(m) != 3 {
		return 0, 0, fmt.Errorf("unexpected reply: %q", resp)
	}
	var hh, ww int
	if _, err := fmt.Sscanf(m[1], "%d", &hh); err != nil {
		return 0, 0, err
	}
	if _, err := fmt.Sscanf(m[2], "%d", &ww); err != nil {
		return 0, 0, err
	}
	if ww <= 0 || hh <= 0 {
		return 0, 0, fmt.Errorf("terminal reported cell size %dx%d", ww, hh)
	}
	return ww, hh, nil
}
