package grid

import "github.com/gdamore/tcell/v2"

// Present copies every cell's text plane to the tcell screen. Image
// attachments are not encoded here; an external graphics encoder walks
// ImageCells for those.
func (s *Screen) Present(ts tcell.Screen) {
	for y := range s.buf {
		for x, cell := range s.buf[y] {
			ts.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
}

// PresentDiff only rewrites cells whose text plane changed against prev, the
// snapshot of the previously presented frame. A nil or short prev falls back
// to writing the uncovered cells unconditionally.
func (s *Screen) PresentDiff(ts tcell.Screen, prev [][]Cell) {
	for y := range s.buf {
		for x, cell := range s.buf[y] {
			if y < len(prev) && x < len(prev[y]) && sameText(cell, prev[y][x]) {
				continue
			}
			ts.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
}

// sameText compares the text plane only; image attachments never reach the
// tcell screen, so they do not participate in the diff.
func sameText(a, b Cell) bool {
	return a.Ch == b.Ch && a.Style == b.Style
}

// SnapshotStore keeps the previous frame's snapshot for diff presentation.
// The zero value is ready to use.
type SnapshotStore struct {
	prev [][]Cell
}

// Present flushes s to ts, diffing against the stored previous frame, then
// stores the new snapshot.
func (st *SnapshotStore) Present(s *Screen, ts tcell.Screen) {
	if st.prev == nil {
		s.Present(ts)
	} else {
		s.PresentDiff(ts, st.prev)
	}
	st.prev = s.Snapshot()
}

// Clear drops the stored snapshot, forcing the next Present to be a full
// flush.
func (st *SnapshotStore) Clear() {
	st.prev = nil
}
