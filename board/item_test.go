package board

import (
	"sort"
	"testing"

	"github.com/framegrace/texelgfx/raster"
)

// TestCompositeOrdering pins the exact ordering rule: ascending z, then
// descending y, then descending x. Changing it changes which same-z item
// wins an overlap, so this test is the gate for any deliberate change.
func TestCompositeOrdering(t *testing.T) {
	a := NewBitmap(raster.New(1, 1), 5, 5, 1)
	b := NewBitmap(raster.New(1, 1), 2, 5, 1)
	c := NewBitmap(raster.New(1, 1), 0, 0, 0)

	items := []Item{a, b, c}
	sort.SliceStable(items, func(i, j int) bool { return itemLess(items[i], items[j]) })

	if items[0] != c || items[1] != a || items[2] != b {
		t.Fatalf("expected order c, a, b")
	}
}

func TestOrderingDescendingY(t *testing.T) {
	low := NewBitmap(raster.New(1, 1), 0, 2, 0)
	high := NewBitmap(raster.New(1, 1), 0, 9, 0)
	if !itemLess(high, low) {
		t.Fatalf("expected larger y to sort first within equal z")
	}
}

func TestMutatorsSetDirty(t *testing.T) {
	b := NewBitmap(raster.New(4, 4), 0, 0, 0)
	b.Render(8, 16)
	if b.Dirty() {
		t.Fatalf("expected clean after render")
	}

	b.SetPosition(3, 0)
	if !b.Dirty() {
		t.Fatalf("expected dirty after move")
	}

	b.Render(8, 16)
	b.SetZ(5)
	if !b.Dirty() {
		t.Fatalf("expected dirty after z change")
	}
}

func TestNoopMutatorsStayClean(t *testing.T) {
	b := NewBitmap(raster.New(4, 4), 3, 4, 5)
	b.Render(8, 16)

	b.SetPosition(3, 4)
	b.SetZ(5)
	if b.Dirty() {
		t.Fatalf("expected no-op mutations to leave item clean")
	}
}

func TestRemoveDetachedItemIsSafe(t *testing.T) {
	b := NewBitmap(raster.New(1, 1), 0, 0, 0)
	b.Remove()
	b.Remove()
}
