package packing

import (
	"math/rand"
	"testing"
)

func sizeOfSize(s Size) Size { return s }

func overlap[P any](a, b Placed[P]) bool {
	// Half-open intervals: rectangles touching edge-to-edge do not overlap.
	return a.X < b.X+b.Size.W && b.X < a.X+a.Size.W &&
		a.Y < b.Y+b.Size.H && b.Y < a.Y+a.Size.H
}

func checkInvariants(t *testing.T, l Layout[Size]) {
	t.Helper()
	maxR, maxB := 0, 0
	for i, p := range l.Rects {
		if p.X < 0 || p.Y < 0 {
			t.Errorf("rect %d has negative origin (%d,%d)", i, p.X, p.Y)
		}
		if p.X+p.Size.W > l.W || p.Y+p.Size.H > l.H {
			t.Errorf("rect %d (%d,%d %dx%d) exceeds bounds %dx%d",
				i, p.X, p.Y, p.Size.W, p.Size.H, l.W, l.H)
		}
		if r := p.X + p.Size.W; r > maxR {
			maxR = r
		}
		if b := p.Y + p.Size.H; b > maxB {
			maxB = b
		}
		for j := i + 1; j < len(l.Rects); j++ {
			if overlap(p, l.Rects[j]) {
				t.Errorf("rect %d overlaps rect %d", i, j)
			}
		}
	}
	// Tightness: no trailing margin on either axis.
	if len(l.Rects) > 0 && (l.W != maxR || l.H != maxB) {
		t.Errorf("bounds %dx%d not tight, placements reach %dx%d", l.W, l.H, maxR, maxB)
	}
}

func TestPack_Empty(t *testing.T) {
	l := Pack(nil, sizeOfSize)
	if len(l.Rects) != 0 || l.W != 0 || l.H != 0 {
		t.Fatalf("empty input should yield empty layout, got %+v", l)
	}
}

func TestPack_SingleItem(t *testing.T) {
	l := Pack([]Size{{W: 7, H: 3}}, sizeOfSize)
	if len(l.Rects) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(l.Rects))
	}
	p := l.Rects[0]
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("single item should sit at origin, got (%d,%d)", p.X, p.Y)
	}
	if l.W != 7 || l.H != 3 {
		t.Fatalf("bounds %dx%d want 7x3", l.W, l.H)
	}
}

func TestPack_PaddedPlotScenario(t *testing.T) {
	// Two plots with footprints 4x4 and 2x6 become 10x10 and 8x12 after
	// padding of 3 on every side.
	items := []Size{{W: 10, H: 10}, {W: 8, H: 12}}
	l := Pack(items, sizeOfSize)
	if len(l.Rects) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(l.Rects))
	}
	checkInvariants(t, l)
	if l.W*l.H < 10*10+8*12 {
		t.Fatalf("bounding area %d smaller than total item area", l.W*l.H)
	}
}

func TestPack_Deterministic(t *testing.T) {
	r := rand.New(rand.NewSource(417))
	items := make([]Size, 40)
	for i := range items {
		items[i] = Size{W: 1 + r.Intn(20), H: 1 + r.Intn(20)}
	}

	a := Pack(items, sizeOfSize)
	b := Pack(items, sizeOfSize)
	if a.W != b.W || a.H != b.H || len(a.Rects) != len(b.Rects) {
		t.Fatalf("repeated packing differs: %dx%d vs %dx%d", a.W, a.H, b.W, b.H)
	}
	for i := range a.Rects {
		if a.Rects[i].X != b.Rects[i].X || a.Rects[i].Y != b.Rects[i].Y ||
			a.Rects[i].Size != b.Rects[i].Size {
			t.Fatalf("placement %d differs: %+v vs %+v", i, a.Rects[i], b.Rects[i])
		}
	}
}

func TestPack_RandomisedInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(93))
	for run := 0; run < 25; run++ {
		n := 1 + r.Intn(60)
		items := make([]Size, n)
		for i := range items {
			items[i] = Size{W: 1 + r.Intn(30), H: 1 + r.Intn(30)}
		}
		l := Pack(items, sizeOfSize)
		if len(l.Rects) != n {
			t.Fatalf("run %d: placed %d of %d items", run, len(l.Rects), n)
		}
		checkInvariants(t, l)
	}
}

func TestPack_OversizedItemIsNeverRejected(t *testing.T) {
	items := []Size{{W: 3, H: 3}, {W: 500, H: 2}, {W: 2, H: 400}}
	l := Pack(items, sizeOfSize)
	if len(l.Rects) != 3 {
		t.Fatalf("oversized items must still be placed, got %d of 3", len(l.Rects))
	}
	checkInvariants(t, l)
	if l.W < 500 || l.H < 400 {
		t.Fatalf("bounds %dx%d cannot hold the oversized items", l.W, l.H)
	}
}

func TestPack_SupersetNeverShrinksArea(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for run := 0; run < 10; run++ {
		n := 2 + r.Intn(30)
		items := make([]Size, n)
		for i := range items {
			items[i] = Size{W: 1 + r.Intn(16), H: 1 + r.Intn(16)}
		}
		base := Pack(items, sizeOfSize)
		super := Pack(append(items, Size{W: 1 + r.Intn(16), H: 1 + r.Intn(16)}), sizeOfSize)
		baseArea := 0
		for _, p := range base.Rects {
			baseArea += p.Size.Area()
		}
		if super.W*super.H < baseArea {
			t.Fatalf("run %d: superset bounding area %d below original item area %d",
				run, super.W*super.H, baseArea)
		}
	}
}

func TestPack_PayloadSurvives(t *testing.T) {
	type plot struct{ id string }
	items := []plot{{id: "alpha"}, {id: "beta"}, {id: "gamma"}}
	l := Pack(items, func(p plot) Size {
		return Size{W: len(p.id) + 1, H: 4}
	})
	seen := map[string]bool{}
	for _, p := range l.Rects {
		seen[p.What.id] = true
	}
	for _, want := range []string{"alpha", "beta", "gamma"} {
		if !seen[want] {
			t.Errorf("payload %q missing from layout", want)
		}
	}
}
