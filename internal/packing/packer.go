// Package packing places variably-sized rectangles on a growing 2D plane
// without overlap. It is a pure geometric transform: no side effects, and
// the same input always yields the same layout.
package packing

import (
	"math"
	"sort"
)

type Size struct {
	W int
	H int
}

func (s Size) Area() int { return s.W * s.H }

// Placed is one rectangle positioned on the packed plane. X/Y are the
// min-corner offsets, always >= 0.
type Placed[P any] struct {
	X    int
	Y    int
	Size Size
	What P
}

type Layout[P any] struct {
	Rects []Placed[P]
	// W and H are the tightest extents enclosing every placed rectangle.
	W int
	H int
}

// freeRect is a currently unoccupied region of the plane. The free list is
// kept disjoint so first-fit placement can never produce an overlap.
type freeRect struct {
	x, y, w, h int
}

// Pack arranges the items on a plane, growing it as needed. Every item is
// placed; an item larger than the current plane forces the plane to grow by
// at least the item's own size, so packing always terminates. Placement is
// deterministic for a given input order. An empty input yields the empty
// layout with zero extents.
func Pack[P any](items []P, sizeOf func(P) Size) Layout[P] {
	if len(items) == 0 {
		return Layout[P]{}
	}

	type entry struct {
		what P
		size Size
	}
	entries := make([]entry, 0, len(items))
	totalArea := 0
	maxW := 0
	for _, it := range items {
		sz := sizeOf(it)
		entries = append(entries, entry{what: it, size: sz})
		totalArea += sz.Area()
		if sz.W > maxW {
			maxW = sz.W
		}
	}

	// Tallest first, then widest; stable so equal sizes keep input order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].size.H != entries[j].size.H {
			return entries[i].size.H > entries[j].size.H
		}
		return entries[i].size.W > entries[j].size.W
	})

	// Aim for a roughly square result: start from sqrt of the total area,
	// but never narrower than the widest item.
	planeW := int(math.Ceil(math.Sqrt(float64(totalArea))))
	if planeW < maxW {
		planeW = maxW
	}
	planeH := (totalArea + planeW - 1) / planeW
	if planeH < entries[0].size.H {
		planeH = entries[0].size.H
	}

	free := []freeRect{{x: 0, y: 0, w: planeW, h: planeH}}

	out := Layout[P]{Rects: make([]Placed[P], 0, len(entries))}
	for _, e := range entries {
		idx := findFit(free, e.size)
		if idx < 0 {
			// Grow downward by a strip tall enough for this item; widen the
			// strip if the item is wider than the plane. The strip alone
			// always fits the item.
			stripW := planeW
			if e.size.W > stripW {
				stripW = e.size.W
			}
			free = append(free, freeRect{x: 0, y: planeH, w: stripW, h: e.size.H})
			planeH += e.size.H
			if stripW > planeW {
				planeW = stripW
			}
			idx = findFit(free, e.size)
		}

		fr := free[idx]
		out.Rects = append(out.Rects, Placed[P]{X: fr.x, Y: fr.y, Size: e.size, What: e.what})

		// Guillotine split of the remaining L-shape: right remainder beside
		// the item, bottom remainder below the whole free rect.
		free = append(free[:idx], free[idx+1:]...)
		if right := (freeRect{x: fr.x + e.size.W, y: fr.y, w: fr.w - e.size.W, h: e.size.H}); right.w > 0 && right.h > 0 {
			free = append(free, right)
		}
		if bottom := (freeRect{x: fr.x, y: fr.y + e.size.H, w: fr.w, h: fr.h - e.size.H}); bottom.w > 0 && bottom.h > 0 {
			free = append(free, bottom)
		}
		sortFree(free)

		if r := fr.x + e.size.W; r > out.W {
			out.W = r
		}
		if b := fr.y + e.size.H; b > out.H {
			out.H = b
		}
	}

	return out
}

// findFit returns the index of the first free rectangle that fits the size,
// scanning top-to-bottom then left-to-right. -1 when nothing fits.
func findFit(free []freeRect, sz Size) int {
	for i, fr := range free {
		if fr.w >= sz.W && fr.h >= sz.H {
			return i
		}
	}
	return -1
}

func sortFree(free []freeRect) {
	sort.Slice(free, func(i, j int) bool {
		if free[i].y != free[j].y {
			return free[i].y < free[j].y
		}
		return free[i].x < free[j].x
	})
}
