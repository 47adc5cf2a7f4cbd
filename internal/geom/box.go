package geom

import "errors"

// ErrNoBoxes is returned when a bounding union is requested for zero boxes.
// The union of an empty set is undefined and callers must treat it as a
// precondition violation rather than defaulting to a zero box.
var ErrNoBoxes = errors.New("geom: encapsulating box of zero boxes is undefined")

// Box3 is an axis-aligned box with inclusive corners: every point p with
// Min.X <= p.X <= Max.X (and likewise for Y and Z) is inside the box.
type Box3 struct {
	Min Vec3i
	Max Vec3i
}

func NewBox3(minX, minY, minZ, maxX, maxY, maxZ int) Box3 {
	return Box3{
		Min: Vec3i{X: minX, Y: minY, Z: minZ},
		Max: Vec3i{X: maxX, Y: maxY, Z: maxZ},
	}
}

// Spans are counted in cells, so a box whose Min equals its Max spans 1.
func (b Box3) XSpan() int { return b.Max.X - b.Min.X + 1 }
func (b Box3) YSpan() int { return b.Max.Y - b.Min.Y + 1 }
func (b Box3) ZSpan() int { return b.Max.Z - b.Min.Z + 1 }

func (b Box3) Contains(p Vec3i) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b Box3) Translated(by Vec3i) Box3 {
	return Box3{Min: b.Min.Add(by), Max: b.Max.Add(by)}
}

// InflatedBy grows the box by n cells uniformly on all axes.
func (b Box3) InflatedBy(n int) Box3 {
	return Box3{
		Min: b.Min.Offset(-n, -n, -n),
		Max: b.Max.Offset(n, n, n),
	}
}

func (b Box3) Union(o Box3) Box3 {
	return Box3{
		Min: Vec3i{X: min(b.Min.X, o.Min.X), Y: min(b.Min.Y, o.Min.Y), Z: min(b.Min.Z, o.Min.Z)},
		Max: Vec3i{X: max(b.Max.X, o.Max.X), Y: max(b.Max.Y, o.Max.Y), Z: max(b.Max.Z, o.Max.Z)},
	}
}

// EncapsulatingBoxes returns the smallest box enclosing all of the given
// boxes. It fails on an empty slice.
func EncapsulatingBoxes(boxes []Box3) (Box3, error) {
	if len(boxes) == 0 {
		return Box3{}, ErrNoBoxes
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = out.Union(b)
	}
	return out, nil
}
