// Package testworld positions test plots on a packed grid and drives the
// world mutations that materialize them: clearing, platform, outlines,
// labeling signs and the plot builds themselves.
package testworld

import (
	"fmt"

	"plotworld/internal/geom"
	"plotworld/internal/packing"
	"plotworld/internal/plots"
)

// PositionedPlot is a plot with its world-absolute placement anchor and the
// absolute bounding box of its content.
type PositionedPlot struct {
	Origin geom.Vec3i
	Bounds geom.Box3
	Plot   *plots.Plot
}

// Layout is the result of packing a set of plots around an origin. It owns
// the positioned plot list for one generation request; the generator only
// reads it.
type Layout struct {
	origin   geom.Vec3i
	outer    int
	plots    []PositionedPlot
	overall  geom.Box3
	packedW  int
	packedH  int
	startPos geom.Vec3i
}

// NewLayout packs the plots, padded by cfg.Padding on every side, and
// derives their absolute placements relative to origin. An empty plot list
// is a precondition violation: the bounding union of zero plots is
// undefined.
func NewLayout(origin geom.Vec3i, list []*plots.Plot, cfg Config) (*Layout, error) {
	cfg.ApplyDefaults()
	if len(list) == 0 {
		return nil, fmt.Errorf("testworld: layout requires at least one plot")
	}

	packed := packing.Pack(list, func(p *plots.Plot) packing.Size {
		b := p.Bounds()
		return packing.Size{W: b.XSpan() + 2*cfg.Padding, H: b.ZSpan() + 2*cfg.Padding}
	})

	l := &Layout{
		origin:  origin,
		outer:   cfg.OuterPadding,
		plots:   make([]PositionedPlot, 0, len(packed.Rects)),
		packedW: packed.W,
		packedH: packed.H,
	}

	boxes := make([]geom.Box3, 0, len(packed.Rects))
	for _, r := range packed.Rects {
		b := r.What.Bounds()
		// The packed rectangle includes the padding; the plot content sits
		// padding cells in from its corner. The packer's y axis is world z.
		plotOrigin := geom.Vec3i{
			X: origin.X + r.X - b.Min.X + cfg.Padding,
			Y: origin.Y,
			Z: origin.Z + r.Y - b.Min.Z + cfg.Padding,
		}
		abs := b.Translated(plotOrigin)
		l.plots = append(l.plots, PositionedPlot{Origin: plotOrigin, Bounds: abs, Plot: r.What})
		boxes = append(boxes, abs)
	}

	overall, err := geom.EncapsulatingBoxes(boxes)
	if err != nil {
		return nil, err
	}
	l.overall = overall

	// Two cells in front of the padded area: never inside any plot footprint.
	l.startPos = origin.Offset(packed.W/2, 0, -2)
	return l, nil
}

func (l *Layout) PositionedPlots() []PositionedPlot { return l.plots }
func (l *Layout) OverallBounds() geom.Box3          { return l.overall }
func (l *Layout) SuitableStartPos() geom.Vec3i      { return l.startPos }
func (l *Layout) Origin() geom.Vec3i                { return l.origin }

// PackedSize returns the packed plane extents (x and z spans in cells).
func (l *Layout) PackedSize() (int, int) { return l.packedW, l.packedH }

// WithinBounds reports whether pos lies inside the overall bounds inflated
// by the outer padding, uniformly on all axes.
func (l *Layout) WithinBounds(pos geom.Vec3i) bool {
	return l.overall.InflatedBy(l.outer).Contains(pos)
}
