package plots

import (
	"fmt"

	"plotworld/internal/geom"
)

// Builder assembles a plot from declarative steps. Bounds are derived as the
// union of every step's footprint, so a finished plot always reports a
// footprint that covers everything it will place.
type Builder struct {
	plot      *Plot
	hasBounds bool
}

func NewBuilder(id string) *Builder {
	return &Builder{plot: &Plot{id: id}}
}

func (b *Builder) grow(box geom.Box3) {
	if !b.hasBounds {
		b.plot.bounds = box
		b.hasBounds = true
		return
	}
	b.plot.bounds = b.plot.bounds.Union(box)
}

// Set places a single block at a plot-relative position.
func (b *Builder) Set(pos geom.Vec3i, block string) *Builder {
	box := geom.Box3{Min: pos, Max: pos}
	b.plot.steps = append(b.plot.steps, step{kind: stepSet, box: box, block: block})
	b.grow(box)
	return b
}

// Fill places a block into every cell of a plot-relative box.
func (b *Builder) Fill(box geom.Box3, block string) *Builder {
	b.plot.steps = append(b.plot.steps, step{kind: stepFill, box: box, block: block})
	b.grow(box)
	return b
}

// Entity spawns an entity of the given kind at a plot-relative position.
func (b *Builder) Entity(kind string, pos geom.Vec3i) *Builder {
	box := geom.Box3{Min: pos, Max: pos}
	b.plot.steps = append(b.plot.steps, step{kind: stepEntity, box: box, entity: kind})
	b.grow(box)
	return b
}

// Custom runs an arbitrary build step. The caller must declare the box the
// step will touch so plot bounds stay truthful.
func (b *Builder) Custom(box geom.Box3, fn BuildFunc) *Builder {
	b.plot.steps = append(b.plot.steps, step{kind: stepCustom, box: box, fn: fn})
	b.grow(box)
	return b
}

// Plot finalizes the builder. A plot with no steps has no footprint and is
// rejected.
func (b *Builder) Plot() (*Plot, error) {
	if b.plot.id == "" {
		return nil, fmt.Errorf("plots: empty plot id")
	}
	if !b.hasBounds {
		return nil, fmt.Errorf("plots: plot %s has no steps", b.plot.id)
	}
	return b.plot, nil
}

// MustPlot is Plot for static fixture definitions.
func (b *Builder) MustPlot() *Plot {
	p, err := b.Plot()
	if err != nil {
		panic(err)
	}
	return p
}
