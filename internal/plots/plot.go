// Package plots defines the test fixtures that get packed into a generated
// world. A plot knows its own footprint and how to materialize itself at a
// given origin; everything else (placement, padding, labeling) is the
// generator's business.
package plots

import (
	"fmt"

	"plotworld/internal/geom"
)

// Level is the slice of the voxel world a plot build is allowed to touch.
type Level interface {
	BlockID(name string) (uint16, bool)
	SetBlock(pos geom.Vec3i, block uint16) error
	SpawnEntity(kind string, pos geom.Vec3i) string
	SetSignText(id string, lines []string) error
}

// BuildFunc is a custom build step. Positions passed to the level must
// already be offset by origin; entity ids spawned by the step must be
// appended to entities so the generator's cleanup sweep spares them.
type BuildFunc func(lvl Level, actor string, origin geom.Vec3i, entities *[]string) error

type stepKind int

const (
	stepSet stepKind = iota + 1
	stepFill
	stepEntity
	stepCustom
)

type step struct {
	kind   stepKind
	box    geom.Box3 // footprint of the step, plot-relative
	block  string
	entity string
	fn     BuildFunc
}

// Plot is a self-contained fixture. Its bounds are plot-relative; Build
// translates them by the origin chosen by the layout.
type Plot struct {
	id     string
	steps  []step
	bounds geom.Box3
}

func (p *Plot) ID() string        { return p.id }
func (p *Plot) Bounds() geom.Box3 { return p.bounds }

// Build materializes the plot into the level at origin. Entity ids spawned
// along the way are appended to entities.
func (p *Plot) Build(lvl Level, actor string, origin geom.Vec3i, entities *[]string) error {
	for i, st := range p.steps {
		switch st.kind {
		case stepSet, stepFill:
			block, ok := lvl.BlockID(st.block)
			if !ok {
				return fmt.Errorf("plot %s: step %d: unknown block %q", p.id, i, st.block)
			}
			box := st.box.Translated(origin)
			for y := box.Min.Y; y <= box.Max.Y; y++ {
				for z := box.Min.Z; z <= box.Max.Z; z++ {
					for x := box.Min.X; x <= box.Max.X; x++ {
						if err := lvl.SetBlock(geom.Vec3i{X: x, Y: y, Z: z}, block); err != nil {
							return fmt.Errorf("plot %s: step %d: %w", p.id, i, err)
						}
					}
				}
			}
		case stepEntity:
			id := lvl.SpawnEntity(st.entity, st.box.Min.Add(origin))
			*entities = append(*entities, id)
		case stepCustom:
			if err := st.fn(lvl, actor, origin, entities); err != nil {
				return fmt.Errorf("plot %s: step %d: %w", p.id, i, err)
			}
		}
	}
	return nil
}
