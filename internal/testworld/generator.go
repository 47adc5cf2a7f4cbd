package testworld

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"plotworld/internal/geom"
	"plotworld/internal/plots"
	"plotworld/internal/sim/world"
)

// Level is the voxel grid collaborator the generator mutates. *world.World
// satisfies it. Mutation is ordered and sequential: the level is not safe
// for concurrent writers, so Generate must run on the host's simulation
// goroutine.
type Level interface {
	plots.Level
	Height() int
	GetBlock(pos geom.Vec3i) uint16
	ChunkEmpty(cx, cz int) bool
	Entities() []world.Entity
	DiscardEntity(id string)
}

// Generator builds one test world from a layout. Generation is
// all-or-nothing: a rejected mutation aborts the rest and nothing already
// written is rolled back.
type Generator struct {
	lvl    Level
	actor  string // entity id of the driving actor, spared by the sweep
	layout *Layout
	cfg    Config

	air      uint16
	platform uint16
	outline  uint16
	sign     uint16
}

func NewGenerator(lvl Level, actor string, layout *Layout, cfg Config) (*Generator, error) {
	cfg.ApplyDefaults()
	if layout == nil {
		return nil, fmt.Errorf("testworld: nil layout")
	}
	if layout.origin.Y-cfg.PlatformDepth < 0 {
		return nil, fmt.Errorf("testworld: origin y=%d leaves no room for a %d deep platform",
			layout.origin.Y, cfg.PlatformDepth)
	}
	g := &Generator{lvl: lvl, actor: actor, layout: layout, cfg: cfg}
	for _, b := range []struct {
		name string
		dst  *uint16
	}{
		{"AIR", &g.air},
		{cfg.PlatformBlock, &g.platform},
		{cfg.OutlineBlock, &g.outline},
		{cfg.SignBlock, &g.sign},
	} {
		id, ok := lvl.BlockID(b.name)
		if !ok {
			return nil, fmt.Errorf("testworld: unknown block %q", b.name)
		}
		*b.dst = id
	}
	return g, nil
}

type PlotReport struct {
	ID       string    `json:"id"`
	Origin   [3]int    `json:"origin"`
	Bounds   [2][3]int `json:"bounds"`
	Entities int       `json:"entities"`
}

type Report struct {
	RunID           string       `json:"run_id"`
	CreatedAt       time.Time    `json:"created_at"`
	Origin          [3]int       `json:"origin"`
	PackedW         int          `json:"packed_w"`
	PackedH         int          `json:"packed_h"`
	OverallBounds   [2][3]int    `json:"overall_bounds"`
	StartPos        [3]int       `json:"start_pos"`
	Plots           []PlotReport `json:"plots"`
	ClearedChunks   int          `json:"cleared_chunks"`
	RemovedEntities int          `json:"removed_entities"`
}

func boxToArrays(b geom.Box3) [2][3]int {
	return [2][3]int{b.Min.ToArray(), b.Max.ToArray()}
}

// Generate runs the full sequence: clear, platform, then per plot outline,
// sign and build, and finally the stray-entity sweep.
func (g *Generator) Generate() (*Report, error) {
	rep := &Report{
		RunID:         uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Origin:        g.layout.origin.ToArray(),
		OverallBounds: boxToArrays(g.layout.overall),
		StartPos:      g.layout.startPos.ToArray(),
	}
	rep.PackedW, rep.PackedH = g.layout.PackedSize()

	cleared, err := g.clearLevel()
	if err != nil {
		return nil, fmt.Errorf("clear level: %w", err)
	}
	rep.ClearedChunks = cleared

	if err := g.buildPlatform(); err != nil {
		return nil, fmt.Errorf("build platform: %w", err)
	}

	// Entity ids produced by this generation; the sweep spares exactly these.
	var entities []string
	for _, pp := range g.layout.plots {
		before := len(entities)
		if err := g.outlinePlot(pp); err != nil {
			return nil, fmt.Errorf("plot %s: outline: %w", pp.Plot.ID(), err)
		}
		if err := g.placeSign(pp, &entities); err != nil {
			return nil, fmt.Errorf("plot %s: sign: %w", pp.Plot.ID(), err)
		}
		if err := pp.Plot.Build(g.lvl, g.actor, pp.Origin, &entities); err != nil {
			return nil, fmt.Errorf("plot %s: build: %w", pp.Plot.ID(), err)
		}
		rep.Plots = append(rep.Plots, PlotReport{
			ID:       pp.Plot.ID(),
			Origin:   pp.Origin.ToArray(),
			Bounds:   boxToArrays(pp.Bounds),
			Entities: len(entities) - before,
		})
	}

	rep.RemovedEntities = g.clearEntities(entities)
	return rep, nil
}

// clearLevel wipes every chunk intersecting the outer-padded bounds down to
// air, full height. Chunks that already hold nothing are skipped.
func (g *Generator) clearLevel() (int, error) {
	box := g.layout.overall.InflatedBy(g.cfg.OuterPadding)
	from := world.ChunkKeyAt(box.Min.X, box.Min.Z)
	to := world.ChunkKeyAt(box.Max.X, box.Max.Z)

	cleared := 0
	for cz := from.CZ; cz <= to.CZ; cz++ {
		for cx := from.CX; cx <= to.CX; cx++ {
			if g.lvl.ChunkEmpty(cx, cz) {
				continue
			}
			for y := 0; y < g.lvl.Height(); y++ {
				for z := 0; z < world.ChunkSize; z++ {
					for x := 0; x < world.ChunkSize; x++ {
						p := geom.Vec3i{X: cx*world.ChunkSize + x, Y: y, Z: cz*world.ChunkSize + z}
						if err := g.lvl.SetBlock(p, g.air); err != nil {
							return cleared, err
						}
					}
				}
			}
			cleared++
		}
	}
	return cleared, nil
}

// buildPlatform fills the slab beneath all plots, outer padding included.
func (g *Generator) buildPlatform() error {
	b := g.layout.overall.InflatedBy(g.cfg.OuterPadding)
	y0 := g.layout.origin.Y - g.cfg.PlatformDepth
	y1 := g.layout.origin.Y - 1
	for y := y0; y <= y1; y++ {
		for z := b.Min.Z; z <= b.Max.Z; z++ {
			for x := b.Min.X; x <= b.Max.X; x++ {
				if err := g.lvl.SetBlock(geom.Vec3i{X: x, Y: y, Z: z}, g.platform); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// outlinePlot recolors the floor beneath the plot, one cell beyond its
// footprint on each side, to make the plot edges visible.
func (g *Generator) outlinePlot(pp PositionedPlot) error {
	y := pp.Origin.Y - 1
	for z := pp.Bounds.Min.Z - 1; z <= pp.Bounds.Max.Z+1; z++ {
		for x := pp.Bounds.Min.X - 1; x <= pp.Bounds.Max.X+1; x++ {
			if err := g.lvl.SetBlock(geom.Vec3i{X: x, Y: y, Z: z}, g.outline); err != nil {
				return err
			}
		}
	}
	return nil
}

// placeSign puts a labeled sign at the plot's north-east corner carrying the
// plot id wrapped onto sign lines.
func (g *Generator) placeSign(pp PositionedPlot, entities *[]string) error {
	pos := geom.Vec3i{
		X: pp.Bounds.Max.X + 2,
		Y: g.layout.origin.Y,
		Z: pp.Bounds.Min.Z - 2,
	}
	if err := g.lvl.SetBlock(pos, g.sign); err != nil {
		return err
	}
	id := g.lvl.SpawnEntity("SIGN", pos)
	*entities = append(*entities, id)
	return g.lvl.SetSignText(id, wrapSignText(pp.Plot.ID(), g.cfg.SignLineChars, g.cfg.SignLines))
}

// clearEntities discards stray entities spawned as side effects of the
// build: everything live that is not registered by this generation, not the
// driving actor, and not player-controlled.
func (g *Generator) clearEntities(keep []string) int {
	keepSet := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		keepSet[id] = struct{}{}
	}
	removed := 0
	for _, e := range g.lvl.Entities() {
		if _, ok := keepSet[e.ID]; ok {
			continue
		}
		if e.ID == g.actor || e.IsPlayer() {
			continue
		}
		g.lvl.DiscardEntity(e.ID)
		removed++
	}
	return removed
}
