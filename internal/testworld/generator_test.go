package testworld

import (
	"path/filepath"
	"strings"
	"testing"

	"plotworld/internal/geom"
	"plotworld/internal/plots"
	"plotworld/internal/sim/catalogs"
	"plotworld/internal/sim/world"
)

func testLevel(t *testing.T, cfg world.WorldConfig) *world.World {
	t.Helper()
	cats, err := catalogs.Load(filepath.Join("..", "..", "configs"))
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	w, err := world.New(cfg, cats)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	return w
}

func mustBlock(t *testing.T, w *world.World, name string) uint16 {
	t.Helper()
	id, ok := w.BlockID(name)
	if !ok {
		t.Fatalf("no block %q", name)
	}
	return id
}

func TestGenerate_FullRun(t *testing.T) {
	w := testLevel(t, world.WorldConfig{Seed: 7, Height: 12})
	origin := geom.Vec3i{X: 0, Y: 4, Z: 0}

	player := w.SpawnEntity(world.KindPlayer, origin)
	stray := w.SpawnEntity("ITEM", geom.Vec3i{X: 2, Y: 4, Z: 2})

	list := plots.DefaultRegistry().CreateAll()
	cfg := defaultCfg()
	l, err := NewLayout(origin, list, cfg)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	g, err := NewGenerator(w, player, l, cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	rep, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if rep.RunID == "" || len(rep.Plots) != len(list) {
		t.Fatalf("bad report: %+v", rep)
	}
	if rep.ClearedChunks == 0 {
		t.Fatal("expected base terrain to be cleared")
	}

	platform := mustBlock(t, w, cfg.PlatformBlock)
	outline := mustBlock(t, w, cfg.OutlineBlock)
	sign := mustBlock(t, w, cfg.SignBlock)
	air := mustBlock(t, w, "AIR")

	// Platform slab spans the outer-padded bounds, from origin.Y-depth to
	// origin.Y-1.
	b := l.OverallBounds().InflatedBy(cfg.OuterPadding)
	for _, p := range []geom.Vec3i{
		{X: b.Min.X, Y: origin.Y - 1, Z: b.Min.Z},
		{X: b.Max.X, Y: origin.Y - cfg.PlatformDepth, Z: b.Max.Z},
	} {
		if got := w.GetBlock(p); got != platform {
			t.Errorf("expected platform at %v, got %s", p, w.BlockName(got))
		}
	}
	// Above the platform and outside the plots the world is clear.
	if got := w.GetBlock(geom.Vec3i{X: b.Max.X, Y: origin.Y, Z: b.Max.Z}); got != air {
		t.Errorf("expected air above platform corner, got %s", w.BlockName(got))
	}

	signsSeen := 0
	for i, pp := range l.PositionedPlots() {
		if rep.Plots[i].ID != pp.Plot.ID() {
			t.Fatalf("report order mismatch: %s vs %s", rep.Plots[i].ID, pp.Plot.ID())
		}
		// Outline floor under and one cell around the footprint.
		for _, p := range []geom.Vec3i{
			{X: pp.Bounds.Min.X - 1, Y: origin.Y - 1, Z: pp.Bounds.Min.Z - 1},
			{X: pp.Bounds.Max.X + 1, Y: origin.Y - 1, Z: pp.Bounds.Max.Z + 1},
		} {
			if got := w.GetBlock(p); got != outline {
				t.Errorf("plot %s: expected outline at %v, got %s", pp.Plot.ID(), p, w.BlockName(got))
			}
		}
		// Sign block at the labeling corner.
		signPos := geom.Vec3i{X: pp.Bounds.Max.X + 2, Y: origin.Y, Z: pp.Bounds.Min.Z - 2}
		if got := w.GetBlock(signPos); got != sign {
			t.Errorf("plot %s: expected sign at %v, got %s", pp.Plot.ID(), signPos, w.BlockName(got))
		}
		for _, e := range w.Entities() {
			if e.Kind == "SIGN" && e.Pos == signPos {
				signsSeen++
				if len(e.Text) == 0 || !strings.HasPrefix(pp.Plot.ID(), e.Text[0]) {
					t.Errorf("plot %s: sign text %v does not label the plot", pp.Plot.ID(), e.Text)
				}
			}
		}
	}
	if signsSeen != len(list) {
		t.Fatalf("found %d sign entities, want %d", signsSeen, len(list))
	}

	// Fixture content is anchored at the plot origin: furnace-line places a
	// furnace one block above its base corner.
	furnace := mustBlock(t, w, "FURNACE")
	for _, pp := range l.PositionedPlots() {
		if pp.Plot.ID() != "furnace-line" {
			continue
		}
		p := pp.Origin.Offset(0, 1, 0)
		if got := w.GetBlock(p); got != furnace {
			t.Errorf("expected furnace at %v, got %s", p, w.BlockName(got))
		}
	}

	// The sweep removed the stray item but spared players and plot entities.
	if _, ok := w.Entity(stray); ok {
		t.Error("stray entity survived the sweep")
	}
	if _, ok := w.Entity(player); !ok {
		t.Error("player was swept")
	}
	if rep.RemovedEntities == 0 {
		t.Error("report should count the removed stray")
	}
	for _, e := range w.Entities() {
		if e.ID == stray {
			t.Errorf("stray %s still listed", e.ID)
		}
	}
}

func TestGenerate_SecondRunIsClean(t *testing.T) {
	w := testLevel(t, world.WorldConfig{Seed: 7, Height: 12})
	origin := geom.Vec3i{X: 0, Y: 4, Z: 0}
	cfg := defaultCfg()

	run := func() *Report {
		t.Helper()
		list := plots.DefaultRegistry().CreateAll()
		l, err := NewLayout(origin, list, cfg)
		if err != nil {
			t.Fatalf("NewLayout: %v", err)
		}
		g, err := NewGenerator(w, "", l, cfg)
		if err != nil {
			t.Fatalf("NewGenerator: %v", err)
		}
		rep, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		return rep
	}

	first := run()
	second := run()
	if len(first.Plots) != len(second.Plots) {
		t.Fatalf("plot counts differ: %d vs %d", len(first.Plots), len(second.Plots))
	}
	for i := range first.Plots {
		if first.Plots[i].Origin != second.Plots[i].Origin {
			t.Fatalf("plot %s moved between runs: %v vs %v",
				first.Plots[i].ID, first.Plots[i].Origin, second.Plots[i].Origin)
		}
	}
	// Entities from the first run are swept by the second; only the second
	// run's signs and fixture entities remain.
	want := 0
	for _, pr := range second.Plots {
		want += pr.Entities
	}
	if got := len(w.Entities()); got != want {
		t.Fatalf("expected %d entities after rerun, got %d", want, got)
	}
}

func TestNewGenerator_Preconditions(t *testing.T) {
	w := testLevel(t, world.WorldConfig{Seed: 7, Height: 12})
	cfg := defaultCfg()
	l, err := NewLayout(geom.Vec3i{Y: 4}, []*plots.Plot{
		plotWithFootprint(t, "square", geom.NewBox3(0, 0, 0, 3, 1, 3)),
	}, cfg)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}

	// No room for the platform under the origin.
	low, err := NewLayout(geom.Vec3i{Y: 2}, []*plots.Plot{
		plotWithFootprint(t, "square", geom.NewBox3(0, 0, 0, 3, 1, 3)),
	}, cfg)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	if _, err := NewGenerator(w, "", low, cfg); err == nil {
		t.Fatal("expected error for origin too low for platform")
	}

	// Unknown block names are rejected up front.
	bad := cfg
	bad.PlatformBlock = "NO_SUCH_BLOCK"
	if _, err := NewGenerator(w, "", l, bad); err == nil {
		t.Fatal("expected error for unknown platform block")
	}
}

func TestGenerate_AbortsOnRejectedMutation(t *testing.T) {
	// A boundary tighter than the layout makes clearing hit out-of-bounds
	// coordinates, which is fatal and aborts generation.
	w := testLevel(t, world.WorldConfig{Seed: 7, Height: 12, BoundaryR: 8})
	cfg := defaultCfg()
	l, err := NewLayout(geom.Vec3i{Y: 4}, plots.DefaultRegistry().CreateAll(), cfg)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	g, err := NewGenerator(w, "", l, cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	if _, err := g.Generate(); err == nil {
		t.Fatal("expected generation to abort on rejected mutation")
	}
}
