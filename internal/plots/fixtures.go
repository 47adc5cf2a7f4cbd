package plots

import "plotworld/internal/geom"

// DefaultRegistry returns the built-in fixture plots.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("furnace-line", furnaceLine)
	r.Register("ore-cluster", oreCluster)
	r.Register("conveyor-loop", conveyorLoop)
	r.Register("storage-shed", storageShed)
	r.Register("crystal-garden", crystalGarden)
	return r
}

// A row of furnaces on a plank base with a supply chest at the end.
func furnaceLine() *Plot {
	b := NewBuilder("furnace-line")
	b.Fill(geom.NewBox3(0, 0, 0, 4, 0, 1), "PLANKS")
	for x := 0; x <= 3; x++ {
		b.Set(geom.Vec3i{X: x, Y: 1, Z: 0}, "FURNACE")
	}
	b.Set(geom.Vec3i{X: 4, Y: 1, Z: 0}, "CHEST")
	b.Entity("ITEM", geom.Vec3i{X: 4, Y: 1, Z: 1})
	return b.MustPlot()
}

// A 3x2x3 block of mixed ores for mining fixtures.
func oreCluster() *Plot {
	b := NewBuilder("ore-cluster")
	b.Fill(geom.NewBox3(0, 0, 0, 2, 0, 2), "STONE")
	b.Fill(geom.NewBox3(0, 1, 0, 2, 1, 2), "IRON_ORE")
	b.Set(geom.Vec3i{X: 1, Y: 1, Z: 1}, "COAL_ORE")
	b.Set(geom.Vec3i{X: 2, Y: 1, Z: 2}, "COPPER_ORE")
	return b.MustPlot()
}

// A closed conveyor ring with a switch, carrying one item entity.
func conveyorLoop() *Plot {
	b := NewBuilder("conveyor-loop")
	b.Fill(geom.NewBox3(0, 0, 0, 3, 0, 3), "STONE")
	for x := 0; x <= 3; x++ {
		b.Set(geom.Vec3i{X: x, Y: 1, Z: 0}, "CONVEYOR")
		b.Set(geom.Vec3i{X: x, Y: 1, Z: 3}, "CONVEYOR")
	}
	for z := 1; z <= 2; z++ {
		b.Set(geom.Vec3i{X: 0, Y: 1, Z: z}, "CONVEYOR")
		b.Set(geom.Vec3i{X: 3, Y: 1, Z: z}, "CONVEYOR")
	}
	b.Set(geom.Vec3i{X: 1, Y: 1, Z: 1}, "SWITCH")
	b.Entity("ITEM", geom.Vec3i{X: 0, Y: 2, Z: 0})
	return b.MustPlot()
}

// Plank walls around a chest, with a marker entity at the door.
func storageShed() *Plot {
	b := NewBuilder("storage-shed")
	b.Fill(geom.NewBox3(0, 0, 0, 2, 0, 5), "PLANKS")
	b.Fill(geom.NewBox3(0, 1, 0, 0, 2, 5), "PLANKS")
	b.Fill(geom.NewBox3(2, 1, 0, 2, 2, 5), "PLANKS")
	b.Fill(geom.NewBox3(1, 1, 5, 1, 2, 5), "PLANKS")
	b.Set(geom.Vec3i{X: 1, Y: 1, Z: 4}, "CHEST")
	b.Entity("MARKER", geom.Vec3i{X: 1, Y: 1, Z: 0})
	return b.MustPlot()
}

// Crystal ore pillars of varying height with lanterns between them.
func crystalGarden() *Plot {
	b := NewBuilder("crystal-garden")
	b.Fill(geom.NewBox3(0, 0, 0, 4, 0, 4), "GRAVEL")
	heights := [...]struct {
		x, z, h int
	}{
		{0, 0, 2}, {4, 0, 3}, {2, 2, 4}, {0, 4, 3}, {4, 4, 2},
	}
	for _, p := range heights {
		b.Fill(geom.NewBox3(p.x, 1, p.z, p.x, p.h, p.z), "CRYSTAL_ORE")
	}
	b.Set(geom.Vec3i{X: 2, Y: 1, Z: 0}, "LANTERN")
	b.Set(geom.Vec3i{X: 2, Y: 1, Z: 4}, "LANTERN")
	b.Entity("ITEM", geom.Vec3i{X: 3, Y: 1, Z: 3})
	return b.MustPlot()
}
