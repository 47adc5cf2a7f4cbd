// Package world is the voxel grid the generator mutates: a chunked,
// bounded-height block store plus a flat entity table. All access is
// single-threaded; generation runs to completion on one goroutine.
package world

import (
	"fmt"

	"plotworld/internal/geom"
	"plotworld/internal/sim/catalogs"
)

type World struct {
	cfg    WorldConfig
	blocks *catalogs.BlockCatalog

	chunks   map[ChunkKey]*Chunk
	entities map[string]*Entity
	nextEnt  int
}

func New(cfg WorldConfig, cats *catalogs.Catalogs) (*World, error) {
	if cats == nil {
		return nil, fmt.Errorf("world: nil catalogs")
	}
	cfg.applyDefaults()
	for _, id := range []string{"DIRT", "GRASS", "STONE", "GRAVEL", "LOG"} {
		if _, ok := cats.Blocks.Index[id]; !ok {
			return nil, fmt.Errorf("world: catalog missing terrain block %q", id)
		}
	}
	return &World{
		cfg:      cfg,
		blocks:   &cats.Blocks,
		chunks:   map[ChunkKey]*Chunk{},
		entities: map[string]*Entity{},
	}, nil
}

func (w *World) Height() int { return w.cfg.Height }

// BlockID resolves a catalog block name to its palette id.
func (w *World) BlockID(name string) (uint16, bool) {
	id, ok := w.blocks.Index[name]
	return id, ok
}

func (w *World) BlockName(b uint16) string {
	if int(b) >= len(w.blocks.Palette) {
		return ""
	}
	return w.blocks.Palette[b]
}

// GetBlock returns the block at pos, air for out-of-bounds reads.
func (w *World) GetBlock(pos geom.Vec3i) uint16 {
	if !w.inBounds(pos) {
		return 0
	}
	ch := w.getOrGenChunk(floorDiv(pos.X, ChunkSize), floorDiv(pos.Z, ChunkSize))
	return ch.Get(mod(pos.X, ChunkSize), pos.Y, mod(pos.Z, ChunkSize))
}

// SetBlock writes the block at pos. Out-of-bounds writes are rejected with
// an error; the generator treats that as fatal.
func (w *World) SetBlock(pos geom.Vec3i, b uint16) error {
	if !w.inBounds(pos) {
		return fmt.Errorf("world: set block out of bounds at (%d,%d,%d)", pos.X, pos.Y, pos.Z)
	}
	ch := w.getOrGenChunk(floorDiv(pos.X, ChunkSize), floorDiv(pos.Z, ChunkSize))
	ch.Set(mod(pos.X, ChunkSize), pos.Y, mod(pos.Z, ChunkSize), b)
	return nil
}

// ChunkEmpty reports whether the chunk at (cx,cz) holds only air. Unloaded
// chunks are generated first so the answer reflects base terrain.
func (w *World) ChunkEmpty(cx, cz int) bool {
	return w.getOrGenChunk(cx, cz).Empty()
}

// ChunkDigest returns the deterministic content hash of a chunk.
func (w *World) ChunkDigest(cx, cz int) [32]byte {
	return w.getOrGenChunk(cx, cz).Digest()
}
