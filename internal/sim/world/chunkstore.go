package world

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"plotworld/internal/geom"
)

const ChunkSize = 16

type ChunkKey struct {
	CX int
	CZ int
}

// Chunk is a 16x16 column of blocks spanning the full world height.
type Chunk struct {
	CX, CZ int
	Height int
	Blocks []uint16 // len = 16*16*Height

	nonAir int
	dirty  bool
	hash   [32]byte
}

func (c *Chunk) index(x, y, z int) int {
	// x fastest, then z, then y
	return x + z*ChunkSize + y*ChunkSize*ChunkSize
}

func (c *Chunk) Get(x, y, z int) uint16 {
	return c.Blocks[c.index(x, y, z)]
}

func (c *Chunk) Set(x, y, z int, b uint16) {
	i := c.index(x, y, z)
	old := c.Blocks[i]
	if old == b {
		return
	}
	// Palette id 0 is always AIR.
	if old == 0 {
		c.nonAir++
	}
	if b == 0 {
		c.nonAir--
	}
	c.Blocks[i] = b
	c.dirty = true
}

// Empty reports whether the chunk holds only air.
func (c *Chunk) Empty() bool { return c.nonAir == 0 }

func (c *Chunk) Digest() [32]byte {
	if c.dirty || c.hash == ([32]byte{}) {
		// Hash the raw uint16 slice deterministically.
		h := sha256.New()
		var tmp [2]byte
		for _, v := range c.Blocks {
			binary.LittleEndian.PutUint16(tmp[:], v)
			h.Write(tmp[:])
		}
		copy(c.hash[:], h.Sum(nil))
		c.dirty = false
	}
	return c.hash
}

// ChunkKeyAt returns the key of the chunk containing the given world x/z.
func ChunkKeyAt(x, z int) ChunkKey {
	return ChunkKey{CX: floorDiv(x, ChunkSize), CZ: floorDiv(z, ChunkSize)}
}

func (w *World) inBounds(pos geom.Vec3i) bool {
	if pos.Y < 0 || pos.Y >= w.cfg.Height {
		return false
	}
	if pos.X < -w.cfg.BoundaryR || pos.X > w.cfg.BoundaryR ||
		pos.Z < -w.cfg.BoundaryR || pos.Z > w.cfg.BoundaryR {
		return false
	}
	return true
}

func (w *World) LoadedChunkKeys() []ChunkKey {
	keys := make([]ChunkKey, 0, len(w.chunks))
	for k := range w.chunks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		return keys[i].CZ < keys[j].CZ
	})
	return keys
}

func (w *World) getOrGenChunk(cx, cz int) *Chunk {
	k := ChunkKey{CX: cx, CZ: cz}
	if ch, ok := w.chunks[k]; ok {
		return ch
	}
	ch := &Chunk{
		CX:     cx,
		CZ:     cz,
		Height: w.cfg.Height,
		Blocks: make([]uint16, ChunkSize*ChunkSize*w.cfg.Height),
	}
	w.generateChunk(ch)
	ch.dirty = true
	_ = ch.Digest() // initialize digest
	w.chunks[k] = ch
	return ch
}

// generateChunk lays down deterministic base terrain: a dirt floor with a
// grass top and sprinkled stone, gravel and logs, so a fresh test world has
// something for the generator to clear.
func (w *World) generateChunk(ch *Chunk) {
	dirt := w.blocks.Index["DIRT"]
	grass := w.blocks.Index["GRASS"]
	stone := w.blocks.Index["STONE"]
	gravel := w.blocks.Index["GRAVEL"]
	logb := w.blocks.Index["LOG"]

	for z := 0; z < ChunkSize; z++ {
		for x := 0; x < ChunkSize; x++ {
			wx := ch.CX*ChunkSize + x
			wz := ch.CZ*ChunkSize + z

			ground := 1 + int(hash2(w.cfg.Seed, wx, wz)%2)
			for y := 0; y < ground && y < ch.Height; y++ {
				ch.Blocks[ch.index(x, y, z)] = dirt
				ch.nonAir++
			}
			if ground < ch.Height {
				top := grass
				roll := int(hash2(w.cfg.Seed+1, wx, wz) % 1000)
				switch {
				case roll < w.cfg.SprinkleStonePermille:
					top = stone
				case roll < w.cfg.SprinkleStonePermille+w.cfg.SprinkleGravelPermille:
					top = gravel
				case roll < w.cfg.SprinkleStonePermille+w.cfg.SprinkleGravelPermille+w.cfg.SprinkleLogPermille:
					top = logb
				}
				ch.Blocks[ch.index(x, ground, z)] = top
				ch.nonAir++
			}
		}
	}
}

func floorDiv(a, b int) int {
	// b > 0
	q := a / b
	r := a % b
	if r < 0 {
		q--
	}
	return q
}

func mod(a, b int) int {
	// b > 0
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func hash2(seed int64, x, z int) uint64 {
	ux := uint64(uint32(int32(x)))
	uz := uint64(uint32(int32(z)))
	v := uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uz * 0xbf58476d1ce4e5b9)
	return mix64(v)
}
