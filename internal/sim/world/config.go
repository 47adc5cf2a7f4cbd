package world

type WorldConfig struct {
	Seed      int64
	Height    int // world Y extent: valid block y is [0, Height)
	BoundaryR int // blocks; |x| and |z| beyond this are out of bounds

	// Base terrain tuning (permille of surface cells).
	SprinkleStonePermille  int
	SprinkleGravelPermille int
	SprinkleLogPermille    int
}

func (c *WorldConfig) applyDefaults() {
	if c.Height <= 0 {
		c.Height = 16
	}
	if c.BoundaryR <= 0 {
		c.BoundaryR = 2048
	}
	if c.SprinkleStonePermille <= 0 {
		c.SprinkleStonePermille = 60
	}
	if c.SprinkleGravelPermille <= 0 {
		c.SprinkleGravelPermille = 20
	}
	if c.SprinkleLogPermille <= 0 {
		c.SprinkleLogPermille = 10
	}
}
