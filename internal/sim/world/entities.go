package world

import (
	"fmt"
	"sort"

	"plotworld/internal/geom"
)

// KindPlayer marks player-controlled actors; the generator's cleanup sweep
// never discards them.
const KindPlayer = "PLAYER"

type Entity struct {
	ID   string
	Kind string
	Pos  geom.Vec3i
	// Text carries sign lines; empty for other kinds.
	Text []string
}

func (e *Entity) IsPlayer() bool { return e.Kind == KindPlayer }

// SpawnEntity adds an entity and returns its id. Ids are sequential and
// zero-padded so sorted iteration matches spawn order.
func (w *World) SpawnEntity(kind string, pos geom.Vec3i) string {
	w.nextEnt++
	id := fmt.Sprintf("E%06d", w.nextEnt)
	w.entities[id] = &Entity{ID: id, Kind: kind, Pos: pos}
	return id
}

// Entities returns all live entities sorted by id.
func (w *World) Entities() []Entity {
	ids := make([]string, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, *w.entities[id])
	}
	return out
}

func (w *World) Entity(id string) (Entity, bool) {
	e, ok := w.entities[id]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

func (w *World) DiscardEntity(id string) {
	delete(w.entities, id)
}

func (w *World) MoveEntity(id string, pos geom.Vec3i) error {
	e, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("world: no entity %q", id)
	}
	e.Pos = pos
	return nil
}

// SetSignText attaches label lines to a sign entity.
func (w *World) SetSignText(id string, lines []string) error {
	e, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("world: no entity %q", id)
	}
	if e.Kind != "SIGN" {
		return fmt.Errorf("world: entity %q is %s, not SIGN", id, e.Kind)
	}
	e.Text = append([]string(nil), lines...)
	return nil
}
