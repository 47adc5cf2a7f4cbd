package plots

import "fmt"

// Registry holds named plot constructors. Creation order follows
// registration order so generated layouts are reproducible across runs.
type Registry struct {
	order []string
	defs  map[string]func() *Plot
}

func NewRegistry() *Registry {
	return &Registry{defs: map[string]func() *Plot{}}
}

func (r *Registry) Register(id string, create func() *Plot) {
	if _, dup := r.defs[id]; dup {
		panic(fmt.Sprintf("plots: duplicate plot id %q", id))
	}
	r.order = append(r.order, id)
	r.defs[id] = create
}

// ByID creates the single plot registered under id. An unknown id is a
// precondition violation surfaced to the caller.
func (r *Registry) ByID(id string) (*Plot, error) {
	create, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("plots: unknown plot id %q", id)
	}
	return create(), nil
}

// CreateAll creates every registered plot, in registration order.
func (r *Registry) CreateAll() []*Plot {
	out := make([]*Plot, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id]())
	}
	return out
}

func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
