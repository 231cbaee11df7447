package selection

import "github.com/philipparndt/godefects/pkg/registry"

// Resolver turns the toolkit's list of selected shapes into a registry entry
type Resolver[H any] struct {
	registry   *registry.Registry[H]
	state      *State
	onResolved func(registry.Entry[H])
}

// NewResolver creates a resolver writing to state. onResolved may be nil; when set it
// is called with the matched entry, typically to update a label.
func NewResolver[H any](reg *registry.Registry[H], state *State, onResolved func(registry.Entry[H])) *Resolver[H] {
	return &Resolver[H]{registry: reg, state: state, onResolved: onResolved}
}

// Resolve looks up the most recently selected shape (the last element).
// An empty selection or an unregistered shape yields false and leaves the state alone.
func (r *Resolver[H]) Resolve(selected []H) (registry.EntryID, bool) {
	if len(selected) == 0 {
		return 0, false
	}

	id, ok := r.registry.Find(selected[len(selected)-1])
	if !ok {
		return 0, false
	}

	r.state.Set(id)
	if r.onResolved != nil {
		entry, _ := r.registry.Entry(id)
		r.onResolved(entry)
	}
	return id, true
}
