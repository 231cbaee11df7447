// Package registry maps opaque shape handles to stable entry IDs and display labels.
package registry

// EntryID is the position of an entry in registration order
type EntryID int

// Entry is one registered shape
type Entry[H any] struct {
	ID    EntryID
	Label string
	Shape H
}

// Registry holds shapes in registration order. Entries are never removed or
// reordered; a new model gets a new registry.
type Registry[H any] struct {
	partner func(a, b H) bool
	entries []Entry[H]
}

// New creates an empty registry. partner reports whether two handles reference the
// same underlying entity; it must be reflexive and symmetric.
func New[H any](partner func(a, b H) bool) *Registry[H] {
	return &Registry[H]{partner: partner}
}

// Register appends a shape and returns its ID
func (r *Registry[H]) Register(shape H, label string) EntryID {
	id := EntryID(len(r.entries))
	r.entries = append(r.entries, Entry[H]{ID: id, Label: label, Shape: shape})
	return id
}

// Find returns the first registered entry whose shape is a partner of shape.
// The second result is false when nothing matches.
func (r *Registry[H]) Find(shape H) (EntryID, bool) {
	for _, e := range r.entries {
		if r.partner(e.Shape, shape) {
			return e.ID, true
		}
	}
	return 0, false
}

// Entry returns the entry with the given ID
func (r *Registry[H]) Entry(id EntryID) (Entry[H], bool) {
	if id < 0 || int(id) >= len(r.entries) {
		return Entry[H]{}, false
	}
	return r.entries[id], true
}

// Len returns the number of entries
func (r *Registry[H]) Len() int {
	return len(r.entries)
}

// Entries returns a copy of all entries in registration order
func (r *Registry[H]) Entries() []Entry[H] {
	return append([]Entry[H](nil), r.entries...)
}
