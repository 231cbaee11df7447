// Package selection resolves toolkit picks to registry entries and remembers the
// current one.
package selection

import "github.com/philipparndt/godefects/pkg/registry"

// State holds at most one selected entry
type State struct {
	current registry.EntryID
	set     bool
}

// Current returns the selected entry, if any
func (s *State) Current() (registry.EntryID, bool) {
	return s.current, s.set
}

// Set selects id
func (s *State) Set(id registry.EntryID) {
	s.current = id
	s.set = true
}

// Reset clears the selection. Called when a new model is loaded.
func (s *State) Reset() {
	s.current = 0
	s.set = false
}
