// Package selection tracks which components of the design document are
// selected. The set holds component indices plus an optional primary
// index, and renumbers itself when the document gains or loses a
// component.
package selection

import "sort"

// Set is a selection of component indices with an optional primary.
type Set struct {
	indices map[int]struct{}
	primary int
	hasPrim bool
}

// New creates an empty selection.
func New() *Set {
	return &Set{indices: make(map[int]struct{})}
}

// Add adds an index to the selection. The first added index becomes the
// primary selection.
func (s *Set) Add(idx int) {
	s.indices[idx] = struct{}{}
	if !s.hasPrim {
		s.primary = idx
		s.hasPrim = true
	}
}

// Remove removes an index from the selection. If it was the primary, the
// primary selection is cleared.
func (s *Set) Remove(idx int) {
	delete(s.indices, idx)
	if s.hasPrim && s.primary == idx {
		s.hasPrim = false
	}
}

// Contains reports whether the index is selected.
func (s *Set) Contains(idx int) bool {
	_, ok := s.indices[idx]
	return ok
}

// Len returns the number of selected indices.
func (s *Set) Len() int {
	return len(s.indices)
}

// Clear removes all indices and the primary selection.
func (s *Set) Clear() {
	s.indices = make(map[int]struct{})
	s.hasPrim = false
}

// Indices returns the selected indices in ascending order.
func (s *Set) Indices() []int {
	out := make([]int, 0, len(s.indices))
	for idx := range s.indices {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Primary returns the primary selected index, if any.
func (s *Set) Primary() (int, bool) {
	return s.primary, s.hasPrim
}

// SetPrimary marks an index as the primary selection, adding it to the
// set if needed.
func (s *Set) SetPrimary(idx int) {
	s.indices[idx] = struct{}{}
	s.primary = idx
	s.hasPrim = true
}

// ClearPrimary drops the primary marker without changing the set.
func (s *Set) ClearPrimary() {
	s.hasPrim = false
}

// ShiftAfterInsert renumbers the selection for an insertion at idx:
// every selected index at idx or above moves up by one.
func (s *Set) ShiftAfterInsert(idx int) {
	out := make(map[int]struct{}, len(s.indices))
	for i := range s.indices {
		if i >= idx {
			out[i+1] = struct{}{}
		} else {
			out[i] = struct{}{}
		}
	}
	s.indices = out
	if s.hasPrim && s.primary >= idx {
		s.primary++
	}
}

// ShiftAfterRemove renumbers the selection for a removal at idx: the
// removed index is dropped and every index above it moves down by one.
func (s *Set) ShiftAfterRemove(idx int) {
	out := make(map[int]struct{}, len(s.indices))
	for i := range s.indices {
		switch {
		case i > idx:
			out[i-1] = struct{}{}
		case i < idx:
			out[i] = struct{}{}
		}
	}
	s.indices = out
	if s.hasPrim {
		switch {
		case s.primary == idx:
			s.hasPrim = false
		case s.primary > idx:
			s.primary--
		}
	}
}

// Clone creates an independent copy of the selection.
func (s *Set) Clone() *Set {
	out := &Set{
		indices: make(map[int]struct{}, len(s.indices)),
		primary: s.primary,
		hasPrim: s.hasPrim,
	}
	for idx := range s.indices {
		out.indices[idx] = struct{}{}
	}
	return out
}

// Equal reports whether two selections hold the same indices and primary.
func (s *Set) Equal(other *Set) bool {
	if other == nil {
		return false
	}
	if len(s.indices) != len(other.indices) {
		return false
	}
	if s.hasPrim != other.hasPrim || (s.hasPrim && s.primary != other.primary) {
		return false
	}
	for idx := range s.indices {
		if _, ok := other.indices[idx]; !ok {
			return false
		}
	}
	return true
}
