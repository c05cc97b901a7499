package types

import (
	"iter"
	"slices"
)

// OrderedSet is a generic set that remembers the order in which elements
// were first inserted.
//
// It combines a Set for O(1) membership tests with a slice that records
// insertion order. Re-adding an element that is already present does not
// move it. This type is mutable: methods like Add and Delete modify the
// set in place.
type OrderedSet[T comparable] struct {
	seen  Set[T]
	items []T
}

// NewOrderedSet creates a new OrderedSet and optionally inserts the
// provided elements, keeping the first occurrence of each duplicate.
//
// Parameters:
//   - data: zero or more elements to initialize the set with.
//
// Returns:
//   - An OrderedSet containing the provided elements in first-seen order.
func NewOrderedSet[T comparable](data ...T) *OrderedSet[T] {
	set := &OrderedSet[T]{
		seen:  NewSet[T](),
		items: make([]T, 0, len(data)),
	}
	set.Add(data...)
	return set
}

// Add inserts one or more elements into the set. Elements already present
// are ignored and keep their original position.
//
// Parameters:
//   - values: elements to add to the set.
func (s *OrderedSet[T]) Add(values ...T) {
	for _, val := range values {
		if s.seen.Contains(val) {
			continue
		}
		s.seen.Add(val)
		s.items = append(s.items, val)
	}
}

// Delete removes one or more elements from the set, closing the gap they
// leave in the insertion order.
//
// Parameters:
//   - values: elements to remove from the set.
func (s *OrderedSet[T]) Delete(values ...T) {
	for _, val := range values {
		if !s.seen.Contains(val) {
			continue
		}
		s.seen.Delete(val)
		if i := slices.Index(s.items, val); i >= 0 {
			s.items = slices.Delete(s.items, i, i+1)
		}
	}
}

// Contains reports whether the given element is present in the set.
//
// Parameters:
//   - value: the element to test for membership.
//
// Returns:
//   - true if the element is in the set, false otherwise.
func (s *OrderedSet[T]) Contains(value T) bool {
	return s.seen.Contains(value)
}

// Len returns the number of elements in the set.
func (s *OrderedSet[T]) Len() int {
	return len(s.items)
}

// ToIter returns an iterator over all elements in insertion order.
//
// Returns:
//   - A Seq[T] iterator that yields all elements in first-seen order.
func (s *OrderedSet[T]) ToIter() iter.Seq[T] {
	return slices.Values(s.items)
}

// ToSlice returns a copy of all elements in insertion order.
//
// Returns:
//   - A slice of all elements in first-seen order.
func (s *OrderedSet[T]) ToSlice() []T {
	return slices.Clone(s.items)
}
