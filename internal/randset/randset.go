// Package randset implements an unordered set that supports removing a
// uniformly random member in constant time.
package randset

import "github.com/abhisek/flashdeck/internal/rng"

// Set is a collection of unique values with O(1) amortized Add, Remove,
// Contains and PullRandom.
//
// Values live in a dense slice; index maps each value to its slot. Removal
// swaps the target into the last slot before truncating, so the slice never
// has holes. The zero value is ready to use.
type Set[T comparable] struct {
	items []T
	index map[T]int
}

// New returns an empty Set.
func New[T comparable]() *Set[T] {
	return &Set[T]{index: make(map[T]int)}
}

// Contains reports whether x is a member.
func (s *Set[T]) Contains(x T) bool {
	_, ok := s.index[x]
	return ok
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return len(s.items)
}

// Add inserts x. Adding a present value is a no-op.
func (s *Set[T]) Add(x T) {
	if s.Contains(x) {
		return
	}
	if s.index == nil {
		s.index = make(map[T]int)
	}
	s.index[x] = len(s.items)
	s.items = append(s.items, x)
}

// Remove deletes x. Removing an absent value is a no-op.
func (s *Set[T]) Remove(x T) {
	i, ok := s.index[x]
	if !ok {
		return
	}
	s.swap(i, len(s.items)-1)
	s.removeLast()
}

// PullRandom removes and returns a uniformly chosen member.
// It returns false when the set is empty.
func (s *Set[T]) PullRandom(src rng.Source) (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	s.swap(src.IntN(len(s.items)), len(s.items)-1)
	return s.removeLast(), true
}

// Items returns a copy of the members in storage order.
func (s *Set[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set[T]) swap(i, j int) {
	if i == j {
		return
	}
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.index[s.items[i]] = i
	s.index[s.items[j]] = j
}

func (s *Set[T]) removeLast() T {
	last := s.items[len(s.items)-1]
	delete(s.index, last)
	var zero T
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return last
}
