// Package timing holds the queue of cards waiting to resurface in a session.
package timing

// Queue is a min-priority queue keyed by round number, implemented as a
// skew heap. The self-adjusting child swap on every merge gives amortized
// O(log n) enroll and removal without tracking sizes or heights.
//
// The zero value is an empty queue.
type Queue[T any] struct {
	root *node[T]
	size int
}

type node[T any] struct {
	round       int
	value       T
	left, right *node[T]
}

// Enroll schedules item to become due at round.
func (q *Queue[T]) Enroll(item T, round int) {
	q.root = merge(q.root, &node[T]{round: round, value: item})
	q.size++
}

// PullFrom removes every item due at or before round and returns them.
// The order of the returned items is unspecified.
func (q *Queue[T]) PullFrom(round int) []T {
	var due []T
	for q.root != nil && q.root.round <= round {
		due = append(due, q.root.value)
		q.root = merge(q.root.left, q.root.right)
		q.size--
	}
	return due
}

// Empty reports whether no items remain.
func (q *Queue[T]) Empty() bool {
	return q.root == nil
}

// Len returns the number of items still enrolled.
func (q *Queue[T]) Len() int {
	return q.size
}

// merge joins two heaps. The root with the smaller round wins (a wins ties),
// takes the other heap into its right subtree, then swaps its children.
func merge[T any](a, b *node[T]) *node[T] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.round > b.round {
		a, b = b, a
	}
	a.right = merge(a.right, b)
	a.left, a.right = a.right, a.left
	return a
}
