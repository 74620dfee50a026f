package ecs

// queue is a FIFO of deferred world mutations.
type queue[T any] struct {
	items []T
}

// Push adds an item.
func (q *queue[T]) Push(item T) {
	q.items = append(q.items, item)
}

// Drain returns all items and clears the queue. Items pushed while the caller
// walks the returned slice land in a fresh queue.
func (q *queue[T]) Drain() []T {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Filter drops every item for which keep returns false.
func (q *queue[T]) Filter(keep func(T) bool) {
	kept := q.items[:0:0]
	for _, item := range q.items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	q.items = kept
}

func (q *queue[T]) Len() int {
	return len(q.items)
}

func (q *queue[T]) Reset() {
	q.items = nil
}
