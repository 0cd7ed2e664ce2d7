// Package queue implements FIFO queue used as a worklist.
package queue

const minCap = 4

// Queue is a ring buffer of items. Capacity is always a power of 2.
type Queue[T any] struct {
	items      []T
	head, size int
}

func New[T any](items ...T) *Queue[T] {
	c := minCap
	for c < len(items) {
		c <<= 1
	}
	result := &Queue[T]{items: make([]T, c), size: len(items)}
	copy(result.items, items)
	return result
}

func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

func (q *Queue[T]) Len() int {
	return q.size
}

func (q *Queue[T]) Append(item T) *Queue[T] {
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)&(len(q.items)-1)] = item
	q.size++
	return q
}

// First removes and returns the oldest item. Returns false if the queue is empty.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) & (len(q.items) - 1)
	q.size--
	return result, true
}

func (q *Queue[T]) grow() {
	items := make([]T, len(q.items)<<1)
	n := copy(items, q.items[q.head:])
	copy(items[n:], q.items[:q.head])
	q.items = items
	q.head = 0
}
