// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

// Queue holds pending bridge elements under a pluggable admission and
// eviction policy. Queues are cooperative: they are touched by at most
// one goroutine at a time. The shared bridge uses a lock-free ring
// instead.
type Queue[T any] interface {
	Push(v T)
	Pop() (T, bool)
	Len() int
	Clear()
}

// NewFIFO returns the default unbounded first-in first-out queue.
func NewFIFO[T any]() Queue[T] {
	return &fifoQueue[T]{}
}

type fifoQueue[T any] struct {
	buf  []T
	head int
}

func (q *fifoQueue[T]) Push(v T) {
	q.buf = append(q.buf, v)
}

func (q *fifoQueue[T]) Pop() (T, bool) {
	if q.head >= len(q.buf) {
		var zero T
		return zero, false
	}
	v := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero
	q.head++
	if q.head == len(q.buf) {
		q.buf = q.buf[:0]
		q.head = 0
	}
	return v, true
}

func (q *fifoQueue[T]) Len() int { return len(q.buf) - q.head }

func (q *fifoQueue[T]) Clear() {
	q.buf = q.buf[:0]
	q.head = 0
}

// NewLatest returns the size-1 replace-newest queue: a push overwrites
// whatever is pending, so a consumer only ever sees the most recent value.
func NewLatest[T any]() Queue[T] {
	return &latestQueue[T]{}
}

type latestQueue[T any] struct {
	v   T
	set bool
}

func (q *latestQueue[T]) Push(v T) {
	q.v = v
	q.set = true
}

func (q *latestQueue[T]) Pop() (T, bool) {
	if !q.set {
		var zero T
		return zero, false
	}
	v := q.v
	var zero T
	q.v = zero
	q.set = false
	return v, true
}

func (q *latestQueue[T]) Len() int {
	if q.set {
		return 1
	}
	return 0
}

func (q *latestQueue[T]) Clear() {
	var zero T
	q.v = zero
	q.set = false
}

// NewSticky returns the size-1 repeat-last queue: a pop reports the last
// pushed value but retains it, so the value repeats until replaced or
// cleared. A bridge on a sticky queue never drains; termination signals
// are only reachable through Clear.
func NewSticky[T any]() Queue[T] {
	return &stickyQueue[T]{}
}

type stickyQueue[T any] struct {
	v   T
	set bool
}

func (q *stickyQueue[T]) Push(v T) {
	q.v = v
	q.set = true
}

func (q *stickyQueue[T]) Pop() (T, bool) {
	return q.v, q.set
}

func (q *stickyQueue[T]) Len() int {
	if q.set {
		return 1
	}
	return 0
}

func (q *stickyQueue[T]) Clear() {
	var zero T
	q.v = zero
	q.set = false
}

// NewDropNewest returns a bounded queue that rejects pushes while full.
// Capacities below one are clamped to one.
func NewDropNewest[T any](capacity int) Queue[T] {
	return &boundedQueue[T]{capacity: max(capacity, 1), dropOldest: false}
}

// NewDropOldest returns a bounded queue that evicts its oldest element to
// admit a push while full. Capacities below one are clamped to one.
func NewDropOldest[T any](capacity int) Queue[T] {
	return &boundedQueue[T]{capacity: max(capacity, 1), dropOldest: true}
}

type boundedQueue[T any] struct {
	fifoQueue[T]
	capacity   int
	dropOldest bool
}

func (q *boundedQueue[T]) Push(v T) {
	for q.Len() >= q.capacity {
		if !q.dropOldest {
			return
		}
		q.Pop()
	}
	q.fifoQueue.Push(v)
}

// NewDedup returns a FIFO queue de-duplicating by key: pushing a value
// whose key is already pending replaces the pending value in place,
// keeping its queue position.
func NewDedup[T any, K comparable](key func(T) K) Queue[T] {
	return &dedupQueue[T, K]{key: key, index: make(map[K]int)}
}

type dedupQueue[T any, K comparable] struct {
	buf   []T
	index map[K]int
	key   func(T) K
}

func (q *dedupQueue[T, K]) Push(v T) {
	k := q.key(v)
	if i, ok := q.index[k]; ok {
		q.buf[i] = v
		return
	}
	q.index[k] = len(q.buf)
	q.buf = append(q.buf, v)
}

func (q *dedupQueue[T, K]) Pop() (T, bool) {
	if len(q.buf) == 0 {
		var zero T
		return zero, false
	}
	v := q.buf[0]
	q.buf = q.buf[1:]
	delete(q.index, q.key(v))
	for k, i := range q.index {
		q.index[k] = i - 1
	}
	return v, true
}

func (q *dedupQueue[T, K]) Len() int { return len(q.buf) }

func (q *dedupQueue[T, K]) Clear() {
	q.buf = nil
	q.index = make(map[K]int)
}

// NewCoalesce returns an unbounded FIFO that skips a push when eq reports
// it carries nothing new relative to the most recently admitted value.
func NewCoalesce[T any](eq func(a, b T) bool) Queue[T] {
	return &coalesceQueue[T]{eq: eq}
}

type coalesceQueue[T any] struct {
	fifoQueue[T]
	eq   func(a, b T) bool
	last T
	seen bool
}

func (q *coalesceQueue[T]) Push(v T) {
	if q.seen && q.eq(q.last, v) {
		return
	}
	q.last = v
	q.seen = true
	q.fifoQueue.Push(v)
}

func (q *coalesceQueue[T]) Clear() {
	q.fifoQueue.Clear()
	var zero T
	q.last = zero
	q.seen = false
}
