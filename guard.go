// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"iter"
)

// IsIterator reports whether x satisfies the synchronous pull shape.
func IsIterator[T any](x any) bool {
	_, ok := x.(Iterator[T])
	return ok
}

// IsIterable reports whether x can hand out a synchronous iterator.
func IsIterable[T any](x any) bool {
	_, ok := x.(Iterable[T])
	return ok
}

// IsAsyncIterator reports whether x satisfies the asynchronous pull shape.
func IsAsyncIterator[T any](x any) bool {
	_, ok := x.(AsyncIterator[T])
	return ok
}

// IsAsyncIterable reports whether x can hand out an asynchronous iterator.
func IsAsyncIterable[T any](x any) bool {
	_, ok := x.(AsyncIterable[T])
	return ok
}

// IsGenerator reports whether x already satisfies the full resumable
// contract for the given element, return and resume types.
func IsGenerator[T, R, N any](x any) bool {
	_, ok := x.(Generator[T, R, N])
	return ok
}

// IsAsyncGenerator reports whether x satisfies the resumable contract and
// declares asynchronous delivery.
func IsAsyncGenerator[T, R, N any](x any) bool {
	return IsGenerator[T, R, N](x) && ModeOf(x) == Async
}

// ToIterator normalizes anything iterator-like or iterable-like into an
// Iterator: an Iterator itself, an Iterable, a slice, an iter.Seq, or a
// bare pull function. Anything else fails with ErrNotIterable.
func ToIterator[T any](x any) (Iterator[T], error) {
	switch v := x.(type) {
	case Iterator[T]:
		return v, nil
	case Iterable[T]:
		return v.Iter(), nil
	case []T:
		return &sliceIter[T]{buf: v}, nil
	case iter.Seq[T]:
		next, stop := iter.Pull(v)
		return &pullIter[T]{next: next, stop: stop}, nil
	case func() (T, bool):
		return funcIter[T](v), nil
	}
	return nil, ErrNotIterable
}

// ToIterable wraps anything iterator-like in a minimal single-pass
// Iterable: Iter hands out the same iterator every time.
func ToIterable[T any](x any) (Iterable[T], error) {
	if v, ok := x.(Iterable[T]); ok {
		return v, nil
	}
	it, err := ToIterator[T](x)
	if err != nil {
		return nil, err
	}
	return onceIterable[T]{it: it}, nil
}

// ToGenerator normalizes x into a canonical resumable sequence. A value
// already satisfying the contract passes through; iterator-like shapes are
// wrapped in a pass-through generator that completes with the zero final
// value and does not forward Return to the bare iterator (bare iterators
// may lack one).
func ToGenerator[T, R, N any](x any) (Generator[T, R, N], error) {
	if g, ok := x.(Generator[T, R, N]); ok {
		return g, nil
	}
	it, err := ToIterator[T](x)
	if err != nil {
		return nil, err
	}
	g := &iterGen[T, R, N]{it: it}
	if p, ok := it.(*pullIter[T]); ok {
		g.stop = p.stop
	}
	return g, nil
}

// ToAsyncIterator normalizes x into an AsyncIterator: an AsyncIterator
// itself, an AsyncIterable, or any synchronous iterator shape lifted into
// a poller that never suspends.
func ToAsyncIterator[T any](x any) (AsyncIterator[T], error) {
	switch v := x.(type) {
	case AsyncIterator[T]:
		return v, nil
	case AsyncIterable[T]:
		return v.AsyncIter(), nil
	}
	it, err := ToIterator[T](x)
	if err != nil {
		return nil, ErrNotAsyncIterable
	}
	return syncPoller[T]{it: it}, nil
}

// ToAsyncGenerator normalizes x into an asynchronous canonical sequence.
// Synchronous sources are lifted with ToAsync; AsyncIterators are wrapped
// in a pass-through generator whose pulls report iox.ErrWouldBlock until
// the underlying poller is ready.
func ToAsyncGenerator[T, R, N any](x any) (Generator[T, R, N], error) {
	if g, ok := x.(Generator[T, R, N]); ok {
		if ModeOf(g) == Async {
			return g, nil
		}
		return ToAsync(g), nil
	}
	switch v := x.(type) {
	case AsyncIterator[T]:
		return &asyncIterGen[T, R, N]{it: v}, nil
	case AsyncIterable[T]:
		return &asyncIterGen[T, R, N]{it: v.AsyncIter()}, nil
	}
	g, err := ToGenerator[T, R, N](x)
	if err != nil {
		return nil, ErrNotAsyncIterable
	}
	return ToAsync(g), nil
}

// ToAsync lifts a synchronous generator into the asynchronous world. All
// three operations forward unchanged; only the declared mode differs, so
// downstream stages treat every step as a suspension point.
func ToAsync[T, R, N any](g Generator[T, R, N]) Generator[T, R, N] {
	if ModeOf(g) == Async {
		return g
	}
	return asyncView[T, R, N]{src: g}
}

// sliceIter pulls a slice front to back.
type sliceIter[T any] struct {
	buf []T
	pos int
}

func (it *sliceIter[T]) Next() (T, bool) {
	if it.pos >= len(it.buf) {
		var zero T
		return zero, false
	}
	v := it.buf[it.pos]
	it.pos++
	return v, true
}

// funcIter adapts a bare pull function.
type funcIter[T any] func() (T, bool)

func (f funcIter[T]) Next() (T, bool) { return f() }

// pullIter adapts an iter.Seq via iter.Pull, keeping the stop hook so an
// early Return can release the underlying coroutine.
type pullIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *pullIter[T]) Next() (T, bool) { return it.next() }

// onceIterable exposes one iterator as a single-pass Iterable.
type onceIterable[T any] struct {
	it Iterator[T]
}

func (o onceIterable[T]) Iter() Iterator[T] { return o.it }

// iterGen is the pass-through generator around a bare iterator: pulls
// forward, completion carries the zero final value, early termination stops
// an iter.Pull-backed source but is otherwise not forwarded.
type iterGen[T, R, N any] struct {
	it    Iterator[T]
	stop  func()
	done  bool
	final R
}

func (g *iterGen[T, R, N]) Next(N) (Step[T, R], error) {
	if g.done {
		return Completed[T](g.final), nil
	}
	v, ok := g.it.Next()
	if !ok {
		g.done = true
		return Completed[T](g.final), nil
	}
	return Yielded[R](v), nil
}

func (g *iterGen[T, R, N]) Return(v R) (Step[T, R], error) {
	g.done = true
	g.final = v
	if g.stop != nil {
		g.stop()
	}
	return Completed[T](v), nil
}

func (g *iterGen[T, R, N]) Throw(err error) (Step[T, R], error) {
	g.done = true
	if g.stop != nil {
		g.stop()
	}
	var zero Step[T, R]
	return zero, err
}

func (g *iterGen[T, R, N]) Mode() Mode { return Sync }

// syncPoller lifts a synchronous iterator into the poll shape. It is
// always ready.
type syncPoller[T any] struct {
	it Iterator[T]
}

func (p syncPoller[T]) Poll() (T, bool, error) {
	v, ok := p.it.Next()
	return v, ok, nil
}

// asyncIterGen is the pass-through generator around an AsyncIterator.
// Would-block reports pass through unchanged; nothing is consumed.
type asyncIterGen[T, R, N any] struct {
	it    AsyncIterator[T]
	done  bool
	final R
}

func (g *asyncIterGen[T, R, N]) Next(N) (Step[T, R], error) {
	if g.done {
		return Completed[T](g.final), nil
	}
	v, ok, err := g.it.Poll()
	if err != nil {
		var zero Step[T, R]
		return zero, err
	}
	if !ok {
		g.done = true
		return Completed[T](g.final), nil
	}
	return Yielded[R](v), nil
}

func (g *asyncIterGen[T, R, N]) Return(v R) (Step[T, R], error) {
	g.done = true
	g.final = v
	return Completed[T](v), nil
}

func (g *asyncIterGen[T, R, N]) Throw(err error) (Step[T, R], error) {
	g.done = true
	var zero Step[T, R]
	return zero, err
}

func (g *asyncIterGen[T, R, N]) Mode() Mode { return Async }

// asyncView re-tags a synchronous generator as asynchronous.
type asyncView[T, R, N any] struct {
	src Generator[T, R, N]
}

func (v asyncView[T, R, N]) Next(n N) (Step[T, R], error)        { return v.src.Next(n) }
func (v asyncView[T, R, N]) Return(r R) (Step[T, R], error)      { return v.src.Return(r) }
func (v asyncView[T, R, N]) Throw(err error) (Step[T, R], error) { return v.src.Throw(err) }
func (v asyncView[T, R, N]) Mode() Mode                          { return Async }
