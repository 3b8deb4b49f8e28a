// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"iter"

	"code.hybscloud.com/iox"
)

// opSet is the active combinator implementation set behind an enhanced
// sequence, fixed at attachment time: the sync set completes every
// operation immediately, the async set treats every upstream step as a
// suspension point and waits past it in the draining operations.
type opSet[T, R, N any] interface {
	asArray(src Generator[T, R, N]) ([]T, error)
	limit(src Generator[T, R, N], max int) *Enhanced[T, R, N]
	forEach(src Generator[T, R, N], f func(T, int) error) error
	mapOver(src Generator[T, R, N], f func(T, int) (T, error)) *Enhanced[T, R, N]
	filter(src Generator[T, R, N], pred func(T, int) (bool, error)) *Enhanced[T, R, N]
	flat(src Generator[T, R, N], depth int) *Enhanced[any, R, N]
	flatMap(src Generator[T, R, N], f func(T, int) (any, error), depth int) *Enhanced[any, R, N]
	slice(src Generator[T, R, N], start, end int) *Enhanced[T, R, N]
	concat(src Generator[T, R, N], more []Generator[T, R, N]) *Enhanced[T, R, N]
	reduce(src Generator[T, R, N], f func(T, T, int) (T, error), init []T) (T, error)
	some(src Generator[T, R, N], pred func(T, int) (bool, error)) (bool, error)
	every(src Generator[T, R, N], pred func(T, int) (bool, error)) (bool, error)
	repeatLast(src Generator[T, R, N], max int) *Enhanced[T, R, N]
	repeat(value T, n int) *Enhanced[T, R, N]
	merge(src Generator[T, R, N], more []Generator[T, R, N]) *Enhanced[T, R, N]
	join(src Generator[T, R, N], sep []string) (string, error)
	sortAll(src Generator[T, R, N], cmp func(a, b T) int) ([]T, error)
}

// syncOps is the synchronous operation set.
type syncOps[T, R, N any] struct{}

func (syncOps[T, R, N]) asArray(src Generator[T, R, N]) ([]T, error) {
	return asArrayMode(src, Sync)
}
func (syncOps[T, R, N]) limit(src Generator[T, R, N], max int) *Enhanced[T, R, N] {
	return limitMode(src, max, Sync)
}
func (syncOps[T, R, N]) forEach(src Generator[T, R, N], f func(T, int) error) error {
	return forEachMode(src, f, Sync)
}
func (syncOps[T, R, N]) mapOver(src Generator[T, R, N], f func(T, int) (T, error)) *Enhanced[T, R, N] {
	return mapMode(src, f, Sync)
}
func (syncOps[T, R, N]) filter(src Generator[T, R, N], pred func(T, int) (bool, error)) *Enhanced[T, R, N] {
	return filterMode(src, pred, Sync)
}
func (syncOps[T, R, N]) flat(src Generator[T, R, N], depth int) *Enhanced[any, R, N] {
	return flatMode[R, N](widenMode(src, Sync), depth, Sync)
}
func (syncOps[T, R, N]) flatMap(src Generator[T, R, N], f func(T, int) (any, error), depth int) *Enhanced[any, R, N] {
	return flatMode[R, N](mapMode(src, f, Sync), depth, Sync)
}
func (syncOps[T, R, N]) slice(src Generator[T, R, N], start, end int) *Enhanced[T, R, N] {
	return sliceMode(src, start, end, Sync)
}
func (syncOps[T, R, N]) concat(src Generator[T, R, N], more []Generator[T, R, N]) *Enhanced[T, R, N] {
	return concatMode(prependSrc(src, more), Sync)
}
func (syncOps[T, R, N]) reduce(src Generator[T, R, N], f func(T, T, int) (T, error), init []T) (T, error) {
	return reduceMode(src, f, init, Sync)
}
func (syncOps[T, R, N]) some(src Generator[T, R, N], pred func(T, int) (bool, error)) (bool, error) {
	return someMode(src, pred, Sync)
}
func (syncOps[T, R, N]) every(src Generator[T, R, N], pred func(T, int) (bool, error)) (bool, error) {
	return everyMode(src, pred, Sync)
}
func (syncOps[T, R, N]) repeatLast(src Generator[T, R, N], max int) *Enhanced[T, R, N] {
	return repeatLastMode(src, max, Sync)
}
func (syncOps[T, R, N]) repeat(value T, n int) *Enhanced[T, R, N] {
	return enhanceMode[T, R, N](&repeatGen[T, R, N]{value: value, remaining: n}, Sync)
}
func (syncOps[T, R, N]) merge(src Generator[T, R, N], more []Generator[T, R, N]) *Enhanced[T, R, N] {
	return mergeMode(prependSrc(src, more), Sync)
}
func (syncOps[T, R, N]) join(src Generator[T, R, N], sep []string) (string, error) {
	return joinMode(src, sep, Sync)
}
func (syncOps[T, R, N]) sortAll(src Generator[T, R, N], cmp func(a, b T) int) ([]T, error) {
	return sortMode(cmp, []Generator[T, R, N]{src}, Sync)
}

// asyncOps is the suspension-driven operation set: structurally the mirror
// of syncOps, with every upstream step a suspension point. Draining
// operations wait past iox.ErrWouldBlock with adaptive backoff.
type asyncOps[T, R, N any] struct{}

func (asyncOps[T, R, N]) asArray(src Generator[T, R, N]) ([]T, error) {
	return asArrayMode(src, Async)
}
func (asyncOps[T, R, N]) limit(src Generator[T, R, N], max int) *Enhanced[T, R, N] {
	return limitMode(src, max, Async)
}
func (asyncOps[T, R, N]) forEach(src Generator[T, R, N], f func(T, int) error) error {
	return forEachMode(src, f, Async)
}
func (asyncOps[T, R, N]) mapOver(src Generator[T, R, N], f func(T, int) (T, error)) *Enhanced[T, R, N] {
	return mapMode(src, f, Async)
}
func (asyncOps[T, R, N]) filter(src Generator[T, R, N], pred func(T, int) (bool, error)) *Enhanced[T, R, N] {
	return filterMode(src, pred, Async)
}
func (asyncOps[T, R, N]) flat(src Generator[T, R, N], depth int) *Enhanced[any, R, N] {
	return flatMode[R, N](widenMode(src, Async), depth, Async)
}
func (asyncOps[T, R, N]) flatMap(src Generator[T, R, N], f func(T, int) (any, error), depth int) *Enhanced[any, R, N] {
	return flatMode[R, N](mapMode(src, f, Async), depth, Async)
}
func (asyncOps[T, R, N]) slice(src Generator[T, R, N], start, end int) *Enhanced[T, R, N] {
	return sliceMode(src, start, end, Async)
}
func (asyncOps[T, R, N]) concat(src Generator[T, R, N], more []Generator[T, R, N]) *Enhanced[T, R, N] {
	return concatMode(prependSrc(src, more), Async)
}
func (asyncOps[T, R, N]) reduce(src Generator[T, R, N], f func(T, T, int) (T, error), init []T) (T, error) {
	return reduceMode(src, f, init, Async)
}
func (asyncOps[T, R, N]) some(src Generator[T, R, N], pred func(T, int) (bool, error)) (bool, error) {
	return someMode(src, pred, Async)
}
func (asyncOps[T, R, N]) every(src Generator[T, R, N], pred func(T, int) (bool, error)) (bool, error) {
	return everyMode(src, pred, Async)
}
func (asyncOps[T, R, N]) repeatLast(src Generator[T, R, N], max int) *Enhanced[T, R, N] {
	return repeatLastMode(src, max, Async)
}
func (asyncOps[T, R, N]) repeat(value T, n int) *Enhanced[T, R, N] {
	return enhanceMode[T, R, N](&repeatGen[T, R, N]{value: value, remaining: n}, Async)
}
func (asyncOps[T, R, N]) merge(src Generator[T, R, N], more []Generator[T, R, N]) *Enhanced[T, R, N] {
	return mergeMode(prependSrc(src, more), Async)
}
func (asyncOps[T, R, N]) join(src Generator[T, R, N], sep []string) (string, error) {
	return joinMode(src, sep, Async)
}
func (asyncOps[T, R, N]) sortAll(src Generator[T, R, N], cmp func(a, b T) int) ([]T, error) {
	return sortMode(cmp, []Generator[T, R, N]{src}, Async)
}

func prependSrc[T, R, N any](src Generator[T, R, N], more []Generator[T, R, N]) []Generator[T, R, N] {
	srcs := make([]Generator[T, R, N], 0, len(more)+1)
	srcs = append(srcs, src)
	return append(srcs, more...)
}

// Enhanced decorates a canonical sequence with the combinator method
// surface by composition. Every method is a one-line delegation into the
// active operation set, passing the receiver as the source; no combinator
// logic lives here.
//
// Return records the passed value in returning before delegating, so a
// combinator stage finalizing below can propagate the same value upstream
// rather than a default.
type Enhanced[T, R, N any] struct {
	src    Generator[T, R, N]
	impl   opSet[T, R, N]
	mode   Mode
	serial Serial

	returning    R
	hasReturning bool
}

// Enhance attaches the combinator method surface to g, inheriting g's
// declared delivery mode. Enhancing an already-enhanced sequence of the
// same mode is a no-op: no double wrap, returning preserved.
func Enhance[T, R, N any](g Generator[T, R, N]) *Enhanced[T, R, N] {
	return enhanceMode(g, ModeOf(g))
}

// EnhanceAsync attaches the combinator method surface with the
// asynchronous operation set, lifting synchronous sources into the
// suspension-driven world.
func EnhanceAsync[T, R, N any](g Generator[T, R, N]) *Enhanced[T, R, N] {
	return enhanceMode(g, Async)
}

func enhanceMode[T, R, N any](g Generator[T, R, N], mode Mode) *Enhanced[T, R, N] {
	if e, ok := g.(*Enhanced[T, R, N]); ok && e.mode == mode {
		return e
	}
	e := &Enhanced[T, R, N]{src: g, mode: mode, serial: nextSerial()}
	if mode == Async {
		e.impl = asyncOps[T, R, N]{}
	} else {
		e.impl = syncOps[T, R, N]{}
	}
	return e
}

// Next pulls the next step from the wrapped sequence.
func (e *Enhanced[T, R, N]) Next(n N) (Step[T, R], error) { return e.src.Next(n) }

// Return records the abort value and delegates the early termination to
// the wrapped sequence.
func (e *Enhanced[T, R, N]) Return(v R) (Step[T, R], error) {
	e.returning = v
	e.hasReturning = true
	return e.src.Return(v)
}

// Throw injects an error at the wrapped sequence's current suspension
// point.
func (e *Enhanced[T, R, N]) Throw(err error) (Step[T, R], error) { return e.src.Throw(err) }

// Mode reports the delivery mode fixed at attachment time.
func (e *Enhanced[T, R, N]) Mode() Mode { return e.mode }

// Serial reports the identifier assigned at attachment time.
func (e *Enhanced[T, R, N]) Serial() Serial { return e.serial }

// Returning reports the value most recently passed to Return, if any.
func (e *Enhanced[T, R, N]) Returning() (R, bool) { return e.returning, e.hasReturning }

// Iter exposes the sequence as a plain iterator, blocking past suspension
// points. Iteration stops on completion or on the first error.
func (e *Enhanced[T, R, N]) Iter() Iterator[T] { return enhancedIter[T, R, N]{e: e} }

// Seq exposes the sequence as an iter.Seq for range-over-func. Breaking
// out of the range finalizes the sequence with the zero final value.
func (e *Enhanced[T, R, N]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		var bo iox.Backoff
		var zeroN N
		for {
			step, err := pullWait(e, zeroN, e.mode, &bo)
			if err != nil {
				return
			}
			if _, ok := step.GetLeft(); ok {
				return
			}
			v, _ := step.GetRight()
			if !yield(v) {
				var zeroR R
				e.Return(zeroR)
				return
			}
		}
	}
}

func (e *Enhanced[T, R, N]) AsArray() ([]T, error) { return e.impl.asArray(e) }

func (e *Enhanced[T, R, N]) Limit(max int) *Enhanced[T, R, N] { return e.impl.limit(e, max) }

func (e *Enhanced[T, R, N]) ForEach(f func(T, int) error) error { return e.impl.forEach(e, f) }

func (e *Enhanced[T, R, N]) Map(f func(T, int) (T, error)) *Enhanced[T, R, N] {
	return e.impl.mapOver(e, f)
}

func (e *Enhanced[T, R, N]) Filter(pred func(T, int) (bool, error)) *Enhanced[T, R, N] {
	return e.impl.filter(e, pred)
}

func (e *Enhanced[T, R, N]) Flat(depth int) *Enhanced[any, R, N] { return e.impl.flat(e, depth) }

func (e *Enhanced[T, R, N]) FlatMap(f func(T, int) (any, error), depth int) *Enhanced[any, R, N] {
	return e.impl.flatMap(e, f, depth)
}

func (e *Enhanced[T, R, N]) Slice(start, end int) *Enhanced[T, R, N] {
	return e.impl.slice(e, start, end)
}

func (e *Enhanced[T, R, N]) Concat(more ...Generator[T, R, N]) *Enhanced[T, R, N] {
	return e.impl.concat(e, more)
}

func (e *Enhanced[T, R, N]) Reduce(f func(acc, v T, idx int) (T, error), init ...T) (T, error) {
	return e.impl.reduce(e, f, init)
}

func (e *Enhanced[T, R, N]) Some(pred func(T, int) (bool, error)) (bool, error) {
	return e.impl.some(e, pred)
}

func (e *Enhanced[T, R, N]) Every(pred func(T, int) (bool, error)) (bool, error) {
	return e.impl.every(e, pred)
}

func (e *Enhanced[T, R, N]) RepeatLast(max int) *Enhanced[T, R, N] {
	return e.impl.repeatLast(e, max)
}

func (e *Enhanced[T, R, N]) Repeat(value T, n int) *Enhanced[T, R, N] {
	return e.impl.repeat(value, n)
}

// Zip has no method form: a method on Enhanced[T] returning
// *Enhanced[[]T] forces the compiler to instantiate Enhanced[[]T],
// Enhanced[[][]T], and so on, which it rejects as an instantiation
// cycle. Use the package-level [Zip] or [ZipOp] instead.

func (e *Enhanced[T, R, N]) Merge(more ...Generator[T, R, N]) *Enhanced[T, R, N] {
	return e.impl.merge(e, more)
}

func (e *Enhanced[T, R, N]) Join(sep ...string) (string, error) { return e.impl.join(e, sep) }

func (e *Enhanced[T, R, N]) Sort(cmp func(a, b T) int) ([]T, error) { return e.impl.sortAll(e, cmp) }

// enhancedIter adapts an enhanced sequence to the plain iterator shape.
type enhancedIter[T, R, N any] struct {
	e *Enhanced[T, R, N]
}

func (it enhancedIter[T, R, N]) Next() (T, bool) {
	var zeroN N
	step, err := Await(it.e, zeroN)
	if err != nil {
		var zero T
		return zero, false
	}
	if _, ok := step.GetLeft(); ok {
		var zero T
		return zero, false
	}
	return step.GetRight()
}
