// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"math"

	"code.hybscloud.com/iox"
)

// unbounded is the "no bound" default for Limit, Slice, Repeat and
// RepeatLast: the largest representable count.
const unbounded = math.MaxInt

// Map returns a sequence applying f to every upstream element. Output
// order matches upstream yield order; the index increments once per
// upstream element. A callback error is forwarded upstream via Throw,
// giving the source a chance to recover with a replacement element.
func Map[T, U, R, N any](src Generator[T, R, N], f func(T, int) (U, error)) *Enhanced[U, R, N] {
	return mapMode(src, f, ModeOf(src))
}

func mapMode[T, U, R, N any](src Generator[T, R, N], f func(T, int) (U, error), mode Mode) *Enhanced[U, R, N] {
	return enhanceMode[U, R, N](&mapGen[T, U, R, N]{pipe: pipe[T, R, N]{src: src}, f: f}, mode)
}

type mapGen[T, U, R, N any] struct {
	pipe[T, R, N]
	f   func(T, int) (U, error)
	idx int
}

func (g *mapGen[T, U, R, N]) Next(n N) (Step[U, R], error) {
	if g.done {
		return Completed[U](g.final), nil
	}
	step, err := g.pull(n)
	if err != nil {
		var zero Step[U, R]
		return zero, err
	}
	if r, ok := step.GetLeft(); ok {
		return recast[U](g.complete(r)), nil
	}
	v, _ := step.GetRight()
	return g.apply(v)
}

// apply transforms one element, feeding any recovery element from an
// upstream throw back through the transform.
func (g *mapGen[T, U, R, N]) apply(v T) (Step[U, R], error) {
	for {
		u, err := g.f(v, g.idx)
		g.idx++
		if err == nil {
			return Yielded[R](u), nil
		}
		step, terr := g.throwUp(err)
		if terr != nil {
			var zero Step[U, R]
			return zero, terr
		}
		if _, ok := step.GetLeft(); ok {
			return recast[U](step), nil
		}
		v, _ = step.GetRight()
	}
}

func (g *mapGen[T, U, R, N]) Return(v R) (Step[U, R], error) {
	s, err := g.abort(v)
	if err != nil {
		var zero Step[U, R]
		return zero, err
	}
	return recast[U](s), nil
}

func (g *mapGen[T, U, R, N]) Throw(err error) (Step[U, R], error) {
	if g.done {
		var zero Step[U, R]
		return zero, err
	}
	step, terr := g.throwUp(err)
	if terr != nil {
		var zero Step[U, R]
		return zero, terr
	}
	if _, ok := step.GetLeft(); ok {
		return recast[U](step), nil
	}
	v, _ := step.GetRight()
	return g.apply(v)
}

// Filter returns a sequence keeping the upstream elements pred reports
// truthy, in upstream order. The index increments once per upstream
// element, kept or not.
func Filter[T, R, N any](src Generator[T, R, N], pred func(T, int) (bool, error)) *Enhanced[T, R, N] {
	return filterMode(src, pred, ModeOf(src))
}

func filterMode[T, R, N any](src Generator[T, R, N], pred func(T, int) (bool, error), mode Mode) *Enhanced[T, R, N] {
	return enhanceMode[T, R, N](&filterGen[T, R, N]{pipe: pipe[T, R, N]{src: src}, pred: pred}, mode)
}

type filterGen[T, R, N any] struct {
	pipe[T, R, N]
	pred func(T, int) (bool, error)
	idx  int
}

func (g *filterGen[T, R, N]) Next(n N) (Step[T, R], error) {
	if g.done {
		return Completed[T](g.final), nil
	}
	for {
		step, err := g.pull(n)
		if err != nil {
			return step, err
		}
		if r, ok := step.GetLeft(); ok {
			return g.complete(r), nil
		}
		v, _ := step.GetRight()
		out, emitted, perr := g.test(v)
		if perr != nil || emitted {
			return out, perr
		}
	}
}

// test runs the predicate over one element, feeding any recovery element
// from an upstream throw back through the predicate.
func (g *filterGen[T, R, N]) test(v T) (Step[T, R], bool, error) {
	for {
		keep, err := g.pred(v, g.idx)
		g.idx++
		if err == nil {
			if keep {
				return Yielded[R](v), true, nil
			}
			var zero Step[T, R]
			return zero, false, nil
		}
		step, terr := g.throwUp(err)
		if terr != nil {
			return step, true, terr
		}
		if _, ok := step.GetLeft(); ok {
			return step, true, nil
		}
		v, _ = step.GetRight()
	}
}

func (g *filterGen[T, R, N]) Return(v R) (Step[T, R], error) {
	return g.abort(v)
}

func (g *filterGen[T, R, N]) Throw(err error) (Step[T, R], error) {
	if g.done {
		var zero Step[T, R]
		return zero, err
	}
	step, terr := g.throwUp(err)
	if terr != nil {
		return step, terr
	}
	if _, ok := step.GetLeft(); ok {
		return step, nil
	}
	v, _ := step.GetRight()
	out, emitted, perr := g.test(v)
	if perr != nil || emitted {
		return out, perr
	}
	var zero N
	return g.Next(zero)
}

// Limit returns a sequence yielding at most max upstream elements. A
// source of exactly max elements completes normally; when an over-bound
// element arrives the stage forwards ErrLimitExceeded upstream via Throw
// and then raises it, and upstream recovery is not honored on that path.
func Limit[T, R, N any](src Generator[T, R, N], max int) *Enhanced[T, R, N] {
	return limitMode(src, max, ModeOf(src))
}

func limitMode[T, R, N any](src Generator[T, R, N], max int, mode Mode) *Enhanced[T, R, N] {
	return enhanceMode[T, R, N](&limitGen[T, R, N]{pipe: pipe[T, R, N]{src: src}, max: max}, mode)
}

type limitGen[T, R, N any] struct {
	pipe[T, R, N]
	max   int
	count int
}

func (g *limitGen[T, R, N]) Next(n N) (Step[T, R], error) {
	if g.done {
		return Completed[T](g.final), nil
	}
	step, err := g.pull(n)
	if err != nil {
		return step, err
	}
	if r, ok := step.GetLeft(); ok {
		return g.complete(r), nil
	}
	g.count++
	if g.count > g.max {
		return g.exceed()
	}
	return step, nil
}

// exceed finalizes the sequence once an over-bound element has arrived.
// A source of exactly max elements completes normally: the bound is
// compared only after a yielded element is counted.
func (g *limitGen[T, R, N]) exceed() (Step[T, R], error) {
	g.done = true
	if !g.srcDone {
		g.srcDone = true
		g.src.Throw(ErrLimitExceeded)
	}
	var zero Step[T, R]
	return zero, ErrLimitExceeded
}

func (g *limitGen[T, R, N]) Return(v R) (Step[T, R], error) {
	return g.abort(v)
}

func (g *limitGen[T, R, N]) Throw(err error) (Step[T, R], error) {
	if g.done {
		var zero Step[T, R]
		return zero, err
	}
	step, terr := g.throwUp(err)
	if terr == nil {
		if _, ok := step.GetRight(); ok {
			g.count++
			if g.count > g.max {
				return g.exceed()
			}
		}
	}
	return step, terr
}

// Slice returns a sequence discarding the first start upstream elements
// and yielding elements with upstream index in [start, end). An unbounded
// end delegates to straight pass-through of the remainder; otherwise the
// pull that reaches end finalizes the source and completes with the zero
// final value.
func Slice[T, R, N any](src Generator[T, R, N], start, end int) *Enhanced[T, R, N] {
	return sliceMode(src, start, end, ModeOf(src))
}

func sliceMode[T, R, N any](src Generator[T, R, N], start, end int, mode Mode) *Enhanced[T, R, N] {
	return enhanceMode[T, R, N](&sliceGen[T, R, N]{pipe: pipe[T, R, N]{src: src}, start: start, end: end}, mode)
}

type sliceGen[T, R, N any] struct {
	pipe[T, R, N]
	start, end int
	idx        int
}

func (g *sliceGen[T, R, N]) Next(n N) (Step[T, R], error) {
	if g.done {
		return Completed[T](g.final), nil
	}
	for g.idx < g.start {
		step, err := g.pull(n)
		if err != nil {
			return step, err
		}
		if r, ok := step.GetLeft(); ok {
			return g.complete(r), nil
		}
		g.idx++
	}
	if g.end != unbounded && g.idx >= g.end {
		var zero R
		if err := g.finish(zero); err != nil {
			var zs Step[T, R]
			if !iox.IsWouldBlock(err) {
				g.done = true
			}
			return zs, err
		}
		return g.complete(zero), nil
	}
	step, err := g.pull(n)
	if err != nil {
		return step, err
	}
	if r, ok := step.GetLeft(); ok {
		return g.complete(r), nil
	}
	g.idx++
	return step, nil
}

func (g *sliceGen[T, R, N]) Return(v R) (Step[T, R], error) {
	return g.abort(v)
}

func (g *sliceGen[T, R, N]) Throw(err error) (Step[T, R], error) {
	if g.done {
		var zero Step[T, R]
		return zero, err
	}
	return g.throwUp(err)
}

// Flat returns a depth-first flattening of src: iterator- or
// iterable-shaped elements expand in place while depth remains, everything
// else yields unchanged. Only nested sequences already encountered are
// guaranteed finalized on early termination; future ones are unknowable
// ahead of time.
func Flat[R, N any](src Generator[any, R, N], depth int) *Enhanced[any, R, N] {
	return flatMode(src, depth, ModeOf(src))
}

func flatMode[R, N any](src Generator[any, R, N], depth int, mode Mode) *Enhanced[any, R, N] {
	return enhanceMode[any, R, N](&flatGen[R, N]{pipe: pipe[any, R, N]{src: src}, depth: depth}, mode)
}

// FlatMap applies f to every upstream element and then flattens the result
// depth-first, exactly as Flat.
func FlatMap[T, R, N any](src Generator[T, R, N], f func(T, int) (any, error), depth int) *Enhanced[any, R, N] {
	mode := ModeOf(src)
	return flatMode[R, N](mapMode(src, f, mode), depth, mode)
}

// Widen lifts the element type to any, the form Flat recognizes as a
// nested sequence.
func Widen[T, R, N any](src Generator[T, R, N]) *Enhanced[any, R, N] {
	return widenMode(src, ModeOf(src))
}

func widenMode[T, R, N any](src Generator[T, R, N], mode Mode) *Enhanced[any, R, N] {
	return mapMode(src, func(v T, _ int) (any, error) { return v, nil }, mode)
}

type flatFrame[R, N any] struct {
	src   Generator[any, R, N]
	depth int
}

type flatGen[R, N any] struct {
	pipe[any, R, N]
	depth int
	stack []flatFrame[R, N]
}

func (g *flatGen[R, N]) Next(n N) (Step[any, R], error) {
	if g.done {
		return Completed[any](g.final), nil
	}
	for {
		if k := len(g.stack); k > 0 {
			fr := &g.stack[k-1]
			step, err := fr.src.Next(n)
			if err != nil {
				if iox.IsWouldBlock(err) {
					return step, err
				}
				g.fail()
				g.done = true
				return step, err
			}
			if _, ok := step.GetLeft(); ok {
				g.stack = g.stack[:k-1]
				continue
			}
			v, _ := step.GetRight()
			out, expanded := g.classify(v, fr.depth)
			if !expanded {
				return out, nil
			}
			continue
		}
		step, err := g.pull(n)
		if err != nil {
			return step, err
		}
		if r, ok := step.GetLeft(); ok {
			return g.complete(r), nil
		}
		v, _ := step.GetRight()
		out, expanded := g.classify(v, g.depth)
		if !expanded {
			return out, nil
		}
	}
}

// classify decides expansion for one element: nested sequences push onto
// the traversal stack with one less depth, leaves yield unchanged.
func (g *flatGen[R, N]) classify(v any, depth int) (Step[any, R], bool) {
	if depth > 0 {
		if nested, err := ToGenerator[any, R, N](v); err == nil {
			g.stack = append(g.stack, flatFrame[R, N]{src: nested, depth: depth - 1})
			var zero Step[any, R]
			return zero, true
		}
	}
	return Yielded[R](v), false
}

// fail finalizes every still-live nested sequence after an upstream error.
// Cleanup errors are swallowed so each sibling still gets its attempt.
func (g *flatGen[R, N]) fail() {
	var zero R
	for i := len(g.stack) - 1; i >= 0; i-- {
		g.stack[i].src.Return(zero)
	}
	g.stack = nil
}

func (g *flatGen[R, N]) Return(v R) (Step[any, R], error) {
	if g.done {
		return Completed[any](v), nil
	}
	var firstErr error
	for i := len(g.stack) - 1; i >= 0; i-- {
		if _, err := g.stack[i].src.Return(v); err != nil && firstErr == nil && !iox.IsWouldBlock(err) {
			firstErr = err
		}
	}
	g.stack = nil
	if err := g.finish(v); err != nil && firstErr == nil && !iox.IsWouldBlock(err) {
		firstErr = err
	}
	if firstErr != nil {
		g.done = true
		var zero Step[any, R]
		return zero, firstErr
	}
	return g.complete(v), nil
}

func (g *flatGen[R, N]) Throw(err error) (Step[any, R], error) {
	if g.done {
		var zero Step[any, R]
		return zero, err
	}
	if k := len(g.stack); k > 0 {
		fr := &g.stack[k-1]
		step, terr := fr.src.Throw(err)
		if terr != nil {
			if iox.IsWouldBlock(terr) {
				return step, terr
			}
			g.stack = g.stack[:k-1]
			g.fail()
			var zero R
			g.finish(zero)
			g.done = true
			return step, terr
		}
		if _, ok := step.GetLeft(); ok {
			g.stack = g.stack[:k-1]
		} else {
			v, _ := step.GetRight()
			out, expanded := g.classify(v, fr.depth)
			if !expanded {
				return out, nil
			}
		}
		var zeroN N
		return g.Next(zeroN)
	}
	step, terr := g.throwUp(err)
	if terr != nil {
		return step, terr
	}
	if _, ok := step.GetLeft(); ok {
		return step, nil
	}
	v, _ := step.GetRight()
	out, expanded := g.classify(v, g.depth)
	if !expanded {
		return out, nil
	}
	var zeroN N
	return g.Next(zeroN)
}

// RepeatLast passes upstream elements through, remembering the last one;
// after the source completes it yields that element max additional times,
// then completes with the source's final value. Omitting max repeats
// without bound. An empty source repeats the zero element.
func RepeatLast[T, R, N any](src Generator[T, R, N], max ...int) *Enhanced[T, R, N] {
	n := unbounded
	if len(max) > 0 {
		n = max[0]
	}
	return repeatLastMode(src, n, ModeOf(src))
}

func repeatLastMode[T, R, N any](src Generator[T, R, N], max int, mode Mode) *Enhanced[T, R, N] {
	return enhanceMode[T, R, N](&repeatLastGen[T, R, N]{pipe: pipe[T, R, N]{src: src}, max: max}, mode)
}

type repeatLastGen[T, R, N any] struct {
	pipe[T, R, N]
	max      int
	repeated int
	last     T
}

func (g *repeatLastGen[T, R, N]) Next(n N) (Step[T, R], error) {
	if g.done {
		return Completed[T](g.final), nil
	}
	if !g.srcDone {
		step, err := g.pull(n)
		if err != nil {
			return step, err
		}
		if v, ok := step.GetRight(); ok {
			g.last = v
			return step, nil
		}
		r, _ := step.GetLeft()
		g.final = r
	}
	if g.repeated < g.max {
		g.repeated++
		return Yielded[R](g.last), nil
	}
	return g.complete(g.final), nil
}

func (g *repeatLastGen[T, R, N]) Return(v R) (Step[T, R], error) {
	return g.abort(v)
}

func (g *repeatLastGen[T, R, N]) Throw(err error) (Step[T, R], error) {
	if g.done {
		var zero Step[T, R]
		return zero, err
	}
	step, terr := g.throwUp(err)
	if terr == nil {
		if v, ok := step.GetRight(); ok {
			g.last = v
		}
	}
	return step, terr
}

// repeatGen yields a constant value a fixed number of times. It depends on
// no upstream source.
type repeatGen[T, R, N any] struct {
	value     T
	remaining int
	done      bool
	final     R
}

func (g *repeatGen[T, R, N]) Next(N) (Step[T, R], error) {
	if g.done || g.remaining <= 0 {
		g.done = true
		return Completed[T](g.final), nil
	}
	g.remaining--
	return Yielded[R](g.value), nil
}

func (g *repeatGen[T, R, N]) Return(v R) (Step[T, R], error) {
	g.done = true
	g.final = v
	return Completed[T](v), nil
}

func (g *repeatGen[T, R, N]) Throw(err error) (Step[T, R], error) {
	g.done = true
	var zero Step[T, R]
	return zero, err
}
