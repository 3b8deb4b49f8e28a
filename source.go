// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import "iter"

// Number constrains Range to the built-in numeric types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Range produces the half-open arithmetic progression [start, end). The
// optional step defaults to 1; a negative step counts down toward end.
// A zero step fails with ErrZeroStep. A progression that never reaches
// end, such as counting up from above it, is empty.
func Range[T Number](start, end T, step ...T) (*Enhanced[T, struct{}, struct{}], error) {
	var s T = 1
	if len(step) > 0 {
		s = step[0]
	}
	if s == 0 {
		return nil, ErrZeroStep
	}
	return Enhance[T, struct{}, struct{}](&rangeGen[T]{cur: start, end: end, step: s}), nil
}

type rangeGen[T Number] struct {
	cur, end, step T
	done           bool
}

func (g *rangeGen[T]) Next(struct{}) (Step[T, struct{}], error) {
	if g.done || (g.step > 0 && g.cur >= g.end) || (g.step < 0 && g.cur <= g.end) {
		g.done = true
		return Completed[T](struct{}{}), nil
	}
	v := g.cur
	g.cur += g.step
	return Yielded[struct{}](v), nil
}

func (g *rangeGen[T]) Return(struct{}) (Step[T, struct{}], error) {
	g.done = true
	return Completed[T](struct{}{}), nil
}

func (g *rangeGen[T]) Throw(err error) (Step[T, struct{}], error) {
	g.done = true
	var zero Step[T, struct{}]
	return zero, err
}

func (g *rangeGen[T]) Mode() Mode { return Sync }

// FromSlice produces the elements of s in order and completes with the
// zero final value. The slice is not copied; callers that mutate it
// mid-iteration see the mutation.
func FromSlice[T any](s []T) *Enhanced[T, struct{}, struct{}] {
	return Enhance[T, struct{}, struct{}](&sliceGenSrc[T]{s: s})
}

type sliceGenSrc[T any] struct {
	s    []T
	pos  int
	done bool
}

func (g *sliceGenSrc[T]) Next(struct{}) (Step[T, struct{}], error) {
	if g.done || g.pos >= len(g.s) {
		g.done = true
		return Completed[T](struct{}{}), nil
	}
	v := g.s[g.pos]
	g.pos++
	return Yielded[struct{}](v), nil
}

func (g *sliceGenSrc[T]) Return(struct{}) (Step[T, struct{}], error) {
	g.done = true
	return Completed[T](struct{}{}), nil
}

func (g *sliceGenSrc[T]) Throw(err error) (Step[T, struct{}], error) {
	g.done = true
	var zero Step[T, struct{}]
	return zero, err
}

func (g *sliceGenSrc[T]) Mode() Mode { return Sync }

// FromSeq produces the elements of a standard iterator sequence. The
// sequence is pulled lazily; abandoning the generator early through Return
// stops the underlying sequence.
func FromSeq[T any](seq iter.Seq[T]) *Enhanced[T, struct{}, struct{}] {
	next, stop := iter.Pull(seq)
	return Enhance[T, struct{}, struct{}](&seqGen[T]{next: next, stop: stop})
}

type seqGen[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

func (g *seqGen[T]) Next(struct{}) (Step[T, struct{}], error) {
	if g.done {
		return Completed[T](struct{}{}), nil
	}
	v, ok := g.next()
	if !ok {
		g.done = true
		g.stop()
		return Completed[T](struct{}{}), nil
	}
	return Yielded[struct{}](v), nil
}

func (g *seqGen[T]) Return(struct{}) (Step[T, struct{}], error) {
	if !g.done {
		g.done = true
		g.stop()
	}
	return Completed[T](struct{}{}), nil
}

func (g *seqGen[T]) Throw(err error) (Step[T, struct{}], error) {
	if !g.done {
		g.done = true
		g.stop()
	}
	var zero Step[T, struct{}]
	return zero, err
}

func (g *seqGen[T]) Mode() Mode { return Sync }

// Repeat produces value max times, or without bound when max is omitted.
func Repeat[T any](value T, max ...int) *Enhanced[T, struct{}, struct{}] {
	n := unbounded
	if len(max) > 0 {
		n = max[0]
	}
	return Enhance[T, struct{}, struct{}](&repeatGen[T, struct{}, struct{}]{value: value, remaining: n})
}
