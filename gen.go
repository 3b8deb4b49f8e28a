// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"code.hybscloud.com/kont"
)

// Step is the result of one pull on a generator: either a yielded element
// (Right) or the final return value of a completed sequence (Left).
type Step[T, R any] = kont.Either[R, T]

// Yielded wraps an element produced at a suspension point.
func Yielded[R, T any](v T) Step[T, R] {
	return kont.Right[R](v)
}

// Completed wraps the final return value of a finished generator.
// Once a generator reports Completed, every further pull keeps reporting
// Completed.
func Completed[T, R any](v R) Step[T, R] {
	return kont.Left[R, T](v)
}

// StepValue unwraps a yielded element.
func StepValue[T, R any](s Step[T, R]) (T, bool) {
	return s.GetRight()
}

// StepDone unwraps the final return value of a completed step.
func StepDone[T, R any](s Step[T, R]) (R, bool) {
	return s.GetLeft()
}

// Generator is the canonical resumable sequence over elements T, final
// value R and injected resume values N.
//
// Next pulls the next step, handing n to the producer's current suspension
// point. Return requests early termination with a final value; Throw injects
// an error at the current suspension point, giving the producer a chance to
// recover by yielding a replacement element. Both are propagated to every
// upstream source a combinator wraps.
//
// Asynchronous generators may report iox.ErrWouldBlock from any of the
// three operations: the suspension point. The call did not consume anything
// and may be retried once the producer side makes progress.
type Generator[T, R, N any] interface {
	Next(n N) (Step[T, R], error)
	Return(v R) (Step[T, R], error)
	Throw(err error) (Step[T, R], error)
}

// Mode classifies delivery: Sync operations complete immediately, Async
// operations may suspend by reporting iox.ErrWouldBlock.
type Mode uint8

const (
	Sync Mode = iota
	Async
)

// Moded is the capability marker reporting a sequence's delivery mode.
// It is set at construction time; structural guessing is never performed.
type Moded interface {
	Mode() Mode
}

// ModeOf reports the declared delivery mode of x, defaulting to Sync for
// sequences that carry no marker.
func ModeOf(x any) Mode {
	if m, ok := x.(Moded); ok {
		return m.Mode()
	}
	return Sync
}

// modeOfAll reports Async if any source is asynchronous. Fan-in combinators
// inherit the weakest delivery guarantee among their sources.
func modeOfAll[T, R, N any](srcs []Generator[T, R, N]) Mode {
	for _, s := range srcs {
		if ModeOf(s) == Async {
			return Async
		}
	}
	return Sync
}

// Iterator is the minimal pull shape: Next reports the next element and
// whether one was produced.
type Iterator[T any] interface {
	Next() (T, bool)
}

// Iterable produces an Iterator. Enhanced sequences are Iterables; wrapping
// a bare Iterator with ToIterable yields a single-pass Iterable that hands
// out the same iterator every time.
type Iterable[T any] interface {
	Iter() Iterator[T]
}

// AsyncIterator is the asynchronous pull shape: Poll reports the next
// element, exhaustion, or iox.ErrWouldBlock when no element is ready yet.
type AsyncIterator[T any] interface {
	Poll() (T, bool, error)
}

// AsyncIterable produces an AsyncIterator.
type AsyncIterable[T any] interface {
	AsyncIter() AsyncIterator[T]
}
