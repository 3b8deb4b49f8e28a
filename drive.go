// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"
	"slices"
	"strings"

	"code.hybscloud.com/iox"
)

// Await blocks until the generator makes progress past its suspension
// point, backing off on iox.ErrWouldBlock. Synchronous generators return
// on the first pull.
func Await[T, R, N any](g Generator[T, R, N], n N) (Step[T, R], error) {
	var bo iox.Backoff
	return pullWait(g, n, Async, &bo)
}

// AsArray pulls the sequence to completion and collects the yielded
// elements. Unsafe on unbounded sources. Asynchronous sequences are
// awaited past every suspension point.
func AsArray[T, R, N any](src Generator[T, R, N]) ([]T, error) {
	return asArrayMode(src, ModeOf(src))
}

func asArrayMode[T, R, N any](src Generator[T, R, N], mode Mode) ([]T, error) {
	out := []T{}
	var bo iox.Backoff
	var zero N
	for {
		step, err := pullWait(src, zero, mode, &bo)
		if err != nil {
			return out, err
		}
		if _, ok := step.GetLeft(); ok {
			return out, nil
		}
		v, _ := step.GetRight()
		out = append(out, v)
	}
}

// ForEach passes every element to f in yield order. An error from f
// finalizes the source and propagates.
func ForEach[T, R, N any](src Generator[T, R, N], f func(T, int) error) error {
	return forEachMode(src, f, ModeOf(src))
}

func forEachMode[T, R, N any](src Generator[T, R, N], f func(T, int) error, mode Mode) error {
	var bo iox.Backoff
	var zeroN N
	idx := 0
	for {
		step, err := pullWait(src, zeroN, mode, &bo)
		if err != nil {
			return err
		}
		if _, ok := step.GetLeft(); ok {
			return nil
		}
		v, _ := step.GetRight()
		if ferr := f(v, idx); ferr != nil {
			var zeroR R
			src.Return(zeroR)
			return ferr
		}
		idx++
	}
}

// Reduce folds the sequence left to right. With no initial value the
// accumulator seeds from the first element and an immediately empty source
// fails with ErrEmptyReduce.
func Reduce[T, R, N any](src Generator[T, R, N], f func(acc, v T, idx int) (T, error), init ...T) (T, error) {
	return reduceMode(src, f, init, ModeOf(src))
}

func reduceMode[T, R, N any](src Generator[T, R, N], f func(T, T, int) (T, error), init []T, mode Mode) (T, error) {
	var acc T
	var bo iox.Backoff
	var zeroN N
	seeded := len(init) > 0
	if seeded {
		acc = init[0]
	}
	idx := 0
	for {
		step, err := pullWait(src, zeroN, mode, &bo)
		if err != nil {
			return acc, err
		}
		if _, ok := step.GetLeft(); ok {
			if !seeded {
				return acc, ErrEmptyReduce
			}
			return acc, nil
		}
		v, _ := step.GetRight()
		if !seeded {
			acc = v
			seeded = true
			idx++
			continue
		}
		next, ferr := f(acc, v, idx)
		if ferr != nil {
			var zeroR R
			src.Return(zeroR)
			return acc, ferr
		}
		acc = next
		idx++
	}
}

// Fold is the typed-accumulator fold: always seeded with init.
func Fold[U, T, R, N any](src Generator[T, R, N], init U, f func(acc U, v T, idx int) (U, error)) (U, error) {
	mode := ModeOf(src)
	acc := init
	var bo iox.Backoff
	var zeroN N
	idx := 0
	for {
		step, err := pullWait(src, zeroN, mode, &bo)
		if err != nil {
			return acc, err
		}
		if _, ok := step.GetLeft(); ok {
			return acc, nil
		}
		v, _ := step.GetRight()
		next, ferr := f(acc, v, idx)
		if ferr != nil {
			var zeroR R
			src.Return(zeroR)
			return acc, ferr
		}
		acc = next
		idx++
	}
}

// Some reports whether any element satisfies pred, short-circuiting on the
// first success. The source is deliberately not finalized on
// short-circuit; callers holding resource-backed sources finalize
// explicitly.
func Some[T, R, N any](src Generator[T, R, N], pred func(T, int) (bool, error)) (bool, error) {
	return someMode(src, pred, ModeOf(src))
}

func someMode[T, R, N any](src Generator[T, R, N], pred func(T, int) (bool, error), mode Mode) (bool, error) {
	var bo iox.Backoff
	var zeroN N
	idx := 0
	for {
		step, err := pullWait(src, zeroN, mode, &bo)
		if err != nil {
			return false, err
		}
		if _, ok := step.GetLeft(); ok {
			return false, nil
		}
		v, _ := step.GetRight()
		ok, perr := pred(v, idx)
		if perr != nil {
			return false, perr
		}
		if ok {
			return true, nil
		}
		idx++
	}
}

// Every reports whether all elements satisfy pred, short-circuiting on the
// first failure. Like Some, the source is not finalized on short-circuit.
func Every[T, R, N any](src Generator[T, R, N], pred func(T, int) (bool, error)) (bool, error) {
	return everyMode(src, pred, ModeOf(src))
}

func everyMode[T, R, N any](src Generator[T, R, N], pred func(T, int) (bool, error), mode Mode) (bool, error) {
	var bo iox.Backoff
	var zeroN N
	idx := 0
	for {
		step, err := pullWait(src, zeroN, mode, &bo)
		if err != nil {
			return false, err
		}
		if _, ok := step.GetLeft(); ok {
			return true, nil
		}
		v, _ := step.GetRight()
		ok, perr := pred(v, idx)
		if perr != nil {
			return false, perr
		}
		if !ok {
			return false, nil
		}
		idx++
	}
}

// Join collects the entire sequence and joins the elements' default
// renderings. The separator defaults to ",". Requires a finite source.
func Join[T, R, N any](src Generator[T, R, N], sep ...string) (string, error) {
	return joinMode(src, sep, ModeOf(src))
}

func joinMode[T, R, N any](src Generator[T, R, N], sep []string, mode Mode) (string, error) {
	s := ","
	if len(sep) > 0 {
		s = sep[0]
	}
	vals, err := asArrayMode(src, mode)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, s), nil
}

// Sort merges the sources round-robin to completion, collects the elements
// and sorts them in place. Not lazy; consumes every source fully. A nil
// cmp falls back to comparing default renderings.
func Sort[T, R, N any](cmp func(a, b T) int, srcs ...Generator[T, R, N]) ([]T, error) {
	return sortMode(cmp, srcs, modeOfAll(srcs))
}

func sortMode[T, R, N any](cmp func(a, b T) int, srcs []Generator[T, R, N], mode Mode) ([]T, error) {
	var src Generator[T, R, N]
	switch len(srcs) {
	case 0:
		return []T{}, nil
	case 1:
		src = srcs[0]
	default:
		src = mergeMode(srcs, mode)
	}
	vals, err := asArrayMode(src, mode)
	if err != nil {
		return vals, err
	}
	if cmp == nil {
		cmp = func(a, b T) int {
			return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
		}
	}
	slices.SortFunc(vals, cmp)
	return vals, nil
}
