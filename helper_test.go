// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen_test

import (
	"slices"
	"testing"

	"code.hybscloud.com/gen"
	"code.hybscloud.com/iox"
)

// recorder wraps a source and counts finalization calls, so tests can
// assert that combinators finalize upstream exactly once.
type recorder[T, R, N any] struct {
	src     gen.Generator[T, R, N]
	returns int
	throws  int
	lastRet R
	lastErr error
}

func record[T, R, N any](src gen.Generator[T, R, N]) *recorder[T, R, N] {
	return &recorder[T, R, N]{src: src}
}

func (r *recorder[T, R, N]) Next(n N) (gen.Step[T, R], error) {
	return r.src.Next(n)
}

func (r *recorder[T, R, N]) Return(v R) (gen.Step[T, R], error) {
	r.returns++
	r.lastRet = v
	return r.src.Return(v)
}

func (r *recorder[T, R, N]) Throw(err error) (gen.Step[T, R], error) {
	r.throws++
	r.lastErr = err
	return r.src.Throw(err)
}

func (r *recorder[T, R, N]) Mode() gen.Mode { return gen.ModeOf(r.src) }

// drain pulls src to completion, retrying would-block steps, and returns
// the yielded values and the final value.
func drain[T, R any](tb testing.TB, src gen.Generator[T, R, struct{}]) ([]T, R) {
	tb.Helper()
	var out []T
	for {
		step, err := src.Next(struct{}{})
		if iox.IsWouldBlock(err) {
			continue
		}
		if err != nil {
			tb.Fatalf("pull failed: %v", err)
		}
		if v, ok := gen.StepValue(step); ok {
			out = append(out, v)
			continue
		}
		final, _ := gen.StepDone(step)
		return out, final
	}
}

// ints builds a finite sync source yielding vs in order.
func ints(vs ...int) *gen.Enhanced[int, struct{}, struct{}] {
	return gen.FromSlice(slices.Clone(vs))
}

// countTo builds the source 0,1,...,n-1.
func countTo(tb testing.TB, n int) *gen.Enhanced[int, struct{}, struct{}] {
	tb.Helper()
	g, err := gen.Range(0, n)
	if err != nil {
		tb.Fatalf("range failed: %v", err)
	}
	return g
}

func wantInts(tb testing.TB, got, want []int) {
	tb.Helper()
	if len(got) != len(want) {
		tb.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			tb.Fatalf("got %v, want %v", got, want)
		}
	}
}
