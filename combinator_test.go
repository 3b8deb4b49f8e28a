// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen_test

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"testing"

	"code.hybscloud.com/gen"
)

func TestMapOrder(t *testing.T) {
	out, err := gen.Map[int, string, struct{}, struct{}](countTo(t, 5), func(v, i int) (string, error) {
		return strconv.Itoa(v * 10), nil
	}).AsArray()
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}
	want := []string{"0", "10", "20", "30", "40"}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestMapIndexSequential(t *testing.T) {
	var idxs []int
	_, err := gen.Map[int, int, struct{}, struct{}](ints(7, 7, 7), func(v, i int) (int, error) {
		idxs = append(idxs, i)
		return v, nil
	}).AsArray()
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}
	wantInts(t, idxs, []int{0, 1, 2})
}

func TestFilterKeepsUpstreamOrder(t *testing.T) {
	out, err := gen.Filter[int, struct{}, struct{}](countTo(t, 10), func(v, _ int) (bool, error) {
		return v%2 == 0, nil
	}).AsArray()
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	wantInts(t, out, []int{0, 2, 4, 6, 8})
}

func TestFilterIndexCountsAllElements(t *testing.T) {
	var idxs []int
	_, err := gen.Filter[int, struct{}, struct{}](ints(1, 2, 3, 4), func(v, i int) (bool, error) {
		idxs = append(idxs, i)
		return v%2 == 0, nil
	}).AsArray()
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	wantInts(t, idxs, []int{0, 1, 2, 3})
}

func TestLimitExceeded(t *testing.T) {
	rec := record[int, struct{}, struct{}](countTo(t, 5))
	limited := gen.Limit[int, struct{}, struct{}](rec, 3)
	for i := 0; i < 3; i++ {
		step, err := limited.Next(struct{}{})
		if err != nil {
			t.Fatalf("pull %d failed: %v", i, err)
		}
		if v, ok := gen.StepValue(step); !ok || v != i {
			t.Fatalf("pull %d got %v, want yielded %d", i, step, i)
		}
	}
	_, err := limited.Next(struct{}{})
	if !errors.Is(err, gen.ErrLimitExceeded) {
		t.Fatalf("got %v, want ErrLimitExceeded", err)
	}
	if rec.throws != 1 {
		t.Fatalf("upstream throws = %d, want 1", rec.throws)
	}
}

func TestLimitExactBound(t *testing.T) {
	rec := record[int, struct{}, struct{}](ints(1, 2, 3))
	out, err := gen.Limit[int, struct{}, struct{}](rec, 3).AsArray()
	if err != nil {
		t.Fatalf("limit failed: %v", err)
	}
	wantInts(t, out, []int{1, 2, 3})
	if rec.throws != 0 {
		t.Fatalf("upstream throws = %d, want 0", rec.throws)
	}
}

func TestLimitUnderBound(t *testing.T) {
	out, err := gen.Limit[int, struct{}, struct{}](ints(1, 2), 5).AsArray()
	if err != nil {
		t.Fatalf("limit failed: %v", err)
	}
	wantInts(t, out, []int{1, 2})
}

func TestSliceWindow(t *testing.T) {
	rec := record[int, struct{}, struct{}](countTo(t, 100))
	out, err := gen.Slice[int, struct{}, struct{}](rec, 2, 5).AsArray()
	if err != nil {
		t.Fatalf("slice failed: %v", err)
	}
	wantInts(t, out, []int{2, 3, 4})
	if rec.returns != 1 {
		t.Fatalf("upstream returns = %d, want 1", rec.returns)
	}
}

func TestSliceOpenEnd(t *testing.T) {
	out, err := gen.Slice[int, struct{}, struct{}](countTo(t, 6), 3, math.MaxInt).AsArray()
	if err != nil {
		t.Fatalf("slice failed: %v", err)
	}
	wantInts(t, out, []int{3, 4, 5})
}

func TestFlatDepthOne(t *testing.T) {
	src := gen.FromSlice([]any{3, []any{2, []any{1, []any{0}}}, 7})
	out, err := src.Flat(1).AsArray()
	if err != nil {
		t.Fatalf("flat failed: %v", err)
	}
	want := []any{3, 2, []any{1, []any{0}}, 7}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestFlatDepthTwo(t *testing.T) {
	src := gen.FromSlice([]any{3, []any{2, []any{1, []any{0}}}, 7})
	out, err := src.Flat(2).AsArray()
	if err != nil {
		t.Fatalf("flat failed: %v", err)
	}
	want := []any{3, 2, 1, []any{0}, 7}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestFlatNestedGenerator(t *testing.T) {
	inner := gen.Widen[int, struct{}, struct{}](ints(10, 11))
	src := gen.FromSlice([]any{1, inner, 2})
	out, err := src.Flat(1).AsArray()
	if err != nil {
		t.Fatalf("flat failed: %v", err)
	}
	want := []any{1, 10, 11, 2}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestFlatMap(t *testing.T) {
	out, err := gen.FlatMap[int, struct{}, struct{}](ints(1, 2, 3), func(v, _ int) (any, error) {
		return []any{v, v * 10}, nil
	}, 1).AsArray()
	if err != nil {
		t.Fatalf("flatMap failed: %v", err)
	}
	want := []any{1, 10, 2, 20, 3, 30}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestRepeatLast(t *testing.T) {
	out, err := gen.RepeatLast[int, struct{}, struct{}](countTo(t, 5), 3).AsArray()
	if err != nil {
		t.Fatalf("repeatLast failed: %v", err)
	}
	wantInts(t, out, []int{0, 1, 2, 3, 4, 4, 4, 4})
}

func TestRepeatLastEmptySource(t *testing.T) {
	out, err := gen.RepeatLast[int, struct{}, struct{}](ints(), 3).AsArray()
	if err != nil {
		t.Fatalf("repeatLast failed: %v", err)
	}
	wantInts(t, out, []int{0, 0, 0})
}

func TestRepeatLastDefaultUnbounded(t *testing.T) {
	g := gen.RepeatLast[int, struct{}, struct{}](ints(7))
	for i := 0; i < 1000; i++ {
		step, err := g.Next(struct{}{})
		if err != nil {
			t.Fatalf("pull %d failed: %v", i, err)
		}
		if v, ok := gen.StepValue(step); !ok || v != 7 {
			t.Fatalf("pull %d got %v, want yielded 7", i, step)
		}
	}
}

func TestReturnFinalizesUpstreamOnce(t *testing.T) {
	rec := record[int, struct{}, struct{}](countTo(t, 100))
	mapped := gen.Map[int, int, struct{}, struct{}](rec, func(v, _ int) (int, error) { return v, nil })
	if _, err := mapped.Next(struct{}{}); err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	step, err := mapped.Return(struct{}{})
	if err != nil {
		t.Fatalf("return failed: %v", err)
	}
	if _, ok := gen.StepDone(step); !ok {
		t.Fatalf("got %v, want completed", step)
	}
	// Finalization is idempotent from the consumer's side.
	if _, err := mapped.Return(struct{}{}); err != nil {
		t.Fatalf("second return failed: %v", err)
	}
	if rec.returns != 1 {
		t.Fatalf("upstream returns = %d, want 1", rec.returns)
	}
	step, err = mapped.Next(struct{}{})
	if err != nil {
		t.Fatalf("pull after return failed: %v", err)
	}
	if _, ok := gen.StepDone(step); !ok {
		t.Fatalf("got %v, want completed after return", step)
	}
}

func TestCallbackErrorPropagates(t *testing.T) {
	rec := record[int, struct{}, struct{}](countTo(t, 5))
	boom := errors.New("boom")
	_, err := gen.Map[int, int, struct{}, struct{}](rec, func(v, _ int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	}).AsArray()
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	if rec.throws != 1 {
		t.Fatalf("upstream throws = %d, want 1", rec.throws)
	}
}

// recoverer yields a replacement element when thrown at.
type recoverer struct {
	replacement int
	done        bool
}

func (r *recoverer) Next(struct{}) (gen.Step[int, struct{}], error) {
	if r.done {
		return gen.Completed[int](struct{}{}), nil
	}
	return gen.Yielded[struct{}](1), nil
}

func (r *recoverer) Return(struct{}) (gen.Step[int, struct{}], error) {
	r.done = true
	return gen.Completed[int](struct{}{}), nil
}

func (r *recoverer) Throw(error) (gen.Step[int, struct{}], error) {
	return gen.Yielded[struct{}](r.replacement), nil
}

func TestThrowRecoveryReappliesTransform(t *testing.T) {
	boom := errors.New("boom")
	src := &recoverer{replacement: 9}
	mapped := gen.Map[int, int, struct{}, struct{}](src, func(v, _ int) (int, error) {
		if v == 1 {
			return 0, boom
		}
		return v * 2, nil
	})
	step, err := mapped.Next(struct{}{})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if v, ok := gen.StepValue(step); !ok || v != 18 {
		t.Fatalf("got %v, want yielded 18", step)
	}
}

func TestRepeat(t *testing.T) {
	out, err := gen.Repeat("x", 4).AsArray()
	if err != nil {
		t.Fatalf("repeat failed: %v", err)
	}
	want := []string{"x", "x", "x", "x"}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}
