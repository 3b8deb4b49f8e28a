// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen_test

import (
	"reflect"
	"testing"
	"testing/quick"

	"code.hybscloud.com/gen"
)

// TestPropertyMapLaw proves that for any finite sequence and pure
// transform, mapping over the sequence equals mapping over its collected
// form: the transform is order-preserving and touches every element once.
func TestPropertyMapLaw(t *testing.T) {
	f := func(v, i int) (int, error) { return v*31 + i, nil }

	property := func(vs []int) bool {
		streamed, err := gen.Map[int, int, struct{}, struct{}](gen.FromSlice(vs), f).AsArray()
		if err != nil {
			return false
		}
		collected := make([]int, 0, len(vs))
		for i, v := range vs {
			u, _ := f(v, i)
			collected = append(collected, u)
		}
		return reflect.DeepEqual(streamed, collected)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertyFilterLaw proves filtering preserves relative order and
// keeps exactly the elements the predicate admits.
func TestPropertyFilterLaw(t *testing.T) {
	pred := func(v, _ int) (bool, error) { return v%3 != 0, nil }

	property := func(vs []int) bool {
		streamed, err := gen.Filter[int, struct{}, struct{}](gen.FromSlice(vs), pred).AsArray()
		if err != nil {
			return false
		}
		collected := make([]int, 0, len(vs))
		for _, v := range vs {
			if keep, _ := pred(v, 0); keep {
				collected = append(collected, v)
			}
		}
		return reflect.DeepEqual(streamed, collected)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertyConcatLaw proves concatenation equals slice append.
func TestPropertyConcatLaw(t *testing.T) {
	property := func(a, b []int) bool {
		streamed, err := gen.Concat[int, struct{}, struct{}](gen.FromSlice(a), gen.FromSlice(b)).AsArray()
		if err != nil {
			return false
		}
		collected := make([]int, 0, len(a)+len(b))
		collected = append(collected, a...)
		collected = append(collected, b...)
		return reflect.DeepEqual(streamed, collected)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertyReduceSum proves the seeded fold of addition equals the
// plain sum regardless of sequence content.
func TestPropertyReduceSum(t *testing.T) {
	property := func(vs []int16) bool {
		src := make([]int, len(vs))
		sum := 0
		for i, v := range vs {
			src[i] = int(v)
			sum += int(v)
		}
		got, err := gen.Reduce[int, struct{}, struct{}](gen.FromSlice(src), func(acc, v, _ int) (int, error) {
			return acc + v, nil
		}, 0)
		return err == nil && got == sum
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertySliceWindow proves slicing equals the equivalent re-slice of
// the collected sequence for any window.
func TestPropertySliceWindow(t *testing.T) {
	property := func(vs []int, a, b uint8) bool {
		start, end := int(a), int(a)+int(b)
		streamed, err := gen.Slice[int, struct{}, struct{}](gen.FromSlice(vs), start, end).AsArray()
		if err != nil {
			return false
		}
		lo := min(start, len(vs))
		hi := min(end, len(vs))
		return reflect.DeepEqual(streamed, append([]int{}, vs[lo:hi]...))
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}
