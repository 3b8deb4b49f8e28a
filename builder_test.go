// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen_test

import (
	"testing"

	"code.hybscloud.com/gen"
)

func TestPipeAppliesStagesInOrder(t *testing.T) {
	double := gen.MapOp[int, int, struct{}, struct{}](func(v, _ int) (int, error) { return v * 2, nil })
	odd := gen.FilterOp[int, struct{}, struct{}](func(v, _ int) (bool, error) { return v%4 == 2, nil })

	out, err := gen.Pipe[int, struct{}, struct{}](countTo(t, 5), double, odd).AsArray()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	wantInts(t, out, []int{2, 6})
}

func TestOpReusableAcrossSources(t *testing.T) {
	firstTwo := gen.SliceOp[int, struct{}, struct{}](0, 2)
	a, err := firstTwo(ints(1, 2, 3)).AsArray()
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	b, err := firstTwo(ints(7, 8, 9)).AsArray()
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	wantInts(t, a, []int{1, 2})
	wantInts(t, b, []int{7, 8})
}

func TestSinkForms(t *testing.T) {
	sum := gen.ReduceOp[int, struct{}, struct{}](func(acc, v, _ int) (int, error) { return acc + v, nil }, 0)
	got, err := sum(countTo(t, 5))
	if err != nil {
		t.Fatalf("sink failed: %v", err)
	}
	if got != 10 {
		t.Fatalf("sum = %d, want 10", got)
	}

	joined, err := gen.JoinOp[int, struct{}, struct{}]("/")(ints(1, 2))
	if err != nil {
		t.Fatalf("sink failed: %v", err)
	}
	if joined != "1/2" {
		t.Fatalf("joined = %q, want 1/2", joined)
	}
}

func TestZipOpPrependsSource(t *testing.T) {
	stage := gen.ZipOp[int, struct{}, struct{}](ints(10, 20))
	out, err := stage(ints(1, 2)).AsArray()
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	want := [][]int{{1, 10}, {2, 20}}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		wantInts(t, out[i], want[i])
	}
}
