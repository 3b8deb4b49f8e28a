// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/gen"
)

func TestRangeDefaults(t *testing.T) {
	out, _ := drain[int, struct{}](t, countTo(t, 4))
	wantInts(t, out, []int{0, 1, 2, 3})
}

func TestRangeStep(t *testing.T) {
	g, err := gen.Range(1, 10, 3)
	if err != nil {
		t.Fatalf("range failed: %v", err)
	}
	out, _ := drain[int, struct{}](t, g)
	wantInts(t, out, []int{1, 4, 7})
}

func TestRangeStepDown(t *testing.T) {
	g, err := gen.Range(5, 0, -2)
	if err != nil {
		t.Fatalf("range failed: %v", err)
	}
	out, _ := drain[int, struct{}](t, g)
	wantInts(t, out, []int{5, 3, 1})
}

func TestRangeZeroStep(t *testing.T) {
	if _, err := gen.Range(0, 10, 0); !errors.Is(err, gen.ErrZeroStep) {
		t.Fatalf("got %v, want ErrZeroStep", err)
	}
}

func TestRangeUnreachableEnd(t *testing.T) {
	g, err := gen.Range(10, 0)
	if err != nil {
		t.Fatalf("range failed: %v", err)
	}
	out, _ := drain[int, struct{}](t, g)
	wantInts(t, out, nil)
}

func TestRangeFloat(t *testing.T) {
	g, err := gen.Range(0.0, 1.0, 0.5)
	if err != nil {
		t.Fatalf("range failed: %v", err)
	}
	out, _ := drain[float64, struct{}](t, g)
	if len(out) != 2 || out[0] != 0.0 || out[1] != 0.5 {
		t.Fatalf("got %v, want [0 0.5]", out)
	}
}

func TestFromSeqEarlyReturnStops(t *testing.T) {
	cleaned := false
	g := gen.FromSeq(func(yield func(int) bool) {
		defer func() { cleaned = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	})
	if _, err := g.Next(struct{}{}); err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if _, err := g.Return(struct{}{}); err != nil {
		t.Fatalf("return failed: %v", err)
	}
	if !cleaned {
		t.Fatal("underlying sequence not stopped")
	}
}

func TestRepeatUnbounded(t *testing.T) {
	g := gen.Repeat(5)
	for i := 0; i < 1000; i++ {
		step, err := g.Next(struct{}{})
		if err != nil {
			t.Fatalf("pull %d failed: %v", i, err)
		}
		if v, ok := gen.StepValue(step); !ok || v != 5 {
			t.Fatalf("pull %d got %v, want yielded 5", i, step)
		}
	}
}
