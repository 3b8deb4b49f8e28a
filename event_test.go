// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen_test

import (
	"errors"
	"sync"
	"testing"

	"code.hybscloud.com/gen"
	"code.hybscloud.com/iox"
)

func TestEventBridgeFIFO(t *testing.T) {
	g, ctl := gen.NewEventGenerator[int, string](nil)
	ctl.Send(0)
	ctl.Send(5)
	ctl.Send(7)
	ctl.End("done")
	// data queued before End still delivers first
	ctl.Send(99)

	out, final := drain[int, string](t, g)
	wantInts(t, out, []int{0, 5, 7})
	if final != "done" {
		t.Fatalf("final = %q, want done", final)
	}
}

func TestEventBridgeWouldBlockWhileOpen(t *testing.T) {
	g, ctl := gen.NewEventGenerator[int, struct{}](nil)
	if _, err := g.Next(struct{}{}); !iox.IsWouldBlock(err) {
		t.Fatalf("got %v, want would-block", err)
	}
	ctl.Send(1)
	step, err := g.Next(struct{}{})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if v, ok := gen.StepValue(step); !ok || v != 1 {
		t.Fatalf("got %v, want yielded 1", step)
	}
}

func TestEventBridgeThrowOrderedAfterData(t *testing.T) {
	boom := errors.New("boom")
	g, ctl := gen.NewEventGenerator[int, struct{}](nil)
	ctl.Send(1)
	ctl.Throw(boom)

	step, err := g.Next(struct{}{})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if v, ok := gen.StepValue(step); !ok || v != 1 {
		t.Fatalf("got %v, want yielded 1", step)
	}
	if _, err := g.Next(struct{}{}); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
}

func TestEventBridgeLatestPolicy(t *testing.T) {
	g, ctl := gen.NewEventGenerator[int, struct{}](gen.NewLatest[int]())
	ctl.Send(0)
	ctl.Send(5)
	ctl.Send(7)
	ctl.End(struct{}{})

	out, _ := drain[int, struct{}](t, g)
	wantInts(t, out, []int{7})
}

func TestEventBridgeClearReopens(t *testing.T) {
	g, ctl := gen.NewEventGenerator[int, struct{}](nil)
	ctl.Send(1)
	ctl.End(struct{}{})
	ctl.Clear()
	ctl.Send(2)

	step, err := g.Next(struct{}{})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if v, ok := gen.StepValue(step); !ok || v != 2 {
		t.Fatalf("got %v, want yielded 2", step)
	}
	if _, err := g.Next(struct{}{}); !iox.IsWouldBlock(err) {
		t.Fatalf("got %v, want would-block after clear", err)
	}
}

func TestEventBridgeConsumerReturn(t *testing.T) {
	g, ctl := gen.NewEventGenerator[int, string](nil)
	ctl.Send(1)
	if _, err := g.Return("bye"); err != nil {
		t.Fatalf("return failed: %v", err)
	}
	step, err := g.Next(struct{}{})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	final, ok := gen.StepDone(step)
	if !ok || final != "bye" {
		t.Fatalf("got %v, want completed bye", step)
	}
}

func TestEventBridgeChainable(t *testing.T) {
	g, ctl := gen.NewEventGenerator[int, struct{}](nil)
	for i := 0; i < 6; i++ {
		ctl.Send(i)
	}
	ctl.End(struct{}{})

	out, err := g.Filter(func(v, _ int) (bool, error) { return v%2 == 1, nil }).AsArray()
	if err != nil {
		t.Fatalf("chain failed: %v", err)
	}
	wantInts(t, out, []int{1, 3, 5})
}

func TestSharedBridgeCrossGoroutine(t *testing.T) {
	skipRace(t)
	g, ctl := gen.NewSharedEventGenerator[int, string](8)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		var bo iox.Backoff
		for i := 0; i < n; i++ {
			for ctl.Send(i) != nil {
				bo.Wait()
			}
			bo.Reset()
		}
		ctl.End("done")
	}()

	out, final := drain[int, string](t, g)
	wg.Wait()
	if final != "done" {
		t.Fatalf("final = %q, want done", final)
	}
	if len(out) != n {
		t.Fatalf("delivered %d elements, want %d", len(out), n)
	}
	for i, v := range out {
		if v != i {
			t.Fatalf("element %d = %d, want %d", i, v, i)
		}
	}
}

func TestSharedBridgeBackpressure(t *testing.T) {
	_, ctl := gen.NewSharedEventGenerator[int, struct{}](2)
	sent := 0
	for i := 0; i < 10; i++ {
		if ctl.Send(i) == nil {
			sent++
		}
	}
	if sent >= 10 {
		t.Fatalf("sent %d without back-pressure, want a full ring", sent)
	}
}
