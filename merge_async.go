// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// fanCapacity is the bounded capacity of each per-source transport ring in
// the concurrent merge. 4 keeps ring buffers within a single cache line
// while amortizing producer-side cached-index refresh cost.
const fanCapacity = 4

// pump lifecycle states.
const (
	pumpRunning uint32 = iota
	pumpCompleted
	pumpFailed
)

// cancellation kinds signaled to pumps.
const (
	fanOpen uint32 = iota
	fanReturn
	fanThrow
)

// MergeAsync is the true concurrent fan-in: one puller goroutine per
// source feeds a bounded lock-free SPSC ring, and elements are delivered
// in arrival order across sources. The merged sequence is asynchronous:
// Next reports iox.ErrWouldBlock while no source has an element ready.
//
// Resume values injected by the consumer are not forwarded across the
// goroutine boundary; sources are pulled with the zero resume value. On
// abort every still-running pump forwards Return or Throw to its own
// source, suppressing secondary errors from that fan-out.
func MergeAsync[T, R, N any](srcs ...Generator[T, R, N]) *Enhanced[T, R, N] {
	m := &mergeAsyncGen[T, R, N]{pumps: make([]*mergePump[T], len(srcs))}
	for i := range srcs {
		p := &mergePump[T]{}
		p.ring.Init(fanCapacity)
		m.pumps[i] = p
		go m.pump(p, srcs[i])
	}
	return enhanceMode[T, R, N](m, Async)
}

// mergePump is one source's transport: a bounded SPSC ring written only by
// the pump goroutine and read only by the consumer, plus a state flag.
type mergePump[T any] struct {
	ring  lfq.SPSC[T]
	state atomix.Uint32
	err   error // valid once state is pumpFailed
}

type mergeAsyncGen[T, R, N any] struct {
	pumps []*mergePump[T]

	// returning and terr are written by the consumer before the cancel
	// flag is set; pumps read them only after observing the flag.
	cancel    atomix.Uint32
	returning R
	terr      error

	done  bool
	final R
}

// pump drives one source to completion on its own goroutine, backing off
// on iox.ErrWouldBlock at both the source and the ring boundary, and
// checking the cancel flag between suspension points.
func (g *mergeAsyncGen[T, R, N]) pump(p *mergePump[T], src Generator[T, R, N]) {
	var bo iox.Backoff
	var zeroN N
	for {
		if g.canceled(src) {
			p.state.Store(pumpCompleted)
			return
		}
		step, err := src.Next(zeroN)
		if err != nil {
			if iox.IsWouldBlock(err) {
				bo.Wait()
				continue
			}
			p.err = err
			p.state.Store(pumpFailed)
			return
		}
		bo.Reset()
		if _, ok := step.GetLeft(); ok {
			p.state.Store(pumpCompleted)
			return
		}
		v, _ := step.GetRight()
		for {
			if g.canceled(src) {
				p.state.Store(pumpCompleted)
				return
			}
			if e := p.ring.Enqueue(&v); e != nil {
				bo.Wait()
				continue
			}
			bo.Reset()
			break
		}
	}
}

// canceled checks the abort flag and, when set, forwards the recorded
// Return or Throw to this pump's source. Finalization errors from the
// fan-out are suppressed so every sibling gets its own attempt.
func (g *mergeAsyncGen[T, R, N]) canceled(src Generator[T, R, N]) bool {
	switch g.cancel.Load() {
	case fanReturn:
		src.Return(g.returning)
		return true
	case fanThrow:
		src.Throw(g.terr)
		return true
	}
	return false
}

func (g *mergeAsyncGen[T, R, N]) Next(N) (Step[T, R], error) {
	if g.done {
		return Completed[T](g.final), nil
	}
	idle := 0
	for _, p := range g.pumps {
		if v, err := p.ring.Dequeue(); err == nil {
			return Yielded[R](v), nil
		}
		// The stop flag is checked only after the ring reports empty, then
		// the ring is drained once more: the pump enqueues before it stores
		// the flag, so an element racing with shutdown is never lost.
		switch p.state.Load() {
		case pumpFailed:
			if v, err := p.ring.Dequeue(); err == nil {
				return Yielded[R](v), nil
			}
			g.terr = p.err
			g.cancel.Store(fanThrow)
			g.done = true
			var zero Step[T, R]
			return zero, p.err
		case pumpCompleted:
			if v, err := p.ring.Dequeue(); err == nil {
				return Yielded[R](v), nil
			}
			idle++
		}
	}
	if idle == len(g.pumps) {
		g.done = true
		return Completed[T](g.final), nil
	}
	var zero Step[T, R]
	return zero, iox.ErrWouldBlock
}

func (g *mergeAsyncGen[T, R, N]) Return(v R) (Step[T, R], error) {
	if g.done {
		return Completed[T](v), nil
	}
	g.returning = v
	g.cancel.Store(fanReturn)
	g.done = true
	g.final = v
	return Completed[T](v), nil
}

func (g *mergeAsyncGen[T, R, N]) Throw(err error) (Step[T, R], error) {
	if g.done {
		var zero Step[T, R]
		return zero, err
	}
	g.terr = err
	g.cancel.Store(fanThrow)
	g.done = true
	var zero Step[T, R]
	return zero, err
}

func (g *mergeAsyncGen[T, R, N]) Mode() Mode { return Async }
