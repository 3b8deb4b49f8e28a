// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

const (
	bridgeOpen uint32 = iota
	bridgeEnded
	bridgeThrown
)

// SharedController is the producer side of a shared callback bridge. All
// methods are safe to call from a single producer goroutine while a single
// consumer goroutine pulls the paired generator.
type SharedController[T, R any] struct {
	g *sharedEventGen[T, R]
}

// Send enqueues a data value. It reports iox.ErrWouldBlock while the ring
// is full and a nil error once the value is admitted; sends after End or
// Throw silently succeed without enqueueing.
func (c *SharedController[T, R]) Send(v T) error {
	if c.g.state.Load() != bridgeOpen {
		return nil
	}
	return c.g.ring.Enqueue(&v)
}

// End marks normal completion with final value v. Values already enqueued
// are still delivered first.
func (c *SharedController[T, R]) End(v R) {
	if c.g.state.Load() != bridgeOpen {
		return
	}
	c.g.final = v
	c.g.state.Store(bridgeEnded)
}

// Throw marks failure with err, ordered after already-enqueued values.
func (c *SharedController[T, R]) Throw(err error) {
	if c.g.state.Load() != bridgeOpen {
		return
	}
	c.g.err = err
	c.g.state.Store(bridgeThrown)
}

// NewSharedEventGenerator is the cross-goroutine form of
// NewEventGenerator: a single-producer single-consumer ring of the given
// capacity replaces the queue policy, and back-pressure surfaces on the
// producer as a would-block Send. The shared bridge has no Clear: once a
// termination mark is published the other goroutine may already have
// observed it.
func NewSharedEventGenerator[T, R any](capacity int) (*Enhanced[T, R, struct{}], *SharedController[T, R]) {
	g := &sharedEventGen[T, R]{}
	g.ring.Init(capacity)
	return EnhanceAsync[T, R, struct{}](g), &SharedController[T, R]{g: g}
}

type sharedEventGen[T, R any] struct {
	ring  lfq.SPSC[T]
	state atomix.Uint32
	err   error
	final R
	done  bool
}

func (g *sharedEventGen[T, R]) Next(struct{}) (Step[T, R], error) {
	if g.done {
		return Completed[T](g.final), nil
	}
	if v, err := g.ring.Dequeue(); err == nil {
		return Yielded[R](v), nil
	}
	// The termination flag is checked only after the ring reports empty,
	// then the ring is drained once more: the producer enqueues before it
	// stores the flag, so a value racing with termination is never lost.
	switch g.state.Load() {
	case bridgeOpen:
		var zero Step[T, R]
		return zero, iox.ErrWouldBlock
	case bridgeThrown:
		if v, err := g.ring.Dequeue(); err == nil {
			return Yielded[R](v), nil
		}
		g.done = true
		var zero Step[T, R]
		return zero, g.err
	default:
		if v, err := g.ring.Dequeue(); err == nil {
			return Yielded[R](v), nil
		}
		g.done = true
		return Completed[T](g.final), nil
	}
}

func (g *sharedEventGen[T, R]) Return(v R) (Step[T, R], error) {
	g.done = true
	g.final = v
	g.state.Store(bridgeEnded)
	return Completed[T](v), nil
}

func (g *sharedEventGen[T, R]) Throw(err error) (Step[T, R], error) {
	g.done = true
	g.state.Store(bridgeThrown)
	var zero Step[T, R]
	return zero, err
}

func (g *sharedEventGen[T, R]) Mode() Mode { return Async }
