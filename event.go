// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"code.hybscloud.com/iox"
)

// Controller is the producer side of a callback bridge. It is used from
// event handlers to push values and termination into the paired generator.
// Controller is cooperative: use NewSharedEventGenerator when the producer
// runs on another goroutine.
type Controller[T, R any] struct {
	g *eventGen[T, R]
}

// Send pushes a data value through the bridge's queue policy. Sends after
// End or Throw are ignored.
func (c *Controller[T, R]) Send(v T) {
	if c.g.closed {
		return
	}
	c.g.queue.Push(v)
}

// End marks normal completion with final value v. Values sent before End
// are still delivered first.
func (c *Controller[T, R]) End(v R) {
	if c.g.closed {
		return
	}
	c.g.closed = true
	c.g.final = v
	c.g.ended = true
}

// Throw marks failure with err, ordered after previously sent values.
func (c *Controller[T, R]) Throw(err error) {
	if c.g.closed {
		return
	}
	c.g.closed = true
	c.g.err = err
}

// Clear drops all pending values and any pending termination, and reopens
// the bridge for further sends.
func (c *Controller[T, R]) Clear() {
	c.g.queue.Clear()
	c.g.ended = false
	c.g.err = nil
	c.g.closed = false
	var zero R
	c.g.final = zero
}

// NewEventGenerator bridges a callback world into a generator: callbacks
// feed the returned Controller, consumers pull the returned generator.
// The optional queue selects the buffering policy for data values; nil
// selects the unbounded FIFO. Pending values always deliver before a
// pending termination. The generator is asynchronous: pulling while
// nothing is pending reports iox.ErrWouldBlock.
func NewEventGenerator[T, R any](q Queue[T]) (*Enhanced[T, R, struct{}], *Controller[T, R]) {
	if q == nil {
		q = NewFIFO[T]()
	}
	g := &eventGen[T, R]{queue: q}
	return EnhanceAsync[T, R, struct{}](g), &Controller[T, R]{g: g}
}

type eventGen[T, R any] struct {
	queue  Queue[T]
	err    error
	final  R
	ended  bool
	closed bool
	done   bool
}

func (g *eventGen[T, R]) Next(struct{}) (Step[T, R], error) {
	if g.done {
		return Completed[T](g.final), nil
	}
	if v, ok := g.queue.Pop(); ok {
		return Yielded[R](v), nil
	}
	if g.err != nil {
		g.done = true
		var zero Step[T, R]
		return zero, g.err
	}
	if g.ended {
		g.done = true
		return Completed[T](g.final), nil
	}
	var zero Step[T, R]
	return zero, iox.ErrWouldBlock
}

func (g *eventGen[T, R]) Return(v R) (Step[T, R], error) {
	g.done = true
	g.closed = true
	g.final = v
	g.queue.Clear()
	return Completed[T](v), nil
}

func (g *eventGen[T, R]) Throw(err error) (Step[T, R], error) {
	g.done = true
	g.closed = true
	g.queue.Clear()
	var zero Step[T, R]
	return zero, err
}

func (g *eventGen[T, R]) Mode() Mode { return Async }
