// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"code.hybscloud.com/iox"
)

// pipe is the shared chassis of every single-upstream combinator machine.
// It tracks whether the source already signaled completion, so no pull and
// no finalization ever reaches a drained source twice, and it owns the
// machine's own terminal state.
type pipe[T, R, N any] struct {
	src     Generator[T, R, N]
	srcDone bool
	done    bool
	final   R
}

// pull advances the source once. A would-block report leaves all state
// untouched so the call can be retried; a real error kills both the source
// and this machine.
func (p *pipe[T, R, N]) pull(n N) (Step[T, R], error) {
	step, err := p.src.Next(n)
	if err != nil {
		if iox.IsWouldBlock(err) {
			return step, err
		}
		p.srcDone = true
		p.done = true
		return step, err
	}
	if _, ok := step.GetLeft(); ok {
		p.srcDone = true
	}
	return step, nil
}

// complete marks this machine done with the given final value. Every later
// pull keeps reporting the same completion.
func (p *pipe[T, R, N]) complete(v R) Step[T, R] {
	p.done = true
	p.final = v
	return Completed[T](v)
}

// finish forwards Return upstream exactly once. A non-done reply from the
// source's Return is not retried; a would-block report un-marks the source
// so the finalizer itself can be retried.
func (p *pipe[T, R, N]) finish(v R) error {
	if p.srcDone {
		return nil
	}
	p.srcDone = true
	_, err := p.src.Return(v)
	if err != nil && iox.IsWouldBlock(err) {
		p.srcDone = false
	}
	return err
}

// abort implements the shared Return path: propagate the final value
// upstream unless the source already completed, then complete locally with
// that same value.
func (p *pipe[T, R, N]) abort(v R) (Step[T, R], error) {
	if p.done {
		return Completed[T](v), nil
	}
	if err := p.finish(v); err != nil {
		if iox.IsWouldBlock(err) {
			var zero Step[T, R]
			return zero, err
		}
		p.done = true
		p.final = v
		var zero Step[T, R]
		return zero, err
	}
	return p.complete(v), nil
}

// throwUp forwards a consumer or callback error to the source. The source
// may recover by yielding a replacement element, complete, or re-raise. A
// source that already completed cannot recover; the error re-raises here.
func (p *pipe[T, R, N]) throwUp(err error) (Step[T, R], error) {
	if p.done || p.srcDone {
		p.done = true
		var zero Step[T, R]
		return zero, err
	}
	step, terr := p.src.Throw(err)
	if terr != nil {
		if iox.IsWouldBlock(terr) {
			return step, terr
		}
		p.srcDone = true
		p.done = true
		return step, terr
	}
	if v, ok := step.GetLeft(); ok {
		p.srcDone = true
		return p.complete(v), nil
	}
	return step, nil
}

// pullWait blocks until the generator makes progress, backing off on
// iox.ErrWouldBlock in async mode. In sync mode a would-block report is a
// protocol violation and propagates as-is.
func pullWait[T, R, N any](src Generator[T, R, N], n N, mode Mode, bo *iox.Backoff) (Step[T, R], error) {
	for {
		step, err := src.Next(n)
		if err == nil {
			bo.Reset()
			return step, nil
		}
		if mode != Async || !iox.IsWouldBlock(err) {
			return step, err
		}
		bo.Wait()
	}
}

// recast moves a terminal step across element types. Only the completion
// side carries information; a non-terminal input produces the zero step.
func recast[U, T, R any](s Step[T, R]) Step[U, R] {
	if r, ok := s.GetLeft(); ok {
		return Completed[U](r)
	}
	var zero Step[U, R]
	return zero
}
