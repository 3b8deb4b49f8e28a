// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"code.hybscloud.com/iox"
)

// Concat drains the sources strictly in declared order, each fully to
// completion before the next starts. Early termination finalizes the
// current source and sends Return to every not-yet-started one.
func Concat[T, R, N any](srcs ...Generator[T, R, N]) *Enhanced[T, R, N] {
	return concatMode(srcs, modeOfAll(srcs))
}

func concatMode[T, R, N any](srcs []Generator[T, R, N], mode Mode) *Enhanced[T, R, N] {
	return enhanceMode[T, R, N](&concatGen[T, R, N]{srcs: srcs}, mode)
}

type concatGen[T, R, N any] struct {
	srcs  []Generator[T, R, N]
	cur   int
	done  bool
	final R
}

func (g *concatGen[T, R, N]) Next(n N) (Step[T, R], error) {
	if g.done {
		return Completed[T](g.final), nil
	}
	for g.cur < len(g.srcs) {
		step, err := g.srcs[g.cur].Next(n)
		if err != nil {
			if iox.IsWouldBlock(err) {
				return step, err
			}
			g.cur++ // the failing source is dead; never pull or finalize it again
			g.fail()
			return step, err
		}
		if _, ok := step.GetLeft(); ok {
			g.cur++
			continue
		}
		return step, nil
	}
	g.done = true
	return Completed[T](g.final), nil
}

// fail sends Return to every not-yet-started source after an error ended
// the chain midway. Cleanup errors are swallowed so each sibling still
// gets its attempt.
func (g *concatGen[T, R, N]) fail() {
	var zero R
	for i := g.cur; i < len(g.srcs); i++ {
		g.srcs[i].Return(zero)
	}
	g.cur = len(g.srcs)
	g.done = true
}

func (g *concatGen[T, R, N]) Return(v R) (Step[T, R], error) {
	if g.done {
		return Completed[T](v), nil
	}
	var firstErr error
	for i := g.cur; i < len(g.srcs); i++ {
		if _, err := g.srcs[i].Return(v); err != nil && firstErr == nil && !iox.IsWouldBlock(err) {
			firstErr = err
		}
	}
	g.cur = len(g.srcs)
	g.done = true
	g.final = v
	if firstErr != nil {
		var zero Step[T, R]
		return zero, firstErr
	}
	return Completed[T](v), nil
}

func (g *concatGen[T, R, N]) Throw(err error) (Step[T, R], error) {
	if g.done || g.cur >= len(g.srcs) {
		g.done = true
		var zero Step[T, R]
		return zero, err
	}
	step, terr := g.srcs[g.cur].Throw(err)
	if terr != nil {
		if iox.IsWouldBlock(terr) {
			return step, terr
		}
		g.cur++
		g.fail()
		return step, terr
	}
	if _, ok := step.GetLeft(); ok {
		// the current source chose to end in response; the chain resumes
		// with the next source
		g.cur++
		var zeroN N
		return g.Next(zeroN)
	}
	return step, nil
}

// Zip pulls one element from each source per round, in declared order, and
// yields the collected round as a slice. It completes the instant any
// source completes; the remaining live sources are finalized with
// secondary errors suppressed.
func Zip[T, R, N any](srcs ...Generator[T, R, N]) *Enhanced[[]T, R, N] {
	return zipMode(srcs, modeOfAll(srcs))
}

func zipMode[T, R, N any](srcs []Generator[T, R, N], mode Mode) *Enhanced[[]T, R, N] {
	return enhanceMode[[]T, R, N](&zipGen[T, R, N]{
		srcs: srcs,
		live: liveSet(len(srcs)),
		buf:  make([]T, len(srcs)),
	}, mode)
}

func liveSet(n int) []bool {
	live := make([]bool, n)
	for i := range live {
		live[i] = true
	}
	return live
}

type zipGen[T, R, N any] struct {
	srcs  []Generator[T, R, N]
	live  []bool
	buf   []T // partial round, persisted across suspension points
	pos   int
	done  bool
	final R
}

func (g *zipGen[T, R, N]) Next(n N) (Step[[]T, R], error) {
	if g.done {
		return Completed[[]T](g.final), nil
	}
	if len(g.srcs) == 0 {
		g.done = true
		return Completed[[]T](g.final), nil
	}
	for g.pos < len(g.srcs) {
		step, err := g.srcs[g.pos].Next(n)
		if err != nil {
			if iox.IsWouldBlock(err) {
				return recast[[]T](step), err
			}
			g.live[g.pos] = false
			g.fanReturn()
			g.done = true
			var zero Step[[]T, R]
			return zero, err
		}
		if _, ok := step.GetLeft(); ok {
			// shorter source wins: the round is abandoned and every other
			// live source is finalized
			g.live[g.pos] = false
			g.fanReturn()
			g.done = true
			return Completed[[]T](g.final), nil
		}
		v, _ := step.GetRight()
		g.buf[g.pos] = v
		g.pos++
	}
	out := make([]T, len(g.buf))
	copy(out, g.buf)
	g.pos = 0
	return Yielded[R](out), nil
}

// fanReturn sends Return to every still-live source, suppressing
// finalization errors so a single misbehaving source cannot block cleanup
// of its siblings.
func (g *zipGen[T, R, N]) fanReturn() {
	for i, src := range g.srcs {
		if !g.live[i] {
			continue
		}
		g.live[i] = false
		src.Return(g.final)
	}
}

func (g *zipGen[T, R, N]) Return(v R) (Step[[]T, R], error) {
	if g.done {
		return Completed[[]T](v), nil
	}
	g.final = v
	g.fanReturn()
	g.done = true
	return Completed[[]T](v), nil
}

func (g *zipGen[T, R, N]) Throw(err error) (Step[[]T, R], error) {
	if g.done {
		var zero Step[[]T, R]
		return zero, err
	}
	for i, src := range g.srcs {
		if !g.live[i] {
			continue
		}
		g.live[i] = false
		src.Throw(err) // secondary errors from the fan-out are suppressed
	}
	g.done = true
	var zero Step[[]T, R]
	return zero, err
}

// Merge interleaves the still-live sources round-robin in declared order:
// each round pulls once from every live source, a completed source drops
// from the rotation, and the sequence completes when none remains. In
// async mode a would-blocked source is skipped for the round; the merge
// itself would-blocks only when no source is ready.
func Merge[T, R, N any](srcs ...Generator[T, R, N]) *Enhanced[T, R, N] {
	return mergeMode(srcs, modeOfAll(srcs))
}

func mergeMode[T, R, N any](srcs []Generator[T, R, N], mode Mode) *Enhanced[T, R, N] {
	return enhanceMode[T, R, N](&mergeGen[T, R, N]{
		srcs:      srcs,
		live:      liveSet(len(srcs)),
		liveCount: len(srcs),
	}, mode)
}

type mergeGen[T, R, N any] struct {
	srcs      []Generator[T, R, N]
	live      []bool
	liveCount int
	pos       int // rotation cursor
	done      bool
	final     R
}

func (g *mergeGen[T, R, N]) Next(n N) (Step[T, R], error) {
	if g.done {
		return Completed[T](g.final), nil
	}
	for g.liveCount > 0 {
		progressed := false
		for k := 0; k < len(g.srcs); k++ {
			i := (g.pos + k) % len(g.srcs)
			if !g.live[i] {
				continue
			}
			step, err := g.srcs[i].Next(n)
			if err != nil {
				if iox.IsWouldBlock(err) {
					continue // skip for this round, stay live
				}
				g.live[i] = false
				g.liveCount--
				g.fanReturn()
				g.done = true
				return step, err
			}
			progressed = true
			if _, ok := step.GetLeft(); ok {
				g.live[i] = false
				g.liveCount--
				continue
			}
			g.pos = i + 1
			return step, nil
		}
		if !progressed {
			var zero Step[T, R]
			return zero, iox.ErrWouldBlock
		}
	}
	g.done = true
	return Completed[T](g.final), nil
}

// fanReturn sends Return to every still-live source, suppressing
// finalization errors so each sibling gets its own attempt.
func (g *mergeGen[T, R, N]) fanReturn() {
	for i, src := range g.srcs {
		if !g.live[i] {
			continue
		}
		g.live[i] = false
		src.Return(g.final)
	}
	g.liveCount = 0
}

func (g *mergeGen[T, R, N]) Return(v R) (Step[T, R], error) {
	if g.done {
		return Completed[T](v), nil
	}
	g.final = v
	g.fanReturn()
	g.done = true
	return Completed[T](v), nil
}

func (g *mergeGen[T, R, N]) Throw(err error) (Step[T, R], error) {
	if g.done {
		var zero Step[T, R]
		return zero, err
	}
	for i, src := range g.srcs {
		if !g.live[i] {
			continue
		}
		g.live[i] = false
		src.Throw(err) // secondary errors from the fan-out are suppressed
	}
	g.liveCount = 0
	g.done = true
	var zero Step[T, R]
	return zero, err
}
