// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"code.hybscloud.com/kont"
)

// Yield is the effect operation producing one element of type T.
// Perform(Yield[T, N]{Value: v}) suspends the producer, hands v to the
// consumer, and resumes with the consumer's injected value of type N.
type Yield[T, N any] struct {
	kont.Phantom[N]
	Value T
}

// YieldThen yields a value and then continues with next, discarding the
// consumer's injected resume value.
// Fuses Perform(Yield[T, N]{Value: v}) + Then.
func YieldThen[T, N, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield[T, N]{Value: v}), next)
}

// YieldBind yields a value and passes the consumer's injected resume value
// to f.
// Fuses Perform(Yield[T, N]{Value: v}) + Bind.
func YieldBind[T, N, B any](v T, f func(N) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Yield[T, N]{Value: v}), f)
}

// Done finishes a producer protocol with its final return value.
func Done[R any](v R) kont.Eff[R] {
	return kont.Pure(v)
}

// Reify converts a Cont-world producer protocol to Expr-world.
// The resulting Expr can be adapted with FromExpr or stepped directly
// with kont.StepExpr.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world producer protocol to Cont-world.
// The resulting Eff can be adapted with FromEff or consumed with Feed.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}

// Feed evaluates a producer protocol to completion on the calling
// goroutine, passing each yielded element to f and resuming the producer
// with f's result. Returns the protocol's final value.
func Feed[T, R, N any](m kont.Eff[R], f func(T) N) R {
	return kont.Handle(m, feedHandler[T, R, N]{f: f})
}

// feedHandler implements kont.Handler for Yield effects.
type feedHandler[T, R, N any] struct {
	f func(T) N
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h feedHandler[T, R, N]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	y, ok := op.(Yield[T, N])
	if !ok {
		panic("gen: unhandled effect in Feed")
	}
	return h.f(y.Value), true
}

// FromEff adapts a Cont-world producer protocol into a canonical
// resumable sequence.
func FromEff[T, R, N any](m kont.Eff[R]) *Enhanced[T, R, N] {
	return FromExpr[T, R, N](kont.Reify(m))
}

// FromExpr adapts an Expr-world producer protocol into a canonical
// resumable sequence, evaluating one Yield effect per pull.
//
// Delivery is one step behind resumption: the first pull reports the
// element pending at the first suspension and discards its injected
// value (execution starts at the protocol's beginning, so there is no
// suspension point to inject into); each later pull resumes the previous
// suspension with the injected value. Return discards the pending
// suspension and completes with the passed value; kont frames have no
// finalizer equivalent, so no producer-side cleanup runs. Throw discards
// and re-raises: protocol producers do not recover from injected errors.
func FromExpr[T, R, N any](m kont.Expr[R]) *Enhanced[T, R, N] {
	g := &exprGen[T, R, N]{}
	g.result, g.susp = kont.StepExpr(m)
	if g.susp == nil {
		g.finished = true
	}
	return enhanceMode[T, R, N](g, Sync)
}

// exprGen drives a stepped protocol one effect at a time.
type exprGen[T, R, N any] struct {
	susp     *kont.Suspension[R]
	result   R
	done     bool // consumer-facing completion
	finished bool // protocol ran to its own end
	primed   bool
}

func (g *exprGen[T, R, N]) Next(n N) (Step[T, R], error) {
	if g.done || g.finished && g.primed {
		g.done = true
		return Completed[T](g.result), nil
	}
	if !g.primed {
		g.primed = true
		if g.finished {
			g.done = true
			return Completed[T](g.result), nil
		}
		return Yielded[R](g.pending()), nil
	}
	result, next := g.susp.Resume(n)
	g.susp = next
	if next == nil {
		g.finished = true
		g.done = true
		g.result = result
		return Completed[T](result), nil
	}
	return Yielded[R](g.pending()), nil
}

// pending extracts the element carried by the current suspension.
func (g *exprGen[T, R, N]) pending() T {
	y, ok := g.susp.Op().(Yield[T, N])
	if !ok {
		panic("gen: unhandled effect in generator protocol")
	}
	return y.Value
}

func (g *exprGen[T, R, N]) Return(v R) (Step[T, R], error) {
	if !g.done && g.susp != nil {
		g.susp.Discard()
		g.susp = nil
	}
	g.done = true
	g.result = v
	return Completed[T](v), nil
}

func (g *exprGen[T, R, N]) Throw(err error) (Step[T, R], error) {
	if !g.done && g.susp != nil {
		g.susp.Discard()
		g.susp = nil
	}
	g.done = true
	var zero Step[T, R]
	return zero, err
}

func (g *exprGen[T, R, N]) Mode() Mode { return Sync }
