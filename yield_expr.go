// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"code.hybscloud.com/kont"
)

// exprReturnFrame is pre-allocated to eliminate heap escapes when boxing
// the empty frame during Expr-world construction.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

// identityResume is the identity resume function for EffectFrame
// construction. Named function produces a static function value,
// consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprYieldThen yields a value and then continues with next, discarding
// the consumer's injected resume value.
// Fuses ExprPerform(Yield[T, N]{Value: v}) + ExprThen.
func ExprYieldThen[T, N, B any](v T, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Yield[T, N]{Value: v}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func yieldBindUnwind[N, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(N) kont.Expr[B])
	result := f(current.(N))
	return kont.Erased(result.Value), result.Frame
}

// ExprYieldBind yields a value and passes the consumer's injected resume
// value to f.
// Fuses ExprPerform(Yield[T, N]{Value: v}) + ExprBind.
func ExprYieldBind[T, N, B any](v T, f func(N) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = yieldBindUnwind[N, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Yield[T, N]{Value: v}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprDone finishes an Expr-world producer protocol with its final value.
func ExprDone[R any](v R) kont.Expr[R] {
	return kont.ExprReturn(v)
}
