// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package gen provides resumable generator sequences and a chainable
// combinator set over them, in synchronous and suspension-driven
// (asynchronous) flavors.
//
// A [Generator] is the canonical resumable sequence: each pull carries an
// injected resume value from consumer to producer, and reports either a
// yielded element or a final return value ([Step], a
// [code.hybscloud.com/kont.Either]). Early termination is a three-way
// handshake: Return injects a final value, Throw injects an error at the
// current suspension point, and both propagate upstream through every
// combinator stage.
//
// # Architecture
//
//   - Producers: written as algebraic-effect protocols on
//     [code.hybscloud.com/kont] performing [Yield] effects; [FromEff] and
//     [FromExpr] adapt a protocol into a canonical generator by evaluating
//     one effect at a time.
//   - Suspension: asynchronous sequences report
//     [code.hybscloud.com/iox.ErrWouldBlock] at suspension points; blocking
//     helpers wait past the boundary with adaptive backoff
//     ([code.hybscloud.com/iox.Backoff]).
//   - Fan-in transport: the concurrent arrival-order merge and the shared
//     callback bridge move elements over bounded lock-free SPSC queues from
//     [code.hybscloud.com/lfq].
//   - Enhancement: [Enhance] decorates a generator with the combinator
//     method surface by composition; no shared prototype or global state is
//     touched, and enhancing twice is a no-op.
//
// # API Topologies
//
//   - Coercion: [ToIterator], [ToIterable], [ToGenerator] and async
//     counterparts normalize iterator-like and iterable-like inputs.
//   - Combinators: [Map], [Filter], [Flat], [FlatMap], [Slice], [Limit],
//     [Concat], [Zip], [Merge], [MergeAsync], [Reduce], [Fold], [Some],
//     [Every], [RepeatLast], plus the type-preserving method set on
//     [Enhanced]. Builder forms ([MapOp], [FilterOp], ...) capture the
//     non-source arguments and defer the source.
//   - Producer world: [YieldThen], [YieldBind] (Cont-world),
//     [ExprYieldThen], [ExprYieldBind] (Expr-world), [Loop], [ExprLoop],
//     bridged via [Reify] and [Reflect]; [Feed] and [Await] for blocking
//     consumption.
//   - Collaborators: [NewEventGenerator] (push-to-pull callback bridge with
//     pluggable queue policies), [Range], [FromSlice], [FromSeq], [Defer].
//
// # Example
//
//	squares := gen.Loop(0, func(i int) kont.Eff[kont.Either[int, struct{}]] {
//		if i == 4 {
//			return kont.Pure(kont.Right[int](struct{}{}))
//		}
//		return gen.YieldThen[int, struct{}](i*i, kont.Pure(kont.Left[int, struct{}](i+1)))
//	})
//	out, _ := gen.FromEff[int, struct{}, struct{}](squares).
//		Filter(func(v, _ int) (bool, error) { return v > 0, nil }).
//		AsArray()
package gen
