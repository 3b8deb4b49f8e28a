// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen_test

import (
	"testing"

	"code.hybscloud.com/gen"
	"code.hybscloud.com/kont"
)

// BenchmarkMapPull measures one transformed pull through a single stage.
func BenchmarkMapPull(b *testing.B) {
	src := gen.Repeat(1)
	m := gen.Map[int, int, struct{}, struct{}](src, func(v, _ int) (int, error) { return v + 1, nil })
	b.ReportAllocs()
	for b.Loop() {
		if _, err := m.Next(struct{}{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkChainPull measures one pull through a three-stage chain.
func BenchmarkChainPull(b *testing.B) {
	chain := gen.Repeat(1).
		Map(func(v, _ int) (int, error) { return v * 2, nil }).
		Filter(func(v, _ int) (bool, error) { return true, nil }).
		Map(func(v, _ int) (int, error) { return v + 1, nil })
	b.ReportAllocs()
	for b.Loop() {
		if _, err := chain.Next(struct{}{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkProducerPull measures one pull from an effect-driven producer.
func BenchmarkProducerPull(b *testing.B) {
	m := gen.Loop(0, func(s int) kont.Eff[kont.Either[int, struct{}]] {
		return gen.YieldThen[int, struct{}](s, kont.Pure(kont.Left[int, struct{}](s+1)))
	})
	g := gen.FromEff[int, struct{}, struct{}](m)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := g.Next(struct{}{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEventBridge measures one send/pull round-trip through the
// cooperative bridge.
func BenchmarkEventBridge(b *testing.B) {
	g, ctl := gen.NewEventGenerator[int, struct{}](nil)
	b.ReportAllocs()
	for b.Loop() {
		ctl.Send(1)
		if _, err := g.Next(struct{}{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMergeAsyncPull measures delivery through the concurrent fan-in.
func BenchmarkMergeAsyncPull(b *testing.B) {
	skipRace(b)
	m := gen.MergeAsync[int, struct{}, struct{}](gen.Repeat(1), gen.Repeat(2))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := gen.Await[int, struct{}, struct{}](m, struct{}{}); err != nil {
			b.Fatal(err)
		}
	}
	m.Return(struct{}{})
}
