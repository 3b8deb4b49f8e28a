// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

// Deferred wraps a zero-argument computation that runs at most once.
// Deferred is cooperative: it is touched by at most one goroutine at a
// time, and its continuations run inline on whichever call forces it.
type Deferred[T any] struct {
	f      func() (T, error)
	conts  []func(T, error)
	value  T
	err    error
	manual bool
	forced bool
}

// Defer wraps f. Registering a continuation with Then forces evaluation.
func Defer[T any](f func() (T, error)) *Deferred[T] {
	return &Deferred[T]{f: f}
}

// DeferManual wraps f in manual-trigger mode: continuations accumulate
// without forcing evaluation until Force or Trigger is called.
func DeferManual[T any](f func() (T, error)) *Deferred[T] {
	return &Deferred[T]{f: f, manual: true}
}

// Force evaluates the computation if it has not run yet and returns its
// result. Registered continuations run, in registration order, the first
// time the computation completes.
func (d *Deferred[T]) Force() (T, error) {
	if !d.forced {
		d.forced = true
		d.value, d.err = d.f()
		d.f = nil
		conts := d.conts
		d.conts = nil
		for _, c := range conts {
			c(d.value, d.err)
		}
	}
	return d.value, d.err
}

// Then registers a continuation on the result. In the default mode
// registration forces evaluation, so cont runs before Then returns; in
// manual-trigger mode cont is held until Force or Trigger.
func (d *Deferred[T]) Then(cont func(T, error)) *Deferred[T] {
	if d.forced {
		cont(d.value, d.err)
		return d
	}
	d.conts = append(d.conts, cont)
	if !d.manual {
		d.Force()
	}
	return d
}

// Trigger forces evaluation, discarding the result; continuations still
// observe it.
func (d *Deferred[T]) Trigger() {
	d.Force()
}

// Forced reports whether the computation has run.
func (d *Deferred[T]) Forced() bool { return d.forced }
