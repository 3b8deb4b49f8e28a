// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import "errors"

var (
	// ErrNotIterable reports that a value matches none of the recognized
	// synchronous shapes (iterator, iterable, slice, iter.Seq, pull func).
	ErrNotIterable = errors.New("gen: not iterable")

	// ErrNotAsyncIterable reports that a value matches none of the
	// recognized shapes, synchronous or asynchronous.
	ErrNotAsyncIterable = errors.New("gen: not async iterable")

	// ErrLimitExceeded is raised by Limit on the pull that exceeds its
	// bound, after forwarding it upstream.
	ErrLimitExceeded = errors.New("gen: limit exceeded")

	// ErrEmptyReduce is raised by Reduce when no initial value is given
	// and the source completes before yielding a seed.
	ErrEmptyReduce = errors.New("gen: reduce of empty sequence with no initial value")

	// ErrZeroStep is reported by Range before anything yields.
	ErrZeroStep = errors.New("gen: range step must be nonzero")
)
