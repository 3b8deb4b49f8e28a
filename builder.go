// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

// Op is a reusable pipeline stage: a combinator with its arguments bound
// but its source left open. Stages built here compose with Pipe, so a
// transformation can be named once and applied to many sources.
type Op[T, U, R, N any] func(Generator[T, R, N]) *Enhanced[U, R, N]

// Pipe applies stages to src left to right.
func Pipe[T, R, N any](src Generator[T, R, N], ops ...Op[T, T, R, N]) *Enhanced[T, R, N] {
	out := Enhance(src)
	for _, op := range ops {
		out = op(out)
	}
	return out
}

// MapOp binds f into an open map stage.
func MapOp[T, U, R, N any](f func(T, int) (U, error)) Op[T, U, R, N] {
	return func(src Generator[T, R, N]) *Enhanced[U, R, N] {
		return Map(src, f)
	}
}

// FilterOp binds pred into an open filter stage.
func FilterOp[T, R, N any](pred func(T, int) (bool, error)) Op[T, T, R, N] {
	return func(src Generator[T, R, N]) *Enhanced[T, R, N] {
		return Filter(src, pred)
	}
}

// LimitOp binds max into an open limit stage.
func LimitOp[T, R, N any](max int) Op[T, T, R, N] {
	return func(src Generator[T, R, N]) *Enhanced[T, R, N] {
		return Limit(src, max)
	}
}

// SliceOp binds the [start, end) window into an open slice stage.
func SliceOp[T, R, N any](start, end int) Op[T, T, R, N] {
	return func(src Generator[T, R, N]) *Enhanced[T, R, N] {
		return Slice(src, start, end)
	}
}

// FlatOp binds depth into an open flatten stage.
func FlatOp[R, N any](depth int) Op[any, any, R, N] {
	return func(src Generator[any, R, N]) *Enhanced[any, R, N] {
		return Flat(src, depth)
	}
}

// FlatMapOp binds f and depth into an open flat-map stage.
func FlatMapOp[T, R, N any](f func(T, int) (any, error), depth int) Op[T, any, R, N] {
	return func(src Generator[T, R, N]) *Enhanced[any, R, N] {
		return FlatMap(src, f, depth)
	}
}

// ConcatOp binds trailing sources into an open concat stage: the piped
// source drains first, then each of more in order.
func ConcatOp[T, R, N any](more ...Generator[T, R, N]) Op[T, T, R, N] {
	return func(src Generator[T, R, N]) *Enhanced[T, R, N] {
		return Concat(prependSrc(src, more)...)
	}
}

// ZipOp binds sibling sources into an open zip stage.
func ZipOp[T, R, N any](more ...Generator[T, R, N]) Op[T, []T, R, N] {
	return func(src Generator[T, R, N]) *Enhanced[[]T, R, N] {
		return Zip(prependSrc(src, more)...)
	}
}

// MergeOp binds sibling sources into an open round-robin merge stage.
func MergeOp[T, R, N any](more ...Generator[T, R, N]) Op[T, T, R, N] {
	return func(src Generator[T, R, N]) *Enhanced[T, R, N] {
		return Merge(prependSrc(src, more)...)
	}
}

// RepeatLastOp binds max into an open repeat-last stage.
func RepeatLastOp[T, R, N any](max ...int) Op[T, T, R, N] {
	return func(src Generator[T, R, N]) *Enhanced[T, R, N] {
		return RepeatLast(src, max...)
	}
}

// Sink is a driver with its arguments bound but its source left open.
type Sink[T, R, N, O any] func(Generator[T, R, N]) (O, error)

// AsArrayOp is the open form of AsArray.
func AsArrayOp[T, R, N any]() Sink[T, R, N, []T] {
	return func(src Generator[T, R, N]) ([]T, error) {
		return AsArray(src)
	}
}

// ReduceOp binds f and the optional seed into an open reduce sink.
func ReduceOp[T, R, N any](f func(acc, v T, idx int) (T, error), init ...T) Sink[T, R, N, T] {
	return func(src Generator[T, R, N]) (T, error) {
		return Reduce(src, f, init...)
	}
}

// SomeOp binds pred into an open existential sink.
func SomeOp[T, R, N any](pred func(T, int) (bool, error)) Sink[T, R, N, bool] {
	return func(src Generator[T, R, N]) (bool, error) {
		return Some(src, pred)
	}
}

// EveryOp binds pred into an open universal sink.
func EveryOp[T, R, N any](pred func(T, int) (bool, error)) Sink[T, R, N, bool] {
	return func(src Generator[T, R, N]) (bool, error) {
		return Every(src, pred)
	}
}

// JoinOp binds sep into an open join sink.
func JoinOp[T, R, N any](sep ...string) Sink[T, R, N, string] {
	return func(src Generator[T, R, N]) (string, error) {
		return Join(src, sep...)
	}
}

// SortOp binds cmp into an open sort sink.
func SortOp[T, R, N any](cmp func(a, b T) int) Sink[T, R, N, []T] {
	return func(src Generator[T, R, N]) ([]T, error) {
		return Sort(cmp, src)
	}
}

// ForEachOp binds f into an open for-each sink.
func ForEachOp[T, R, N any](f func(T, int) error) Sink[T, R, N, struct{}] {
	return func(src Generator[T, R, N]) (struct{}, error) {
		return struct{}{}, ForEach(src, f)
	}
}
