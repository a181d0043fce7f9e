// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"
	"io"
)

// sliceStream yields the members of a slice in order.
type sliceStream[T any] struct {
	items []T
	pos   int
}

// FromSlice returns a stream over items. The slice is not copied.
func FromSlice[T any](items ...T) Stream[T] {
	return &sliceStream[T]{items: items}
}

func (s *sliceStream[T]) Next() (T, error) {
	var zero T
	if s.pos >= len(s.items) {
		return zero, io.EOF
	}
	item := s.items[s.pos]
	s.pos++
	return item, nil
}

func (s *sliceStream[T]) Close() error {
	s.items = nil
	return nil
}

// Func is a stream whose items come from next. It is the building block for
// stages that emit zero or more items per input.
type Func[T any] struct {
	next  func() (T, error)
	close func() error
}

// NewFunc returns a stream backed by next and closed by close (may be nil).
func NewFunc[T any](next func() (T, error), close func() error) *Func[T] {
	return &Func[T]{next: next, close: close}
}

func (f *Func[T]) Next() (T, error) { return f.next() }

func (f *Func[T]) Close() error {
	if f.close == nil {
		return nil
	}
	return f.close()
}

// Map applies fn to every item.
func Map[In, Out any](fn func(In) (Out, error)) Stage[In, Out] {
	return func(src Stream[In]) Stream[Out] {
		return NewFunc(func() (Out, error) {
			var zero Out
			item, err := src.Next()
			if err != nil {
				return zero, err
			}
			return fn(item)
		}, src.Close)
	}
}

// Tap calls fn for every item and passes the item on unchanged.
func Tap[T any](fn func(T)) Stage[T, T] {
	return Map(func(item T) (T, error) {
		fn(item)
		return item, nil
	})
}

// Every passes through only every n-th item, counting from 1: items n, 2n,
// 3n and so on. n < 1 is treated as 1.
func Every[T any](n int) Stage[T, T] {
	if n < 1 {
		n = 1
	}
	return func(src Stream[T]) Stream[T] {
		count := 0
		return NewFunc(func() (T, error) {
			for {
				item, err := src.Next()
				if err != nil {
					return item, err
				}
				count++
				if count%n == 0 {
					return item, nil
				}
			}
		}, src.Close)
	}
}

// Group batches n consecutive items into one slice. A short final batch is
// emitted when the source ends.
func Group[T any](n int) Stage[T, []T] {
	if n < 1 {
		n = 1
	}
	return func(src Stream[T]) Stream[[]T] {
		done := false
		return NewFunc(func() ([]T, error) {
			if done {
				return nil, io.EOF
			}
			batch := make([]T, 0, n)
			for len(batch) < n {
				item, err := src.Next()
				if errors.Is(err, io.EOF) {
					done = true
					break
				}
				if err != nil {
					return nil, err
				}
				batch = append(batch, item)
			}
			if len(batch) == 0 {
				return nil, io.EOF
			}
			return batch, nil
		}, src.Close)
	}
}

// SubPipeline runs a fresh instance of stage for every incoming item, sourced
// from that single item, and emits everything the instance produced as one
// ordered slice. A one-element slice means the instance produced one value.
func SubPipeline[In, Out any](stage Stage[In, Out]) Stage[In, []Out] {
	each := SubPipelineEach(stage)
	return func(src Stream[In]) Stream[[]Out] {
		wrapped := Map(func(item In) ([]In, error) { return []In{item}, nil })(src)
		return each(wrapped)
	}
}

// SubPipelineEach runs a fresh instance of stage for every incoming batch. The
// instance reads the members of the batch in order; its outputs are collected
// into one slice before being passed on. Instances never share state.
func SubPipelineEach[In, Out any](stage Stage[In, Out]) Stage[[]In, []Out] {
	return func(src Stream[[]In]) Stream[[]Out] {
		return NewFunc(func() ([]Out, error) {
			batch, err := src.Next()
			if err != nil {
				return nil, err
			}
			return Collect(stage(FromSlice(batch...)))
		}, src.Close)
	}
}
