// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Stream is a lazy, pull-based sequence of items.
type Stream[T any] interface {
	// Next returns the next item. When the sequence is finished it returns
	// the zero value and io.EOF.
	Next() (T, error)
	// Close releases the stream and everything upstream of it. Partial state
	// held by a stage is discarded.
	Close() error
}

// Stage turns one stream into another. Every call of a Stage builds a new,
// independent instance, so a Stage value can be applied any number of times
// without the instances sharing buffers.
type Stage[In, Out any] func(Stream[In]) Stream[Out]

// Sink consumes items at the end of a pipeline.
type Sink[T any] interface {
	Write(item T) error
	// Close is called once after the last item on a normal end of stream.
	Close() error
}

// Chain composes two stages: the output of a is the input of b.
func Chain[A, B, C any](a Stage[A, B], b Stage[B, C]) Stage[A, C] {
	return func(src Stream[A]) Stream[C] {
		return b(a(src))
	}
}

// Identity returns a stage that passes every item through unchanged.
func Identity[T any]() Stage[T, T] {
	return func(src Stream[T]) Stream[T] { return src }
}

// Drain pulls every item from src into dst. The context is checked between
// items. The sink is closed only when src ends with io.EOF; on any error it is
// abandoned so that no partially written output gets finalized.
func Drain[T any](ctx context.Context, src Stream[T], dst Sink[T]) (err error) {
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close source: %w", cerr)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		item, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if err := dst.Write(item); err != nil {
			return err
		}
	}

	if err := dst.Close(); err != nil {
		return fmt.Errorf("close sink: %w", err)
	}

	return nil
}

// Collect drains src into a slice.
func Collect[T any](src Stream[T]) ([]T, error) {
	var out []T
	sink := SinkFunc[T](func(item T) error {
		out = append(out, item)
		return nil
	})
	if err := Drain(context.Background(), src, sink); err != nil {
		return out, err
	}
	return out, nil
}

// SinkFunc adapts a function to a Sink with a no-op Close.
type SinkFunc[T any] func(item T) error

func (f SinkFunc[T]) Write(item T) error { return f(item) }
func (f SinkFunc[T]) Close() error       { return nil }
