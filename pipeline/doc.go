// SPDX-License-Identifier: EPL-2.0

// Package pipeline provides lazy, pull-based streams and the combinators used
// to wire audio processing stages together.
//
// A Stream yields items one at a time through Next and signals the end with
// io.EOF. A Stage is a function from one stream to another; applying a Stage
// builds a new instance with its own state, which is what lets SubPipeline run
// a full chain once per item. A Sink is the consuming end and is finalized by
// Close once the stream ends normally.
//
//	stage := pipeline.Chain(pipeline.Every[int](2), pipeline.Group[int](3))
//	batches, err := pipeline.Collect(stage(pipeline.FromSlice(1, 2, 3, 4, 5, 6, 7)))
//	// batches == [[2 4 6]]
//
// Backpressure is implicit: nothing is computed until a consumer pulls.
package pipeline
