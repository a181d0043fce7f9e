// SPDX-License-Identifier: EPL-2.0

// Package detect finds transients ("clicks") in a stream of snippets.
//
// A sliding window of the last SmoothingSize absolute values of one channel
// gives a level (the window mean) and its rate of change between two
// samples. When the rate of change exceeds RocThreshold while the level
// exceeds LevelThreshold a capture begins. The capture holds the
// SmoothingSize samples preceding the trigger followed by the trigger sample
// and its successors, and is emitted as a mono snippet once it holds
// CaptureLength+1 values. Triggers are ignored while a capture is running; a
// capture still running when the stream ends is discarded.
package detect
