// SPDX-License-Identifier: EPL-2.0

package detect

import "math"

// Level is a sliding window over the most recent values of a signal. It
// tracks the mean absolute value of the window and how much that mean moved
// with the last value added.
type Level struct {
	ring []float64
	pos  int // index of the oldest value
	sum  float64
}

// NewLevel returns a window of size values, all zero. size < 1 is treated
// as 1.
func NewLevel(size int) *Level {
	return &Level{ring: make([]float64, max(size, 1))}
}

// Size of the window.
func (l *Level) Size() int { return len(l.ring) }

// Mean absolute value of the window.
func (l *Level) Mean() float64 { return l.sum / float64(len(l.ring)) }

// Oldest is the value Add will evict next.
func (l *Level) Oldest() float64 { return l.ring[l.pos] }

// Add pushes v, evicting the oldest value, and returns the new mean and its
// change from the mean before the call.
func (l *Level) Add(v float64) (level, roc float64) {
	prev := l.Mean()

	old := l.ring[l.pos]
	l.ring[l.pos] = v
	l.pos = (l.pos + 1) % len(l.ring)
	l.sum += math.Abs(v) - math.Abs(old)
	if l.sum < 0 {
		l.sum = 0
	}

	level = l.Mean()
	return level, level - prev
}

// AppendTo appends the window contents, oldest first, to dst.
func (l *Level) AppendTo(dst []float64) []float64 {
	dst = append(dst, l.ring[l.pos:]...)
	return append(dst, l.ring[:l.pos]...)
}

// Reset zeroes the window.
func (l *Level) Reset() {
	clear(l.ring)
	l.pos = 0
	l.sum = 0
}
