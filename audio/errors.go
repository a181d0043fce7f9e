// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidChannelCount = errors.New("channel count must be at least 1")
	ErrChannelMismatch     = errors.New("frames must all have the same channel count")
	ErrUnknownFormat       = errors.New("no decoder registered for format")
)
