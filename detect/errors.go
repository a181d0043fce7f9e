// SPDX-License-Identifier: EPL-2.0

package detect

import "errors"

var (
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid click detector configuration")
	// ErrChannelOutOfRange is returned when the searched channel does not
	// exist in a snippet.
	ErrChannelOutOfRange = errors.New("search channel out of range")
)
