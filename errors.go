// SPDX-License-Identifier: EPL-2.0

package clicksplat

import "errors"

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")
