// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("invalid dst size")
	ErrUnknownFormat   = errors.New("no decoder registered for format")
	ErrInvalidFormat   = errors.New("invalid stream format")
	ErrInvalidChannels = errors.New("channel count must be positive")
	ErrInvalidRate     = errors.New("sample rate must be positive")

	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)
