// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile      = errors.New("not a WAV file")
	ErrNotPCM          = errors.New("only PCM WAV is supported")
	ErrInvalidChannels = errors.New("channel count must be positive")
)
