// SPDX-License-Identifier: EPL-2.0

package passthrough

// Status codes returned by processing calls.
const (
	StatusOK                     = 0
	StatusNullPointer            = -5
	StatusBadSampleRate          = -7
	StatusBadDataLength          = -8
	StatusBadNumberChannels      = -9
	StatusBadStreamParameterWarn = -13
)

const (
	minSampleRate = 8000
	maxSampleRate = 384000
	maxChannels   = 8

	maxStreamDelayMs = 500
)
