// SPDX-License-Identifier: EPL-2.0

package audproc

import "errors"

var (
	ErrNilProcessor = errors.New("audio processing wrapper is nil")
	ErrNilSource    = errors.New("capture source is nil")
)
