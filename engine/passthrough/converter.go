// SPDX-License-Identifier: EPL-2.0

package passthrough

import (
	"github.com/ik5/audproc/apm"
	"github.com/ik5/audproc/utils"
)

// converter reshapes one chunk from the input layout to the output layout.
// It keeps the last input frame of every channel so consecutive chunks
// interpolate across their boundary.
type converter struct {
	in, out apm.StreamConfig

	history []float32
	primed  bool

	frameIn  []float32
	frameOut []float32
	mixed    [][]float32
	res      [][]float32
}

func (c *converter) reset(in, out apm.StreamConfig) {
	c.in, c.out = in, out
	c.history = make([]float32, out.Channels)
	c.primed = false

	c.frameIn = make([]float32, in.Channels)
	c.frameOut = make([]float32, out.Channels)

	c.mixed = make([][]float32, out.Channels)
	c.res = make([][]float32, out.Channels)
	for ch := range out.Channels {
		c.mixed[ch] = make([]float32, in.Frames())
		c.res[ch] = make([]float32, out.Frames())
	}
}

// convert maps src to per-channel output frames on the int16 scale.
func (c *converter) convert(src []int16, in, out apm.StreamConfig) [][]float32 {
	if in != c.in || out != c.out {
		c.reset(in, out)
	}

	inFrames := in.Frames()
	for f := range inFrames {
		for k := range in.Channels {
			c.frameIn[k] = float32(src[f*in.Channels+k])
		}
		utils.MixFrame(c.frameOut, c.frameIn)
		for ch, v := range c.frameOut {
			c.mixed[ch][f] = v
		}
	}

	if !c.primed {
		for ch := range out.Channels {
			c.history[ch] = c.mixed[ch][0]
		}
		c.primed = true
	}

	if in.SampleRate == out.SampleRate {
		for ch := range out.Channels {
			copy(c.res[ch], c.mixed[ch])
			c.history[ch] = c.mixed[ch][inFrames-1]
		}
		return c.res
	}

	ratio := float64(inFrames) / float64(out.Frames())
	for ch := range out.Channels {
		for f := range c.res[ch] {
			c.res[ch][f] = utils.CubicAt(c.mixed[ch], c.history[ch], float64(f)*ratio)
		}
		c.history[ch] = c.mixed[ch][inFrames-1]
	}

	return c.res
}
