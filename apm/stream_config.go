// SPDX-License-Identifier: EPL-2.0

package apm

import (
	"fmt"

	goaudio "github.com/go-audio/audio"
)

// ChunksPerSecond is the number of processing chunks per second of audio.
// Every processing call handles exactly one 10 ms chunk.
const ChunksPerSecond = 100

// StreamConfig describes the layout of one sample buffer handed to a
// processing call.
type StreamConfig struct {
	SampleRate int `json:"sample_rate"`
	Channels   int `json:"channels"`
}

// NewStreamConfig is a convenience constructor.
func NewStreamConfig(sampleRate, channels int) StreamConfig {
	return StreamConfig{SampleRate: sampleRate, Channels: channels}
}

// StreamConfigFromFormat builds a StreamConfig from a go-audio format.
func StreamConfigFromFormat(f *goaudio.Format) StreamConfig {
	if f == nil {
		return StreamConfig{}
	}
	return StreamConfig{SampleRate: f.SampleRate, Channels: f.NumChannels}
}

// Format returns the go-audio representation of c.
func (c StreamConfig) Format() *goaudio.Format {
	return &goaudio.Format{NumChannels: c.Channels, SampleRate: c.SampleRate}
}

// Frames is the number of frames (samples per channel) in one chunk.
func (c StreamConfig) Frames() int { return c.SampleRate / ChunksPerSecond }

// Samples is the number of interleaved int16 values in one chunk.
func (c StreamConfig) Samples() int { return c.Frames() * c.Channels }

// Bytes is the size in bytes of one chunk of 16-bit PCM.
func (c StreamConfig) Bytes() int { return c.Samples() * 2 }

func (c StreamConfig) Validate() error {
	if c.SampleRate < ChunksPerSecond {
		return fmt.Errorf("sample rate %d: %w", c.SampleRate, ErrInvalidStreamConfig)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("channels %d: %w", c.Channels, ErrInvalidStreamConfig)
	}
	return nil
}

func (c StreamConfig) String() string {
	return fmt.Sprintf("%d Hz/%d ch", c.SampleRate, c.Channels)
}
