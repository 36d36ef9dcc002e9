// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides generated audio sources for tests.
package audiotest

import (
	"errors"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
)

// ErrMockRead is returned by sources built with NewFailingSource.
var ErrMockRead = errors.New("mock read failure")

// MockSource generates audio frame by frame from a waveform function. It
// satisfies audio.Source without importing the package.
type MockSource struct {
	format       *goaudio.Format
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32

	failAfter int // frames; negative disables
	closed    bool
}

// NewMockSource creates a source of totalSamples frames.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		format:       &goaudio.Format{SampleRate: sampleRate, NumChannels: channels},
		totalSamples: totalSamples,
		waveform:     waveform,
		failAfter:    -1,
	}
}

func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// NewFailingSource returns a silent source that fails with ErrMockRead
// once frames frames have been read.
func NewFailingSource(sampleRate, channels, frames int) *MockSource {
	m := NewSilentSource(sampleRate, channels, math.MaxInt32)
	m.failAfter = frames
	return m
}

func (m *MockSource) Format() *goaudio.Format { return m.format }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAfter >= 0 && m.generated >= m.failAfter {
		return 0, ErrMockRead
	}
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	channels := m.format.NumChannels
	frames := min(len(dst)/channels, m.totalSamples-m.generated)
	if m.failAfter >= 0 {
		frames = min(frames, m.failAfter-m.generated)
	}

	for f := range frames {
		for ch := range channels {
			dst[f*channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}
