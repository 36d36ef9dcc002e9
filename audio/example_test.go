// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/internal/audiotest"
)

// Example_resampler demonstrates how to use the Resampler to change sample rates.
func Example_resampler() {
	// 1 second of a 440 Hz tone at 48 kHz
	source := audiotest.NewSineSource(48000, 1, 48000, 440.0)

	resampler := audio.NewResampler(source, 16000)
	fmt.Printf("Output sample rate: %d Hz\n", resampler.Format().SampleRate)

	buf := make([]float32, 4096)
	total := 0
	for {
		n, err := resampler.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	fmt.Printf("Total samples read: %d\n", total)
	// Output:
	// Output sample rate: 16000 Hz
	// Total samples read: 16000
}

// Example_channelMixer converts stereo to mono.
func Example_channelMixer() {
	source := audiotest.NewSineSource(16000, 2, 16000, 440.0)
	mono := audio.NewMonoMixer(source)

	fmt.Printf("Input channels: %d\n", source.Format().NumChannels)
	fmt.Printf("Output channels: %d\n", mono.Format().NumChannels)

	buf := make([]float32, 100)
	n, _ := mono.ReadSamples(buf)
	fmt.Printf("Read %d mono samples\n", n)
	// Output:
	// Input channels: 2
	// Output channels: 1
	// Read 100 mono samples
}

// Example_frameReader cuts a stream into 10 ms frames.
func Example_frameReader() {
	// 250 ms of stereo at 44.1 kHz
	source := audiotest.NewSineSource(44100, 2, 11025, 440.0)

	fr, err := audio.NewFrameReader(source, 16000, 1)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	frame := make([]int16, fr.Samples())
	frames := 0
	for {
		if _, err := fr.ReadFrame(frame); err != nil {
			break
		}
		frames++
	}

	fmt.Printf("Samples per frame: %d\n", fr.Samples())
	fmt.Printf("Frames: %d\n", frames)
	// Output:
	// Samples per frame: 160
	// Frames: 25
}
