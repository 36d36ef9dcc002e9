// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives that feed an audio
// processing engine.
//
// This package contains:
//   - Source interface for decoded audio
//   - Resampler for sample rate conversion
//   - ChannelMixer for changing the channel count
//   - FrameReader for cutting a stream into 10 ms int16 frames
//   - PCMSource for samples already in memory
//   - Registry for decoders, keyed by format and file extension
//
// # Source Interface
//
//	type Source interface {
//	    Format() *goaudio.Format
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Format is the go-audio format type, so a Source's layout can be handed
// straight to go-audio encoders. Decoders and processors all implement
// Source and chain freely.
//
// # Resampling and Mixing
//
//	resampled := audio.NewResampler(source, 16000)
//	mono := audio.NewMonoMixer(resampled)
//	stereo, err := audio.NewChannelMixer(source, 2)
//
// Down-mixing averages channels; up-mixing repeats them.
//
// # Frames
//
// Processing engines consume exactly 10 ms per call. FrameReader does the
// resampling and mixing needed and returns one frame of interleaved int16
// per call, zero-padding the last one:
//
//	fr, err := audio.NewFrameReader(source, 16000, 1)
//	frame := make([]int16, fr.Samples())
//	for {
//	    n, err := fr.ReadFrame(frame)
//	    if err == io.EOF {
//	        break
//	    }
//	    // frame[:n] came from the source, the rest is padding
//	}
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{}, ".wave")
//	decoder, err := registry.DecoderFor("speech.wav")
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0). Conversion to int16 multiplies by
// 32768 and rounds, so int16 input survives a round trip unchanged.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available, possibly
// together with the last samples. Other errors come from the source.
package audio
