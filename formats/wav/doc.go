// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding and the streaming Writer use github.com/go-audio/wav.
//
// # Supported Formats
//
//   - Integer PCM at 16, 24 or 32 bits
//   - Any channel count and sample rate
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Samples come back as float32 in [-1.0, 1.0) whatever the file's bit
// depth.
//
// # Writing WAV Files
//
// WriteWAV16 writes a whole file to any io.Writer:
//
//	err := wav.WriteWAV16(w, 16000, 1, samples)
//
// Writer streams to an io.WriteSeeker, such as an *os.File, and fixes the
// header sizes on Close:
//
//	out, _ := os.Create("output.wav")
//	w, err := wav.NewWriter(out, 16000, 2)
//	for ... {
//	    w.Write(frame)
//	}
//	w.Close()
//
// # Error Handling
//
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrNotPCM: the data is compressed or floating point
//   - audio.ErrUnsupportedBitDepth: 8-bit or another unusual depth
package wav
