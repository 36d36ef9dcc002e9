// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("audio.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0)
//   - Channels: always 2; mono files are duplicated by the decoder
//   - Sample rate: that of the file
//
// Use audio.NewFrameReader or audio.NewMonoMixer to get the layout an
// engine expects.
//
// # Limitations
//
//   - Decoding only
//   - ReadSamples returns whole stereo frames, so len(dst) should be even
package mp3
