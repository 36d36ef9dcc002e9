// SPDX-License-Identifier: EPL-2.0

package audproc_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ik5/audproc"
	"github.com/ik5/audproc/apm"
	_ "github.com/ik5/audproc/engine/passthrough"
	"github.com/ik5/audproc/formats/wav"
)

// Example_process decodes a stereo 48 kHz WAV and runs it through the
// pass-through engine as 16 kHz mono.
func Example_process() {
	samples := make([]int16, 4800*2) // 100 ms stereo
	data := new(bytes.Buffer)
	wav.WriteWAV16(data, 48000, 2, samples)

	src, err := wav.Decoder{}.Decode(data)
	if err != nil {
		fmt.Println("decode:", err)
		return
	}

	ap, _ := apm.NewNamed("passthrough")
	if err := ap.Initialize(); err != nil {
		fmt.Println("initialize:", err)
		return
	}
	defer ap.Dispose()

	res, err := audproc.Process(context.Background(), ap, src, nil, audproc.Options{
		Stream: apm.NewStreamConfig(16000, 1),
	})
	if err != nil {
		fmt.Println("process:", err)
		return
	}

	fmt.Printf("%d frames, %d samples at %s\n", res.Frames, len(res.Output), res.OutStream)
	fmt.Println("failed:", res.FailedFrames)
	// Output:
	// 10 frames, 1600 samples at 16000 Hz/1 ch
	// failed: 0
}

// Example_registry shows decoder lookup by file name.
func Example_registry() {
	reg := audproc.NewRegistry()
	for _, name := range []string{"call.wav", "music.ogg", "voice.aif"} {
		dec, _ := reg.DecoderFor(name)
		fmt.Printf("%s: %T\n", name, dec)
	}
	// Output:
	// call.wav: wav.Decoder
	// music.ogg: vorbis.Decoder
	// voice.aif: aiff.Decoder
}
