package decode

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV decodes a PCM .wav file into mono 16-bit samples, down-mixing any
// additional channels.
func WAV(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("decode: open %s: %w", path, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return Result{}, errUnsupportedFormat("wav", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return Result{}, fmt.Errorf("decode: %s: read pcm: %w", path, err)
	}

	samples := intBufferToInt16(buf)
	return Result{
		Samples:        downmix(samples, buf.Format.NumChannels),
		SampleRate: buf.Format.SampleRate,
	}, nil
}

// intBufferToInt16 rescales go-audio's generic int samples (whatever
// the source bit depth) down to int16, the width every stage in the
// fingerprint pipeline expects.
func intBufferToInt16(buf *audio.IntBuffer) []int16 {
	shift := uint(buf.SourceBitDepth) - 16
	out := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		if shift > 0 && shift < 32 {
			v >>= shift
		}
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		out[i] = int16(v)
	}
	return out
}
