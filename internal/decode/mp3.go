package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// MP3 decodes an MP3 file into mono 16-bit samples. go-mp3 always
// yields interleaved 16-bit little-endian stereo, so this always
// down-mixes two channels regardless of the source track's own
// channel count.
func MP3(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("decode: open %s: %w", path, err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return Result{}, fmt.Errorf("decode: %s: %w", path, err)
	}

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return Result{}, fmt.Errorf("decode: %s: read: %w", path, err)
	}

	frames := len(raw) / 4
	interleaved := make([]int16, frames*2)
	for i := 0; i < frames; i++ {
		interleaved[i*2] = int16(binary.LittleEndian.Uint16(raw[i*4:]))
		interleaved[i*2+1] = int16(binary.LittleEndian.Uint16(raw[i*4+2:]))
	}

	return Result{
		Samples:        downmix(interleaved, 2),
		SampleRate: decoder.SampleRate(),
	}, nil
}
