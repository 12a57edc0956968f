package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/thesyncim/gopus"
)

// Opus decodes a stream of length-prefixed Opus packets (each packet
// preceded by a big-endian uint32 byte length) into mono 16-bit PCM.
// This package does not parse a real container format itself; no
// Ogg/WebM demuxer exists anywhere in this repo's dependency set, so a
// bare length-prefixed packet stream is the input convention instead —
// the caller is responsible for producing one (e.g. by demuxing an
// Ogg file upstream and re-framing the packets this way).
func Opus(r io.Reader, sampleRate, channels int) (Result, error) {
	dec, err := gopus.NewDecoder(sampleRate, channels)
	if err != nil {
		return Result{}, fmt.Errorf("decode: new opus decoder: %w", err)
	}

	// 120ms is the largest frame Opus permits at 48kHz; oversize the
	// scratch buffer so Decode never needs to grow it mid-stream.
	scratch := make([]int16, sampleRate*channels*120/1000)

	var interleaved []int16
	var lengthBuf [4]byte
	for i := 0; ; i++ {
		if _, err := io.ReadFull(r, lengthBuf[:]); err != nil {
			if err == io.EOF {
				break
			}
			return Result{}, fmt.Errorf("decode: opus packet %d length: %w", i, err)
		}

		packet := make([]byte, binary.BigEndian.Uint32(lengthBuf[:]))
		if _, err := io.ReadFull(r, packet); err != nil {
			return Result{}, fmt.Errorf("decode: opus packet %d body: %w", i, err)
		}

		n, err := dec.Decode(packet, scratch)
		if err != nil {
			return Result{}, fmt.Errorf("decode: opus packet %d: %w", i, err)
		}
		interleaved = append(interleaved, scratch[:n*channels]...)
	}

	return Result{
		Samples:    downmix(interleaved, channels),
		SampleRate: sampleRate,
	}, nil
}
