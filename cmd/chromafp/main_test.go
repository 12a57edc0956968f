package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/vividhyeok/chromafp/internal/config"
)

func TestSniffFormat(t *testing.T) {
	cases := map[string]string{
		"song.wav":  "wav",
		"SONG.WAV":  "wav",
		"song.mp3":  "mp3",
		"song.flac": "ffmpeg",
		"song":      "ffmpeg",
	}
	for path, want := range cases {
		if got := sniffFormat(path); got != want {
			t.Errorf("sniffFormat(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFingerprintTextProducesAQAAPrefix(t *testing.T) {
	path := writeTestWAV(t)

	result, err := decodeFile(path, "wav", 48000, 1)
	if err != nil {
		t.Fatalf("decodeFile failed: %v", err)
	}

	text := fingerprintText(result, config.Default())
	if !strings.HasPrefix(text, "AQAA") {
		t.Errorf("fingerprintText = %q, want AQAA (algorithm 1) prefix", text)
	}
}

func writeTestWAV(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, 11025, 16, 1, 1)
	samples := make([]int, 11025)
	for i := range samples {
		samples[i] = (i % 400) - 200
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: 11025, NumChannels: 1},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
