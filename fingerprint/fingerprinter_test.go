package fingerprint

import (
	"math"
	"testing"
)

func sineWave(n int, sampleRate, freq float64) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(10000 * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
	}
	return out
}

func TestFingerprinterEmptyInputYieldsEmptyFingerprint(t *testing.T) {
	fp := New(44100)
	fp.Finish()

	if got := fp.Fingerprint(); len(got) != 0 {
		t.Errorf("expected empty fingerprint, got %d entries", len(got))
	}

	compressed := fp.CompressedFingerprint()
	if len(compressed) != 4 {
		t.Fatalf("expected a bare 4-byte header, got %d bytes", len(compressed))
	}
	if compressed[1] != 0 || compressed[2] != 0 || compressed[3] != 0 {
		t.Errorf("expected zero-length header, got %v", compressed)
	}
}

func TestFingerprinterIsDeterministic(t *testing.T) {
	samples := sineWave(44100*2, 44100, 440)

	run := func() []uint32 {
		fp := New(44100)
		fp.Feed(samples[:20000])
		fp.Feed(samples[20000:])
		fp.Finish()
		return fp.Fingerprint()
	}

	a, b := run(), run()
	if len(a) == 0 {
		t.Fatal("expected a non-empty fingerprint for two seconds of audio")
	}
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("sub-fingerprint %d differs across runs: %d != %d", i, a[i], b[i])
		}
	}
}

func TestFingerprinterEncodeProducesURLSafeText(t *testing.T) {
	fp := New(44100)
	fp.Feed(sineWave(44100, 44100, 440))
	fp.Finish()

	text := fp.EncodedFingerprint()
	if len(text) == 0 {
		t.Fatal("expected non-empty encoded text")
	}
	for _, r := range text {
		if r == '+' || r == '/' || r == '=' {
			t.Errorf("encoded fingerprint contains non-URL-safe character %q", r)
		}
	}

	decoded, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != len(fp.CompressedFingerprint()) {
		t.Errorf("decoded length %d != compressed length %d", len(decoded), len(fp.CompressedFingerprint()))
	}
}

func TestFingerprinterAtNativeRateMatchesFrameCountFormula(t *testing.T) {
	const rate = 11025
	const sampleCount = 4096*4 + 2000

	fp := New(rate)
	fp.Feed(sineWave(sampleCount, rate, 300))
	fp.Finish()

	stride := fftStride
	overlap := FrameSize - stride
	frames := 0
	if sampleCount > overlap {
		frames = (sampleCount-overlap)/stride + 1
	}
	want := frames - 15
	if want < 0 {
		want = 0
	}

	if got := len(fp.Fingerprint()); got != want {
		t.Errorf("got %d sub-fingerprints, want %d (frames=%d)", got, want, frames)
	}
}
