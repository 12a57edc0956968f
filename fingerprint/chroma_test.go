package fingerprint

import "testing"

func TestFreqToIdx(t *testing.T) {
	if got := freqToIdx(3520, 4096, 11025); got != 1308 {
		t.Errorf("freqToIdx = %d, want 1308", got)
	}
}

func TestChromaHandleFrameOneHot(t *testing.T) {
	cases := []struct {
		name string
		bin  int
		want [12]float64
	}{
		{"a", 113, [12]float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"g_sharp", 112, [12]float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}},
		{"b", 64, [12]float64{0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			chroma := newChromaStage(10, 510, 256, 1000)
			frame := make([]float64, 128)
			frame[c.bin] = 1.0

			got := chroma.handleFrame(frame)
			if got != c.want {
				t.Errorf("handleFrame bin %d = %v, want %v", c.bin, got, c.want)
			}
		})
	}
}

func TestNoteFromFreq(t *testing.T) {
	// A440 itself should map to note 0 (A).
	if got := noteFromFreq(440.0); got != 0 {
		t.Errorf("noteFromFreq(440) = %d, want 0", got)
	}
}
