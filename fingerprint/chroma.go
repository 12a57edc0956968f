package fingerprint

import "math"

// chromaStage projects power-spectrum bins onto the 12 pitch classes
// A..G#. The bin-to-note mapping is precomputed once at construction
// since it depends only on the (frame size, sample rate) pair.
type chromaStage struct {
	minIdx, maxIdx int
	notes          []int
}

func newChromaStage(minFreq, maxFreq, frameSize, sampleRate int) *chromaStage {
	minIdx := maxInt(1, freqToIdx(minFreq, frameSize, sampleRate))
	maxIdx := minInt(frameSize/2, freqToIdx(maxFreq, frameSize, sampleRate))

	notes := make([]int, frameSize/2+1)
	for idx := minIdx; idx < maxIdx; idx++ {
		freq := idxToFreq(idx, frameSize, sampleRate)
		notes[idx] = noteFromFreq(freq)
	}

	return &chromaStage{minIdx: minIdx, maxIdx: maxIdx, notes: notes}
}

// handleFrame projects a power spectrum onto a 12-dimensional chroma
// vector. Bins outside [minIdx, maxIdx) contribute nothing.
func (c *chromaStage) handleFrame(spectrum []float64) [12]float64 {
	var out [12]float64
	for idx := c.minIdx; idx < c.maxIdx; idx++ {
		out[c.notes[idx]] += spectrum[idx]
	}
	return out
}

// freqToIdx converts a frequency in Hz to the nearest FFT bin index
// for a transform of the given frame size and sample rate.
func freqToIdx(freq, frameSize, sampleRate int) int {
	sizePerFrequency := float64(frameSize) / float64(sampleRate)
	return int(math.Round(float64(freq) * sizePerFrequency))
}

// idxToFreq converts an FFT bin index back to a frequency in Hz.
func idxToFreq(idx, frameSize, sampleRate int) float64 {
	frequencyPerSize := float64(sampleRate) / float64(frameSize)
	return float64(idx) * frequencyPerSize
}

// noteFromFreq maps a frequency to a pitch class in [0, 12): 0 is A,
// 11 is G#.
func noteFromFreq(freq float64) int {
	octave := math.Log2(freq / (440.0 / 16.0))
	return int(12 * (octave - math.Floor(octave)))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
