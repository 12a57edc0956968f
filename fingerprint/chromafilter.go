package fingerprint

import "math"

// chromaFilterTaps is the static 5-tap temporal smoothing kernel applied
// across consecutive chroma frames.
var chromaFilterTaps = [5]float64{0.25, 0.75, 1.0, 0.75, 0.25}

// chromaFilterStage smooths a stream of 12-dimensional chroma vectors
// with a short FIR kernel, using a small ring buffer so the whole
// history need not be retained.
type chromaFilterStage struct {
	taps   []float64
	buffer [8][12]float64
	offset int
	size   int
}

func newChromaFilterStage(taps []float64) *chromaFilterStage {
	return &chromaFilterStage{taps: taps, size: 1}
}

// handleFeatures pushes one chroma frame into the ring buffer and, once
// enough history has accumulated, returns the smoothed frame centered
// len(taps)/2 frames in the past. The first len(taps)-1 calls return
// ok=false while the buffer fills.
func (f *chromaFilterStage) handleFeatures(features [12]float64) (out [12]float64, ok bool) {
	f.buffer[f.offset] = features
	f.offset = (f.offset + 1) % 8

	if f.size < len(f.taps) {
		f.size++
		return out, false
	}

	base := (f.offset + 8 - len(f.taps)) % 8
	for i := 0; i < 12; i++ {
		for j, tap := range f.taps {
			out[i] += f.buffer[(base+j)%8][i] * tap
		}
	}
	return out, true
}

// normalizeChroma L2-normalizes a chroma vector, collapsing it to all
// zeros when its norm falls below the noise floor of 0.01.
func normalizeChroma(vector [12]float64) [12]float64 {
	norm := euclideanNorm(vector)
	if norm < 0.01 {
		return [12]float64{}
	}
	for i := range vector {
		vector[i] /= norm
	}
	return vector
}

func euclideanNorm(vector [12]float64) float64 {
	squares := 0.0
	for _, v := range vector {
		squares += v * v
	}
	if squares <= 0 {
		return 0
	}
	return math.Sqrt(squares)
}
