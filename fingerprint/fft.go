package fingerprint

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// FrameSize is the length, in samples, of each windowed FFT frame.
const FrameSize = 4096

// PowerSpectrumSize is the length of the one-sided power spectrum
// produced from an FFT frame of size FrameSize (FrameSize/2 + 1).
const PowerSpectrumSize = FrameSize/2 + 1

// fftStage slides a Hamming-windowed FFT of size FrameSize over the
// resampled stream and folds each frame into a one-sided power
// spectrum.
type fftStage struct {
	slicer *Slicer[int16]
	window [FrameSize]float64
}

func newFFTStage(stride int) *fftStage {
	s := &fftStage{slicer: NewSlicer[int16](FrameSize, stride)}
	for n := 0; n < FrameSize; n++ {
		s.window[n] = (1.0 / math.MaxInt16) * (0.54 - 0.46*math.Cos(2*math.Pi*float64(n)/float64(FrameSize-1)))
	}
	return s
}

// consume feeds resampled PCM through the frame slicer, invoking emit
// with a freshly computed power spectrum for every complete frame.
func (s *fftStage) consume(samples []int16, emit func([PowerSpectrumSize]float64)) {
	s.slicer.Process(samples, func(frame []int16) {
		emit(s.transform(frame))
	})
}

func (s *fftStage) transform(frame []int16) [PowerSpectrumSize]float64 {
	windowed := make([]float64, FrameSize)
	for n, sample := range frame {
		windowed[n] = float64(sample) * s.window[n]
	}

	spectrum := fft.FFTReal(windowed)

	var out [PowerSpectrumSize]float64
	for k := 0; k < PowerSpectrumSize; k++ {
		re, im := real(spectrum[k]), imag(spectrum[k])
		out[k] = re*re + im*im
	}
	return out
}
