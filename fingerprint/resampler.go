package fingerprint

import "math"

// Resampler performs polyphase integer-ratio resampling, the same
// algorithm family used by libavresample/FFmpeg. It converts a stream
// sampled at inRate into one sampled at outRate, holding its phase
// accumulator across calls so a stream can be fed in arbitrarily sized
// chunks.
//
// A Resampler is not safe for concurrent use.
type Resampler struct {
	phaseShift int
	phaseMask  int32
	filterLen  int
	bank       []int16 // (phaseCount+1) * filterLen, row-major

	srcIncr int64
	dstIncr int64

	index int64
	frac  int64
}

const filterShift = 15

// NewResampler builds the polyphase filter bank for converting from
// inRate to outRate. filterSize and phaseShift determine the filter
// bank's resolution (phaseCount = 1<<phaseShift); cutoff is the
// fraction of the Nyquist frequency below which the anti-aliasing
// filter passes unattenuated.
func NewResampler(outRate, inRate, filterSize, phaseShift int, cutoff float64) *Resampler {
	if inRate <= 0 || outRate <= 0 {
		panic("fingerprint: resampler rates must be positive")
	}

	phaseCount := 1 << uint(phaseShift)
	factor := math.Min(1.0, float64(outRate)*cutoff/float64(inRate))
	filterLen := int(math.Ceil(float64(filterSize) / factor))
	if filterLen < 1 {
		filterLen = 1
	}

	bank := buildFilterBank(factor, filterLen, phaseCount)

	r := &Resampler{
		phaseShift: phaseShift,
		phaseMask:  int32(phaseCount - 1),
		filterLen:  filterLen,
		bank:       bank,
		srcIncr:    int64(outRate),
		dstIncr:    int64(inRate) * int64(phaseCount),
	}
	r.index = -int64(phaseCount) * int64(filterLen-1) / 2
	return r
}

// buildFilterBank computes a (phaseCount+1) x filterLen table of
// windowed-sinc coefficients, one row per phase, each row normalized
// to sum to 1<<15 and clipped to int16. The reference implementation
// this is ported from has a transcription bug that writes every tap of
// a phase into a single slot (`phase*tapCount + 1` instead of
// `phase*tapCount + i`); that bug is not reproduced here.
func buildFilterBank(factor float64, filterLen, phaseCount int) []int16 {
	bank := make([]int16, (phaseCount+1)*filterLen)
	center := float64(filterLen-1) / 2
	tab := make([]float64, filterLen)

	for phase := 0; phase < phaseCount; phase++ {
		norm := 0.0
		for i := 0; i < filterLen; i++ {
			x := math.Pi * (float64(i) - center - float64(phase)/float64(phaseCount)) * factor
			var sinc float64
			if x == 0 {
				sinc = 1
			} else {
				sinc = math.Sin(x) / x
			}

			w := 2 * x / (factor * float64(filterLen) * math.Pi)
			tap := sinc * besselI0(9*math.Sqrt(math.Max(0, 1-w*w)))
			tab[i] = tap
			norm += tap
		}

		for i := 0; i < filterLen; i++ {
			v := int32(math.Floor(tab[i] * float64(int32(1)<<15) / norm))
			bank[phase*filterLen+i] = clipInt16(v)
		}
	}

	// Ring extension: duplicate the last computed phase so phase
	// lookups never need a bounds check at the top of the ring.
	lastRow := bank[(phaseCount-1)*filterLen : phaseCount*filterLen]
	copy(bank[phaseCount*filterLen:], lastRow)

	return bank
}

// besselI0 computes the modified Bessel function of the first kind,
// order zero, by summing its power series until the partial sum
// reaches a fixed point.
func besselI0(x float64) float64 {
	x = x * x / 4
	v, lastV, t := 1.0, 0.0, 1.0
	for i := 1; v != lastV; i++ {
		lastV = v
		t *= x / float64(i*i)
		v += t
	}
	return v
}

func clipInt16(v int32) int16 {
	switch {
	case v < math.MinInt16:
		return math.MinInt16
	case v > math.MaxInt16:
		return math.MaxInt16
	default:
		return int16(v)
	}
}

// Resample converts as much of src as the filter bank allows into dst,
// returning the number of src samples consumed and the number of dst
// samples produced. When src doesn't have enough trailing context to
// compute another output sample, Resample stops early; the caller is
// expected to retain src[consumed:] and prepend it to the next chunk.
func (r *Resampler) Resample(src []int16, dst []int16) (consumed, produced int) {
	srcLen := int64(len(src))

	for produced < len(dst) {
		sampleIndex := r.index >> uint(r.phaseShift)
		phase := int32(r.index) & r.phaseMask

		if sampleIndex+int64(r.filterLen) > srcLen {
			break
		}

		filter := r.bank[int64(phase)*int64(r.filterLen) : int64(phase)*int64(r.filterLen)+int64(r.filterLen)]

		var val int32
		if sampleIndex < 0 {
			for i := 0; i < r.filterLen; i++ {
				reflected := sampleIndex + 1 + int64(i)
				if reflected < 0 {
					reflected = -reflected
				}
				val += int32(src[reflected%srcLen]) * int32(filter[i])
			}
		} else {
			for i := 0; i < r.filterLen; i++ {
				val += int32(src[sampleIndex+int64(i)]) * int32(filter[i])
			}
		}

		val = (val + (1 << (filterShift - 1))) >> filterShift
		dst[produced] = clipInt16(val)
		produced++

		r.frac += r.dstIncr % r.srcIncr
		r.index += r.dstIncr / r.srcIncr
		if r.frac >= r.srcIncr {
			r.frac -= r.srcIncr
			r.index++
		}
	}

	if r.index > 0 {
		consumed = int(r.index >> uint(r.phaseShift))
	}
	if r.index >= 0 {
		r.index &= int64(r.phaseMask)
	}

	return consumed, produced
}
