package fingerprint

// Default pipeline constants of the reference algorithm. New always
// runs with these; NewWithParams can override TargetSampleRate,
// MinFreq, MaxFreq and resampleCutoff. The remaining constants are
// fixed for every Fingerprinter.
const (
	TargetSampleRate = 11025
	MinFreq          = 28
	MaxFreq          = 3520

	resampleBlockSize  = 1024 * 32
	resampleFilterSize = 16
	resamplePhaseShift = 8
	resampleCutoff     = 0.8

	// fftStride is the hop, in resampled samples, between consecutive
	// FFT frames: FrameSize/3, giving a 2/3 overlap between frames.
	fftStride = FrameSize / 3
)

// Fingerprinter consumes mono 16-bit PCM at an arbitrary sample rate and
// incrementally produces Chromaprint-compatible 32-bit sub-fingerprints.
// It is not safe for concurrent use; run one instance per stream.
type Fingerprinter struct {
	inputSlicer *Slicer[int16]
	resampler   *Resampler
	fft         *fftStage
	chroma      *chromaStage
	chromaFltr  *chromaFilterStage
	calc        *calculatorStage

	subfingerprints []uint32
}

// Params overrides the pipeline's fixed constants. A zero-value field
// falls back to the package default it shadows (TargetSampleRate,
// MinFreq, MaxFreq, and the resampler's cutoff, respectively).
type Params struct {
	TargetSampleRate int
	MinFreq          int
	MaxFreq          int
	ResampleCutoff   float64
}

// New constructs a Fingerprinter for a stream sampled at sampleRate Hz,
// running the pipeline at its fixed default constants. sampleRate must
// be positive.
func New(sampleRate int) *Fingerprinter {
	return NewWithParams(sampleRate, Params{})
}

// NewWithParams is New, but lets a caller override the pipeline's
// tunable constants (e.g. from internal/config) instead of running the
// fixed defaults.
func NewWithParams(sampleRate int, p Params) *Fingerprinter {
	if sampleRate <= 0 {
		panic("fingerprint: sample rate must be positive")
	}

	targetSampleRate := p.TargetSampleRate
	if targetSampleRate == 0 {
		targetSampleRate = TargetSampleRate
	}
	minFreq := p.MinFreq
	if minFreq == 0 {
		minFreq = MinFreq
	}
	maxFreq := p.MaxFreq
	if maxFreq == 0 {
		maxFreq = MaxFreq
	}
	cutoff := p.ResampleCutoff
	if cutoff == 0 {
		cutoff = resampleCutoff
	}

	return &Fingerprinter{
		inputSlicer: NewSlicer[int16](resampleBlockSize, resampleBlockSize),
		resampler:   NewResampler(targetSampleRate, sampleRate, resampleFilterSize, resamplePhaseShift, cutoff),
		fft:         newFFTStage(fftStride),
		chroma:      newChromaStage(minFreq, maxFreq, FrameSize, targetSampleRate),
		chromaFltr:  newChromaFilterStage(chromaFilterTaps[:]),
		calc:        newCalculatorStage(defaultClassifiers),
	}
}

// Feed pushes mono PCM samples through the pipeline. It may be called
// any number of times with arbitrarily sized chunks.
func (f *Fingerprinter) Feed(pcm []int16) {
	f.inputSlicer.Process(pcm, func(block []int16) {
		f.resampleAndConsume(block)
	})
}

// Finish flushes any buffered samples through the pipeline. After
// Finish, Fingerprint and Compress reflect the complete stream fed so
// far; Feed must not be called again on the same instance.
func (f *Fingerprinter) Finish() {
	if tail := f.inputSlicer.Flush(); len(tail) > 0 {
		f.resampleAndConsume(tail)
	}
}

func (f *Fingerprinter) resampleAndConsume(block []int16) {
	dst := make([]int16, resampleBlockSize)
	_, produced := f.resampler.Resample(block, dst)
	dst = dst[:produced]

	f.fft.consume(dst, func(spectrum [PowerSpectrumSize]float64) {
		features := f.chroma.handleFrame(spectrum[:])
		smoothed, ok := f.chromaFltr.handleFeatures(features)
		if !ok {
			return
		}
		normalized := normalizeChroma(smoothed)
		f.consumeChroma(normalized)
	})
}

func (f *Fingerprinter) consumeChroma(row [12]float64) {
	if subfp, ok := f.calc.consume(row); ok {
		f.subfingerprints = append(f.subfingerprints, subfp)
	}
}

// Fingerprint returns the sub-fingerprints computed so far. The
// returned slice is owned by the Fingerprinter and must not be
// retained past the next call to Feed or Finish.
func (f *Fingerprinter) Fingerprint() []uint32 {
	return f.subfingerprints
}

// fingerprintAlgorithm is the algorithm ID embedded in the compressed
// header by CompressedFingerprint.
const fingerprintAlgorithm = 1

// CompressedFingerprint returns the delta+gap-coded compressed byte
// representation of the sub-fingerprints computed so far.
func (f *Fingerprinter) CompressedFingerprint() []byte {
	return Compress(f.subfingerprints, fingerprintAlgorithm)
}

// EncodedFingerprint returns the URL-safe, unpadded base64 text
// encoding of the compressed fingerprint.
func (f *Fingerprinter) EncodedFingerprint() string {
	return Encode(f.CompressedFingerprint())
}
