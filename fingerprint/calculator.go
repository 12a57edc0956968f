package fingerprint

// filterWidth is the number of rows of chroma history each classifier's
// filter reaches back over; a sub-fingerprint can only be produced once
// at least this many rows have accumulated.
const filterWidth = 16

// integralImageRows is the rolling window's row capacity: deep enough
// that every classifier's filter, which reaches back at most
// filterWidth rows, always has its full history available.
const integralImageRows = 256

// calculatorStage turns a stream of (smoothed, normalized) chroma rows
// into a stream of 32-bit sub-fingerprints, one per row once enough
// history has accumulated.
type calculatorStage struct {
	classifiers [16]classifier
	image       *rollingIntegralImage
}

func newCalculatorStage(classifiers [16]classifier) *calculatorStage {
	return &calculatorStage{
		classifiers: classifiers,
		image:       newRollingIntegralImage(integralImageRows),
	}
}

// consume adds one chroma row to the rolling image and returns the
// resulting sub-fingerprint once the image holds enough rows.
func (c *calculatorStage) consume(features [12]float64) (subfp uint32, ok bool) {
	c.image.addRow(features)
	if c.image.rowCount() < filterWidth {
		return 0, false
	}
	return c.calculateSubfingerprint(), true
}

func (c *calculatorStage) calculateSubfingerprint() uint32 {
	var bits uint32
	offset := c.image.rowCount() - filterWidth

	for _, cl := range c.classifiers {
		code := grayCode(cl.quantizer.quantize(cl.filter.apply(c.image, offset)))
		bits = (bits << 2) | uint32(code)
	}
	return bits
}
