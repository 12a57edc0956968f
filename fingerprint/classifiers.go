package fingerprint

// classifier pairs a Haar-like filter with the quantizer that turns its
// scalar response into a 2-bit code.
type classifier struct {
	filter    haarFilter
	quantizer quantizer
}

// defaultClassifiers is the fixed set of 16 (filter, quantizer) pairs
// used to build each 32-bit sub-fingerprint, two bits at a time via
// Gray coding. The coefficients come from the reference fingerprinting
// algorithm and are not meant to be tuned.
var defaultClassifiers = [16]classifier{
	{newHaarFilter(0, 4, 3, 15), newQuantizer(1.98215, 2.35817, 2.63523)},
	{newHaarFilter(4, 4, 6, 15), newQuantizer(-1.03809, -0.651211, -0.282167)},
	{newHaarFilter(1, 0, 4, 16), newQuantizer(-0.298702, 0.119262, 0.558497)},
	{newHaarFilter(3, 8, 2, 12), newQuantizer(-0.105439, 0.0153946, 0.135898)},
	{newHaarFilter(3, 4, 4, 8), newQuantizer(-0.142891, 0.0258736, 0.200632)},
	{newHaarFilter(4, 0, 3, 5), newQuantizer(-0.826319, -0.590612, -0.368214)},
	{newHaarFilter(1, 2, 2, 9), newQuantizer(-0.557409, -0.233035, 0.0534525)},
	{newHaarFilter(2, 7, 3, 4), newQuantizer(-0.0646826, 0.00620476, 0.0784847)},
	{newHaarFilter(2, 6, 2, 16), newQuantizer(-0.192387, -0.029699, 0.215855)},
	{newHaarFilter(2, 1, 3, 2), newQuantizer(-0.0397818, -0.00568076, 0.0292026)},
	{newHaarFilter(5, 10, 1, 15), newQuantizer(-0.53823, -0.369934, -0.190235)},
	{newHaarFilter(3, 6, 2, 10), newQuantizer(-0.124877, 0.0296483, 0.139239)},
	{newHaarFilter(2, 1, 1, 14), newQuantizer(-0.101475, 0.0225617, 0.231971)},
	{newHaarFilter(3, 5, 6, 4), newQuantizer(-0.0799915, -0.00729616, 0.063262)},
	{newHaarFilter(1, 9, 2, 12), newQuantizer(-0.272556, 0.019424, 0.302559)},
	{newHaarFilter(3, 4, 2, 14), newQuantizer(-0.164292, -0.0321188, 0.0846339)},
}

// grayCode maps the four valid 2-bit quantizer outputs (0-3) onto their
// Gray-coded equivalents so adjacent quantizer buckets differ by a
// single bit in the packed sub-fingerprint.
func grayCode(idx uint8) uint8 {
	switch idx {
	case 0:
		return 0
	case 1:
		return 1
	case 2:
		return 3
	case 3:
		return 2
	default:
		return 0
	}
}
