package fingerprint

import "math"

// haarFilter is one of six rectangular subimage-difference filters
// evaluated against a rollingIntegralImage. It compares the summed
// energy of one subregion against another, producing a single scalar
// per row offset x.
type haarFilter struct {
	typeID int
	y      int
	height int
	width  int
}

func newHaarFilter(typeID, y, height, width int) haarFilter {
	return haarFilter{typeID: typeID, y: y, height: height, width: width}
}

// apply evaluates the filter at row x of image, returning
// log((1+a)/(1+b)) of the two subregion sums a and b it compares.
func (f haarFilter) apply(image *rollingIntegralImage, x int) float64 {
	var a, b float64
	switch f.typeID {
	case 0:
		a, b = haarRect0(image, x, f.y, f.width, f.height)
	case 1:
		a, b = haarRect1(image, x, f.y, f.width, f.height)
	case 2:
		a, b = haarRect2(image, x, f.y, f.width, f.height)
	case 3:
		a, b = haarRect3(image, x, f.y, f.width, f.height)
	case 4:
		a, b = haarRect4(image, x, f.y, f.width, f.height)
	case 5:
		a, b = haarRect5(image, x, f.y, f.width, f.height)
	}
	return subtractLog(a, b)
}

func subtractLog(a, b float64) float64 {
	return math.Log((1.0 + a) / (1.0 + b))
}

// haarRect0 is a single solid block.
func haarRect0(image *rollingIntegralImage, x, y, w, h int) (float64, float64) {
	return image.area(x, y, x+w, y+h), 0.0
}

// haarRect1 splits the block in half along rows: bottom half vs top half.
func haarRect1(image *rollingIntegralImage, x, y, w, h int) (float64, float64) {
	h2 := h / 2
	return image.area(x, y+h2, x+w, y+h), image.area(x, y, x+w, y+h2)
}

// haarRect2 splits the block in half along columns: right half vs left half.
func haarRect2(image *rollingIntegralImage, x, y, w, h int) (float64, float64) {
	w2 := w / 2
	return image.area(x+w2, y, x+w, y+h), image.area(x, y, x+w2, y+h)
}

// haarRect3 compares diagonal quadrants.
func haarRect3(image *rollingIntegralImage, x, y, w, h int) (float64, float64) {
	w2, h2 := w/2, h/2
	a := image.area(x, y+h2, x+w2, y+h) + image.area(x+w2, y, x+w, y+h2)
	b := image.area(x, y, x+w2, y+h2) + image.area(x+w2, y+h2, x+w, y+h)
	return a, b
}

// haarRect4 compares a middle band of h/2 columns (starting h/2 in)
// against the columns on either side of it. The band is h/2 wide, not
// h/3, so it is a true third only when h is 3.
func haarRect4(image *rollingIntegralImage, x, y, w, h int) (float64, float64) {
	h3 := h / 2
	a := image.area(x, y+h3, x+w, y+2*h3)
	b := image.area(x, y, x+w, y+h3) + image.area(x, y+2*h3, x+w, y+h)
	return a, b
}

// haarRect5 compares a middle band of w/2 rows (starting w/2 in)
// against the rows on either side of it. The band is w/2 wide, not
// w/3, so it is a true third only when w is 3.
func haarRect5(image *rollingIntegralImage, x, y, w, h int) (float64, float64) {
	w3 := w / 2
	a := image.area(x+w3, y, x+2*w3, y+h)
	b := image.area(x, y, x+w3, y+h) + image.area(x+2*w3, y, x+w, y+h)
	return a, b
}

// quantizer maps a scalar filter response onto a 2-bit code using three
// ascending thresholds.
type quantizer struct {
	t0, t1, t2 float64
}

func newQuantizer(t0, t1, t2 float64) quantizer {
	return quantizer{t0: t0, t1: t1, t2: t2}
}

func (q quantizer) quantize(value float64) uint8 {
	if value < q.t1 {
		if value < q.t0 {
			return 0
		}
		return 1
	}
	if value < q.t2 {
		return 2
	}
	return 3
}
