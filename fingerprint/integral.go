package fingerprint

// rollingIntegralImage maintains a rolling 2D prefix sum over a stream
// of 12-column rows, so the sum over any rectangular window of recent
// rows and columns can be computed in O(1) via four-corner subtraction,
// without retaining more than maxRows+1 rows of history.
type rollingIntegralImage struct {
	rows      [][12]float64
	rowsCount int
	empty     bool
}

func newRollingIntegralImage(maxRows int) *rollingIntegralImage {
	return &rollingIntegralImage{rows: make([][12]float64, maxRows+1), empty: true}
}

func (img *rollingIntegralImage) rowCount() int {
	return img.rowsCount
}

// area returns the sum of rows [row1idx, row2idx) and columns
// [col1idx, col2idx) of the logical (unbounded) image. Both row indices
// must fall within the last len(img.rows) rows added.
func (img *rollingIntegralImage) area(row1idx, col1idx, row2idx, col2idx int) float64 {
	if row1idx == row2idx || col1idx == col2idx {
		return 0
	}

	n := len(img.rows)
	if row1idx == 0 {
		row := img.rows[(row2idx-1)%n]
		if col1idx == 0 {
			return row[col2idx-1]
		}
		return row[col2idx-1] - row[col1idx-1]
	}

	row1 := img.rows[(row1idx-1)%n]
	row2 := img.rows[(row2idx-1)%n]
	if col1idx == 0 {
		return row2[col2idx-1] - row1[col2idx-1]
	}
	return row2[col2idx-1] - row1[col2idx-1] - row2[col1idx-1] + row1[col1idx-1]
}

// addRow appends a new row of 12 column values, converting it in place
// to a cumulative-column row and adding the previous row's cumulative
// values so area queries need only subtract two rows.
func (img *rollingIntegralImage) addRow(row [12]float64) {
	n := len(img.rows)
	nextIdx := img.rowsCount % n

	sum := 0.0
	for i := 0; i < 12; i++ {
		sum += row[i]
		img.rows[nextIdx][i] = sum
	}

	if !img.empty {
		lastIdx := (img.rowsCount - 1) % n
		for i := 0; i < 12; i++ {
			img.rows[nextIdx][i] += img.rows[lastIdx][i]
		}
	}

	img.rowsCount++
	img.empty = false
}
