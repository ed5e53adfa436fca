package parallel

// MinBandHeight is the smallest number of rows worth a separate task.
const MinBandHeight = 16

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Height returns the number of rows in b.
func (b Band) Height() int { return b.Y1 - b.Y0 }

// Contains reports whether row y lies in b.
func (b Band) Contains(y int) bool { return y >= b.Y0 && y < b.Y1 }

// Split divides height rows into at most n bands of near equal height,
// none shorter than MinBandHeight unless the whole target is.
func Split(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	n = max(1, min(n, height/MinBandHeight))
	bands := make([]Band, n)
	for i := range n {
		bands[i] = Band{Y0: height * i / n, Y1: height * (i + 1) / n}
	}
	return bands
}
