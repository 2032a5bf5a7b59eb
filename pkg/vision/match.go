package vision

import (
	"fmt"
	"image"
	"math"
)

// Matcher locates a small reference pattern inside a larger image and
// reports the best-match position with a confidence score.
type Matcher interface {
	Locate(img, pattern image.Image) (image.Point, float64, error)
}

// NCCMatcher implements Matcher with zero-mean normalized cross-correlation
// over grayscale planes. Confidence is the correlation coefficient of the
// best window, in [-1, 1]; an exact match scores 1.
type NCCMatcher struct{}

func (NCCMatcher) Locate(img, pattern image.Image) (image.Point, float64, error) {
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	pw, ph := pattern.Bounds().Dx(), pattern.Bounds().Dy()
	if pw == 0 || ph == 0 {
		return image.Point{}, 0, fmt.Errorf("empty pattern")
	}
	if pw > iw || ph > ih {
		return image.Point{}, 0, fmt.Errorf("pattern %dx%d larger than image %dx%d", pw, ph, iw, ih)
	}

	ip := grayPlane(img)
	tp := grayPlane(pattern)

	n := float64(pw * ph)
	var sumT, sumT2 float64
	for _, v := range tp {
		sumT += v
		sumT2 += v * v
	}
	meanT := sumT / n
	varT := sumT2 - sumT*sumT/n
	if varT <= 0 {
		return image.Point{}, 0, fmt.Errorf("pattern has no contrast")
	}
	normT := math.Sqrt(varT)

	// Integral images over the plane and its squares so every window's sum
	// and variance come out in O(1).
	ii := integral(ip, iw, ih)
	ii2 := integralSquares(ip, iw, ih)

	best := math.Inf(-1)
	var bestPt image.Point
	for y := 0; y <= ih-ph; y++ {
		for x := 0; x <= iw-pw; x++ {
			sumI := windowSum(ii, iw, x, y, pw, ph)
			sumI2 := windowSum(ii2, iw, x, y, pw, ph)
			varI := sumI2 - sumI*sumI/n
			if varI <= 0 {
				continue // flat window cannot correlate
			}
			var cross float64
			for ty := 0; ty < ph; ty++ {
				irow := (y+ty)*iw + x
				trow := ty * pw
				for tx := 0; tx < pw; tx++ {
					cross += ip[irow+tx] * tp[trow+tx]
				}
			}
			score := (cross - sumI*meanT) / (math.Sqrt(varI) * normT)
			if score > best {
				best = score
				bestPt = image.Pt(x, y)
			}
		}
	}
	if math.IsInf(best, -1) {
		return image.Point{}, 0, fmt.Errorf("image has no contrast")
	}
	return bestPt, best, nil
}

// grayPlane flattens an image to a row-major luminance slice.
func grayPlane(img image.Image) []float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out[y*w+x] = float64((r + g + bb) / 3 >> 8)
		}
	}
	return out
}

// integral builds a (w+1)x(h+1) summed-area table.
func integral(p []float64, w, h int) []float64 {
	sw := w + 1
	out := make([]float64, sw*(h+1))
	for y := 1; y <= h; y++ {
		var rowSum float64
		for x := 1; x <= w; x++ {
			rowSum += p[(y-1)*w+(x-1)]
			out[y*sw+x] = out[(y-1)*sw+x] + rowSum
		}
	}
	return out
}

func integralSquares(p []float64, w, h int) []float64 {
	sw := w + 1
	out := make([]float64, sw*(h+1))
	for y := 1; y <= h; y++ {
		var rowSum float64
		for x := 1; x <= w; x++ {
			v := p[(y-1)*w+(x-1)]
			rowSum += v * v
			out[y*sw+x] = out[(y-1)*sw+x] + rowSum
		}
	}
	return out
}

func windowSum(ii []float64, w, x, y, ww, wh int) float64 {
	sw := w + 1
	x1, y1 := x+ww, y+wh
	return ii[y1*sw+x1] - ii[y*sw+x1] - ii[y1*sw+x] + ii[y*sw+x]
}
