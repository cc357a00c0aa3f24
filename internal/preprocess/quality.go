package preprocess

import (
	"gocv.io/x/gocv"
)

// Quality score weights. Sharpness dominates because blur is the most
// common reason tooltip OCR degrades.
const (
	sharpnessWeight = 0.4
	contrastWeight  = 0.3
	structureWeight = 0.3
)

// QualityScore estimates how OCR-friendly an image is, independent of any
// OCR output. Blends Laplacian-variance sharpness, intensity standard
// deviation as a contrast proxy, and Canny edge density as a text-structure
// proxy, each scaled to [0,1].
func QualityScore(img gocv.Mat) float64 {
	if img.Empty() {
		return 0
	}

	gray := toGray(img)
	defer gray.Close()

	sharpness := clamp01(laplacianVariance(gray) / 1000.0)
	contrast := clamp01(stdDev(gray) / 255.0)
	structure := clamp01(edgeDensity(gray) * 10.0)

	return clamp01(sharpness*sharpnessWeight + contrast*contrastWeight + structure*structureWeight)
}

// laplacianVariance measures sharpness: blurry images have a flat Laplacian.
func laplacianVariance(gray gocv.Mat) float64 {
	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 3, 1, 0, gocv.BorderDefault)

	sd := stdDev(lap)
	return sd * sd
}

// stdDev returns the standard deviation of the first channel.
func stdDev(m gocv.Mat) float64 {
	mean := gocv.NewMat()
	defer mean.Close()
	stddev := gocv.NewMat()
	defer stddev.Close()
	gocv.MeanStdDev(m, &mean, &stddev)

	if stddev.Empty() {
		return 0
	}
	return stddev.GetDoubleAt(0, 0)
}

// edgeDensity returns the fraction of pixels on a fixed-threshold Canny edge.
func edgeDensity(gray gocv.Mat) float64 {
	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, 50, 150)

	total := edges.Rows() * edges.Cols()
	if total == 0 {
		return 0
	}
	return float64(gocv.CountNonZero(edges)) / float64(total)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
