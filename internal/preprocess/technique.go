// Package preprocess generates alternative renderings of a tooltip image,
// each tuned for a different OCR failure mode.
package preprocess

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Technique identifies one of the fixed preprocessing techniques.
type Technique string

const (
	TechniqueAdaptiveThreshold  Technique = "adaptive_threshold"
	TechniqueMorphologicalClean Technique = "morphological_clean"
	TechniqueNoiseReduction     Technique = "noise_reduction"
	TechniqueContrastEnhance    Technique = "contrast_enhancement"
	TechniqueEdgePreserving     Technique = "edge_preserving"
	TechniqueTextIsolation      Technique = "text_isolation"
)

// techniqueOrder is the fixed evaluation order for variant generation.
var techniqueOrder = []Technique{
	TechniqueAdaptiveThreshold,
	TechniqueMorphologicalClean,
	TechniqueNoiseReduction,
	TechniqueContrastEnhance,
	TechniqueEdgePreserving,
	TechniqueTextIsolation,
}

// Variant is one preprocessed rendering of a source image.
type Variant struct {
	Image     gocv.Mat
	Technique Technique
}

// Close releases the variant's image buffer.
func (v *Variant) Close() {
	if !v.Image.Empty() {
		v.Image.Close()
	}
}

// CloseAll releases every variant in the slice.
func CloseAll(variants []Variant) {
	for i := range variants {
		variants[i].Close()
	}
}

// Variants applies every preprocessing technique to the source image.
// A technique that fails is logged and skipped; the others still run.
// The caller owns the returned Mats and must close them.
func Variants(src gocv.Mat) []Variant {
	if src.Empty() {
		return nil
	}

	variants := make([]Variant, 0, len(techniqueOrder))
	for _, t := range techniqueOrder {
		out, err := apply(t, src)
		if err != nil {
			fmt.Printf("[Preprocess] technique %s failed: %v\n", t, err)
			continue
		}
		variants = append(variants, Variant{Image: out, Technique: t})
	}
	return variants
}

// apply runs a single technique, converting panics from the OpenCV layer
// into errors so one bad technique cannot abort the rest.
func apply(t Technique, src gocv.Mat) (out gocv.Mat, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("technique %s: %v", t, r)
		}
	}()

	switch t {
	case TechniqueAdaptiveThreshold:
		return adaptiveThreshold(src), nil
	case TechniqueMorphologicalClean:
		return morphologicalClean(src), nil
	case TechniqueNoiseReduction:
		return noiseReduction(src), nil
	case TechniqueContrastEnhance:
		return contrastEnhance(src), nil
	case TechniqueEdgePreserving:
		return edgePreserving(src), nil
	case TechniqueTextIsolation:
		return textIsolation(src)
	}
	return gocv.Mat{}, fmt.Errorf("unknown technique %q", t)
}

// toGray normalizes a 1- or 3-channel image to grayscale.
// The caller owns the returned Mat.
func toGray(src gocv.Mat) gocv.Mat {
	if src.Channels() == 1 {
		return src.Clone()
	}
	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	return gray
}

// otsu applies a binary Otsu threshold to a grayscale image.
func otsu(gray gocv.Mat) gocv.Mat {
	binary := gocv.NewMat()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	return binary
}

// adaptiveThreshold handles uneven tooltip backgrounds with local thresholding.
func adaptiveThreshold(src gocv.Mat) gocv.Mat {
	gray := toGray(src)
	defer gray.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	thresh := gocv.NewMat()
	gocv.AdaptiveThreshold(blurred, &thresh, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, 11, 2)
	return thresh
}

// morphologicalClean repairs broken glyph edges with close/open passes.
func morphologicalClean(src gocv.Mat) gocv.Mat {
	gray := toGray(src)
	defer gray.Close()

	binary := otsu(gray)
	defer binary.Close()

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(2, 2))
	defer kernel.Close()

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(binary, &closed, gocv.MorphClose, kernel)

	cleaned := gocv.NewMat()
	gocv.MorphologyEx(closed, &cleaned, gocv.MorphOpen, kernel)
	return cleaned
}

// noiseReduction denoises with non-local means before thresholding.
func noiseReduction(src gocv.Mat) gocv.Mat {
	gray := toGray(src)
	defer gray.Close()

	denoised := gocv.NewMat()
	defer denoised.Close()
	gocv.FastNlMeansDenoisingWithParams(gray, &denoised, 10, 7, 21)

	return otsu(denoised)
}

// contrastEnhance lifts low-contrast tooltips with CLAHE.
func contrastEnhance(src gocv.Mat) gocv.Mat {
	gray := toGray(src)
	defer gray.Close()

	clahe := gocv.NewCLAHEWithParams(3.0, image.Pt(8, 8))
	defer clahe.Close()

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(gray, &enhanced)

	return otsu(enhanced)
}

// edgePreserving smooths background clutter while keeping glyph edges sharp.
func edgePreserving(src gocv.Mat) gocv.Mat {
	var gray gocv.Mat
	if src.Channels() == 3 {
		filtered := gocv.NewMat()
		gocv.EdgePreservingFilter(src, &filtered, gocv.RecursFilter, 50, 0.4)
		gray = toGray(filtered)
		filtered.Close()
	} else {
		gray = src.Clone()
	}
	defer gray.Close()

	return otsu(gray)
}

// textIsolation keeps only connected components sized like text.
// The window is 50 px absolute on the low end and 10% of the image
// area on the high end, so it scales with capture resolution.
func textIsolation(src gocv.Mat) (gocv.Mat, error) {
	gray := toGray(src)
	defer gray.Close()

	binary := otsu(gray)
	defer binary.Close()

	labels := gocv.NewMat()
	defer labels.Close()
	stats := gocv.NewMat()
	defer stats.Close()
	centroids := gocv.NewMat()
	defer centroids.Close()

	numLabels := gocv.ConnectedComponentsWithStats(binary, &labels, &stats, &centroids)

	rows, cols := binary.Rows(), binary.Cols()
	minArea := 50
	maxArea := rows * cols / 10

	keep := make([]bool, numLabels)
	for i := 1; i < numLabels; i++ {
		area := int(stats.GetIntAt(i, int(gocv.CCStatArea)))
		if area >= minArea && area <= maxArea {
			keep[i] = true
		}
	}

	labelData, err := labels.DataPtrInt32()
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("read component labels: %w", err)
	}

	out := make([]byte, rows*cols)
	for i, label := range labelData {
		if keep[label] {
			out[i] = 255
		}
	}

	filtered, err := gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8U, out)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("build filtered image: %w", err)
	}
	return filtered, nil
}
