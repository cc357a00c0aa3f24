// Package rarity classifies a tooltip by the color of its title text.
// Each rarity renders its title in a distinctive color band.
package rarity

import (
	"gocv.io/x/gocv"
)

// Rarity is an item rarity class.
type Rarity string

const (
	Normal Rarity = "normal"
	Magic  Rarity = "magic"
	Rare   Rarity = "rare"
	Unique Rarity = "unique"
)

// colorBand is an inclusive HSV range for one rarity's title color.
// OpenCV hue runs 0-180.
type colorBand struct {
	rarity        Rarity
	loH, loS, loV float64
	hiH, hiS, hiV float64
}

// Bands are checked in order; the distinctive colors come first so the
// near-white normal band cannot shadow them.
var bands = []colorBand{
	// Unique: orange/brown title
	{Unique, 5, 120, 120, 25, 255, 255},
	// Rare: yellow title
	{Rare, 25, 120, 150, 35, 255, 255},
	// Magic: blue title
	{Magic, 100, 120, 150, 130, 255, 255},
	// Normal: white/gray title, low saturation and high value
	{Normal, 0, 0, 190, 180, 60, 255},
}

// minMatchedPixels is the smallest mask population that counts as a
// detected title color; below it the band is treated as noise.
const minMatchedPixels = 1000

// Detect classifies a tooltip image by matching HSV color bands over it.
// Unrecognizable input defaults to Normal.
func Detect(img gocv.Mat) Rarity {
	if img.Empty() || img.Channels() != 3 {
		return Normal
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(img, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()
	defer mask.Close()

	for _, b := range bands {
		lower := gocv.NewScalar(b.loH, b.loS, b.loV, 0)
		upper := gocv.NewScalar(b.hiH, b.hiS, b.hiV, 0)
		gocv.InRangeWithScalar(hsv, lower, upper, &mask)

		if gocv.CountNonZero(mask) >= minMatchedPixels {
			return b.rarity
		}
	}
	return Normal
}
